package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"rematierra/internal/listing"
)

// BienesCards scrapes the current-auctions cards of Bienes Nacionales.
type BienesCards struct {
	client  *resty.Client
	baseURL string
}

// NewBienesCards creates the source.
func NewBienesCards(opts Options) *BienesCards {
	return &BienesCards{
		client:  newClient(opts),
		baseURL: opts.BienesBaseURL,
	}
}

// Name implements Source.
func (s *BienesCards) Name() string { return "bienes" }

// Fetch implements Source.
func (s *BienesCards) Fetch(ctx context.Context) ([]*listing.Listing, error) {
	url := s.baseURL + "/licitaciones/licitaciones-actuales/"
	doc, err := fetchDocument(ctx, s.client, url)
	if err != nil {
		return nil, err
	}
	return s.parse(doc, url)
}

func (s *BienesCards) parse(doc *goquery.Document, pageURL string) ([]*listing.Listing, error) {
	cards := doc.Find("div.card")
	if cards.Length() == 0 {
		return nil, fmt.Errorf("no se encontraron tarjetas de licitación en %s", pageURL)
	}

	records := make([]*listing.Listing, 0, cards.Length())
	cards.Each(func(i int, card *goquery.Selection) {
		titulo := strings.TrimSpace(card.Find("h3").First().Text())
		if titulo == "" {
			titulo = strings.TrimSpace(card.Find("h2").First().Text())
		}
		if titulo == "" {
			titulo = "Licitación Bienes Nacionales"
		}

		body := card.Find("div.card-body").First()
		if body.Length() == 0 {
			body = card
		}
		lines := cardLines(body)

		estado := "Vigente"
		card.Find("span").EachWithBreak(func(_ int, badge *goquery.Selection) bool {
			if strings.Contains(strings.ToLower(badge.Text()), "suspendida") {
				estado = "Suspendida"
				return false
			}
			return true
		})

		sourceURL := pageURL
		card.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if !strings.Contains(a.Text(), "Ver licitación") {
				return true
			}
			if href, ok := a.Attr("href"); ok {
				sourceURL = resolveURL(s.baseURL, href)
			}
			return false
		})

		rec := &listing.Listing{
			TipoRemate:   fmt.Sprintf("Bienes Nacionales (%s)", estado),
			TipoInmueble: titulo,
			Region:       findPrefixed(lines, "Región:"),
			Comuna:       findPrefixed(lines, "Provincia y comuna:"),
			Superficie:   findPrefixed(lines, "Superficie:"),
			Source:       SourceBienes,
			SourceURL:    sourceURL,
		}
		rec.ID = listing.GenerateID(SourceBienes,
			strings.Join([]string{titulo, rec.Region, rec.Comuna, sourceURL}, "|"))
		records = append(records, rec)
	})

	return dedupe(records), nil
}

// cardLines flattens a card body into trimmed text lines, one per block
// element, the way the cards lay out their labeled fields.
func cardLines(body *goquery.Selection) []string {
	var lines []string
	for _, chunk := range strings.Split(body.Text(), "\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk != "" {
			lines = append(lines, chunk)
		}
	}
	return lines
}

// findPrefixed returns the remainder of the first line starting with the
// given label, "" when absent.
func findPrefixed(lines []string, prefix string) string {
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}
