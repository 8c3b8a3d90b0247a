package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"rematierra/internal/listing"
	"rematierra/internal/logger"
)

// BoletinTable scrapes the public "Publicaciones de Remates" table of the
// Boletín Concursal.
type BoletinTable struct {
	client  *resty.Client
	baseURL string
}

// NewBoletinTable creates the source.
func NewBoletinTable(opts Options) *BoletinTable {
	return &BoletinTable{
		client:  newClient(opts),
		baseURL: opts.BoletinBaseURL,
	}
}

// Name implements Source.
func (s *BoletinTable) Name() string { return "boletin" }

// Fetch implements Source.
func (s *BoletinTable) Fetch(ctx context.Context) ([]*listing.Listing, error) {
	url := s.baseURL + "/boletin/remates"
	doc, err := fetchDocument(ctx, s.client, url)
	if err != nil {
		return nil, err
	}
	return s.parse(doc, url)
}

// parse walks the first table on the page. Column layout:
// 0 deudor, 1 fecha (dd-mm-yyyy), 2 martillero, 3 documento (PDF link).
func (s *BoletinTable) parse(doc *goquery.Document, pageURL string) ([]*listing.Listing, error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no se encontró la tabla de remates en %s", pageURL)
	}

	records := make([]*listing.Listing, 0)
	table.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		deudor := strings.TrimSpace(cells.Eq(0).Text())
		fechaText := strings.TrimSpace(cells.Eq(1).Text())
		martillero := strings.TrimSpace(cells.Eq(2).Text())

		sourceURL := pageURL
		if cells.Length() > 3 {
			if href, ok := cells.Eq(3).Find("a").Attr("href"); ok {
				sourceURL = resolveURL(s.baseURL, href)
			}
		}

		rec := &listing.Listing{
			TipoRemate:   "Remate concursal",
			TipoInmueble: "Remate de bienes",
			DeudorNombre: deudor,
			Martillero:   martillero,
			Source:       SourceBoletin,
			SourceURL:    sourceURL,
		}

		if t := listing.ParseDate(fechaText); !t.IsZero() {
			rec.FechaRemate = listing.FormatDate(t)
		} else if fechaText != "" {
			rec.FechaTexto = fechaText
			logger.L().Debug("fecha de remate no reconocida",
				zap.String("texto", fechaText), zap.String("deudor", deudor))
		}

		rec.ID = listing.GenerateID(SourceBoletin,
			strings.Join([]string{deudor, fechaText, martillero, sourceURL}, "|"))
		records = append(records, rec)
	})

	return dedupe(records), nil
}

// dedupe drops repeated IDs, keeping first occurrence.
func dedupe(records []*listing.Listing) []*listing.Listing {
	seen := make(map[string]bool, len(records))
	unique := make([]*listing.Listing, 0, len(records))
	for _, rec := range records {
		if seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		unique = append(unique, rec)
	}
	return unique
}
