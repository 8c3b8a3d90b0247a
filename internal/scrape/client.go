package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"rematierra/internal/listing"
	"rematierra/internal/logger"
)

// endpoints are the DataTables listings of the Boletín, one per bien kind.
var endpoints = []struct {
	slug     string
	path     string
	tipoBien string
}{
	{slug: "muebles", path: "/boletin/getRMP/", tipoBien: "mueble"},
	{slug: "inmuebles", path: "/boletin/getRIP/", tipoBien: "inmueble"},
}

// BoletinAPI pages through the Boletín Concursal JSON endpoints. The site
// requires a CSRF token scraped from the landing page before any POST.
type BoletinAPI struct {
	client  *resty.Client
	baseURL string

	csrfToken  string
	csrfHeader string

	// Sweep bounds; zero values disable each one.
	StartDate time.Time
	EndDate   time.Time
	Limit     int
	PageSize  int
}

// NewBoletinAPI creates the source with default paging.
func NewBoletinAPI(opts Options) *BoletinAPI {
	return &BoletinAPI{
		client:   newClient(opts),
		baseURL:  opts.BoletinBaseURL,
		PageSize: 100,
	}
}

// Name implements Source.
func (s *BoletinAPI) Name() string { return "boletin-api" }

// bootstrap loads the landing page and captures the CSRF token and the
// header name it must travel in.
func (s *BoletinAPI) bootstrap(ctx context.Context) error {
	doc, err := fetchDocument(ctx, s.client, s.baseURL+"/boletin/remates")
	if err != nil {
		return fmt.Errorf("bootstrapping session: %w", err)
	}

	token, _ := doc.Find(`meta[name="_csrf"]`).Attr("content")
	header, _ := doc.Find(`meta[name="_csrf_header"]`).Attr("content")
	if token == "" || header == "" {
		return fmt.Errorf("no se pudo obtener el token CSRF desde la página inicial")
	}

	s.csrfToken = token
	s.csrfHeader = header
	return nil
}

// apiRow is one record of the DataTables response.
type apiRow struct {
	CodigoValidacion  string `json:"codigoValidacion"`
	FchPublicacion    string `json:"fchPublicacion"`
	DeudorNombre      string `json:"deudorNombre"`
	EntePublicador    string `json:"entePublicador"`
	TipoProcedimiento string `json:"tipoProcedimiento"`
	Procedimiento     string `json:"procedimiento"`
}

type apiPage struct {
	Data []apiRow `json:"data"`
}

// Fetch implements Source: it sweeps every endpoint page by page,
// deduplicating by codigoValidacion and honoring the date window and
// record limit.
func (s *BoletinAPI) Fetch(ctx context.Context) ([]*listing.Listing, error) {
	if err := s.bootstrap(ctx); err != nil {
		return nil, err
	}

	records := make([]*listing.Listing, 0)
	seen := make(map[string]bool)

	for _, endpoint := range endpoints {
		if s.Limit > 0 && len(records) >= s.Limit {
			break
		}
		if err := s.sweep(ctx, endpoint.path, endpoint.tipoBien, seen, &records); err != nil {
			return nil, fmt.Errorf("recorriendo %s: %w", endpoint.slug, err)
		}
	}

	return records, nil
}

func (s *BoletinAPI) sweep(ctx context.Context, path, tipoBien string, seen map[string]bool, records *[]*listing.Listing) error {
	start := 0
	draw := 1

	for {
		page, err := s.fetchPage(ctx, path, start, draw)
		if err != nil {
			return err
		}
		if len(page.Data) == 0 {
			return nil
		}

		tooOld := 0
		for _, row := range page.Data {
			if s.Limit > 0 && len(*records) >= s.Limit {
				return nil
			}
			if row.CodigoValidacion == "" || seen[row.CodigoValidacion] {
				continue
			}

			published := listing.ParseDate(row.FchPublicacion)
			if published.IsZero() {
				logger.L().Warn("fecha de publicación ilegible",
					zap.String("codigo", row.CodigoValidacion),
					zap.String("texto", row.FchPublicacion))
				continue
			}
			if !s.StartDate.IsZero() && published.Before(s.StartDate) {
				tooOld++
				continue
			}
			if !s.EndDate.IsZero() && published.After(s.EndDate) {
				continue
			}

			*records = append(*records, s.toListing(row, tipoBien, published))
			seen[row.CodigoValidacion] = true
		}

		// Once a whole page predates the window the sweep is done: the
		// endpoint returns rows newest-first.
		if !s.StartDate.IsZero() && tooOld == len(page.Data) {
			return nil
		}

		start += s.PageSize
		draw++
	}
}

// fetchPage POSTs the DataTables form payload for one page.
func (s *BoletinAPI) fetchPage(ctx context.Context, path string, start, draw int) (*apiPage, error) {
	form := map[string]string{
		"draw":          strconv.Itoa(draw),
		"start":         strconv.Itoa(start),
		"length":        strconv.Itoa(s.PageSize),
		"search[value]": "",
		"search[regex]": "false",
	}
	for i, column := range []string{"deudorNombre", "fchPublicacion", "entePublicador", "codigoValidacion"} {
		form[fmt.Sprintf("columns[%d][data]", i)] = column
		form[fmt.Sprintf("columns[%d][searchable]", i)] = "false"
		form[fmt.Sprintf("columns[%d][orderable]", i)] = "false"
		form[fmt.Sprintf("columns[%d][search][value]", i)] = ""
		form[fmt.Sprintf("columns[%d][search][regex]", i)] = "false"
	}

	var body []byte
	operation := func() error {
		resp, err := s.client.R().
			SetContext(ctx).
			SetHeader(s.csrfHeader, s.csrfToken).
			SetHeader("X-Requested-With", "XMLHttpRequest").
			SetHeader("Referer", s.baseURL+"/boletin/remates").
			SetHeader("Origin", s.baseURL).
			SetHeader("Accept", "application/json").
			SetFormData(form).
			Post(s.baseURL + path)
		if err != nil {
			return fmt.Errorf("fetching page at %d: %w", start, err)
		}
		code := resp.StatusCode()
		switch {
		case code >= 200 && code < 300:
			body = resp.Body()
			return nil
		case code >= 500:
			return fmt.Errorf("server error %d at offset %d", code, start)
		default:
			return backoff.Permanent(fmt.Errorf("unexpected status %d at offset %d", code, start))
		}
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), pageAttempts-1), ctx)
	notify := func(err error, wait time.Duration) {
		logger.L().Warn("retrying page fetch",
			zap.String("path", path),
			zap.Int("start", start),
			zap.Duration("wait", wait),
			zap.Error(err))
	}
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, err
	}

	// Decode the body ourselves: the endpoint is not strict about the
	// Content-Type it answers with.
	var page apiPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding page at %d: %w", start, err)
	}
	return &page, nil
}

func (s *BoletinAPI) toListing(row apiRow, tipoBien string, published time.Time) *listing.Listing {
	return &listing.Listing{
		ID:                row.CodigoValidacion,
		TipoBien:          tipoBien,
		TipoProcedimiento: row.TipoProcedimiento,
		Procedimiento:     row.Procedimiento,
		DeudorNombre:      strings.TrimSpace(row.DeudorNombre),
		EntePublicador:    strings.TrimSpace(row.EntePublicador),
		FechaPublicacion:  published.Format("2006-01-02"),
		Source:            SourceBoletin,
		SourceURL: fmt.Sprintf(
			"%s/boletin/downloadDocumentoByCodigo?codigoValidacion=%s",
			s.baseURL, row.CodigoValidacion),
	}
}
