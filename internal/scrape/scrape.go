package scrape

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"rematierra/internal/listing"
	"rematierra/internal/logger"
)

const pageAttempts = 4

// Source names, also used as the Listing.Source tag.
const (
	SourceBoletin = "boletin_concursal"
	SourceBienes  = "bienes_nacionales"
)

// Source fetches listings from one site.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]*listing.Listing, error)
}

// Options configures source construction.
type Options struct {
	BoletinBaseURL string
	BienesBaseURL  string
	UserAgent      string
	Timeout        time.Duration
}

// newClient builds the shared resty client: cookie jar for session
// cookies, browser User-Agent, fixed timeout.
func newClient(opts Options) *resty.Client {
	client := resty.New().
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept-Language", "es-CL,es;q=0.9,en;q=0.8").
		SetTimeout(opts.Timeout)

	if jar, err := cookiejar.New(nil); err == nil {
		client.SetCookieJar(jar)
	}
	return client
}

// fetchDocument GETs a page and parses it, retrying transient failures.
func fetchDocument(ctx context.Context, client *resty.Client, url string) (*goquery.Document, error) {
	var body []byte
	operation := func() error {
		resp, err := client.R().SetContext(ctx).Get(url)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		code := resp.StatusCode()
		switch {
		case code >= 200 && code < 300:
			body = resp.Body()
			return nil
		case code >= 500:
			return fmt.Errorf("server error %d from %s", code, url)
		default:
			return backoff.Permanent(fmt.Errorf("unexpected status %d from %s", code, url))
		}
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), pageAttempts-1), ctx)
	notify := func(err error, wait time.Duration) {
		logger.L().Warn("retrying page fetch",
			zap.String("url", url),
			zap.Duration("wait", wait),
			zap.Error(err))
	}
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// resolveURL resolves an href against the source's base URL.
func resolveURL(base, href string) string {
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "/"):
		return strings.TrimRight(base, "/") + href
	default:
		return strings.TrimRight(base, "/") + "/" + href
	}
}
