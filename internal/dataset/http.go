package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"rematierra/internal/listing"
	"rematierra/internal/logger"
)

const fetchAttempts = 4

// FetchJSON downloads and decodes a remote dataset. Transient failures
// (network errors, 5xx) are retried with exponential backoff; 4xx
// responses fail immediately.
func FetchJSON(ctx context.Context, url, userAgent string, timeout time.Duration) (*listing.Dataset, error) {
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetTimeout(timeout)

	var body []byte
	operation := func() error {
		resp, err := client.R().SetContext(ctx).Get(url)
		if err != nil {
			return fmt.Errorf("fetching dataset: %w", err)
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
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), fetchAttempts-1), ctx)
	notify := func(err error, wait time.Duration) {
		logger.L().Warn("retrying dataset fetch",
			zap.String("url", url),
			zap.Duration("wait", wait),
			zap.Error(err))
	}
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, err
	}

	ds, err := listing.DecodeDataset(body)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	return ds, nil
}
