package extract

import (
	"context"
	"log/slog"
	"time"
)

// RenderFunc is the signature for a render function.
type RenderFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays used by the CLI for render
// retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RenderWithRetry attempts to render url once plus one retry per entry in
// delays, sleeping for the corresponding delay before each retry. A nil
// logger disables retry logging.
func RenderWithRetry(ctx context.Context, url string, render RenderFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := render(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if ctx.Err() != nil {
			return "", lastErr
		}

		if logger != nil {
			logger.Warn("retrying render", "url", url, "attempt", attempt+2, "err", err)
		}

		t := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			t.Stop()
			return "", lastErr
		case <-t.C:
		}
	}

	return "", lastErr
}
