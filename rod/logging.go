package rod

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/vidgrab"
)

// Ensure LoggingRenderer implements vidgrab.Renderer.
var _ vidgrab.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging. Successful renders are
// logged at debug level with the page size and whether the login banner
// showed up; failures are logged as warnings with their error code so
// timeouts can be told apart from browser crashes.
type LoggingRenderer struct {
	next   vidgrab.Renderer
	logger *slog.Logger
	login  vidgrab.LoginDetector
}

// LoggingOption configures a LoggingRenderer.
type LoggingOption func(*LoggingRenderer)

// WithLoginDetector reports a "login" attribute for each rendered page.
func WithLoginDetector(d vidgrab.LoginDetector) LoggingOption {
	return func(r *LoggingRenderer) {
		r.login = d
	}
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next vidgrab.Renderer, logger *slog.Logger, opts ...LoggingOption) *LoggingRenderer {
	r := &LoggingRenderer{next: next, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render delegates to the wrapped renderer and logs the outcome.
func (r *LoggingRenderer) Render(ctx context.Context, pageURL string) (html string, err error) {
	begin := time.Now()
	html, err = r.next.Render(ctx, pageURL)

	attrs := []any{
		"url", pageURL,
		"host", hostOf(pageURL),
		"duration", time.Since(begin).Round(time.Millisecond),
	}
	if err != nil {
		attrs = append(attrs, "code", vidgrab.ErrorCode(err), "err", err)
		r.logger.WarnContext(ctx, "render failed", attrs...)
		return html, err
	}

	attrs = append(attrs, "bytes", len(html))
	if r.login != nil {
		attrs = append(attrs, "login", r.login.LoginRequired(html))
	}
	r.logger.DebugContext(ctx, "rendered", attrs...)
	return html, nil
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}

func hostOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
