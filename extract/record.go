package extract

import (
	"context"
	"log/slog"

	"github.com/fwojciec/vidgrab"
)

var _ vidgrab.Renderer = (*RecordingRenderer)(nil)

// RecordingRenderer saves every page rendered by Next into Pages. With
// Replay set, a previously recorded page is served instead of rendering.
type RecordingRenderer struct {
	Next   vidgrab.Renderer
	Pages  vidgrab.PageCache
	Replay bool
	Logger *slog.Logger
}

func (r *RecordingRenderer) Render(ctx context.Context, url string) (string, error) {
	if r.Replay {
		html, err := r.Pages.Get(ctx, url)
		if err == nil {
			return html, nil
		}
		if vidgrab.ErrorCode(err) != vidgrab.ENOTFOUND {
			r.logger().Warn("ignoring recorded page", "url", url, "err", err)
		}
	}

	html, err := r.Next.Render(ctx, url)
	if err != nil {
		return "", err
	}

	if err := r.Pages.Put(ctx, url, html); err != nil {
		r.logger().Warn("failed to record page", "url", url, "err", err)
	}
	return html, nil
}

func (r *RecordingRenderer) Close() error {
	return r.Next.Close()
}

func (r *RecordingRenderer) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}
