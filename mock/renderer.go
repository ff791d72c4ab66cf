package mock

import (
	"context"

	"github.com/fwojciec/vidgrab"
)

var _ vidgrab.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of vidgrab.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (string, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}
