package mock

import (
	"context"

	"github.com/fwojciec/vidgrab"
)

// Compile-time interface verification.
var (
	_ vidgrab.ResultCache = (*ResultCache)(nil)
	_ vidgrab.PageCache   = (*PageCache)(nil)
)

// ResultCache is a mock implementation of vidgrab.ResultCache.
type ResultCache struct {
	GetFn        func(ctx context.Context, url string) ([]vidgrab.Video, error)
	PutFn        func(ctx context.Context, url string, videos []vidgrab.Video) error
	InvalidateFn func(ctx context.Context, url string) error
}

func (c *ResultCache) Get(ctx context.Context, url string) ([]vidgrab.Video, error) {
	return c.GetFn(ctx, url)
}

func (c *ResultCache) Put(ctx context.Context, url string, videos []vidgrab.Video) error {
	return c.PutFn(ctx, url, videos)
}

func (c *ResultCache) Invalidate(ctx context.Context, url string) error {
	return c.InvalidateFn(ctx, url)
}

// PageCache is a mock implementation of vidgrab.PageCache.
type PageCache struct {
	GetFn        func(ctx context.Context, url string) (string, error)
	PutFn        func(ctx context.Context, url string, html string) error
	InvalidateFn func(ctx context.Context, url string) error
}

func (c *PageCache) Get(ctx context.Context, url string) (string, error) {
	return c.GetFn(ctx, url)
}

func (c *PageCache) Put(ctx context.Context, url string, html string) error {
	return c.PutFn(ctx, url, html)
}

func (c *PageCache) Invalidate(ctx context.Context, url string) error {
	return c.InvalidateFn(ctx, url)
}
