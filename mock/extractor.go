package mock

import (
	"context"

	"github.com/fwojciec/vidgrab"
)

// Compile-time interface verification.
var (
	_ vidgrab.Extractor     = (*Extractor)(nil)
	_ vidgrab.DomainLimiter = (*DomainLimiter)(nil)
)

// Extractor is a mock implementation of vidgrab.Extractor.
type Extractor struct {
	ExtractCachedFn func(ctx context.Context, urls []string) ([]vidgrab.Video, error)
	ExtractFreshFn  func(ctx context.Context, urls []string) ([]vidgrab.Video, error)
}

func (e *Extractor) ExtractCached(ctx context.Context, urls []string) ([]vidgrab.Video, error) {
	return e.ExtractCachedFn(ctx, urls)
}

func (e *Extractor) ExtractFresh(ctx context.Context, urls []string) ([]vidgrab.Video, error) {
	return e.ExtractFreshFn(ctx, urls)
}

// DomainLimiter is a mock implementation of vidgrab.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
