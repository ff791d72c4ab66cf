package extract

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/vidgrab"
	"golang.org/x/time/rate"
)

var _ vidgrab.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out page renders per host using token buckets.
// Hosts are compared case-insensitively and without their port, so channel
// URLs written as VKVideo.ru:443 and vkvideo.ru share one budget.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests
// per second limit. Each domain gets a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the host may be rendered again.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	key := hostKey(host)

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

func hostKey(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(strings.ToLower(host), ".")
}
