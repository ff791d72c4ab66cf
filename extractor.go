package vidgrab

import "context"

// Outcome describes how a single source URL was resolved during extraction.
type Outcome string

// Extraction outcomes.
const (
	OutcomeCacheHit Outcome = "cache_hit"
	OutcomeRendered Outcome = "rendered"
	OutcomeFailed   Outcome = "failed"
)

// ExtractProgress reports progress after each source URL.
type ExtractProgress struct {
	URL       string
	Outcome   Outcome
	Videos    int
	Completed int
	Total     int
	Error     error
}

// ExtractProgressFunc is called as source URLs are processed.
type ExtractProgressFunc func(ExtractProgress)

// Extractor answers which videos exist on a set of listing pages.
// Results for multiple URLs are concatenated in input order.
type Extractor interface {
	// ExtractCached returns cached results where available and extracts
	// (and caches) the rest.
	ExtractCached(ctx context.Context, urls []string) ([]Video, error)

	// ExtractFresh always renders every URL and overwrites its cache record.
	ExtractFresh(ctx context.Context, urls []string) ([]Video, error)
}

// DomainLimiter controls request rate per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
