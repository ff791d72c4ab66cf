package vidgrab

import "context"

// ResultCache maps a source URL to its previously extracted videos.
// Records never expire; Put overwrites and Invalidate removes them.
type ResultCache interface {
	// Get returns the cached videos for the URL.
	// Returns ENOTFOUND if nothing is cached and ECORRUPT if the record
	// cannot be read back.
	Get(ctx context.Context, url string) ([]Video, error)

	// Put stores videos for the URL, replacing any existing record.
	Put(ctx context.Context, url string, videos []Video) error

	// Invalidate removes the record for the URL. Removing a missing
	// record is not an error.
	Invalidate(ctx context.Context, url string) error
}

// PageCache stores raw rendered HTML keyed by source URL for record/replay.
type PageCache interface {
	// Get returns the recorded HTML for the URL.
	// Returns ENOTFOUND if nothing is recorded.
	Get(ctx context.Context, url string) (string, error)

	// Put records HTML for the URL, replacing any existing record.
	Put(ctx context.Context, url string, html string) error

	// Invalidate removes the record for the URL.
	Invalidate(ctx context.Context, url string) error
}
