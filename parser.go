package vidgrab

// LinkParser extracts video entries from rendered listing page HTML.
type LinkParser interface {
	// Parse returns the videos found in the HTML in document order,
	// deduplicated by URL. A page without videos yields an empty slice
	// and a nil error.
	Parse(html string) ([]Video, error)
}

// LoginDetector reports whether a rendered page is gated behind a
// "not logged in" banner.
type LoginDetector interface {
	LoginRequired(html string) bool
}
