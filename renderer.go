package vidgrab

import "context"

// WaitPolicy selects when navigation to a page is considered complete.
type WaitPolicy string

// Supported wait policies.
const (
	// WaitLoad waits for the document load event.
	WaitLoad WaitPolicy = "load"
	// WaitNetworkIdle waits until the page has no requests in flight.
	WaitNetworkIdle WaitPolicy = "idle"
)

// Renderer loads a URL in a browser and returns the HTML after dynamic
// content has loaded.
type Renderer interface {
	// Render navigates to the URL, scrolls to trigger lazy loading,
	// and returns the serialized document.
	// Failures are reported as *RenderError.
	Render(ctx context.Context, url string) (html string, err error)

	// Close releases renderer resources.
	Close() error
}
