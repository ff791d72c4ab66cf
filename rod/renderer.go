// Package rod renders JavaScript-driven pages using Chrome browser automation.
package rod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fwojciec/vidgrab"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Renderer implements vidgrab.Renderer at compile time.
var _ vidgrab.Renderer = (*Renderer)(nil)

// Default render settings.
const (
	DefaultNavigationTimeout = 30 * time.Second
	DefaultScrollTimeout     = 10 * time.Second
	DefaultSettleDelay       = 1 * time.Second
	DefaultScrollStep        = 100
	DefaultScrollInterval    = 100 * time.Millisecond
)

// networkIdleWindow is how long the page must go without requests in flight
// before WaitNetworkIdle considers navigation complete.
const networkIdleWindow = 500 * time.Millisecond

// scrollScript scrolls the window to the bottom in fixed steps. The page
// height is re-read on every tick, so content appended by lazy loading
// extends the loop.
const scrollScript = `(step, interval) => new Promise((resolve) => {
	let total = 0;
	const timer = setInterval(() => {
		const root = document.body || document.documentElement;
		const height = root ? root.scrollHeight : 0;
		window.scrollBy(0, step);
		total += step;
		if (total >= height) {
			clearInterval(timer);
			resolve(total);
		}
	}, interval);
})`

// Renderer loads pages in a fresh headless Chrome session per call, scrolls
// them to trigger lazy loading and returns the resulting HTML.
// Renderer is safe for concurrent use, though each call launches its own
// browser process.
type Renderer struct {
	headless          bool
	bin               string
	userAgent         string
	waitPolicy        vidgrab.WaitPolicy
	navigationTimeout time.Duration
	scrollTimeout     time.Duration
	settleDelay       time.Duration
	scrollStep        int
	scrollInterval    time.Duration
	closed            atomic.Bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHeadless sets whether the browser runs without a window.
// Defaults to true.
func WithHeadless(headless bool) Option {
	return func(r *Renderer) {
		r.headless = headless
	}
}

// WithBrowserBin sets the Chrome/Chromium executable. By default rod finds
// an installed browser or downloads one.
func WithBrowserBin(path string) Option {
	return func(r *Renderer) {
		r.bin = path
	}
}

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) Option {
	return func(r *Renderer) {
		r.userAgent = ua
	}
}

// WithWaitPolicy sets when navigation is considered complete.
// Defaults to vidgrab.WaitLoad.
func WithWaitPolicy(policy vidgrab.WaitPolicy) Option {
	return func(r *Renderer) {
		r.waitPolicy = policy
	}
}

// WithNavigationTimeout sets the budget for navigation and the wait policy.
// Defaults to 30 seconds.
func WithNavigationTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.navigationTimeout = d
	}
}

// WithScrollTimeout sets the budget for scrolling to the bottom of the page.
// Defaults to 10 seconds.
func WithScrollTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.scrollTimeout = d
	}
}

// WithSettleDelay sets how long to wait after scrolling before capturing
// the HTML. Defaults to 1 second.
func WithSettleDelay(d time.Duration) Option {
	return func(r *Renderer) {
		r.settleDelay = d
	}
}

// WithScrollStep sets the scroll increment in pixels and the delay between
// increments. Defaults to 100px every 100ms.
func WithScrollStep(px int, interval time.Duration) Option {
	return func(r *Renderer) {
		r.scrollStep = px
		r.scrollInterval = interval
	}
}

// NewRenderer creates a new Renderer. No browser is started until Render is
// called.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		headless:          true,
		waitPolicy:        vidgrab.WaitLoad,
		navigationTimeout: DefaultNavigationTimeout,
		scrollTimeout:     DefaultScrollTimeout,
		settleDelay:       DefaultSettleDelay,
		scrollStep:        DefaultScrollStep,
		scrollInterval:    DefaultScrollInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render launches a browser, loads the URL, scrolls to the bottom, waits for
// the page to settle and returns the serialized document. The browser is
// shut down before Render returns, whether or not rendering succeeded.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if r.closed.Load() {
		return "", vidgrab.Errorf(vidgrab.EINVALID, "renderer is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", renderError(url, err)
	}

	s, err := launchSession(r.headless, r.bin)
	if err != nil {
		return "", renderError(url, err)
	}
	defer s.Close()

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", renderError(url, err)
	}
	defer page.Close()

	if r.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: r.userAgent}); err != nil {
			return "", renderError(url, err)
		}
	}

	if err := r.navigate(ctx, page, url); err != nil {
		return "", renderError(url, err)
	}

	if err := r.scroll(ctx, page); err != nil {
		return "", renderError(url, err)
	}

	if err := sleep(ctx, r.settleDelay); err != nil {
		return "", renderError(url, err)
	}

	html, err := page.Context(ctx).HTML()
	if err != nil {
		return "", renderError(url, err)
	}

	return html, nil
}

// Close marks the renderer closed. Browser sessions never outlive a Render
// call, so there is nothing else to release. Close is idempotent.
func (r *Renderer) Close() error {
	r.closed.Store(true)
	return nil
}

func (r *Renderer) navigate(ctx context.Context, page *rod.Page, url string) error {
	ctx, cancel := context.WithTimeout(ctx, r.navigationTimeout)
	defer cancel()
	p := page.Context(ctx)

	if r.waitPolicy == vidgrab.WaitNetworkIdle {
		wait := p.WaitRequestIdle(networkIdleWindow, nil, nil, nil)
		if err := p.Navigate(url); err != nil {
			return err
		}
		wait()
		return ctx.Err()
	}

	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}

func (r *Renderer) scroll(ctx context.Context, page *rod.Page) error {
	ctx, cancel := context.WithTimeout(ctx, r.scrollTimeout)
	defer cancel()

	_, err := page.Context(ctx).Eval(scrollScript, r.scrollStep, r.scrollInterval.Milliseconds())
	return err
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// renderError classifies err as a render timeout or a generic render failure.
func renderError(url string, err error) error {
	code := vidgrab.ERENDER
	if errors.Is(err, context.DeadlineExceeded) {
		code = vidgrab.ETIMEOUT
	}
	return &vidgrab.RenderError{URL: url, Code: code, Err: err}
}
