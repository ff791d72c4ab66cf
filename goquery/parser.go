// Package goquery parses rendered listing pages into video entries.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/vidgrab"
)

// Ensure Parser implements the domain interfaces at compile time.
var (
	_ vidgrab.LinkParser    = (*Parser)(nil)
	_ vidgrab.LoginDetector = (*Parser)(nil)
)

// videoPath matches video detail paths: /video-<owner_id>_<item_id>.
var videoPath = regexp.MustCompile(`^/video-\d+_\d+$`)

// loginBanner is shown instead of the listing to anonymous visitors.
const loginBanner = "Зарегистрируйтесь, чтобы смотреть видео без ограничений"

// Parser extracts video entries from listing page HTML.
type Parser struct {
	origin     *url.URL
	strategies []TitleStrategy
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithOrigin sets the site origin used to build absolute video URLs.
// The origin must be an absolute URL with a scheme and host; anything else
// is ignored and the parser keeps vidgrab.Origin.
func WithOrigin(origin string) ParserOption {
	return func(p *Parser) {
		u, err := url.Parse(strings.TrimSuffix(strings.TrimSpace(origin), "/"))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return
		}
		p.origin = u
	}
}

// WithTitleStrategies replaces the title fallback chain.
func WithTitleStrategies(strategies ...TitleStrategy) ParserOption {
	return func(p *Parser) {
		p.strategies = strategies
	}
}

// NewParser creates a new Parser using DefaultTitleStrategies.
func NewParser(opts ...ParserOption) *Parser {
	origin, _ := url.Parse(vidgrab.Origin)
	p := &Parser{
		origin:     origin,
		strategies: DefaultTitleStrategies(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns the videos linked from the page in document order.
// Anchors pointing at the same video path are collapsed into the first one.
func (p *Parser) Parse(html string) ([]vidgrab.Video, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, vidgrab.Errorf(vidgrab.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	videos := []vidgrab.Video{}

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		path, ok := p.videoPath(href)
		if !ok {
			return
		}
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}

		videos = append(videos, vidgrab.Video{
			URL:   p.origin.Scheme + "://" + p.origin.Host + path,
			Title: p.title(link),
		})
	})

	return videos, nil
}

// LoginRequired reports whether the page shows the "not logged in" banner.
func (p *Parser) LoginRequired(html string) bool {
	return strings.Contains(html, loginBanner)
}

// videoPath returns the video path an href points at, if any.
// Query strings and fragments are ignored; absolute hrefs must be on the
// parser's origin.
func (p *Parser) videoPath(href string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	if u.Host != "" && !strings.EqualFold(u.Host, p.origin.Host) {
		return "", false
	}
	if !videoPath.MatchString(u.Path) {
		return "", false
	}
	return u.Path, true
}

// title runs the strategy chain and falls back to vidgrab.UntitledVideo.
func (p *Parser) title(link *goquery.Selection) string {
	for _, strategy := range p.strategies {
		if title, ok := strategy(link); ok {
			return title
		}
	}
	return vidgrab.UntitledVideo
}
