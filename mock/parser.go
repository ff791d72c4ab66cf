package mock

import "github.com/fwojciec/vidgrab"

// Compile-time interface verification.
var (
	_ vidgrab.LinkParser    = (*LinkParser)(nil)
	_ vidgrab.LoginDetector = (*LoginDetector)(nil)
)

// LinkParser is a mock implementation of vidgrab.LinkParser.
type LinkParser struct {
	ParseFn func(html string) ([]vidgrab.Video, error)
}

func (p *LinkParser) Parse(html string) ([]vidgrab.Video, error) {
	return p.ParseFn(html)
}

// LoginDetector is a mock implementation of vidgrab.LoginDetector.
type LoginDetector struct {
	LoginRequiredFn func(html string) bool
}

func (d *LoginDetector) LoginRequired(html string) bool {
	return d.LoginRequiredFn(html)
}
