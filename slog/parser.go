// Package slog provides logging decorators for vidgrab services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/vidgrab"
)

// Ensure LoggingParser implements vidgrab.LinkParser.
var _ vidgrab.LinkParser = (*LoggingParser)(nil)

// LoggingParser wraps a LinkParser with debug logging.
type LoggingParser struct {
	next   vidgrab.LinkParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next vidgrab.LinkParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the number of links found.
func (p *LoggingParser) Parse(html string) (videos []vidgrab.Video, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse",
			"bytes", len(html),
			"count", len(videos),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(html)
}
