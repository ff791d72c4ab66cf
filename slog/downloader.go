package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/vidgrab"
)

// Ensure LoggingDownloader implements vidgrab.Downloader.
var _ vidgrab.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with debug logging.
type LoggingDownloader struct {
	next   vidgrab.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next vidgrab.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the outcome.
func (d *LoggingDownloader) Download(ctx context.Context, videoURL, filename, dir string) (path string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("download",
			"url", videoURL,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, videoURL, filename, dir)
}
