package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/vidgrab"
)

// Ensure LoggingResultCache implements vidgrab.ResultCache.
var _ vidgrab.ResultCache = (*LoggingResultCache)(nil)

// LoggingResultCache wraps a ResultCache with debug logging.
type LoggingResultCache struct {
	next   vidgrab.ResultCache
	logger *slog.Logger
}

// NewLoggingResultCache creates a new LoggingResultCache.
func NewLoggingResultCache(next vidgrab.ResultCache, logger *slog.Logger) *LoggingResultCache {
	return &LoggingResultCache{next: next, logger: logger}
}

// Get logs whether the lookup was a hit.
func (c *LoggingResultCache) Get(ctx context.Context, url string) (videos []vidgrab.Video, err error) {
	defer func(begin time.Time) {
		c.logger.Info("cache get",
			"url", url,
			"hit", err == nil,
			"count", len(videos),
			"duration", time.Since(begin),
			"code", vidgrab.ErrorCode(err),
		)
	}(time.Now())
	return c.next.Get(ctx, url)
}

func (c *LoggingResultCache) Put(ctx context.Context, url string, videos []vidgrab.Video) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("cache put",
			"url", url,
			"count", len(videos),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Put(ctx, url, videos)
}

func (c *LoggingResultCache) Invalidate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("cache invalidate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Invalidate(ctx, url)
}
