// Package extract orchestrates link extraction: cache lookup, rendering,
// parsing and cache population for a batch of listing pages.
package extract

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/vidgrab"
)

var _ vidgrab.Extractor = (*Extractor)(nil)

// Extractor turns listing page URLs into video entries, serving repeated
// requests from Cache. URLs are processed one at a time in input order.
type Extractor struct {
	Renderer vidgrab.Renderer
	Parser   vidgrab.LinkParser
	Cache    vidgrab.ResultCache

	// Optional collaborators.
	Limiter  vidgrab.DomainLimiter
	Login    vidgrab.LoginDetector
	Logger   *slog.Logger
	Progress vidgrab.ExtractProgressFunc

	// ContinueOnError skips URLs that fail instead of aborting the batch.
	// The batch then fails only if every URL failed.
	ContinueOnError bool

	// RetryDelays lists the waits between render attempts. Empty means a
	// single attempt.
	RetryDelays []time.Duration
}

// ExtractCached returns the cached result for each URL that has one and
// renders the rest, caching what it renders.
func (e *Extractor) ExtractCached(ctx context.Context, urls []string) ([]vidgrab.Video, error) {
	return e.extract(ctx, urls, true)
}

// ExtractFresh renders every URL regardless of the cache and overwrites
// each cache record with the new result.
func (e *Extractor) ExtractFresh(ctx context.Context, urls []string) ([]vidgrab.Video, error) {
	return e.extract(ctx, urls, false)
}

func (e *Extractor) extract(ctx context.Context, urls []string, useCache bool) ([]vidgrab.Video, error) {
	logger := e.logger()
	videos := []vidgrab.Video{}

	var errs []error
	for i, u := range urls {
		if err := ctx.Err(); err != nil {
			return videos, err
		}

		found, outcome, err := e.extractOne(ctx, u, useCache)
		e.report(vidgrab.ExtractProgress{
			URL:       u,
			Outcome:   outcome,
			Videos:    len(found),
			Completed: i + 1,
			Total:     len(urls),
			Error:     err,
		})
		if err != nil {
			if !e.ContinueOnError {
				return videos, err
			}
			logger.Warn("skipping url", "url", u, "err", err)
			errs = append(errs, err)
			continue
		}
		videos = append(videos, found...)
	}

	if len(urls) > 0 && len(errs) == len(urls) {
		return videos, errors.Join(errs...)
	}
	return videos, nil
}

func (e *Extractor) extractOne(ctx context.Context, rawURL string, useCache bool) ([]vidgrab.Video, vidgrab.Outcome, error) {
	logger := e.logger()

	if useCache {
		cached, err := e.Cache.Get(ctx, rawURL)
		switch vidgrab.ErrorCode(err) {
		case "":
			return cached, vidgrab.OutcomeCacheHit, nil
		case vidgrab.ENOTFOUND:
		case vidgrab.ECORRUPT:
			logger.Warn("corrupt cache record, re-extracting", "url", rawURL, "err", err)
		default:
			logger.Warn("cache read failed, re-extracting", "url", rawURL, "err", err)
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, vidgrab.OutcomeFailed, vidgrab.Errorf(vidgrab.EINVALID, "invalid url %q", rawURL)
	}

	render := func(ctx context.Context, target string) (string, error) {
		if e.Limiter != nil {
			if err := e.Limiter.Wait(ctx, u.Host); err != nil {
				return "", err
			}
		}
		return e.Renderer.Render(ctx, target)
	}

	html, err := RenderWithRetry(ctx, rawURL, render, logger, e.RetryDelays)
	if err != nil {
		return nil, vidgrab.OutcomeFailed, err
	}

	videos, err := e.Parser.Parse(html)
	if err != nil {
		return nil, vidgrab.OutcomeFailed, err
	}

	if len(videos) == 0 && e.Login != nil && e.Login.LoginRequired(html) {
		logger.Warn("page shows a login banner, results may be incomplete", "url", rawURL)
	}

	if err := e.Cache.Put(ctx, rawURL, videos); err != nil {
		logger.Warn("failed to cache result", "url", rawURL, "err", err)
	}

	return videos, vidgrab.OutcomeRendered, nil
}

func (e *Extractor) report(p vidgrab.ExtractProgress) {
	if e.Progress != nil {
		e.Progress(p)
	}
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
