package main

import (
	"github.com/fwojciec/vidgrab"
	"github.com/fwojciec/vidgrab/fs"
)

// Run executes the goodstuff command.
func (c *GoodstuffCmd) Run(deps *Dependencies) error {
	return c.run(deps, GoodstuffURLs)
}

// Run executes the url command.
func (c *URLCmd) Run(deps *Dependencies) error {
	return c.run(deps, []string{c.URL})
}

func (f *ExtractFlags) run(deps *Dependencies, urls []string) error {
	var previous []vidgrab.Video
	if f.NewOnly {
		previous = cachedVideos(deps, urls)
	}

	var videos []vidgrab.Video
	var err error
	if f.Fresh {
		videos, err = deps.Extractor.ExtractFresh(deps.Ctx, urls)
	} else {
		videos, err = deps.Extractor.ExtractCached(deps.Ctx, urls)
	}
	if err != nil && len(videos) == 0 {
		return err
	}

	if f.NewOnly {
		videos = vidgrab.NewVideos(videos, previous)
	}
	deps.Logger.Info("extraction finished", "pages", len(urls), "videos", len(videos), "new_only", f.NewOnly)

	if encErr := fs.Encode(deps.Stdout, fs.Format(f.Format), videos); encErr != nil {
		return encErr
	}

	if f.List {
		if exportErr := fs.NewExporter(f.Output).Export(deps.Ctx, videos); exportErr != nil {
			return exportErr
		}
		deps.Logger.Info("saved video list", "path", f.Output, "videos", len(videos))
	}

	// A fail-fast extraction error still reports what was found before it.
	if err != nil {
		return err
	}

	if f.Download {
		return downloadVideos(deps, videos, f.Dest, f.FailFast)
	}
	return nil
}

// cachedVideos returns the cached results for urls, skipping pages that were
// never extracted.
func cachedVideos(deps *Dependencies, urls []string) []vidgrab.Video {
	var videos []vidgrab.Video
	for _, u := range urls {
		cached, err := deps.Results.Get(deps.Ctx, u)
		if err != nil {
			if vidgrab.ErrorCode(err) != vidgrab.ENOTFOUND {
				deps.Logger.Warn("ignoring previous result", "url", u, "err", err)
			}
			continue
		}
		videos = append(videos, cached...)
	}
	return videos
}
