package main

import (
	"fmt"

	"github.com/fwojciec/vidgrab"
)

// downloadVideos downloads each video into dest, skipping videos the
// history already knows about. Without failFast, failures are logged and
// the batch fails once at the end.
func downloadVideos(deps *Dependencies, videos []vidgrab.Video, dest string, failFast bool) error {
	ctx := deps.Ctx
	logger := deps.Logger

	var failed, skipped, done int
	for i, v := range videos {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := deps.History.FindDownloadByURL(ctx, v.URL); err == nil {
			logger.Info("already downloaded", "url", v.URL, "title", v.Title)
			skipped++
			continue
		} else if vidgrab.ErrorCode(err) != vidgrab.ENOTFOUND {
			return err
		}

		logger.Info("downloading", "url", v.URL, "title", v.Title, "progress", progress(i+1, len(videos)))
		path, err := deps.Downloader.Download(ctx, v.URL, v.FileStem(), dest)
		if err != nil {
			// Every later video would hit the same login wall.
			if failFast || vidgrab.ErrorCode(err) == vidgrab.EUNAUTHORIZED {
				return err
			}
			logger.Warn("download failed", "url", v.URL, "title", v.Title, "err", err)
			failed++
			continue
		}
		done++

		if err := deps.History.RecordDownload(ctx, &vidgrab.Download{
			VideoURL: v.URL,
			Title:    v.Title,
			Path:     path,
		}); err != nil {
			logger.Warn("failed to record download", "url", v.URL, "err", err)
		}
	}

	logger.Info("downloads finished", "downloaded", done, "skipped", skipped, "failed", failed)
	if failed > 0 {
		return vidgrab.Errorf(vidgrab.EDOWNLOAD, "%d of %d downloads failed", failed, len(videos))
	}
	return nil
}

func progress(completed, total int) string {
	return fmt.Sprintf("%d/%d", completed, total)
}
