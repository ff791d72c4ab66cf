package vidgrab

import (
	"context"
	"time"
)

// Downloader fetches the media behind a video URL.
type Downloader interface {
	// Download saves the video under dir using filename and returns the
	// final file path. Failures are reported with code EDOWNLOAD, or
	// EUNAUTHORIZED when the site requires a logged-in session.
	Download(ctx context.Context, videoURL, filename, dir string) (path string, err error)
}

// Download records a completed video download.
type Download struct {
	ID           string    `json:"id"`
	VideoURL     string    `json:"videoUrl"`
	Title        string    `json:"title"`
	Path         string    `json:"path"`
	DownloadedAt time.Time `json:"downloadedAt"`
}

// Validate returns an error if the download contains invalid fields.
func (d *Download) Validate() error {
	if d.VideoURL == "" {
		return Errorf(EINVALID, "download video URL required")
	}
	if d.Path == "" {
		return Errorf(EINVALID, "download path required")
	}
	return nil
}

// DownloadHistory remembers which videos have already been downloaded.
type DownloadHistory interface {
	// RecordDownload stores a completed download, replacing any previous
	// record for the same video URL.
	RecordDownload(ctx context.Context, d *Download) error

	// FindDownloadByURL returns the download for a video URL.
	// Returns ENOTFOUND if the video was never downloaded.
	FindDownloadByURL(ctx context.Context, videoURL string) (*Download, error)

	// ListDownloads returns all downloads, newest first.
	ListDownloads(ctx context.Context) ([]*Download, error)
}

// Exporter writes an extraction result somewhere for external inspection.
type Exporter interface {
	Export(ctx context.Context, videos []Video) error
}
