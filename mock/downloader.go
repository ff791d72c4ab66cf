package mock

import (
	"context"

	"github.com/fwojciec/vidgrab"
)

// Compile-time interface verification.
var (
	_ vidgrab.Downloader      = (*Downloader)(nil)
	_ vidgrab.DownloadHistory = (*DownloadHistory)(nil)
	_ vidgrab.Exporter        = (*Exporter)(nil)
)

// Downloader is a mock implementation of vidgrab.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, videoURL, filename, dir string) (string, error)
}

func (d *Downloader) Download(ctx context.Context, videoURL, filename, dir string) (string, error) {
	return d.DownloadFn(ctx, videoURL, filename, dir)
}

// DownloadHistory is a mock implementation of vidgrab.DownloadHistory.
type DownloadHistory struct {
	RecordDownloadFn    func(ctx context.Context, d *vidgrab.Download) error
	FindDownloadByURLFn func(ctx context.Context, videoURL string) (*vidgrab.Download, error)
	ListDownloadsFn     func(ctx context.Context) ([]*vidgrab.Download, error)
}

func (h *DownloadHistory) RecordDownload(ctx context.Context, d *vidgrab.Download) error {
	return h.RecordDownloadFn(ctx, d)
}

func (h *DownloadHistory) FindDownloadByURL(ctx context.Context, videoURL string) (*vidgrab.Download, error) {
	return h.FindDownloadByURLFn(ctx, videoURL)
}

func (h *DownloadHistory) ListDownloads(ctx context.Context) ([]*vidgrab.Download, error) {
	return h.ListDownloadsFn(ctx)
}

// Exporter is a mock implementation of vidgrab.Exporter.
type Exporter struct {
	ExportFn func(ctx context.Context, videos []vidgrab.Video) error
}

func (e *Exporter) Export(ctx context.Context, videos []vidgrab.Video) error {
	return e.ExportFn(ctx, videos)
}
