package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/vidgrab"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ vidgrab.DownloadHistory = (*DownloadService)(nil)

// DownloadService implements vidgrab.DownloadHistory using SQLite.
type DownloadService struct {
	db *DB
}

// NewDownloadService creates a new DownloadService.
func NewDownloadService(db *DB) *DownloadService {
	return &DownloadService{db: db}
}

// RecordDownload inserts a download or updates the existing record for the
// same video URL. The stored ID is written back to d.
func (s *DownloadService) RecordDownload(ctx context.Context, d *vidgrab.Download) error {
	if err := d.Validate(); err != nil {
		return err
	}

	if d.DownloadedAt.IsZero() {
		d.DownloadedAt = time.Now()
	}
	d.DownloadedAt = d.DownloadedAt.UTC().Truncate(time.Second)

	return s.db.QueryRowContext(ctx, `
		INSERT INTO downloads (id, video_url, title, path, downloaded_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(video_url) DO UPDATE SET
			title = excluded.title,
			path = excluded.path,
			downloaded_at = excluded.downloaded_at
		RETURNING id
	`, uuid.New().String(), d.VideoURL, d.Title, d.Path,
		d.DownloadedAt.Format(time.RFC3339)).Scan(&d.ID)
}

// FindDownloadByURL retrieves the download for a video URL.
func (s *DownloadService) FindDownloadByURL(ctx context.Context, videoURL string) (*vidgrab.Download, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, video_url, title, path, downloaded_at
		FROM downloads
		WHERE video_url = ?
	`, videoURL)

	d, err := scanDownload(row)
	if err == sql.ErrNoRows {
		return nil, vidgrab.Errorf(vidgrab.ENOTFOUND, "download not found")
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListDownloads retrieves every recorded download, newest first.
func (s *DownloadService) ListDownloads(ctx context.Context) ([]*vidgrab.Download, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, video_url, title, path, downloaded_at
		FROM downloads
		ORDER BY downloaded_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	downloads := []*vidgrab.Download{}
	for rows.Next() {
		d, err := scanDownload(rows)
		if err != nil {
			return nil, err
		}
		downloads = append(downloads, d)
	}

	return downloads, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDownload(row scanner) (*vidgrab.Download, error) {
	var d vidgrab.Download
	var downloadedAt string

	if err := row.Scan(&d.ID, &d.VideoURL, &d.Title, &d.Path, &downloadedAt); err != nil {
		return nil, err
	}

	var err error
	d.DownloadedAt, err = parseRFC3339(downloadedAt, "downloaded_at")
	if err != nil {
		return nil, err
	}
	return &d, nil
}
