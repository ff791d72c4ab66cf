// Package ytdlp downloads videos with the yt-dlp command line tool.
package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/fwojciec/vidgrab"
)

// Ensure Downloader implements vidgrab.Downloader at compile time.
var _ vidgrab.Downloader = (*Downloader)(nil)

// DefaultTimeout bounds a single video download.
const DefaultTimeout = 30 * time.Minute

// Runner executes a command and returns its stderr output.
type Runner func(ctx context.Context, name string, args ...string) (stderr []byte, err error)

// Downloader fetches videos by running yt-dlp once per video.
type Downloader struct {
	binary  string
	run     Runner
	timeout time.Duration
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithBinary sets the yt-dlp executable. Defaults to "yt-dlp" on PATH.
func WithBinary(path string) Option {
	return func(d *Downloader) {
		if path != "" {
			d.binary = path
		}
	}
}

// WithRunner replaces process execution, mainly for tests.
func WithRunner(run Runner) Option {
	return func(d *Downloader) {
		d.run = run
	}
}

// WithTimeout sets the per-video download budget. Defaults to 30 minutes.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Downloader) {
		d.timeout = timeout
	}
}

// NewDownloader creates a new Downloader.
func NewDownloader(opts ...Option) *Downloader {
	d := &Downloader{
		binary:  "yt-dlp",
		run:     execRunner,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download saves videoURL as dir/<SanitizeFilename(filename)>. An existing
// file at that path is treated as already downloaded.
func (d *Downloader) Download(ctx context.Context, videoURL, filename, dir string) (string, error) {
	if videoURL == "" {
		return "", vidgrab.Errorf(vidgrab.EINVALID, "video URL required")
	}
	if dir == "" {
		dir = "."
	}

	path := filepath.Join(dir, SanitizeFilename(filename))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating destination %s: %w", dir, err)
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	stderr, err := d.run(ctx, d.binary,
		"-f", "b",
		"--no-warnings",
		"--no-progress",
		"--merge-output-format", "mp4",
		"-o", path,
		videoURL,
	)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if loginRequired(msg) {
			return "", vidgrab.Errorf(vidgrab.EUNAUTHORIZED, "%s requires a logged-in session: %s", videoURL, msg)
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", vidgrab.Errorf(vidgrab.EDOWNLOAD, "downloading %s: timed out after %s", videoURL, d.timeout)
		}
		if msg == "" {
			msg = err.Error()
		}
		return "", vidgrab.Errorf(vidgrab.EDOWNLOAD, "downloading %s: %s", videoURL, msg)
	}

	return path, nil
}

// reservedChars cannot appear in file names on at least one common platform.
const reservedChars = `/\:*?"<>|`

// SanitizeFilename turns a video title into a safe file name ending in .mp4.
func SanitizeFilename(title string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) || strings.ContainsRune(reservedChars, r) {
			return '_'
		}
		return r
	}, title)
	name = strings.Join(strings.Fields(name), " ")
	name = strings.Trim(name, ". ")
	if name == "" {
		name = "video"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".mp4") {
		name += ".mp4"
	}
	return name
}

var loginMarkers = []string{
	"login required",
	"log in",
	"sign in",
	"registered users",
	"--cookies",
}

func loginRequired(stderr string) bool {
	s := strings.ToLower(stderr)
	for _, m := range loginMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}
