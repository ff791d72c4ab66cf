package main_test

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/vidgrab"
	main "github.com/fwojciec/vidgrab/cmd/vidgrab"
	"github.com/fwojciec/vidgrab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingDownloader(got *[]string) *mock.Downloader {
	return &mock.Downloader{
		DownloadFn: func(_ context.Context, videoURL, filename, dir string) (string, error) {
			*got = append(*got, videoURL)
			return filepath.Join(dir, filename+".mp4"), nil
		},
	}
}

func TestDownload(t *testing.T) {
	t.Parallel()

	t.Run("downloads extracted videos and records them", func(t *testing.T) {
		t.Parallel()

		// Given
		html := page(card("1_2", "First clip"), card("1_3", "Second clip"))
		var calls atomic.Int32
		var downloaded []string
		m := &main.Main{
			Renderer:   staticRenderer(&html, &calls),
			Downloader: recordingDownloader(&downloaded),
		}
		flags := globalFlags(t)
		dest := t.TempDir()

		// When
		_, _, err := run(t, m, append(flags, "url", listingURL, "--download", "-d", dest)...)
		require.NoError(t, err)
		history, _, err := run(t, m, append(flags, "history")...)
		require.NoError(t, err)

		// Then
		assert.Equal(t, []string{"https://vkvideo.ru/video-1_2", "https://vkvideo.ru/video-1_3"}, downloaded)
		assert.Contains(t, history, "First clip")
		assert.Contains(t, history, filepath.Join(dest, "Second clip [1_3].mp4"))
	})

	t.Run("videos sharing a title get distinct files", func(t *testing.T) {
		t.Parallel()

		// Given two cards without usable titles
		html := page(
			`<div><a href="/video-1_1"><span>01:00</span></a></div>`,
			`<div><a href="/video-1_2"><span>02:00</span></a></div>`,
		)
		var calls atomic.Int32
		var downloaded []string
		var files []string
		m := &main.Main{
			Renderer: staticRenderer(&html, &calls),
			Downloader: &mock.Downloader{
				DownloadFn: func(_ context.Context, videoURL, filename, dir string) (string, error) {
					downloaded = append(downloaded, videoURL)
					files = append(files, filename)
					return filepath.Join(dir, filename+".mp4"), nil
				},
			},
		}
		flags := globalFlags(t)

		// When
		_, _, err := run(t, m, append(flags, "url", listingURL, "--download", "-d", t.TempDir())...)
		require.NoError(t, err)
		history, _, err := run(t, m, append(flags, "history")...)
		require.NoError(t, err)

		// Then
		assert.Equal(t, []string{"https://vkvideo.ru/video-1_1", "https://vkvideo.ru/video-1_2"}, downloaded)
		assert.Equal(t, []string{"Untitled Video [1_1]", "Untitled Video [1_2]"}, files)
		assert.Contains(t, history, "Untitled Video [1_1].mp4")
		assert.Contains(t, history, "Untitled Video [1_2].mp4")
	})

	t.Run("skips videos already in the history", func(t *testing.T) {
		t.Parallel()

		// Given
		html := page(card("1_2", "First clip"))
		var calls atomic.Int32
		var downloaded []string
		m := &main.Main{
			Renderer:   staticRenderer(&html, &calls),
			Downloader: recordingDownloader(&downloaded),
		}
		flags := globalFlags(t)
		_, _, err := run(t, m, append(flags, "url", listingURL, "--download", "-d", t.TempDir())...)
		require.NoError(t, err)

		// When
		_, stderr, err := run(t, m, append(flags, "url", listingURL, "--download", "-d", t.TempDir())...)

		// Then
		require.NoError(t, err)
		assert.Len(t, downloaded, 1)
		assert.Contains(t, stderr, "already downloaded")
	})

	t.Run("continues past failures and fails at the end", func(t *testing.T) {
		t.Parallel()

		// Given
		html := page(card("1_2", "Broken"), card("1_3", "Fine"))
		var calls atomic.Int32
		var attempted []string
		m := &main.Main{
			Renderer: staticRenderer(&html, &calls),
			Downloader: &mock.Downloader{
				DownloadFn: func(_ context.Context, videoURL, filename, dir string) (string, error) {
					attempted = append(attempted, videoURL)
					if strings.HasPrefix(filename, "Broken") {
						return "", vidgrab.Errorf(vidgrab.EDOWNLOAD, "yt-dlp exited")
					}
					return filepath.Join(dir, filename+".mp4"), nil
				},
			},
		}

		// When
		_, _, err := run(t, m, append(globalFlags(t), "url", listingURL, "--download", "-d", t.TempDir())...)

		// Then
		require.Error(t, err)
		assert.Equal(t, vidgrab.EDOWNLOAD, vidgrab.ErrorCode(err))
		assert.Len(t, attempted, 2)
	})

	t.Run("fail-fast stops at the first failure", func(t *testing.T) {
		t.Parallel()

		// Given
		html := page(card("1_2", "Broken"), card("1_3", "Fine"))
		var calls atomic.Int32
		var attempted []string
		m := &main.Main{
			Renderer: staticRenderer(&html, &calls),
			Downloader: &mock.Downloader{
				DownloadFn: func(_ context.Context, videoURL, _, _ string) (string, error) {
					attempted = append(attempted, videoURL)
					return "", vidgrab.Errorf(vidgrab.EDOWNLOAD, "yt-dlp exited")
				},
			},
		}

		// When
		_, _, err := run(t, m, append(globalFlags(t), "url", listingURL, "--download", "--fail-fast", "-d", t.TempDir())...)

		// Then
		require.Error(t, err)
		assert.Len(t, attempted, 1)
	})

	t.Run("login wall aborts the batch", func(t *testing.T) {
		t.Parallel()

		// Given
		html := page(card("1_2", "A"), card("1_3", "B"))
		var calls atomic.Int32
		var attempted []string
		m := &main.Main{
			Renderer: staticRenderer(&html, &calls),
			Downloader: &mock.Downloader{
				DownloadFn: func(_ context.Context, videoURL, _, _ string) (string, error) {
					attempted = append(attempted, videoURL)
					return "", vidgrab.Errorf(vidgrab.EUNAUTHORIZED, "login required")
				},
			},
		}

		// When
		_, _, err := run(t, m, append(globalFlags(t), "url", listingURL, "--download", "-d", t.TempDir())...)

		// Then
		assert.Equal(t, vidgrab.EUNAUTHORIZED, vidgrab.ErrorCode(err))
		assert.Len(t, attempted, 1)
	})
}

func TestCmdHistory_Empty(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, main.NewMain(), append(globalFlags(t), "history")...)

	require.NoError(t, err)
	assert.Contains(t, stdout, "No downloads recorded")
}
