package rod_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/vidgrab"
	"github.com/fwojciec/vidgrab/mock"
	"github.com/fwojciec/vidgrab/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("logs url, host, size and duration at debug level", func(t *testing.T) {
		t.Parallel()

		// Given
		var buf bytes.Buffer
		inner := &mock.Renderer{
			RenderFn: func(context.Context, string) (string, error) {
				return "<html></html>", nil
			},
		}
		r := rod.NewLoggingRenderer(inner, debugLogger(&buf))

		// When
		html, err := r.Render(context.Background(), "https://vkvideo.ru/@a/all")

		// Then
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "msg=rendered")
		assert.Contains(t, output, "url=https://vkvideo.ru/@a/all")
		assert.Contains(t, output, "host=vkvideo.ru")
		assert.Contains(t, output, "bytes=13")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "login=")
	})

	t.Run("successful renders are quiet at info level", func(t *testing.T) {
		t.Parallel()

		// Given
		var buf bytes.Buffer
		inner := &mock.Renderer{
			RenderFn: func(context.Context, string) (string, error) {
				return "<html></html>", nil
			},
		}
		r := rod.NewLoggingRenderer(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		// When
		_, err := r.Render(context.Background(), "https://vkvideo.ru/@a/all")

		// Then
		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("reports the login banner", func(t *testing.T) {
		t.Parallel()

		// Given
		var buf bytes.Buffer
		inner := &mock.Renderer{
			RenderFn: func(context.Context, string) (string, error) {
				return "<p>please log in</p>", nil
			},
		}
		login := &mock.LoginDetector{
			LoginRequiredFn: func(html string) bool {
				return strings.Contains(html, "log in")
			},
		}
		r := rod.NewLoggingRenderer(inner, debugLogger(&buf), rod.WithLoginDetector(login))

		// When
		_, err := r.Render(context.Background(), "https://vkvideo.ru/@a/all")

		// Then
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "login=true")
	})

	t.Run("logs a warning with the error code on failure", func(t *testing.T) {
		t.Parallel()

		// Given
		var buf bytes.Buffer
		inner := &mock.Renderer{
			RenderFn: func(_ context.Context, url string) (string, error) {
				return "", &vidgrab.RenderError{URL: url, Code: vidgrab.ETIMEOUT, Err: errors.New("navigation deadline")}
			},
		}
		r := rod.NewLoggingRenderer(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		// When
		_, err := r.Render(context.Background(), "https://vkvideo.ru/@a/all")

		// Then
		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "msg=\"render failed\"")
		assert.Contains(t, output, "code=timeout")
		assert.Contains(t, output, "navigation deadline")
		assert.NotContains(t, output, "bytes=")
	})

	t.Run("unclassified failures are internal", func(t *testing.T) {
		t.Parallel()

		// Given
		var buf bytes.Buffer
		inner := &mock.Renderer{
			RenderFn: func(context.Context, string) (string, error) {
				return "", errors.New("browser crashed")
			},
		}
		r := rod.NewLoggingRenderer(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		// When
		_, err := r.Render(context.Background(), "https://vkvideo.ru/@a/all")

		// Then
		require.Error(t, err)
		assert.Contains(t, buf.String(), "code=internal")
		assert.Contains(t, buf.String(), "err=\"browser crashed\"")
	})
}

func TestLoggingRenderer_Close(t *testing.T) {
	t.Parallel()

	closed := false
	inner := &mock.Renderer{CloseFn: func() error {
		closed = true
		return nil
	}}

	r := rod.NewLoggingRenderer(inner, slog.New(slog.DiscardHandler))

	require.NoError(t, r.Close())
	assert.True(t, closed)
}
