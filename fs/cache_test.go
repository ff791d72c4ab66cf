package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/vidgrab"
	"github.com/fwojciec/vidgrab/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Extraction Cache
// Results are stored per source URL and survive across runs

const listingURL = "https://vkvideo.ru/@public111751633/all"

func TestResultCache_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns not found for unknown URL", func(t *testing.T) {
		t.Parallel()

		// Given an empty cache directory that does not exist yet
		cache := fs.NewResultCache(filepath.Join(t.TempDir(), "cache"))

		// When I look up a URL
		_, err := cache.Get(context.Background(), listingURL)

		// Then it is a miss
		require.Error(t, err)
		assert.Equal(t, vidgrab.ENOTFOUND, vidgrab.ErrorCode(err))
	})

	t.Run("round trips stored videos in order", func(t *testing.T) {
		t.Parallel()

		cache := fs.NewResultCache(t.TempDir())
		videos := []vidgrab.Video{
			{URL: "https://vkvideo.ru/video-1_2", Title: "Первое видео"},
			{URL: "https://vkvideo.ru/video-1_3", Title: "Second: the sequel"},
		}

		require.NoError(t, cache.Put(context.Background(), listingURL, videos))
		got, err := cache.Get(context.Background(), listingURL)

		require.NoError(t, err)
		assert.Equal(t, videos, got)
	})

	t.Run("round trips empty result", func(t *testing.T) {
		t.Parallel()

		cache := fs.NewResultCache(t.TempDir())

		require.NoError(t, cache.Put(context.Background(), listingURL, nil))
		got, err := cache.Get(context.Background(), listingURL)

		require.NoError(t, err)
		assert.Equal(t, []vidgrab.Video{}, got)
	})

	t.Run("reports corrupt record", func(t *testing.T) {
		t.Parallel()

		// Given a record that is not valid YAML
		cache := fs.NewResultCache(t.TempDir())
		require.NoError(t, os.WriteFile(cache.Path(listingURL), []byte("{{{not yaml"), 0644))

		// When I read it
		_, err := cache.Get(context.Background(), listingURL)

		// Then it is reported as corrupt
		require.Error(t, err)
		assert.Equal(t, vidgrab.ECORRUPT, vidgrab.ErrorCode(err))
	})

	t.Run("reports record with invalid entries as corrupt", func(t *testing.T) {
		t.Parallel()

		cache := fs.NewResultCache(t.TempDir())
		require.NoError(t, os.WriteFile(cache.Path(listingURL), []byte("- title: no url\n"), 0644))

		_, err := cache.Get(context.Background(), listingURL)

		assert.Equal(t, vidgrab.ECORRUPT, vidgrab.ErrorCode(err))
	})

	t.Run("reports empty file as corrupt", func(t *testing.T) {
		t.Parallel()

		cache := fs.NewResultCache(t.TempDir())
		require.NoError(t, os.WriteFile(cache.Path(listingURL), nil, 0644))

		_, err := cache.Get(context.Background(), listingURL)

		assert.Equal(t, vidgrab.ECORRUPT, vidgrab.ErrorCode(err))
	})
}

func TestResultCache_Put(t *testing.T) {
	t.Parallel()

	t.Run("creates directory lazily", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "cache")
		cache := fs.NewResultCache(dir)

		err := cache.Put(context.Background(), listingURL, []vidgrab.Video{{URL: "https://vkvideo.ru/video-1_2", Title: "A"}})

		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, vidgrab.CacheKey(listingURL)+".yaml"))
		require.NoError(t, err)
	})

	t.Run("overwrites existing record", func(t *testing.T) {
		t.Parallel()

		cache := fs.NewResultCache(t.TempDir())
		ctx := context.Background()
		require.NoError(t, cache.Put(ctx, listingURL, []vidgrab.Video{{URL: "https://vkvideo.ru/video-1_2", Title: "Old"}}))

		require.NoError(t, cache.Put(ctx, listingURL, []vidgrab.Video{{URL: "https://vkvideo.ru/video-1_3", Title: "New"}}))
		got, err := cache.Get(ctx, listingURL)

		require.NoError(t, err)
		assert.Equal(t, []vidgrab.Video{{URL: "https://vkvideo.ru/video-1_3", Title: "New"}}, got)
	})

	t.Run("writes human readable records", func(t *testing.T) {
		t.Parallel()

		cache := fs.NewResultCache(t.TempDir())
		require.NoError(t, cache.Put(context.Background(), listingURL, []vidgrab.Video{{URL: "https://vkvideo.ru/video-1_2", Title: "Clip"}}))

		data, err := os.ReadFile(cache.Path(listingURL))

		require.NoError(t, err)
		assert.Contains(t, string(data), "url: https://vkvideo.ru/video-1_2")
		assert.Contains(t, string(data), "title: Clip")
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cache := fs.NewResultCache(dir)
		require.NoError(t, cache.Put(context.Background(), listingURL, nil))

		entries, err := os.ReadDir(dir)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, vidgrab.CacheKey(listingURL)+".yaml", entries[0].Name())
	})

	t.Run("keeps URLs in separate records", func(t *testing.T) {
		t.Parallel()

		cache := fs.NewResultCache(t.TempDir())
		ctx := context.Background()
		other := "https://vkvideo.ru/@club180058315/all"
		require.NoError(t, cache.Put(ctx, listingURL, []vidgrab.Video{{URL: "https://vkvideo.ru/video-1_2", Title: "A"}}))
		require.NoError(t, cache.Put(ctx, other, []vidgrab.Video{{URL: "https://vkvideo.ru/video-3_4", Title: "B"}}))

		got, err := cache.Get(ctx, listingURL)

		require.NoError(t, err)
		assert.Equal(t, "A", got[0].Title)
		assert.NotEqual(t, cache.Path(listingURL), cache.Path(other))
	})
}

func TestResultCache_Invalidate(t *testing.T) {
	t.Parallel()

	t.Run("removes record", func(t *testing.T) {
		t.Parallel()

		cache := fs.NewResultCache(t.TempDir())
		ctx := context.Background()
		require.NoError(t, cache.Put(ctx, listingURL, nil))

		require.NoError(t, cache.Invalidate(ctx, listingURL))
		_, err := cache.Get(ctx, listingURL)

		assert.Equal(t, vidgrab.ENOTFOUND, vidgrab.ErrorCode(err))
	})

	t.Run("ignores missing record", func(t *testing.T) {
		t.Parallel()

		cache := fs.NewResultCache(t.TempDir())

		err := cache.Invalidate(context.Background(), listingURL)

		require.NoError(t, err)
	})
}
