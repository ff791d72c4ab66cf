package vidgrab_test

import (
	"testing"

	"github.com/fwojciec/vidgrab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideo_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts url and title", func(t *testing.T) {
		t.Parallel()

		v := vidgrab.Video{URL: "https://vkvideo.ru/video-1_2", Title: "Clip"}

		require.NoError(t, v.Validate())
	})

	t.Run("requires url", func(t *testing.T) {
		t.Parallel()

		err := vidgrab.Video{Title: "Clip"}.Validate()

		assert.Equal(t, vidgrab.EINVALID, vidgrab.ErrorCode(err))
	})

	t.Run("requires title", func(t *testing.T) {
		t.Parallel()

		err := vidgrab.Video{URL: "https://vkvideo.ru/video-1_2"}.Validate()

		assert.Equal(t, vidgrab.EINVALID, vidgrab.ErrorCode(err))
	})
}

func TestNewVideos(t *testing.T) {
	t.Parallel()

	t.Run("returns entries missing from known in fresh order", func(t *testing.T) {
		t.Parallel()

		known := []vidgrab.Video{
			{URL: "https://vkvideo.ru/video-1_2", Title: "Old"},
		}
		fresh := []vidgrab.Video{
			{URL: "https://vkvideo.ru/video-1_4", Title: "Newest"},
			{URL: "https://vkvideo.ru/video-1_2", Title: "Old (retitled)"},
			{URL: "https://vkvideo.ru/video-1_3", Title: "Newer"},
		}

		added := vidgrab.NewVideos(fresh, known)

		assert.Equal(t, []vidgrab.Video{
			{URL: "https://vkvideo.ru/video-1_4", Title: "Newest"},
			{URL: "https://vkvideo.ru/video-1_3", Title: "Newer"},
		}, added)
	})

	t.Run("returns empty slice when nothing changed", func(t *testing.T) {
		t.Parallel()

		videos := []vidgrab.Video{{URL: "https://vkvideo.ru/video-1_2", Title: "Old"}}

		added := vidgrab.NewVideos(videos, videos)

		assert.NotNil(t, added)
		assert.Empty(t, added)
	})
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	t.Run("is stable for the same URL", func(t *testing.T) {
		t.Parallel()

		a := vidgrab.CacheKey("https://vkvideo.ru/@public111751633/all")
		b := vidgrab.CacheKey("https://vkvideo.ru/@public111751633/all")

		assert.Equal(t, a, b)
		assert.Len(t, a, 16)
	})

	t.Run("differs between URLs", func(t *testing.T) {
		t.Parallel()

		a := vidgrab.CacheKey("https://vkvideo.ru/@public111751633/all")
		b := vidgrab.CacheKey("https://vkvideo.ru/@club180058315/all")

		assert.NotEqual(t, a, b)
	})
}

func TestVideo_FileStem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		video vidgrab.Video
		id    string
		want  string
	}{
		{"appends the video id", vidgrab.Video{URL: "https://vkvideo.ru/video-1_2", Title: "Clip"}, "1_2", "Clip [1_2]"},
		{"untitled videos stay distinct", vidgrab.Video{URL: "https://vkvideo.ru/video-1_3", Title: vidgrab.UntitledVideo}, "1_3", "Untitled Video [1_3]"},
		{"non-video URL keeps the title", vidgrab.Video{URL: "https://vkvideo.ru/@club/all", Title: "Clip"}, "", "Clip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.id, tt.video.ID())
			assert.Equal(t, tt.want, tt.video.FileStem())
		})
	}
}
