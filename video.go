package vidgrab

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// UntitledVideo is the title given to a video when no usable title text
// could be found on the listing page.
const UntitledVideo = "Untitled Video"

// Video is a single entry extracted from a listing page.
type Video struct {
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title" yaml:"title"`
}

// Validate returns an error if the video contains invalid fields.
func (v Video) Validate() error {
	if v.URL == "" {
		return Errorf(EINVALID, "video URL required")
	}
	if v.Title == "" {
		return Errorf(EINVALID, "video title required")
	}
	return nil
}

// ID returns the <owner>_<item> identifier from the video URL, or an empty
// string when the URL does not point at a video.
func (v Video) ID() string {
	u, err := url.Parse(v.URL)
	if err != nil {
		return ""
	}
	id, ok := strings.CutPrefix(u.Path, "/video-")
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}

// FileStem returns a file name stem for the video that stays unique when
// several videos share a title, such as UntitledVideo.
func (v Video) FileStem() string {
	id := v.ID()
	if id == "" {
		return v.Title
	}
	return v.Title + " [" + id + "]"
}

// NewVideos returns the entries of fresh whose URL does not appear in known,
// in the order they appear in fresh.
func NewVideos(fresh, known []Video) []Video {
	seen := make(map[string]struct{}, len(known))
	for _, v := range known {
		seen[v.URL] = struct{}{}
	}
	added := []Video{}
	for _, v := range fresh {
		if _, ok := seen[v.URL]; ok {
			continue
		}
		added = append(added, v)
	}
	return added
}

// CacheKey derives the stable storage key for a source URL.
// The same URL always maps to the same key.
func CacheKey(url string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(url))
}
