package fs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/vidgrab"
	"gopkg.in/yaml.v3"
)

// Ensure ResultCache implements vidgrab.ResultCache at compile time.
var _ vidgrab.ResultCache = (*ResultCache)(nil)

// ResultCache stores extraction results as one YAML file per source URL.
// File names are derived with vidgrab.CacheKey. The directory is created on
// the first Put. No locking is performed; concurrent writers to the same
// record resolve as last writer wins.
type ResultCache struct {
	dir string
}

// NewResultCache creates a new ResultCache rooted at dir.
func NewResultCache(dir string) *ResultCache {
	return &ResultCache{dir: dir}
}

// Path returns the file that holds the record for url.
func (c *ResultCache) Path(url string) string {
	return filepath.Join(c.dir, vidgrab.CacheKey(url)+".yaml")
}

func (c *ResultCache) Get(ctx context.Context, url string) ([]vidgrab.Video, error) {
	data, err := os.ReadFile(c.Path(url))
	if os.IsNotExist(err) {
		return nil, vidgrab.Errorf(vidgrab.ENOTFOUND, "no cached result for %s", url)
	}
	if err != nil {
		return nil, vidgrab.Errorf(vidgrab.ECORRUPT, "reading cached result for %s: %v", url, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, vidgrab.Errorf(vidgrab.ECORRUPT, "empty cached result for %s", url)
	}

	var videos []vidgrab.Video
	if err := yaml.Unmarshal(data, &videos); err != nil {
		return nil, vidgrab.Errorf(vidgrab.ECORRUPT, "decoding cached result for %s: %v", url, err)
	}
	if videos == nil {
		videos = []vidgrab.Video{}
	}
	for i, v := range videos {
		if err := v.Validate(); err != nil {
			return nil, vidgrab.Errorf(vidgrab.ECORRUPT, "cached result for %s, entry %d: %s", url, i, vidgrab.ErrorMessage(err))
		}
	}
	return videos, nil
}

func (c *ResultCache) Put(ctx context.Context, url string, videos []vidgrab.Video) error {
	if videos == nil {
		videos = []vidgrab.Video{}
	}
	data, err := yaml.Marshal(videos)
	if err != nil {
		return fmt.Errorf("encoding result for %s: %w", url, err)
	}
	if err := writeFileAtomic(c.Path(url), data); err != nil {
		return fmt.Errorf("writing cached result for %s: %w", url, err)
	}
	return nil
}

func (c *ResultCache) Invalidate(ctx context.Context, url string) error {
	return removeFile(c.Path(url))
}
