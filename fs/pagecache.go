package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/vidgrab"
)

// Ensure PageCache implements vidgrab.PageCache at compile time.
var _ vidgrab.PageCache = (*PageCache)(nil)

// PageCache records rendered HTML as one file per source URL so pages can be
// replayed without a browser. It shares key derivation and overwrite
// semantics with ResultCache but is otherwise independent of it.
type PageCache struct {
	dir string
}

// NewPageCache creates a new PageCache rooted at dir.
func NewPageCache(dir string) *PageCache {
	return &PageCache{dir: dir}
}

// Path returns the file that holds the recorded page for url.
func (c *PageCache) Path(url string) string {
	return filepath.Join(c.dir, vidgrab.CacheKey(url)+".html")
}

func (c *PageCache) Get(ctx context.Context, url string) (string, error) {
	data, err := os.ReadFile(c.Path(url))
	if os.IsNotExist(err) {
		return "", vidgrab.Errorf(vidgrab.ENOTFOUND, "no recorded page for %s", url)
	}
	if err != nil {
		return "", vidgrab.Errorf(vidgrab.ECORRUPT, "reading recorded page for %s: %v", url, err)
	}
	return string(data), nil
}

func (c *PageCache) Put(ctx context.Context, url string, html string) error {
	if err := writeFileAtomic(c.Path(url), []byte(html)); err != nil {
		return fmt.Errorf("recording page for %s: %w", url, err)
	}
	return nil
}

func (c *PageCache) Invalidate(ctx context.Context, url string) error {
	return removeFile(c.Path(url))
}
