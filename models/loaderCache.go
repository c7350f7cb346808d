package models

import (
	"os"
	"sync"
	"time"
)

// LoaderCache memoizes parsed source files so repeated pipeline runs do not
// re-parse unchanged workbooks. Entries are keyed by path and validated
// against (mtime, size); a changed file misses and is re-read.
//
// The cache is an explicit object handed to the loaders, never ambient
// state. A nil *LoaderCache disables caching.
type LoaderCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	value   any
}

func NewLoaderCache() *LoaderCache {
	return &LoaderCache{entries: make(map[string]cacheEntry)}
}

func (c *LoaderCache) lookup(path string, info os.FileInfo) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	if !ok || !e.modTime.Equal(info.ModTime()) || e.size != info.Size() {
		return nil, false
	}
	return e.value, true
}

func (c *LoaderCache) store(path string, info os.FileInfo, value any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = cacheEntry{modTime: info.ModTime(), size: info.Size(), value: value}
}
