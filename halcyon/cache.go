package halcyon

import (
	"context"
	"sync"
	"time"
)

// CachedDatasource memoises SelectOne. A cached record is served while the
// wrapped datasource reports the same modification time for it. Writes made
// through the cache drop the affected entries.
type CachedDatasource struct {
	Datasource

	mu      sync.RWMutex
	entries map[string]Record
}

// NewCachedDatasource wraps ds.
func NewCachedDatasource(ds Datasource) *CachedDatasource {
	return &CachedDatasource{Datasource: ds, entries: make(map[string]Record)}
}

// Unwrap returns the wrapped datasource.
func (c *CachedDatasource) Unwrap() Datasource { return c.Datasource }

// SelectOne returns the cached record when it is still current.
func (c *CachedDatasource) SelectOne(ctx context.Context, dir, name, ext string) (*Record, error) {
	k := key(dir, name, ext)

	c.mu.RLock()
	r, ok := c.entries[k]
	c.mu.RUnlock()
	if ok {
		mtime, err := c.Datasource.LastModified(ctx, dir, name, ext)
		if err == nil && mtime.Equal(r.MTime) {
			return &r, nil
		}
	}

	fresh, err := c.Datasource.SelectOne(ctx, dir, name, ext)
	if err != nil {
		c.Invalidate(dir, name, ext)
		return nil, err
	}
	c.mu.Lock()
	c.entries[k] = *fresh
	c.mu.Unlock()
	return fresh, nil
}

// Insert creates a template and drops any cached entry for it.
func (c *CachedDatasource) Insert(ctx context.Context, dir, name, ext, content string) (*Record, error) {
	defer c.Invalidate(dir, name, ext)
	return c.Datasource.Insert(ctx, dir, name, ext, content)
}

// Update rewrites a template and drops the cached old and new names.
func (c *CachedDatasource) Update(ctx context.Context, dir, name, ext, content string, opts UpdateOptions) (*Record, error) {
	oldName, oldExt := opts.resolve(name, ext)
	defer c.Invalidate(dir, oldName, oldExt)
	defer c.Invalidate(dir, name, ext)
	return c.Datasource.Update(ctx, dir, name, ext, content, opts)
}

// Delete removes a template and its cache entry.
func (c *CachedDatasource) Delete(ctx context.Context, dir, name, ext string) error {
	defer c.Invalidate(dir, name, ext)
	return c.Datasource.Delete(ctx, dir, name, ext)
}

// LastModified is not cached.
func (c *CachedDatasource) LastModified(ctx context.Context, dir, name, ext string) (time.Time, error) {
	return c.Datasource.LastModified(ctx, dir, name, ext)
}

// Invalidate drops one entry.
func (c *CachedDatasource) Invalidate(dir, name, ext string) {
	c.mu.Lock()
	delete(c.entries, key(dir, name, ext))
	c.mu.Unlock()
}

// Flush drops every entry.
func (c *CachedDatasource) Flush() {
	c.mu.Lock()
	c.entries = make(map[string]Record)
	c.mu.Unlock()
}

// Len returns the number of cached records.
func (c *CachedDatasource) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
