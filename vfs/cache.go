package vfs

// SourceCache maps source unit names to file content. Entries are written
// once per name in practice: by explicit injection or by the first
// successful read. There is no invalidation; a cached name is served
// unchanged for the rest of the compilation job.
//
// Like the FileReader that owns it, the cache is single-goroutine and
// unlocked.
type SourceCache struct {
	sources map[string]string
}

// NewSourceCache creates an empty cache.
func NewSourceCache() *SourceCache {
	return &SourceCache{sources: make(map[string]string)}
}

// Insert stores content under name, overwriting any previous entry.
func (c *SourceCache) Insert(name, content string) {
	c.sources[name] = content
}

// Get retrieves the content cached under name.
func (c *SourceCache) Get(name string) (string, bool) {
	content, ok := c.sources[name]
	return content, ok
}

// Replace discards every entry and installs sources as the new cache
// content. A nil map clears the cache.
func (c *SourceCache) Replace(sources map[string]string) {
	c.sources = make(map[string]string, len(sources))
	for name, content := range sources {
		c.sources[name] = content
	}
}

// Len returns the number of cached source units.
func (c *SourceCache) Len() int {
	return len(c.sources)
}

// Each iterates over all cached source units.
func (c *SourceCache) Each(fn func(name, content string) bool) {
	for name, content := range c.sources {
		if !fn(name, content) {
			break
		}
	}
}

// Snapshot returns a copy of the cache content.
func (c *SourceCache) Snapshot() map[string]string {
	out := make(map[string]string, len(c.sources))
	for name, content := range c.sources {
		out[name] = content
	}
	return out
}
