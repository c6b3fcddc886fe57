package templates

import "sync"

// Key formats the cache and storage key of a template version.
func Key(id, version string) string {
	return id + "@" + version
}

// Cache keeps constructed templates in memory. Entries are immutable, so a
// key is only ever written once; new template versions get new keys.
type Cache struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

func NewCache() *Cache {
	return &Cache{templates: make(map[string]*Template)}
}

func (c *Cache) Get(key string) (*Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.templates[key]
	return t, ok
}

// Put stores t unless another goroutine already stored the same key, and
// returns the template that ends up in the cache.
func (c *Cache) Put(t *Template) *Template {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.templates[t.Key()]; ok {
		return existing
	}
	c.templates[t.Key()] = t
	return t
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}
