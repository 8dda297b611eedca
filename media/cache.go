package media

import (
	"container/list"
	"sync"
	"time"
)

type cacheEntry struct {
	key        string
	value      []byte
	expiration time.Time
}

// renderCache is a fixed-capacity LRU with per-entry TTL for rendered
// previews, so a burst of identical transform requests decodes and
// re-encodes the source image once.
type renderCache struct {
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	lruList  *list.List
	mu       sync.Mutex

	hitCount  int64
	missCount int64
}

func newRenderCache(capacity int, ttl time.Duration) *renderCache {
	return &renderCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element),
		lruList:  list.New(),
	}
}

func (c *renderCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiration := time.Now().Add(c.ttl)

	if elem, exists := c.items[key]; exists {
		c.lruList.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		entry.value = value
		entry.expiration = expiration
		return
	}

	elem := c.lruList.PushFront(&cacheEntry{key: key, value: value, expiration: expiration})
	c.items[key] = elem

	if c.lruList.Len() > c.capacity {
		oldest := c.lruList.Back()
		if oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *renderCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[key]
	if !exists {
		c.missCount++
		return nil, false
	}

	entry := elem.Value.(*cacheEntry)
	if time.Now().After(entry.expiration) {
		c.removeElement(elem)
		c.missCount++
		return nil, false
	}

	c.lruList.MoveToFront(elem)
	c.hitCount++
	return entry.value, true
}

// InvalidatePrefix drops every entry whose key starts with prefix,
// used when an asset is destroyed.
func (c *renderCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, elem := range c.items {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			c.removeElement(elem)
		}
	}
}

func (c *renderCache) removeElement(elem *list.Element) {
	entry := elem.Value.(*cacheEntry)
	delete(c.items, entry.key)
	c.lruList.Remove(elem)
}
