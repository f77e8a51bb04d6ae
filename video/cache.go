package video

import (
	"container/list"
	"sync"
)

const DefaultCacheCapacity = 100

type CacheKey struct {
	Variant string
	Index   int
	Width   int
	Height  int
	Quality QualityPreset
}

type cacheEntry struct {
	key   CacheKey
	frame string
}

// FrameCache is an LRU of rendered frames.
type FrameCache struct {
	capacity int
	items    map[CacheKey]*list.Element
	order    *list.List
	mu       sync.RWMutex
}

func NewFrameCache(capacity int) *FrameCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &FrameCache{
		capacity: capacity,
		items:    make(map[CacheKey]*list.Element),
		order:    list.New(),
	}
}

func (c *FrameCache) Get(key CacheKey) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*cacheEntry).frame, true
	}
	return "", false
}

func (c *FrameCache) Put(key CacheKey, frame string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).frame = frame
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).key)
		}
	}

	entry := &cacheEntry{key: key, frame: frame}
	elem := c.order.PushFront(entry)
	c.items[key] = elem
}

func (c *FrameCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[CacheKey]*list.Element)
	c.order.Init()
}

func (c *FrameCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}
