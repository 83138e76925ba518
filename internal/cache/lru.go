package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/mozilla/glean-dictionary/resource"
)

// LRU is a cost-bounded least recently used cache. It is safe for
// concurrent use.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	capacity  int64
	size      int64
	items     map[K]*list.Element
	evictList *list.List
	rc        *resource.Controller
	onEvict   func(K, V)

	hits   atomic.Int64
	misses atomic.Int64
}

type entry[K comparable, V any] struct {
	key   K
	value V
	cost  int64
}

// NewLRU creates an LRU holding at most capacity cost units.
// If rc is provided, costs are reserved from its item budget.
func NewLRU[K comparable, V any](capacity int64, rc *resource.Controller) *LRU[K, V] {
	return &LRU[K, V]{
		capacity:  capacity,
		items:     make(map[K]*list.Element),
		evictList: list.New(),
		rc:        rc,
	}
}

// OnEvict registers fn to be called, under the cache lock, for every entry
// removed by eviction or Remove.
func (c *LRU[K, V]) OnEvict(fn func(K, V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Get returns a cached value.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(ent)
		return ent.Value.(*entry[K, V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set caches value with the given cost and reports whether it was admitted.
// Values costing more than the capacity, or whose cost the controller
// refuses, are not cached.
func (c *LRU[K, V]) Set(key K, value V, cost int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cost < 0 {
		cost = 0
	}
	if ent, ok := c.items[key]; ok {
		c.removeElement(ent)
	}
	if cost > c.capacity {
		return false
	}

	// Evict to make space locally first so released cost is available to
	// the controller.
	for c.size+cost > c.capacity {
		back := c.evictList.Back()
		if back == nil {
			break
		}
		c.removeElement(back)
	}

	for c.rc != nil && c.rc.AcquireItems(cost) != nil {
		back := c.evictList.Back()
		if back == nil {
			return false
		}
		c.removeElement(back)
	}

	element := c.evictList.PushFront(&entry[K, V]{key: key, value: value, cost: cost})
	c.items[key] = element
	c.size += cost
	return true
}

// Remove drops key from the cache.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.items[key]
	if ok {
		c.removeElement(ent)
	}
	return ok
}

// Invalidate removes entries matching the predicate.
func (c *LRU[K, V]) Invalidate(predicate func(key K) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var toRemove []*list.Element
	for key, element := range c.items {
		if predicate(key) {
			toRemove = append(toRemove, element)
		}
	}
	for _, e := range toRemove {
		c.removeElement(e)
	}
}

// Keys returns the cached keys, most recently used first.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, c.evictList.Len())
	for e := c.evictList.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.(*entry[K, V]).key)
	}
	return keys
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Size returns the total cost of the cached entries.
func (c *LRU[K, V]) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Stats returns cache statistics.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Purge removes every entry.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for e := c.evictList.Back(); e != nil; e = c.evictList.Back() {
		c.removeElement(e)
	}
}

func (c *LRU[K, V]) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry[K, V])
	delete(c.items, kv.key)
	c.size -= kv.cost
	if c.rc != nil {
		c.rc.ReleaseItems(kv.cost)
	}
	if c.onEvict != nil {
		c.onEvict(kv.key, kv.value)
	}
}
