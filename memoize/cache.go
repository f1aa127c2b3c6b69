package memoize

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache stores memoized results. Implementations must be safe for concurrent
// use.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Has(key K) bool
	Delete(key K)
	Clear()
	Len() int
}

// MapCache is an unbounded Cache backed by a map. It is the default store.
type MapCache[K comparable, V any] struct {
	mux     sync.RWMutex
	entries map[K]V
}

// NewMapCache returns an empty MapCache.
func NewMapCache[K comparable, V any]() *MapCache[K, V] {
	return &MapCache[K, V]{entries: map[K]V{}}
}

func (c *MapCache[K, V]) Get(key K) (V, bool) {
	c.mux.RLock()
	defer c.mux.RUnlock()

	v, ok := c.entries[key]
	return v, ok
}

func (c *MapCache[K, V]) Set(key K, value V) {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.entries == nil {
		c.entries = map[K]V{}
	}
	c.entries[key] = value
}

func (c *MapCache[K, V]) Has(key K) bool {
	_, ok := c.Get(key)
	return ok
}

func (c *MapCache[K, V]) Delete(key K) {
	c.mux.Lock()
	defer c.mux.Unlock()

	delete(c.entries, key)
}

func (c *MapCache[K, V]) Clear() {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.entries = map[K]V{}
}

func (c *MapCache[K, V]) Len() int {
	c.mux.RLock()
	defer c.mux.RUnlock()

	return len(c.entries)
}

// LRUCache is a Cache holding at most a fixed number of entries, evicting the
// least recently used.
type LRUCache[K comparable, V any] struct {
	entries *lru.Cache[K, V]
}

// NewLRUCache returns an LRUCache holding up to size entries. It fails if size
// is not positive.
func NewLRUCache[K comparable, V any](size int) (*LRUCache[K, V], error) {
	entries, err := lru.New[K, V](size)
	if err != nil {
		return nil, err
	}

	return &LRUCache[K, V]{entries: entries}, nil
}

func (c *LRUCache[K, V]) Get(key K) (V, bool) { return c.entries.Get(key) }
func (c *LRUCache[K, V]) Set(key K, value V)  { c.entries.Add(key, value) }
func (c *LRUCache[K, V]) Has(key K) bool      { return c.entries.Contains(key) }
func (c *LRUCache[K, V]) Delete(key K)        { c.entries.Remove(key) }
func (c *LRUCache[K, V]) Clear()              { c.entries.Purge() }
func (c *LRUCache[K, V]) Len() int            { return c.entries.Len() }

// ExpirableCache is an LRUCache whose entries also expire after a TTL.
type ExpirableCache[K comparable, V any] struct {
	entries *expirable.LRU[K, V]
}

// NewExpirableCache returns an ExpirableCache holding up to size entries for
// at most ttl each. A size of 0 means no size limit, and a ttl of 0 means
// entries never expire.
func NewExpirableCache[K comparable, V any](size int, ttl time.Duration) *ExpirableCache[K, V] {
	return &ExpirableCache[K, V]{
		entries: expirable.NewLRU[K, V](size, nil, ttl),
	}
}

func (c *ExpirableCache[K, V]) Get(key K) (V, bool) { return c.entries.Get(key) }
func (c *ExpirableCache[K, V]) Set(key K, value V)  { c.entries.Add(key, value) }
func (c *ExpirableCache[K, V]) Has(key K) bool      { return c.entries.Contains(key) }
func (c *ExpirableCache[K, V]) Delete(key K)        { c.entries.Remove(key) }
func (c *ExpirableCache[K, V]) Clear()              { c.entries.Purge() }
func (c *ExpirableCache[K, V]) Len() int            { return c.entries.Len() }

var (
	_ Cache[string, int] = (*MapCache[string, int])(nil)
	_ Cache[string, int] = (*LRUCache[string, int])(nil)
	_ Cache[string, int] = (*ExpirableCache[string, int])(nil)
)
