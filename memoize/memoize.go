// Package memoize caches the results of a function by key, with a pluggable
// Cache store.
package memoize

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/romdo/go-debounce/v2"
)

// Option configures a memoized function.
type Option[K comparable, V any] func(*options[K, V])

type options[K comparable, V any] struct {
	cache Cache[K, V]
}

// WithCache sets the store for memoized results. The default is a MapCache.
func WithCache[K comparable, V any](c Cache[K, V]) Option[K, V] {
	return func(o *options[K, V]) {
		o.cache = c
	}
}

type memo[K comparable, V any] struct {
	mux   sync.RWMutex
	cache Cache[K, V]
}

func newMemo[K comparable, V any](opts []Option[K, V]) *memo[K, V] {
	o := &options[K, V]{}
	for _, opt := range opts {
		opt(o)
	}
	if o.cache == nil {
		o.cache = NewMapCache[K, V]()
	}

	return &memo[K, V]{cache: o.cache}
}

// Cache returns the store holding memoized results.
func (m *memo[K, V]) Cache() Cache[K, V] {
	m.mux.RLock()
	defer m.mux.RUnlock()

	return m.cache
}

// SetCache replaces the store. A nil cache installs an empty MapCache.
func (m *memo[K, V]) SetCache(c Cache[K, V]) {
	if c == nil {
		c = NewMapCache[K, V]()
	}

	m.mux.Lock()
	defer m.mux.Unlock()

	m.cache = c
}

// lookup returns the cached value for key, computing and storing it on a
// miss. Concurrent misses on the same key may each compute the value.
func (m *memo[K, V]) lookup(key K, compute func() V) V {
	cache := m.Cache()
	if v, ok := cache.Get(key); ok {
		return v
	}

	v := compute()
	cache.Set(key, v)

	return v
}

// Func is a memoized function of a single comparable argument, which is also
// its cache key.
type Func[K comparable, V any] struct {
	*memo[K, V]
	fn func(K) V
}

// New returns fn memoized on its argument. It returns an error wrapping
// debounce.ErrInvalidArgument if fn is nil.
func New[K comparable, V any](fn func(K) V, opts ...Option[K, V]) (*Func[K, V], error) {
	if fn == nil {
		return nil, errors.Wrap(debounce.ErrInvalidArgument, "memoize: nil function")
	}

	return &Func[K, V]{memo: newMemo(opts), fn: fn}, nil
}

// Call returns fn(key), from the cache if present.
func (f *Func[K, V]) Call(key K) V {
	return f.lookup(key, func() V { return f.fn(key) })
}

// Resolved is a memoized function whose cache key is computed from its
// arguments by a resolver.
type Resolved[A any, K comparable, V any] struct {
	*memo[K, V]
	fn       func(args ...A) V
	resolver func(args ...A) K
}

// NewWithResolver returns fn memoized on the key resolver returns for its
// arguments. It returns an error wrapping debounce.ErrInvalidArgument if
// either function is nil.
func NewWithResolver[A any, K comparable, V any](
	fn func(args ...A) V,
	resolver func(args ...A) K,
	opts ...Option[K, V],
) (*Resolved[A, K, V], error) {
	if fn == nil {
		return nil, errors.Wrap(debounce.ErrInvalidArgument, "memoize: nil function")
	}
	if resolver == nil {
		return nil, errors.Wrap(debounce.ErrInvalidArgument, "memoize: nil resolver")
	}

	return &Resolved[A, K, V]{
		memo:     newMemo(opts),
		fn:       fn,
		resolver: resolver,
	}, nil
}

// Call returns fn(args...), from the cache if a value is stored under the
// resolved key.
func (r *Resolved[A, K, V]) Call(args ...A) V {
	return r.lookup(r.resolver(args...), func() V { return r.fn(args...) })
}
