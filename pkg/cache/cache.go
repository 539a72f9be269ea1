package cache

import (
	"sync"
	"time"
)

// Timed is a cache that invalidates elements on a timer basis. It is safe for
// concurrent use.
type Timed[V any] struct {
	ttl time.Duration

	mu    sync.Mutex
	cache map[string]element[V]
}

// element holds a timestamped value to save.
type element[V any] struct {
	value    V
	creation time.Time
}

// NewTimed creates a new Timed cache where elements will be invalidated after
// a time in cache corresponding to TTL.
func NewTimed[V any](ttl time.Duration) *Timed[V] {
	return &Timed[V]{
		ttl:   ttl,
		cache: make(map[string]element[V]),
	}
}

// Set assigns a value to a key.
func (c *Timed[V]) Set(key string, val V) {
	c.set(key, val, time.Now())
}

// set performs Set's work with the wall clock factored out.
func (c *Timed[V]) set(key string, val V, t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = element[V]{
		value:    val,
		creation: t,
	}
}

// Get retrieves a value for a key. The value may not exist or have expired, in
// which case ok will be false.
func (c *Timed[V]) Get(key string) (value V, ok bool) {
	return c.get(key, time.Now())
}

// get is like set in that the time is factored out
func (c *Timed[V]) get(key string, t time.Time) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// check if the element is in memory
	el, ok := c.cache[key]
	if !ok {
		return value, false
	}

	// in memory elements might still be invalid
	if elapsed := t.Sub(el.creation); elapsed > c.ttl {
		delete(c.cache, key)
		return value, false
	}

	return el.value, true
}

// Purge drops every expired element and reports how many remain. Get only
// evicts the keys it is asked for, so a server seeing many distinct queries
// should purge now and then.
func (c *Timed[V]) Purge() int {
	return c.purge(time.Now())
}

func (c *Timed[V]) purge(t time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, el := range c.cache {
		if t.Sub(el.creation) > c.ttl {
			delete(c.cache, key)
		}
	}
	return len(c.cache)
}

// Len reports how many elements are held, expired or not.
func (c *Timed[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}
