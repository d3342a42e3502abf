// Package cache wraps an LRU with per-entry expiry, for read-mostly data the
// store would otherwise refetch on every call.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is an LRU cache whose entries also expire after a fixed duration.
type TTL[K comparable, V any] struct {
	lru *lru.Cache[K, entry[V]]
}

func New[K comparable, V any](size int) (*TTL[K, V], error) {
	l, err := lru.New[K, entry[V]](size)
	if err != nil {
		return nil, err
	}
	return &TTL[K, V]{lru: l}, nil
}

func (c *TTL[K, V]) Set(key K, value V, ttl time.Duration) {
	c.lru.Add(key, entry[V]{value: value, expiresAt: time.Now().Add(ttl)})
}

// Get returns the cached value, evicting and missing if it has expired.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.lru.Remove(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTL[K, V]) Delete(key K) {
	c.lru.Remove(key)
}
