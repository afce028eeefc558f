// Package querycache memoises list queries for the TUI so tab switches and
// back-navigation do not refetch. Mutations invalidate by resource path.
package querycache

import (
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a size- and age-bounded map from query key to result.
type Cache[V any] struct {
	lru *expirable.LRU[string, V]
}

// New returns a cache holding at most size entries for ttl each.
// size <= 0 means unbounded; ttl <= 0 means entries never expire.
func New[V any](size int, ttl time.Duration) *Cache[V] {
	if size < 0 {
		size = 0
	}
	return &Cache[V]{lru: expirable.NewLRU[string, V](size, nil, ttl)}
}

// Key builds the cache key for a list of path with the given query.
// url.Values.Encode sorts keys, so equal queries produce equal keys.
func Key(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

func (c *Cache[V]) Put(key string, v V) {
	c.lru.Add(key, v)
}

// InvalidatePath drops every entry for path, whatever its query.
// It returns the number of entries removed.
func (c *Cache[V]) InvalidatePath(path string) int {
	n := 0
	for _, k := range c.lru.Keys() {
		if k == path || strings.HasPrefix(k, path+"?") || strings.HasPrefix(k, path+"/") {
			if c.lru.Remove(k) {
				n++
			}
		}
	}
	return n
}

// Purge empties the cache.
func (c *Cache[V]) Purge() {
	c.lru.Purge()
}

func (c *Cache[V]) Len() int {
	return c.lru.Len()
}
