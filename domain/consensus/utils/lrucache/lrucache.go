// Package lrucache implements a small fixed-capacity least-recently-used
// cache, used by every consensus store to avoid round-tripping to the KV
// engine for hot blocks (recent tips and their close ancestors).
package lrucache

import (
	"container/list"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
)

// LRUCache is a fixed-capacity cache keyed by block hash.
type LRUCache struct {
	capacity int
	entries  map[externalapi.DomainHash]*list.Element
	order    *list.List
}

type entry struct {
	key   externalapi.DomainHash
	value interface{}
}

// New creates an LRUCache with the given capacity. A non-positive capacity
// disables caching: Add becomes a no-op and Get always misses.
func New(capacity int) *LRUCache {
	return &LRUCache{
		capacity: capacity,
		entries:  make(map[externalapi.DomainHash]*list.Element),
		order:    list.New(),
	}
}

// Add inserts or updates the value for key, evicting the least-recently-used
// entry if the cache is at capacity.
func (c *LRUCache) Add(key *externalapi.DomainHash, value interface{}) {
	if c.capacity <= 0 {
		return
	}

	if elem, ok := c.entries[*key]; ok {
		elem.Value.(*entry).value = value
		c.order.MoveToFront(elem)
		return
	}

	elem := c.order.PushFront(&entry{key: *key, value: value})
	c.entries[*key] = elem

	if c.order.Len() > c.capacity {
		c.evictOldest()
	}
}

// Get returns the value for key and whether it was present.
func (c *LRUCache) Get(key *externalapi.DomainHash) (interface{}, bool) {
	elem, ok := c.entries[*key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*entry).value, true
}

// Has reports whether key is present, without affecting recency.
func (c *LRUCache) Has(key *externalapi.DomainHash) bool {
	_, ok := c.entries[*key]
	return ok
}

// Remove evicts key if present.
func (c *LRUCache) Remove(key *externalapi.DomainHash) {
	elem, ok := c.entries[*key]
	if !ok {
		return
	}
	c.order.Remove(elem)
	delete(c.entries, *key)
}

func (c *LRUCache) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.order.Remove(oldest)
	delete(c.entries, oldest.Value.(*entry).key)
}
