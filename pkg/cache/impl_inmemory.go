package cache

import (
	"context"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// InMemory implementation of the Cache client. The least recently used
// entries are evicted when the cache is full.
type InMemory struct {
	lru *lru.Cache[string, cacheEntry]
}

// NewInMemory instantiates a new in-memory Cache Client.
func NewInMemory(size int) (*InMemory, error) {
	if size <= 0 {
		size = DefaultSize
	}
	l, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &InMemory{lru: l}, nil
}

// CheckStatus checks that the cache is ready, or returns an error.
func (c *InMemory) CheckStatus(ctx context.Context) (time.Duration, error) {
	return 0, nil
}

// Get fetch the cached asset at the given key, and returns true only if the
// asset was found.
func (c *InMemory) Get(key string) ([]byte, bool) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}

	if time.Now().After(entry.expiredAt) {
		// The value is expired. Clean it and return not found
		c.Clear(key)
		return nil, false
	}

	return entry.payload, true
}

// Keys returns the list of keys with the given prefix.
func (c *InMemory) Keys(prefix string) []string {
	results := make([]string, 0)

	for _, k := range c.lru.Keys() {
		if strings.HasPrefix(k, prefix) {
			results = append(results, k)
		}
	}

	return results
}

// Clear removes a key from the cache
func (c *InMemory) Clear(key string) {
	c.lru.Remove(key)
}

// Set stores an asset to the given key.
func (c *InMemory) Set(key string, data []byte, expiration time.Duration) {
	c.lru.Add(key, cacheEntry{
		payload:   data,
		expiredAt: time.Now().Add(expiration),
	})
}
