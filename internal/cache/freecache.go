package cache

import (
	"context"
	"errors"
	"time"

	"github.com/coocood/freecache"
)

var _ Cache = (*FreeCache)(nil)

// FreeCache is the in-process cache used when redis is disabled.
type FreeCache struct {
	cache *freecache.Cache
}

func NewFreeCache(sizeMB int) *FreeCache {
	megabyte := 1024 * 1024
	return &FreeCache{
		cache: freecache.NewCache(sizeMB * megabyte),
	}
}

func (c *FreeCache) Get(_ context.Context, key string) ([]byte, error) {
	b, err := c.cache.Get([]byte(key))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return nil, ErrMiss
		}
		return nil, err
	}
	return b, nil
}

// Set stores value for ttl, rounded up to whole seconds. A zero ttl never expires.
func (c *FreeCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	expireSeconds := int((ttl + time.Second - 1) / time.Second)
	return c.cache.Set([]byte(key), value, expireSeconds)
}

func (c *FreeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.cache.Del([]byte(k))
	}
	return nil
}

func (c *FreeCache) EntryCount() int64 {
	return c.cache.EntryCount()
}
