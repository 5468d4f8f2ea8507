package server

import (
	"unsafe"

	"github.com/coocood/freecache"

	"github.com/iksnae/question-digest/internal"
)

// minCacheBytes is the smallest size freecache accepts.
const minCacheBytes = 512 * 1024

// Cache holds encoded responses for the cloud endpoints.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

type freeCache struct {
	cache *freecache.Cache
	ttl   int
}

// NewCache returns a freecache-backed response cache, or a no-op cache when
// caching is disabled.
func NewCache(conf *internal.Config) Cache {
	if !conf.Cache.Enabled || conf.Cache.SizeMB <= 0 {
		internal.LogInfo("Response cache disabled")
		return &noopCache{}
	}

	ttl := ttlSeconds(conf)
	internal.LogDebug("Response cache initialized: %dMB, TTL=%ds", conf.Cache.SizeMB, ttl)
	return &freeCache{
		cache: freecache.NewCache(cacheBytes(conf.Cache.SizeMB)),
		ttl:   ttl,
	}
}

func cacheBytes(sizeMB int) int {
	return max(sizeMB*1024*1024, minCacheBytes)
}

func ttlSeconds(conf *internal.Config) int {
	return max(int(conf.Cache.TTL.Seconds()), 1)
}

// unsafeStringToBytes converts s without allocating; freecache copies keys.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *freeCache) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(unsafeStringToBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *freeCache) Set(key string, value []byte) {
	_ = c.cache.Set(unsafeStringToBytes(key), value, c.ttl)
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
