package store

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jordanschalm/lockctx"

	"github.com/onflow/flow-qrinfo/module"
	"github.com/onflow/flow-qrinfo/storage"
)

const DefaultCacheSize = uint(1000)

type storeWithLockFunc[K comparable, V any] func(lctx lockctx.Proof, rw storage.ReaderBatchWriter, key K, val V) error

func withStoreWithLock[K comparable, V any](store storeWithLockFunc[K, V]) func(*Cache[K, V]) {
	return func(c *Cache[K, V]) {
		c.storeWithLock = store
	}
}

func noStoreWithLock[K comparable, V any](lctx lockctx.Proof, rw storage.ReaderBatchWriter, key K, val V) error {
	return fmt.Errorf("no store with lock function for cache put available")
}

type retrieveFunc[K comparable, V any] func(r storage.Reader, key K) (V, error)

func withRetrieve[K comparable, V any](retrieve retrieveFunc[K, V]) func(*Cache[K, V]) {
	return func(c *Cache[K, V]) {
		c.retrieve = retrieve
	}
}

func noRetrieve[K comparable, V any](r storage.Reader, key K) (V, error) {
	var nullV V
	return nullV, fmt.Errorf("no retrieve function for cache get available")
}

func withLimit[K comparable, V any](limit uint) func(*Cache[K, V]) {
	return func(c *Cache[K, V]) {
		c.limit = limit
	}
}

// Cache is a read-through LRU cache in front of the database. Values are only
// added to the cache once the batch that writes them has been committed.
type Cache[K comparable, V any] struct {
	metrics       module.CacheMetrics
	limit         uint
	storeWithLock storeWithLockFunc[K, V]
	retrieve      retrieveFunc[K, V]
	resource      string
	cache         *lru.Cache[K, V]
}

func newCache[K comparable, V any](collector module.CacheMetrics, resourceName string, options ...func(*Cache[K, V])) *Cache[K, V] {
	c := Cache[K, V]{
		metrics:       collector,
		limit:         DefaultCacheSize,
		storeWithLock: noStoreWithLock[K, V],
		retrieve:      noRetrieve[K, V],
		resource:      resourceName,
	}
	for _, option := range options {
		option(&c)
	}
	c.cache, _ = lru.New[K, V](int(c.limit))
	c.metrics.CacheEntries(c.resource, uint(c.cache.Len()))
	return &c
}

// IsCached returns true if the key exists in the cache.
// It DOES NOT check whether the key exists in the underlying data store.
func (c *Cache[K, V]) IsCached(key K) bool {
	return c.cache.Contains(key)
}

// Get will try to retrieve the resource from cache first, and then from the
// injected. During normal operations, the following error returns are expected:
//   - `storage.ErrNotFound` if key is unknown.
func (c *Cache[K, V]) Get(r storage.Reader, key K) (V, error) {
	// check if we have it in the cache
	resource, cached := c.cache.Get(key)
	if cached {
		c.metrics.CacheHit(c.resource)
		return resource, nil
	}

	// get it from the database
	resource, err := c.retrieve(r, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.metrics.CacheNotFound(c.resource)
		}
		var nullV V
		return nullV, fmt.Errorf("could not retrieve resource: %w", err)
	}

	c.metrics.CacheMiss(c.resource)

	// cache the resource and eject least recently used one if we reached limit
	evicted := c.cache.Add(key, resource)
	if !evicted {
		c.metrics.CacheEntries(c.resource, uint(c.cache.Len()))
	}

	return resource, nil
}

// Remove drops the key from the cache. The database is not modified.
func (c *Cache[K, V]) Remove(key K) {
	c.cache.Remove(key)
	c.metrics.CacheEntries(c.resource, uint(c.cache.Len()))
}

// Insert will add a resource directly to the cache with the given ID
// assuming the resource has been added to storage already.
func (c *Cache[K, V]) Insert(key K, resource V) {
	// cache the resource and eject least recently used one if we reached limit
	evicted := c.cache.Add(key, resource)
	if !evicted {
		c.metrics.CacheEntries(c.resource, uint(c.cache.Len()))
	}
}

// PutWithLockTx will return a function that adds the resource to the batch and,
// once the batch is committed, to the cache.
// The caller must hold the locks required by the store function until the batch is committed.
func (c *Cache[K, V]) PutWithLockTx(lctx lockctx.Proof, rw storage.ReaderBatchWriter, key K, resource V) error {
	rw.AddCallback(func(err error) {
		if err == nil {
			c.Insert(key, resource)
		}
	})

	return c.storeWithLock(lctx, rw, key, resource)
}
