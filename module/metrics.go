package module

import (
	"time"
)

// CacheMetrics tracks the read-through caches of the storage layer, per resource.
type CacheMetrics interface {
	// CacheEntries reports the current number of cached entries.
	CacheEntries(resource string, entries uint)
	// CacheHit records a lookup served from the cache.
	CacheHit(resource string)
	// CacheNotFound records a lookup that found the entry neither in the cache nor in the database.
	CacheNotFound(resource string)
	// CacheMiss records a lookup that missed the cache and was served from the database.
	CacheMiss(resource string)
}

// RotationInfoMetrics tracks the requests served by the quorum rotation info handler.
type RotationInfoMetrics interface {
	// RotationInfoBuilt records a successfully built response and the time it took.
	RotationInfoBuilt(duration time.Duration)
	// RotationInfoFailed records a failed request, labelled by the failure reason.
	RotationInfoFailed(reason string)
}
