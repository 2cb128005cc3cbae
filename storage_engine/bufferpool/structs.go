package bufferpool

import (
	diskmanager "HeapDB/storage_engine/disk_manager"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/phuslu/log"
)

// ############################################# BUFFER POOL #############################################

// BufferPool caches page buffers in front of a PageStore.
// It is write-through: the store is updated before the cache, so the file always
// holds every page a caller has written.
type BufferPool struct {
	store diskmanager.PageStore
	cache *ristretto.Cache[uint64, []byte]
	log   *log.Logger
}

// Config sizes the buffer pool
type Config struct {
	CapacityPages int  // number of pages the cache may hold
	Metrics       bool // track hits and misses
}

// BufferPoolStats returns buffer pool statistics
type BufferPoolStats struct {
	Hits    uint64
	Misses  uint64
	HitRate float64
}
