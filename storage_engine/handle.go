package storageengine

import (
	"HeapDB/config"
	"HeapDB/storage_engine/bufferpool"
	diskmanager "HeapDB/storage_engine/disk_manager"
	"fmt"

	"github.com/phuslu/log"
)

func newBufferPool(store diskmanager.PageStore, cfg *config.Config, parent *log.Logger) (*bufferpool.BufferPool, error) {
	return bufferpool.NewBufferPool(store, bufferpool.Config{
		CapacityPages: cfg.Cache.CapacityPages,
		Metrics:       cfg.Cache.Metrics,
	}, parent)
}

func (h *HeapHandle) Path() string {
	return h.path
}

// CacheStats reports the page cache counters. ok is false when the handle has no cache.
func (h *HeapHandle) CacheStats() (stats bufferpool.BufferPoolStats, ok bool) {
	if h.BufferPool == nil {
		return bufferpool.BufferPoolStats{}, false
	}
	return h.BufferPool.GetStats(), true
}

// Close drops the cache, syncs the file and closes it
func (h *HeapHandle) Close() error {
	if h.BufferPool != nil {
		if stats, ok := h.CacheStats(); ok {
			h.log.Debug().Str("path", h.path).Uint64("hits", stats.Hits).Uint64("misses", stats.Misses).Msg("page cache closed")
		}
		h.BufferPool.Close()
		h.BufferPool = nil
	}

	if err := h.DiskManager.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", h.path, err)
	}
	h.log.Debug().Str("path", h.path).Msg("closed heap file")
	return nil
}
