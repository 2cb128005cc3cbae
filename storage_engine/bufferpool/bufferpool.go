package bufferpool

import (
	"HeapDB/logger"
	diskmanager "HeapDB/storage_engine/disk_manager"
	"HeapDB/types"
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/phuslu/log"
)

/*
This file is the main file of the bufferpool
The buffer pool keeps recently used pages in a ristretto cache keyed by page number
and holds the page store for reads that miss and for every write.

Pages are handed out as copies, so a caller mutating a buffer never changes the cached page.
Every Set/Del is followed by Wait, which makes the cache update visible before the call returns.
*/

// NewBufferPool creates a buffer pool over store with the given capacity
func NewBufferPool(store diskmanager.PageStore, cfg Config, parent *log.Logger) (*BufferPool, error) {
	if cfg.CapacityPages <= 0 {
		return nil, fmt.Errorf("buffer pool capacity must be positive, got %d", cfg.CapacityPages)
	}

	cache, err := ristretto.NewCache(&ristretto.Config[uint64, []byte]{
		NumCounters:        int64(cfg.CapacityPages) * 10,
		MaxCost:            int64(cfg.CapacityPages) * types.PageSize,
		BufferItems:        64,
		Metrics:            cfg.Metrics,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}

	return &BufferPool{
		store: store,
		cache: cache,
		log:   logger.Component(parent, "bufferpool"),
	}, nil
}

func (bp *BufferPool) PageCount() (uint32, error) {
	return bp.store.PageCount()
}

// ReadPage returns the page from the cache, loading it from the store on a miss
func (bp *BufferPool) ReadPage(pageNum uint32) ([]byte, error) {
	if data, ok := bp.cache.Get(uint64(pageNum)); ok {
		bp.log.Debug().Uint32("page", pageNum).Msg("HIT")
		return clonePage(data), nil
	}

	bp.log.Debug().Uint32("page", pageNum).Msg("MISS, loading from store")
	data, err := bp.store.ReadPage(pageNum)
	if err != nil {
		return nil, err
	}

	bp.put(pageNum, data)
	return data, nil
}

// WritePage writes through to the store, then refreshes the cached copy
func (bp *BufferPool) WritePage(pageNum uint32, data []byte) error {
	if err := bp.store.WritePage(pageNum, data); err != nil {
		// the store may have been partially written, do not trust the cached copy
		bp.cache.Del(uint64(pageNum))
		bp.cache.Wait()
		return err
	}
	bp.put(pageNum, data)
	return nil
}

// AppendPage appends through to the store and caches the new page
func (bp *BufferPool) AppendPage(data []byte) (uint32, error) {
	pageNum, err := bp.store.AppendPage(data)
	if err != nil {
		return 0, err
	}
	bp.put(pageNum, data)
	return pageNum, nil
}

// put replaces the cached copy of a page.
// The old entry is deleted first so a dropped Set can only cause a later miss, never a stale hit.
func (bp *BufferPool) put(pageNum uint32, data []byte) {
	key := uint64(pageNum)
	bp.cache.Del(key)
	if !bp.cache.Set(key, clonePage(data), types.PageSize) {
		bp.log.Debug().Uint32("page", pageNum).Msg("cache rejected page")
	}
	bp.cache.Wait()
}

func clonePage(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	return out
}
