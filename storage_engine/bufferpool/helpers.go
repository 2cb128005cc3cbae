package bufferpool

/*
This file holds helper functions for the bufferpool
*/

// GetStats returns current buffer pool statistics.
// All counters stay zero unless the pool was created with Metrics enabled.
func (bp *BufferPool) GetStats() BufferPoolStats {
	m := bp.cache.Metrics
	return BufferPoolStats{
		Hits:    m.Hits(),
		Misses:  m.Misses(),
		HitRate: m.Ratio(),
	}
}

// Reset drops every cached page. The store is unaffected since the pool never holds unwritten pages.
func (bp *BufferPool) Reset() {
	bp.cache.Clear()
}

// Close releases the cache. It does not close the underlying store.
func (bp *BufferPool) Close() {
	bp.cache.Close()
}
