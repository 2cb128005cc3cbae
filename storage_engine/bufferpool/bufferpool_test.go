package bufferpool

import (
	"HeapDB/logger"
	diskmanager "HeapDB/storage_engine/disk_manager"
	"HeapDB/types"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps a DiskManager and counts reads that reach the file
type countingStore struct {
	*diskmanager.DiskManager
	reads int
}

func (c *countingStore) ReadPage(pageNum uint32) ([]byte, error) {
	c.reads++
	return c.DiskManager.ReadPage(pageNum)
}

func newTestPool(t *testing.T, capacity int) (*BufferPool, *countingStore) {
	t.Helper()
	store := &countingStore{DiskManager: diskmanager.NewDiskManager(diskmanager.NewMemFile(), logger.Discard())}
	bp, err := NewBufferPool(store, Config{CapacityPages: capacity, Metrics: true}, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(bp.Close)
	return bp, store
}

func filledPage(b byte) []byte {
	return bytes.Repeat([]byte{b}, types.PageSize)
}

func TestRejectsZeroCapacity(t *testing.T) {
	store := diskmanager.NewDiskManager(diskmanager.NewMemFile(), logger.Discard())
	_, err := NewBufferPool(store, Config{CapacityPages: 0}, logger.Discard())
	assert.Error(t, err)
}

func TestReadHitsCacheAfterAppend(t *testing.T) {
	bp, store := newTestPool(t, 8)

	pageNum, err := bp.AppendPage(filledPage('a'))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), pageNum)

	for i := 0; i < 3; i++ {
		got, err := bp.ReadPage(0)
		require.NoError(t, err)
		assert.Equal(t, filledPage('a'), got)
	}

	assert.Equal(t, 0, store.reads)
	stats := bp.GetStats()
	assert.Equal(t, uint64(3), stats.Hits)
}

func TestMissLoadsFromStore(t *testing.T) {
	bp, store := newTestPool(t, 8)

	// written behind the pool's back, so the pool has never seen it
	_, err := store.AppendPage(filledPage('q'))
	require.NoError(t, err)

	got, err := bp.ReadPage(0)
	require.NoError(t, err)
	assert.Equal(t, filledPage('q'), got)
	assert.Equal(t, 1, store.reads)

	_, err = bp.ReadPage(0)
	require.NoError(t, err)
	assert.Equal(t, 1, store.reads)
	assert.Equal(t, uint64(1), bp.GetStats().Misses)
}

func TestWriteThroughNeverServesStalePage(t *testing.T) {
	bp, store := newTestPool(t, 8)

	_, err := bp.AppendPage(filledPage('a'))
	require.NoError(t, err)
	_, err = bp.ReadPage(0)
	require.NoError(t, err)

	require.NoError(t, bp.WritePage(0, filledPage('b')))

	got, err := bp.ReadPage(0)
	require.NoError(t, err)
	assert.Equal(t, filledPage('b'), got)

	// the file holds the write as well
	onDisk, err := store.DiskManager.ReadPage(0)
	require.NoError(t, err)
	assert.Equal(t, filledPage('b'), onDisk)
}

func TestCallerMutationDoesNotLeakIntoCache(t *testing.T) {
	bp, _ := newTestPool(t, 8)

	data := filledPage('a')
	_, err := bp.AppendPage(data)
	require.NoError(t, err)
	data[0] = 'x'

	got, err := bp.ReadPage(0)
	require.NoError(t, err)
	got[1] = 'y'

	again, err := bp.ReadPage(0)
	require.NoError(t, err)
	assert.Equal(t, filledPage('a'), again)
}

func TestStoreErrorsPassThrough(t *testing.T) {
	bp, _ := newTestPool(t, 8)

	_, err := bp.ReadPage(0)
	assert.ErrorIs(t, err, types.ErrPageOutOfRange)

	_, err = bp.AppendPage(make([]byte, 10))
	assert.ErrorIs(t, err, types.ErrInvalidPageSize)

	err = bp.WritePage(3, filledPage('a'))
	assert.ErrorIs(t, err, types.ErrPageOutOfRange)

	count, err := bp.PageCount()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), count)
}

func TestResetDropsCachedPages(t *testing.T) {
	bp, store := newTestPool(t, 8)

	_, err := bp.AppendPage(filledPage('a'))
	require.NoError(t, err)
	bp.Reset()

	got, err := bp.ReadPage(0)
	require.NoError(t, err)
	assert.Equal(t, filledPage('a'), got)
	assert.Equal(t, 1, store.reads)
}
