package heapfile

import (
	"HeapDB/logger"
	"HeapDB/storage_engine/bufferpool"
	diskmanager "HeapDB/storage_engine/disk_manager"
	"HeapDB/storage_engine/page"
	"HeapDB/types"
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemHeapFile(t *testing.T) (*HeapFile, *diskmanager.DiskManager) {
	t.Helper()
	dm := diskmanager.NewDiskManager(diskmanager.NewMemFile(), logger.Discard())
	return NewHeapFile(dm, logger.Discard()), dm
}

// pageWithFreeSpace builds a page holding one record sized so that exactly free bytes remain
func pageWithFreeSpace(t *testing.T, free int) []byte {
	t.Helper()
	size := types.PageSize - types.PageHeaderSize - types.SlotSize - free
	buf, _, err := page.InsertRecord(page.InitRawPage(), bytes.Repeat([]byte{'f'}, size))
	require.NoError(t, err)

	got, err := page.FreeSpace(buf)
	require.NoError(t, err)
	require.Equal(t, uint16(free), got)
	return buf
}

func TestRoundTripOnEmptyFile(t *testing.T) {
	for _, size := range []int{0, 1, 100, types.MaxRecordSize} {
		t.Run(fmt.Sprintf("%d bytes", size), func(t *testing.T) {
			hf, _ := newMemHeapFile(t)
			rec := bytes.Repeat([]byte{'r'}, size)

			rid, err := hf.InsertRecord(rec)
			require.NoError(t, err)
			assert.Equal(t, types.RecordID{PageNumber: 0, SlotID: 0}, rid)

			got, err := hf.GetRecord(0, 0)
			require.NoError(t, err)
			assert.Equal(t, rec, got)
		})
	}
}

func TestInsertUpdatesChosenPageOnly(t *testing.T) {
	hf, dm := newMemHeapFile(t)

	_, err := hf.InsertRecord([]byte("Alice|20|A"))
	require.NoError(t, err)

	before, err := dm.ReadPage(0)
	require.NoError(t, err)
	freeBefore, err := page.FreeSpace(before)
	require.NoError(t, err)
	hBefore, err := page.DecodeHeader(before)
	require.NoError(t, err)

	rec := []byte("Bob|21|B")
	rid, err := hf.InsertRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, types.RecordID{PageNumber: 0, SlotID: 1}, rid)

	after, err := dm.ReadPage(0)
	require.NoError(t, err)
	freeAfter, err := page.FreeSpace(after)
	require.NoError(t, err)
	hAfter, err := page.DecodeHeader(after)
	require.NoError(t, err)

	assert.Equal(t, int(freeBefore)-len(rec)-types.SlotSize, int(freeAfter))
	assert.Equal(t, hBefore.SlotCount+1, hAfter.SlotCount)
}

func TestFirstFitSkipsFullPageWithoutAppending(t *testing.T) {
	hf, dm := newMemHeapFile(t)

	p0 := pageWithFreeSpace(t, 10)
	p1 := pageWithFreeSpace(t, 100)
	_, err := dm.AppendPage(p0)
	require.NoError(t, err)
	_, err = dm.AppendPage(p1)
	require.NoError(t, err)

	rec := bytes.Repeat([]byte{'x'}, 50)
	rid, err := hf.InsertRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, types.RecordID{PageNumber: 1, SlotID: 1}, rid)

	count, err := dm.PageCount()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), count, "no page may be appended")

	got, err := dm.ReadPage(0)
	require.NoError(t, err)
	assert.Equal(t, p0, got, "page 0 must be left unmodified")

	stored, err := hf.GetRecord(1, 1)
	require.NoError(t, err)
	assert.Equal(t, rec, stored)
}

func TestFirstFitPrefersLowestPage(t *testing.T) {
	hf, dm := newMemHeapFile(t)

	_, err := dm.AppendPage(pageWithFreeSpace(t, 200))
	require.NoError(t, err)
	_, err = dm.AppendPage(pageWithFreeSpace(t, 3000))
	require.NoError(t, err)

	// page 1 fits better but page 0 comes first
	rid, err := hf.InsertRecord(bytes.Repeat([]byte{'x'}, 150))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), rid.PageNumber)
}

func TestOverflowAppendsPage(t *testing.T) {
	hf, dm := newMemHeapFile(t)

	p0 := pageWithFreeSpace(t, 30)
	_, err := dm.AppendPage(p0)
	require.NoError(t, err)

	rec := bytes.Repeat([]byte{'y'}, 40)
	rid, err := hf.InsertRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, types.RecordID{PageNumber: 1, SlotID: 0}, rid)

	got, err := dm.ReadPage(0)
	require.NoError(t, err)
	assert.Equal(t, p0, got)

	stored, err := hf.GetRecord(1, 0)
	require.NoError(t, err)
	assert.Equal(t, rec, stored)
}

func TestRecordFittingGapButNotSlotMovesOn(t *testing.T) {
	hf, dm := newMemHeapFile(t)

	p0 := pageWithFreeSpace(t, 10)
	_, err := dm.AppendPage(p0)
	require.NoError(t, err)

	// 8 <= 10 free bytes, but the slot entry needs 4 more
	rid, err := hf.InsertRecord(bytes.Repeat([]byte{'z'}, 8))
	require.NoError(t, err)
	assert.Equal(t, types.RecordID{PageNumber: 1, SlotID: 0}, rid)

	got, err := dm.ReadPage(0)
	require.NoError(t, err)
	assert.Equal(t, p0, got)
	assert.NoError(t, page.Validate(got))

	// 6 + 4 fits exactly
	rid, err = hf.InsertRecord(bytes.Repeat([]byte{'z'}, 6))
	require.NoError(t, err)
	assert.Equal(t, types.RecordID{PageNumber: 0, SlotID: 1}, rid)
}

func TestRecordTooLarge(t *testing.T) {
	hf, dm := newMemHeapFile(t)

	_, err := hf.InsertRecord(make([]byte, types.MaxRecordSize+1))
	assert.ErrorIs(t, err, types.ErrRecordTooLarge)

	count, err := dm.PageCount()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), count)
}

func TestInvalidAddressing(t *testing.T) {
	hf, _ := newMemHeapFile(t)

	// zero pages
	_, err := hf.GetRecord(0, 0)
	assert.ErrorIs(t, err, types.ErrPageOutOfRange)
	assert.NotErrorIs(t, err, types.ErrInvalidSlotID)

	_, err = hf.InsertRecord([]byte("A"))
	require.NoError(t, err)

	// page beyond the end, slot that would be valid
	_, err = hf.GetRecord(1, 0)
	assert.ErrorIs(t, err, types.ErrPageOutOfRange)
	assert.NotErrorIs(t, err, types.ErrInvalidSlotID)

	// page beyond the end, slot that would be invalid too
	_, err = hf.GetRecord(5, 9)
	assert.ErrorIs(t, err, types.ErrPageOutOfRange)

	// existing page, slot beyond slot count
	_, err = hf.GetRecord(0, 1)
	assert.ErrorIs(t, err, types.ErrInvalidSlotID)
	assert.NotErrorIs(t, err, types.ErrPageOutOfRange)

	_, err = hf.GetRecord(0, -1)
	assert.ErrorIs(t, err, types.ErrInvalidSlotID)
}

func TestGetAllRecordsOrdering(t *testing.T) {
	hf, _ := newMemHeapFile(t)

	all, err := hf.GetAllRecords()
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	for _, rec := range []string{"A", "B", "C"} {
		_, err := hf.InsertRecord([]byte(rec))
		require.NoError(t, err)
	}

	all, err = hf.GetAllRecords()
	require.NoError(t, err)
	assert.Equal(t, [][][]byte{{[]byte("A"), []byte("B"), []byte("C")}}, all)
}

func TestGetAllRecordsAcrossPages(t *testing.T) {
	hf, dm := newMemHeapFile(t)

	// 1000 byte records: four fit a page (4*1004 = 4016 <= 4092), the fifth does not
	var inserted [][]byte
	for i := 0; i < 6; i++ {
		rec := bytes.Repeat([]byte{byte('a' + i)}, 1000)
		inserted = append(inserted, rec)
		_, err := hf.InsertRecord(rec)
		require.NoError(t, err)
	}

	count, err := dm.PageCount()
	require.NoError(t, err)
	require.Equal(t, uint32(2), count)

	all, err := hf.GetAllRecords()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Len(t, all[0], 4)
	assert.Len(t, all[1], 2)

	var flat [][]byte
	for _, records := range all {
		flat = append(flat, records...)
	}
	assert.Equal(t, inserted, flat)

	ids, err := hf.GetAllRecordIDs()
	require.NoError(t, err)
	assert.Equal(t, []types.RecordID{
		{PageNumber: 0, SlotID: 0}, {PageNumber: 0, SlotID: 1}, {PageNumber: 0, SlotID: 2},
		{PageNumber: 0, SlotID: 3}, {PageNumber: 1, SlotID: 0}, {PageNumber: 1, SlotID: 1},
	}, ids)
}

func TestEveryPageStaysValid(t *testing.T) {
	hf, dm := newMemHeapFile(t)

	for i := 0; i < 300; i++ {
		rec := []byte(fmt.Sprintf("Student_%03d|Age_%d|Grade_%c", i, 20+i%5, 'A'+(i%3)))
		rec = bytes.Repeat(rec, 1+i%7)
		_, err := hf.InsertRecord(rec)
		require.NoError(t, err)
	}

	count, err := dm.PageCount()
	require.NoError(t, err)
	require.Greater(t, count, uint32(1))

	for pageNum := uint32(0); pageNum < count; pageNum++ {
		buf, err := dm.ReadPage(pageNum)
		require.NoError(t, err)
		assert.Len(t, buf, types.PageSize)
		assert.NoError(t, page.Validate(buf), "page %d", pageNum)
	}
}

func TestCorruptPageSurfacesOnInsert(t *testing.T) {
	hf, dm := newMemHeapFile(t)

	_, err := dm.AppendPage(make([]byte, types.PageSize))
	require.NoError(t, err)

	_, err = hf.InsertRecord([]byte("A"))
	assert.ErrorIs(t, err, types.ErrCorruptPage)

	_, err = hf.GetAllRecords()
	assert.ErrorIs(t, err, types.ErrCorruptPage)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.heap")

	file, err := diskmanager.CreateFile(path)
	require.NoError(t, err)
	dm := diskmanager.NewDiskManager(file, logger.Discard())
	hf := NewHeapFile(dm, logger.Discard())

	rows := []string{"Alice|20|A", "Bob|21|B", "Charlie|22|A"}
	for _, row := range rows {
		_, err := hf.InsertRecord([]byte(row))
		require.NoError(t, err)
	}
	require.NoError(t, dm.Close())

	file, err = diskmanager.OpenFile(path)
	require.NoError(t, err)
	dm = diskmanager.NewDiskManager(file, logger.Discard())
	defer dm.Close()
	hf = NewHeapFile(dm, logger.Discard())

	got, err := hf.GetRecord(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte("Charlie|22|A"), got)

	rid, err := hf.InsertRecord([]byte("Diana|19|C"))
	require.NoError(t, err)
	assert.Equal(t, types.RecordID{PageNumber: 0, SlotID: 3}, rid)
}

func TestHeapFileOverBufferPool(t *testing.T) {
	dm := diskmanager.NewDiskManager(diskmanager.NewMemFile(), logger.Discard())
	bp, err := bufferpool.NewBufferPool(dm, bufferpool.Config{CapacityPages: 4, Metrics: true}, logger.Discard())
	require.NoError(t, err)
	defer bp.Close()

	cached := NewHeapFile(bp, logger.Discard())
	direct := NewHeapFile(dm, logger.Discard())

	for i := 0; i < 50; i++ {
		rec := bytes.Repeat([]byte{byte(i)}, 200)
		rid, err := cached.InsertRecord(rec)
		require.NoError(t, err)

		// the file sees every insert immediately
		got, err := direct.GetRecord(rid.PageNumber, int(rid.SlotID))
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	}

	viaCache, err := cached.GetAllRecords()
	require.NoError(t, err)
	viaFile, err := direct.GetAllRecords()
	require.NoError(t, err)
	assert.Equal(t, viaFile, viaCache)
}
