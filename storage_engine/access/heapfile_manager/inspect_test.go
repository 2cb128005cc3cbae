package heapfile

import (
	"HeapDB/types"
	"bytes"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectEmptyFile(t *testing.T) {
	hf, _ := newMemHeapFile(t)

	stats, err := hf.Inspect()
	require.NoError(t, err)
	assert.Empty(t, stats)

	var out bytes.Buffer
	require.NoError(t, hf.InspectTo(&out, true))
	assert.Contains(t, out.String(), "0 pages")
	assert.Contains(t, out.String(), "(empty file)")
}

func TestInspectReportsHeader(t *testing.T) {
	hf, dm := newMemHeapFile(t)

	for _, rec := range []string{"Alice|20|A", "Bob|21|B"} {
		_, err := hf.InsertRecord([]byte(rec))
		require.NoError(t, err)
	}

	stats, err := hf.Inspect()
	require.NoError(t, err)
	require.Len(t, stats, 1)

	s := stats[0]
	recordBytes := len("Alice|20|A") + len("Bob|21|B")
	assert.Equal(t, uint32(0), s.PageNumber)
	assert.Equal(t, uint16(2), s.SlotCount)
	assert.Equal(t, uint16(types.PageSize-recordBytes), s.FreeSpaceOffset)
	assert.Equal(t, uint16(types.PageSize-recordBytes-types.PageHeaderSize-2*types.SlotSize), s.FreeSpace)
	assert.Equal(t, recordBytes, s.RecordBytes)

	buf, err := dm.ReadPage(0)
	require.NoError(t, err)
	assert.Equal(t, xxhash.Sum64(buf), s.Digest)
}

func TestInspectDigestTracksChanges(t *testing.T) {
	hf, _ := newMemHeapFile(t)

	_, err := hf.InsertRecord([]byte("A"))
	require.NoError(t, err)
	before, err := hf.Inspect()
	require.NoError(t, err)

	_, err = hf.InsertRecord([]byte("B"))
	require.NoError(t, err)
	after, err := hf.Inspect()
	require.NoError(t, err)

	assert.NotEqual(t, before[0].Digest, after[0].Digest)
}

func TestInspectToListsRecords(t *testing.T) {
	hf, _ := newMemHeapFile(t)

	for _, rec := range []string{"Alice|20|A", "Bob|21|B"} {
		_, err := hf.InsertRecord([]byte(rec))
		require.NoError(t, err)
	}

	var summary bytes.Buffer
	require.NoError(t, hf.InspectTo(&summary, false))
	assert.Contains(t, summary.String(), "[page 0] slots=2")
	assert.NotContains(t, summary.String(), "Alice")

	var full bytes.Buffer
	require.NoError(t, hf.InspectTo(&full, true))
	lines := strings.Split(strings.TrimSpace(full.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], `slot 0 (10B): "Alice|20|A"`)
	assert.Contains(t, lines[3], `slot 1 (8B): "Bob|21|B"`)
}

func TestInspectCorruptPage(t *testing.T) {
	hf, dm := newMemHeapFile(t)

	_, err := dm.AppendPage(make([]byte, types.PageSize))
	require.NoError(t, err)

	_, err = hf.Inspect()
	assert.ErrorIs(t, err, types.ErrCorruptPage)
}
