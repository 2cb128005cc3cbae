package heapfile

import (
	diskmanager "HeapDB/storage_engine/disk_manager"

	"github.com/phuslu/log"
)

// HeapFile places and finds records across the pages of one heap file.
// It is not safe for concurrent use; callers serialize access.
type HeapFile struct {
	store diskmanager.PageStore // page I/O, either the disk manager or a buffer pool over it
	log   *log.Logger
}

// PageStats describes one page of the heap file, for inspection tooling
type PageStats struct {
	PageNumber      uint32 `json:"page_number"`
	FreeSpaceOffset uint16 `json:"free_space_offset"`
	SlotCount       uint16 `json:"slot_count"`
	FreeSpace       uint16 `json:"free_space"`   // gap between slot directory and records
	RecordBytes     int    `json:"record_bytes"` // bytes held by records
	Digest          uint64 `json:"digest"`       // xxhash of the whole page, for diffing dumps
}
