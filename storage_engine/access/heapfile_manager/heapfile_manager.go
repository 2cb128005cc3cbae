package heapfile

import (
	"HeapDB/logger"
	diskmanager "HeapDB/storage_engine/disk_manager"
	"HeapDB/storage_engine/page"
	"HeapDB/types"
	"errors"
	"fmt"

	"github.com/phuslu/log"
)

/*
HeapFile orchestrates the page store and the slotted page format.

Placement is strict first-fit: pages are scanned in ascending page number and the first
one that can host the record receives it. Only that page is written back. When no page
has room a raw page is initialised, the record is inserted and the page appended.
*/

// NewHeapFile creates a heap file over store
func NewHeapFile(store diskmanager.PageStore, parent *log.Logger) *HeapFile {
	return &HeapFile{
		store: store,
		log:   logger.Component(parent, "heapfile"),
	}
}

// InsertRecord stores rec in the first page with room for it and returns its address
func (hf *HeapFile) InsertRecord(rec []byte) (types.RecordID, error) {
	if len(rec) > types.MaxRecordSize {
		return types.RecordID{}, fmt.Errorf("record of %d bytes (max: %d): %w",
			len(rec), types.MaxRecordSize, types.ErrRecordTooLarge)
	}

	pages, err := hf.loadPages()
	if err != nil {
		return types.RecordID{}, err
	}

	for i, buf := range pages {
		pageNum := uint32(i)

		free, err := page.FreeSpace(buf)
		if err != nil {
			return types.RecordID{}, fmt.Errorf("page %d: %w", pageNum, err)
		}
		if int(free) < len(rec) {
			continue
		}

		updated, slotID, err := page.InsertRecord(buf, rec)
		if errors.Is(err, types.ErrInsufficientSpace) {
			// the record fits the gap but its slot entry does not
			hf.log.Debug().Uint32("page", pageNum).Int("record_len", len(rec)).Err(err).Msg("skipping page")
			continue
		}
		if err != nil {
			return types.RecordID{}, fmt.Errorf("page %d: %w", pageNum, err)
		}

		if err := hf.store.WritePage(pageNum, updated); err != nil {
			return types.RecordID{}, err
		}

		rid := types.RecordID{PageNumber: pageNum, SlotID: slotID}
		hf.log.Debug().Str("rid", rid.String()).Int("record_len", len(rec)).Msg("inserted record")
		return rid, nil
	}

	// No page found, allocate a new one
	updated, slotID, err := page.InsertRecord(page.InitRawPage(), rec)
	if err != nil {
		return types.RecordID{}, err
	}

	pageNum, err := hf.store.AppendPage(updated)
	if err != nil {
		return types.RecordID{}, err
	}

	rid := types.RecordID{PageNumber: pageNum, SlotID: slotID}
	hf.log.Info().Uint32("page", pageNum).Msg("allocated page")
	hf.log.Debug().Str("rid", rid.String()).Int("record_len", len(rec)).Msg("inserted record")
	return rid, nil
}

// GetRecord returns the record at (pageNum, slotID).
// types.ErrPageOutOfRange and types.ErrInvalidSlotID are returned wrapped, check them with errors.Is.
func (hf *HeapFile) GetRecord(pageNum uint32, slotID int) ([]byte, error) {
	buf, err := hf.store.ReadPage(pageNum)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %d: %w", pageNum, err)
	}

	rec, err := page.GetRecord(buf, slotID)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", pageNum, err)
	}
	return rec, nil
}

// GetAllRecords scans the whole file and returns one record collection per page,
// in page order with records in slot order. A file with no pages yields an empty result.
func (hf *HeapFile) GetAllRecords() ([][][]byte, error) {
	pages, err := hf.loadPages()
	if err != nil {
		return nil, err
	}

	all := make([][][]byte, 0, len(pages))
	for i, buf := range pages {
		records, err := page.GetAllRecords(buf)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		all = append(all, records)
	}
	return all, nil
}

// GetAllRecordIDs returns the address of every record in scan order
func (hf *HeapFile) GetAllRecordIDs() ([]types.RecordID, error) {
	pages, err := hf.loadPages()
	if err != nil {
		return nil, err
	}

	var result []types.RecordID
	for i, buf := range pages {
		h, err := page.DecodeHeader(buf)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		for slotID := uint16(0); slotID < h.SlotCount; slotID++ {
			result = append(result, types.RecordID{PageNumber: uint32(i), SlotID: slotID})
		}
	}
	return result, nil
}
