// Heap file inspection for debugging.
// Use InspectTo(w) to print a human-readable dump of every page.

package heapfile

import (
	"HeapDB/storage_engine/page"
	"HeapDB/types"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// InspectPage decodes the header of one page buffer and summarises it
func InspectPage(pageNum uint32, buf []byte) (PageStats, error) {
	if err := page.Validate(buf); err != nil {
		return PageStats{}, fmt.Errorf("page %d: %w", pageNum, err)
	}
	h, err := page.DecodeHeader(buf)
	if err != nil {
		return PageStats{}, fmt.Errorf("page %d: %w", pageNum, err)
	}

	return PageStats{
		PageNumber:      pageNum,
		FreeSpaceOffset: h.FreeSpaceOffset,
		SlotCount:       h.SlotCount,
		FreeSpace:       h.FreeSpace(),
		RecordBytes:     types.PageSize - int(h.FreeSpaceOffset),
		Digest:          xxhash.Sum64(buf),
	}, nil
}

// Inspect returns the statistics of every page in page order
func (hf *HeapFile) Inspect() ([]PageStats, error) {
	pages, err := hf.loadPages()
	if err != nil {
		return nil, err
	}

	stats := make([]PageStats, 0, len(pages))
	for i, buf := range pages {
		s, err := InspectPage(uint32(i), buf)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, nil
}

// InspectTo writes a human-readable dump of the heap file to w:
// one line per page, followed by its records when withRecords is set.
func (hf *HeapFile) InspectTo(w io.Writer, withRecords bool) error {
	stats, err := hf.Inspect()
	if err != nil {
		return err
	}

	p := func(format string, args ...interface{}) { fmt.Fprintf(w, format, args...) }

	p("Heap file: %d pages\n", len(stats))
	if len(stats) == 0 {
		p("  (empty file)\n")
		return nil
	}

	for _, s := range stats {
		p("  [page %d] slots=%d free_offset=%d free=%d records=%dB digest=%016x\n",
			s.PageNumber, s.SlotCount, s.FreeSpaceOffset, s.FreeSpace, s.RecordBytes, s.Digest)
		if !withRecords {
			continue
		}

		buf, err := hf.store.ReadPage(s.PageNumber)
		if err != nil {
			return err
		}
		records, err := page.GetAllRecords(buf)
		if err != nil {
			return fmt.Errorf("page %d: %w", s.PageNumber, err)
		}
		for slotID, rec := range records {
			p("    slot %d (%dB): %q\n", slotID, len(rec), rec)
		}
	}
	return nil
}
