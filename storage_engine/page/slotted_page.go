package page

import (
	"HeapDB/types"
	"fmt"
)

// FreeSpace returns the bytes between the slot directory and the record region.
// A new record also needs SlotSize of this space for its slot entry.
func FreeSpace(buf []byte) (uint16, error) {
	h, err := DecodeHeader(buf)
	if err != nil {
		return 0, err
	}
	return h.FreeSpace(), nil
}

// InsertRecord returns a copy of buf with rec appended to the record region and a new
// slot entry appended to the slot directory. buf itself is left untouched.
// The slot id of the new record is the pre-insert slot count.
// Fails with types.ErrInsufficientSpace if the record and its slot entry do not fit.
func InsertRecord(buf []byte, rec []byte) ([]byte, uint16, error) {
	h, err := DecodeHeader(buf)
	if err != nil {
		return nil, 0, err
	}

	free := int(h.FreeSpace())
	if len(rec)+types.SlotSize > free {
		return nil, 0, fmt.Errorf("need %d bytes for record and %d for its slot, only %d available: %w",
			len(rec), types.SlotSize, free, types.ErrInsufficientSpace)
	}

	out := make([]byte, types.PageSize)
	copy(out, buf)

	// Move the record region boundary down and write the record there.
	recordOffset := h.FreeSpaceOffset - uint16(len(rec))
	copy(out[recordOffset:], rec)

	slotID := h.SlotCount
	writeSlot(out, slotID, Slot{Offset: recordOffset, Length: uint16(len(rec))})

	h.FreeSpaceOffset = recordOffset
	h.SlotCount++
	h.Encode(out)

	return out, slotID, nil
}

// GetRecord returns a copy of the record held in slot slotID
func GetRecord(buf []byte, slotID int) ([]byte, error) {
	h, err := DecodeHeader(buf)
	if err != nil {
		return nil, err
	}
	if slotID < 0 || slotID >= int(h.SlotCount) {
		return nil, fmt.Errorf("slot %d out of range (count=%d): %w", slotID, h.SlotCount, types.ErrInvalidSlotID)
	}
	return recordAt(buf, h, uint16(slotID))
}

// GetAllRecords returns a copy of every record in slot order
func GetAllRecords(buf []byte) ([][]byte, error) {
	h, err := DecodeHeader(buf)
	if err != nil {
		return nil, err
	}

	records := make([][]byte, 0, h.SlotCount)
	for i := uint16(0); i < h.SlotCount; i++ {
		rec, err := recordAt(buf, h, i)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Validate checks the header and that every slot points inside the record region
// without overlapping any other slot's record.
func Validate(buf []byte) error {
	h, err := DecodeHeader(buf)
	if err != nil {
		return err
	}

	// Records are packed downward in insertion order, so slot i+1 ends where slot i begins.
	end := types.PageSize
	for i := uint16(0); i < h.SlotCount; i++ {
		s := readSlot(buf, i)
		if err := checkSlot(h, i, s); err != nil {
			return err
		}
		if int(s.Offset)+int(s.Length) > end {
			return fmt.Errorf("slot %d overlaps the record of slot %d: %w", i, i-1, types.ErrCorruptPage)
		}
		end = int(s.Offset)
	}
	return nil
}

func recordAt(buf []byte, h Header, i uint16) ([]byte, error) {
	s := readSlot(buf, i)
	if err := checkSlot(h, i, s); err != nil {
		return nil, err
	}
	out := make([]byte, s.Length)
	copy(out, buf[s.Offset:int(s.Offset)+int(s.Length)])
	return out, nil
}

func checkSlot(h Header, i uint16, s Slot) error {
	if s.Offset < h.FreeSpaceOffset || int(s.Offset)+int(s.Length) > types.PageSize {
		return fmt.Errorf("slot %d points at [%d:%d] outside record region [%d:%d]: %w",
			i, s.Offset, int(s.Offset)+int(s.Length), h.FreeSpaceOffset, types.PageSize, types.ErrCorruptPage)
	}
	return nil
}
