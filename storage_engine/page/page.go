package page

import (
	"HeapDB/types"
	"encoding/binary"
	"fmt"
)

/*
This package contains the slotted page format of the heap file.
All functions are pure transformations of one page buffer, they never touch the file.

Heap page binary layout (all values little-endian uint16):

	Offset  Size  Field
	──────────────────────────────────────────────────────
	0       2     FreeSpaceOffset: first byte of the record region
	2       2     SlotCount:       populated slot entries
	──────────────────────────────────────────────────────
	4             PageHeaderSize

	[ header 4B ][ slot dir → ][ free space ][ ← records ]
	0           4              ^             ^             4096
	                           4+4*SlotCount FreeSpaceOffset

	Slot directory grows FORWARD from PageHeaderSize.
	Records grow BACKWARD from PageSize.
	Free space is the gap between the end of the slot directory and FreeSpaceOffset.

A slot entry is 4 bytes: [ Offset uint16 ][ Length uint16 ]
Slot i lives at:  PageHeaderSize + i*SlotSize
*/

const (
	hdrOffFreeSpaceOffset = 0 // uint16 (2)
	hdrOffSlotCount       = 2 // uint16 (2)
)

// Header is the decoded form of the first PageHeaderSize bytes of a page
type Header struct {
	FreeSpaceOffset uint16
	SlotCount       uint16
}

// Slot is one slot directory entry
type Slot struct {
	Offset uint16 // absolute byte offset from start of page to the record
	Length uint16 // byte length of the record
}

// DecodeHeader reads and validates the header of a page.
// It fails with types.ErrCorruptPage if buf is not PageSize bytes or if the slot
// directory would run into the record region.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) != types.PageSize {
		return Header{}, fmt.Errorf("page is %d bytes, want %d: %w", len(buf), types.PageSize, types.ErrCorruptPage)
	}

	h := Header{
		FreeSpaceOffset: binary.LittleEndian.Uint16(buf[hdrOffFreeSpaceOffset:]),
		SlotCount:       binary.LittleEndian.Uint16(buf[hdrOffSlotCount:]),
	}

	if int(h.FreeSpaceOffset) > types.PageSize {
		return Header{}, fmt.Errorf("free space offset %d beyond page end: %w", h.FreeSpaceOffset, types.ErrCorruptPage)
	}
	if h.slotDirEnd() > int(h.FreeSpaceOffset) {
		return Header{}, fmt.Errorf("slot directory of %d slots overlaps record region at %d: %w",
			h.SlotCount, h.FreeSpaceOffset, types.ErrCorruptPage)
	}
	return h, nil
}

// Encode writes the header into the first PageHeaderSize bytes of buf
func (h Header) Encode(buf []byte) {
	binary.LittleEndian.PutUint16(buf[hdrOffFreeSpaceOffset:], h.FreeSpaceOffset)
	binary.LittleEndian.PutUint16(buf[hdrOffSlotCount:], h.SlotCount)
}

// FreeSpace is the gap between the slot directory and the record region
func (h Header) FreeSpace() uint16 {
	return h.FreeSpaceOffset - uint16(h.slotDirEnd())
}

// slotDirEnd returns the first byte after the slot directory
func (h Header) slotDirEnd() int {
	return types.PageHeaderSize + int(h.SlotCount)*types.SlotSize
}

// slotByteOffset returns the byte offset where slot i begins.
//
//	slot 0: bytes 4–7
//	slot 1: bytes 8–11
//	slot i: PageHeaderSize + i*SlotSize
func slotByteOffset(i uint16) int {
	return types.PageHeaderSize + int(i)*types.SlotSize
}

func readSlot(buf []byte, i uint16) Slot {
	base := slotByteOffset(i)
	return Slot{
		Offset: binary.LittleEndian.Uint16(buf[base:]),
		Length: binary.LittleEndian.Uint16(buf[base+2:]),
	}
}

func writeSlot(buf []byte, i uint16, s Slot) {
	base := slotByteOffset(i)
	binary.LittleEndian.PutUint16(buf[base:], s.Offset)
	binary.LittleEndian.PutUint16(buf[base+2:], s.Length)
}

// InitRawPage returns a fresh page with an empty slot directory and no records.
//
// After this call:
//   - FreeSpaceOffset == PageSize
//   - SlotCount       == 0
//   - All other bytes zeroed
func InitRawPage() []byte {
	buf := make([]byte, types.PageSize)
	Header{FreeSpaceOffset: types.PageSize, SlotCount: 0}.Encode(buf)
	return buf
}
