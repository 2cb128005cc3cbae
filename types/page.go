package types

const (
	PageSize       = 4096 // 4KB page
	PageHeaderSize = 4    // free_space_offset(2B) + slot_count(2B)
	SlotSize       = 4    // 4 bytes per slot entry (offset: 2B, length: 2B)

	// MaxRecordSize is the largest record a raw page can host together with its slot entry.
	MaxRecordSize = PageSize - PageHeaderSize - SlotSize
)
