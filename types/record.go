package types

import "fmt"

// RecordID points to a specific record in a heap file
type RecordID struct {
	PageNumber uint32 `json:"page_number"`
	SlotID     uint16 `json:"slot_id"` // Index in the slot directory
}

func (r RecordID) String() string {
	return fmt.Sprintf("(%d,%d)", r.PageNumber, r.SlotID)
}
