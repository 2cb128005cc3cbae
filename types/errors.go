package types

import "errors"

var (
	// ErrPageOutOfRange is returned when a page number is not below the page count.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrInvalidPageSize is returned when a buffer handed to the page store is not PageSize bytes.
	ErrInvalidPageSize = errors.New("invalid page size")

	// ErrInsufficientSpace is returned by a page that cannot host a record.
	// The heap file recovers from it by moving on to the next page.
	ErrInsufficientSpace = errors.New("insufficient space in page")

	ErrInvalidSlotID = errors.New("invalid slot id")

	// ErrCorruptPage is returned for buffers that are not PageSize bytes or whose
	// header or slot directory point outside the page.
	ErrCorruptPage = errors.New("corrupt page")

	ErrFileNotFound = errors.New("heap file not found")

	// ErrRecordTooLarge is returned for records that would not fit even a raw page.
	ErrRecordTooLarge = errors.New("record too large")
)
