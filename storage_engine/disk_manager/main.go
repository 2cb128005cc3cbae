package diskmanager

import (
	"HeapDB/logger"
	"HeapDB/types"
	"errors"
	"fmt"
	"io"

	"github.com/phuslu/log"
)

/*
This is main file for disk manager
It owns:
The backing file handle
Reading/writing whole pages at page-aligned offsets (ReadAt, WriteAt)
Page allocation by appending at the end of the file

Page numbers are zero based and equal to offset / PageSize.
The file has no header, its length alone encodes the page count.
Nothing is cached: every call has completed its I/O when it returns.
*/

func NewDiskManager(file File, parent *log.Logger) *DiskManager {
	return &DiskManager{
		file: file,
		log:  logger.Component(parent, "disk_manager"),
	}
}

// PageCount returns the number of whole pages in the file.
// A trailing partial page is ignored and gets overwritten by the next append.
func (dm *DiskManager) PageCount() (uint32, error) {
	size, err := dm.file.Size()
	if err != nil {
		return 0, fmt.Errorf("failed to stat heap file: %w", err)
	}
	if size%types.PageSize != 0 {
		dm.log.Warn().Int64("size", size).Msg("file length is not a multiple of the page size")
	}
	return uint32(size / types.PageSize), nil
}

// ReadPage reads the PageSize bytes of page pageNum
func (dm *DiskManager) ReadPage(pageNum uint32) ([]byte, error) {
	count, err := dm.PageCount()
	if err != nil {
		return nil, err
	}
	if pageNum >= count {
		return nil, fmt.Errorf("read page %d of %d: %w", pageNum, count, types.ErrPageOutOfRange)
	}

	data := make([]byte, types.PageSize)
	n, err := dm.file.ReadAt(data, pageOffset(pageNum))
	if n < types.PageSize {
		if err == nil || errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("failed to read page %d: %w", pageNum, err)
	}

	dm.log.Debug().Uint32("page", pageNum).Msg("read page")
	return data, nil
}

// WritePage overwrites an existing page in place
func (dm *DiskManager) WritePage(pageNum uint32, data []byte) error {
	if len(data) != types.PageSize {
		return fmt.Errorf("write page %d: got %d bytes, want %d: %w",
			pageNum, len(data), types.PageSize, types.ErrInvalidPageSize)
	}

	count, err := dm.PageCount()
	if err != nil {
		return err
	}
	if pageNum >= count {
		return fmt.Errorf("write page %d of %d: %w", pageNum, count, types.ErrPageOutOfRange)
	}

	if _, err := dm.file.WriteAt(data, pageOffset(pageNum)); err != nil {
		return fmt.Errorf("failed to write page %d: %w", pageNum, err)
	}

	dm.log.Debug().Uint32("page", pageNum).Msg("wrote page")
	return nil
}

// AppendPage writes data as a new page at the end of the file and returns its page number
func (dm *DiskManager) AppendPage(data []byte) (uint32, error) {
	if len(data) != types.PageSize {
		return 0, fmt.Errorf("append page: got %d bytes, want %d: %w",
			len(data), types.PageSize, types.ErrInvalidPageSize)
	}

	pageNum, err := dm.PageCount()
	if err != nil {
		return 0, err
	}

	if _, err := dm.file.WriteAt(data, pageOffset(pageNum)); err != nil {
		return 0, fmt.Errorf("failed to append page %d: %w", pageNum, err)
	}

	dm.log.Debug().Uint32("page", pageNum).Msg("appended page")
	return pageNum, nil
}

// Sync flushes the file buffers to disk
func (dm *DiskManager) Sync() error {
	if err := dm.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync heap file: %w", err)
	}
	return nil
}

// Close syncs and closes the backing file
func (dm *DiskManager) Close() error {
	if err := dm.file.Sync(); err != nil {
		dm.file.Close()
		return fmt.Errorf("failed to sync before close: %w", err)
	}
	if err := dm.file.Close(); err != nil {
		return fmt.Errorf("failed to close heap file: %w", err)
	}
	return nil
}

func pageOffset(pageNum uint32) int64 {
	return int64(pageNum) * types.PageSize
}
