package diskmanager

import (
	"io"
	"os"

	"github.com/phuslu/log"
)

// ############################################# BACKING FILE #############################################

// File is the byte-addressable file a DiskManager pages over.
// Appending is a WriteAt at the current end of the file.
type File interface {
	io.ReaderAt
	io.WriterAt
	Size() (int64, error)
	Sync() error
	Close() error
}

// OSFile adapts *os.File to File
type OSFile struct {
	*os.File
	path string
}

// MemFile is an in-memory File, used by tests and dry runs
type MemFile struct {
	data   []byte
	closed bool
}

// ############################################# PAGE STORE #############################################

// PageStore exposes fixed-size pages of a heap file.
// DiskManager implements it directly, the buffer pool decorates it.
type PageStore interface {
	PageCount() (uint32, error)
	ReadPage(pageNum uint32) ([]byte, error)
	WritePage(pageNum uint32, data []byte) error
	AppendPage(data []byte) (uint32, error)
}

// ############################################# DISK MANAGER #############################################

// DiskManager reads and writes whole pages of one backing file.
// It keeps no page state of its own: the page count is always derived from the file length.
type DiskManager struct {
	file File
	log  *log.Logger
}
