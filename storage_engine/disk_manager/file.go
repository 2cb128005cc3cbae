package diskmanager

import (
	"HeapDB/types"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// CreateFile creates an empty heap file, truncating any existing one
func CreateFile(path string) (*OSFile, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create heap file %s: %w", path, err)
	}
	return &OSFile{File: file, path: path}, nil
}

// OpenFile opens an existing heap file.
// A missing file fails with types.ErrFileNotFound.
func OpenFile(path string) (*OSFile, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0644)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %w", types.ErrFileNotFound, path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open heap file %s: %w", path, err)
	}
	return &OSFile{File: file, path: path}, nil
}

// OpenOrCreateFile opens a heap file, creating an empty one if it does not exist
func OpenOrCreateFile(path string) (*OSFile, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open heap file %s: %w", path, err)
	}
	return &OSFile{File: file, path: path}, nil
}

func (f *OSFile) Size() (int64, error) {
	stat, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

func (f *OSFile) Path() string {
	return f.path
}

// NewMemFile returns an empty in-memory file
func NewMemFile() *MemFile {
	return &MemFile{}
}

// NewMemFileFrom returns an in-memory file holding a copy of data
func NewMemFileFrom(data []byte) *MemFile {
	return &MemFile{data: append([]byte(nil), data...)}
}

func (m *MemFile) ReadAt(p []byte, off int64) (int, error) {
	if m.closed {
		return 0, os.ErrClosed
	}
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *MemFile) WriteAt(p []byte, off int64) (int, error) {
	if m.closed {
		return 0, os.ErrClosed
	}
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}
	if end := off + int64(len(p)); end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	return copy(m.data[off:], p), nil
}

func (m *MemFile) Size() (int64, error) {
	if m.closed {
		return 0, os.ErrClosed
	}
	return int64(len(m.data)), nil
}

func (m *MemFile) Sync() error {
	if m.closed {
		return os.ErrClosed
	}
	return nil
}

func (m *MemFile) Close() error {
	m.closed = true
	return nil
}

// Bytes returns a copy of the file contents
func (m *MemFile) Bytes() []byte {
	return append([]byte(nil), m.data...)
}
