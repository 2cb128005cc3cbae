package storageengine

import (
	"HeapDB/config"
	"HeapDB/logger"
	heapfile "HeapDB/storage_engine/access/heapfile_manager"
	diskmanager "HeapDB/storage_engine/disk_manager"
	"HeapDB/types"
	"errors"
	"fmt"

	"github.com/phuslu/log"
)

/*
The main file of the storage engine.
Every path based operation opens the heap file, acts on it and closes it (syncing first)
before returning, so nothing stays open between calls. Open hands out a HeapHandle for
callers that want to keep a file open, e.g. the REPL.
*/

// NewStorageEngine builds an engine. A nil cfg selects config.Default, a nil logger discards.
func NewStorageEngine(cfg *config.Config, parent *log.Logger) *StorageEngine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &StorageEngine{
		cfg:  cfg,
		root: parent,
		log:  logger.Component(parent, "engine"),
	}
}

// CreateHeapFile creates an empty heap file at path, truncating an existing one
func (se *StorageEngine) CreateHeapFile(path string) error {
	file, err := diskmanager.CreateFile(path)
	if err != nil {
		return err
	}
	if err := diskmanager.NewDiskManager(file, se.root).Close(); err != nil {
		return err
	}
	se.log.Info().Str("path", path).Msg("created heap file")
	return nil
}

// InsertRecord stores rec in the heap file at path. A missing file is created.
func (se *StorageEngine) InsertRecord(path string, rec []byte) (types.RecordID, error) {
	var rid types.RecordID
	err := se.withHeapFile(path, true, func(hf *heapfile.HeapFile) error {
		var err error
		rid, err = hf.InsertRecord(rec)
		return err
	})
	return rid, err
}

func (se *StorageEngine) GetRecord(path string, pageNum uint32, slotID int) ([]byte, error) {
	var rec []byte
	err := se.withHeapFile(path, false, func(hf *heapfile.HeapFile) error {
		var err error
		rec, err = hf.GetRecord(pageNum, slotID)
		return err
	})
	return rec, err
}

func (se *StorageEngine) GetAllRecords(path string) ([][][]byte, error) {
	var all [][][]byte
	err := se.withHeapFile(path, false, func(hf *heapfile.HeapFile) error {
		var err error
		all, err = hf.GetAllRecords()
		return err
	})
	return all, err
}

func (se *StorageEngine) PageCount(path string) (uint32, error) {
	var count uint32
	err := se.withHeapFile(path, false, func(hf *heapfile.HeapFile) error {
		var err error
		count, err = hf.PageCount()
		return err
	})
	return count, err
}

func (se *StorageEngine) ReadPage(path string, pageNum uint32) ([]byte, error) {
	var buf []byte
	err := se.withHeapFile(path, false, func(hf *heapfile.HeapFile) error {
		var err error
		buf, err = hf.ReadPage(pageNum)
		return err
	})
	return buf, err
}

func (se *StorageEngine) WritePage(path string, pageNum uint32, data []byte) error {
	return se.withHeapFile(path, false, func(hf *heapfile.HeapFile) error {
		return hf.WritePage(pageNum, data)
	})
}

// AppendPage appends data as a new page and returns its page number. A missing file is created.
func (se *StorageEngine) AppendPage(path string, data []byte) (uint32, error) {
	var pageNum uint32
	err := se.withHeapFile(path, true, func(hf *heapfile.HeapFile) error {
		var err error
		pageNum, err = hf.AppendPage(data)
		return err
	})
	return pageNum, err
}

// Inspect returns the per page statistics of the heap file at path
func (se *StorageEngine) Inspect(path string) ([]heapfile.PageStats, error) {
	var stats []heapfile.PageStats
	err := se.withHeapFile(path, false, func(hf *heapfile.HeapFile) error {
		var err error
		stats, err = hf.Inspect()
		return err
	})
	return stats, err
}

// withHeapFile runs fn against the heap file at path and closes the file afterwards.
// The page cache is never used here since it would be dropped at close.
func (se *StorageEngine) withHeapFile(path string, create bool, fn func(*heapfile.HeapFile) error) (err error) {
	h, err := se.open(path, create, false)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := h.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(h.HeapFile)
}

// Open opens the heap file at path for repeated use, creating it if missing.
// The handle carries a page cache when the config enables one.
func (se *StorageEngine) Open(path string) (*HeapHandle, error) {
	return se.open(path, true, se.cfg.Cache.CapacityPages > 0)
}

func (se *StorageEngine) open(path string, create, cached bool) (*HeapHandle, error) {
	var file *diskmanager.OSFile
	var err error
	if create {
		file, err = diskmanager.OpenOrCreateFile(path)
	} else {
		file, err = diskmanager.OpenFile(path)
	}
	if err != nil {
		return nil, err
	}

	h := &HeapHandle{
		path:        path,
		DiskManager: diskmanager.NewDiskManager(file, se.root),
		log:         se.log,
	}

	var store diskmanager.PageStore = h.DiskManager
	if cached {
		bp, err := newBufferPool(h.DiskManager, se.cfg, se.root)
		if err != nil {
			h.DiskManager.Close()
			return nil, fmt.Errorf("failed to create page cache for %s: %w", path, err)
		}
		h.BufferPool = bp
		store = bp
	}
	h.HeapFile = heapfile.NewHeapFile(store, se.root)

	se.log.Debug().Str("path", path).Bool("cached", cached).Msg("opened heap file")
	return h, nil
}
