package storageengine

import (
	"HeapDB/config"
	heapfile "HeapDB/storage_engine/access/heapfile_manager"
	"HeapDB/storage_engine/bufferpool"
	diskmanager "HeapDB/storage_engine/disk_manager"

	"github.com/phuslu/log"
)

// StorageEngine is the path based entry point to heap files.
// It holds no open file between calls.
type StorageEngine struct {
	cfg  *config.Config
	root *log.Logger // handed to the components, which derive their own sub-loggers
	log  *log.Logger
}

// HeapHandle is one opened heap file with its page store stack.
// Close must be called to release it.
type HeapHandle struct {
	path        string
	DiskManager *diskmanager.DiskManager
	BufferPool  *bufferpool.BufferPool // nil when the cache is disabled
	HeapFile    *heapfile.HeapFile
	log         *log.Logger
}
