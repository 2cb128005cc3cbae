package storageengine

import (
	heapfile "HeapDB/storage_engine/access/heapfile_manager"
	"HeapDB/types"
)

// defaultEngine backs the package level helpers: default config, logging discarded
var defaultEngine = NewStorageEngine(nil, nil)

func CreateHeapFile(path string) error {
	return defaultEngine.CreateHeapFile(path)
}

func InsertRecord(path string, rec []byte) (types.RecordID, error) {
	return defaultEngine.InsertRecord(path, rec)
}

func GetRecord(path string, pageNum uint32, slotID int) ([]byte, error) {
	return defaultEngine.GetRecord(path, pageNum, slotID)
}

func GetAllRecords(path string) ([][][]byte, error) {
	return defaultEngine.GetAllRecords(path)
}

func ReadPage(path string, pageNum uint32) ([]byte, error) {
	return defaultEngine.ReadPage(path, pageNum)
}

func WritePage(path string, pageNum uint32, data []byte) error {
	return defaultEngine.WritePage(path, pageNum, data)
}

func AppendPage(path string, data []byte) (uint32, error) {
	return defaultEngine.AppendPage(path, data)
}

func Inspect(path string) ([]heapfile.PageStats, error) {
	return defaultEngine.Inspect(path)
}
