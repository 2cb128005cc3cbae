package heapfile

import "fmt"

// Page level primitives, exposed for tooling. Ordinary callers use the record operations.

func (hf *HeapFile) PageCount() (uint32, error) {
	return hf.store.PageCount()
}

func (hf *HeapFile) ReadPage(pageNum uint32) ([]byte, error) {
	return hf.store.ReadPage(pageNum)
}

func (hf *HeapFile) WritePage(pageNum uint32, data []byte) error {
	return hf.store.WritePage(pageNum, data)
}

func (hf *HeapFile) AppendPage(data []byte) (uint32, error) {
	return hf.store.AppendPage(data)
}

// loadPages reads every page of the file in page order
func (hf *HeapFile) loadPages() ([][]byte, error) {
	count, err := hf.store.PageCount()
	if err != nil {
		return nil, err
	}

	pages := make([][]byte, 0, count)
	for pageNum := uint32(0); pageNum < count; pageNum++ {
		buf, err := hf.store.ReadPage(pageNum)
		if err != nil {
			return nil, fmt.Errorf("failed to load page %d: %w", pageNum, err)
		}
		pages = append(pages, buf)
	}
	return pages, nil
}
