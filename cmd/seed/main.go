// Seed program: fills a heap file with generated student records.
// Run: go run ./cmd/seed -file students.heap -n 1000 -size 64
// Then inspect: go run ./cmd/inspect_heap students.heap
package main

import (
	"HeapDB/config"
	"HeapDB/logger"
	storageengine "HeapDB/storage_engine"
	"HeapDB/types"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
)

func main() {
	configPath := flag.String("config", "heapdb.json", "path to the JSON config file")
	filePath := flag.String("file", "", "heap file to seed (overrides heap_file.path)")
	n := flag.Int("n", 100, "number of records to insert")
	size := flag.Int("size", 48, "record size in bytes")
	fresh := flag.Bool("fresh", true, "truncate the heap file before seeding")
	flag.Parse()

	if *n < 0 || *size < 0 || *size > types.MaxRecordSize {
		fmt.Fprintf(os.Stderr, "Error: -n must be >= 0 and -size within [0, %d]\n", types.MaxRecordSize)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *filePath != "" {
		cfg.HeapFile.Path = *filePath
	}

	lg, closer, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	se := storageengine.NewStorageEngine(cfg, lg)
	path := cfg.HeapFile.Path

	if *fresh {
		if err := se.CreateHeapFile(path); err != nil {
			lg.Fatal().Err(err).Msg("create heap file")
		}
	}

	h, err := se.Open(path)
	if err != nil {
		lg.Fatal().Err(err).Msg("open heap file")
	}

	perPage := map[uint32]int{}
	for i := 0; i < *n; i++ {
		rid, err := h.HeapFile.InsertRecord(studentRecord(i, *size))
		if err != nil {
			h.Close()
			lg.Fatal().Err(err).Int("record", i).Msg("insert")
		}
		perPage[rid.PageNumber]++
	}

	pages, err := h.HeapFile.PageCount()
	if err != nil {
		h.Close()
		lg.Fatal().Err(err).Msg("page count")
	}
	if err := h.Close(); err != nil {
		lg.Fatal().Err(err).Msg("close heap file")
	}

	fmt.Printf("Seeded %s\n", path)
	fmt.Printf("  records inserted: %s of %s each\n", humanize.Comma(int64(*n)), humanize.IBytes(uint64(*size)))
	fmt.Printf("  pages in file:    %d (%s)\n", pages, humanize.IBytes(uint64(pages)*types.PageSize))
	for pageNum := uint32(0); pageNum < pages; pageNum++ {
		if count, ok := perPage[pageNum]; ok {
			fmt.Printf("  page %d: %d new records\n", pageNum, count)
		}
	}
}

// studentRecord renders record i as "Student_i|Age|Grade", padded or cut to size bytes
func studentRecord(i, size int) []byte {
	row := fmt.Sprintf("Student_%05d|%d|%c", i, 18+i%7, 'A'+rune(i%4))
	if len(row) < size {
		row += strings.Repeat(".", size-len(row))
	}
	return []byte(row[:size])
}
