// dump_sample builds a small sample heap file and writes its page dump to
// cmd/sample_run_output.txt. Run from repo root: go run ./cmd/dump_sample
package main

import (
	"HeapDB/logger"
	heapfile "HeapDB/storage_engine/access/heapfile_manager"
	diskmanager "HeapDB/storage_engine/disk_manager"
	"fmt"
	"os"
	"strings"
)

const (
	heapPath   = "cmd/sample.heap"
	outputFile = "cmd/sample_run_output.txt"
)

var sampleRows = []string{
	"S001|Alice|20|A",
	"S002|Bob|21|B",
	"S003|Carol|19|A",
	"CS101|Intro to CS",
	"CS102|Data Structures",
}

func main() {
	outPath, dataPath := outputFile, heapPath
	// If run from cmd/dump_sample, write next to the binary
	if _, err := os.Stat("cmd"); os.IsNotExist(err) {
		outPath, dataPath = "sample_run_output.txt", "sample.heap"
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := run(f, dataPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (heap file: %s)\n", outPath, dataPath)
}

func run(f *os.File, dataPath string) error {
	file, err := diskmanager.CreateFile(dataPath)
	if err != nil {
		return err
	}
	dm := diskmanager.NewDiskManager(file, logger.Discard())
	defer dm.Close()
	hf := heapfile.NewHeapFile(dm, logger.Discard())

	fmt.Fprintln(f, "========== INSERT (small rows) ==========")
	for _, row := range sampleRows {
		rid, err := hf.InsertRecord([]byte(row))
		if err != nil {
			return err
		}
		fmt.Fprintf(f, "%-24s -> %s\n", row, rid)
	}

	// large rows force a second page
	fmt.Fprintln(f, "\n========== INSERT (1500 byte rows) ==========")
	for i := 0; i < 3; i++ {
		row := fmt.Sprintf("BULK%02d|", i) + strings.Repeat("x", 1500-7)
		rid, err := hf.InsertRecord([]byte(row))
		if err != nil {
			return err
		}
		fmt.Fprintf(f, "BULK%02d (1500B)           -> %s\n", i, rid)
	}

	fmt.Fprintln(f, "\n========== DUMP ==========")
	return hf.InspectTo(f, true)
}
