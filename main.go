package main

import (
	"HeapDB/config"
	"HeapDB/logger"
	storageengine "HeapDB/storage_engine"
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/phuslu/log"
)

const help = `commands:
  insert <text>       store text as a record, prints its (page,slot)
  get <page> <slot>   print one record
  scan                print every record in page and slot order
  pages               print per page statistics
  stats               print page cache counters
  exit`

func main() {
	configPath := flag.String("config", "heapdb.json", "path to the JSON config file")
	filePath := flag.String("file", "", "heap file to open (overrides heap_file.path)")
	logLevel := flag.String("log-level", "", "log level (overrides log.level)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *filePath != "" {
		cfg.HeapFile.Path = *filePath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lg, closer, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	se := storageengine.NewStorageEngine(cfg, lg)
	h, err := se.Open(cfg.HeapFile.Path)
	if err != nil {
		lg.Fatal().Err(err).Str("path", cfg.HeapFile.Path).Msg("failed to open heap file")
	}
	defer func() {
		if err := h.Close(); err != nil {
			lg.Error().Err(err).Msg("failed to close heap file")
		}
	}()

	fmt.Printf("heap file %s, type 'help' for commands\n", h.Path())

	scanner := bufio.NewScanner(os.Stdin)
	// REPL
	for {
		fmt.Print("heap> ")

		if !scanner.Scan() { // Ctrl+D pressed
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "exit") {
			break
		}
		if line == "" {
			continue
		}

		if err := execute(h, lg, line); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func execute(h *storageengine.HeapHandle, lg *log.Logger, line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	hf := h.HeapFile

	switch strings.ToLower(cmd) {
	case "help":
		fmt.Println(help)

	case "insert":
		if rest == "" {
			return fmt.Errorf("usage: insert <text>")
		}
		rid, err := hf.InsertRecord([]byte(rest))
		if err != nil {
			return err
		}
		fmt.Printf("inserted at %s\n", rid)

	case "get":
		fields := strings.Fields(rest)
		if len(fields) != 2 {
			return fmt.Errorf("usage: get <page> <slot>")
		}
		pageNum, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid page number %q", fields[0])
		}
		slotID, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid slot id %q", fields[1])
		}
		rec, err := hf.GetRecord(uint32(pageNum), slotID)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", rec)

	case "scan":
		all, err := hf.GetAllRecords()
		if err != nil {
			return err
		}
		total := 0
		for pageNum, records := range all {
			for slotID, rec := range records {
				fmt.Printf("(%d,%d) %s\n", pageNum, slotID, rec)
				total++
			}
		}
		fmt.Printf("%d records in %d pages\n", total, len(all))

	case "pages":
		return hf.InspectTo(os.Stdout, false)

	case "stats":
		stats, ok := h.CacheStats()
		if !ok {
			fmt.Println("page cache disabled (cache.capacity_pages = 0)")
			return nil
		}
		fmt.Printf("hits=%d misses=%d hit_rate=%.2f\n", stats.Hits, stats.Misses, stats.HitRate)

	default:
		lg.Debug().Str("input", line).Msg("unknown command")
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	return nil
}
