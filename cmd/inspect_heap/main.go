// Inspect a heap file page by page.
// Usage: go run ./cmd/inspect_heap [-records] <path-to-heap-file>
// Example: go run ./cmd/inspect_heap -records students.heap
package main

import (
	storageengine "HeapDB/storage_engine"
	heapfile "HeapDB/storage_engine/access/heapfile_manager"
	"HeapDB/types"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	primaryColor = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#A78BFA"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
	warnColor    = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

	titleStyle  = lipgloss.NewStyle().Foreground(primaryColor).Bold(true).Padding(0, 1).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	fullStyle   = lipgloss.NewStyle().Foreground(warnColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	boxStyle    = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(primaryColor).Padding(0, 1)
)

const barWidth = 20

func main() {
	withRecords := flag.Bool("records", false, "also print every record")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-records] <heap-file>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s -records students.heap\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	if err := inspect(path, *withRecords); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func inspect(path string, withRecords bool) error {
	stats, err := storageengine.Inspect(path)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Heap file %s", path)))
	fmt.Println(boxStyle.Render(summary(stats)))
	if len(stats) == 0 {
		return nil
	}

	fmt.Println(renderTable(stats))

	if !withRecords {
		return nil
	}

	all, err := storageengine.GetAllRecords(path)
	if err != nil {
		return err
	}
	for pageNum, records := range all {
		fmt.Println(headerStyle.Render(fmt.Sprintf("page %d", pageNum)))
		for slotID, rec := range records {
			fmt.Printf("  %s %q\n", mutedStyle.Render(fmt.Sprintf("slot %-4d %6s", slotID, humanize.IBytes(uint64(len(rec))))), rec)
		}
	}
	return nil
}

func summary(stats []heapfile.PageStats) string {
	var slots, recordBytes, free int
	for _, s := range stats {
		slots += int(s.SlotCount)
		recordBytes += s.RecordBytes
		free += int(s.FreeSpace)
	}
	lines := []string{
		fmt.Sprintf("pages:   %d (%s)", len(stats), humanize.IBytes(uint64(len(stats))*types.PageSize)),
		fmt.Sprintf("records: %s (%s)", humanize.Comma(int64(slots)), humanize.IBytes(uint64(recordBytes))),
		fmt.Sprintf("free:    %s", humanize.IBytes(uint64(free))),
	}
	return strings.Join(lines, "\n")
}

func renderTable(stats []heapfile.PageStats) string {
	widths := []int{6, 7, 12, 8, 10, barWidth + 2, 18}
	headers := []string{"page", "slots", "free_offset", "free", "records", "fill", "digest"}

	var b strings.Builder
	var row []string
	for i, h := range headers {
		row = append(row, cellStyle.Width(widths[i]).Render(h))
	}
	b.WriteString(headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, row...)) + "\n")

	for _, s := range stats {
		used := types.PageSize - int(s.FreeSpace)
		cells := []string{
			fmt.Sprint(s.PageNumber),
			fmt.Sprint(s.SlotCount),
			fmt.Sprint(s.FreeSpaceOffset),
			humanize.IBytes(uint64(s.FreeSpace)),
			humanize.IBytes(uint64(s.RecordBytes)),
			fillBar(used),
			fmt.Sprintf("%016x", s.Digest),
		}
		row = row[:0]
		for i, c := range cells {
			row = append(row, cellStyle.Width(widths[i]).Render(c))
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, row...)
		if int(s.FreeSpace) < types.SlotSize {
			line = fullStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// fillBar draws how much of the page is taken by header, slots and records
func fillBar(used int) string {
	filled := used * barWidth / types.PageSize
	return strings.Repeat("█", filled) + mutedStyle.Render(strings.Repeat("░", barWidth-filled))
}
