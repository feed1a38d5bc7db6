package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/canlink-project/canlink-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	EventsByOp       map[log.Op]int
	Links            map[string]*LinkStats
	Errors           int
	Warnings         int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// LinkStats holds statistics for a single interface.
type LinkStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Ifindex   int32
	Attempts  map[string]struct{}
	Failures  int
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		EventsByOp:       make(map[log.Op]int),
		Links:            make(map[string]*LinkStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++
		switch {
		case event.Request != nil:
			stats.EventsByOp[event.Request.Op]++
		case event.Completion != nil:
			stats.EventsByOp[event.Completion.Op]++
		}

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		// Config warnings carry a key; plain load records do not.
		if event.ConfigLoad != nil && event.ConfigLoad.Key != "" {
			stats.Warnings++
		}
		if event.Error != nil {
			stats.Errors++
		}

		if event.Link == "" {
			continue
		}

		ls, ok := stats.Links[event.Link]
		if !ok {
			ls = &LinkStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
				Attempts:  make(map[string]struct{}),
			}
			stats.Links[event.Link] = ls
		}
		ls.Events++
		if event.Timestamp.After(ls.LastSeen) {
			ls.LastSeen = event.Timestamp
		}
		if event.Ifindex != 0 && ls.Ifindex == 0 {
			ls.Ifindex = event.Ifindex
		}
		if event.Attempt != "" {
			ls.Attempts[event.Attempt] = struct{}{}
		}
		if event.Error != nil {
			ls.Failures++
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== CAN Link Log Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	// Total events
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	// Events by category
	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryState, log.CategoryRequest, log.CategoryCompletion, log.CategoryConfig, log.CategoryError, log.CategoryDaemon} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Events by operation
	fmt.Fprintln(w, "Events by Operation:")
	for _, op := range []log.Op{log.OpDown, log.OpConfigure, log.OpUp} {
		if count := stats.EventsByOp[op]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", op.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Links
	fmt.Fprintf(w, "Links: %d\n", len(stats.Links))
	if len(stats.Links) > 0 {
		type linkInfo struct {
			name  string
			stats *LinkStats
		}
		links := make([]linkInfo, 0, len(stats.Links))
		for name, ls := range stats.Links {
			links = append(links, linkInfo{name, ls})
		}
		sort.Slice(links, func(i, j int) bool {
			return links[i].stats.FirstSeen.Before(links[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, l := range links {
			duration := l.stats.LastSeen.Sub(l.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", l.name, l.stats.Events, duration)
			if l.stats.Ifindex != 0 {
				fmt.Fprintf(w, "           Ifindex: %d\n", l.stats.Ifindex)
			}
			if len(l.stats.Attempts) > 0 {
				fmt.Fprintf(w, "           Attempts: %d\n", len(l.stats.Attempts))
			}
			if l.stats.Failures > 0 {
				fmt.Fprintf(w, "           Failures: %d\n", l.stats.Failures)
			}
		}
	}

	// Errors and warnings
	if stats.Errors > 0 || stats.Warnings > 0 {
		fmt.Fprintln(w)
		if stats.Errors > 0 {
			fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
		}
		if stats.Warnings > 0 {
			fmt.Fprintf(w, "Config Warnings: %d\n", stats.Warnings)
		}
	}
}
