// Package commands implements the canlink-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/canlink-project/canlink-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Link     string
	Category *log.Category
	Op       *log.Op
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [link] CATEGORY Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")

	linkName := event.Link
	if linkName == "" {
		linkName = "daemon"
	}

	var typeLabel string
	switch {
	case event.Request != nil:
		typeLabel = event.Request.Op.String()
	case event.Completion != nil:
		typeLabel = event.Completion.Op.String()
	case event.StateChange != nil:
		typeLabel = "State"
	case event.ConfigLoad != nil:
		typeLabel = "Config"
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [%s] %-10s %s\n", ts, linkName, event.Category, typeLabel)

	if event.Attempt != "" {
		fmt.Fprintf(w, "  Attempt: %s\n", shortenAttempt(event.Attempt))
	}

	switch {
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Request != nil:
		formatRequestDetails(w, event.Request)
	case event.Completion != nil:
		formatCompletionDetails(w, event.Completion)
	case event.ConfigLoad != nil:
		formatConfigLoadDetails(w, event.ConfigLoad)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenAttempt returns the first 8 characters of the attempt ID.
func shortenAttempt(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatStateChangeDetails writes state change details.
func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

// formatRequestDetails writes request submission details.
func formatRequestDetails(w io.Writer, req *log.RequestEvent) {
	if req.PayloadSize > 0 {
		fmt.Fprintf(w, "  Payload: %d bytes\n", req.PayloadSize)
	}
}

// formatCompletionDetails writes acknowledgment details.
func formatCompletionDetails(w io.Writer, comp *log.CompletionEvent) {
	switch {
	case comp.OK:
		fmt.Fprintln(w, "  Result: ok")
	case comp.Exists:
		fmt.Fprintln(w, "  Result: exists (treated as success)")
	default:
		fmt.Fprintf(w, "  Result: %s\n", comp.Status)
	}
}

// formatConfigLoadDetails writes configuration file processing details.
func formatConfigLoadDetails(w io.Writer, cl *log.ConfigLoadEvent) {
	fmt.Fprintf(w, "  File: %s\n", cl.File)
	if cl.Key != "" {
		fmt.Fprintf(w, "  Key: %s = %q\n", cl.Key, cl.Value)
	}
	fmt.Fprintf(w, "  Message: %s\n", cl.Message)
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Step: %s\n", err.Step)
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "state":
		return log.CategoryState, nil
	case "request":
		return log.CategoryRequest, nil
	case "completion":
		return log.CategoryCompletion, nil
	case "config":
		return log.CategoryConfig, nil
	case "error":
		return log.CategoryError, nil
	case "daemon":
		return log.CategoryDaemon, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be state, request, completion, config, error, or daemon)", s)
	}
}

// ParseOpFlag parses an operation string from command-line flag (case-insensitive).
func ParseOpFlag(s string) (log.Op, error) {
	return parseOp(s)
}

// parseOp parses an operation string (case-insensitive).
func parseOp(s string) (log.Op, error) {
	switch strings.ToLower(s) {
	case "down":
		return log.OpDown, nil
	case "configure":
		return log.OpConfigure, nil
	case "up":
		return log.OpUp, nil
	default:
		return 0, fmt.Errorf("invalid operation: %s (must be down, configure, or up)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		if filter.Link != "" && event.Link != filter.Link {
			continue
		}
		if filter.Category != nil && event.Category != *filter.Category {
			continue
		}
		if filter.Op != nil && !matchesOp(event, *filter.Op) {
			continue
		}

		formatEvent(output, event)
	}

	return nil
}

// matchesOp reports whether the event carries the given operation.
func matchesOp(event log.Event, op log.Op) bool {
	if event.Request != nil && event.Request.Op == op {
		return true
	}
	if event.Completion != nil && event.Completion.Op == op {
		return true
	}
	return false
}
