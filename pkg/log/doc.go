// Package log provides structured event logging for CAN link configuration.
//
// This package defines the Logger interface and Event types for capturing
// what the configurator did to each link: lifecycle transitions, rtnetlink
// request submissions, kernel acknowledgments, configuration file warnings,
// and fatal failures. It is separate from operational logging (slog) -
// the event log is a complete machine-readable history of every
// configuration attempt, suitable for post-mortem analysis.
//
// # Basic Usage
//
// Components receive a Logger implementation:
//
//	// For development: mirror events onto the console via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	logger, _ := log.NewFileLogger("/var/log/canlink/events.clog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Each event carries the link name, interface index, and the attempt UUID
// that groups the records of one down/configure/up sequence. The payload
// distinguishes state changes (StateChangeEvent), submissions
// (RequestEvent), acknowledgments (CompletionEvent), configuration file
// processing (ConfigLoadEvent), and failures (ErrorEventData).
//
// # File Format
//
// Log files use CBOR encoding with .clog extension. The canlink-log CLI
// tool provides viewing, filtering, statistics, and export.
package log
