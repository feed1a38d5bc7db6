package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes configuration events to an slog.Logger.
// Useful for development when you want to see events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Failures are logged at Warn
// level, everything else at Debug.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}

	// Add optional identifiers
	if event.Link != "" {
		attrs = append(attrs, slog.String("link", event.Link))
	}
	if event.Ifindex != 0 {
		attrs = append(attrs, slog.Int("ifindex", int(event.Ifindex)))
	}
	if event.Attempt != "" {
		attrs = append(attrs, slog.String("attempt", event.Attempt))
	}

	level := slog.LevelDebug

	// Add type-specific attributes
	switch {
	case event.StateChange != nil:
		if event.StateChange.OldState != "" {
			attrs = append(attrs, slog.String("old_state", event.StateChange.OldState))
		}
		attrs = append(attrs, slog.String("new_state", event.StateChange.NewState))
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Request != nil:
		attrs = append(attrs, slog.String("op", event.Request.Op.String()))
		if event.Request.PayloadSize > 0 {
			attrs = append(attrs, slog.Int("payload_size", event.Request.PayloadSize))
		}
	case event.Completion != nil:
		attrs = append(attrs,
			slog.String("op", event.Completion.Op.String()),
			slog.Bool("ok", event.Completion.OK),
		)
		if event.Completion.Exists {
			attrs = append(attrs, slog.Bool("exists", true))
		}
		if event.Completion.Status != "" {
			attrs = append(attrs, slog.String("status", event.Completion.Status))
		}
	case event.ConfigLoad != nil:
		attrs = append(attrs, slog.String("file", event.ConfigLoad.File))
		if event.ConfigLoad.Key != "" {
			attrs = append(attrs, slog.String("key", event.ConfigLoad.Key))
		}
		if event.ConfigLoad.Value != "" {
			attrs = append(attrs, slog.String("value", event.ConfigLoad.Value))
		}
		attrs = append(attrs, slog.String("detail", event.ConfigLoad.Message))
		level = slog.LevelWarn
		if event.ConfigLoad.Key == "" {
			level = slog.LevelDebug
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("step", event.Error.Step),
			slog.String("error", event.Error.Message),
		)
		level = slog.LevelWarn
	}

	a.logger.LogAttrs(context.Background(), level, "canlink", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
