package server

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warning", "error"
}

// ConsoleHandler is a slog.Handler that passes records on to another
// handler and also sends them to a console channel, so a live feed can show
// what the server is doing for it
type ConsoleHandler struct {
	next        slog.Handler
	consoleChan chan<- ConsoleMessage
	attrs       []slog.Attr
}

// NewConsoleHandler creates a handler that forwards to next and copies
// every record to consoleChan
func NewConsoleHandler(next slog.Handler, consoleChan chan<- ConsoleMessage) *ConsoleHandler {
	return &ConsoleHandler{next: next, consoleChan: consoleChan}
}

// Enabled reports whether next handles the level
func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler
func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	// Send to web console if channel is available (non-blocking)
	if h.consoleChan != nil {
		select {
		case h.consoleChan <- ConsoleMessage{
			Message:   h.format(r),
			Timestamp: r.Time,
			Level:     consoleLevel(r.Level),
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs implements slog.Handler
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ConsoleHandler{
		next:        h.next.WithAttrs(attrs),
		consoleChan: h.consoleChan,
		attrs:       append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

// WithGroup implements slog.Handler. Console messages stay flat.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	return &ConsoleHandler{
		next:        h.next.WithGroup(name),
		consoleChan: h.consoleChan,
		attrs:       h.attrs,
	}
}

func (h *ConsoleHandler) format(r slog.Record) string {
	var sb strings.Builder
	sb.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)
	return sb.String()
}

func consoleLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warning"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}
