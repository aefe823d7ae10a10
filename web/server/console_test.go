package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(buf *bytes.Buffer, size int) (*slog.Logger, chan ConsoleMessage) {
	messageChan := make(chan ConsoleMessage, size)
	base := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(NewConsoleHandler(base, messageChan)), messageChan
}

func TestConsoleHandler_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger, messageChan := newTestConsole(&buf, 10)

	logger.Info("scene compiled", "bytes", 1234)

	select {
	case msg := <-messageChan:
		assert.Equal(t, "scene compiled bytes=1234", msg.Message)
		assert.Equal(t, "info", msg.Level)
		assert.WithinDuration(t, time.Now(), msg.Timestamp, time.Second)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for console message")
	}

	// the record still reaches the server log
	assert.Contains(t, buf.String(), "msg=\"scene compiled\"")
}

func TestConsoleHandler_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger, messageChan := newTestConsole(&buf, 10)

	logger.Debug("below the server level")
	logger.Warn("careful")
	logger.Error("broken")

	require.Len(t, messageChan, 2, "disabled levels are not forwarded")
	assert.Equal(t, "warning", (<-messageChan).Level)
	assert.Equal(t, "error", (<-messageChan).Level)
}

func TestConsoleHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, messageChan := newTestConsole(&buf, 10)

	logger.With("scene", "mirrors").WithGroup("watch").Info("scene changed", "op", "WRITE")

	msg := <-messageChan
	assert.Equal(t, "scene changed scene=mirrors op=WRITE", msg.Message)
}

func TestConsoleHandler_ChannelFull(t *testing.T) {
	var buf bytes.Buffer
	logger, messageChan := newTestConsole(&buf, 1)

	// Send more messages than fit; these should not block
	logger.Info("Message 1")
	logger.Info("Message 2")
	logger.Info("Message 3")

	assert.Equal(t, "Message 1", (<-messageChan).Message)
	assert.Contains(t, buf.String(), "Message 3")
}

func TestConsoleHandler_NilChannel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(slog.NewTextHandler(&buf, nil), nil))

	// This should not panic
	logger.Info("Test message with nil channel")
	assert.Contains(t, buf.String(), "Test message with nil channel")
}

func TestConsoleMessage_JSONSerialization(t *testing.T) {
	msg := ConsoleMessage{
		Message:   "Test message",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     "info",
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Test message","timestamp":"2024-01-02T03:04:05Z","level":"info"}`, string(data))
}
