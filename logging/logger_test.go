package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// TestLoggerWritesToWriters will test that log events reach every writer registered on the Logger.
func TestLoggerWritesToWriters(t *testing.T) {
	// Create a logger with a buffer as its only output channel
	var buf bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, false, &buf)

	// Log a message and ensure it reached the buffer
	logger.Info("compiler resolved")
	assert.Contains(t, buf.String(), "compiler resolved")

	// Messages below the configured level should be discarded
	buf.Reset()
	logger.Debug("hidden")
	assert.Empty(t, buf.String())
}

// TestAddWriter will test the Logger.AddWriter function to ensure duplicate writers are not registered twice.
func TestAddWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, false)

	// Add the same writer twice; the second add should be a no-op
	logger.AddWriter(&buf)
	logger.AddWriter(&buf)
	assert.Equal(t, 1, len(logger.writers))
}

// TestSubLogger will test that a sub-logger attaches its key-value context to emitted events.
func TestSubLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, false, &buf)

	// Create a sub-logger for a module and log through it
	subLogger := logger.NewSubLogger("module", "verification")
	subLogger.Info("run complete")

	// The module key should be present in the structured output
	assert.Contains(t, buf.String(), "verification")
	assert.Contains(t, buf.String(), "run complete")
}
