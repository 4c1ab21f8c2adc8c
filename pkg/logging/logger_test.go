package logging_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/procurelab/matchbook/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	// Create a buffer to capture output
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	logging.SetDefault(logger)

	// Test logging at different levels
	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")

	output := buf.String()
	if !strings.Contains(output, "info message") {
		t.Errorf("Expected info message in output, got: %s", output)
	}
}

func TestContextLogger(t *testing.T) {
	// Create test logger
	testLogger := logging.NewTestLogger(t)

	// Create context with logger
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)

	// Add fields to context
	ctx = logging.WithDocument(ctx, "invoice")
	ctx = logging.WithOperation(ctx, "normalize")

	// Get logger from context and log
	logger := logging.FromContext(ctx)
	logger.Info().Msg("test message")

	// Verify output contains expected fields
	testLogger.AssertContains(t, "invoice")
	testLogger.AssertContains(t, "normalize")
	testLogger.AssertContains(t, "test message")
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(buf)
	logger.Info().Str("doc", "purchase_order").Msg("loaded")

	output := buf.String()
	if !strings.Contains(output, "purchase_order") {
		t.Errorf("Expected doc field in output, got: %s", output)
	}
	if !strings.Contains(output, "loaded") {
		t.Errorf("Expected message in output, got: %s", output)
	}
}

func TestErrHelper(t *testing.T) {
	testLogger := logging.CaptureLoggingForTest(t)

	logging.Err(errors.New("boom")).Msg("operation failed")

	testLogger.AssertContains(t, "boom")
	testLogger.AssertContains(t, "operation failed")
}
