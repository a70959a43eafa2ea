package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aviaryworks/fieldguide/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	logging.SetDefault(logger)

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
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithSource(ctx, "gbif")
	ctx = logging.WithQuery(ctx, "Ailuropoda melanoleuca")

	logger := logging.FromContext(ctx)
	logger.Info().Msg("fetch complete")

	testLogger.AssertContains(t, "gbif")
	testLogger.AssertContains(t, "Ailuropoda melanoleuca")
	testLogger.AssertContains(t, "fetch complete")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	logger := logging.FromContext(context.Background())
	if logger == nil {
		t.Fatal("expected default logger, got nil")
	}

	//nolint:staticcheck // deliberate nil-context check
	if logging.FromContext(nil) == nil {
		t.Fatal("expected default logger for nil context")
	}
}
