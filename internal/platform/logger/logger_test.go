package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardstack/cardstack-api/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "info", input: "info", want: slog.LevelInfo},
		{name: "warn", input: "warn", want: slog.LevelWarn},
		{name: "error", input: "error", want: slog.LevelError},
		{name: "mixed case", input: "DeBuG", want: slog.LevelDebug},
		{name: "unknown", input: "verbose", want: slog.LevelInfo, wantErr: true},
		{name: "empty", input: "", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetup(t *testing.T) {
	logger, err := Setup(config.ServerConfig{LogLevel: "debug"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	// Setup installs the logger as the process default.
	assert.Equal(t, logger, slog.Default())
}

func TestSetupInvalidLevelFallsBack(t *testing.T) {
	logger, err := Setup(config.ServerConfig{LogLevel: "nonsense"})
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestFromContext(t *testing.T) {
	ctx := context.Background()

	// With nothing attached, the default logger comes back.
	assert.Equal(t, slog.Default(), FromContext(ctx))

	custom := slog.Default().With("component", "test")
	ctx = WithLogger(ctx, custom)
	assert.Equal(t, custom, FromContext(ctx))
}

func TestFromContextOrDefault(t *testing.T) {
	def := slog.Default().With("component", "fallback")

	// No logger in context: provided default wins.
	assert.Equal(t, def, FromContextOrDefault(context.Background(), def))

	// Logger in context: context wins.
	custom := slog.Default().With("component", "request")
	ctx := WithLogger(context.Background(), custom)
	assert.Equal(t, custom, FromContextOrDefault(ctx, def))

	// No logger anywhere: process default.
	assert.Equal(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
}
