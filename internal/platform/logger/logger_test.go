package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accounthub/accounts-api/internal/config"
	"github.com/accounthub/accounts-api/internal/platform/logger"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		enabled  slog.Level
		disabled slog.Level
	}{
		{name: "debug level", logLevel: "debug", enabled: slog.LevelDebug, disabled: slog.Level(-8)},
		{name: "info level", logLevel: "info", enabled: slog.LevelInfo, disabled: slog.LevelDebug},
		{name: "warn level", logLevel: "warn", enabled: slog.LevelWarn, disabled: slog.LevelInfo},
		{name: "error level", logLevel: "error", enabled: slog.LevelError, disabled: slog.LevelWarn},
		{name: "invalid level falls back to info", logLevel: "verbose", enabled: slog.LevelInfo, disabled: slog.LevelDebug},
		{name: "level is case-insensitive", logLevel: "WARN", enabled: slog.LevelWarn, disabled: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log)

			ctx := context.Background()
			assert.True(t, log.Enabled(ctx, tt.enabled))
			assert.False(t, log.Enabled(ctx, tt.disabled))
		})
	}
}

func TestSetup_SetsDefaultLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: "info"})
	require.NoError(t, err)
	assert.Same(t, log, slog.Default())
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	scoped := slog.New(slog.NewJSONHandler(&buf, nil))

	t.Run("returns logger from context", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), scoped)
		assert.Same(t, scoped, logger.FromContext(ctx))
	})

	t.Run("falls back to default when absent", func(t *testing.T) {
		assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
	})

	t.Run("falls back to provided default", func(t *testing.T) {
		assert.Same(t, scoped, logger.FromContextOrDefault(context.Background(), scoped))
	})

	t.Run("context logger wins over provided default", func(t *testing.T) {
		other := slog.New(slog.NewTextHandler(&buf, nil))
		ctx := logger.WithLogger(context.Background(), scoped)
		assert.Same(t, scoped, logger.FromContextOrDefault(ctx, other))
	})

	t.Run("nil context falls back to default", func(t *testing.T) {
		//nolint:staticcheck // exercising the nil-context guard on purpose
		assert.Same(t, scoped, logger.FromContextOrDefault(nil, scoped))
	})
}
