package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/alkime/jailu/internal/config"
	"github.com/alkime/jailu/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want slog.Level
	}{
		{name: "production default", cfg: config.Config{Env: config.EnvProduction, LogLevel: "info"}, want: slog.LevelInfo},
		{name: "development", cfg: config.Config{Env: config.EnvDevelopment, LogLevel: "info"}, want: slog.LevelDebug},
		{name: "explicit debug", cfg: config.Config{Env: config.EnvProduction, LogLevel: "DEBUG"}, want: slog.LevelDebug},
		{name: "explicit warn", cfg: config.Config{Env: config.EnvDevelopment, LogLevel: "warn"}, want: slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.Level(&tt.cfg))
		})
	}
}

func TestSetupCLI(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	log := logger.SetupCLI(&buf, slog.LevelWarn)

	log.Info("hidden")
	slog.Warn("shown", "tone", "sarcastic")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "tone=sarcastic")
}
