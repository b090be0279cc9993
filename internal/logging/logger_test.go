package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantEnabled bool
	}{
		{
			name: "text file",
			config: Config{
				FilePath:   filepath.Join(t.TempDir(), "test.log"),
				Level:      slog.LevelInfo,
				Format:     FormatText,
				MaxSizeMB:  10,
				MaxBackups: 2,
			},
			wantEnabled: true,
		},
		{
			name:        "empty filepath creates noop logger",
			config:      Config{Level: slog.LevelInfo, Format: FormatText},
			wantEnabled: false,
		},
		{
			name: "json file",
			config: Config{
				FilePath:   filepath.Join(t.TempDir(), "test.log"),
				Level:      slog.LevelDebug,
				Format:     FormatJSON,
				MaxSizeMB:  10,
				MaxBackups: 2,
			},
			wantEnabled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, Init(tt.config))
			defer Shutdown()

			logger := Get()
			require.NotNil(t, logger)
			assert.Equal(t, tt.wantEnabled, IsEnabled())

			logger.Info("test message")
			logger.Debug("test debug")
			logger.Warn("test warning")
			logger.Error("test error")
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" ERROR ", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("yaml"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestComponentLoggerWritesAttributes(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, Init(Config{
		FilePath:   logFile,
		Level:      slog.LevelDebug,
		Format:     FormatText,
		MaxSizeMB:  10,
		MaxBackups: 2,
	}))

	Component("nodes").Info("node deleted", "node", "worker-1")
	Since(time.Now(), "list nodes")
	require.NoError(t, Shutdown())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	text := string(content)
	assert.True(t, strings.Contains(text, "component=nodes"))
	assert.True(t, strings.Contains(text, "node=worker-1"))
	assert.True(t, strings.Contains(text, "list nodes"))
}

func TestShutdownDisablesLogging(t *testing.T) {
	require.NoError(t, Init(Config{FilePath: filepath.Join(t.TempDir(), "test.log")}))
	assert.True(t, IsEnabled())

	require.NoError(t, Shutdown())
	assert.False(t, IsEnabled())

	// no-op logger accepts calls after shutdown
	Info("after shutdown")
	assert.Same(t, Get(), Get().With("k", "v"))
}
