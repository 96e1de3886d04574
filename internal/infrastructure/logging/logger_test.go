package logging

import (
	"log/slog"
	"testing"

	"github.com/peasenet/homelink/internal/infrastructure/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewReturnsUsableLogger(t *testing.T) {
	log := New(config.LoggingConfig{Level: "debug", Format: "text", Output: "stderr"}, "test")
	if log == nil || log.Logger == nil {
		t.Fatal("New() returned nil logger")
	}
	// Must not panic.
	log.Debug("debug message", "key", "value")
	log.With("component", "test").Info("info message")
}

func TestDefault(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}
}
