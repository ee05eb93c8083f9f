package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"uppercase INFO", "INFO", slog.LevelInfo},
		{"uppercase DEBUG", "DEBUG", slog.LevelDebug},
		{"uppercase TRACE", "TRACE", LevelTrace},
		{"mixed case Debug", "Debug", slog.LevelDebug},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"info", true},
		{"TRACE", true},
		{"warn", false},
		{"verbose", false},
	}

	for _, tt := range tests {
		if got := ValidLevel(tt.input); got != tt.want {
			t.Errorf("ValidLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantTrace bool
	}{
		{"info level", "info", false, false},
		{"debug level", "debug", true, false},
		{"trace level", "trace", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)
			if logger == nil {
				t.Fatal("NewLogger returned nil")
			}

			logger.Debug("debug message")
			logger.Log(context.Background(), LevelTrace, "trace message")
			logger.Info("info message")

			out := buf.String()
			if !strings.Contains(out, "info message") {
				t.Error("info message missing")
			}
			if got := strings.Contains(out, "debug message"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "trace message"); got != tt.wantTrace {
				t.Errorf("trace logged = %v, want %v", got, tt.wantTrace)
			}
		})
	}
}

func TestNewLogger_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("trace", &buf)
	logger.Log(context.Background(), LevelTrace, "walk finished", "steps", 3)

	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("expected level=TRACE in output, got: %s", buf.String())
	}
}
