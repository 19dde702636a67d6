package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/heartmarshall/vocabmeanings/internal/config"
)

func TestNewLogger_SetsDefault(t *testing.T) {
	cfg := config.LogConfig{Level: "info", Format: "json"}
	logger := NewLogger(cfg)

	def := slog.Default()
	// They should reference the same underlying handler.
	if def.Handler() != logger.Handler() {
		t.Error("NewLogger should set the returned logger as slog default")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level    string
		wantSlog slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		tt := tt
		t.Run("level_"+tt.level, func(t *testing.T) {
			var buf bytes.Buffer

			logger := newLogger(&buf, false, config.LogConfig{
				Level:  tt.level,
				Format: "text",
			})

			logger.Log(context.TODO(), tt.wantSlog, "should appear")
			if buf.Len() == 0 {
				t.Errorf("expected log output at level %v", tt.wantSlog)
			}

			buf.Reset()
			belowLevel := tt.wantSlog - 1
			logger.Log(context.TODO(), belowLevel, "should be suppressed")
			if buf.Len() != 0 {
				t.Errorf("level %v should suppress level %v, but got output: %s",
					tt.wantSlog, belowLevel, buf.String())
			}
		})
	}
}

func TestNewLogger_TextAddSource_JSONNoSource(t *testing.T) {
	var textBuf, jsonBuf bytes.Buffer

	textLogger := newLogger(&textBuf, false, config.LogConfig{
		Level: "info", Format: "text",
	})
	textLogger.Info("hello")

	jsonLogger := newLogger(&jsonBuf, true, config.LogConfig{
		Level: "info", Format: "json",
	})
	jsonLogger.Info("hello")

	if !strings.Contains(textBuf.String(), "source=") {
		t.Error("text format should include source")
	}

	var m map[string]any
	if err := json.Unmarshal(jsonBuf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := m["source"]; ok {
		t.Error("json format should not include source")
	}
}

func TestNewLogger_AutoFormat(t *testing.T) {
	var ttyBuf, pipeBuf bytes.Buffer

	newLogger(&ttyBuf, true, config.LogConfig{Level: "info", Format: "auto"}).Info("hello")
	newLogger(&pipeBuf, false, config.LogConfig{Level: "info", Format: "auto"}).Info("hello")

	if !strings.Contains(ttyBuf.String(), "msg=hello") {
		t.Errorf("auto on a terminal should use text, got %q", ttyBuf.String())
	}

	var m map[string]any
	if err := json.Unmarshal(pipeBuf.Bytes(), &m); err != nil {
		t.Fatalf("auto off a terminal should use JSON: %v", err)
	}
	if m["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", m["msg"])
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		format     string
		isTerminal bool
		want       string
	}{
		{"json", true, "json"},
		{"JSON", false, "json"},
		{"text", false, "text"},
		{"auto", true, "text"},
		{"auto", false, "json"},
		{"", true, "text"},
	}
	for _, tt := range tests {
		if got := resolveFormat(tt.format, tt.isTerminal); got != tt.want {
			t.Errorf("resolveFormat(%q, %v) = %q, want %q", tt.format, tt.isTerminal, got, tt.want)
		}
	}
}
