package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNormalizeUsername(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "alice", want: "alice"},
		{name: "surrounding whitespace", input: "  bob \n", want: "bob"},
		{name: "leading at sign", input: "@carol", want: "carol"},
		{name: "case preserved", input: "Dave.Smith", want: "Dave.Smith"},
		{name: "blank", input: "   ", want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeUsername(tt.input); got != tt.want {
				t.Errorf("NormalizeUsername(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Run("empty defaults to info", func(t *testing.T) {
		ll, err := ParseLogLevel("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ll != log.InfoLevel {
			t.Errorf("expected info level, got %v", ll)
		}
	})

	t.Run("debug", func(t *testing.T) {
		ll, err := ParseLogLevel("debug")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ll != log.DebugLevel {
			t.Errorf("expected debug level, got %v", ll)
		}
	})

	t.Run("unknown level", func(t *testing.T) {
		if _, err := ParseLogLevel("chatty"); err == nil {
			t.Error("expected error for unknown level")
		}
	})
}

func TestLoggers(t *testing.T) {
	t.Run("NewLogger writes to writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello", "key", "value")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
	})

	t.Run("WithLogger adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "test")
		logger.Info("hello")

		if !strings.Contains(buf.String(), "component=test") {
			t.Errorf("expected child logger fields, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "app.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger() error = %v", err)
		}
		logger.Info("written")
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a == b {
		t.Error("expected unique IDs")
	}
}
