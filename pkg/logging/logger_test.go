package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"DEBUG", DebugLevel, false},
		{"debug", DebugLevel, false},
		{"", InfoLevel, false},
		{"info", InfoLevel, false},
		{"Warn", WarnLevel, false},
		{"warning", WarnLevel, false},
		{"ERROR", ErrorLevel, false},
		{" error ", ErrorLevel, false},
		{"verbose", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFieldConstructors(t *testing.T) {
	t.Run("Duration", func(t *testing.T) {
		f := Duration("timeout", 5*time.Second)
		if f.Key != "timeout" || f.Value != "5s" {
			t.Errorf("Duration() = %+v", f)
		}
	})

	t.Run("Error", func(t *testing.T) {
		f := Error(errors.New("boom"))
		if f.Key != "error" || f.Value != "boom" {
			t.Errorf("Error() = %+v", f)
		}
	})

	t.Run("Error_nil", func(t *testing.T) {
		f := Error(nil)
		if f.Key != "error" || f.Value != nil {
			t.Errorf("Error(nil) = %+v", f)
		}
	})

	t.Run("Record", func(t *testing.T) {
		f := Record(7)
		if f.Key != "record" || f.Value != 7 {
			t.Errorf("Record() = %+v", f)
		}
	})

	t.Run("Graph", func(t *testing.T) {
		f := Graph("officers")
		if f.Key != "graph" || f.Value != "officers" {
			t.Errorf("Graph() = %+v", f)
		}
	})
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()

	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Failed to unmarshal %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("files loaded", File("a.json"), Count(3))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != "INFO" {
		t.Errorf("Level = %v, want INFO", entry.Level)
	}
	if entry.Message != "files loaded" {
		t.Errorf("Message = %v", entry.Message)
	}
	if entry.Fields["file"] != "a.json" {
		t.Errorf("Fields[file] = %v", entry.Fields["file"])
	}
	if entry.Fields["count"] != float64(3) {
		t.Errorf("Fields[count] = %v", entry.Fields["count"])
	}
	if entry.Time == "" {
		t.Error("Time field is empty")
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("Levels = %s, %s", entries[0].Level, entries[1].Level)
	}

	if logger.Enabled(InfoLevel) {
		t.Error("Enabled(InfoLevel) = true at WarnLevel")
	}
	if !logger.Enabled(ErrorLevel) {
		t.Error("Enabled(ErrorLevel) = false at WarnLevel")
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(RunID("run-1"), Component("loader"))
	child.Info("loaded", Count(2))
	logger.Info("parent")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Fields["run_id"] != "run-1" || entries[0].Fields["component"] != "loader" {
		t.Errorf("child fields = %v", entries[0].Fields)
	}
	if entries[0].Fields["count"] != float64(2) {
		t.Errorf("count field = %v", entries[0].Fields["count"])
	}
	if entries[1].Fields != nil {
		t.Errorf("parent should carry no fields, got %v", entries[1].Fields)
	}
}

func TestStageTimer(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartStage(logger, "projection")
	timer.End(Graph("officers"), Int("edges", 4))
	timer.EndError(errors.New("disk full"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	done := entries[0]
	if done.Message != "stage complete" || done.Fields["stage"] != "projection" {
		t.Errorf("unexpected completion entry %+v", done)
	}
	if done.Fields["edges"] != float64(4) || done.Fields["graph"] != "officers" {
		t.Errorf("result fields missing: %v", done.Fields)
	}
	if _, ok := done.Fields["latency"]; !ok {
		t.Error("latency field missing")
	}

	failed := entries[1]
	if failed.Level != "ERROR" || failed.Fields["error"] != "disk full" {
		t.Errorf("unexpected failure entry %+v", failed)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("ignored", Count(1))
	if logger.With(Count(1)) == nil {
		t.Error("With() returned nil")
	}
	if logger.Enabled(ErrorLevel) {
		t.Error("NopLogger should not be enabled")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "Warn")
	logger := NewFromEnv()
	if logger.Enabled(InfoLevel) || !logger.Enabled(WarnLevel) {
		t.Error("LOG_LEVEL=Warn should enable WARN and above only")
	}

	t.Setenv("LOG_LEVEL", "loud")
	logger = NewFromEnv()
	if !logger.Enabled(InfoLevel) || logger.Enabled(DebugLevel) {
		t.Error("an unknown LOG_LEVEL should fall back to INFO")
	}
}
