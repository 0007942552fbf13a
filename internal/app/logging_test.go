package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func newTestLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(LoggerConfig{Level: level, Output: &buf, Prefix: "jot"}), &buf
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"loud", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %s, expected %s", tt.input, got, tt.expected)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level   LogLevel
		present []string
		absent  []string
	}{
		{LogLevelDebug, []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"}, nil},
		{LogLevelWarn, []string{"[WARN]", "[ERROR]"}, []string{"[DEBUG]", "[INFO]"}},
		{LogLevelError, []string{"[ERROR]"}, []string{"[DEBUG]", "[INFO]", "[WARN]"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			logger, buf := newTestLogger(tt.level)
			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Error("e")

			out := buf.String()
			for _, s := range tt.present {
				if !strings.Contains(out, s) {
					t.Errorf("expected %s in %q", s, out)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(out, s) {
					t.Errorf("expected %s filtered from %q", s, out)
				}
			}
		})
	}
}

func TestLogger_Line(t *testing.T) {
	logger, buf := newTestLogger(LogLevelInfo)
	logger.Info("loaded %d keymaps from %s", 2, "/etc/jot")

	line := buf.String()
	if !strings.HasSuffix(line, " [INFO] jot: loaded 2 keymaps from /etc/jot\n") {
		t.Errorf("unexpected line %q", line)
	}
	if strings.Count(line, "\n") != 1 {
		t.Errorf("expected one line, got %q", line)
	}
}

func TestLogger_NoPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	logger.Info("plain")

	if !strings.HasSuffix(buf.String(), " [INFO] plain\n") {
		t.Errorf("unexpected line %q", buf.String())
	}
}

func TestLogger_Fields(t *testing.T) {
	logger, buf := newTestLogger(LogLevelInfo)

	base := logger.WithComponent("lua")
	base.WithField("script", "commands.lua").Info("loaded")
	base.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[0], "loaded {component=lua, script=commands.lua}") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "plain {component=lua}") {
		t.Errorf("derived logger changed its parent: %q", lines[1])
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	logger, buf := newTestLogger(LogLevelInfo)

	logger.WithFields(map[string]any{"b": 2, "a": 1, "c": 3}).Info("x")
	if !strings.Contains(buf.String(), "{a=1, b=2, c=3}") {
		t.Errorf("fields not sorted: %s", buf.String())
	}
}

func TestLogger_SharedOutput(t *testing.T) {
	logger, buf := newTestLogger(LogLevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			child := logger.WithComponent(fmt.Sprintf("c%d", i))
			for j := 0; j < 50; j++ {
				child.Info("line %d", j)
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 400 {
		t.Fatalf("expected 400 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.Contains(line, "[INFO] jot: line ") {
			t.Fatalf("interleaved line %q", line)
		}
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Debug("test")
	NullLogger.WithComponent("handoff").Error("test %d", 1)

	if NullLogger.Enabled(LogLevelError) {
		t.Error("expected NullLogger to be disabled")
	}
	if NullLogger.WithField("k", "v").Enabled(LogLevelError) {
		t.Error("expected derived NullLogger to be disabled")
	}
}

func TestOpenLogger(t *testing.T) {
	logger, closer, err := OpenLogger("debug", "")
	if err != nil {
		t.Fatal(err)
	}
	if logger != NullLogger {
		t.Error("expected NullLogger without a log file")
	}
	closer.Close()

	path := filepath.Join(t.TempDir(), "jot.log")
	logger, closer, err = OpenLogger("warn", path)
	if err != nil {
		t.Fatalf("OpenLogger() error = %v", err)
	}
	logger.Info("hidden")
	logger.WithComponent("handoff").Warn("remove temp file %s: %v", "/tmp/x", "busy")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	output := string(data)
	if strings.Contains(output, "hidden") {
		t.Errorf("info logged at warn level: %s", output)
	}
	if !strings.Contains(output, "jot: remove temp file /tmp/x: busy {component=handoff}") {
		t.Errorf("unexpected output: %s", output)
	}

	if _, _, err := OpenLogger("info", filepath.Join(t.TempDir(), "missing", "jot.log")); err == nil {
		t.Error("expected error for unwritable log file")
	}
}

func TestOpenLogger_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jot.log")
	for _, msg := range []string{"first", "second"} {
		logger, closer, err := OpenLogger("info", path)
		if err != nil {
			t.Fatal(err)
		}
		logger.Info(msg)
		closer.Close()
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Errorf("expected both sessions in log, got %q", data)
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()

	if cfg.Level != LogLevelInfo {
		t.Errorf("expected default level INFO, got %s", cfg.Level)
	}
	if cfg.Output == nil {
		t.Error("expected default output to be set")
	}
	if cfg.Prefix != "jot" {
		t.Errorf("expected prefix 'jot', got '%s'", cfg.Prefix)
	}
}
