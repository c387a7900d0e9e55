package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNewLoggerWritesServiceAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{ServiceName: "campusswap", Environment: "test", Level: "info", Output: &buf})

	log.Debug("hidden")
	log.Info("visible", "k", "v")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "visible" || line["service"] != "campusswap" || line["env"] != "test" || line["k"] != "v" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestNewLoggerDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{ServiceName: "campusswap", Level: "DEBUG", Output: &buf})
	log.Debug("shown")
	if !bytes.Contains(buf.Bytes(), []byte(`"msg":"shown"`)) {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]struct {
		lvl slog.Level
		ok  bool
	}{
		"":        {slog.LevelInfo, true},
		"Warning": {slog.LevelWarn, true},
		"error":   {slog.LevelError, true},
		"verbose": {slog.LevelInfo, false},
	}
	for in, want := range cases {
		lvl, ok := ParseLevel(in)
		if lvl != want.lvl || ok != want.ok {
			t.Fatalf("ParseLevel(%q) = (%v, %v), want (%v, %v)", in, lvl, ok, want.lvl, want.ok)
		}
	}
}
