package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	return entry
}

func TestInfoWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.DebugLevel, "json")

	log.Info("guests.lookup: resolved", "guest_id", "g-1", "candidates", 2)

	entry := decodeLine(t, &buf)
	if entry["message"] != "guests.lookup: resolved" {
		t.Fatalf("expected message, got %v", entry["message"])
	}
	if entry["guest_id"] != "g-1" {
		t.Fatalf("expected guest_id g-1, got %v", entry["guest_id"])
	}
	if entry["candidates"] != float64(2) {
		t.Fatalf("expected candidates 2, got %v", entry["candidates"])
	}
}

func TestBusinessErrorLogsAtWarn(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.DebugLevel, "json")

	log.BusinessError("guests.rsvp: guest not found", errors.New("guest not found"), "guest_id", "g-9")

	entry := decodeLine(t, &buf)
	if entry["level"] != "warn" {
		t.Fatalf("expected warn level, got %v", entry["level"])
	}
	if entry["error"] != "guest not found" {
		t.Fatalf("expected error field, got %v", entry["error"])
	}
}

func TestNilErrorsAreDropped(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.DebugLevel, "json")

	log.BusinessError("ignored", nil)
	log.InternalError("ignored", nil)

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestCriticalDoesNotExit(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.InfoLevel, "json")

	log.Critical("app: init failed", "err", "boom")

	entry := decodeLine(t, &buf)
	if entry["level"] != "fatal" || entry["critical"] != true {
		t.Fatalf("expected critical fatal entry, got %v", entry)
	}
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.DebugLevel, "json").With("component", "guests")

	log.Debug("cache miss")

	entry := decodeLine(t, &buf)
	if entry["component"] != "guests" {
		t.Fatalf("expected component field, got %v", entry["component"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		value string
		env   string
		want  zerolog.Level
	}{
		{"", "development", zerolog.DebugLevel},
		{"", "production", zerolog.InfoLevel},
		{"WARNING", "production", zerolog.WarnLevel},
		{"critical", "production", zerolog.FatalLevel},
		{"info", "development", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.value, tc.env); got != tc.want {
			t.Fatalf("parseLevel(%q, %q): expected %v, got %v", tc.value, tc.env, tc.want, got)
		}
	}
}
