package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func parseLines(t *testing.T, lines ...string) *Session {
	t.Helper()
	s, err := Parse(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return s
}

func TestParse_CronSession(t *testing.T) {
	s := parseLines(t,
		`{"type":"session","id":"s-1","timestamp":"2024-03-15T01:00:00Z"}`,
		`{"type":"message","timestamp":"2024-03-15T01:00:05Z","message":{"role":"user","content":"[cron:job1 Daily Report] hello"}}`,
		`{"type":"message","timestamp":"2024-03-15T01:00:09Z","message":{"role":"assistant","content":[{"type":"text","text":"done"}]}}`,
	)

	if s.ID != "s-1" {
		t.Errorf("ID = %q, want %q", s.ID, "s-1")
	}
	if !s.IsCron {
		t.Error("IsCron = false, want true")
	}
	if s.CronName != "Daily Report" {
		t.Errorf("CronName = %q, want %q", s.CronName, "Daily Report")
	}
	if len(s.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(s.Messages))
	}
	if s.Messages[0].Text != "[cron:job1 Daily Report] hello" {
		t.Errorf("marker must be kept at parse time, got %q", s.Messages[0].Text)
	}
	if s.Messages[0].Timestamp != "2024-03-15T01:00:05Z" {
		t.Errorf("raw timestamp = %q", s.Messages[0].Timestamp)
	}
}

func TestParse_Timestamps(t *testing.T) {
	s := parseLines(t,
		`{"type":"custom","timestamp":"2024-03-14T16:30:00Z"}`,
		`{"type":"message","timestamp":"not a time","message":{"role":"user","content":"hi"}}`,
		`{"type":"tool_use","name":"exec","timestamp":"2024-03-14T17:45:10.250+08:00"}`,
		`{"type":"message","message":{"role":"assistant","content":"no timestamp"}}`,
	)

	wantStart := time.Date(2024, 3, 14, 16, 30, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 3, 14, 9, 45, 10, 250_000_000, time.UTC)

	if s.StartTime == nil || !s.StartTime.Equal(wantStart) {
		t.Errorf("StartTime = %v, want %v", s.StartTime, wantStart)
	}
	if s.EndTime == nil || !s.EndTime.Equal(wantEnd) {
		t.Errorf("EndTime = %v, want %v", s.EndTime, wantEnd)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-03-14T16:30:00Z", time.Date(2024, 3, 14, 16, 30, 0, 0, time.UTC), true},
		{"2024-03-14T16:32:00+08:00", time.Date(2024, 3, 14, 8, 32, 0, 0, time.UTC), true},
		{"2024-03-14T16:32:00+0800", time.Date(2024, 3, 14, 8, 32, 0, 0, time.UTC), true},
		{"2024-03-14T16:32:00.5-0500", time.Date(2024, 3, 14, 21, 32, 0, 500_000_000, time.UTC), true},
		{"2024-03-14T16:32:00", time.Date(2024, 3, 14, 16, 32, 0, 0, time.UTC), true},
		{"2024-03-14 16:32:00", time.Date(2024, 3, 14, 16, 32, 0, 0, time.UTC), true},
		{"yesterday", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := parseTimestamp(tt.in)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("parseTimestamp(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParse_BasicFormatOffsetUpdatesEnd(t *testing.T) {
	s := parseLines(t,
		`{"type":"session","timestamp":"2024-03-14T16:30:00Z"}`,
		`{"type":"message","timestamp":"2024-03-14T16:31:00Z","message":{"role":"user","content":"hi"}}`,
		`{"type":"message","timestamp":"2024-03-14T16:32:00+0800","message":{"role":"assistant","content":"hello"}}`,
	)
	want := time.Date(2024, 3, 14, 8, 32, 0, 0, time.UTC)
	if s.EndTime == nil || !s.EndTime.Equal(want) {
		t.Errorf("EndTime = %v, want %v", s.EndTime, want)
	}
}

func TestParse_NoTimestamps(t *testing.T) {
	s := parseLines(t,
		`{"type":"message","message":{"role":"user","content":"hi"}}`,
		`{"type":"message","message":{"role":"assistant","content":"hello"}}`,
	)
	if s.HasTime() {
		t.Errorf("HasTime() = true, want false")
	}
	if len(s.Messages) != 2 {
		t.Errorf("len(Messages) = %d, want 2", len(s.Messages))
	}
}

func TestParse_MalformedLinesSkipped(t *testing.T) {
	s := parseLines(t,
		`{"type":"session","id":"x","timestamp":"2024-03-15T01:00:00Z"}`,
		`{not json`,
		``,
		`   `,
		`[1,2,3]`,
		`null`,
		`{"type":"message","timestamp":"2024-03-15T01:02:00Z","message":{"role":"user","content":"still parsed"}}`,
	)
	if len(s.Messages) != 1 || s.Messages[0].Text != "still parsed" {
		t.Errorf("Messages = %+v, want one message after malformed lines", s.Messages)
	}
	if s.EndTime == nil || s.EndTime.Minute() != 2 {
		t.Errorf("EndTime = %v, want 01:02", s.EndTime)
	}
}

func TestParse_ModelLastWriteWins(t *testing.T) {
	s := parseLines(t,
		`{"type":"model_change","modelId":"model-a"}`,
		`{"type":"model_change","modelId":"model-b"}`,
	)
	if s.Model != "model-b" {
		t.Errorf("Model = %q, want %q", s.Model, "model-b")
	}
}

func TestParse_ToolsDeduplicated(t *testing.T) {
	s := parseLines(t,
		`{"type":"tool_use","name":"read"}`,
		`{"type":"tool_use","name":"exec"}`,
		`{"type":"tool_use","name":"read"}`,
		`{"type":"tool_use","name":""}`,
		`{"type":"tool_use","name":"write"}`,
	)
	want := []string{"read", "exec", "write"}
	if strings.Join(s.ToolsUsed, ",") != strings.Join(want, ",") {
		t.Errorf("ToolsUsed = %v, want %v", s.ToolsUsed, want)
	}
}

func TestParse_CronNameFirstMatchWins(t *testing.T) {
	s := parseLines(t,
		`{"type":"message","message":{"role":"user","content":"plain start"}}`,
		`{"type":"message","message":{"role":"assistant","content":"[cron:x Ignored] assistant text does not count"}}`,
		`{"type":"message","message":{"role":"user","content":"[cron:a First] go"}}`,
		`{"type":"message","message":{"role":"user","content":"[cron:b Second] go"}}`,
	)
	if !s.IsCron {
		t.Fatal("IsCron = false, want true")
	}
	if s.CronName != "First" {
		t.Errorf("CronName = %q, want %q", s.CronName, "First")
	}
}

func TestParse_EmptyTextNotAppended(t *testing.T) {
	s := parseLines(t,
		`{"type":"message","message":{"role":"user","content":"   "}}`,
		`{"type":"message","message":{"role":"assistant","content":[{"type":"toolCall","name":"exec"}]}}`,
		`{"type":"message","message":{"role":"toolResult","content":"output"}}`,
	)
	if len(s.Messages) != 1 || s.Messages[0].Role != "toolResult" {
		t.Errorf("Messages = %+v, want only the toolResult message", s.Messages)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc.jsonl")
	content := `{"type":"session","id":"abc","timestamp":"2024-03-15T01:00:00Z"}` + "\n" +
		`{"type":"message","message":{"role":"user","content":"no trailing newline"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if s.Path != path {
		t.Errorf("Path = %q, want %q", s.Path, path)
	}
	if len(s.Messages) != 1 {
		t.Errorf("last line without newline was dropped")
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.jsonl")); err == nil {
		t.Error("ParseFile(missing) error = nil, want error")
	}
}
