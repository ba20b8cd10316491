package digest

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xiaoyuanzhu-com/mybrain/config"
	"github.com/xiaoyuanzhu-com/mybrain/db"
	"github.com/xiaoyuanzhu-com/mybrain/session"
)

type fakeRecorder struct {
	runs []*db.DigestRun
	err  error
}

func (f *fakeRecorder) RecordDigestRun(_ context.Context, run *db.DigestRun) error {
	f.runs = append(f.runs, run)
	return f.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default(t.TempDir())
	if err := os.MkdirAll(cfg.SessionsDir, 0755); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestDocument(t *testing.T) {
	start := time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC)
	s := &session.Session{
		StartTime: &start,
		Model:     "m",
		ToolsUsed: []string{"exec"},
		Messages:  msgs("user", "hi", "assistant", "hello"),
	}
	w := &Writer{Renderer: Renderer{Location: time.UTC}}

	got := w.Document("2024-03-15", []*session.Session{s})
	want := "# Session Digest: 2024-03-15\n" +
		"\n" +
		"1 sessions\n" +
		"\n" +
		"## 📊 Stats\n" +
		"- Chat: 1 | Cron: 0\n" +
		"- Messages: 2\n" +
		"- Tools: exec\n" +
		"\n" +
		"## 📝 Sessions\n" +
		"\n" +
		"### 01:00 💬 Chat: Session\n" +
		"- **Model**: m\n" +
		"- **Tools**: exec\n" +
		"\n" +
		"**👤 User**: hi\n" +
		"\n" +
		"**🤖 Assistant**: hello\n" +
		"\n" +
		"---\n"
	if got != want {
		t.Errorf("Document() =\n%q\nwant\n%q", got, want)
	}
}

func TestComputeStats(t *testing.T) {
	var tools []string
	for i := 0; i < 15; i++ {
		tools = append(tools, string(rune('o'-i)))
	}
	sessions := []*session.Session{
		{IsCron: true, Messages: msgs("user", "a", "assistant", "b"), ToolsUsed: tools},
		{Messages: msgs("user", "a", "toolResult", "b", "assistant", "c"), ToolsUsed: []string{"exec", "a"}},
	}
	st := ComputeStats(sessions)
	if st.Sessions != 2 || st.Chat != 1 || st.Cron != 1 || st.Messages != 5 {
		t.Errorf("ComputeStats() = %+v", st)
	}
	// Aggregate is not capped
	if len(st.Tools) != 16 {
		t.Errorf("len(Tools) = %d, want 16", len(st.Tools))
	}
	if st.Tools[0] != "a" || st.Tools[len(st.Tools)-1] != "o" {
		t.Errorf("Tools not sorted: %v", st.Tools)
	}
}

func TestPipeline_NoSessionsWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	rec := &fakeRecorder{}

	res, err := NewPipeline(cfg, rec).Run(context.Background(), "2024-03-15")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Written || res.Path != "" {
		t.Errorf("Run() = %+v, want nothing written", res)
	}
	if _, err := os.Stat(cfg.DigestDir()); !os.IsNotExist(err) {
		t.Errorf("digest dir exists after empty run (err = %v)", err)
	}
	if len(rec.runs) != 0 {
		t.Errorf("recorded %d runs, want 0", len(rec.runs))
	}
}

func TestPipeline_LeavesExistingDigestWhenEmpty(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(cfg.DigestDir(), "2024-03-15.md")
	if err := os.MkdirAll(cfg.DigestDir(), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("keep me"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewPipeline(cfg, nil).Run(context.Background(), "2024-03-15"); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "keep me" {
		t.Errorf("existing digest modified: %q", data)
	}
}

func TestPipeline_Idempotent(t *testing.T) {
	cfg := testConfig(t)
	day := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	writeLog(t, cfg.SessionsDir, "one.jsonl", day,
		`{"type":"session","id":"one","timestamp":"2024-03-15T08:00:00Z"}`,
		`{"type":"model_change","modelId":"model-a"}`,
		`{"type":"message","message":{"role":"user","content":"[cron:r1 Morning Brief] start"}}`,
		`{"type":"tool_use","name":"web_search"}`,
		`{"type":"message","message":{"role":"assistant","content":[{"type":"text","text":"Here"},{"type":"text","text":"it is"}]}}`,
	)
	writeLog(t, cfg.SessionsDir, "two.jsonl", day, chatLog("two", "2024-03-15T07:00:00Z")...)

	rec := &fakeRecorder{}
	p := NewPipeline(cfg, rec)

	first, err := p.Run(context.Background(), "2024-03-15")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !first.Written || first.Stats.Sessions != 2 || first.Stats.Cron != 1 {
		t.Fatalf("Run() = %+v", first)
	}
	a, err := os.ReadFile(first.Path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := p.Run(context.Background(), "2024-03-15"); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(first.Path)
	if !bytes.Equal(a, b) {
		t.Error("second run produced different output")
	}

	doc := string(a)
	if strings.Index(doc, "07:00 💬 Chat") > strings.Index(doc, "08:00 🤖 Cron: Morning Brief") {
		t.Error("sessions not ordered by start time")
	}
	if !strings.Contains(doc, "**🤖 Assistant**: Here it is\n") {
		t.Error("list content not flattened")
	}
	if len(rec.runs) != 2 || rec.runs[0].OutputPath != first.Path {
		t.Errorf("recorded runs = %d", len(rec.runs))
	}
}

func TestPipeline_RecorderFailureIgnored(t *testing.T) {
	cfg := testConfig(t)
	day := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	writeLog(t, cfg.SessionsDir, "one.jsonl", day, chatLog("one", "2024-03-15T07:00:00Z")...)

	res, err := NewPipeline(cfg, &fakeRecorder{err: errors.New("disk full")}).Run(context.Background(), "2024-03-15")
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if !res.Written {
		t.Error("digest not written")
	}
}
