package digest

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xiaoyuanzhu-com/mybrain/fs"
	"github.com/xiaoyuanzhu-com/mybrain/session"
)

// Stats aggregates the sessions of one date.
type Stats struct {
	Sessions int
	Chat     int
	Cron     int
	Messages int
	Tools    []string // sorted, unique
}

// ComputeStats partitions sessions by IsCron and unions their tools.
func ComputeStats(sessions []*session.Session) Stats {
	st := Stats{Sessions: len(sessions)}
	seen := make(map[string]bool)
	for _, s := range sessions {
		if s.IsCron {
			st.Cron++
		} else {
			st.Chat++
		}
		st.Messages += len(s.Messages)
		for _, t := range s.ToolsUsed {
			if !seen[t] {
				seen[t] = true
				st.Tools = append(st.Tools, t)
			}
		}
	}
	sort.Strings(st.Tools)
	return st
}

// Writer renders and stores the digest document for a date.
type Writer struct {
	Dir      string
	Renderer Renderer
}

// Path returns the digest file for date.
func (w *Writer) Path(date string) string {
	return filepath.Join(w.Dir, date+".md")
}

// Document builds the full digest text.
func (w *Writer) Document(date string, sessions []*session.Session) string {
	st := ComputeStats(sessions)

	lines := []string{
		"# Session Digest: " + date, "",
		fmt.Sprintf("%d sessions", st.Sessions), "",
		"## 📊 Stats",
		fmt.Sprintf("- Chat: %d | Cron: %d", st.Chat, st.Cron),
		fmt.Sprintf("- Messages: %d", st.Messages),
	}
	if len(st.Tools) > 0 {
		lines = append(lines, "- Tools: "+strings.Join(st.Tools, ", "))
	}
	lines = append(lines, "", "## 📝 Sessions", "")

	for _, s := range sessions {
		lines = append(lines, w.Renderer.Render(s), "---", "")
	}
	return strings.Join(lines, "\n")
}

// Write replaces the digest for date. With no sessions nothing is
// written and the returned path is empty.
func (w *Writer) Write(date string, sessions []*session.Session) (string, error) {
	if len(sessions) == 0 {
		return "", nil
	}
	path := w.Path(date)
	if err := fs.WriteFileAtomic(path, []byte(w.Document(date, sessions))); err != nil {
		return "", fmt.Errorf("failed to write digest: %w", err)
	}
	return path, nil
}
