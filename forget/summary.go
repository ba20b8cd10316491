package forget

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xiaoyuanzhu-com/mybrain/config"
	"github.com/xiaoyuanzhu-com/mybrain/fs"
	"github.com/xiaoyuanzhu-com/mybrain/log"
)

const (
	maxDailyHighlights = 10
	maxNeuronEntries   = 15
)

// Summarizer rolls a month of memory, neuron and digest files into one
// summary document.
type Summarizer struct {
	memoryDir  string
	digestDir  string
	monthlyDir string
	neuronsDir string
	folders    []string
}

// NewSummarizer wires a summarizer from cfg.
func NewSummarizer(cfg *config.Config) *Summarizer {
	return &Summarizer{
		memoryDir:  cfg.MemoryDir(),
		digestDir:  cfg.DigestDir(),
		monthlyDir: cfg.MonthlyDir(),
		neuronsDir: cfg.NeuronsDir(),
		folders:    neuronFolders(cfg),
	}
}

// Path returns the summary file for a YYYY-MM month.
func (s *Summarizer) Path(month string) string {
	return filepath.Join(s.monthlyDir, month+".md")
}

// Monthly writes the summary for year/month and returns its path. The
// file is replaced on every run.
func (s *Summarizer) Monthly(year int, month time.Month) (string, error) {
	key := fmt.Sprintf("%04d-%02d", year, int(month))
	doc, err := s.Build(key)
	if err != nil {
		return "", err
	}

	path := s.Path(key)
	if err := fs.WriteFileAtomic(path, []byte(doc)); err != nil {
		return "", fmt.Errorf("failed to write monthly summary: %w", err)
	}
	log.Info().Str("month", key).Str("path", path).Msg("monthly summary written")
	return path, nil
}

// Build renders the summary document for a YYYY-MM month.
func (s *Summarizer) Build(month string) (string, error) {
	lines := []string{"# Monthly Summary: " + month, ""}

	daily, err := s.dailyHighlights(month)
	if err != nil {
		return "", err
	}
	lines = append(lines, daily...)

	neurons, err := s.neuronSummary(month)
	if err != nil {
		return "", err
	}
	lines = append(lines, neurons...)

	chats, err := s.chatHighlights(month)
	if err != nil {
		return "", err
	}
	lines = append(lines, chats...)

	return strings.Join(lines, "\n"), nil
}

func (s *Summarizer) dailyHighlights(month string) ([]string, error) {
	lines := []string{"## 📝 Daily Highlights"}
	days := 0

	err := eachMonthFile(s.memoryDir, month, func(f fs.DateFile, content []string) {
		var keys []string
		for _, l := range content {
			l = strings.TrimSpace(l)
			if strings.HasPrefix(l, "## ") || strings.HasPrefix(l, "- ⭐") || strings.HasPrefix(l, "- **") {
				keys = append(keys, l)
			}
		}
		if len(keys) == 0 {
			return
		}
		if len(keys) > maxDailyHighlights {
			keys = keys[:maxDailyHighlights]
		}
		lines = append(lines, "", "### "+f.Date)
		lines = append(lines, keys...)
		days++
	})
	if err != nil {
		return nil, err
	}

	return append(lines, "", fmt.Sprintf("*%d days*", days)), nil
}

func (s *Summarizer) neuronSummary(month string) ([]string, error) {
	lines := []string{"", "## 🧠 Neuron Summary"}

	for _, folder := range s.folders {
		seen := make(map[string]bool)
		var entries []string
		err := eachMonthFile(filepath.Join(s.neuronsDir, folder), month, func(_ fs.DateFile, content []string) {
			for _, l := range content {
				l = strings.TrimSpace(l)
				if !strings.HasPrefix(l, "- ") && !strings.HasPrefix(l, "## ") {
					continue
				}
				if !seen[l] {
					seen[l] = true
					entries = append(entries, l)
				}
			}
		})
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			continue
		}
		if len(entries) > maxNeuronEntries {
			entries = entries[:maxNeuronEntries]
		}
		lines = append(lines, "", "### "+folder)
		lines = append(lines, entries...)
	}
	return lines, nil
}

func (s *Summarizer) chatHighlights(month string) ([]string, error) {
	lines := []string{"", "## 💬 Chat Highlights"}
	err := eachMonthFile(s.digestDir, month, func(f fs.DateFile, content []string) {
		for _, l := range content {
			if strings.HasPrefix(l, "### ") && strings.Contains(l, "💬") {
				lines = append(lines, fmt.Sprintf("- %s: %s", f.Date, strings.TrimLeft(l, "# ")))
			}
		}
	})
	return lines, err
}

// eachMonthFile calls fn with the lines of every dated .md file in dir
// that belongs to month.
func eachMonthFile(dir, month string, fn func(fs.DateFile, []string)) error {
	files, err := fs.ListDateFiles(dir, ".md")
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}
	for _, f := range files {
		if !strings.HasPrefix(f.Date, month) {
			continue
		}
		content, err := fs.ReadLines(f.Path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.Path, err)
		}
		fn(f, content)
	}
	return nil
}
