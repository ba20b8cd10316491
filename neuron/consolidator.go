package neuron

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xiaoyuanzhu-com/mybrain/config"
	"github.com/xiaoyuanzhu-com/mybrain/db"
	"github.com/xiaoyuanzhu-com/mybrain/fs"
	"github.com/xiaoyuanzhu-com/mybrain/log"
)

// Recorder stores a row for every neuron file written.
type Recorder interface {
	RecordConsolidation(ctx context.Context, run *db.ConsolidationRun) error
}

// CategoryResult is the outcome for one category folder.
type CategoryResult struct {
	Category string
	Folder   string
	Entries  int
	Path     string
}

// Result is the outcome of consolidating one date.
type Result struct {
	Date       string
	Entries    int
	Categories []CategoryResult
}

// Consolidator files a day's memory entries into neuron folders.
type Consolidator struct {
	memoryDir  string
	neuronsDir string
	classifier *Classifier
	recorder   Recorder
}

// NewConsolidator wires a consolidator from cfg. recorder may be nil.
func NewConsolidator(cfg *config.Config, recorder Recorder) *Consolidator {
	return &Consolidator{
		memoryDir:  cfg.MemoryDir(),
		neuronsDir: cfg.NeuronsDir(),
		classifier: NewClassifier(cfg),
		recorder:   recorder,
	}
}

func header(date string) string {
	return "# " + date + " Memory Consolidation"
}

// Consolidate classifies the entries of <memory>/<date>.md and merges
// them into <neurons>/<folder>/<date>.md. Re-running for the same day
// leaves the files unchanged.
func (c *Consolidator) Consolidate(ctx context.Context, date string) (Result, error) {
	res := Result{Date: date}

	entries, err := ParseDailyMemory(filepath.Join(c.memoryDir, date+".md"))
	if err != nil {
		return res, err
	}
	res.Entries = len(entries)
	if len(entries) == 0 {
		return res, nil
	}

	var order []string
	grouped := make(map[string][]Entry)
	for _, e := range entries {
		cat := c.classifier.Classify(e.Content)
		if _, ok := grouped[cat]; !ok {
			order = append(order, cat)
		}
		grouped[cat] = append(grouped[cat], e)
	}

	for _, cat := range order {
		cr, err := c.writeCategory(date, cat, grouped[cat])
		if err != nil {
			return res, err
		}
		res.Categories = append(res.Categories, cr)
		c.record(ctx, date, cr)
	}

	log.Info().
		Str("date", date).
		Int("entries", res.Entries).
		Int("categories", len(res.Categories)).
		Msg("memories consolidated")
	return res, nil
}

func (c *Consolidator) writeCategory(date, cat string, items []Entry) (CategoryResult, error) {
	folder := c.classifier.Folder(cat)
	path := filepath.Join(c.neuronsDir, folder, date+".md")

	existing, err := fs.ReadLines(path)
	if err != nil {
		return CategoryResult{}, fmt.Errorf("failed to read neuron file: %w", err)
	}

	title := header(date)
	seen := make(map[string]bool)
	var lines []string
	add := func(line string) {
		if !seen[line] {
			seen[line] = true
			lines = append(lines, line)
		}
	}
	for _, line := range existing {
		if strings.TrimSpace(line) == "" || line == title {
			continue
		}
		add(line)
	}
	for _, e := range items {
		add(e.Raw)
	}

	content := title + "\n\n" + strings.Join(lines, "\n")
	if err := fs.WriteFileAtomic(path, []byte(content)); err != nil {
		return CategoryResult{}, fmt.Errorf("failed to write neuron file: %w", err)
	}

	return CategoryResult{Category: cat, Folder: folder, Entries: len(items), Path: path}, nil
}

func (c *Consolidator) record(ctx context.Context, date string, cr CategoryResult) {
	if c.recorder == nil {
		return
	}
	run := &db.ConsolidationRun{
		Date:       date,
		Category:   cr.Category,
		Entries:    cr.Entries,
		OutputPath: cr.Path,
	}
	if err := c.recorder.RecordConsolidation(ctx, run); err != nil {
		log.Warn().Err(err).Str("category", cr.Category).Msg("failed to record consolidation")
	}
}
