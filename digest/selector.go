package digest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/xiaoyuanzhu-com/mybrain/config"
	"github.com/xiaoyuanzhu-com/mybrain/log"
	"github.com/xiaoyuanzhu-com/mybrain/session"
)

// mtimeSlack widens the day window for the modification-time prefilter.
const mtimeSlack = 24 * time.Hour

// Selector finds the sessions that started on a given local date.
type Selector struct {
	Dir      string
	Glob     string
	Location *time.Location
}

// NewSelector builds a selector from cfg.
func NewSelector(cfg *config.Config) *Selector {
	return &Selector{
		Dir:      cfg.SessionsDir,
		Glob:     cfg.SessionsGlob,
		Location: cfg.Location(),
	}
}

// Select returns the kept sessions for date, oldest first. A missing
// directory or an unreadable file is not an error.
func (s *Selector) Select(date string) ([]*session.Session, error) {
	loc := s.location()
	day, err := config.ParseDate(date, loc)
	if err != nil {
		return nil, err
	}
	dayStart := day.UTC()
	dayEnd := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, loc).UTC()

	files, err := s.files()
	if err != nil {
		return nil, err
	}

	var selected []*session.Session
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to stat session file")
			continue
		}
		mtime := info.ModTime().UTC()
		if mtime.Before(dayStart.Add(-mtimeSlack)) || mtime.After(dayEnd.Add(mtimeSlack)) {
			continue
		}

		sess, err := session.ParseFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable session file")
			continue
		}
		if !sess.HasTime() {
			continue
		}
		if sess.StartTime.In(loc).Format(config.DateLayout) != date {
			continue
		}
		if !Keep(sess) {
			continue
		}
		selected = append(selected, sess)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].StartTime.Before(*selected[j].StartTime)
	})

	log.Debug().
		Str("date", date).
		Int("files", len(files)).
		Int("selected", len(selected)).
		Msg("sessions selected")
	return selected, nil
}

// files lists the log files under Dir matching Glob, in lexical order.
func (s *Selector) files() ([]string, error) {
	if info, err := os.Stat(s.Dir); err != nil || !info.IsDir() {
		return nil, nil
	}

	pattern := s.Glob
	if pattern == "" {
		pattern = "*.jsonl"
	}
	var paths []string
	err := doublestar.GlobWalk(os.DirFS(s.Dir), pattern, func(path string, d fs.DirEntry) error {
		if !d.IsDir() {
			paths = append(paths, filepath.Join(s.Dir, filepath.FromSlash(path)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("glob sessions: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *Selector) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
