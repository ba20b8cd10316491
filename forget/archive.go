package forget

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xiaoyuanzhu-com/mybrain/config"
	"github.com/xiaoyuanzhu-com/mybrain/db"
	"github.com/xiaoyuanzhu-com/mybrain/fs"
	"github.com/xiaoyuanzhu-com/mybrain/log"
)

// Recorder stores a row for every archived or deleted file.
type Recorder interface {
	RecordArchiveEvent(ctx context.Context, e *db.ArchiveEvent) error
}

// Action is one file moved into the archive or deleted.
type Action struct {
	Kind   string // db.ArchiveActionMove or db.ArchiveActionDelete
	Source string
	Target string
}

// Archiver retires dated files older than the retention window.
type Archiver struct {
	memoryDir  string
	digestDir  string
	archiveDir string
	neuronsDir string
	folders    []string
	days       int
	loc        *time.Location
	recorder   Recorder
}

// NewArchiver wires an archiver from cfg. recorder may be nil.
func NewArchiver(cfg *config.Config, recorder Recorder) *Archiver {
	return &Archiver{
		memoryDir:  cfg.MemoryDir(),
		digestDir:  cfg.DigestDir(),
		archiveDir: cfg.ArchiveDir(),
		neuronsDir: cfg.NeuronsDir(),
		folders:    neuronFolders(cfg),
		days:       cfg.ArchiveDays,
		loc:        cfg.Location(),
		recorder:   recorder,
	}
}

// Cutoff is the instant before which a file's date is archived.
func (a *Archiver) Cutoff(now time.Time) time.Time {
	return now.Add(-time.Duration(a.days) * 24 * time.Hour)
}

// Archive moves old memory files and digests into the archive and
// deletes old neuron daily files. A file whose archive target already
// exists is left in place.
func (a *Archiver) Archive(ctx context.Context, now time.Time) ([]Action, error) {
	cutoff := a.Cutoff(now)
	var actions []Action

	moved, err := a.moveOld(ctx, a.memoryDir, "", cutoff)
	actions = append(actions, moved...)
	if err != nil {
		return actions, err
	}

	moved, err = a.moveOld(ctx, a.digestDir, "digest-", cutoff)
	actions = append(actions, moved...)
	if err != nil {
		return actions, err
	}

	for _, folder := range a.folders {
		deleted, err := a.deleteOld(ctx, filepath.Join(a.neuronsDir, folder), cutoff)
		actions = append(actions, deleted...)
		if err != nil {
			return actions, err
		}
	}

	log.Info().
		Time("cutoff", cutoff).
		Int("files", len(actions)).
		Msg("archive pass complete")
	return actions, nil
}

func (a *Archiver) expired(dir string, cutoff time.Time) ([]fs.DateFile, error) {
	files, err := fs.ListDateFiles(dir, ".md")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var old []fs.DateFile
	for _, f := range files {
		if f.Time(a.loc).Before(cutoff) {
			old = append(old, f)
		}
	}
	return old, nil
}

func (a *Archiver) moveOld(ctx context.Context, dir, prefix string, cutoff time.Time) ([]Action, error) {
	files, err := a.expired(dir, cutoff)
	if err != nil {
		return nil, err
	}

	var actions []Action
	for _, f := range files {
		target := filepath.Join(a.archiveDir, prefix+filepath.Base(f.Path))
		if err := fs.MoveFile(f.Path, target); err != nil {
			if errors.Is(err, fs.ErrTargetExists) {
				log.Warn().Str("path", f.Path).Str("target", target).Msg("archive target exists, skipping")
				continue
			}
			return actions, fmt.Errorf("failed to archive %s: %w", f.Path, err)
		}
		act := Action{Kind: db.ArchiveActionMove, Source: f.Path, Target: target}
		actions = append(actions, act)
		a.record(ctx, act)
	}
	return actions, nil
}

func (a *Archiver) deleteOld(ctx context.Context, dir string, cutoff time.Time) ([]Action, error) {
	files, err := a.expired(dir, cutoff)
	if err != nil {
		return nil, err
	}

	var actions []Action
	for _, f := range files {
		if err := os.Remove(f.Path); err != nil {
			return actions, fmt.Errorf("failed to delete %s: %w", f.Path, err)
		}
		act := Action{Kind: db.ArchiveActionDelete, Source: f.Path}
		actions = append(actions, act)
		a.record(ctx, act)
	}
	return actions, nil
}

func (a *Archiver) record(ctx context.Context, act Action) {
	if a.recorder == nil {
		return
	}
	e := &db.ArchiveEvent{Action: act.Kind, Source: act.Source, Target: act.Target}
	if err := a.recorder.RecordArchiveEvent(ctx, e); err != nil {
		log.Warn().Err(err).Str("path", act.Source).Msg("failed to record archive event")
	}
}
