package digest

import (
	"context"

	"github.com/xiaoyuanzhu-com/mybrain/config"
	"github.com/xiaoyuanzhu-com/mybrain/db"
	"github.com/xiaoyuanzhu-com/mybrain/log"
)

// Recorder stores a row for every digest written.
type Recorder interface {
	RecordDigestRun(ctx context.Context, run *db.DigestRun) error
}

// Result describes one pipeline run.
type Result struct {
	Date    string
	Path    string
	Written bool
	Stats   Stats
}

// Pipeline selects, renders and writes the digest for one date.
type Pipeline struct {
	selector *Selector
	writer   *Writer
	recorder Recorder
}

// NewPipeline wires a pipeline from cfg. recorder may be nil.
func NewPipeline(cfg *config.Config, recorder Recorder) *Pipeline {
	return &Pipeline{
		selector: NewSelector(cfg),
		writer: &Writer{
			Dir:      cfg.DigestDir(),
			Renderer: Renderer{Location: cfg.Location()},
		},
		recorder: recorder,
	}
}

// Run digests date. Input problems are absorbed; only an invalid date
// or a failed write is returned as an error.
func (p *Pipeline) Run(ctx context.Context, date string) (Result, error) {
	res := Result{Date: date}

	sessions, err := p.selector.Select(date)
	if err != nil {
		return res, err
	}
	res.Stats = ComputeStats(sessions)
	if len(sessions) == 0 {
		return res, nil
	}

	path, err := p.writer.Write(date, sessions)
	if err != nil {
		return res, err
	}
	res.Path = path
	res.Written = true

	log.Info().
		Str("date", date).
		Int("sessions", res.Stats.Sessions).
		Str("path", path).
		Msg("digest written")

	p.record(ctx, res)
	return res, nil
}

func (p *Pipeline) record(ctx context.Context, res Result) {
	if p.recorder == nil {
		return
	}
	run := &db.DigestRun{
		Date:       res.Date,
		Sessions:   res.Stats.Sessions,
		ChatCount:  res.Stats.Chat,
		CronCount:  res.Stats.Cron,
		Messages:   res.Stats.Messages,
		Tools:      res.Stats.Tools,
		OutputPath: res.Path,
	}
	if err := p.recorder.RecordDigestRun(ctx, run); err != nil {
		log.Warn().Err(err).Str("date", res.Date).Msg("failed to record digest run")
	}
}
