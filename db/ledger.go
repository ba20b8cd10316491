package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
)

// queryLedger runs a SELECT and maps each row with scan.
func queryLedger[T any](ctx context.Context, conn *sql.DB, scan func(*sql.Rows) (T, error), query string, args ...any) ([]T, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// RecordDigestRun stores a written digest. ID and CreatedAt are filled
// in when empty.
func (d *DB) RecordDigestRun(ctx context.Context, r *DigestRun) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = NowMs()
	}
	_, err := d.conn.ExecContext(ctx,
		`INSERT INTO digest_runs (id, date, sessions, chat_count, cron_count, messages, tools, output_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Date, r.Sessions, r.ChatCount, r.CronCount, r.Messages,
		strings.Join(r.Tools, ","), r.OutputPath, r.CreatedAt,
	)
	return err
}

// ListDigestRuns returns the runs recorded for date, oldest first.
func (d *DB) ListDigestRuns(ctx context.Context, date string) ([]DigestRun, error) {
	return queryLedger(ctx, d.conn,
		func(rows *sql.Rows) (DigestRun, error) {
			var r DigestRun
			var tools string
			err := rows.Scan(&r.ID, &r.Date, &r.Sessions, &r.ChatCount, &r.CronCount,
				&r.Messages, &tools, &r.OutputPath, &r.CreatedAt)
			if tools != "" {
				r.Tools = strings.Split(tools, ",")
			}
			return r, err
		},
		`SELECT id, date, sessions, chat_count, cron_count, messages, tools, output_path, created_at
		 FROM digest_runs WHERE date = ? ORDER BY created_at, rowid`,
		date,
	)
}

// RecordConsolidation stores one neuron file write.
func (d *DB) RecordConsolidation(ctx context.Context, r *ConsolidationRun) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = NowMs()
	}
	_, err := d.conn.ExecContext(ctx,
		`INSERT INTO consolidation_runs (id, date, category, entries, output_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Date, r.Category, r.Entries, r.OutputPath, r.CreatedAt,
	)
	return err
}

// ListConsolidations returns the consolidation rows for date.
func (d *DB) ListConsolidations(ctx context.Context, date string) ([]ConsolidationRun, error) {
	return queryLedger(ctx, d.conn,
		func(rows *sql.Rows) (ConsolidationRun, error) {
			var r ConsolidationRun
			err := rows.Scan(&r.ID, &r.Date, &r.Category, &r.Entries, &r.OutputPath, &r.CreatedAt)
			return r, err
		},
		`SELECT id, date, category, entries, output_path, created_at
		 FROM consolidation_runs WHERE date = ? ORDER BY created_at, rowid`,
		date,
	)
}

// RecordArchiveEvent stores one archival move or delete.
func (d *DB) RecordArchiveEvent(ctx context.Context, e *ArchiveEvent) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = NowMs()
	}
	_, err := d.conn.ExecContext(ctx,
		`INSERT INTO archive_events (id, action, source, target, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Action, e.Source, e.Target, e.CreatedAt,
	)
	return err
}

// ListArchiveEvents returns every archive event, oldest first.
func (d *DB) ListArchiveEvents(ctx context.Context) ([]ArchiveEvent, error) {
	return queryLedger(ctx, d.conn,
		func(rows *sql.Rows) (ArchiveEvent, error) {
			var e ArchiveEvent
			err := rows.Scan(&e.ID, &e.Action, &e.Source, &e.Target, &e.CreatedAt)
			return e, err
		},
		`SELECT id, action, source, target, created_at
		 FROM archive_events ORDER BY created_at, rowid`,
	)
}
