package db

import (
	"database/sql"
)

func init() {
	RegisterMigration(Migration{
		Version:     1,
		Description: "Initial schema - digest runs, consolidation runs, archive events",
		Up:          migration001_initial,
	})
}

func migration001_initial(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE digest_runs (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			sessions INTEGER NOT NULL,
			chat_count INTEGER NOT NULL,
			cron_count INTEGER NOT NULL,
			messages INTEGER NOT NULL,
			tools TEXT NOT NULL DEFAULT '',
			output_path TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX idx_digest_runs_date ON digest_runs(date);

		CREATE TABLE consolidation_runs (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			category TEXT NOT NULL,
			entries INTEGER NOT NULL,
			output_path TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX idx_consolidation_runs_date ON consolidation_runs(date);

		CREATE TABLE archive_events (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			source TEXT NOT NULL,
			target TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);
		CREATE INDEX idx_archive_events_created_at ON archive_events(created_at);
	`)
	return err
}
