package db

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/xiaoyuanzhu-com/mybrain/log"
)

// Migration represents a database migration
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is populated by the migration_*.go files
var migrations []Migration

// RegisterMigration adds a migration to the list
func RegisterMigration(m Migration) {
	migrations = append(migrations, m)
}

// runMigrations executes all pending migrations, each in its own transaction
func runMigrations(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TEXT,
			description TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	var currentVersion int
	row := conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	logger := log.GetLogger("ledger")
	for _, m := range migrations {
		if m.Version <= currentVersion {
			continue
		}

		logger.Info().
			Int("version", m.Version).
			Str("description", m.Description).
			Msg("applying migration")

		if err := applyMigration(conn, m); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}
	}

	return nil
}

func applyMigration(conn *sql.DB, m Migration) error {
	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := m.Up(tx); err != nil {
		return err
	}

	_, err = tx.Exec(
		"INSERT INTO schema_version (version, applied_at, description) VALUES (?, ?, ?)",
		m.Version,
		time.Now().UTC().Format(time.RFC3339),
		m.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}

// CurrentVersion returns the current database schema version
func (d *DB) CurrentVersion() (int, error) {
	var version int
	err := d.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}
