package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/xiaoyuanzhu-com/mybrain/log"
)

// DB is the run ledger: a small SQLite file recording what each run
// produced or moved.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens (creating if needed) the ledger at path and applies
// pending migrations.
func Open(path string) (*DB, error) {
	if err := ensureDatabaseDirectory(path); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode, foreign keys, and optimized settings
	dsn := path + "?_foreign_keys=1&_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with single writer
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Debug().Str("path", path).Msg("ledger opened")
	return &DB{conn: conn, path: path}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	if d == nil || d.conn == nil {
		return nil
	}
	return d.conn.Close()
}

// Path returns the database file path.
func (d *DB) Path() string { return d.path }

// ensureDatabaseDirectory creates the directory for the database file if it doesn't exist
func ensureDatabaseDirectory(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		log.Info().Str("dir", dir).Msg("created database directory")
	}
	return nil
}
