package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sqlx.DB
}

type Config struct {
	Path string
}

// NewDB opens (creating if necessary) the database file and applies the
// schema. Schema creation is idempotent and never truncates existing data,
// so calling this on every startup is safe.
func NewDB(cfg Config) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlx.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := createSchema(db.DB); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{DB: db}, nil
}

// AUTOINCREMENT keeps ids monotonic: an id freed by a delete is never handed
// out again.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		priority TEXT NOT NULL,
		topic TEXT,
		text TEXT,
		desc TEXT,
		date_added TEXT NOT NULL,
		due TEXT,
		status TEXT NOT NULL,
		owner TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS subtasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id INTEGER NOT NULL,
		text TEXT NOT NULL,
		status TEXT NOT NULL,
		FOREIGN KEY (task_id) REFERENCES tasks(id)
	);

	CREATE TABLE IF NOT EXISTS model (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		apikey TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_subtasks_task_id ON subtasks(task_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
