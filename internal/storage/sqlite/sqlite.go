// Package sqlite provides a SQLite-backed store for running the form
// without a database server, and for the storage tests.
//
// SQLite keeps everything in a single file on disk. Because every store
// operation opens its own connection, the file must be a real path: an
// in-memory database (":memory:") would vanish between operations.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded: we never call anything from it directly.
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/students-form/internal/config"
	"github.com/aanand-mishra/students-form/internal/storage/conn"
	"github.com/aanand-mishra/students-form/internal/storage/sqlstore"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// schema mirrors the MySQL table the form was written for:
//
//	id:     integer primary key, assigned on insert
//	name:   student's full name
//	age:    student's age in years
//	course: the course the student is enrolled in
const schema = `
	CREATE TABLE IF NOT EXISTS Students (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		name   TEXT    NOT NULL,
		age    INTEGER NOT NULL,
		course TEXT    NOT NULL
	)
`

// New opens the SQLite database at cfg.Database.Path, creates the
// Students table if it does not already exist, and returns a ready store.
//
// CREATE TABLE IF NOT EXISTS is idempotent: safe to run on every
// startup. If the table already exists nothing happens.
func New(cfg *config.Config) (*sqlstore.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite.New: create directory: %w", err)
	}

	provider := conn.NewProvider("sqlite3", cfg.Database.Path)
	store := sqlstore.New(provider, sqlstore.SQLite)

	if err := store.Exec(context.Background(), schema); err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return store, nil
}
