package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // Register the SQLite driver with database/sql.
)

var sqliteDialect = dialect{
	name: "sqlite",
	schema: []string{
		"PRAGMA journal_mode=WAL",
		`CREATE TABLE IF NOT EXISTS documents (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			data TEXT NOT NULL,
			UNIQUE (collection, id)
		)`,
	},
	selectAll: "SELECT data FROM documents WHERE collection = ? ORDER BY seq",
	selectOne: "SELECT data FROM documents WHERE collection = ? AND id = ?",
	insert:    "INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)",
	update:    "UPDATE documents SET data = ? WHERE collection = ? AND id = ?",
	deleteOne: "DELETE FROM documents WHERE collection = ? AND id = ? RETURNING data",
	deleteAll: "DELETE FROM documents WHERE collection = ?",
}

// SqliteStore stores all collections in a single SQLite database file.
type SqliteStore struct {
	*sqlStore
}

// NewSqliteStore opens (creating if needed) the database at dbPath.
func NewSqliteStore(ctx context.Context, dbPath string) (*SqliteStore, error) {
	if !strings.HasPrefix(dbPath, "file:") && dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s, err := newSQLStore(ctx, db, sqliteDialect)
	if err != nil {
		return nil, err
	}
	return &SqliteStore{s}, nil
}
