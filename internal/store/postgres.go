package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
)

var postgresDialect = dialect{
	name: "postgres",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS documents (
			seq BIGSERIAL PRIMARY KEY,
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			data JSONB NOT NULL,
			UNIQUE (collection, id)
		)`,
	},
	selectAll: "SELECT data FROM documents WHERE collection = $1 ORDER BY seq",
	selectOne: "SELECT data FROM documents WHERE collection = $1 AND id = $2",
	insert:    "INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)",
	update:    "UPDATE documents SET data = $1::jsonb WHERE collection = $2 AND id = $3",
	deleteOne: "DELETE FROM documents WHERE collection = $1 AND id = $2 RETURNING data",
	deleteAll: "DELETE FROM documents WHERE collection = $1",
}

// PostgresStore keeps every collection in one JSONB documents table.
type PostgresStore struct {
	*sqlStore
}

// NewPostgresStore opens a connection pool using dsn and makes sure the
// documents table exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	// sql.Open only validates the DSN format; it does not actually connect yet.
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(15 * time.Minute)

	s, err := newSQLStore(ctx, db, postgresDialect)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{s}, nil
}
