package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// dialect holds the statements a SQL backend runs against its documents table.
//
// Table layout:
//
//	documents(seq, collection, id, data)  UNIQUE (collection, id)
//
// seq is an auto-incrementing column that gives Find its insertion order.
type dialect struct {
	name      string
	schema    []string
	selectAll string
	selectOne string
	insert    string
	update    string
	deleteOne string
	deleteAll string
}

// sqlStore implements Store on top of database/sql. SqliteStore and
// PostgresStore differ only in the dialect and the driver they open.
type sqlStore struct {
	db      *sql.DB
	dialect dialect
}

func newSQLStore(ctx context.Context, db *sql.DB, d dialect) (*sqlStore, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping: %w", d.name, err)
	}
	for _, stmt := range d.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: apply schema: %w", d.name, err)
		}
	}
	return &sqlStore{db: db, dialect: d}, nil
}

func decodeRow(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

func (s *sqlStore) Find(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.selectAll, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Document{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		doc, err := decodeRow(raw)
		if err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	return result, rows.Err()
}

func (s *sqlStore) FindByID(ctx context.Context, collection, id string) (Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var raw []byte
	err := s.db.QueryRowContext(ctx, s.dialect.selectOne, collection, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeRow(raw)
}

func (s *sqlStore) Insert(ctx context.Context, collection string, docs ...Document) ([]Document, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result := make([]Document, 0, len(docs))
	for _, doc := range docs {
		id := NewID()
		b, err := json.Marshal(prepare(doc, id))
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, s.dialect.insert, collection, id, string(b)); err != nil {
			return nil, err
		}
		stored, err := decodeRow(b)
		if err != nil {
			return nil, err
		}
		result = append(result, stored)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *sqlStore) Replace(ctx context.Context, collection, id string, doc Document) (Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	b, err := json.Marshal(prepare(doc, id))
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx, s.dialect.update, string(b), collection, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return decodeRow(b)
}

func (s *sqlStore) DeleteByID(ctx context.Context, collection, id string) (Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var raw []byte
	err := s.db.QueryRowContext(ctx, s.dialect.deleteOne, collection, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeRow(raw)
}

func (s *sqlStore) DeleteAll(ctx context.Context, collection string) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.dialect.deleteAll, collection)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *sqlStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlStore) Close(context.Context) error {
	return s.db.Close()
}
