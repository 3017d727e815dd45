// Package store provides the document store that holds the books and wines
// collections, with interchangeable MongoDB, PostgreSQL, SQLite and in-memory
// backends.
package store

//go:generate mockgen -destination=mock/mock_store.go -package=mock_store . Store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDField is the document key that carries the store-assigned identifier.
const IDField = "_id"

var (
	// ErrNotFound is returned by Replace when no document has the given id.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidID is returned when an id is not a 24 digit hex object id.
	ErrInvalidID = errors.New("invalid id")

	// ErrUnsupportedScheme is returned by Open for an unknown connection string.
	ErrUnsupportedScheme = errors.New("unsupported database url scheme")
)

// Document is a single schemaless record. Every document returned by a Store
// carries its identifier under IDField as a string.
type Document map[string]any

// ID returns the document identifier, or "" if it has none.
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// Store is the interface that all backends implement. Collections are created
// on first write. Find returns documents in insertion order.
type Store interface {
	// Find returns every document in a collection.
	Find(ctx context.Context, collection string) ([]Document, error)

	// FindByID returns a single document, or nil if none has the id.
	FindByID(ctx context.Context, collection, id string) (Document, error)

	// Insert stores docs under freshly generated ids and returns the stored
	// copies. Any IDField supplied by the caller is discarded.
	Insert(ctx context.Context, collection string, docs ...Document) ([]Document, error)

	// Replace overwrites the whole document with the given id. Returns
	// ErrNotFound if it does not exist.
	Replace(ctx context.Context, collection, id string, doc Document) (Document, error)

	// DeleteByID removes a document and returns it, or nil if none matched.
	DeleteByID(ctx context.Context, collection, id string) (Document, error)

	// DeleteAll removes every document in a collection and reports how many
	// were removed.
	DeleteAll(ctx context.Context, collection string) (int64, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend's connections.
	Close(ctx context.Context) error
}

// NewID generates a new document identifier.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// checkID rejects ids that no backend could have issued, so a malformed id
// fails the same way on every backend.
func checkID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: cast to ObjectId failed for value %q at path %q", ErrInvalidID, id, IDField)
	}
	return nil
}

// prepare copies doc for storage under id.
func prepare(doc Document, id string) Document {
	out := make(Document, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	out[IDField] = id
	return out
}
