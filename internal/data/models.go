// internal/data/models.go
package data

import (
	"context"
	"errors"

	"github.com/aoideee/crud-api/internal/store"
)

// Collection names in the document store.
const (
	BooksCollection = "books"
	WinesCollection = "wines"
)

// ErrRecordNotFound is returned by Update when no record has the given id.
var ErrRecordNotFound = errors.New("record not found")

var errNothingInserted = errors.New("store returned no inserted document")

// Models is a top-level container that groups the typed models together.
// It is passed around the application via applicationDependencies so every
// handler reaches the store through it.
type Models struct {
	Books Model[Book]
	Wines Model[Wine]
}

// NewModels constructs a Models value wired up to the given store. Call this
// once during application startup.
func NewModels(s store.Store) Models {
	return Models{
		Books: Model[Book]{store: s, collection: BooksCollection},
		Wines: Model[Wine]{store: s, collection: WinesCollection},
	}
}

// Model reads and writes records of type R in one collection. Every method
// issues exactly one store call, except Update which finds and then saves.
type Model[R any] struct {
	store      store.Store
	collection string
}

func (m Model[R]) decodeAll(docs []store.Document) ([]R, error) {
	recs := make([]R, 0, len(docs))
	for _, doc := range docs {
		rec, err := Decode[R](doc)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (m Model[R]) decodeOne(doc store.Document) (*R, error) {
	if doc == nil {
		return nil, nil
	}
	rec, err := Decode[R](doc)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetAll returns every record in store order.
func (m Model[R]) GetAll(ctx context.Context) ([]R, error) {
	docs, err := m.store.Find(ctx, m.collection)
	if err != nil {
		return nil, err
	}
	return m.decodeAll(docs)
}

// Get returns the record with the given id, or nil if there is none.
func (m Model[R]) Get(ctx context.Context, id string) (*R, error) {
	doc, err := m.store.FindByID(ctx, m.collection, id)
	if err != nil {
		return nil, err
	}
	return m.decodeOne(doc)
}

// Insert persists rec under a new store-assigned id and returns the stored
// record. Any id already set on rec is ignored.
func (m Model[R]) Insert(ctx context.Context, rec R) (*R, error) {
	created, err := m.InsertMany(ctx, []R{rec})
	if err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, errNothingInserted
	}
	return &created[0], nil
}

// InsertMany persists recs in order in a single store call.
func (m Model[R]) InsertMany(ctx context.Context, recs []R) ([]R, error) {
	docs := make([]store.Document, 0, len(recs))
	for _, rec := range recs {
		doc, err := encode(rec)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	created, err := m.store.Insert(ctx, m.collection, docs...)
	if err != nil {
		return nil, err
	}
	return m.decodeAll(created)
}

// Update replaces every field of the record with the given id by the fields
// of rec; fields absent from rec become absent. The lookup and the save are
// separate store calls, so concurrent updates are last-write-wins.
// Returns ErrRecordNotFound if the record does not exist.
func (m Model[R]) Update(ctx context.Context, id string, rec R) (*R, error) {
	existing, err := m.store.FindByID(ctx, m.collection, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrRecordNotFound
	}

	doc, err := encode(rec)
	if err != nil {
		return nil, err
	}
	saved, err := m.store.Replace(ctx, m.collection, id, doc)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return m.decodeOne(saved)
}

// Delete removes the record with the given id and returns it, or nil if
// there was none.
func (m Model[R]) Delete(ctx context.Context, id string) (*R, error) {
	doc, err := m.store.DeleteByID(ctx, m.collection, id)
	if err != nil {
		return nil, err
	}
	return m.decodeOne(doc)
}

// DeleteAll removes every record in the collection.
func (m Model[R]) DeleteAll(ctx context.Context) (int64, error) {
	return m.store.DeleteAll(ctx, m.collection)
}
