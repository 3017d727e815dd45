package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps everything in memory. Data is lost on restart.
// Safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

type memoryCollection struct {
	order []string
	docs  map[string]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

// deepCopy returns a deep copy of a document by round-tripping through JSON,
// which also normalises values to the types a decoded JSON body would have.
func deepCopy(src Document) (Document, error) {
	if src == nil {
		return nil, nil
	}
	b, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	var dst Document
	if err := json.Unmarshal(b, &dst); err != nil {
		return nil, err
	}
	return dst, nil
}

func (m *MemoryStore) collection(name string) *memoryCollection {
	c, ok := m.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[string]Document)}
		m.collections[name] = c
	}
	return c
}

func (m *MemoryStore) Find(_ context.Context, collection string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[collection]
	if !ok {
		return []Document{}, nil
	}
	result := make([]Document, 0, len(c.order))
	for _, id := range c.order {
		doc, err := deepCopy(c.docs[id])
		if err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	return result, nil
}

func (m *MemoryStore) FindByID(_ context.Context, collection, id string) (Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[collection]
	if !ok {
		return nil, nil
	}
	return deepCopy(c.docs[id])
}

func (m *MemoryStore) Insert(_ context.Context, collection string, docs ...Document) ([]Document, error) {
	// Copies are made before taking the lock so a failure stores nothing.
	stored := make([]Document, 0, len(docs))
	result := make([]Document, 0, len(docs))
	for _, doc := range docs {
		cp, err := deepCopy(prepare(doc, NewID()))
		if err != nil {
			return nil, err
		}
		out, err := deepCopy(cp)
		if err != nil {
			return nil, err
		}
		stored = append(stored, cp)
		result = append(result, out)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.collection(collection)
	for _, doc := range stored {
		id := doc.ID()
		c.docs[id] = doc
		c.order = append(c.order, id)
	}
	return result, nil
}

func (m *MemoryStore) Replace(_ context.Context, collection, id string, doc Document) (Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	cp, err := deepCopy(prepare(doc, id))
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	if _, exists := c.docs[id]; !exists {
		return nil, ErrNotFound
	}
	c.docs[id] = cp
	return deepCopy(cp)
}

func (m *MemoryStore) DeleteByID(_ context.Context, collection, id string) (Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		return nil, nil
	}
	doc, exists := c.docs[id]
	if !exists {
		return nil, nil
	}
	delete(c.docs, id)
	for i, key := range c.order {
		if key == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return doc, nil
}

func (m *MemoryStore) DeleteAll(_ context.Context, collection string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		return 0, nil
	}
	n := int64(len(c.docs))
	delete(m.collections, collection)
	return n, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close(context.Context) error { return nil }
