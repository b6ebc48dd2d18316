package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store. Documents keep their insertion order so List
// is stable. Values are copied at the top level on the way in and out.
type Memory struct {
	mu    sync.RWMutex
	docs  map[string]map[string]map[string]any
	order map[string][]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		docs:  map[string]map[string]map[string]any{},
		order: map[string][]string{},
	}
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[collection][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Data: Merge(nil, data)}, nil
}

func (m *Memory) List(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Document, 0, len(m.order[collection]))
	for _, id := range m.order[collection] {
		out = append(out, Document{ID: id, Data: Merge(nil, m.docs[collection][id])})
	}
	return out, nil
}

func (m *Memory) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[collection] == nil {
		m.docs[collection] = map[string]map[string]any{}
	}
	m.docs[collection][id] = Merge(nil, fields)
	m.order[collection] = append(m.order[collection], id)
	return id, nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[collection][id]
	if !ok {
		return ErrNotFound
	}
	Merge(data, fields)
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[collection][id]; !ok {
		return nil
	}
	delete(m.docs[collection], id)
	ids := m.order[collection]
	for i, v := range ids {
		if v == id {
			m.order[collection] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) Close() error { return nil }
