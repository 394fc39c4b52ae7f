package memstore

import (
	"context"
	"sync"

	"taskflow/internal/docstore"
)

// Store keeps collections in process memory. Insertion order is
// preserved per collection so LoadAll is stable across calls.
type Store struct {
	mtx         sync.RWMutex
	collections map[string]map[string][]byte
	order       map[string][]string
}

func New() *Store {
	return &Store{
		collections: make(map[string]map[string][]byte),
		order:       make(map[string][]string),
	}
}

func (s *Store) LoadAll(ctx context.Context, collection string) ([]docstore.Document, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	docs := make([]docstore.Document, 0, len(s.collections[collection]))
	for _, id := range s.order[collection] {
		data, ok := s.collections[collection][id]
		if !ok {
			continue
		}
		docs = append(docs, docstore.Document{ID: id, Data: append([]byte(nil), data...)})
	}
	return docs, nil
}

func (s *Store) Put(ctx context.Context, collection, id string, data []byte) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string][]byte)
	}
	if _, exists := s.collections[collection][id]; !exists {
		s.order[collection] = append(s.order[collection], id)
	}
	s.collections[collection][id] = append([]byte(nil), data...)
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.collections[collection], id)
	for i, existing := range s.order[collection] {
		if existing == id {
			s.order[collection] = append(s.order[collection][:i], s.order[collection][i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Close() {}
