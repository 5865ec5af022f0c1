package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type memoryDocumentStore struct {
	mu           sync.RWMutex
	collections  map[string]map[string]Document
	maxBatchSize int
}

// NewMemoryDocumentStore returns a process-local store. It backs tests and
// the DOCUMENT_STORE=memory mode.
func NewMemoryDocumentStore(maxBatchSize int) DocumentStore {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	return &memoryDocumentStore{
		collections:  make(map[string]map[string]Document),
		maxBatchSize: maxBatchSize,
	}
}

func (s *memoryDocumentStore) Get(ctx context.Context, collection, key string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][key]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	doc.Body = append([]byte(nil), doc.Body...)
	return &doc, nil
}

func (s *memoryDocumentStore) GetAll(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]Document, 0, len(s.collections[collection]))
	for _, doc := range s.collections[collection] {
		doc.Body = append([]byte(nil), doc.Body...)
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Position != docs[j].Position {
			return docs[i].Position < docs[j].Position
		}
		return docs[i].Key < docs[j].Key
	})
	return docs, nil
}

func (s *memoryDocumentStore) Set(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(doc)
	return nil
}

func (s *memoryDocumentStore) BatchWrite(ctx context.Context, writes []DocumentWrite) error {
	if len(writes) > s.maxBatchSize {
		return fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(writes), s.maxBatchSize)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range writes {
		if w.Delete {
			delete(s.collections[w.Collection], w.Key)
			continue
		}
		s.put(w.Document)
	}
	return nil
}

func (s *memoryDocumentStore) MaxBatchSize() int {
	return s.maxBatchSize
}

func (s *memoryDocumentStore) put(doc Document) {
	c, ok := s.collections[doc.Collection]
	if !ok {
		c = make(map[string]Document)
		s.collections[doc.Collection] = c
	}
	doc.Body = append([]byte(nil), doc.Body...)
	c[doc.Key] = doc
}
