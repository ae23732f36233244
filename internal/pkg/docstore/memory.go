package docstore

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"
)

type collections map[string]map[string]map[string]any

type memoryTxKey struct{}

type memoryTx struct {
	owner *MemoryStore
	data  collections
}

// MemoryStore is an in-process Store. Transactions run serialized against a
// private copy that replaces the live data on success.
type MemoryStore struct {
	mu    sync.RWMutex
	data  collections
	clock func() time.Time
}

type MemoryOption func(*MemoryStore)

// WithClock overrides the clock used for ServerTimestamp.
func WithClock(clock func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.clock = clock
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		data:  collections{},
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) txFrom(ctx context.Context) *memoryTx {
	tx, ok := ctx.Value(memoryTxKey{}).(*memoryTx)
	if !ok || tx.owner != s {
		return nil
	}
	return tx
}

func (s *MemoryStore) read(ctx context.Context, fn func(db collections) error) error {
	if tx := s.txFrom(ctx); tx != nil {
		return fn(tx.data)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

func (s *MemoryStore) write(ctx context.Context, fn func(db collections) error) error {
	if tx := s.txFrom(ctx); tx != nil {
		return fn(tx.data)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := checkRef(collection, id); err != nil {
		return Document{}, err
	}
	var doc Document
	err := s.read(ctx, func(db collections) error {
		data, ok := db[collection][id]
		if !ok {
			return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
		}
		doc = Document{ID: id, Data: copyData(data)}
		return nil
	})
	return doc, err
}

func (s *MemoryStore) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	if collection == "" {
		return nil, ErrEmptyCollection
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	plainQuery, err := plainFilters(q)
	if err != nil {
		return nil, err
	}

	var docs []Document
	err = s.read(ctx, func(db collections) error {
		for id, data := range db[collection] {
			if plainQuery.Matches(data) {
				docs = append(docs, Document{ID: id, Data: copyData(data)})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortDocuments(docs, q.Sort)
	if q.Max > 0 && len(docs) > q.Max {
		docs = docs[:q.Max]
	}
	return docs, nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := NewID()
	if err := s.create(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MemoryStore) create(ctx context.Context, collection, id string, data map[string]any) error {
	if err := checkRef(collection, id); err != nil {
		return err
	}
	body, err := Prepare(data, s.clock())
	if err != nil {
		return err
	}
	return s.write(ctx, func(db collections) error {
		if _, exists := db[collection][id]; exists {
			return fmt.Errorf("%s/%s: %w", collection, id, ErrAlreadyExists)
		}
		if db[collection] == nil {
			db[collection] = map[string]map[string]any{}
		}
		db[collection][id] = body
		return nil
	})
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, data map[string]any) error {
	if err := checkRef(collection, id); err != nil {
		return err
	}
	body, err := Prepare(data, s.clock())
	if err != nil {
		return err
	}
	return s.write(ctx, func(db collections) error {
		if db[collection] == nil {
			db[collection] = map[string]map[string]any{}
		}
		db[collection][id] = body
		return nil
	})
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	if err := checkRef(collection, id); err != nil {
		return err
	}
	return s.write(ctx, func(db collections) error {
		current, ok := db[collection][id]
		if !ok {
			return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
		}
		updated, err := Resolve(current, patch, s.clock())
		if err != nil {
			return err
		}
		db[collection][id] = updated
		return nil
	})
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	if err := checkRef(collection, id); err != nil {
		return err
	}
	return s.write(ctx, func(db collections) error {
		if _, ok := db[collection][id]; !ok {
			return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
		}
		delete(db[collection], id)
		return nil
	})
}

// RunTransaction holds the store lock for the whole of fn. Nested calls join
// the outer transaction. fn must not hand its ctx to other goroutines.
func (s *MemoryStore) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txFrom(ctx) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{owner: s, data: cloneCollections(s.data)}
	if err := fn(context.WithValue(ctx, memoryTxKey{}, tx)); err != nil {
		return err
	}
	s.data = tx.data
	return nil
}

func cloneCollections(src collections) collections {
	out := make(collections, len(src))
	for name, docs := range src {
		copied := make(map[string]map[string]any, len(docs))
		for id, data := range docs {
			copied[id] = copyData(data)
		}
		out[name] = copied
	}
	return out
}

func plainFilters(q Query) (Query, error) {
	out := q
	out.Filters = make([]Filter, len(q.Filters))
	for i, f := range q.Filters {
		var (
			value any
			err   error
		)
		if f.Op == OpIn {
			value, err = plainList(f.Value)
		} else {
			value, err = Plain(f.Value)
		}
		if err != nil {
			return Query{}, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
		out.Filters[i] = Filter{Field: f.Field, Op: f.Op, Value: value}
	}
	return out, nil
}

func plainList(v any) ([]any, error) {
	rv := reflect.ValueOf(v)
	list := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		pv, err := Plain(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		list = append(list, pv)
	}
	return list, nil
}

func checkRef(collection, id string) error {
	if collection == "" {
		return ErrEmptyCollection
	}
	if id == "" {
		return ErrEmptyID
	}
	return nil
}
