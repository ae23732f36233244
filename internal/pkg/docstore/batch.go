package docstore

import (
	"context"
	"fmt"
)

type batchOp struct {
	kind       string
	collection string
	id         string
	data       map[string]any
}

// Batch groups writes that are committed together in one transaction.
type Batch struct {
	store Store
	ops   []batchOp
}

func NewBatch(store Store) *Batch {
	return &Batch{store: store}
}

func (b *Batch) Set(collection, id string, data map[string]any) *Batch {
	b.ops = append(b.ops, batchOp{kind: "set", collection: collection, id: id, data: data})
	return b
}

// Add queues a create under a fresh id and returns that id.
func (b *Batch) Add(collection string, data map[string]any) string {
	id := NewID()
	b.ops = append(b.ops, batchOp{kind: "set", collection: collection, id: id, data: data})
	return id
}

func (b *Batch) Update(collection, id string, patch map[string]any) *Batch {
	b.ops = append(b.ops, batchOp{kind: "update", collection: collection, id: id, data: patch})
	return b
}

func (b *Batch) Delete(collection, id string) *Batch {
	b.ops = append(b.ops, batchOp{kind: "delete", collection: collection, id: id})
	return b
}

func (b *Batch) Len() int {
	return len(b.ops)
}

// Commit applies all queued writes or none of them.
func (b *Batch) Commit(ctx context.Context) error {
	if len(b.ops) == 0 {
		return nil
	}
	return b.store.RunTransaction(ctx, func(ctx context.Context) error {
		for i, op := range b.ops {
			var err error
			switch op.kind {
			case "set":
				err = b.store.Set(ctx, op.collection, op.id, op.data)
			case "update":
				err = b.store.Update(ctx, op.collection, op.id, op.data)
			case "delete":
				err = b.store.Delete(ctx, op.collection, op.id)
			}
			if err != nil {
				return fmt.Errorf("batch op %d (%s %s/%s): %w", i, op.kind, op.collection, op.id, err)
			}
		}
		return nil
	})
}
