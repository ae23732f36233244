// Package document implements the domain repositories on top of a
// docstore.Store.
package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
)

// Collection names.
const (
	Companies        = "companies"
	Employees        = "employees"
	Movements        = "movements"
	Settlements      = "settlements"
	FinancialEntries = "financial_entries"
	OvertimeEntries  = "overtime_entries"
	Absences         = "absences"
	Certificates     = "certificates"
	Leaves           = "leaves"
	Notifications    = "notifications"
)

// collection maps documents of one collection to T. Date fields are
// normalized with docstore.ToDate before decoding so imported timestamps in
// any supported shape load into time.Time.
type collection[T any] struct {
	store      docstore.Store
	name       string
	notFound   error
	dateFields []string
}

func newCollection[T any](store docstore.Store, name string, notFound error, dateFields ...string) collection[T] {
	dateFields = append(dateFields, "created_at", "updated_at")
	return collection[T]{store: store, name: name, notFound: notFound, dateFields: dateFields}
}

func (c collection[T]) mapErr(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return c.notFound
	}
	return err
}

func (c collection[T]) decode(doc docstore.Document) (T, error) {
	var v T
	normalizeDates(doc.Data, c.dateFields)
	if err := docstore.Decode(doc, &v); err != nil {
		return v, err
	}
	return v, nil
}

func (c collection[T]) get(ctx context.Context, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, c.notFound
	}
	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return zero, c.mapErr(err)
	}
	return c.decode(doc)
}

func (c collection[T]) query(ctx context.Context, q docstore.Query) ([]T, error) {
	docs, err := c.store.Query(ctx, c.name, q)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", c.name, err)
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := c.decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// create stores v under a new id with server timestamps and returns the
// stored version.
func (c collection[T]) create(ctx context.Context, v T) (T, error) {
	var zero T
	data, err := docstore.Encode(v)
	if err != nil {
		return zero, err
	}
	data["created_at"] = docstore.ServerTimestamp
	data["updated_at"] = docstore.ServerTimestamp

	id, err := c.store.Add(ctx, c.name, data)
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", c.name, err)
	}
	return c.get(ctx, id)
}

// replace overwrites every field of the document except created_at.
func (c collection[T]) replace(ctx context.Context, id string, v T) error {
	data, err := docstore.Encode(v)
	if err != nil {
		return err
	}
	delete(data, "created_at")
	data["updated_at"] = docstore.ServerTimestamp
	return c.update(ctx, id, data)
}

func (c collection[T]) update(ctx context.Context, id string, patch map[string]any) error {
	if id == "" {
		return c.notFound
	}
	if _, ok := patch["updated_at"]; !ok {
		patch["updated_at"] = docstore.ServerTimestamp
	}
	if err := c.store.Update(ctx, c.name, id, patch); err != nil {
		return c.mapErr(err)
	}
	return nil
}

func (c collection[T]) delete(ctx context.Context, id string) error {
	if id == "" {
		return c.notFound
	}
	if err := c.store.Delete(ctx, c.name, id); err != nil {
		return c.mapErr(err)
	}
	return nil
}

func (c collection[T]) count(ctx context.Context, q docstore.Query) (int, error) {
	docs, err := c.store.Query(ctx, c.name, q)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return len(docs), nil
}

// normalizeDates rewrites each listed (dotted) field to RFC 3339, or null
// when the stored value cannot be read as a date.
func normalizeDates(data map[string]any, fields []string) {
	for _, field := range fields {
		raw, ok := docstore.Lookup(data, field)
		if !ok || raw == nil {
			continue
		}
		var value any
		if t := docstore.ToDate(raw); t != nil {
			value = t.UTC().Format(time.RFC3339Nano)
		}
		setField(data, field, value)
	}
}

func setField(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	m := data
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			return
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

// dateRange adds the inclusive bounds present to q.
func dateRange(q docstore.Query, field string, from, to *time.Time) docstore.Query {
	if from != nil {
		q = q.Where(field, docstore.OpGreaterOrEqual, *from)
	}
	if to != nil {
		q = q.Where(field, docstore.OpLessOrEqual, *to)
	}
	return q
}
