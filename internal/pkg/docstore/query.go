package docstore

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

type Op string

const (
	OpEqual          Op = "=="
	OpNotEqual       Op = "!="
	OpLess           Op = "<"
	OpLessOrEqual    Op = "<="
	OpGreater        Op = ">"
	OpGreaterOrEqual Op = ">="
	OpIn             Op = "in"
	OpArrayContains  Op = "array-contains"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

type OrderBy struct {
	Field     string
	Direction Direction
}

// Query is an immutable query description. Builder methods return copies.
type Query struct {
	Filters []Filter
	Sort    []OrderBy
	Max     int
}

func NewQuery() Query {
	return Query{}
}

func (q Query) Where(field string, op Op, value any) Query {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, Filter{Field: field, Op: op, Value: value})
	return q
}

func (q Query) OrderBy(field string, dir Direction) Query {
	sorts := make([]OrderBy, len(q.Sort), len(q.Sort)+1)
	copy(sorts, q.Sort)
	q.Sort = append(sorts, OrderBy{Field: field, Direction: dir})
	return q
}

func (q Query) Limit(n int) Query {
	q.Max = n
	return q
}

// Validate checks operators and value shapes before a query is executed.
func (q Query) Validate() error {
	for _, f := range q.Filters {
		if strings.TrimSpace(f.Field) == "" {
			return fmt.Errorf("%w: empty field", ErrInvalidFilter)
		}
		switch f.Op {
		case OpEqual, OpNotEqual, OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual, OpArrayContains:
		case OpIn:
			if f.Value == nil {
				return fmt.Errorf("%w: %q requires a list value", ErrInvalidFilter, f.Field)
			}
			kind := reflect.TypeOf(f.Value).Kind()
			if kind != reflect.Slice && kind != reflect.Array {
				return fmt.Errorf("%w: %q requires a list value", ErrInvalidFilter, f.Field)
			}
		default:
			return fmt.Errorf("%w: unknown operator %q", ErrInvalidFilter, f.Op)
		}
	}
	for _, o := range q.Sort {
		if o.Direction != Asc && o.Direction != Desc {
			return fmt.Errorf("%w: unknown direction %q", ErrInvalidFilter, o.Direction)
		}
	}
	if q.Max < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidFilter)
	}
	return nil
}

// Lookup resolves a dotted field path inside plain document data.
func Lookup(data map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = data
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Matches reports whether data satisfies every filter of q. Filter values
// must already be plain (see Plain).
func (q Query) Matches(data map[string]any) bool {
	for _, f := range q.Filters {
		if !matchFilter(f, data) {
			return false
		}
	}
	return true
}

func matchFilter(f Filter, data map[string]any) bool {
	v, ok := Lookup(data, f.Field)
	switch f.Op {
	case OpEqual:
		return ok && equalValues(v, f.Value)
	case OpNotEqual:
		return !ok || !equalValues(v, f.Value)
	case OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual:
		if !ok {
			return false
		}
		cmp, comparable := compareValues(v, f.Value)
		if !comparable {
			return false
		}
		switch f.Op {
		case OpLess:
			return cmp < 0
		case OpLessOrEqual:
			return cmp <= 0
		case OpGreater:
			return cmp > 0
		default:
			return cmp >= 0
		}
	case OpIn:
		if !ok {
			return false
		}
		list, _ := f.Value.([]any)
		for _, candidate := range list {
			if equalValues(v, candidate) {
				return true
			}
		}
		return false
	case OpArrayContains:
		arr, isArr := v.([]any)
		if !ok || !isArr {
			return false
		}
		for _, elem := range arr {
			if equalValues(elem, f.Value) {
				return true
			}
		}
		return false
	}
	return false
}

func equalValues(a, b any) bool {
	if cmp, ok := compareValues(a, b); ok {
		return cmp == 0
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders two plain values. Strings that both parse as dates are
// compared chronologically.
func compareValues(a, b any) (int, bool) {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		if at, bt := ToDate(av), ToDate(bv); at != nil && bt != nil {
			return at.Compare(*bt), true
		}
		return strings.Compare(av, bv), true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		if av == bv {
			return 0, true
		}
		if !av {
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

func sortDocuments(docs []Document, orders []OrderBy) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, o := range orders {
			a, aok := Lookup(docs[i].Data, o.Field)
			b, bok := Lookup(docs[j].Data, o.Field)
			if !aok || !bok {
				if aok != bok {
					// missing values sort first ascending
					return (!aok) == (o.Direction == Asc)
				}
				continue
			}
			cmp, ok := compareValues(a, b)
			if !ok || cmp == 0 {
				continue
			}
			if o.Direction == Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return docs[i].ID < docs[j].ID
	})
}
