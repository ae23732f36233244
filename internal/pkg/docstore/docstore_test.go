package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestStore() *MemoryStore {
	return NewMemoryStore(WithClock(func() time.Time { return fixedNow }))
}

func seedAbsences(t *testing.T, ctx context.Context, s *MemoryStore) {
	rows := []map[string]any{
		{"company_id": "c1", "employee_id": "e1", "date": "2026-03-01", "tags": []any{"unjustified"}},
		{"company_id": "c1", "employee_id": "e2", "date": "2026-02-15", "tags": []any{"justified"}},
		{"company_id": "c1", "employee_id": "e1", "date": "2026-01-20", "tags": []any{"unjustified", "late"}},
		{"company_id": "c2", "employee_id": "e9", "date": "2026-03-05"},
	}
	for _, row := range rows {
		_, err := s.Add(ctx, "absences", row)
		require.NoError(t, err)
	}
}

func TestMemoryStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	err := s.Set(ctx, "employees", "e1", map[string]any{
		"name":       "Ana",
		"salary":     3500,
		"admission":  time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		"created_at": ServerTimestamp,
	})
	require.NoError(t, err)

	doc, err := s.Get(ctx, "employees", "e1")
	require.NoError(t, err)
	assert.Equal(t, "e1", doc.ID)
	assert.Equal(t, "Ana", doc.Data["name"])
	assert.Equal(t, float64(3500), doc.Data["salary"])
	assert.Equal(t, "2024-05-02T00:00:00.000000Z", doc.Data["admission"])
	assert.Equal(t, fixedNow.Format(TimeLayout), doc.Data["created_at"])

	// returned data is a copy
	doc.Data["name"] = "changed"
	again, err := s.Get(ctx, "employees", "e1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.Data["name"])
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := newTestStore()
	_, err := s.Get(context.Background(), "employees", "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(context.Background(), "employees", "")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestMemoryStore_Query(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	seedAbsences(t, ctx, s)

	t.Run("equality and date range", func(t *testing.T) {
		docs, err := s.Query(ctx, "absences", NewQuery().
			Where("company_id", OpEqual, "c1").
			Where("date", OpGreaterOrEqual, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)).
			OrderBy("date", Desc))
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "2026-03-01", docs[0].Data["date"])
		assert.Equal(t, "2026-02-15", docs[1].Data["date"])
	})

	t.Run("in", func(t *testing.T) {
		docs, err := s.Query(ctx, "absences", NewQuery().Where("employee_id", OpIn, []string{"e2", "e9"}))
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("array contains", func(t *testing.T) {
		docs, err := s.Query(ctx, "absences", NewQuery().Where("tags", OpArrayContains, "unjustified"))
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("not equal includes missing", func(t *testing.T) {
		docs, err := s.Query(ctx, "absences", NewQuery().Where("employee_id", OpNotEqual, "e1"))
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("limit", func(t *testing.T) {
		docs, err := s.Query(ctx, "absences", NewQuery().OrderBy("date", Asc).Limit(1))
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "2026-01-20", docs[0].Data["date"])
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := s.Query(ctx, "absences", NewQuery().Where("date", OpIn, "2026-01-01"))
		assert.ErrorIs(t, err, ErrInvalidFilter)

		_, err = s.Query(ctx, "absences", NewQuery().Where("date", Op("like"), "x"))
		assert.ErrorIs(t, err, ErrInvalidFilter)
	})
}

func TestMemoryStore_UpdateMutators(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	require.NoError(t, s.Set(ctx, "certificates", "c1", map[string]any{
		"follow_ups": []any{"first"},
		"status":     "active",
	}))

	err := s.Update(ctx, "certificates", "c1", map[string]any{
		"follow_ups":    ArrayUnion("first", "second"),
		"status":        "closed",
		"meta.reviewer": "rh",
		"updated_at":    ServerTimestamp,
	})
	require.NoError(t, err)

	doc, err := s.Get(ctx, "certificates", "c1")
	require.NoError(t, err)
	assert.Equal(t, []any{"first", "second"}, doc.Data["follow_ups"])
	assert.Equal(t, "closed", doc.Data["status"])
	assert.Equal(t, map[string]any{"reviewer": "rh"}, doc.Data["meta"])
	assert.Equal(t, fixedNow.Format(TimeLayout), doc.Data["updated_at"])

	require.NoError(t, s.Update(ctx, "certificates", "c1", map[string]any{
		"follow_ups": ArrayRemove("first"),
	}))
	doc, err = s.Get(ctx, "certificates", "c1")
	require.NoError(t, err)
	assert.Equal(t, []any{"second"}, doc.Data["follow_ups"])

	require.NoError(t, s.Update(ctx, "certificates", "c1", map[string]any{
		"follow_ups": ArrayAppend("second", "second"),
	}))
	doc, err = s.Get(ctx, "certificates", "c1")
	require.NoError(t, err)
	assert.Equal(t, []any{"second", "second", "second"}, doc.Data["follow_ups"])

	err = s.Update(ctx, "certificates", "c1", map[string]any{"id": "other"})
	assert.ErrorIs(t, err, ErrInvalidPatch)

	err = s.Update(ctx, "certificates", "missing", map[string]any{"status": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_RunTransaction(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	require.NoError(t, s.Set(ctx, "employees", "e1", map[string]any{"status": "active"}))

	boom := errors.New("boom")
	err := s.RunTransaction(ctx, func(ctx context.Context) error {
		if err := s.Update(ctx, "employees", "e1", map[string]any{"status": "inactive"}); err != nil {
			return err
		}
		if _, err := s.Add(ctx, "movements", map[string]any{"type": "termination"}); err != nil {
			return err
		}
		// reads inside the transaction see its own writes
		doc, err := s.Get(ctx, "employees", "e1")
		if err != nil {
			return err
		}
		assert.Equal(t, "inactive", doc.Data["status"])
		return boom
	})
	assert.ErrorIs(t, err, boom)

	doc, err := s.Get(ctx, "employees", "e1")
	require.NoError(t, err)
	assert.Equal(t, "active", doc.Data["status"])
	movements, err := s.Query(ctx, "movements", NewQuery())
	require.NoError(t, err)
	assert.Empty(t, movements)

	err = s.RunTransaction(ctx, func(ctx context.Context) error {
		return s.RunTransaction(ctx, func(ctx context.Context) error {
			return s.Update(ctx, "employees", "e1", map[string]any{"status": "inactive"})
		})
	})
	require.NoError(t, err)
	doc, err = s.Get(ctx, "employees", "e1")
	require.NoError(t, err)
	assert.Equal(t, "inactive", doc.Data["status"])
}

func TestBatch_CommitIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	b := NewBatch(s)
	first := b.Add("financial_entries", map[string]any{"value": 100})
	b.Update("settlements", "missing", map[string]any{"status": "paid"})
	assert.Equal(t, 2, b.Len())

	err := b.Commit(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, "financial_entries", first)
	assert.ErrorIs(t, err, ErrNotFound)

	ok := NewBatch(s)
	id := ok.Add("financial_entries", map[string]any{"value": 100})
	ok.Set("settlements", "s1", map[string]any{"status": "draft"})
	require.NoError(t, ok.Commit(ctx))

	_, err = s.Get(ctx, "financial_entries", id)
	assert.NoError(t, err)
	_, err = s.Get(ctx, "settlements", "s1")
	assert.NoError(t, err)
}

func TestToDate(t *testing.T) {
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input any
	}{
		{"time", want},
		{"pointer", &want},
		{"timestamp", Timestamp{Seconds: want.Unix()}},
		{"seconds map", map[string]any{"seconds": float64(want.Unix()), "nanos": float64(0)}},
		{"iso", "2026-03-10T00:00:00Z"},
		{"stored layout", "2026-03-10T00:00:00.000000Z"},
		{"date only", "2026-03-10"},
		{"brazilian", "10/03/2026"},
		{"unix millis", want.UnixMilli()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ToDate(c.input)
			require.NotNil(t, got)
			assert.True(t, want.Equal(*got), "got %v", got)
		})
	}

	for _, bad := range []any{nil, "", "abc", "2026-13-45", time.Time{}, true, 3.5, map[string]any{"x": 1}} {
		assert.Nil(t, ToDate(bad), "%v", bad)
	}
}

func TestEncodeDecode(t *testing.T) {
	type row struct {
		ID     string  `json:"id"`
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
	}

	data, err := Encode(row{ID: "r1", Name: "Ana", Amount: 12.5})
	require.NoError(t, err)
	assert.NotContains(t, data, "id")

	var out row
	require.NoError(t, Decode(Document{ID: "r1", Data: data}, &out))
	assert.Equal(t, row{ID: "r1", Name: "Ana", Amount: 12.5}, out)
}
