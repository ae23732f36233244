package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/database"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	data       JSONB       NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_data_gin ON documents USING GIN (data jsonb_path_ops);
CREATE INDEX IF NOT EXISTS documents_company_idx ON documents (collection, (data->>'company_id'));
`

const uniqueViolation = "23505"

type documentStore struct {
	db    *database.DB
	clock func() time.Time
}

// NewDocumentStore returns a docstore.Store keeping every collection in one
// JSONB table.
func NewDocumentStore(db *database.DB) docstore.Store {
	return &documentStore{db: db, clock: time.Now}
}

// EnsureSchema creates the documents and notifications tables with their
// indexes.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure documents schema: %w", err)
	}
	if _, err := db.Exec(ctx, notificationSchemaSQL); err != nil {
		return fmt.Errorf("ensure notifications schema: %w", err)
	}
	return nil
}

func (s *documentStore) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, s.db, fn)
}

func (s *documentStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if err := checkRef(collection, id); err != nil {
		return docstore.Document{}, err
	}
	q := GetQuerier(ctx, s.db)

	var data map[string]any
	err := q.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return docstore.Document{}, fmt.Errorf("%s/%s: %w", collection, id, docstore.ErrNotFound)
		}
		return docstore.Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return docstore.Document{ID: id, Data: data}, nil
}

func (s *documentStore) Query(ctx context.Context, collection string, query docstore.Query) ([]docstore.Document, error) {
	if collection == "" {
		return nil, docstore.ErrEmptyCollection
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql, args, err := buildSelect(collection, query)
	if err != nil {
		return nil, err
	}

	q := GetQuerier(ctx, s.db)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var doc docstore.Document
		if err := rows.Scan(&doc.ID, &doc.Data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	return docs, nil
}

func (s *documentStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := docstore.NewID()
	if err := checkRef(collection, id); err != nil {
		return "", err
	}
	body, err := docstore.Prepare(data, s.clock())
	if err != nil {
		return "", err
	}

	q := GetQuerier(ctx, s.db)
	_, err = q.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`,
		collection, id, body,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", fmt.Errorf("%s/%s: %w", collection, id, docstore.ErrAlreadyExists)
		}
		return "", fmt.Errorf("add %s: %w", collection, err)
	}
	return id, nil
}

func (s *documentStore) Set(ctx context.Context, collection, id string, data map[string]any) error {
	if err := checkRef(collection, id); err != nil {
		return err
	}
	body, err := docstore.Prepare(data, s.clock())
	if err != nil {
		return err
	}

	q := GetQuerier(ctx, s.db)
	_, err = q.Exec(ctx, `
		INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		collection, id, body,
	)
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update reads the row under FOR UPDATE so mutators resolve against the
// committed value.
func (s *documentStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	if err := checkRef(collection, id); err != nil {
		return err
	}
	return WithTransaction(ctx, s.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, s.db)

		var current map[string]any
		err := q.QueryRow(ctx,
			`SELECT data FROM documents WHERE collection = $1 AND id = $2 FOR UPDATE`,
			collection, id,
		).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%s/%s: %w", collection, id, docstore.ErrNotFound)
			}
			return fmt.Errorf("lock %s/%s: %w", collection, id, err)
		}

		updated, err := docstore.Resolve(current, patch, s.clock())
		if err != nil {
			return err
		}

		_, err = q.Exec(ctx,
			`UPDATE documents SET data = $3, updated_at = NOW() WHERE collection = $1 AND id = $2`,
			collection, id, updated,
		)
		if err != nil {
			return fmt.Errorf("update %s/%s: %w", collection, id, err)
		}
		return nil
	})
}

func (s *documentStore) Delete(ctx context.Context, collection, id string) error {
	if err := checkRef(collection, id); err != nil {
		return err
	}
	q := GetQuerier(ctx, s.db)
	tag, err := q.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	return nil
}

func checkRef(collection, id string) error {
	if collection == "" {
		return docstore.ErrEmptyCollection
	}
	if id == "" {
		return docstore.ErrEmptyID
	}
	return nil
}

// sqlBuilder accumulates positional arguments.
type sqlBuilder struct {
	args []any
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func fieldPath(field string) []string {
	return strings.Split(field, ".")
}

func buildSelect(collection string, query docstore.Query) (string, []any, error) {
	b := &sqlBuilder{}

	var sb strings.Builder
	sb.WriteString("SELECT id, data FROM documents WHERE collection = ")
	sb.WriteString(b.arg(collection))

	for _, f := range query.Filters {
		cond, err := b.filter(f)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(" AND ")
		sb.WriteString(cond)
	}

	sb.WriteString(" ORDER BY ")
	for _, o := range query.Sort {
		path := b.arg(fieldPath(o.Field))
		if o.Direction == docstore.Desc {
			fmt.Fprintf(&sb, "data #> %s::text[] DESC NULLS LAST, ", path)
		} else {
			fmt.Fprintf(&sb, "data #> %s::text[] ASC NULLS FIRST, ", path)
		}
	}
	sb.WriteString("id ASC")

	if query.Max > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.arg(query.Max))
	}
	return sb.String(), b.args, nil
}

var sqlOps = map[docstore.Op]string{
	docstore.OpLess:           "<",
	docstore.OpLessOrEqual:    "<=",
	docstore.OpGreater:        ">",
	docstore.OpGreaterOrEqual: ">=",
}

func (b *sqlBuilder) filter(f docstore.Filter) (string, error) {
	path := b.arg(fieldPath(f.Field))
	jsonExpr := fmt.Sprintf("(data #> %s::text[])", path)
	textExpr := fmt.Sprintf("(data #>> %s::text[])", path)

	switch f.Op {
	case docstore.OpIn:
		list, err := docstore.Plain(f.Value)
		if err != nil {
			return "", fmt.Errorf("%w: %v", docstore.ErrInvalidFilter, err)
		}
		raw, err := json.Marshal(list)
		if err != nil {
			return "", fmt.Errorf("%w: %v", docstore.ErrInvalidFilter, err)
		}
		return fmt.Sprintf("EXISTS (SELECT 1 FROM jsonb_array_elements(%s::jsonb) AS e WHERE e = %s)",
			b.arg(raw), jsonExpr), nil

	case docstore.OpArrayContains:
		value, err := docstore.Plain(f.Value)
		if err != nil {
			return "", fmt.Errorf("%w: %v", docstore.ErrInvalidFilter, err)
		}
		raw, err := json.Marshal([]any{value})
		if err != nil {
			return "", fmt.Errorf("%w: %v", docstore.ErrInvalidFilter, err)
		}
		return fmt.Sprintf("(jsonb_typeof(%s) = 'array' AND %s @> %s::jsonb)",
			jsonExpr, jsonExpr, b.arg(raw)), nil
	}

	value, err := docstore.Plain(f.Value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", docstore.ErrInvalidFilter, err)
	}

	var (
		op   = sqlOps[f.Op]
		cond string
	)
	if f.Op == docstore.OpEqual || f.Op == docstore.OpNotEqual {
		op = "="
	}

	switch v := value.(type) {
	case nil:
		if op != "=" {
			return "", fmt.Errorf("%w: %q cannot be ordered against null", docstore.ErrInvalidFilter, f.Field)
		}
		cond = fmt.Sprintf("(%s IS NULL OR %s = 'null'::jsonb)", jsonExpr, jsonExpr)
	case float64:
		cond = fmt.Sprintf("(CASE WHEN jsonb_typeof(%s) = 'number' THEN %s::numeric %s %s::numeric ELSE false END)",
			jsonExpr, textExpr, op, b.arg(v))
	case bool:
		cond = fmt.Sprintf("(CASE WHEN jsonb_typeof(%s) = 'boolean' THEN %s::boolean %s %s::boolean ELSE false END)",
			jsonExpr, textExpr, op, b.arg(v))
	case string:
		if docstore.ToDate(v) != nil {
			t := docstore.ToDate(v)
			cond = fmt.Sprintf("(CASE WHEN jsonb_typeof(%s) = 'string' THEN %s::timestamptz %s %s::timestamptz ELSE false END)",
				jsonExpr, textExpr, op, b.arg(*t))
		} else {
			cond = fmt.Sprintf("(%s COLLATE \"C\" %s %s)", textExpr, op, b.arg(v))
		}
	default:
		if op != "=" {
			return "", fmt.Errorf("%w: %q is not orderable", docstore.ErrInvalidFilter, f.Field)
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("%w: %v", docstore.ErrInvalidFilter, err)
		}
		cond = fmt.Sprintf("(%s = %s::jsonb)", jsonExpr, b.arg(raw))
	}

	if f.Op == docstore.OpNotEqual {
		return fmt.Sprintf("NOT COALESCE(%s, false)", cond), nil
	}
	return cond, nil
}
