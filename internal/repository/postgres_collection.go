package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Documents of every collection share one JSONB table; see persistence/migrations.
type postgresCollection[T any, PT EntityPtr[T]] struct {
	db   *sql.DB
	name string
}

// NewPostgresCollection returns a Collection stored as JSONB rows in PostgreSQL.
func NewPostgresCollection[T any, PT EntityPtr[T]](db *sql.DB, name string) Collection[T] {
	return &postgresCollection[T, PT]{db: db, name: name}
}

func (r *postgresCollection[T, PT]) Insert(ctx context.Context, doc *T) error {
	meta := PT(doc).EntityMeta()
	stampNew(PT(doc), utcNow())
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.name, err)
	}

	const query = `
        INSERT INTO documents (collection, id, created_at, updated_at, body)
        VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, r.name, meta.ID, meta.CreatedAt, meta.UpdatedAt, body); err != nil {
		return fmt.Errorf("insert into %s: %w", r.name, err)
	}
	return nil
}

func (r *postgresCollection[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	const query = `SELECT body FROM documents WHERE collection = $1 AND id = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, r.name, id))
}

func (r *postgresCollection[T, PT]) FindFirst(ctx context.Context) (*T, error) {
	const query = `SELECT body FROM documents WHERE collection = $1 ORDER BY created_at ASC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, r.name))
}

func (r *postgresCollection[T, PT]) List(ctx context.Context, q PageQuery) ([]T, error) {
	query := `SELECT body FROM documents WHERE collection = $1 ORDER BY created_at DESC, id DESC`
	args := []any{r.name}
	if q.Limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, q.Limit, q.Skip)
	} else if q.Skip > 0 {
		query += ` OFFSET $2`
		args = append(args, q.Skip)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.name, err)
		}
		var doc T
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.name, err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", r.name, err)
	}
	return out, nil
}

func (r *postgresCollection[T, PT]) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM documents WHERE collection = $1`
	var n int64
	if err := r.db.QueryRowContext(ctx, query, r.name).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.name, err)
	}
	return n, nil
}

func (r *postgresCollection[T, PT]) Replace(ctx context.Context, doc *T) error {
	meta := PT(doc).EntityMeta()
	stampUpdate(PT(doc), utcNow())
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.name, err)
	}

	const query = `
        UPDATE documents SET updated_at = $3, body = $4
        WHERE collection = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query, r.name, meta.ID, meta.UpdatedAt, body)
	if err != nil {
		return fmt.Errorf("replace in %s: %w", r.name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("replace in %s: %w", r.name, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresCollection[T, PT]) Delete(ctx context.Context, id string) (*T, error) {
	const query = `DELETE FROM documents WHERE collection = $1 AND id = $2 RETURNING body`
	return r.scanOne(r.db.QueryRowContext(ctx, query, r.name, id))
}

func (r *postgresCollection[T, PT]) scanOne(row *sql.Row) (*T, error) {
	var body []byte
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query %s: %w", r.name, err)
	}
	var doc T
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.name, err)
	}
	return &doc, nil
}
