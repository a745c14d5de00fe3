package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo stores each book as a JSONB document keyed by id.
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func listSQL(q Query) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.MinRating != nil {
		clauses = append(clauses, fmt.Sprintf("(doc->>'average_rating')::float8 >= $%d", argn))
		args = append(args, *q.MinRating)
		argn++
	}

	if q.NumPages != nil {
		clauses = append(clauses, fmt.Sprintf("(doc->>'num_pages')::int = $%d", argn))
		args = append(args, *q.NumPages)
		argn++
	}

	if q.Title != nil {
		clauses = append(clauses, fmt.Sprintf(`doc->>'title' ILIKE $%d ESCAPE '\'`, argn))
		args = append(args, "%"+likeEscaper.Replace(*q.Title)+"%")
		argn++
	}

	sql := "SELECT doc FROM books WHERE " + strings.Join(clauses, " AND ") + " ORDER BY created_at, id"

	if q.Limit != nil && *q.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT $%d", argn)
		args = append(args, *q.Limit)
		argn++
	}
	if q.Skip != nil {
		sql += fmt.Sprintf(" OFFSET $%d", argn)
		args = append(args, *q.Skip)
	}
	return sql, args
}

func (r *PostgresRepo) Create(ctx context.Context, b Book) (Book, error) {
	const sql = `INSERT INTO books (id, doc, created_at) VALUES ($1, $2::jsonb, NOW())`

	doc, err := json.Marshal(b)
	if err != nil {
		return Book{}, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(ctx, sql, b.ID, doc); err != nil {
		return Book{}, fmt.Errorf("insert book %s: %w", b.ID, err)
	}
	return b, nil
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, error) {
	sql, args := listSQL(q)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	const sql = `SELECT doc FROM books WHERE id = $1`
	return r.queryOne(ctx, "find book "+id, sql, id)
}

func (r *PostgresRepo) Update(ctx context.Context, id string, u Update) (Book, error) {
	const sql = `UPDATE books SET doc = doc || $2::jsonb WHERE id = $1 RETURNING doc`

	patch, err := json.Marshal(u.Fields())
	if err != nil {
		return Book{}, err
	}
	return r.queryOne(ctx, "update book "+id, sql, id, patch)
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) (Book, error) {
	const sql = `DELETE FROM books WHERE id = $1 RETURNING doc`
	return r.queryOne(ctx, "delete book "+id, sql, id)
}

func (r *PostgresRepo) queryOne(ctx context.Context, op, sql string, args ...any) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}
