package author

import (
	"context"
	"time"

	"booklib/internal/apperr"
	"booklib/internal/platform/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

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

func (r *PostgresRepo) List(ctx context.Context, limit, offset int) ([]Author, int, error) {
	const countSQL = `SELECT COUNT(*) FROM authors`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var total int
	if err := r.db.QueryRow(timeoutCtx, countSQL).Scan(&total); err != nil {
		return nil, 0, apperr.Storage("failed to fetch authors", err)
	}

	const dataSQL = `
		SELECT id, name, bio, country, created_at, updated_at
		FROM authors
		ORDER BY name, id
		LIMIT $1 OFFSET $2`

	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, limit, offset)
	if err != nil {
		return nil, 0, apperr.Storage("failed to fetch authors", err)
	}
	defer rows.Close()

	var out []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio, &a.Country, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, apperr.Storage("failed to fetch authors", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Storage("failed to fetch authors", err)
	}
	return out, total, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Author, error) {
	const query = `
		SELECT id, name, bio, country, created_at, updated_at
		FROM authors
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var a Author
	err := r.db.QueryRow(timeoutCtx, query, id).
		Scan(&a.ID, &a.Name, &a.Bio, &a.Country, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if postgres.IsNoRows(err) {
			return Author{}, apperr.NotFound("author", id)
		}
		return Author{}, apperr.Storage("failed to fetch author", err)
	}

	books, err := r.booksOf(ctx, id)
	if err != nil {
		return Author{}, err
	}
	a.Books = books
	return a, nil
}

func (r *PostgresRepo) booksOf(ctx context.Context, authorID int64) ([]BookSummary, error) {
	const query = `
		SELECT id, title, isbn, year
		FROM books
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, authorID)
	if err != nil {
		return nil, apperr.Storage("failed to fetch author books", err)
	}
	defer rows.Close()

	var out []BookSummary
	for rows.Next() {
		var b BookSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.ISBN, &b.Year); err != nil {
			return nil, apperr.Storage("failed to fetch author books", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Create(ctx context.Context, a *Author) error {
	const query = `
		INSERT INTO authors (name, bio, country)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, a.Name, a.Bio, a.Country).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return apperr.Storage("failed to create author", err)
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, a *Author) error {
	const query = `
		UPDATE authors
		SET name = $1, bio = $2, country = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, a.Name, a.Bio, a.Country, a.ID).Scan(&a.UpdatedAt)
	if err != nil {
		if postgres.IsNoRows(err) {
			return apperr.NotFound("author", a.ID)
		}
		return apperr.Storage("failed to update author", err)
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM authors WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		// The service checks the book count first; a concurrent book
		// create can still trip the restrict constraint here.
		if postgres.IsForeignKeyViolation(err) {
			count, _ := r.BookCount(ctx, id)
			return apperr.Validation("", "Cannot delete author with existing books. Delete %d book(s) first.", count)
		}
		return apperr.Storage("failed to delete author", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("author", id)
	}
	return nil
}

func (r *PostgresRepo) BookCount(ctx context.Context, id int64) (int, error) {
	const query = `SELECT COUNT(*) FROM books WHERE author_id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var count int
	if err := r.db.QueryRow(timeoutCtx, query, id).Scan(&count); err != nil {
		return 0, apperr.Storage("failed to count author books", err)
	}
	return count, nil
}

// Exists reports whether an author row exists, used by the book service
// to verify author references before a write.
func (r *PostgresRepo) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var exists bool
	if err := r.db.QueryRow(timeoutCtx, query, id).Scan(&exists); err != nil {
		return false, apperr.Storage("failed to check author", err)
	}
	return exists, nil
}
