package category

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

func (r *PostgresRepo) ListAll(ctx context.Context) ([]Category, error) {
	const query = `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		ORDER BY name`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, apperr.Storage("failed to fetch categories", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, apperr.Storage("failed to fetch categories", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("failed to fetch categories", err)
	}
	return out, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Category, error) {
	const query = `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var c Category
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if postgres.IsNoRows(err) {
			return Category{}, apperr.NotFound("category", id)
		}
		return Category{}, apperr.Storage("failed to fetch category", err)
	}
	return c, nil
}

func (r *PostgresRepo) NameTaken(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1)`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var taken bool
	if err := r.db.QueryRow(timeoutCtx, query, name).Scan(&taken); err != nil {
		return false, apperr.Storage("failed to check category name", err)
	}
	return taken, nil
}

func (r *PostgresRepo) Create(ctx context.Context, c *Category) error {
	const query = `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, c.Name, c.Description).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		// A concurrent create can slip past the NameTaken pre-check;
		// report it the same way.
		if postgres.IsUniqueViolation(err) {
			return apperr.Duplicate("category", "name", c.Name)
		}
		return apperr.Storage("failed to create category", err)
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	// book_categories rows go away with the category (ON DELETE CASCADE).
	const query = `DELETE FROM categories WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return apperr.Storage("failed to delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("category", id)
	}
	return nil
}

// ExistingIDs returns the subset of ids that exist, used by the book
// service to verify category references before a write.
func (r *PostgresRepo) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `SELECT id FROM categories WHERE id = ANY($1)`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, ids)
	if err != nil {
		return nil, apperr.Storage("failed to check category ids", err)
	}
	defer rows.Close()

	var found []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperr.Storage("failed to check category ids", err)
		}
		found = append(found, id)
	}
	return found, rows.Err()
}
