package book

import (
	"context"
	"fmt"
	"strings"
	"time"

	"booklib/internal/apperr"
	"booklib/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
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

const bookColumns = `b.id, b.title, b.isbn, b.year, b.author_id, a.name,
		b.description, b.pages, b.created_at, b.updated_at`

// List runs the filtered, paginated book query. Filters are AND-combined;
// the ordering ties created_at to id so pages stay stable across books
// created in the same instant.
func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, int, error) {
	where, args := buildFilter(q)

	countSQL := `
		SELECT COUNT(*)
		FROM books b
		JOIN authors a ON a.id = b.author_id` + where

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var total int
	if err := r.db.QueryRow(timeoutCtx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, apperr.Storage("failed to fetch books", err)
	}

	dataSQL := fmt.Sprintf(`
		SELECT %s
		FROM books b
		JOIN authors a ON a.id = b.author_id%s
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $%d OFFSET $%d`, bookColumns, where, len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset)

	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, args...)
	if err != nil {
		return nil, 0, apperr.Storage("failed to fetch books", err)
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, apperr.Storage("failed to fetch books", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Storage("failed to fetch books", err)
	}

	if err := r.attachCategories(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// buildFilter composes the WHERE clause from the active filters, keeping
// placeholder numbering in sync with the args slice.
func buildFilter(q Query) (string, []any) {
	var clauses []string
	var args []any
	argn := 1

	if q.Search != "" {
		clauses = append(clauses,
			fmt.Sprintf("(b.title ILIKE $%d OR a.name ILIKE $%d)", argn, argn))
		args = append(args, "%"+q.Search+"%")
		argn++
	}
	if q.Category != "" {
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM book_categories bc
			JOIN categories c ON c.id = bc.category_id
			WHERE bc.book_id = b.id AND c.name ILIKE $%d)`, argn))
		args = append(args, "%"+q.Category+"%")
		argn++
	}
	if q.Year != 0 {
		clauses = append(clauses, fmt.Sprintf("b.year = $%d", argn))
		args = append(args, q.Year)
		argn++
	}
	if q.AuthorID != 0 {
		clauses = append(clauses, fmt.Sprintf("b.author_id = $%d", argn))
		args = append(args, q.AuthorID)
		argn++
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "\n\t\tWHERE " + strings.Join(clauses, " AND "), args
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE b.id = $1`, bookColumns)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return Book{}, apperr.NotFound("book", id)
		}
		return Book{}, apperr.Storage("failed to fetch book", err)
	}

	books := []Book{b}
	if err := r.attachCategories(ctx, books); err != nil {
		return Book{}, err
	}
	return books[0], nil
}

// ISBNTaken reports whether another book already uses the ISBN. Pass
// excludeID 0 when creating.
func (r *PostgresRepo) ISBNTaken(ctx context.Context, isbn string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1 AND id <> $2)`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var taken bool
	if err := r.db.QueryRow(timeoutCtx, query, isbn, excludeID).Scan(&taken); err != nil {
		return false, apperr.Storage("failed to check isbn", err)
	}
	return taken, nil
}

// Create inserts the book row and its category links in one transaction.
// Constraint violations from lost races are mapped to the same errors
// the service pre-checks produce.
func (r *PostgresRepo) Create(ctx context.Context, b *Book, categoryIDs []int64) error {
	const query = `
		INSERT INTO books (title, isbn, year, author_id, description, pages)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := postgres.WithTx(timeoutCtx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(timeoutCtx, query,
			b.Title, b.ISBN, b.Year, b.AuthorID, b.Description, b.Pages).
			Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return mapBookWriteError(err, b)
		}
		return linkCategories(timeoutCtx, tx, b.ID, categoryIDs)
	})
	if err != nil {
		return wrapStorage("failed to create book", err)
	}
	return nil
}

// Update rewrites the book row and, when categoryIDs is non-nil,
// replaces the category links with the supplied set.
func (r *PostgresRepo) Update(ctx context.Context, b *Book, categoryIDs *[]int64) error {
	const query = `
		UPDATE books
		SET title = $1, isbn = $2, year = $3, author_id = $4,
		    description = $5, pages = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := postgres.WithTx(timeoutCtx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(timeoutCtx, query,
			b.Title, b.ISBN, b.Year, b.AuthorID, b.Description, b.Pages, b.ID).
			Scan(&b.UpdatedAt)
		if err != nil {
			if postgres.IsNoRows(err) {
				return apperr.NotFound("book", b.ID)
			}
			return mapBookWriteError(err, b)
		}
		if categoryIDs == nil {
			return nil
		}
		if _, err := tx.Exec(timeoutCtx, `DELETE FROM book_categories WHERE book_id = $1`, b.ID); err != nil {
			return err
		}
		return linkCategories(timeoutCtx, tx, b.ID, *categoryIDs)
	})
	if err != nil {
		return wrapStorage("failed to update book", err)
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return apperr.Storage("failed to delete book", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("book", id)
	}
	return nil
}

// linkCategories inserts one join row per category id. Ids are inserted
// one at a time so a foreign key violation identifies the category that
// disappeared since the service checked it.
func linkCategories(ctx context.Context, tx pgx.Tx, bookID int64, categoryIDs []int64) error {
	const query = `INSERT INTO book_categories (book_id, category_id) VALUES ($1, $2)`

	for _, cid := range categoryIDs {
		if _, err := tx.Exec(ctx, query, bookID, cid); err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return apperr.Referential("category", "category_ids", []int64{cid})
			}
			return err
		}
	}
	return nil
}

func mapBookWriteError(err error, b *Book) error {
	if postgres.IsUniqueViolation(err) {
		return apperr.Duplicate("book", "isbn", b.ISBN)
	}
	if postgres.IsForeignKeyViolation(err) {
		return apperr.NotFound("author", b.AuthorID)
	}
	return err
}

// wrapStorage wraps raw database errors, leaving already-mapped
// application errors untouched.
func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	if apperr.IsValidation(err) || apperr.IsNotFound(err) || apperr.IsDuplicate(err) {
		return err
	}
	return apperr.Storage(op, err)
}

// attachCategories loads the categories for the given books in a single
// query and fills each book's Categories slice, empty when unlinked.
func (r *PostgresRepo) attachCategories(ctx context.Context, books []Book) error {
	for i := range books {
		books[i].Categories = []CategoryRef{}
	}
	if len(books) == 0 {
		return nil
	}

	ids := make([]int64, len(books))
	index := make(map[int64]int, len(books))
	for i, b := range books {
		ids[i] = b.ID
		index[b.ID] = i
	}

	const query = `
		SELECT bc.book_id, c.id, c.name
		FROM book_categories bc
		JOIN categories c ON c.id = bc.category_id
		WHERE bc.book_id = ANY($1)
		ORDER BY c.name, c.id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, ids)
	if err != nil {
		return apperr.Storage("failed to fetch book categories", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int64
		var ref CategoryRef
		if err := rows.Scan(&bookID, &ref.ID, &ref.Name); err != nil {
			return apperr.Storage("failed to fetch book categories", err)
		}
		if i, ok := index[bookID]; ok {
			books[i].Categories = append(books[i].Categories, ref)
		}
	}
	return rows.Err()
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.ISBN, &b.Year, &b.AuthorID, &b.Author,
		&b.Description, &b.Pages, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}
