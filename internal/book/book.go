package book

import (
	"time"

	"booklib/internal/pagination"
)

// Book is the central catalog record. Every book belongs to exactly one
// author and may be linked to any number of categories.
type Book struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	ISBN        string        `json:"isbn"`
	Year        int           `json:"year"`
	AuthorID    int64         `json:"author_id"`
	Author      string        `json:"author"`
	Description *string       `json:"description,omitempty"`
	Pages       *int          `json:"pages,omitempty"`
	Categories  []CategoryRef `json:"categories"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// CategoryRef is the compact category representation embedded in a book.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateInput holds the fields a client supplies when creating a book.
// Year and AuthorID are pointers so a missing field can be told apart
// from a zero value.
type CreateInput struct {
	Title       string  `json:"title"`
	ISBN        string  `json:"isbn"`
	Year        *int    `json:"year"`
	AuthorID    *int64  `json:"author_id"`
	Description *string `json:"description"`
	Pages       *int    `json:"pages"`
	CategoryIDs []int64 `json:"category_ids"`
}

// UpdateInput holds the fields a client may supply on update. Only
// non-nil fields are applied. A non-nil empty CategoryIDs slice clears
// the book's category links.
type UpdateInput struct {
	Title       *string  `json:"title"`
	ISBN        *string  `json:"isbn"`
	Year        *int     `json:"year"`
	AuthorID    *int64   `json:"author_id"`
	Description *string  `json:"description"`
	Pages       *int     `json:"pages"`
	CategoryIDs *[]int64 `json:"category_ids"`
}

// ListParams carries the raw query-string values for listing books.
type ListParams struct {
	Page     string
	PerPage  string
	Search   string
	Category string
	Year     string
	AuthorID string
}

// Query is the validated filter set handed to the repository.
type Query struct {
	Search   string
	Category string
	Year     int
	AuthorID int64
	Limit    int
	Offset   int
}

// Page is one page of books plus pagination metadata.
type Page struct {
	Books []Book `json:"books"`
	pagination.Meta
}
