package author

import (
	"time"

	"booklib/internal/pagination"
)

// Author owns zero or more books. An author cannot be deleted while any
// of their books remain in the library.
type Author struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Bio       *string       `json:"bio,omitempty"`
	Country   *string       `json:"country,omitempty"`
	Books     []BookSummary `json:"books,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// BookSummary is the compact book representation embedded in an author
// detail response.
type BookSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
	Year  int    `json:"year"`
}

// CreateInput holds the fields a client supplies when creating an author.
type CreateInput struct {
	Name    string  `json:"name"`
	Bio     *string `json:"bio"`
	Country *string `json:"country"`
}

// UpdateInput holds the fields a client may supply on update. Every
// field is a pointer so "not provided" and "set to empty" stay distinct;
// only non-nil fields are applied.
type UpdateInput struct {
	Name    *string `json:"name"`
	Bio     *string `json:"bio"`
	Country *string `json:"country"`
}

// ListParams carries the raw pagination values for listing authors.
type ListParams struct {
	Page    string
	PerPage string
}

// Page is one page of authors plus pagination metadata.
type Page struct {
	Authors []Author `json:"authors"`
	pagination.Meta
}
