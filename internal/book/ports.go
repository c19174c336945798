package book

import (
	"context"
)

// Repository defines the contract for book storage. Create and Update
// persist the book row and its category links atomically.
type Repository interface {
	List(ctx context.Context, q Query) ([]Book, int, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	ISBNTaken(ctx context.Context, isbn string, excludeID int64) (bool, error)
	Create(ctx context.Context, b *Book, categoryIDs []int64) error
	Update(ctx context.Context, b *Book, categoryIDs *[]int64) error
	Delete(ctx context.Context, id int64) error
}

// AuthorDirectory is the slice of the author store the book service
// needs to verify author references.
type AuthorDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// CategoryDirectory resolves which of the requested category ids exist.
type CategoryDirectory interface {
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
