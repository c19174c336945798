package category

import (
	"context"
)

// Repository defines the contract for category storage.
type Repository interface {
	ListAll(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id int64) (Category, error)
	NameTaken(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id int64) error
}
