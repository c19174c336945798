package author

import (
	"context"
)

// Repository defines the contract for author storage.
type Repository interface {
	List(ctx context.Context, limit, offset int) ([]Author, int, error)
	GetByID(ctx context.Context, id int64) (Author, error)
	Create(ctx context.Context, a *Author) error
	Update(ctx context.Context, a *Author) error
	Delete(ctx context.Context, id int64) error
	BookCount(ctx context.Context, id int64) (int, error)
}
