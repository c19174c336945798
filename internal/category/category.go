package category

import (
	"time"
)

// Category groups books by topic. Names are unique across the library.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateInput holds the fields a client supplies when creating a category.
type CreateInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
