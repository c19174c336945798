package category

import (
	"context"
	"strings"

	"booklib/internal/apperr"
)

// Service provides category business logic: validation and the
// duplicate-name check run before any write reaches the repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all categories ordered by name.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

// Get returns a category by id.
func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input, rejects names already in use (exact match
// on the trimmed name), and persists the new category.
func (s *Service) Create(ctx context.Context, in CreateInput) (Category, error) {
	if err := in.Validate(); err != nil {
		return Category{}, err
	}

	name := strings.TrimSpace(in.Name)
	taken, err := s.repo.NameTaken(ctx, name)
	if err != nil {
		return Category{}, err
	}
	if taken {
		return Category{}, apperr.Duplicate("category", "name", in.Name)
	}

	c := Category{
		Name:        name,
		Description: trimOptional(in.Description),
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return Category{}, err
	}
	return c, nil
}

// Delete removes a category unconditionally; its book associations are
// removed as part of the same deletion.
func (s *Service) Delete(ctx context.Context, id int64) (Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return Category{}, err
	}
	return c, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
