package author

import (
	"context"
	"strings"

	"booklib/internal/apperr"
	"booklib/internal/pagination"
)

// Service provides author business logic. Deletion is guarded: an author
// who still owns books cannot be removed.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns a page of authors ordered by name.
func (s *Service) List(ctx context.Context, p ListParams) (Page, error) {
	params, err := pagination.Parse(p.Page, p.PerPage)
	if err != nil {
		return Page{}, err
	}

	authors, total, err := s.repo.List(ctx, params.Limit(), params.Offset())
	if err != nil {
		return Page{}, err
	}
	if authors == nil {
		authors = []Author{}
	}
	return Page{Authors: authors, Meta: pagination.NewMeta(total, params)}, nil
}

// Get returns an author by id, including their books.
func (s *Service) Get(ctx context.Context, id int64) (Author, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input and persists a new author. Author names are
// not unique; two authors may share a name.
func (s *Service) Create(ctx context.Context, in CreateInput) (Author, error) {
	if err := in.Validate(); err != nil {
		return Author{}, err
	}

	a := Author{
		Name:    strings.TrimSpace(in.Name),
		Bio:     trimOptional(in.Bio),
		Country: trimOptional(in.Country),
	}
	if err := s.repo.Create(ctx, &a); err != nil {
		return Author{}, err
	}
	return a, nil
}

// Update applies only the supplied fields to an existing author.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Author, error) {
	if err := in.Validate(); err != nil {
		return Author{}, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Author{}, err
	}

	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Bio != nil {
		a.Bio = trimOptional(in.Bio)
	}
	if in.Country != nil {
		a.Country = trimOptional(in.Country)
	}

	if err := s.repo.Update(ctx, &a); err != nil {
		return Author{}, err
	}
	return a, nil
}

// Delete removes an author, failing while they still own books.
func (s *Service) Delete(ctx context.Context, id int64) (Author, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Author{}, err
	}

	count, err := s.repo.BookCount(ctx, id)
	if err != nil {
		return Author{}, err
	}
	if count > 0 {
		return Author{}, apperr.Validation("",
			"Cannot delete author with existing books. Delete %d book(s) first.", count)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return Author{}, err
	}
	return a, nil
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
