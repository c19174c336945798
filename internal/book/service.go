package book

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"booklib/internal/apperr"
	"booklib/internal/pagination"
)

// Service provides book business logic: validation, referential checks
// against authors and categories, and ISBN uniqueness.
type Service struct {
	repo       Repository
	authors    AuthorDirectory
	categories CategoryDirectory
}

func NewService(repo Repository, authors AuthorDirectory, categories CategoryDirectory) *Service {
	return &Service{repo: repo, authors: authors, categories: categories}
}

// List returns a page of books matching the optional search and filter
// parameters, newest first. Non-numeric year or author_id values are
// ignored rather than rejected, matching the lenient query-string
// handling of the original endpoints.
func (s *Service) List(ctx context.Context, p ListParams) (Page, error) {
	params, err := pagination.Parse(p.Page, p.PerPage)
	if err != nil {
		return Page{}, err
	}

	q := Query{
		Search:   strings.TrimSpace(p.Search),
		Category: strings.TrimSpace(p.Category),
		Limit:    params.Limit(),
		Offset:   params.Offset(),
	}
	if year, err := strconv.Atoi(p.Year); err == nil {
		q.Year = year
	}
	if authorID, err := strconv.ParseInt(p.AuthorID, 10, 64); err == nil {
		q.AuthorID = authorID
	}

	books, total, err := s.repo.List(ctx, q)
	if err != nil {
		return Page{}, err
	}
	if books == nil {
		books = []Book{}
	}
	return Page{Books: books, Meta: pagination.NewMeta(total, params)}, nil
}

// Get returns a book by id, including its author name and categories.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input, verifies the author and category
// references, checks ISBN uniqueness and persists the book with its
// category links.
func (s *Service) Create(ctx context.Context, in CreateInput) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}

	if err := s.verifyAuthor(ctx, *in.AuthorID); err != nil {
		return Book{}, err
	}
	if err := s.checkISBN(ctx, in.ISBN, 0); err != nil {
		return Book{}, err
	}
	if len(in.CategoryIDs) > 0 {
		if err := s.verifyCategories(ctx, in.CategoryIDs); err != nil {
			return Book{}, err
		}
	}

	b := Book{
		Title:       strings.TrimSpace(in.Title),
		ISBN:        in.ISBN,
		Year:        *in.Year,
		AuthorID:    *in.AuthorID,
		Description: trimOptional(in.Description),
		Pages:       in.Pages,
	}
	if err := s.repo.Create(ctx, &b, in.CategoryIDs); err != nil {
		return Book{}, err
	}
	return s.repo.GetByID(ctx, b.ID)
}

// Update applies only the supplied fields to an existing book. A
// supplied category_ids list replaces the book's links entirely; an
// empty list clears them.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, err
	}

	if in.Title != nil {
		b.Title = strings.TrimSpace(*in.Title)
	}
	if in.ISBN != nil {
		if *in.ISBN != b.ISBN {
			if err := s.checkISBN(ctx, *in.ISBN, b.ID); err != nil {
				return Book{}, err
			}
		}
		b.ISBN = *in.ISBN
	}
	if in.Year != nil {
		b.Year = *in.Year
	}
	if in.Description != nil {
		b.Description = trimOptional(in.Description)
	}
	if in.Pages != nil {
		b.Pages = in.Pages
	}
	if in.AuthorID != nil {
		if err := s.verifyAuthor(ctx, *in.AuthorID); err != nil {
			return Book{}, err
		}
		b.AuthorID = *in.AuthorID
	}
	if in.CategoryIDs != nil && len(*in.CategoryIDs) > 0 {
		if err := s.verifyCategories(ctx, *in.CategoryIDs); err != nil {
			return Book{}, err
		}
	}

	if err := s.repo.Update(ctx, &b, in.CategoryIDs); err != nil {
		return Book{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes a book and its category links, returning the deleted
// book. Books are deleted unconditionally.
func (s *Service) Delete(ctx context.Context, id int64) (Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (s *Service) verifyAuthor(ctx context.Context, id int64) error {
	exists, err := s.authors.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("author", id)
	}
	return nil
}

func (s *Service) checkISBN(ctx context.Context, isbn string, excludeID int64) error {
	taken, err := s.repo.ISBNTaken(ctx, isbn, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Duplicate("book", "isbn", isbn)
	}
	return nil
}

func (s *Service) verifyCategories(ctx context.Context, ids []int64) error {
	found, err := s.categories.ExistingIDs(ctx, ids)
	if err != nil {
		return err
	}

	have := make(map[int64]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return apperr.Referential("category", "category_ids", missing)
	}
	return nil
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
