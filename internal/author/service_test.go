package author

import (
	"context"
	"testing"

	"booklib/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]Author, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]Author), args.Int(1), args.Error(2)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (Author, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Author), args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, a *Author) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockRepo) Update(ctx context.Context, a *Author) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepo) BookCount(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("trims fields before persisting", func(t *testing.T) {
		repo := new(mockRepo)
		s := NewService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(a *Author) bool {
			return a.Name == "George Orwell" && a.Bio != nil && *a.Bio == "Novelist"
		})).Return(nil)

		bio := "  Novelist  "
		a, err := s.Create(ctx, CreateInput{Name: "  George Orwell  ", Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, "George Orwell", a.Name)
		repo.AssertExpectations(t)
	})

	t.Run("whitespace-only optional fields become null", func(t *testing.T) {
		repo := new(mockRepo)
		s := NewService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(a *Author) bool {
			return a.Bio == nil && a.Country == nil
		})).Return(nil)

		blank := "   "
		_, err := s.Create(ctx, CreateInput{Name: "George Orwell", Bio: &blank, Country: &blank})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("invalid input never reaches the repository", func(t *testing.T) {
		repo := new(mockRepo)
		s := NewService(repo)

		_, err := s.Create(ctx, CreateInput{Name: "12345"})
		require.Error(t, err)
		assert.Equal(t, "Author name cannot contain only numbers", err.Error())
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	existing := Author{ID: 2, Name: "G. Orwell"}

	t.Run("applies only supplied fields", func(t *testing.T) {
		repo := new(mockRepo)
		s := NewService(repo)

		repo.On("GetByID", ctx, int64(2)).Return(existing, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(a *Author) bool {
			return a.Name == "George Orwell" && a.Country == nil
		})).Return(nil)

		name := "George Orwell"
		a, err := s.Update(ctx, 2, UpdateInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "George Orwell", a.Name)
		repo.AssertExpectations(t)
	})

	t.Run("unknown author", func(t *testing.T) {
		repo := new(mockRepo)
		s := NewService(repo)

		repo.On("GetByID", ctx, int64(9)).Return(Author{}, apperr.NotFound("author", 9))

		name := "X Y"
		_, err := s.Update(ctx, 9, UpdateInput{Name: &name})
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("author with books is protected", func(t *testing.T) {
		repo := new(mockRepo)
		s := NewService(repo)

		repo.On("GetByID", ctx, int64(3)).Return(Author{ID: 3, Name: "Busy"}, nil)
		repo.On("BookCount", ctx, int64(3)).Return(4, nil)

		_, err := s.Delete(ctx, 3)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
		assert.Equal(t, "Cannot delete author with existing books. Delete 4 book(s) first.", err.Error())
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("author without books is deleted and returned", func(t *testing.T) {
		repo := new(mockRepo)
		s := NewService(repo)

		repo.On("GetByID", ctx, int64(3)).Return(Author{ID: 3, Name: "Done"}, nil)
		repo.On("BookCount", ctx, int64(3)).Return(0, nil)
		repo.On("Delete", ctx, int64(3)).Return(nil)

		a, err := s.Delete(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Done", a.Name)
		repo.AssertExpectations(t)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("returns meta for the page", func(t *testing.T) {
		repo := new(mockRepo)
		s := NewService(repo)

		repo.On("List", ctx, 10, 10).Return([]Author{{ID: 11}}, 21, nil)

		page, err := s.List(ctx, ListParams{Page: "2"})
		require.NoError(t, err)
		assert.Equal(t, 21, page.Total)
		assert.Equal(t, 3, page.Pages)
		assert.True(t, page.HasNext)
		assert.True(t, page.HasPrev)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		repo := new(mockRepo)
		s := NewService(repo)

		repo.On("List", ctx, 10, 0).Return(nil, 0, nil)

		page, err := s.List(ctx, ListParams{})
		require.NoError(t, err)
		assert.NotNil(t, page.Authors)
		assert.Empty(t, page.Authors)
	})

	t.Run("rejects out-of-range per_page", func(t *testing.T) {
		repo := new(mockRepo)
		s := NewService(repo)

		_, err := s.List(ctx, ListParams{PerPage: "101"})
		require.Error(t, err)
		assert.Equal(t, "Per page must be <= 100", err.Error())
	})
}
