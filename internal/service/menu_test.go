package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/domain/model"
	"github.com/guttosm/budget-service/internal/mocks"
	"github.com/guttosm/budget-service/internal/repository"
	"github.com/guttosm/budget-service/internal/service"
)

func TestMenuService_NilRepository(t *testing.T) {
	svc := service.NewMenuService(nil)
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
	_, err = svc.Get(ctx, "x")
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
	_, err = svc.Create(ctx, dto.MenuRequest{Name: "Tea", Price: 1000}, "")
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
	assert.ErrorIs(t, svc.Delete(ctx, "x"), service.ErrRepositoryNotConfigured)
	_, err = svc.Import(ctx, []dto.MenuRequest{{Name: "Tea"}}, "")
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
}

func TestMenuService_Get(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockMenuRepositoryInterface)
		expectedError error
	}{
		{
			name: "found",
			setupMocks: func(m *mocks.MockMenuRepositoryInterface) {
				m.On("FindByID", mock.Anything, "m1").Return(&model.MenuItem{ID: "m1", Name: "Americano"}, nil)
			},
		},
		{
			name: "missing",
			setupMocks: func(m *mocks.MockMenuRepositoryInterface) {
				m.On("FindByID", mock.Anything, "m1").Return(nil, nil)
			},
			expectedError: service.ErrMenuNotFound,
		},
		{
			name: "storage error",
			setupMocks: func(m *mocks.MockMenuRepositoryInterface) {
				m.On("FindByID", mock.Anything, "m1").Return(nil, errors.New("db down"))
			},
			expectedError: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockMenuRepositoryInterface)
			tt.setupMocks(repo)

			menu, err := service.NewMenuService(repo).Get(context.Background(), "m1")
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Americano", menu.Name)
		})
	}
}

func TestMenuService_Create(t *testing.T) {
	repo := new(mocks.MockMenuRepositoryInterface)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *model.MenuItem) bool {
		return m.Name == "Americano" && m.Price == 4000 && m.Category == "Coffee" && m.CreatedBy == "admin@example.com"
	})).Return(nil)
	svc := service.NewMenuService(repo)

	menu, err := svc.Create(context.Background(), dto.MenuRequest{Name: "  Americano ", Price: 4000, Category: "Coffee"}, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Americano", menu.Name)
	repo.AssertExpectations(t)

	_, err = svc.Create(context.Background(), dto.MenuRequest{Name: "  ", Price: 100}, "")
	var verr *dto.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestMenuService_Update(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockMenuRepositoryInterface)
		expectedError error
	}{
		{
			name: "updates fields",
			setupMocks: func(m *mocks.MockMenuRepositoryInterface) {
				m.On("FindByID", mock.Anything, "m1").Return(&model.MenuItem{ID: "m1", Name: "Old", Price: 1}, nil)
				m.On("Update", mock.Anything, mock.MatchedBy(func(item *model.MenuItem) bool {
					return item.ID == "m1" && item.Name == "Latte" && item.Price == 4500
				})).Return(nil)
			},
		},
		{
			name: "missing menu",
			setupMocks: func(m *mocks.MockMenuRepositoryInterface) {
				m.On("FindByID", mock.Anything, "m1").Return(nil, nil)
			},
			expectedError: service.ErrMenuNotFound,
		},
		{
			name: "deleted concurrently",
			setupMocks: func(m *mocks.MockMenuRepositoryInterface) {
				m.On("FindByID", mock.Anything, "m1").Return(&model.MenuItem{ID: "m1"}, nil)
				m.On("Update", mock.Anything, mock.Anything).Return(repository.ErrNotFound)
			},
			expectedError: service.ErrMenuNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockMenuRepositoryInterface)
			tt.setupMocks(repo)

			menu, err := service.NewMenuService(repo).Update(context.Background(), "m1", dto.MenuRequest{Name: "Latte", Price: 4500})
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Latte", menu.Name)
			repo.AssertExpectations(t)
		})
	}
}

func TestMenuService_Delete(t *testing.T) {
	repo := new(mocks.MockMenuRepositoryInterface)
	repo.On("Delete", mock.Anything, "m1").Return(nil)
	repo.On("Delete", mock.Anything, "m2").Return(repository.ErrNotFound)
	svc := service.NewMenuService(repo)

	assert.NoError(t, svc.Delete(context.Background(), "m1"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "m2"), service.ErrMenuNotFound)
}

func TestMenuService_Import(t *testing.T) {
	t.Run("inserts the whole batch", func(t *testing.T) {
		repo := new(mocks.MockMenuRepositoryInterface)
		repo.On("CreateMany", mock.Anything, mock.MatchedBy(func(items []*model.MenuItem) bool {
			return len(items) == 2 && items[0].Name == "라면" && items[1].CreatedBy == "admin"
		})).Run(func(args mock.Arguments) {
			for i, item := range args.Get(1).([]*model.MenuItem) {
				item.ID = string(rune('a' + i))
			}
		}).Return(nil)

		menus, err := service.NewMenuService(repo).Import(context.Background(), []dto.MenuRequest{
			{Name: "라면", Price: 4000, Category: "분식"},
			{Name: "김밥", Price: 3000, Category: "분식"},
		}, "admin")
		require.NoError(t, err)
		require.Len(t, menus, 2)
		assert.Equal(t, "a", menus[0].ID)
		assert.Equal(t, "b", menus[1].ID)
	})

	t.Run("one invalid row rejects the import", func(t *testing.T) {
		repo := new(mocks.MockMenuRepositoryInterface)
		_, err := service.NewMenuService(repo).Import(context.Background(), []dto.MenuRequest{
			{Name: "라면", Price: 4000},
			{Name: "", Price: 3000},
		}, "admin")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
	})
}
