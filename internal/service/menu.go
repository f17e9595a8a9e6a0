package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/domain/model"
	"github.com/guttosm/budget-service/internal/repository"
)

// MenuService manages the shared menu catalog.
type MenuService interface {
	List(ctx context.Context) ([]model.MenuItem, error)
	Get(ctx context.Context, id string) (*model.MenuItem, error)
	Create(ctx context.Context, req dto.MenuRequest, createdBy string) (*model.MenuItem, error)
	Update(ctx context.Context, id string, req dto.MenuRequest) (*model.MenuItem, error)
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, menus []dto.MenuRequest, createdBy string) ([]model.MenuItem, error)
}

// MenuServiceImpl implements MenuService.
type MenuServiceImpl struct {
	repo repository.MenuRepositoryInterface
}

// NewMenuService creates a new menu service.
func NewMenuService(repo repository.MenuRepositoryInterface) MenuService {
	return &MenuServiceImpl{repo: repo}
}

func (s *MenuServiceImpl) List(ctx context.Context) ([]model.MenuItem, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	menus, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	return menus, nil
}

func (s *MenuServiceImpl) Get(ctx context.Context, id string) (*model.MenuItem, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	menu, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find menu %s: %w", id, err)
	}
	if menu == nil {
		return nil, ErrMenuNotFound
	}
	return menu, nil
}

func (s *MenuServiceImpl) Create(ctx context.Context, req dto.MenuRequest, createdBy string) (*model.MenuItem, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	menu := &model.MenuItem{Name: req.Name, Price: req.Price, Category: req.Category, CreatedBy: createdBy}
	if err := s.repo.Create(ctx, menu); err != nil {
		return nil, fmt.Errorf("create menu: %w", err)
	}
	return menu, nil
}

func (s *MenuServiceImpl) Update(ctx context.Context, id string, req dto.MenuRequest) (*model.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	menu, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	menu.Name, menu.Price, menu.Category = req.Name, req.Price, req.Category
	if err := s.repo.Update(ctx, menu); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, fmt.Errorf("update menu %s: %w", id, err)
	}
	return menu, nil
}

func (s *MenuServiceImpl) Delete(ctx context.Context, id string) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMenuNotFound
		}
		return fmt.Errorf("delete menu %s: %w", id, err)
	}
	return nil
}

// Import validates every menu first and then inserts them in one batch, so a
// single bad row rejects the whole import.
func (s *MenuServiceImpl) Import(ctx context.Context, menus []dto.MenuRequest, createdBy string) ([]model.MenuItem, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	req := dto.ImportMenusRequest{Menus: menus}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	items := make([]*model.MenuItem, len(req.Menus))
	for i, m := range req.Menus {
		items[i] = &model.MenuItem{Name: m.Name, Price: m.Price, Category: m.Category, CreatedBy: createdBy}
	}
	if err := s.repo.CreateMany(ctx, items); err != nil {
		return nil, fmt.Errorf("import menus: %w", err)
	}

	out := make([]model.MenuItem, len(items))
	for i, item := range items {
		out[i] = *item
	}
	return out, nil
}
