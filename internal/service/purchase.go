package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/domain/model"
	"github.com/guttosm/budget-service/internal/repository"
)

// PurchaseService records what users bought.
type PurchaseService interface {
	// List returns purchases newest first. A zero year lists every purchase;
	// otherwise only those in the given month.
	List(ctx context.Context, userID primitive.ObjectID, year, month int) ([]model.Purchase, error)
	Get(ctx context.Context, userID, id primitive.ObjectID) (*model.Purchase, error)
	Create(ctx context.Context, userID primitive.ObjectID, req dto.PurchaseRequest) (*model.Purchase, error)
	// CreateBatch records every line of a chosen combination at one instant.
	CreateBatch(ctx context.Context, userID primitive.ObjectID, req dto.BatchPurchaseRequest) ([]model.Purchase, error)
	Update(ctx context.Context, userID, id primitive.ObjectID, req dto.UpdatePurchaseRequest) (*model.Purchase, error)
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
}

// PurchaseServiceImpl implements PurchaseService.
type PurchaseServiceImpl struct {
	repo  repository.PurchaseRepositoryInterface
	menus repository.MenuRepositoryInterface
	loc   *time.Location
	now   func() time.Time
}

// NewPurchaseService creates a purchase service. Month boundaries are
// computed in loc.
func NewPurchaseService(repo repository.PurchaseRepositoryInterface, menus repository.MenuRepositoryInterface, loc *time.Location) *PurchaseServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &PurchaseServiceImpl{repo: repo, menus: menus, loc: loc, now: time.Now}
}

// ValidMonth reports whether year and month name a calendar month.
func ValidMonth(year, month int) bool {
	return year >= 1 && year <= 9999 && month >= 1 && month <= 12
}

func (s *PurchaseServiceImpl) configured() error {
	if s.repo == nil || s.menus == nil {
		return ErrRepositoryNotConfigured
	}
	return nil
}

func (s *PurchaseServiceImpl) List(ctx context.Context, userID primitive.ObjectID, year, month int) ([]model.Purchase, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}
	var from, to *time.Time
	if year != 0 || month != 0 {
		if !ValidMonth(year, month) {
			return nil, ErrInvalidMonth
		}
		start, end := model.MonthRange(year, month, s.loc)
		from, to = &start, &end
	}
	purchases, err := s.repo.List(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return purchases, nil
}

func (s *PurchaseServiceImpl) Get(ctx context.Context, userID, id primitive.ObjectID) (*model.Purchase, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("find purchase: %w", err)
	}
	if p == nil {
		return nil, ErrPurchaseNotFound
	}
	return p, nil
}

// build snapshots the menu's name, price and category into a purchase so
// later menu edits do not rewrite history.
func (s *PurchaseServiceImpl) build(ctx context.Context, userID primitive.ObjectID, req dto.PurchaseRequest, at time.Time) (*model.Purchase, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	menu, err := s.menus.FindByID(ctx, req.MenuID)
	if err != nil {
		return nil, fmt.Errorf("find menu %s: %w", req.MenuID, err)
	}
	if menu == nil {
		return nil, ErrMenuNotFound
	}
	p := &model.Purchase{
		UserID:      userID,
		MenuID:      menu.ID,
		MenuName:    menu.Name,
		Category:    model.CategoryOrDefault(menu.Category),
		Price:       menu.Price,
		Quantity:    req.Quantity,
		Memo:        req.Memo,
		PurchasedAt: at,
	}
	p.Recalculate()
	return p, nil
}

func (s *PurchaseServiceImpl) Create(ctx context.Context, userID primitive.ObjectID, req dto.PurchaseRequest) (*model.Purchase, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}
	p, err := s.build(ctx, userID, req, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create purchase: %w", err)
	}
	return p, nil
}

func (s *PurchaseServiceImpl) CreateBatch(ctx context.Context, userID primitive.ObjectID, req dto.BatchPurchaseRequest) ([]model.Purchase, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	at := s.now().UTC()
	batch := make([]*model.Purchase, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Memo == "" {
			item.Memo = req.Memo
		}
		p, err := s.build(ctx, userID, item, at)
		if err != nil {
			return nil, err
		}
		batch = append(batch, p)
	}
	if err := s.repo.CreateMany(ctx, batch); err != nil {
		return nil, fmt.Errorf("create purchases: %w", err)
	}

	out := make([]model.Purchase, len(batch))
	for i, p := range batch {
		out[i] = *p
	}
	return out, nil
}

func (s *PurchaseServiceImpl) Update(ctx context.Context, userID, id primitive.ObjectID, req dto.UpdatePurchaseRequest) (*model.Purchase, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	p.Quantity = req.Quantity
	p.Memo = req.Memo
	p.Recalculate()
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("update purchase: %w", err)
	}
	return p, nil
}

func (s *PurchaseServiceImpl) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	if err := s.configured(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPurchaseNotFound
		}
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}
