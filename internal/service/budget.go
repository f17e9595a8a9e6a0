package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/budget-service/internal/domain/model"
	"github.com/guttosm/budget-service/internal/repository"
)

// topMenusLimit is how many menus the statistics rank.
const topMenusLimit = 5

// BudgetService computes spending against the monthly budget.
type BudgetService interface {
	// Current returns the status of the current month.
	Current(ctx context.Context, userID primitive.ObjectID) (model.BudgetStatus, error)
	// ForMonth returns the status of the given month.
	ForMonth(ctx context.Context, userID primitive.ObjectID, year, month int) (model.BudgetStatus, error)
	// Statistics aggregates purchases by category and menu. A zero year
	// covers the whole history.
	Statistics(ctx context.Context, userID primitive.ObjectID, year, month int) (model.Statistics, error)
}

// BudgetServiceImpl implements BudgetService.
type BudgetServiceImpl struct {
	purchases repository.PurchaseRepositoryInterface
	budget    int
	loc       *time.Location
	now       func() time.Time
}

// NewBudgetService creates a budget service for a fixed monthly budget.
func NewBudgetService(purchases repository.PurchaseRepositoryInterface, monthlyBudget int, loc *time.Location) *BudgetServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &BudgetServiceImpl{purchases: purchases, budget: monthlyBudget, loc: loc, now: time.Now}
}

func (s *BudgetServiceImpl) Current(ctx context.Context, userID primitive.ObjectID) (model.BudgetStatus, error) {
	now := s.now().In(s.loc)
	return s.ForMonth(ctx, userID, now.Year(), int(now.Month()))
}

func (s *BudgetServiceImpl) ForMonth(ctx context.Context, userID primitive.ObjectID, year, month int) (model.BudgetStatus, error) {
	if s.purchases == nil {
		return model.BudgetStatus{}, ErrRepositoryNotConfigured
	}
	if !ValidMonth(year, month) {
		return model.BudgetStatus{}, ErrInvalidMonth
	}
	start, end := model.MonthRange(year, month, s.loc)
	spent, err := s.purchases.SumTotal(ctx, userID, start, end)
	if err != nil {
		return model.BudgetStatus{}, fmt.Errorf("sum purchases %04d-%02d: %w", year, month, err)
	}
	return model.NewBudgetStatus(s.budget, spent, year, month), nil
}

func (s *BudgetServiceImpl) Statistics(ctx context.Context, userID primitive.ObjectID, year, month int) (model.Statistics, error) {
	if s.purchases == nil {
		return model.Statistics{}, ErrRepositoryNotConfigured
	}
	var from, to *time.Time
	if year != 0 || month != 0 {
		if !ValidMonth(year, month) {
			return model.Statistics{}, ErrInvalidMonth
		}
		start, end := model.MonthRange(year, month, s.loc)
		from, to = &start, &end
	}
	purchases, err := s.purchases.List(ctx, userID, from, to)
	if err != nil {
		return model.Statistics{}, fmt.Errorf("list purchases: %w", err)
	}
	return Summarize(purchases, topMenusLimit), nil
}

// Summarize totals purchases per category and ranks menus by quantity bought.
// Categories are ordered by total spent, menus by count then total; ties
// break by name.
func Summarize(purchases []model.Purchase, topN int) model.Statistics {
	stats := model.Statistics{Categories: []model.CategoryStat{}, TopMenus: []model.MenuStat{}}
	categories := make(map[string]*model.CategoryStat)
	menus := make(map[string]*model.MenuStat)

	for _, p := range purchases {
		stats.TotalSpent += p.TotalPrice
		stats.TotalItems += p.Quantity

		name := model.CategoryOrDefault(p.Category)
		c, ok := categories[name]
		if !ok {
			c = &model.CategoryStat{Category: name}
			categories[name] = c
		}
		c.Count += p.Quantity
		c.Total += p.TotalPrice

		key := p.MenuID
		if key == "" {
			key = p.MenuName
		}
		m, ok := menus[key]
		if !ok {
			m = &model.MenuStat{MenuID: p.MenuID, MenuName: p.MenuName}
			menus[key] = m
		}
		m.Count += p.Quantity
		m.Total += p.TotalPrice
	}

	for _, c := range categories {
		stats.Categories = append(stats.Categories, *c)
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		a, b := stats.Categories[i], stats.Categories[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Category < b.Category
	})

	for _, m := range menus {
		stats.TopMenus = append(stats.TopMenus, *m)
	}
	sort.Slice(stats.TopMenus, func(i, j int) bool {
		a, b := stats.TopMenus[i], stats.TopMenus[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.MenuName < b.MenuName
	})
	if topN > 0 && len(stats.TopMenus) > topN {
		stats.TopMenus = stats.TopMenus[:topN]
	}
	return stats
}
