package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/budget-service/internal/domain/model"
	"github.com/guttosm/budget-service/internal/mocks"
	"github.com/guttosm/budget-service/internal/service"
)

func TestBudgetService_ForMonth(t *testing.T) {
	userID := primitive.NewObjectID()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		month         int
		setupMocks    func(*mocks.MockPurchaseRepositoryInterface)
		expected      model.BudgetStatus
		expectedError error
	}{
		{
			name:  "partially spent",
			month: 10,
			setupMocks: func(m *mocks.MockPurchaseRepositoryInterface) {
				m.On("SumTotal", mock.Anything, userID, start, end).Return(12500, nil)
			},
			expected: model.BudgetStatus{TotalBudget: 50000, Spent: 12500, Remaining: 37500, PercentUsed: 25, Year: 2026, Month: 10},
		},
		{
			name:  "overspent",
			month: 10,
			setupMocks: func(m *mocks.MockPurchaseRepositoryInterface) {
				m.On("SumTotal", mock.Anything, userID, start, end).Return(51000, nil)
			},
			expected: model.BudgetStatus{TotalBudget: 50000, Spent: 51000, Remaining: -1000, PercentUsed: 100, Year: 2026, Month: 10},
		},
		{
			name:          "invalid month",
			month:         0,
			setupMocks:    func(*mocks.MockPurchaseRepositoryInterface) {},
			expectedError: service.ErrInvalidMonth,
		},
		{
			name:  "storage error",
			month: 10,
			setupMocks: func(m *mocks.MockPurchaseRepositoryInterface) {
				m.On("SumTotal", mock.Anything, userID, start, end).Return(0, errors.New("db down"))
			},
			expectedError: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockPurchaseRepositoryInterface)
			tt.setupMocks(repo)

			status, err := service.NewBudgetService(repo, 50000, time.UTC).ForMonth(context.Background(), userID, 2026, tt.month)
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestBudgetService_Current(t *testing.T) {
	userID := primitive.NewObjectID()
	repo := new(mocks.MockPurchaseRepositoryInterface)
	repo.On("SumTotal", mock.Anything, userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(0, nil)

	status, err := service.NewBudgetService(repo, 30000, nil).Current(context.Background(), userID)
	require.NoError(t, err)

	now := time.Now().UTC()
	assert.Equal(t, now.Year(), status.Year)
	assert.Equal(t, int(now.Month()), status.Month)
	assert.Equal(t, 30000, status.Remaining)
}

func TestBudgetService_NilRepository(t *testing.T) {
	svc := service.NewBudgetService(nil, 50000, nil)
	_, err := svc.Current(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
	_, err = svc.Statistics(context.Background(), primitive.NewObjectID(), 0, 0)
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
}

func TestBudgetService_Statistics(t *testing.T) {
	userID := primitive.NewObjectID()
	repo := new(mocks.MockPurchaseRepositoryInterface)
	repo.On("List", mock.Anything, userID, (*time.Time)(nil), (*time.Time)(nil)).Return([]model.Purchase{
		{MenuID: "m1", MenuName: "라면", Category: "분식", Quantity: 2, TotalPrice: 8000},
	}, nil)

	stats, err := service.NewBudgetService(repo, 50000, nil).Statistics(context.Background(), userID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 8000, stats.TotalSpent)
	assert.Equal(t, 2, stats.TotalItems)

	_, err = service.NewBudgetService(repo, 50000, nil).Statistics(context.Background(), userID, 2026, 13)
	assert.ErrorIs(t, err, service.ErrInvalidMonth)
}

func TestSummarize(t *testing.T) {
	purchases := []model.Purchase{
		{MenuID: "m1", MenuName: "라면", Category: "분식", Quantity: 2, TotalPrice: 8000},
		{MenuID: "m2", MenuName: "아메리카노", Category: "음료", Quantity: 1, TotalPrice: 4500},
		{MenuID: "m1", MenuName: "라면", Category: "분식", Quantity: 1, TotalPrice: 4000},
		{MenuID: "m3", MenuName: "물", Quantity: 3, TotalPrice: 3000},
		{MenuID: "m4", MenuName: "김밥", Category: "분식", Quantity: 3, TotalPrice: 9000},
	}

	stats := service.Summarize(purchases, 3)

	assert.Equal(t, 28500, stats.TotalSpent)
	assert.Equal(t, 10, stats.TotalItems)
	assert.Equal(t, []model.CategoryStat{
		{Category: "분식", Count: 6, Total: 21000},
		{Category: "음료", Count: 1, Total: 4500},
		{Category: model.DefaultCategory, Count: 3, Total: 3000},
	}, stats.Categories)

	require.Len(t, stats.TopMenus, 3)
	assert.Equal(t, "라면", stats.TopMenus[0].MenuName, "ties on count break by total")
	assert.Equal(t, 12000, stats.TopMenus[0].Total)
	assert.Equal(t, "김밥", stats.TopMenus[1].MenuName)
	assert.Equal(t, "물", stats.TopMenus[2].MenuName)
}

func TestSummarize_Empty(t *testing.T) {
	stats := service.Summarize(nil, 5)
	assert.Equal(t, 0, stats.TotalSpent)
	assert.NotNil(t, stats.Categories)
	assert.NotNil(t, stats.TopMenus)
	assert.Empty(t, stats.TopMenus)
}
