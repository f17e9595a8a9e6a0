//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/budget-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPurchaseRepository_CRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewPurchaseRepository(setupTestDB(t))
	userID := primitive.NewObjectID()

	p := &model.Purchase{UserID: userID, MenuID: "m1", MenuName: "김밥", Category: "분식", Price: 3000, Quantity: 2}
	require.NoError(t, repo.Create(ctx, p))
	assert.False(t, p.ID.IsZero())
	assert.Equal(t, 6000, p.TotalPrice)
	assert.False(t, p.PurchasedAt.IsZero())

	found, err := repo.FindByID(ctx, userID, p.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "김밥", found.MenuName)

	other, err := repo.FindByID(ctx, primitive.NewObjectID(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, other, "purchases are scoped to their owner")

	found.Quantity = 3
	found.Memo = "점심"
	require.NoError(t, repo.Update(ctx, found))
	assert.Equal(t, 9000, found.TotalPrice)

	reloaded, err := repo.FindByID(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 9000, reloaded.TotalPrice)
	assert.Equal(t, "점심", reloaded.Memo)

	assert.ErrorIs(t, repo.Delete(ctx, primitive.NewObjectID(), p.ID), ErrNotFound)
	require.NoError(t, repo.Delete(ctx, userID, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, userID, p.ID), ErrNotFound)
}

func TestPurchaseRepository_ListAndSum(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewPurchaseRepository(setupTestDB(t))
	userID := primitive.NewObjectID()

	march := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	april := time.Date(2025, time.April, 2, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateMany(ctx, []*model.Purchase{
		{UserID: userID, MenuID: "a", MenuName: "A", Price: 1000, Quantity: 1, PurchasedAt: march},
		{UserID: userID, MenuID: "b", MenuName: "B", Price: 2000, Quantity: 2, PurchasedAt: march.Add(time.Hour)},
		{UserID: userID, MenuID: "c", MenuName: "C", Price: 5000, Quantity: 1, PurchasedAt: april},
		{UserID: primitive.NewObjectID(), MenuID: "x", MenuName: "X", Price: 9000, Quantity: 1, PurchasedAt: march},
	}))

	start, end := model.MonthRange(2025, 3, time.UTC)

	list, err := repo.List(ctx, userID, &start, &end)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].MenuName, "newest first")
	assert.Equal(t, "A", list[1].MenuName)

	all, err := repo.List(ctx, userID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	sum, err := repo.SumTotal(ctx, userID, start, end)
	require.NoError(t, err)
	assert.Equal(t, 5000, sum)

	emptyStart, emptyEnd := model.MonthRange(2024, 1, time.UTC)
	sum, err = repo.SumTotal(ctx, userID, emptyStart, emptyEnd)
	require.NoError(t, err)
	assert.Equal(t, 0, sum)
}
