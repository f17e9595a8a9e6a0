//go:build !integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/budget-service/internal/circuitbreaker"
	"github.com/guttosm/budget-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var errDown = errors.New("connection refused")

type fakeMenuRepo struct {
	MenuRepositoryInterface
	err   error
	calls int
}

func (f *fakeMenuRepo) List(context.Context) ([]model.MenuItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []model.MenuItem{{ID: "1", Name: "김밥", Price: 3000}}, nil
}

func (f *fakeMenuRepo) Delete(context.Context, string) error {
	f.calls++
	return f.err
}

type fakePurchaseRepo struct {
	PurchaseRepositoryInterface
	err error
}

func (f *fakePurchaseRepo) SumTotal(context.Context, primitive.ObjectID, time.Time, time.Time) (int, error) {
	return 4200, f.err
}

type fakeLogsRepo struct {
	LogsRepositoryInterface
	err     error
	written int
}

func (f *fakeLogsRepo) Create(context.Context, *model.LogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.written++
	return nil
}

func (f *fakeLogsRepo) CreateMany(_ context.Context, entries []*model.LogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.written += len(entries)
	return nil
}

func newTestBreaker(threshold int) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: threshold,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		Name:             "test",
		IsFailure:        IsStorageFailure,
	})
}

func TestIsStorageFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "not found", err: ErrNotFound, want: false},
		{name: "no documents", err: mongo.ErrNoDocuments, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "duplicate key", err: mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}, want: false},
		{name: "network", err: errDown, want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStorageFailure(tt.err))
		})
	}
}

func TestMenuRepositoryWithCircuitBreaker(t *testing.T) {
	t.Run("passes results through", func(t *testing.T) {
		repo := NewMenuRepositoryWithCircuitBreaker(&fakeMenuRepo{}, newTestBreaker(2))
		menus, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, menus, 1)
	})

	t.Run("opens after consecutive failures", func(t *testing.T) {
		inner := &fakeMenuRepo{err: errDown}
		repo := NewMenuRepositoryWithCircuitBreaker(inner, newTestBreaker(2))
		ctx := context.Background()

		_, err := repo.List(ctx)
		assert.ErrorIs(t, err, errDown)
		_, err = repo.List(ctx)
		assert.ErrorIs(t, err, errDown)

		_, err = repo.List(ctx)
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
		assert.Equal(t, 2, inner.calls)
		assert.True(t, repo.CircuitBreaker().IsOpen())
	})

	t.Run("not found does not trip the breaker", func(t *testing.T) {
		inner := &fakeMenuRepo{err: ErrNotFound}
		repo := NewMenuRepositoryWithCircuitBreaker(inner, newTestBreaker(1))
		for i := 0; i < 3; i++ {
			assert.ErrorIs(t, repo.Delete(context.Background(), "x"), ErrNotFound)
		}
		assert.Equal(t, circuitbreaker.StateClosed, repo.CircuitBreaker().State())
	})
}

func TestPurchaseRepositoryWithCircuitBreaker(t *testing.T) {
	repo := NewPurchaseRepositoryWithCircuitBreaker(&fakePurchaseRepo{}, newTestBreaker(1))
	sum, err := repo.SumTotal(context.Background(), primitive.NewObjectID(), time.Time{}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 4200, sum)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.SumTotal(ctx, primitive.NewObjectID(), time.Time{}, time.Now())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, circuitbreaker.StateClosed, repo.CircuitBreaker().State())
}

func TestLogsRepositoryWithCircuitBreaker(t *testing.T) {
	t.Run("writes go through while closed", func(t *testing.T) {
		inner := &fakeLogsRepo{}
		repo := NewLogsRepositoryWithCircuitBreaker(inner, newTestBreaker(1))
		require.NoError(t, repo.Create(context.Background(), model.NewLogEntry("info", "a")))
		require.NoError(t, repo.CreateMany(context.Background(), []*model.LogEntry{{}, {}}))
		assert.Equal(t, 3, inner.written)
	})

	t.Run("writes are dropped while open", func(t *testing.T) {
		inner := &fakeLogsRepo{err: errDown}
		repo := NewLogsRepositoryWithCircuitBreaker(inner, newTestBreaker(1))
		ctx := context.Background()

		assert.ErrorIs(t, repo.Create(ctx, model.NewLogEntry("info", "a")), errDown)
		assert.True(t, repo.CircuitBreaker().IsOpen())

		assert.NoError(t, repo.Create(ctx, model.NewLogEntry("info", "b")))
		assert.NoError(t, repo.CreateMany(ctx, []*model.LogEntry{{}}))
		assert.Zero(t, inner.written)
	})
}
