package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/budget-service/internal/circuitbreaker"
	"github.com/guttosm/budget-service/internal/domain/model"
)

// IsStorageFailure is the circuit breaker failure predicate for repositories:
// missing documents, duplicate keys and cancelled requests do not count.
func IsStorageFailure(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrNotFound), errors.Is(err, mongo.ErrNoDocuments), errors.Is(err, context.Canceled):
		return false
	case mongo.IsDuplicateKeyError(err):
		return false
	}
	return true
}

// MenuRepositoryWithCircuitBreaker guards MenuRepositoryInterface calls.
type MenuRepositoryWithCircuitBreaker struct {
	repo MenuRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewMenuRepositoryWithCircuitBreaker wraps repo with cb.
func NewMenuRepositoryWithCircuitBreaker(repo MenuRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *MenuRepositoryWithCircuitBreaker {
	return &MenuRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *MenuRepositoryWithCircuitBreaker) Create(ctx context.Context, menu *model.MenuItem) error {
	return r.cb.Execute(ctx, func() error { return r.repo.Create(ctx, menu) })
}

func (r *MenuRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, menus []*model.MenuItem) error {
	return r.cb.Execute(ctx, func() error { return r.repo.CreateMany(ctx, menus) })
}

func (r *MenuRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id string) (*model.MenuItem, error) {
	return circuitbreaker.Do(ctx, r.cb, func() (*model.MenuItem, error) { return r.repo.FindByID(ctx, id) })
}

func (r *MenuRepositoryWithCircuitBreaker) List(ctx context.Context) ([]model.MenuItem, error) {
	return circuitbreaker.Do(ctx, r.cb, func() ([]model.MenuItem, error) { return r.repo.List(ctx) })
}

func (r *MenuRepositoryWithCircuitBreaker) Update(ctx context.Context, menu *model.MenuItem) error {
	return r.cb.Execute(ctx, func() error { return r.repo.Update(ctx, menu) })
}

func (r *MenuRepositoryWithCircuitBreaker) Delete(ctx context.Context, id string) error {
	return r.cb.Execute(ctx, func() error { return r.repo.Delete(ctx, id) })
}

func (r *MenuRepositoryWithCircuitBreaker) Count(ctx context.Context) (int64, error) {
	return circuitbreaker.Do(ctx, r.cb, func() (int64, error) { return r.repo.Count(ctx) })
}

// CircuitBreaker returns the underlying breaker for health reporting.
func (r *MenuRepositoryWithCircuitBreaker) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// PurchaseRepositoryWithCircuitBreaker guards PurchaseRepositoryInterface calls.
type PurchaseRepositoryWithCircuitBreaker struct {
	repo PurchaseRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewPurchaseRepositoryWithCircuitBreaker wraps repo with cb.
func NewPurchaseRepositoryWithCircuitBreaker(repo PurchaseRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *PurchaseRepositoryWithCircuitBreaker {
	return &PurchaseRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *PurchaseRepositoryWithCircuitBreaker) Create(ctx context.Context, p *model.Purchase) error {
	return r.cb.Execute(ctx, func() error { return r.repo.Create(ctx, p) })
}

func (r *PurchaseRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, purchases []*model.Purchase) error {
	return r.cb.Execute(ctx, func() error { return r.repo.CreateMany(ctx, purchases) })
}

func (r *PurchaseRepositoryWithCircuitBreaker) FindByID(ctx context.Context, userID, id primitive.ObjectID) (*model.Purchase, error) {
	return circuitbreaker.Do(ctx, r.cb, func() (*model.Purchase, error) { return r.repo.FindByID(ctx, userID, id) })
}

func (r *PurchaseRepositoryWithCircuitBreaker) List(ctx context.Context, userID primitive.ObjectID, from, to *time.Time) ([]model.Purchase, error) {
	return circuitbreaker.Do(ctx, r.cb, func() ([]model.Purchase, error) { return r.repo.List(ctx, userID, from, to) })
}

func (r *PurchaseRepositoryWithCircuitBreaker) Update(ctx context.Context, p *model.Purchase) error {
	return r.cb.Execute(ctx, func() error { return r.repo.Update(ctx, p) })
}

func (r *PurchaseRepositoryWithCircuitBreaker) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return r.cb.Execute(ctx, func() error { return r.repo.Delete(ctx, userID, id) })
}

func (r *PurchaseRepositoryWithCircuitBreaker) SumTotal(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (int, error) {
	return circuitbreaker.Do(ctx, r.cb, func() (int, error) { return r.repo.SumTotal(ctx, userID, from, to) })
}

// CircuitBreaker returns the underlying breaker for health reporting.
func (r *PurchaseRepositoryWithCircuitBreaker) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// LogsRepositoryWithCircuitBreaker guards log writes. Writes made while the
// circuit is open are dropped.
type LogsRepositoryWithCircuitBreaker struct {
	repo LogsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func dropWhenOpen(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	return dropWhenOpen(r.cb.Execute(ctx, func() error { return r.repo.Create(ctx, entry) }))
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	return dropWhenOpen(r.cb.Execute(ctx, func() error { return r.repo.CreateMany(ctx, entries) }))
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	return circuitbreaker.Do(ctx, r.cb, func() ([]model.LogEntry, error) { return r.repo.Query(ctx, opts) })
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return circuitbreaker.Do(ctx, r.cb, func() (int64, error) { return r.repo.Count(ctx, opts) })
}

// CircuitBreaker returns the underlying breaker for health reporting.
func (r *LogsRepositoryWithCircuitBreaker) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

var (
	_ MenuRepositoryInterface     = (*MenuRepositoryWithCircuitBreaker)(nil)
	_ PurchaseRepositoryInterface = (*PurchaseRepositoryWithCircuitBreaker)(nil)
	_ LogsRepositoryInterface     = (*LogsRepositoryWithCircuitBreaker)(nil)
)
