package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/budget-service/internal/domain/model"
)

// MenuRepositoryInterface defines menu catalog storage.
type MenuRepositoryInterface interface {
	Create(ctx context.Context, menu *model.MenuItem) error
	CreateMany(ctx context.Context, menus []*model.MenuItem) error
	FindByID(ctx context.Context, id string) (*model.MenuItem, error)
	List(ctx context.Context) ([]model.MenuItem, error)
	Update(ctx context.Context, menu *model.MenuItem) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// PurchaseRepositoryInterface defines purchase storage.
type PurchaseRepositoryInterface interface {
	Create(ctx context.Context, p *model.Purchase) error
	CreateMany(ctx context.Context, purchases []*model.Purchase) error
	FindByID(ctx context.Context, userID, id primitive.ObjectID) (*model.Purchase, error)
	List(ctx context.Context, userID primitive.ObjectID, from, to *time.Time) ([]model.Purchase, error)
	Update(ctx context.Context, p *model.Purchase) error
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
	SumTotal(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (int, error)
}

// LogsRepositoryInterface defines log entry storage.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// UserRepositoryInterface defines user storage.
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	UpdateRoles(ctx context.Context, id primitive.ObjectID, roles []string) error
}

// RoleRepositoryInterface defines role storage.
type RoleRepositoryInterface interface {
	Create(ctx context.Context, role *model.Role) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Role, error)
	SetPermissions(ctx context.Context, id primitive.ObjectID, permissions []string) error
}

// PermissionRepositoryInterface defines permission storage.
type PermissionRepositoryInterface interface {
	Create(ctx context.Context, permission *model.Permission) error
	FindByResourceAndAction(ctx context.Context, resource, action string) (*model.Permission, error)
	List(ctx context.Context) ([]*model.Permission, error)
}

// TokenRepositoryInterface defines refresh and blacklist token storage.
type TokenRepositoryInterface interface {
	Create(ctx context.Context, token *model.Token) error
	FindByToken(ctx context.Context, tokenString string) (*model.Token, error)
	DeleteByToken(ctx context.Context, tokenString string) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID, tokenType string) error
	IsBlacklisted(ctx context.Context, tokenString string) (bool, error)
}

var (
	_ MenuRepositoryInterface       = (*MenuRepository)(nil)
	_ PurchaseRepositoryInterface   = (*PurchaseRepository)(nil)
	_ LogsRepositoryInterface       = (*LogsRepository)(nil)
	_ UserRepositoryInterface       = (*UserRepository)(nil)
	_ RoleRepositoryInterface       = (*RoleRepository)(nil)
	_ PermissionRepositoryInterface = (*PermissionRepository)(nil)
	_ TokenRepositoryInterface      = (*TokenRepository)(nil)
)
