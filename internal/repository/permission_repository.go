package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/budget-service/internal/domain/model"
)

// PermissionRepository implements PermissionRepositoryInterface using MongoDB.
type PermissionRepository struct {
	collection *mongo.Collection
}

// NewPermissionRepository creates a new permission repository.
func NewPermissionRepository(db *MongoDB) *PermissionRepository {
	return &PermissionRepository{collection: db.Permissions}
}

// Create inserts a new permission.
func (r *PermissionRepository) Create(ctx context.Context, permission *model.Permission) error {
	now := time.Now().UTC()
	permission.CreatedAt, permission.UpdatedAt = now, now
	if permission.ID.IsZero() {
		permission.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, permission)
	return err
}

// FindByResourceAndAction finds a permission by resource and action.
func (r *PermissionRepository) FindByResourceAndAction(ctx context.Context, resource, action string) (*model.Permission, error) {
	return findOne[model.Permission](ctx, r.collection, bson.M{"resource": resource, "action": action})
}

// List returns every active permission.
func (r *PermissionRepository) List(ctx context.Context) ([]*model.Permission, error) {
	return findAll[*model.Permission](ctx, r.collection, bson.M{"active": true})
}
