package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/budget-service/internal/domain/model"
)

// RoleRepository implements RoleRepositoryInterface using MongoDB.
type RoleRepository struct {
	collection *mongo.Collection
}

// NewRoleRepository creates a new role repository.
func NewRoleRepository(db *MongoDB) *RoleRepository {
	return &RoleRepository{collection: db.Roles}
}

// Create inserts a new role.
func (r *RoleRepository) Create(ctx context.Context, role *model.Role) error {
	now := time.Now().UTC()
	role.CreatedAt, role.UpdatedAt = now, now
	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, role)
	return err
}

// FindByID finds a role by ID.
func (r *RoleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Role, error) {
	return findOne[model.Role](ctx, r.collection, bson.M{"_id": id})
}

// FindByName finds a role by name.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	return findOne[model.Role](ctx, r.collection, bson.M{"name": name})
}

// FindByIDs returns the roles with the given hex IDs. Invalid IDs are ignored.
func (r *RoleRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Role, error) {
	return findAll[*model.Role](ctx, r.collection, bson.M{"_id": bson.M{"$in": objectIDs(ids)}})
}

// SetPermissions replaces the permission IDs granted by a role.
func (r *RoleRepository) SetPermissions(ctx context.Context, id primitive.ObjectID, permissions []string) error {
	return matchedOne(r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"permissions": permissions, "updated_at": time.Now().UTC()}},
	))
}
