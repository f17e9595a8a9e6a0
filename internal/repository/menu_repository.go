package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/budget-service/internal/domain/model"
)

// MenuRepository stores the shared menu catalog.
type MenuRepository struct {
	collection *mongo.Collection
}

// NewMenuRepository creates a new menu repository.
func NewMenuRepository(db *MongoDB) *MenuRepository {
	return &MenuRepository{collection: db.Menus}
}

func newMenuDocument(menu *model.MenuItem, now time.Time) model.MenuDocument {
	return model.MenuDocument{
		ID:        primitive.NewObjectID(),
		Name:      menu.Name,
		Price:     menu.Price,
		Category:  model.CategoryOrDefault(menu.Category),
		CreatedBy: menu.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Create inserts menu and fills in its ID and timestamps.
func (r *MenuRepository) Create(ctx context.Context, menu *model.MenuItem) error {
	doc := newMenuDocument(menu, time.Now().UTC())
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	*menu = doc.ToMenuItem()
	return nil
}

// CreateMany inserts menus in one round trip.
func (r *MenuRepository) CreateMany(ctx context.Context, menus []*model.MenuItem) error {
	if len(menus) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(menus))
	created := make([]model.MenuDocument, len(menus))
	for i, menu := range menus {
		created[i] = newMenuDocument(menu, now)
		docs[i] = created[i]
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return err
	}
	for i := range menus {
		*menus[i] = created[i].ToMenuItem()
	}
	return nil
}

// FindByID returns the menu with the given hex ID.
func (r *MenuRepository) FindByID(ctx context.Context, id string) (*model.MenuItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	doc, err := findOne[model.MenuDocument](ctx, r.collection, bson.M{"_id": oid})
	if err != nil || doc == nil {
		return nil, err
	}
	item := doc.ToMenuItem()
	return &item, nil
}

// List returns the whole catalog ordered by category, then name.
func (r *MenuRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	docs, err := findAll[model.MenuDocument](ctx, r.collection, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	items := make([]model.MenuItem, len(docs))
	for i, d := range docs {
		items[i] = d.ToMenuItem()
	}
	return items, nil
}

// Update replaces name, price and category.
func (r *MenuRepository) Update(ctx context.Context, menu *model.MenuItem) error {
	oid, err := primitive.ObjectIDFromHex(menu.ID)
	if err != nil {
		return ErrNotFound
	}
	now := time.Now().UTC()
	err = matchedOne(r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":       menu.Name,
		"price":      menu.Price,
		"category":   model.CategoryOrDefault(menu.Category),
		"updated_at": now,
	}}))
	if err != nil {
		return err
	}
	menu.Category = model.CategoryOrDefault(menu.Category)
	menu.UpdatedAt = &now
	return nil
}

// Delete removes a menu.
func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	return deletedOne(r.collection.DeleteOne(ctx, bson.M{"_id": oid}))
}

// Count returns the number of menus.
func (r *MenuRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
