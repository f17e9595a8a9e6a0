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

// PurchaseRepository stores per-user purchases.
type PurchaseRepository struct {
	collection *mongo.Collection
}

// NewPurchaseRepository creates a new purchase repository.
func NewPurchaseRepository(db *MongoDB) *PurchaseRepository {
	return &PurchaseRepository{collection: db.Purchases}
}

func preparePurchase(p *model.Purchase, now time.Time) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.PurchasedAt.IsZero() {
		p.PurchasedAt = now
	}
	p.Recalculate()
	p.CreatedAt = now
	p.UpdatedAt = now
}

// Create inserts a purchase. TotalPrice is recomputed from price and quantity.
func (r *PurchaseRepository) Create(ctx context.Context, p *model.Purchase) error {
	preparePurchase(p, time.Now().UTC())
	_, err := r.collection.InsertOne(ctx, p)
	return err
}

// CreateMany inserts several purchases in one round trip.
func (r *PurchaseRepository) CreateMany(ctx context.Context, purchases []*model.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(purchases))
	for i, p := range purchases {
		preparePurchase(p, now)
		docs[i] = p
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByID returns one of the user's purchases.
func (r *PurchaseRepository) FindByID(ctx context.Context, userID, id primitive.ObjectID) (*model.Purchase, error) {
	return findOne[model.Purchase](ctx, r.collection, bson.M{"_id": id, "user_id": userID})
}

func rangeFilter(userID primitive.ObjectID, from, to *time.Time) bson.M {
	filter := bson.M{"user_id": userID}
	if from != nil || to != nil {
		window := bson.M{}
		if from != nil {
			window["$gte"] = *from
		}
		if to != nil {
			window["$lt"] = *to
		}
		filter["purchased_at"] = window
	}
	return filter
}

// List returns the user's purchases in [from, to), newest first. Nil bounds
// are open.
func (r *PurchaseRepository) List(ctx context.Context, userID primitive.ObjectID, from, to *time.Time) ([]model.Purchase, error) {
	opts := options.Find().SetSort(bson.D{{Key: "purchased_at", Value: -1}, {Key: "_id", Value: -1}})
	return findAll[model.Purchase](ctx, r.collection, rangeFilter(userID, from, to), opts)
}

// Update changes quantity and memo and recomputes the total.
func (r *PurchaseRepository) Update(ctx context.Context, p *model.Purchase) error {
	p.Recalculate()
	p.UpdatedAt = time.Now().UTC()
	return matchedOne(r.collection.UpdateOne(ctx,
		bson.M{"_id": p.ID, "user_id": p.UserID},
		bson.M{"$set": bson.M{
			"quantity":    p.Quantity,
			"total_price": p.TotalPrice,
			"memo":        p.Memo,
			"updated_at":  p.UpdatedAt,
		}},
	))
}

// Delete removes one of the user's purchases.
func (r *PurchaseRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return deletedOne(r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID}))
}

// SumTotal adds up total_price of the user's purchases in [from, to).
func (r *PurchaseRepository) SumTotal(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: rangeFilter(userID, &from, &to)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total_price"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var rows []struct {
		Total int `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
