package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/budget-service/internal/domain/model"
)

// TokenRepository stores refresh tokens and blacklisted access tokens.
// Expired documents are removed by the expires_at TTL index.
type TokenRepository struct {
	collection *mongo.Collection
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *MongoDB) *TokenRepository {
	return &TokenRepository{collection: db.Tokens}
}

// Create inserts a new token.
func (r *TokenRepository) Create(ctx context.Context, token *model.Token) error {
	token.CreatedAt = time.Now().UTC()
	if token.ID.IsZero() {
		token.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, token)
	return err
}

// FindByToken finds a token by its string value.
func (r *TokenRepository) FindByToken(ctx context.Context, tokenString string) (*model.Token, error) {
	return findOne[model.Token](ctx, r.collection, bson.M{"token": tokenString})
}

// DeleteByToken deletes a token by its string value. Missing tokens are not
// an error.
func (r *TokenRepository) DeleteByToken(ctx context.Context, tokenString string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"token": tokenString})
	return err
}

// DeleteByUserID deletes all of a user's tokens of the given type.
func (r *TokenRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID, tokenType string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID, "type": tokenType})
	return err
}

// IsBlacklisted reports whether the access token has been revoked.
func (r *TokenRepository) IsBlacklisted(ctx context.Context, tokenString string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"token": tokenString,
		"type":  model.TokenTypeBlacklist,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
