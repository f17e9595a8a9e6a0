// Package repository is the MongoDB data access layer.
//
// Finders return (nil, nil) when no document matches; Update and Delete
// return ErrNotFound when nothing was matched.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by mutations that matched no document.
var ErrNotFound = errors.New("document not found")

// Collection names.
const (
	CollectionMenus       = "menus"
	CollectionPurchases   = "purchases"
	CollectionLogs        = "logs"
	CollectionUsers       = "users"
	CollectionRoles       = "roles"
	CollectionPermissions = "permissions"
	CollectionTokens      = "tokens"
)

const logsTTLIndexName = "logs_ttl"

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	// EnableCompression turns on zstd/snappy/zlib wire compression.
	EnableCompression bool
}

// DefaultMongoConfig returns the pool settings used in production.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            5,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB bundles the client, database and the collections used by the
// repositories.
type MongoDB struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Menus       *mongo.Collection
	Purchases   *mongo.Collection
	Logs        *mongo.Collection
	Users       *mongo.Collection
	Roles       *mongo.Collection
	Permissions *mongo.Collection
	Tokens      *mongo.Collection
}

// NewMongoDB connects with DefaultMongoConfig.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings and ensures indexes.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:      client,
		Database:    db,
		Menus:       db.Collection(CollectionMenus),
		Purchases:   db.Collection(CollectionPurchases),
		Logs:        db.Collection(CollectionLogs),
		Users:       db.Collection(CollectionUsers),
		Roles:       db.Collection(CollectionRoles),
		Permissions: db.Collection(CollectionPermissions),
		Tokens:      db.Collection(CollectionTokens),
	}
	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

func index(keys bson.D, unique bool) mongo.IndexModel {
	opts := options.Index()
	if unique {
		opts.SetUnique(true)
	}
	return mongo.IndexModel{Keys: keys, Options: opts}
}

func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	specs := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{m.Menus, []mongo.IndexModel{
			index(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}, false),
		}},
		{m.Purchases, []mongo.IndexModel{
			index(bson.D{{Key: "user_id", Value: 1}, {Key: "purchased_at", Value: -1}}, false),
		}},
		{m.Logs, []mongo.IndexModel{
			index(bson.D{{Key: "request_id", Value: 1}}, false),
			index(bson.D{{Key: "user_id", Value: 1}, {Key: "action_type", Value: 1}}, false),
		}},
		{m.Users, []mongo.IndexModel{
			index(bson.D{{Key: "email", Value: 1}}, true),
			index(bson.D{{Key: "username", Value: 1}}, true),
		}},
		{m.Roles, []mongo.IndexModel{
			index(bson.D{{Key: "name", Value: 1}}, true),
		}},
		{m.Permissions, []mongo.IndexModel{
			index(bson.D{{Key: "resource", Value: 1}, {Key: "action", Value: 1}}, true),
		}},
		{m.Tokens, []mongo.IndexModel{
			index(bson.D{{Key: "token", Value: 1}}, true),
			index(bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}}, false),
			{
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(0),
			},
		}},
	}

	for _, s := range specs {
		if _, err := s.coll.Indexes().CreateMany(ctx, s.models); err != nil && !isIndexConflict(err) {
			return fmt.Errorf("create indexes on %s: %w", s.coll.Name(), err)
		}
	}
	return nil
}

// SetLogsTTL (re)creates the TTL index that expires log entries.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	_, _ = m.Logs.Indexes().DropOne(ctx, logsTTLIndexName)

	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetName(logsTTLIndexName).SetExpireAfterSeconds(int32(ttl.Seconds())),
	})
	if err != nil && !isIndexConflict(err) {
		return fmt.Errorf("create logs ttl index: %w", err)
	}
	return nil
}

// isIndexConflict reports IndexOptionsConflict (85) and IndexKeySpecsConflict (86).
func isIndexConflict(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 85 || cmdErr.Code == 86
	}
	return false
}

// Close closes the MongoDB connection.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the server with a short timeout.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
