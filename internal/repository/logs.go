package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/budget-service/internal/domain/model"
)

const defaultLogQueryLimit = 100

// LogsRepository stores request and audit log entries.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository creates a new logs repository.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs}
}

func stampLogEntry(entry *model.LogEntry) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
}

// Create inserts a single log entry.
func (r *LogsRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	stampLogEntry(entry)
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts entries without ordering so one bad entry does not
// block the rest.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		stampLogEntry(entry)
		docs[i] = entry
	}
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

func logFilter(opts model.LogQueryOptions) bson.M {
	filter := bson.M{}
	set := func(key, value string) {
		if value != "" {
			filter[key] = value
		}
	}
	set("request_id", opts.RequestID)
	set("user_id", opts.UserID)
	set("action_type", opts.ActionType)
	set("level", opts.Level)
	set("method", opts.Method)
	if opts.Path != "" {
		filter["path"] = bson.M{"$regex": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(opts.Path)}}
	}
	if opts.StartTime != nil || opts.EndTime != nil {
		window := bson.M{}
		if opts.StartTime != nil {
			window["$gte"] = *opts.StartTime
		}
		if opts.EndTime != nil {
			window["$lte"] = *opts.EndTime
		}
		filter["timestamp"] = window
	}
	return filter
}

// Query returns entries matching opts, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLogQueryLimit
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(opts.Skip))
	return findAll[model.LogEntry](ctx, r.collection, logFilter(opts), findOpts)
}

// Count returns the number of entries matching opts.
func (r *LogsRepository) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, logFilter(opts))
}
