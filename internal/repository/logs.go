package repository

import (
	"context"
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RequestLogRepository stores request logs.
type RequestLogRepository struct {
	collection *mongo.Collection
}

// NewRequestLogRepository creates a repository over the request_logs collection.
func NewRequestLogRepository(db *MongoDB) *RequestLogRepository {
	return &RequestLogRepository{collection: db.RequestLogs}
}

// Create inserts one log.
func (r *RequestLogRepository) Create(ctx context.Context, entry *model.RequestLog) error {
	stamp(entry)
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts a batch of logs.
func (r *RequestLogRepository) CreateMany(ctx context.Context, entries []*model.RequestLog) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]any, len(entries))
	for i, e := range entries {
		stamp(e)
		docs[i] = e
	}
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns logs matching q, newest first.
func (r *RequestLogRepository) Query(ctx context.Context, q model.RequestLogQuery) ([]*model.RequestLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}

	cursor, err := r.collection.Find(ctx, logFilter(q), opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	entries := []*model.RequestLog{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of logs matching q.
func (r *RequestLogRepository) Count(ctx context.Context, q model.RequestLogQuery) (int64, error) {
	return r.collection.CountDocuments(ctx, logFilter(q))
}

func logFilter(q model.RequestLogQuery) bson.M {
	filter := bson.M{}
	if q.RequestID != "" {
		filter["request_id"] = q.RequestID
	}
	if q.Operation != "" {
		filter["operation"] = q.Operation
	}
	if q.Level != "" {
		filter["level"] = q.Level
	}
	if q.ErrorKind != "" {
		filter["error_kind"] = q.ErrorKind
	}
	if q.StartTime != nil || q.EndTime != nil {
		window := bson.M{}
		if q.StartTime != nil {
			window["$gte"] = *q.StartTime
		}
		if q.EndTime != nil {
			window["$lte"] = *q.EndTime
		}
		filter["timestamp"] = window
	}
	return filter
}

func stamp(e *model.RequestLog) {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
}
