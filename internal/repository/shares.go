package repository

import (
	"context"
	"errors"

	"github.com/guttosm/quote-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrShareNotFound is returned when no share exists for an id.
var ErrShareNotFound = errors.New("share not found")

// ShareRepository stores shared comparisons.
type ShareRepository struct {
	collection *mongo.Collection
}

// NewShareRepository creates a repository over the comparison_shares collection.
func NewShareRepository(db *MongoDB) *ShareRepository {
	return &ShareRepository{collection: db.Shares}
}

// Create inserts a share.
func (r *ShareRepository) Create(ctx context.Context, share *model.ComparisonShare) error {
	_, err := r.collection.InsertOne(ctx, share)
	return err
}

// Get loads a share by id.
func (r *ShareRepository) Get(ctx context.Context, id string) (*model.ComparisonShare, error) {
	var share model.ComparisonShare
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&share)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrShareNotFound
	}
	if err != nil {
		return nil, err
	}
	return &share, nil
}

// IncrementViews bumps the view counter and returns the updated share.
func (r *ShareRepository) IncrementViews(ctx context.Context, id string) (*model.ComparisonShare, error) {
	var share model.ComparisonShare
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&share)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrShareNotFound
	}
	if err != nil {
		return nil, err
	}
	return &share, nil
}

// Delete removes a share.
func (r *ShareRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrShareNotFound
	}
	return nil
}
