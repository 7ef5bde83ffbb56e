package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CostModelVersion is a stored cost model. Exactly one version is active.
type CostModelVersion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Version   int                `bson:"version" json:"version"`
	Active    bool               `bson:"active" json:"active"`
	Model     model.CostModel    `bson:"model" json:"model"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedBy string             `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// CostModelRepository stores versioned cost models.
type CostModelRepository struct {
	collection *mongo.Collection
}

// NewCostModelRepository creates a repository over the cost_models collection.
func NewCostModelRepository(db *MongoDB) *CostModelRepository {
	return &CostModelRepository{collection: db.CostModels}
}

// GetActive returns the active version, or nil when none is stored.
func (r *CostModelRepository) GetActive(ctx context.Context) (*CostModelVersion, error) {
	var v CostModelVersion
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create stores a new version and makes it the active one.
func (r *CostModelRepository) Create(ctx context.Context, m model.CostModel, note, createdBy string) (*CostModelVersion, error) {
	var latest CostModelVersion
	err := r.collection.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})).Decode(&latest)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	v := CostModelVersion{
		ID:        primitive.NewObjectID(),
		Version:   latest.Version + 1,
		Active:    true,
		Model:     m,
		Note:      note,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, v); err != nil {
		return nil, err
	}

	if _, err := r.collection.UpdateMany(ctx,
		bson.M{"active": true, "_id": bson.M{"$ne": v.ID}},
		bson.M{"$set": bson.M{"active": false}},
	); err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns stored versions, newest first.
func (r *CostModelRepository) List(ctx context.Context, limit int) ([]CostModelVersion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	versions := []CostModelVersion{}
	if err := cursor.All(ctx, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}
