package repository

import (
	"context"

	"github.com/guttosm/quote-service/internal/domain/model"
)

// CostModelRepositoryInterface stores versioned cost models.
type CostModelRepositoryInterface interface {
	GetActive(ctx context.Context) (*CostModelVersion, error)
	Create(ctx context.Context, m model.CostModel, note, createdBy string) (*CostModelVersion, error)
	List(ctx context.Context, limit int) ([]CostModelVersion, error)
}

// ShareRepositoryInterface stores shared comparisons.
type ShareRepositoryInterface interface {
	Create(ctx context.Context, share *model.ComparisonShare) error
	Get(ctx context.Context, id string) (*model.ComparisonShare, error)
	IncrementViews(ctx context.Context, id string) (*model.ComparisonShare, error)
	Delete(ctx context.Context, id string) error
}

// RequestLogRepositoryInterface stores request logs.
type RequestLogRepositoryInterface interface {
	Create(ctx context.Context, entry *model.RequestLog) error
	CreateMany(ctx context.Context, entries []*model.RequestLog) error
	Query(ctx context.Context, q model.RequestLogQuery) ([]*model.RequestLog, error)
	Count(ctx context.Context, q model.RequestLogQuery) (int64, error)
}
