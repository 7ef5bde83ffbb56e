package repository

import (
	"context"
	"errors"

	"github.com/guttosm/quote-service/internal/circuitbreaker"
	"github.com/guttosm/quote-service/internal/domain/model"
)

// IsExpectedError reports repository errors that say nothing about the
// health of the database.
func IsExpectedError(err error) bool {
	return errors.Is(err, ErrShareNotFound)
}

// CostModelRepositoryWithCircuitBreaker guards CostModelRepositoryInterface.
type CostModelRepositoryWithCircuitBreaker struct {
	repo CostModelRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewCostModelRepositoryWithCircuitBreaker wraps repo.
func NewCostModelRepositoryWithCircuitBreaker(repo CostModelRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CostModelRepositoryWithCircuitBreaker {
	return &CostModelRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

// GetActive returns nil while the circuit is open so callers fall back to
// the built-in cost model.
func (r *CostModelRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*CostModelVersion, error) {
	v, err := circuitbreaker.Do(ctx, r.cb, r.repo.GetActive)
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return v, err
}

func (r *CostModelRepositoryWithCircuitBreaker) Create(ctx context.Context, m model.CostModel, note, createdBy string) (*CostModelVersion, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) (*CostModelVersion, error) {
		return r.repo.Create(ctx, m, note, createdBy)
	})
}

func (r *CostModelRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]CostModelVersion, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) ([]CostModelVersion, error) {
		return r.repo.List(ctx, limit)
	})
}

// CircuitBreaker returns the breaker for health reporting.
func (r *CostModelRepositoryWithCircuitBreaker) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// ShareRepositoryWithCircuitBreaker guards ShareRepositoryInterface.
// ErrShareNotFound does not count as a failure when the breaker is built
// with IsExpectedError.
type ShareRepositoryWithCircuitBreaker struct {
	repo ShareRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewShareRepositoryWithCircuitBreaker wraps repo.
func NewShareRepositoryWithCircuitBreaker(repo ShareRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ShareRepositoryWithCircuitBreaker {
	return &ShareRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *ShareRepositoryWithCircuitBreaker) Create(ctx context.Context, share *model.ComparisonShare) error {
	return r.cb.Execute(ctx, func() error {
		return r.repo.Create(ctx, share)
	})
}

func (r *ShareRepositoryWithCircuitBreaker) Get(ctx context.Context, id string) (*model.ComparisonShare, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) (*model.ComparisonShare, error) {
		return r.repo.Get(ctx, id)
	})
}

func (r *ShareRepositoryWithCircuitBreaker) IncrementViews(ctx context.Context, id string) (*model.ComparisonShare, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) (*model.ComparisonShare, error) {
		return r.repo.IncrementViews(ctx, id)
	})
}

func (r *ShareRepositoryWithCircuitBreaker) Delete(ctx context.Context, id string) error {
	return r.cb.Execute(ctx, func() error {
		return r.repo.Delete(ctx, id)
	})
}

// CircuitBreaker returns the breaker for health reporting.
func (r *ShareRepositoryWithCircuitBreaker) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// RequestLogRepositoryWithCircuitBreaker guards RequestLogRepositoryInterface.
// Writes are dropped silently while the circuit is open.
type RequestLogRepositoryWithCircuitBreaker struct {
	repo RequestLogRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewRequestLogRepositoryWithCircuitBreaker wraps repo.
func NewRequestLogRepositoryWithCircuitBreaker(repo RequestLogRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *RequestLogRepositoryWithCircuitBreaker {
	return &RequestLogRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *RequestLogRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.RequestLog) error {
	err := r.cb.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *RequestLogRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.RequestLog) error {
	err := r.cb.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *RequestLogRepositoryWithCircuitBreaker) Query(ctx context.Context, q model.RequestLogQuery) ([]*model.RequestLog, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) ([]*model.RequestLog, error) {
		return r.repo.Query(ctx, q)
	})
}

func (r *RequestLogRepositoryWithCircuitBreaker) Count(ctx context.Context, q model.RequestLogQuery) (int64, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) (int64, error) {
		return r.repo.Count(ctx, q)
	})
}

// CircuitBreaker returns the breaker for health reporting.
func (r *RequestLogRepositoryWithCircuitBreaker) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

var (
	_ CostModelRepositoryInterface  = (*CostModelRepositoryWithCircuitBreaker)(nil)
	_ ShareRepositoryInterface      = (*ShareRepositoryWithCircuitBreaker)(nil)
	_ RequestLogRepositoryInterface = (*RequestLogRepositoryWithCircuitBreaker)(nil)
	_ CostModelRepositoryInterface  = (*CostModelRepository)(nil)
	_ ShareRepositoryInterface      = (*ShareRepository)(nil)
	_ RequestLogRepositoryInterface = (*RequestLogRepository)(nil)
)
