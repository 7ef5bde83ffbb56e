package service

import (
	"context"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/repository"
)

const (
	defaultLogQueryLimit = 100
	maxLogQueryLimit     = 1000
)

// RequestLogService persists and queries request logs.
type RequestLogService interface {
	Record(ctx context.Context, entry *model.RequestLog) error
	RecordBatch(ctx context.Context, entries []*model.RequestLog) error
	Query(ctx context.Context, q model.RequestLogQuery) ([]*model.RequestLog, int64, error)
}

// RequestLogServiceImpl implements RequestLogService.
type RequestLogServiceImpl struct {
	repo repository.RequestLogRepositoryInterface
}

// NewRequestLogService creates the service. It returns nil without a
// repository so callers can skip persistence entirely.
func NewRequestLogService(repo repository.RequestLogRepositoryInterface) RequestLogService {
	if repo == nil {
		return nil
	}
	return &RequestLogServiceImpl{repo: repo}
}

func (s *RequestLogServiceImpl) Record(ctx context.Context, entry *model.RequestLog) error {
	return s.repo.Create(ctx, entry)
}

func (s *RequestLogServiceImpl) RecordBatch(ctx context.Context, entries []*model.RequestLog) error {
	if len(entries) == 0 {
		return nil
	}
	return s.repo.CreateMany(ctx, entries)
}

// Query returns one page of matching logs and the total match count.
func (s *RequestLogServiceImpl) Query(ctx context.Context, q model.RequestLogQuery) ([]*model.RequestLog, int64, error) {
	switch {
	case q.Limit <= 0:
		q.Limit = defaultLogQueryLimit
	case q.Limit > maxLogQueryLimit:
		q.Limit = maxLogQueryLimit
	}
	if q.Skip < 0 {
		q.Skip = 0
	}

	entries, err := s.repo.Query(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
