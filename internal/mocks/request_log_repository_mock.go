// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockRequestLogRepository struct {
	mock.Mock
}

func (m *MockRequestLogRepository) Create(ctx context.Context, entry *model.RequestLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRequestLogRepository) CreateMany(ctx context.Context, entries []*model.RequestLog) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockRequestLogRepository) Query(ctx context.Context, q model.RequestLogQuery) ([]*model.RequestLog, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RequestLog), args.Error(1)
}

func (m *MockRequestLogRepository) Count(ctx context.Context, q model.RequestLogQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}
