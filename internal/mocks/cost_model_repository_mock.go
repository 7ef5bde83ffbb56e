// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCostModelRepository struct {
	mock.Mock
}

func (m *MockCostModelRepository) GetActive(ctx context.Context) (*repository.CostModelVersion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CostModelVersion), args.Error(1)
}

func (m *MockCostModelRepository) Create(ctx context.Context, cm model.CostModel, note, createdBy string) (*repository.CostModelVersion, error) {
	args := m.Called(ctx, cm, note, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CostModelVersion), args.Error(1)
}

func (m *MockCostModelRepository) List(ctx context.Context, limit int) ([]repository.CostModelVersion, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CostModelVersion), args.Error(1)
}
