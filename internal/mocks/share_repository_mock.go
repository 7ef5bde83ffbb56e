// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockShareRepository struct {
	mock.Mock
}

func (m *MockShareRepository) Create(ctx context.Context, share *model.ComparisonShare) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockShareRepository) Get(ctx context.Context, id string) (*model.ComparisonShare, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ComparisonShare), args.Error(1)
}

func (m *MockShareRepository) IncrementViews(ctx context.Context, id string) (*model.ComparisonShare, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ComparisonShare), args.Error(1)
}

func (m *MockShareRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
