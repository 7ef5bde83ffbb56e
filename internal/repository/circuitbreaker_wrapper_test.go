//go:build !integration

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/quote-service/internal/circuitbreaker"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/mocks"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errMongoDown = errors.New("server selection timeout")

func tripOnFirstFailure(name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		Name:             name,
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		IsSuccessful:     repository.IsExpectedError,
	})
}

func TestCostModelWrapper_GetActiveFallsBackWhenOpen(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockCostModelRepository)
	repo.On("GetActive", mock.Anything).Return(nil, errMongoDown).Once()

	wrapped := repository.NewCostModelRepositoryWithCircuitBreaker(repo, tripOnFirstFailure("cost_models"))

	_, err := wrapped.GetActive(ctx)
	require.ErrorIs(t, err, errMongoDown)
	require.True(t, wrapped.CircuitBreaker().IsOpen())

	v, err := wrapped.GetActive(ctx)
	assert.NoError(t, err)
	assert.Nil(t, v)
	repo.AssertNumberOfCalls(t, "GetActive", 1)
}

func TestCostModelWrapper_CreatePropagatesOpenCircuit(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockCostModelRepository)
	repo.On("List", mock.Anything, 5).Return(nil, errMongoDown).Once()

	wrapped := repository.NewCostModelRepositoryWithCircuitBreaker(repo, tripOnFirstFailure("cost_models"))
	_, _ = wrapped.List(ctx, 5)

	_, err := wrapped.Create(ctx, *model.DefaultCostModel(), "", "admin")
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestShareWrapper_NotFoundDoesNotTrip(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockShareRepository)
	repo.On("Get", mock.Anything, "missing").Return(nil, repository.ErrShareNotFound)
	repo.On("Get", mock.Anything, "abc").Return(&model.ComparisonShare{ID: "abc"}, nil)

	wrapped := repository.NewShareRepositoryWithCircuitBreaker(repo, tripOnFirstFailure("shares"))

	_, err := wrapped.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrShareNotFound)
	assert.False(t, wrapped.CircuitBreaker().IsOpen())

	share, err := wrapped.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", share.ID)
}

func TestRequestLogWrapper_DropsWritesWhenOpen(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockRequestLogRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errMongoDown).Once()

	wrapped := repository.NewRequestLogRepositoryWithCircuitBreaker(repo, tripOnFirstFailure("request_logs"))

	assert.ErrorIs(t, wrapped.Create(ctx, &model.RequestLog{Message: "first"}), errMongoDown)
	assert.NoError(t, wrapped.Create(ctx, &model.RequestLog{Message: "second"}))
	assert.NoError(t, wrapped.CreateMany(ctx, []*model.RequestLog{{Message: "third"}}))

	repo.AssertNumberOfCalls(t, "Create", 1)
	repo.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)

	_, err := wrapped.Count(ctx, model.RequestLogQuery{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
}
