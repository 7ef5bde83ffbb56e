//go:build integration

package circuitbreaker_test

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/quote-service/internal/circuitbreaker"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/guttosm/quote-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerWithMongoDB_Integration(t *testing.T) {
	ctx := context.Background()

	mongoContainer, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, mongoContainer.Cleanup(ctx))
	}()

	newBreaker := func(name string) *circuitbreaker.CircuitBreaker {
		return circuitbreaker.New(circuitbreaker.Config{
			Name:             name,
			FailureThreshold: 2,
			SuccessThreshold: 1,
			Timeout:          100 * time.Millisecond,
		})
	}

	t.Run("protects the cost model repository", func(t *testing.T) {
		db, err := repository.NewMongoDB(mongoContainer.URI, "test_cb_cost_models")
		require.NoError(t, err)
		defer func() {
			_ = db.Close(ctx)
		}()

		cb := newBreaker("test-cost-models")
		repo := repository.NewCostModelRepositoryWithCircuitBreaker(repository.NewCostModelRepository(db), cb)

		_, err = repo.Create(ctx, *model.DefaultCostModel(), "seed", "test")
		require.NoError(t, err)

		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, 1, active.Version)

		assert.Equal(t, circuitbreaker.StateClosed, cb.State())
		assert.True(t, cb.GetStats().Healthy)
	})

	t.Run("missing share is not a failure", func(t *testing.T) {
		db, err := repository.NewMongoDB(mongoContainer.URI, "test_cb_shares")
		require.NoError(t, err)
		defer func() {
			_ = db.Close(ctx)
		}()

		cb := circuitbreaker.New(circuitbreaker.Config{
			Name:             "test-shares",
			FailureThreshold: 1,
			SuccessThreshold: 1,
			Timeout:          time.Minute,
			IsSuccessful: func(err error) bool {
				return err == nil || repository.IsExpectedError(err)
			},
		})
		repo := repository.NewShareRepositoryWithCircuitBreaker(repository.NewShareRepository(db), cb)

		for i := 0; i < 3; i++ {
			_, err = repo.Get(ctx, "missing")
			assert.ErrorIs(t, err, repository.ErrShareNotFound)
		}
		assert.Equal(t, circuitbreaker.StateClosed, cb.State())
	})

	t.Run("opens when the database goes away and drops log writes", func(t *testing.T) {
		db, err := repository.NewMongoDB(mongoContainer.URI, "test_cb_logs")
		require.NoError(t, err)

		cb := newBreaker("test-logs")
		repo := repository.NewRequestLogRepositoryWithCircuitBreaker(repository.NewRequestLogRepository(db), cb)

		require.NoError(t, repo.Create(ctx, &model.RequestLog{Level: "info", Message: "before"}))
		require.NoError(t, db.Close(ctx))

		for i := 0; i < 2; i++ {
			_, err := repo.Query(ctx, model.RequestLogQuery{Limit: 1})
			assert.Error(t, err)
		}
		assert.True(t, cb.IsOpen())

		assert.NoError(t, repo.Create(ctx, &model.RequestLog{Level: "info", Message: "after"}),
			"log writes are dropped while the circuit is open")
		_, err = repo.Query(ctx, model.RequestLogQuery{Limit: 1})
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	})
}
