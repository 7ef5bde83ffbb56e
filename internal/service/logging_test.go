//go:build !integration

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/mocks"
	"github.com/guttosm/quote-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRequestLogService_NilRepository(t *testing.T) {
	assert.Nil(t, service.NewRequestLogService(nil))
}

func TestRequestLogService_Record(t *testing.T) {
	repo := new(mocks.MockRequestLogRepository)
	entry := &model.RequestLog{Message: "quote", Operation: "quote"}
	repo.On("Create", mock.Anything, entry).Return(nil).Once()

	svc := service.NewRequestLogService(repo)

	require.NoError(t, svc.Record(context.Background(), entry))
	repo.AssertExpectations(t)
}

func TestRequestLogService_RecordBatch(t *testing.T) {
	repo := new(mocks.MockRequestLogRepository)
	svc := service.NewRequestLogService(repo)

	require.NoError(t, svc.RecordBatch(context.Background(), nil))
	repo.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)

	entries := []*model.RequestLog{{Message: "a"}, {Message: "b"}}
	repo.On("CreateMany", mock.Anything, entries).Return(errors.New("write failed")).Once()
	assert.EqualError(t, svc.RecordBatch(context.Background(), entries), "write failed")
}

func TestRequestLogService_Query(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		skip      int
		wantLimit int
		wantSkip  int
	}{
		{"default limit", 0, 0, 100, 0},
		{"limit kept", 20, 40, 20, 40},
		{"limit capped", 5000, 0, 1000, 0},
		{"negative skip", 10, -3, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockRequestLogRepository)
			want := model.RequestLogQuery{Operation: "compare", Limit: tt.wantLimit, Skip: tt.wantSkip}
			repo.On("Query", mock.Anything, want).Return([]*model.RequestLog{{RequestID: "r1"}}, nil).Once()
			repo.On("Count", mock.Anything, want).Return(int64(41), nil).Once()

			svc := service.NewRequestLogService(repo)
			entries, total, err := svc.Query(context.Background(), model.RequestLogQuery{Operation: "compare", Limit: tt.limit, Skip: tt.skip})

			require.NoError(t, err)
			assert.Len(t, entries, 1)
			assert.Equal(t, int64(41), total)
			repo.AssertExpectations(t)
		})
	}
}

func TestRequestLogService_QueryError(t *testing.T) {
	repo := new(mocks.MockRequestLogRepository)
	repo.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("down")).Once()

	_, _, err := service.NewRequestLogService(repo).Query(context.Background(), model.RequestLogQuery{})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}
