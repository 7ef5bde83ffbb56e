//go:build !integration

package middleware

import (
	"context"
	"sync"

	"github.com/guttosm/quote-service/internal/domain/model"
)

// recordingLogService keeps persisted request logs in memory.
type recordingLogService struct {
	mu      sync.Mutex
	entries []*model.RequestLog
	batches int
	err     error
	block   chan struct{}
}

func (s *recordingLogService) Record(ctx context.Context, entry *model.RequestLog) error {
	return s.RecordBatch(ctx, []*model.RequestLog{entry})
}

func (s *recordingLogService) RecordBatch(_ context.Context, entries []*model.RequestLog) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches++
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *recordingLogService) Query(context.Context, model.RequestLogQuery) ([]*model.RequestLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries, int64(len(s.entries)), nil
}

func (s *recordingLogService) snapshot() []*model.RequestLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.RequestLog(nil), s.entries...)
}

func (s *recordingLogService) batchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batches
}
