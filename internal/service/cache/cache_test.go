//go:build !integration

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var _ CacheWithMetrics = (*RedisCache)(nil)

func TestMetrics_HitRate(t *testing.T) {
	tests := []struct {
		name    string
		metrics Metrics
		want    float64
	}{
		{name: "no lookups", metrics: Metrics{}, want: 0},
		{name: "all hits", metrics: Metrics{Hits: 4}, want: 100},
		{name: "all misses", metrics: Metrics{Misses: 3}, want: 0},
		{name: "mixed", metrics: Metrics{Hits: 3, Misses: 1}, want: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.metrics.HitRate(), 0.0001)
		})
	}
}
