package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGrowthPercent(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		previous int64
		want     float64
	}{
		{"doubled", 200, 100, 100},
		{"half up", 150, 100, 50},
		{"flat", 100, 100, 0},
		{"shrank", 50, 100, -50},
		{"previous zero reports zero", 42, 0, 0},
		{"both zero", 0, 0, 0},
		{"dropped to zero", 0, 80, -100},
		{"fractional", 1, 3, -66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, GrowthPercent(tt.current, tt.previous), 0.001)
		})
	}
}

func TestMonthKey_DayKey(t *testing.T) {
	ts := time.Date(2025, 7, 9, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2025-07", MonthKey(ts))
	assert.Equal(t, "2025-07-09", DayKey(ts))
}
