package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"campusreview_backend/internals/constants"
)

func TestWindowBoundsFor_Monthly(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	now := time.Date(2025, 3, 15, 18, 30, 0, 0, loc)

	start, reset := windowBoundsFor(constants.FeatureReviewsPerMonth, now)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, loc), reset)
}

func TestWindowBoundsFor_MonthlyYearRollover(t *testing.T) {
	now := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)

	start, reset := windowBoundsFor(constants.FeatureReviewsPerMonth, now)

	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), reset)
}

func TestWindowBoundsFor_Daily(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 1, 0, time.UTC)

	start, reset := windowBoundsFor(constants.FeatureSearchesPerDay, now)

	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), reset)
}

func TestUnlimitedResult(t *testing.T) {
	reset := time.Now().Add(24 * time.Hour)
	res := unlimitedResult(reset)

	assert.True(t, res.Allowed)
	assert.Equal(t, constants.Unlimited, res.Limit)
	assert.Equal(t, constants.Unlimited, res.Remaining)
	assert.Equal(t, reset, res.ResetDate)
}
