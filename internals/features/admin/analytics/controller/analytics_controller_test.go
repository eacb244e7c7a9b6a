package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTimeRange(t *testing.T) {
	assert.Equal(t, 7, resolveTimeRange("7d"))
	assert.Equal(t, 30, resolveTimeRange("30d"))
	assert.Equal(t, 90, resolveTimeRange("90d"))
	assert.Equal(t, 365, resolveTimeRange("1y"))
	assert.Equal(t, 30, resolveTimeRange(""))
	assert.Equal(t, 30, resolveTimeRange("2w"))
}
