package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "campusreview_backend/internals/helpers"
)

func TestCourseSortWhitelist(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "created_at DESC"},
		{"name", "course_name ASC"},
		{"-average_rating", "course_average_rating DESC"},
		{"-average_difficulty", "course_average_difficulty DESC"},
		{"-average_workload", "course_average_workload DESC"},
		{"average_workload", "course_average_workload ASC"},
		{"total_reviews", "course_total_reviews ASC"},
		{"course_code", "created_at DESC"}, // not whitelisted → default
	}

	for _, tt := range tests {
		got, err := helper.ResolveSort(tt.key, courseSortColumns, "-created_at")
		require.NoError(t, err, "key=%q", tt.key)
		assert.Equal(t, tt.want, got, "key=%q", tt.key)
	}
}
