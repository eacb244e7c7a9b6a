package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var courseSortColumns = map[string]string{
	"name":               "course_name",
	"average_rating":     "course_average_rating",
	"average_difficulty": "course_average_difficulty",
	"total_reviews":      "course_total_reviews",
	"created_at":         "created_at",
}

func TestResolveSort(t *testing.T) {
	tests := []struct {
		name    string
		sortKey string
		want    string
	}{
		{"plain key ascending", "name", "course_name ASC"},
		{"leading dash descending", "-average_rating", "course_average_rating DESC"},
		{"empty falls back to default", "", "created_at DESC"},
		{"unknown key falls back to default", "drop table", "created_at DESC"},
		{"aggregate key", "total_reviews", "course_total_reviews ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSort(tt.sortKey, courseSortColumns, "-created_at")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSort_NoDefault(t *testing.T) {
	_, err := ResolveSort("nope", map[string]string{}, "also_nope")
	require.Error(t, err)
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(2, 20, 45, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := BuildPagination(3, 20, 45, 5)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	empty := BuildPagination(1, 20, 0, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}
