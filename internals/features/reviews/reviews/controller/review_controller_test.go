package controller

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "campusreview_backend/internals/helpers"
)

func TestReviewSortWhitelist(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "created_at DESC"},
		{"created_at", "created_at ASC"},
		{"-created_at", "created_at DESC"},
		{"helpful_count", "review_helpful_count ASC"},
		{"-helpful_count", "review_helpful_count DESC"},
		{"-overall_rating", "review_overall_rating DESC"},
		{"workload", "review_workload ASC"},
		{"review_user_id", "created_at DESC"}, // not whitelisted → default
	}

	for _, tt := range tests {
		got, err := helper.ResolveSort(tt.key, reviewSortColumns, "-created_at")
		require.NoError(t, err, "key=%q", tt.key)
		assert.Equal(t, tt.want, got, "key=%q", tt.key)
	}
}

func TestEditRejection(t *testing.T) {
	// Author inside the window edits freely.
	status, _ := editRejection(true, false, true)
	assert.Zero(t, status)

	// Author after the window: bad request, not an authorization failure.
	status, msg := editRejection(true, false, false)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, msg, "24 hours")

	// Someone else's review is forbidden regardless of the window.
	status, _ = editRejection(false, false, true)
	assert.Equal(t, fiber.StatusForbidden, status)

	// Admins bypass ownership and the window.
	status, _ = editRejection(false, true, false)
	assert.Zero(t, status)
}

func TestVoteRejection(t *testing.T) {
	author := uuid.New()
	voter := uuid.New()

	status, _ := voteRejection(author, voter)
	assert.Zero(t, status)

	status, msg := voteRejection(author, author)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, msg, "your own review")
}
