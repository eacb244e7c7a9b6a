package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewVoteModel is one user's helpful/unhelpful signal on one review.
// (review_vote_review_id, review_vote_user_id) is unique; the vote endpoint
// upserts against that pair so check-then-write races collapse into one row.
type ReviewVoteModel struct {
	ReviewVoteID       uuid.UUID `gorm:"column:review_vote_id;type:uuid;default:gen_random_uuid();primaryKey" json:"review_vote_id"`
	ReviewVoteReviewID uuid.UUID `gorm:"column:review_vote_review_id;type:uuid;not null;uniqueIndex:uq_review_votes_review_user,priority:1" json:"review_vote_review_id"`
	ReviewVoteUserID   uuid.UUID `gorm:"column:review_vote_user_id;type:uuid;not null;uniqueIndex:uq_review_votes_review_user,priority:2" json:"review_vote_user_id"`

	ReviewVoteIsHelpful bool `gorm:"column:review_vote_is_helpful;not null" json:"review_vote_is_helpful"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ReviewVoteModel) TableName() string {
	return "review_votes"
}

// Vote outcomes reported to the caller.
const (
	VoteActionCreated = "created"
	VoteActionUpdated = "updated"
	VoteActionRemoved = "removed"
)

// DecideVoteAction resolves what a new vote does against the voter's
// existing vote (nil = none): same polarity toggles off, opposite polarity
// updates in place, absence creates.
func DecideVoteAction(existing *bool, isHelpful bool) string {
	if existing == nil {
		return VoteActionCreated
	}
	if *existing == isHelpful {
		return VoteActionRemoved
	}
	return VoteActionUpdated
}
