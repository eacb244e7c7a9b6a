package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestDecideVoteAction(t *testing.T) {
	tests := []struct {
		name      string
		existing  *bool
		isHelpful bool
		want      string
	}{
		{"first helpful vote", nil, true, VoteActionCreated},
		{"first unhelpful vote", nil, false, VoteActionCreated},
		{"repeat helpful removes", boolPtr(true), true, VoteActionRemoved},
		{"repeat unhelpful removes", boolPtr(false), false, VoteActionRemoved},
		{"helpful over unhelpful updates", boolPtr(false), true, VoteActionUpdated},
		{"unhelpful over helpful updates", boolPtr(true), false, VoteActionUpdated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecideVoteAction(tt.existing, tt.isHelpful))
		})
	}
}

// Alternating polarities must always resolve to a single row holding the
// latest value: create once, then update on every flip, never a second
// create and never a removal.
func TestDecideVoteAction_Alternating(t *testing.T) {
	var existing *bool

	assert.Equal(t, VoteActionCreated, DecideVoteAction(existing, true))
	existing = boolPtr(true)

	for _, next := range []bool{false, true, false, true} {
		assert.Equal(t, VoteActionUpdated, DecideVoteAction(existing, next))
		existing = boolPtr(next)
	}
}
