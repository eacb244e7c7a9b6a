package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanEditAt(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := ReviewModel{CreatedAt: created}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"immediately after posting", created, true},
		{"one hour in", created.Add(time.Hour), true},
		{"exactly at the window boundary", created.Add(EditWindow), true},
		{"one second past the window", created.Add(EditWindow + time.Second), false},
		{"days later", created.AddDate(0, 0, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.CanEditAt(tt.now))
		})
	}
}

func TestValidAssignmentFrequency(t *testing.T) {
	for _, v := range []string{
		AssignmentFrequencyNone, AssignmentFrequencyLight, AssignmentFrequencyModerate,
		AssignmentFrequencyHeavy, AssignmentFrequencyVeryHeavy,
	} {
		assert.True(t, ValidAssignmentFrequency(v), v)
	}
	assert.False(t, ValidAssignmentFrequency("weekly"))
	assert.False(t, ValidAssignmentFrequency(""))
}

func TestValidGradingCriteria(t *testing.T) {
	for _, v := range []string{GradingCriteriaLenient, GradingCriteriaFair, GradingCriteriaStrict} {
		assert.True(t, ValidGradingCriteria(v), v)
	}
	assert.False(t, ValidGradingCriteria("harsh"))
}
