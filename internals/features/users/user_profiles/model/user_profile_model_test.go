package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsPremiumAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name    string
		flag    bool
		expires *time.Time
		want    bool
	}{
		{"flag off", false, nil, false},
		{"flag off with future expiry", false, &future, false},
		{"flag on, no expiry", true, nil, true},
		{"flag on, future expiry", true, &future, true},
		{"flag on, past expiry", true, &past, false},
		{"flag on, expiry exactly now", true, &now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := UserProfileModel{
				UserProfileIsPremium:        tt.flag,
				UserProfilePremiumExpiresAt: tt.expires,
			}
			assert.Equal(t, tt.want, u.IsPremiumAt(now))
		})
	}
}
