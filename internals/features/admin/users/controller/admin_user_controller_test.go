package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserActions_ClosedSet(t *testing.T) {
	for _, action := range []string{
		"suspend", "activate", "delete", "upgrade_to_premium", "downgrade_to_free",
	} {
		_, ok := userActions[action]
		assert.True(t, ok, "missing action %s", action)
	}

	// Anything else must miss the table so the handler 400s.
	for _, action := range []string{"", "reset_password", "ban", "SUSPEND"} {
		_, ok := userActions[action]
		assert.False(t, ok, "unexpected action %s", action)
	}
}
