package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The counter row must be unique per (user, feature, window) so concurrent
// first-of-window requests merge into one row instead of splitting the count.
func TestUsageLimitWindowIndexIsUnique(t *testing.T) {
	typ := reflect.TypeOf(UsageLimitModel{})

	for _, name := range []string{"UsageLimitUserID", "UsageLimitFeature", "UsageLimitResetDate"} {
		field, ok := typ.FieldByName(name)
		require.True(t, ok, name)
		assert.Contains(t, field.Tag.Get("gorm"),
			"uniqueIndex:uq_usage_limits_user_feature_window", name)
	}
}
