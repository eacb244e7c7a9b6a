package model

import (
	"time"

	"github.com/google/uuid"
)

// UsageLimitModel tracks one free-tier counter for one user. A row is live
// while reset_date is in the future; a fresh window gets a fresh row.
type UsageLimitModel struct {
	UsageLimitID     uuid.UUID `gorm:"column:usage_limit_id;type:uuid;default:gen_random_uuid();primaryKey" json:"usage_limit_id"`
	UsageLimitUserID uuid.UUID `gorm:"column:usage_limit_user_id;type:uuid;not null;uniqueIndex:uq_usage_limits_user_feature_window" json:"usage_limit_user_id"`

	UsageLimitFeature   string    `gorm:"column:usage_limit_feature;type:varchar(50);not null;uniqueIndex:uq_usage_limits_user_feature_window" json:"usage_limit_feature"`
	UsageLimitUsedCount int       `gorm:"column:usage_limit_used_count;not null;default:0" json:"usage_limit_used_count"`
	UsageLimitResetDate time.Time `gorm:"column:usage_limit_reset_date;not null;uniqueIndex:uq_usage_limits_user_feature_window" json:"usage_limit_reset_date"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UsageLimitModel) TableName() string {
	return "usage_limits"
}
