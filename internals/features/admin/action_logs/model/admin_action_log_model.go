package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdminActionLogModel is the append-only audit trail. Every administrative
// mutation writes one row; nothing ever updates or deletes them.
type AdminActionLogModel struct {
	AdminActionLogID uuid.UUID `gorm:"column:admin_action_log_id;type:uuid;default:gen_random_uuid();primaryKey" json:"admin_action_log_id"`

	AdminActionLogAdminID    uuid.UUID `gorm:"column:admin_action_log_admin_id;type:uuid;not null;index" json:"admin_action_log_admin_id"`
	AdminActionLogAdminEmail string    `gorm:"column:admin_action_log_admin_email;type:varchar(255);not null" json:"admin_action_log_admin_email"`

	AdminActionLogAction     string    `gorm:"column:admin_action_log_action;type:varchar(50);not null" json:"admin_action_log_action"`
	AdminActionLogTargetType string    `gorm:"column:admin_action_log_target_type;type:varchar(50);not null" json:"admin_action_log_target_type"`
	AdminActionLogTargetID   uuid.UUID `gorm:"column:admin_action_log_target_id;type:uuid;not null" json:"admin_action_log_target_id"`

	AdminActionLogDetail datatypes.JSON `gorm:"column:admin_action_log_detail;type:jsonb" json:"admin_action_log_detail,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AdminActionLogModel) TableName() string {
	return "admin_action_logs"
}
