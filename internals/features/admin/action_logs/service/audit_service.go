package service

import (
	"log"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "campusreview_backend/internals/features/admin/action_logs/model"
)

// Record appends one audit row. Failures are logged and swallowed: the
// administrative action itself must never fail because the trail could not
// be written.
func Record(db *gorm.DB, adminID uuid.UUID, adminEmail, action, targetType string, targetID uuid.UUID, detail map[string]interface{}) {
	payload := datatypes.JSON([]byte(`{}`))
	if len(detail) > 0 {
		if b, err := sonic.Marshal(detail); err == nil {
			payload = datatypes.JSON(b)
		}
	}

	entry := model.AdminActionLogModel{
		AdminActionLogAdminID:    adminID,
		AdminActionLogAdminEmail: adminEmail,
		AdminActionLogAction:     action,
		AdminActionLogTargetType: targetType,
		AdminActionLogTargetID:   targetID,
		AdminActionLogDetail:     payload,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("[ERROR] audit log write: %v", err)
	}
}
