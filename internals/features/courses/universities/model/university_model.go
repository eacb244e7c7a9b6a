package model

import (
	"time"

	"github.com/google/uuid"
)

// UniversityModel scopes course uniqueness. One row today; more once the
// service goes multi-campus.
type UniversityModel struct {
	UniversityID        uuid.UUID `gorm:"column:university_id;type:uuid;default:gen_random_uuid();primaryKey" json:"university_id"`
	UniversityName      string    `gorm:"column:university_name;type:varchar(255);not null" json:"university_name"`
	UniversityShortName string    `gorm:"column:university_short_name;type:varchar(50);not null" json:"university_short_name"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UniversityModel) TableName() string {
	return "universities"
}
