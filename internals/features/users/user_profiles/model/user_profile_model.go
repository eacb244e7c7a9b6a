package model

import (
	"time"

	"github.com/google/uuid"
)

// Account states driven by admin actions. No hard deletes.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
	UserStatusDeleted   = "deleted"
)

// UserProfileModel mirrors one row per external auth account. The primary
// key IS the auth provider's user id, so there is no local default.
type UserProfileModel struct {
	UserProfileID uuid.UUID `gorm:"column:user_profile_id;type:uuid;primaryKey" json:"user_profile_id"`

	UserProfileDisplayName string `gorm:"column:user_profile_display_name;type:varchar(50);not null" json:"user_profile_display_name"`
	UserProfileEmail       string `gorm:"column:user_profile_email;type:varchar(255);not null;unique" json:"user_profile_email"`

	UserProfileStudentID     *string `gorm:"column:user_profile_student_id;type:varchar(20)" json:"user_profile_student_id,omitempty"`
	UserProfileAdmissionYear *int    `gorm:"column:user_profile_admission_year" json:"user_profile_admission_year,omitempty"`
	UserProfileDepartment    *string `gorm:"column:user_profile_department;type:varchar(100)" json:"user_profile_department,omitempty"`
	UserProfileFaculty       *string `gorm:"column:user_profile_faculty;type:varchar(100)" json:"user_profile_faculty,omitempty"`

	UserProfileIsPremium        bool       `gorm:"column:user_profile_is_premium;not null;default:false" json:"user_profile_is_premium"`
	UserProfilePremiumExpiresAt *time.Time `gorm:"column:user_profile_premium_expires_at" json:"user_profile_premium_expires_at,omitempty"`
	UserProfileIsAdmin          bool       `gorm:"column:user_profile_is_admin;not null;default:false" json:"-"`
	UserProfileStatus           string     `gorm:"column:user_profile_status;type:varchar(20);not null;default:'active'" json:"user_profile_status"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserProfileModel) TableName() string {
	return "user_profiles"
}

// IsPremiumAt: premium flag set AND (no expiry OR expiry in the future).
func (u *UserProfileModel) IsPremiumAt(now time.Time) bool {
	if !u.UserProfileIsPremium {
		return false
	}
	if u.UserProfilePremiumExpiresAt == nil {
		return true
	}
	return u.UserProfilePremiumExpiresAt.After(now)
}

func (u *UserProfileModel) IsPremium() bool {
	return u.IsPremiumAt(time.Now())
}
