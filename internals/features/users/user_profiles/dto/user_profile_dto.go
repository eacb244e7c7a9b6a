package dto

import (
	"time"

	model "campusreview_backend/internals/features/users/user_profiles/model"
)

type UpdateProfileRequest struct {
	DisplayName   *string `json:"display_name" validate:"omitempty,min=1,max=50"`
	StudentID     *string `json:"student_id" validate:"omitempty,max=20"`
	AdmissionYear *int    `json:"admission_year" validate:"omitempty,min=1990,max=2035"`
	Department    *string `json:"department" validate:"omitempty,max=100"`
	Faculty       *string `json:"faculty" validate:"omitempty,max=100"`
}

func (r *UpdateProfileRequest) ApplyToModel(m *model.UserProfileModel) {
	if r.DisplayName != nil {
		m.UserProfileDisplayName = *r.DisplayName
	}
	if r.StudentID != nil {
		m.UserProfileStudentID = r.StudentID
	}
	if r.AdmissionYear != nil {
		m.UserProfileAdmissionYear = r.AdmissionYear
	}
	if r.Department != nil {
		m.UserProfileDepartment = r.Department
	}
	if r.Faculty != nil {
		m.UserProfileFaculty = r.Faculty
	}
	m.UpdatedAt = time.Now()
}

// ProfileResponse adds computed premium state to the raw row.
type ProfileResponse struct {
	model.UserProfileModel
	IsPremiumActive bool `json:"is_premium_active"`
}

func ToProfileResponse(m model.UserProfileModel, now time.Time) ProfileResponse {
	return ProfileResponse{
		UserProfileModel: m,
		IsPremiumActive:  m.IsPremiumAt(now),
	}
}
