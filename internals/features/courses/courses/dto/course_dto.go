package dto

import (
	"time"

	"github.com/google/uuid"

	model "campusreview_backend/internals/features/courses/courses/model"
)

type CreateCourseRequest struct {
	CourseCode  string  `json:"course_code" validate:"required,max=50"`
	Name        string  `json:"name" validate:"required,max=255"`
	Instructor  string  `json:"instructor" validate:"required,max=255"`
	Department  *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Faculty     *string `json:"faculty,omitempty" validate:"omitempty,max=100"`
	Credits     int     `json:"credits" validate:"required,min=1,max=10"`
	Semester    *string `json:"semester,omitempty" validate:"omitempty,oneof=前期 後期 通年 集中"`
	Year        *int    `json:"year,omitempty" validate:"omitempty,min=2020,max=2030"`
	Category    *string `json:"category,omitempty" validate:"omitempty,oneof=必修 選択 自由"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	SyllabusURL *string `json:"syllabus_url,omitempty" validate:"omitempty,url"`

	// Self-service only: resubmit with true to create past the
	// similar-course warning.
	ConfirmOverride bool `json:"confirm_override,omitempty"`
}

// ToModel fills defaults the catalog guarantees: current year and first
// term when the caller leaves them out.
func (r *CreateCourseRequest) ToModel(universityID uuid.UUID, createdBy *uuid.UUID, now time.Time) model.CourseModel {
	year := now.Year()
	if r.Year != nil {
		year = *r.Year
	}
	semester := model.SemesterFirst
	if r.Semester != nil {
		semester = *r.Semester
	}
	return model.CourseModel{
		CourseUniversityID: universityID,
		CourseCode:         r.CourseCode,
		CourseName:         r.Name,
		CourseInstructor:   r.Instructor,
		CourseDepartment:   r.Department,
		CourseFaculty:      r.Faculty,
		CourseCategory:     r.Category,
		CourseSemester:     semester,
		CourseYear:         year,
		CourseCredits:      r.Credits,
		CourseDescription:  r.Description,
		CourseSyllabusURL:  r.SyllabusURL,
		CourseCreatedBy:    createdBy,
	}
}

type UpdateCourseRequest struct {
	CourseCode  *string `json:"course_code,omitempty" validate:"omitempty,max=50"`
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Instructor  *string `json:"instructor,omitempty" validate:"omitempty,max=255"`
	Department  *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Faculty     *string `json:"faculty,omitempty" validate:"omitempty,max=100"`
	Credits     *int    `json:"credits,omitempty" validate:"omitempty,min=1,max=10"`
	Semester    *string `json:"semester,omitempty" validate:"omitempty,oneof=前期 後期 通年 集中"`
	Year        *int    `json:"year,omitempty" validate:"omitempty,min=2020,max=2030"`
	Category    *string `json:"category,omitempty" validate:"omitempty,oneof=必修 選択 自由"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	SyllabusURL *string `json:"syllabus_url,omitempty" validate:"omitempty,url"`
}

func (r *UpdateCourseRequest) ApplyToModel(m *model.CourseModel) {
	if r.CourseCode != nil {
		m.CourseCode = *r.CourseCode
	}
	if r.Name != nil {
		m.CourseName = *r.Name
	}
	if r.Instructor != nil {
		m.CourseInstructor = *r.Instructor
	}
	if r.Department != nil {
		m.CourseDepartment = r.Department
	}
	if r.Faculty != nil {
		m.CourseFaculty = r.Faculty
	}
	if r.Credits != nil {
		m.CourseCredits = *r.Credits
	}
	if r.Semester != nil {
		m.CourseSemester = *r.Semester
	}
	if r.Year != nil {
		m.CourseYear = *r.Year
	}
	if r.Category != nil {
		m.CourseCategory = r.Category
	}
	if r.Description != nil {
		m.CourseDescription = r.Description
	}
	if r.SyllabusURL != nil {
		m.CourseSyllabusURL = r.SyllabusURL
	}
	m.UpdatedAt = time.Now()
}

// SearchCoursesQuery carries the parsed, already-validated search filters.
// All filters are conjunctive; absent filters match everything.
type SearchCoursesQuery struct {
	Search        string
	Department    string
	Faculty       string
	Instructor    string
	Category      string
	Semester      string
	Year          int
	Credits       int
	MinRating     float64
	MaxDifficulty float64
	Sort          string
}

// DuplicateCandidate is the trimmed shape returned with 409 responses.
type DuplicateCandidate struct {
	CourseID   uuid.UUID `json:"course_id"`
	CourseCode string    `json:"course_code"`
	Name       string    `json:"name"`
	Instructor string    `json:"instructor"`
	Year       int       `json:"year"`
	Semester   string    `json:"semester"`
}

func ToDuplicateCandidate(m model.CourseModel) DuplicateCandidate {
	return DuplicateCandidate{
		CourseID:   m.CourseID,
		CourseCode: m.CourseCode,
		Name:       m.CourseName,
		Instructor: m.CourseInstructor,
		Year:       m.CourseYear,
		Semester:   m.CourseSemester,
	}
}
