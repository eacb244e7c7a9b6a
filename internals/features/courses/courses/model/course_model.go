package model

import (
	"time"

	"github.com/google/uuid"
)

// Course category and semester vocabularies (course catalogs publish these
// in Japanese).
const (
	SemesterFirst     = "前期"
	SemesterSecond    = "後期"
	SemesterFullYear  = "通年"
	SemesterIntensive = "集中"

	CategoryRequired = "必修"
	CategoryElective = "選択"
	CategoryFree     = "自由"
)

// CourseModel carries the catalog fields plus the derived review aggregates.
// Aggregates are recomputed from reviews after every review mutation; they
// are cached here for search/sort, never edited directly.
type CourseModel struct {
	CourseID           uuid.UUID `gorm:"column:course_id;type:uuid;default:gen_random_uuid();primaryKey" json:"course_id"`
	CourseUniversityID uuid.UUID `gorm:"column:course_university_id;type:uuid;not null;uniqueIndex:uq_courses_offering,priority:1" json:"course_university_id"`

	CourseCode       string  `gorm:"column:course_code;type:varchar(50);not null;uniqueIndex:uq_courses_offering,priority:2" json:"course_code"`
	CourseName       string  `gorm:"column:course_name;type:varchar(255);not null" json:"course_name"`
	CourseInstructor string  `gorm:"column:course_instructor;type:varchar(255);not null" json:"course_instructor"`
	CourseDepartment *string `gorm:"column:course_department;type:varchar(100)" json:"course_department,omitempty"`
	CourseFaculty    *string `gorm:"column:course_faculty;type:varchar(100)" json:"course_faculty,omitempty"`
	CourseCategory   *string `gorm:"column:course_category;type:varchar(20)" json:"course_category,omitempty"`

	CourseSemester string `gorm:"column:course_semester;type:varchar(20);not null;uniqueIndex:uq_courses_offering,priority:4" json:"course_semester"`
	CourseYear     int    `gorm:"column:course_year;not null;uniqueIndex:uq_courses_offering,priority:3" json:"course_year"`
	CourseCredits  int    `gorm:"column:course_credits;not null;check:course_credits BETWEEN 1 AND 10" json:"course_credits"`

	CourseDescription *string `gorm:"column:course_description;type:text" json:"course_description,omitempty"`
	CourseSyllabusURL *string `gorm:"column:course_syllabus_url;type:text" json:"course_syllabus_url,omitempty"`

	// Derived aggregates; NULL while the course has no reviews.
	CourseTotalReviews      int      `gorm:"column:course_total_reviews;not null;default:0" json:"course_total_reviews"`
	CourseAverageRating     *float64 `gorm:"column:course_average_rating;type:numeric(3,2)" json:"course_average_rating,omitempty"`
	CourseAverageDifficulty *float64 `gorm:"column:course_average_difficulty;type:numeric(3,2)" json:"course_average_difficulty,omitempty"`
	CourseAverageWorkload   *float64 `gorm:"column:course_average_workload;type:numeric(3,2)" json:"course_average_workload,omitempty"`

	CourseCreatedBy *uuid.UUID `gorm:"column:course_created_by;type:uuid" json:"course_created_by,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CourseModel) TableName() string {
	return "courses"
}
