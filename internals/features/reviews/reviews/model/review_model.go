package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	AssignmentFrequencyNone      = "none"
	AssignmentFrequencyLight     = "light"
	AssignmentFrequencyModerate  = "moderate"
	AssignmentFrequencyHeavy     = "heavy"
	AssignmentFrequencyVeryHeavy = "very_heavy"

	GradingCriteriaLenient = "lenient"
	GradingCriteriaFair    = "fair"
	GradingCriteriaStrict  = "strict"
)

// EditWindow is how long the author may edit their own review. Admins are
// exempt. Boundary is inclusive: an edit at exactly 24h still goes through.
const EditWindow = 24 * time.Hour

// ReviewModel is one student's structured evaluation of one course.
// (review_course_id, review_user_id) carries a unique index so a concurrent
// double-submit can never produce two rows.
type ReviewModel struct {
	ReviewID       uuid.UUID `gorm:"column:review_id;type:uuid;default:gen_random_uuid();primaryKey" json:"review_id"`
	ReviewCourseID uuid.UUID `gorm:"column:review_course_id;type:uuid;not null;uniqueIndex:uq_reviews_course_user,priority:1" json:"review_course_id"`
	ReviewUserID   uuid.UUID `gorm:"column:review_user_id;type:uuid;not null;uniqueIndex:uq_reviews_course_user,priority:2" json:"review_user_id"`

	ReviewOverallRating int `gorm:"column:review_overall_rating;not null;check:review_overall_rating BETWEEN 1 AND 5" json:"review_overall_rating"`
	ReviewDifficulty    int `gorm:"column:review_difficulty;not null;check:review_difficulty BETWEEN 1 AND 5" json:"review_difficulty"`
	ReviewWorkload      int `gorm:"column:review_workload;not null;check:review_workload BETWEEN 1 AND 5" json:"review_workload"`

	ReviewTitle   *string `gorm:"column:review_title;type:varchar(200)" json:"review_title,omitempty"`
	ReviewContent string  `gorm:"column:review_content;type:text;not null" json:"review_content"`
	ReviewPros    *string `gorm:"column:review_pros;type:text" json:"review_pros,omitempty"`
	ReviewCons    *string `gorm:"column:review_cons;type:text" json:"review_cons,omitempty"`
	ReviewAdvice  *string `gorm:"column:review_advice;type:text" json:"review_advice,omitempty"`

	ReviewAttendanceRequired  *bool   `gorm:"column:review_attendance_required" json:"review_attendance_required,omitempty"`
	ReviewTestDifficulty      *int    `gorm:"column:review_test_difficulty;check:review_test_difficulty BETWEEN 1 AND 5" json:"review_test_difficulty,omitempty"`
	ReviewAssignmentFrequency *string `gorm:"column:review_assignment_frequency;type:varchar(20)" json:"review_assignment_frequency,omitempty"`
	ReviewGradingCriteria     *string `gorm:"column:review_grading_criteria;type:varchar(20)" json:"review_grading_criteria,omitempty"`

	// Snapshot of the author's cohort at authoring time. Display attribution
	// never changes when the profile is edited later.
	ReviewAnonymousAdmissionYear *int    `gorm:"column:review_anonymous_admission_year" json:"review_anonymous_admission_year,omitempty"`
	ReviewAnonymousDepartment    *string `gorm:"column:review_anonymous_department;type:varchar(100)" json:"review_anonymous_department,omitempty"`

	ReviewHelpfulCount   int `gorm:"column:review_helpful_count;not null;default:0" json:"review_helpful_count"`
	ReviewUnhelpfulCount int `gorm:"column:review_unhelpful_count;not null;default:0" json:"review_unhelpful_count"`

	ReviewIsFlagged bool `gorm:"column:review_is_flagged;not null;default:false" json:"review_is_flagged"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// CanEditAt reports whether the author may still edit at `now`.
func (r *ReviewModel) CanEditAt(now time.Time) bool {
	return now.Sub(r.CreatedAt) <= EditWindow
}

func ValidAssignmentFrequency(v string) bool {
	switch v {
	case AssignmentFrequencyNone, AssignmentFrequencyLight, AssignmentFrequencyModerate,
		AssignmentFrequencyHeavy, AssignmentFrequencyVeryHeavy:
		return true
	}
	return false
}

func ValidGradingCriteria(v string) bool {
	switch v {
	case GradingCriteriaLenient, GradingCriteriaFair, GradingCriteriaStrict:
		return true
	}
	return false
}
