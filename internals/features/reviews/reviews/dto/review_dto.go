package dto

import (
	"time"

	"github.com/google/uuid"

	model "campusreview_backend/internals/features/reviews/reviews/model"
	userModel "campusreview_backend/internals/features/users/user_profiles/model"
	helper "campusreview_backend/internals/helpers"
)

type CreateReviewRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`

	OverallRating int `json:"overall_rating" validate:"required,min=1,max=5"`
	Difficulty    int `json:"difficulty" validate:"required,min=1,max=5"`
	Workload      int `json:"workload" validate:"required,min=1,max=5"`

	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content string  `json:"content" validate:"required,min=10,max=2000"`
	Pros    *string `json:"pros" validate:"omitempty,max=1000"`
	Cons    *string `json:"cons" validate:"omitempty,max=1000"`
	Advice  *string `json:"advice" validate:"omitempty,max=1000"`

	AttendanceRequired  *bool   `json:"attendance_required"`
	TestDifficulty      *int    `json:"test_difficulty" validate:"omitempty,min=1,max=5"`
	AssignmentFrequency *string `json:"assignment_frequency" validate:"omitempty,oneof=none light moderate heavy very_heavy"`
	GradingCriteria     *string `json:"grading_criteria" validate:"omitempty,oneof=lenient fair strict"`
}

// ToModel snapshots the author's cohort into the review so later profile
// edits never change attribution.
func (r *CreateReviewRequest) ToModel(courseID, userID uuid.UUID, author *userModel.UserProfileModel) model.ReviewModel {
	m := model.ReviewModel{
		ReviewCourseID: courseID,
		ReviewUserID:   userID,

		ReviewOverallRating: r.OverallRating,
		ReviewDifficulty:    r.Difficulty,
		ReviewWorkload:      r.Workload,

		ReviewTitle:   r.Title,
		ReviewContent: r.Content,
		ReviewPros:    r.Pros,
		ReviewCons:    r.Cons,
		ReviewAdvice:  r.Advice,

		ReviewAttendanceRequired:  r.AttendanceRequired,
		ReviewTestDifficulty:      r.TestDifficulty,
		ReviewAssignmentFrequency: r.AssignmentFrequency,
		ReviewGradingCriteria:     r.GradingCriteria,
	}
	if author != nil {
		m.ReviewAnonymousAdmissionYear = author.UserProfileAdmissionYear
		m.ReviewAnonymousDepartment = author.UserProfileDepartment
	}
	return m
}

type UpdateReviewRequest struct {
	OverallRating *int `json:"overall_rating" validate:"omitempty,min=1,max=5"`
	Difficulty    *int `json:"difficulty" validate:"omitempty,min=1,max=5"`
	Workload      *int `json:"workload" validate:"omitempty,min=1,max=5"`

	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content" validate:"omitempty,min=10,max=2000"`
	Pros    *string `json:"pros" validate:"omitempty,max=1000"`
	Cons    *string `json:"cons" validate:"omitempty,max=1000"`
	Advice  *string `json:"advice" validate:"omitempty,max=1000"`

	AttendanceRequired  *bool   `json:"attendance_required"`
	TestDifficulty      *int    `json:"test_difficulty" validate:"omitempty,min=1,max=5"`
	AssignmentFrequency *string `json:"assignment_frequency" validate:"omitempty,oneof=none light moderate heavy very_heavy"`
	GradingCriteria     *string `json:"grading_criteria" validate:"omitempty,oneof=lenient fair strict"`
}

func (r *UpdateReviewRequest) ApplyToModel(m *model.ReviewModel) {
	if r.OverallRating != nil {
		m.ReviewOverallRating = *r.OverallRating
	}
	if r.Difficulty != nil {
		m.ReviewDifficulty = *r.Difficulty
	}
	if r.Workload != nil {
		m.ReviewWorkload = *r.Workload
	}
	if r.Title != nil {
		m.ReviewTitle = r.Title
	}
	if r.Content != nil {
		m.ReviewContent = *r.Content
	}
	if r.Pros != nil {
		m.ReviewPros = r.Pros
	}
	if r.Cons != nil {
		m.ReviewCons = r.Cons
	}
	if r.Advice != nil {
		m.ReviewAdvice = r.Advice
	}
	if r.AttendanceRequired != nil {
		m.ReviewAttendanceRequired = r.AttendanceRequired
	}
	if r.TestDifficulty != nil {
		m.ReviewTestDifficulty = r.TestDifficulty
	}
	if r.AssignmentFrequency != nil {
		m.ReviewAssignmentFrequency = r.AssignmentFrequency
	}
	if r.GradingCriteria != nil {
		m.ReviewGradingCriteria = r.GradingCriteria
	}
	m.UpdatedAt = time.Now()
}

type VoteRequest struct {
	IsHelpful *bool `json:"is_helpful" validate:"required"`
}

// ReviewResponse is a review plus the fields lists join in.
type ReviewResponse struct {
	model.ReviewModel
	CourseName       string `json:"course_name,omitempty"`
	CourseInstructor string `json:"course_instructor,omitempty"`
	// The caller's own vote on this review, when authenticated. Nil = none.
	MyVote *bool `json:"my_vote,omitempty"`
}

type ReviewListResponse struct {
	Reviews    []ReviewResponse  `json:"reviews"`
	Pagination helper.Pagination `json:"pagination"`
}

type VoteStats struct {
	HelpfulCount   int    `json:"helpful_count"`
	UnhelpfulCount int    `json:"unhelpful_count"`
	TotalVotes     int    `json:"total_votes"`
	UserVote       *bool  `json:"user_vote"`
	Action         string `json:"action,omitempty"`
}

type SearchReviewsQuery struct {
	CourseID            string
	UserID              string
	MinRating           int
	MaxRating           int
	MinDifficulty       int
	MaxDifficulty       int
	AssignmentFrequency string
	GradingCriteria     string
	AttendanceRequired  *bool
	Sort                string
}
