package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	usageService "campusreview_backend/internals/features/billing/usage_limits/service"
	courseModel "campusreview_backend/internals/features/courses/courses/model"
	courseService "campusreview_backend/internals/features/courses/courses/service"
	voteModel "campusreview_backend/internals/features/reviews/review_votes/model"
	dto "campusreview_backend/internals/features/reviews/reviews/dto"
	model "campusreview_backend/internals/features/reviews/reviews/model"
	userModel "campusreview_backend/internals/features/users/user_profiles/model"
	helper "campusreview_backend/internals/helpers"
)

var validate = validator.New()

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

// editRejection classifies a disallowed edit, zero status when it may
// proceed. Non-owners are forbidden; an expired window is a validation
// failure for the author. Admins bypass both.
func editRejection(isOwner, isAdmin, withinWindow bool) (int, string) {
	if !isOwner && !isAdmin {
		return fiber.StatusForbidden, "You can only edit your own review"
	}
	if !isAdmin && !withinWindow {
		return fiber.StatusBadRequest, "Reviews can only be edited within 24 hours of posting"
	}
	return 0, ""
}

// voteRejection rejects voting on one's own review as a validation failure.
func voteRejection(authorID, voterID uuid.UUID) (int, string) {
	if authorID == voterID {
		return fiber.StatusBadRequest, "You cannot vote on your own review"
	}
	return 0, ""
}

/* =========================================================
   POST /api/u/reviews
========================================================= */

func (h *ReviewController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var course courseModel.CourseModel
	if err := h.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch course")
	}

	res, err := usageService.CheckAndIncrement(h.DB, userID, usageService.FeatureReviews)
	if err != nil {
		log.Printf("[ERROR] review counter: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to check usage")
	}
	if !res.Allowed {
		return helper.ErrorWithDetails(c, fiber.StatusTooManyRequests,
			"Monthly review limit reached", fiber.Map{
				"limit":      res.Limit,
				"used":       res.Used,
				"reset_date": res.ResetDate,
			})
	}

	var author userModel.UserProfileModel
	if err := h.DB.First(&author, "user_profile_id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch profile")
	}

	review := req.ToModel(courseID, userID, &author)

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return courseService.RecalcCourseAggregates(tx, courseID)
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "You have already reviewed this course")
		}
		log.Printf("[ERROR] review create: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create review")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Review created", review)
}

/* =========================================================
   PUT /api/u/reviews/:id — author within the edit window, or admin
========================================================= */

func (h *ReviewController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid review ID")
	}

	var req dto.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var review model.ReviewModel
	if err := h.DB.First(&review, "review_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Review not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch review")
	}

	isAdmin := helper.IsAdminFromToken(c)
	if status, msg := editRejection(review.ReviewUserID == userID, isAdmin, review.CanEditAt(time.Now())); status != 0 {
		return helper.Error(c, status, msg)
	}

	req.ApplyToModel(&review)

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&review).Error; err != nil {
			return err
		}
		return courseService.RecalcCourseAggregates(tx, review.ReviewCourseID)
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update review")
	}

	return helper.Success(c, "Review updated", review)
}

/* =========================================================
   DELETE /api/u/reviews/:id — author or admin
========================================================= */

func (h *ReviewController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid review ID")
	}

	var review model.ReviewModel
	if err := h.DB.First(&review, "review_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Review not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch review")
	}

	if review.ReviewUserID != userID && !helper.IsAdminFromToken(c) {
		return helper.Error(c, fiber.StatusForbidden, "You can only delete your own review")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_vote_review_id = ?", id).
			Delete(&voteModel.ReviewVoteModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return courseService.RecalcCourseAggregates(tx, review.ReviewCourseID)
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete review")
	}

	return helper.Success(c, "Review deleted", nil)
}

/* =========================================================
   GET /api/public/reviews/:id
========================================================= */

func (h *ReviewController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid review ID")
	}

	var review model.ReviewModel
	if err := h.DB.First(&review, "review_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Review not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch review")
	}

	resp := dto.ReviewResponse{ReviewModel: review}
	if viewerID := helper.GetUserIDFromTokenOptional(c); viewerID != uuid.Nil {
		resp.MyVote = h.lookupMyVote(id, viewerID)
	}

	return helper.Success(c, "OK", resp)
}

/* =========================================================
   GET /api/public/reviews — search / sort / paginate
========================================================= */

var reviewSortColumns = map[string]string{
	"created_at":     "created_at",
	"updated_at":     "updated_at",
	"overall_rating": "review_overall_rating",
	"difficulty":     "review_difficulty",
	"workload":       "review_workload",
	"helpful_count":  "review_helpful_count",
}

func (h *ReviewController) Search(c *fiber.Ctx) error {
	q, err := parseReviewSearchQuery(c)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&model.ReviewModel{})
	applyReviewFilters(tx, q)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	orderBy, err := helper.ResolveSort(q.Sort, reviewSortColumns, "-created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	type reviewWithCourse struct {
		model.ReviewModel
		CourseName       string `gorm:"column:course_name"`
		CourseInstructor string `gorm:"column:course_instructor"`
	}

	var rows []reviewWithCourse
	if err := tx.
		Select("reviews.*, courses.course_name, courses.course_instructor").
		Joins("JOIN courses ON courses.course_id = reviews.review_course_id").
		Order("reviews." + orderBy).
		Limit(paging.Limit).Offset(paging.Offset).
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	reviews := make([]model.ReviewModel, 0, len(rows))
	for _, r := range rows {
		reviews = append(reviews, r.ReviewModel)
	}
	myVotes := h.lookupMyVotes(reviews, helper.GetUserIDFromTokenOptional(c))

	items := make([]dto.ReviewResponse, 0, len(rows))
	for _, r := range rows {
		item := dto.ReviewResponse{
			ReviewModel:      r.ReviewModel,
			CourseName:       r.CourseName,
			CourseInstructor: r.CourseInstructor,
		}
		if v, ok := myVotes[r.ReviewID]; ok {
			item.MyVote = &v
		}
		items = append(items, item)
	}

	return helper.Success(c, "OK", dto.ReviewListResponse{
		Reviews:    items,
		Pagination: helper.BuildPagination(paging.Page, paging.PerPage, total, len(items)),
	})
}

func parseReviewSearchQuery(c *fiber.Ctx) (dto.SearchReviewsQuery, error) {
	q := dto.SearchReviewsQuery{
		CourseID:            strings.TrimSpace(c.Query("course_id")),
		UserID:              strings.TrimSpace(c.Query("user_id")),
		AssignmentFrequency: strings.TrimSpace(c.Query("assignment_frequency")),
		GradingCriteria:     strings.TrimSpace(c.Query("grading_criteria")),
		Sort:                strings.TrimSpace(c.Query("sort")),
	}
	if q.CourseID != "" {
		if _, err := uuid.Parse(q.CourseID); err != nil {
			return q, errors.New("course_id must be a UUID")
		}
	}
	if q.UserID != "" {
		if _, err := uuid.Parse(q.UserID); err != nil {
			return q, errors.New("user_id must be a UUID")
		}
	}
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"min_rating", &q.MinRating},
		{"max_rating", &q.MaxRating},
		{"min_difficulty", &q.MinDifficulty},
		{"max_difficulty", &q.MaxDifficulty},
	} {
		raw := c.Query(f.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 5 {
			return q, errors.New(f.name + " must be between 1 and 5")
		}
		*f.dst = n
	}
	if q.AssignmentFrequency != "" && !model.ValidAssignmentFrequency(q.AssignmentFrequency) {
		return q, errors.New("invalid assignment_frequency")
	}
	if q.GradingCriteria != "" && !model.ValidGradingCriteria(q.GradingCriteria) {
		return q, errors.New("invalid grading_criteria")
	}
	if raw := c.Query("attendance_required"); raw != "" {
		v := raw == "true"
		q.AttendanceRequired = &v
	}
	return q, nil
}

func applyReviewFilters(tx *gorm.DB, q dto.SearchReviewsQuery) {
	if q.CourseID != "" {
		tx.Where("review_course_id = ?", q.CourseID)
	}
	if q.UserID != "" {
		tx.Where("review_user_id = ?", q.UserID)
	}
	if q.MinRating != 0 {
		tx.Where("review_overall_rating >= ?", q.MinRating)
	}
	if q.MaxRating != 0 {
		tx.Where("review_overall_rating <= ?", q.MaxRating)
	}
	if q.MinDifficulty != 0 {
		tx.Where("review_difficulty >= ?", q.MinDifficulty)
	}
	if q.MaxDifficulty != 0 {
		tx.Where("review_difficulty <= ?", q.MaxDifficulty)
	}
	if q.AssignmentFrequency != "" {
		tx.Where("review_assignment_frequency = ?", q.AssignmentFrequency)
	}
	if q.GradingCriteria != "" {
		tx.Where("review_grading_criteria = ?", q.GradingCriteria)
	}
	if q.AttendanceRequired != nil {
		tx.Where("review_attendance_required = ?", *q.AttendanceRequired)
	}
}

/* =========================================================
   GET /api/u/reviews/mine
========================================================= */

func (h *ReviewController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&model.ReviewModel{}).Where("review_user_id = ?", userID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	type reviewWithCourse struct {
		model.ReviewModel
		CourseName       string `gorm:"column:course_name"`
		CourseInstructor string `gorm:"column:course_instructor"`
	}

	var rows []reviewWithCourse
	if err := tx.
		Select("reviews.*, courses.course_name, courses.course_instructor").
		Joins("JOIN courses ON courses.course_id = reviews.review_course_id").
		Order("reviews.created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	items := make([]dto.ReviewResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ReviewResponse{
			ReviewModel:      r.ReviewModel,
			CourseName:       r.CourseName,
			CourseInstructor: r.CourseInstructor,
		})
	}

	return helper.Success(c, "OK", dto.ReviewListResponse{
		Reviews:    items,
		Pagination: helper.BuildPagination(paging.Page, paging.PerPage, total, len(items)),
	})
}

/* =========================================================
   POST /api/u/reviews/:id/vote — toggle / switch / create
========================================================= */

func (h *ReviewController) Vote(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid review ID")
	}

	var req dto.VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	isHelpful := *req.IsHelpful

	var review model.ReviewModel
	if err := h.DB.First(&review, "review_id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Review not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch review")
	}
	if status, msg := voteRejection(review.ReviewUserID, userID); status != 0 {
		return helper.Error(c, status, msg)
	}

	var action string
	var stats dto.VoteStats

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var existing voteModel.ReviewVoteModel
		var existingPolarity *bool
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("review_vote_review_id = ? AND review_vote_user_id = ?", reviewID, userID).
			First(&existing).Error
		switch {
		case err == nil:
			existingPolarity = &existing.ReviewVoteIsHelpful
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		action = voteModel.DecideVoteAction(existingPolarity, isHelpful)

		switch action {
		case voteModel.VoteActionCreated:
			vote := voteModel.ReviewVoteModel{
				ReviewVoteReviewID:  reviewID,
				ReviewVoteUserID:    userID,
				ReviewVoteIsHelpful: isHelpful,
			}
			// On a lost race the unique pair already exists; flip it instead.
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "review_vote_review_id"},
					{Name: "review_vote_user_id"},
				},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"review_vote_is_helpful": isHelpful,
				}),
			}).Create(&vote).Error; err != nil {
				return err
			}
		case voteModel.VoteActionUpdated:
			if err := tx.Model(&voteModel.ReviewVoteModel{}).
				Where("review_vote_id = ?", existing.ReviewVoteID).
				Update("review_vote_is_helpful", isHelpful).Error; err != nil {
				return err
			}
		case voteModel.VoteActionRemoved:
			if err := tx.Delete(&voteModel.ReviewVoteModel{}, "review_vote_id = ?", existing.ReviewVoteID).Error; err != nil {
				return err
			}
		}

		return refreshVoteCounts(tx, reviewID, &stats)
	})
	if err != nil {
		log.Printf("[ERROR] review vote: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to register vote")
	}

	stats.Action = action
	if action != voteModel.VoteActionRemoved {
		stats.UserVote = &isHelpful
	}

	return helper.Success(c, "Vote registered", stats)
}

/* =========================================================
   GET /api/public/reviews/:id/votes
========================================================= */

func (h *ReviewController) GetVoteStats(c *fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid review ID")
	}

	var review model.ReviewModel
	if err := h.DB.First(&review, "review_id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Review not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch review")
	}

	stats := dto.VoteStats{
		HelpfulCount:   review.ReviewHelpfulCount,
		UnhelpfulCount: review.ReviewUnhelpfulCount,
		TotalVotes:     review.ReviewHelpfulCount + review.ReviewUnhelpfulCount,
	}
	if viewerID := helper.GetUserIDFromTokenOptional(c); viewerID != uuid.Nil {
		stats.UserVote = h.lookupMyVote(reviewID, viewerID)
	}

	return helper.Success(c, "OK", stats)
}

/* =========================================================
   internals
========================================================= */

// refreshVoteCounts recomputes the denormalized counters on the review row
// from the vote table and fills stats with the fresh values.
func refreshVoteCounts(tx *gorm.DB, reviewID uuid.UUID, stats *dto.VoteStats) error {
	var counts struct {
		Helpful   int
		Unhelpful int
	}
	err := tx.Model(&voteModel.ReviewVoteModel{}).
		Select(
			"COUNT(*) FILTER (WHERE review_vote_is_helpful) AS helpful",
			"COUNT(*) FILTER (WHERE NOT review_vote_is_helpful) AS unhelpful",
		).
		Where("review_vote_review_id = ?", reviewID).
		Scan(&counts).Error
	if err != nil {
		return err
	}

	err = tx.Model(&model.ReviewModel{}).
		Where("review_id = ?", reviewID).
		Updates(map[string]interface{}{
			"review_helpful_count":   counts.Helpful,
			"review_unhelpful_count": counts.Unhelpful,
		}).Error
	if err != nil {
		return err
	}

	stats.HelpfulCount = counts.Helpful
	stats.UnhelpfulCount = counts.Unhelpful
	stats.TotalVotes = counts.Helpful + counts.Unhelpful
	return nil
}

func (h *ReviewController) lookupMyVote(reviewID, userID uuid.UUID) *bool {
	var vote voteModel.ReviewVoteModel
	err := h.DB.
		Where("review_vote_review_id = ? AND review_vote_user_id = ?", reviewID, userID).
		First(&vote).Error
	if err != nil {
		return nil
	}
	return &vote.ReviewVoteIsHelpful
}

func (h *ReviewController) lookupMyVotes(reviews []model.ReviewModel, userID uuid.UUID) map[uuid.UUID]bool {
	out := map[uuid.UUID]bool{}
	if userID == uuid.Nil || len(reviews) == 0 {
		return out
	}
	ids := make([]uuid.UUID, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.ReviewID)
	}
	var votes []voteModel.ReviewVoteModel
	if err := h.DB.
		Where("review_vote_user_id = ? AND review_vote_review_id IN ?", userID, ids).
		Find(&votes).Error; err != nil {
		return out
	}
	for _, v := range votes {
		out[v.ReviewVoteReviewID] = v.ReviewVoteIsHelpful
	}
	return out
}
