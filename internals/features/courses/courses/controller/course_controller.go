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

	usageService "campusreview_backend/internals/features/billing/usage_limits/service"
	dto "campusreview_backend/internals/features/courses/courses/dto"
	model "campusreview_backend/internals/features/courses/courses/model"
	universityModel "campusreview_backend/internals/features/courses/universities/model"
	helper "campusreview_backend/internals/helpers"
)

var validate = validator.New()

// API sort key → column whitelist. Leading "-" on the key flips direction.
var courseSortColumns = map[string]string{
	"name":               "course_name",
	"instructor":         "course_instructor",
	"credits":            "course_credits",
	"average_rating":     "course_average_rating",
	"average_difficulty": "course_average_difficulty",
	"average_workload":   "course_average_workload",
	"total_reviews":      "course_total_reviews",
	"created_at":         "created_at",
}

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

/* =========================================================
   GET /api/public/courses — search / sort / paginate
========================================================= */

func (h *CourseController) List(c *fiber.Ctx) error {
	// Authenticated free-tier callers spend a search unit; anonymous and
	// premium callers do not.
	if userID := helper.GetUserIDFromTokenOptional(c); userID != uuid.Nil {
		res, err := usageService.CheckAndIncrement(h.DB, userID, usageService.FeatureSearches)
		if err != nil {
			log.Printf("[ERROR] search counter: %v", err)
		} else if !res.Allowed {
			return helper.ErrorWithDetails(c, fiber.StatusTooManyRequests,
				"Daily search limit reached", fiber.Map{
					"limit":      res.Limit,
					"used":       res.Used,
					"reset_date": res.ResetDate,
				})
		}
	}

	q, err := parseSearchQuery(c)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&model.CourseModel{})
	applyCourseFilters(tx, q)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	orderBy, err := helper.ResolveSort(q.Sort, courseSortColumns, "name")
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var courses []model.CourseModel
	if err := tx.Order(orderBy).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&courses).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"courses":  courses,
		"total":    total,
		"page":     paging.Page,
		"limit":    paging.PerPage,
		"has_next": total > int64(paging.Page)*int64(paging.PerPage),
		"has_prev": paging.Page > 1,
	})
}

func parseSearchQuery(c *fiber.Ctx) (dto.SearchCoursesQuery, error) {
	q := dto.SearchCoursesQuery{
		Search:     strings.TrimSpace(c.Query("search")),
		Department: strings.TrimSpace(c.Query("department")),
		Faculty:    strings.TrimSpace(c.Query("faculty")),
		Instructor: strings.TrimSpace(c.Query("instructor")),
		Category:   strings.TrimSpace(c.Query("category")),
		Semester:   strings.TrimSpace(c.Query("semester")),
		Sort:       strings.TrimSpace(c.Query("sort")),
	}
	if len(q.Search) > 255 {
		return q, errors.New("search keyword too long")
	}
	if raw := c.Query("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 2020 || n > 2030 {
			return q, errors.New("year must be between 2020 and 2030")
		}
		q.Year = n
	}
	if raw := c.Query("credits"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 10 {
			return q, errors.New("credits must be between 1 and 10")
		}
		q.Credits = n
	}
	if raw := c.Query("min_rating"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 1 || f > 5 {
			return q, errors.New("min_rating must be between 1 and 5")
		}
		q.MinRating = f
	}
	if raw := c.Query("max_difficulty"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 1 || f > 5 {
			return q, errors.New("max_difficulty must be between 1 and 5")
		}
		q.MaxDifficulty = f
	}
	return q, nil
}

// Filters are conjunctive. A filter nothing matches yields an empty page,
// never an error.
func applyCourseFilters(tx *gorm.DB, q dto.SearchCoursesQuery) {
	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx.Where("course_name ILIKE ? OR course_instructor ILIKE ? OR course_code ILIKE ?", like, like, like)
	}
	if q.Department != "" {
		tx.Where("course_department = ?", q.Department)
	}
	if q.Faculty != "" {
		tx.Where("course_faculty = ?", q.Faculty)
	}
	if q.Instructor != "" {
		tx.Where("course_instructor ILIKE ?", "%"+q.Instructor+"%")
	}
	if q.Category != "" {
		tx.Where("course_category = ?", q.Category)
	}
	if q.Semester != "" {
		tx.Where("course_semester = ?", q.Semester)
	}
	if q.Year != 0 {
		tx.Where("course_year = ?", q.Year)
	}
	if q.Credits != 0 {
		tx.Where("course_credits = ?", q.Credits)
	}
	if q.MinRating != 0 {
		tx.Where("course_average_rating >= ?", q.MinRating)
	}
	if q.MaxDifficulty != 0 {
		tx.Where("course_average_difficulty <= ?", q.MaxDifficulty)
	}
}

/* =========================================================
   GET /api/public/courses/:id
========================================================= */

func (h *CourseController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var course model.CourseModel
	if err := h.DB.First(&course, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch course")
	}

	return helper.Success(c, "OK", course)
}

/* =========================================================
   POST /api/a/courses — admin create, no duplicate checks
========================================================= */

func (h *CourseController) CreateByAdmin(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	university, err := h.resolveUniversity()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "University not found")
	}

	course := req.ToModel(university.UniversityID, &adminID, time.Now())
	if err := h.DB.Create(&course).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "This course is already registered")
		}
		log.Printf("[ERROR] course create: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create course")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Course created", course)
}

/* =========================================================
   POST /api/u/courses — self-service create with duplicate guard
========================================================= */

func (h *CourseController) CreateByUser(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	university, err := h.resolveUniversity()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "University not found")
	}

	course := req.ToModel(university.UniversityID, &userID, time.Now())

	// Exact duplicate on the offering key is a hard conflict.
	var existing model.CourseModel
	err = h.DB.Where(
		"course_university_id = ? AND course_code = ? AND course_year = ? AND course_semester = ?",
		university.UniversityID, course.CourseCode, course.CourseYear, course.CourseSemester,
	).First(&existing).Error
	if err == nil {
		return helper.ErrorWithDetails(c, fiber.StatusConflict,
			"This course is already registered", fiber.Map{
				"existing_course": fiber.Map{
					"name":       existing.CourseName,
					"instructor": existing.CourseInstructor,
				},
			})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to check duplicates")
	}

	// Same name+instructor is only a warning; the caller confirms with the
	// override flag to create anyway.
	if !req.ConfirmOverride {
		var similar []model.CourseModel
		if err := h.DB.Where(
			"course_university_id = ? AND course_name = ? AND course_instructor = ?",
			university.UniversityID, course.CourseName, course.CourseInstructor,
		).Limit(3).Find(&similar).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to check duplicates")
		}
		if len(similar) > 0 {
			candidates := make([]dto.DuplicateCandidate, 0, len(similar))
			for _, s := range similar {
				candidates = append(candidates, dto.ToDuplicateCandidate(s))
			}
			return helper.ErrorWithDetails(c, fiber.StatusConflict,
				"A similar course already exists. Resubmit with confirm_override to register it as a new course.",
				fiber.Map{
					"similar_courses":  candidates,
					"confirm_required": true,
				})
		}
	}

	if err := h.DB.Create(&course).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "This course is already registered")
		}
		log.Printf("[ERROR] course create: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create course")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Course created", course)
}

/* =========================================================
   GET /api/u/courses/check-duplicate
========================================================= */

func (h *CourseController) CheckDuplicate(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return err
	}

	code := strings.TrimSpace(c.Query("course_code"))
	name := strings.TrimSpace(c.Query("name"))
	if code == "" && name == "" {
		return helper.Error(c, fiber.StatusBadRequest, "course_code or name is required")
	}

	university, err := h.resolveUniversity()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "University not found")
	}

	tx := h.DB.Model(&model.CourseModel{}).
		Where("course_university_id = ?", university.UniversityID)
	if code != "" {
		tx = tx.Where("course_code = ?", code)
	}
	if name != "" {
		tx = tx.Where("course_name ILIKE ?", "%"+name+"%")
	}
	if instructor := strings.TrimSpace(c.Query("instructor")); instructor != "" {
		tx = tx.Where("course_instructor ILIKE ?", "%"+instructor+"%")
	}
	if raw := c.Query("year"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			tx = tx.Where("course_year = ?", n)
		}
	}
	if semester := strings.TrimSpace(c.Query("semester")); semester != "" {
		tx = tx.Where("course_semester = ?", semester)
	}

	var courses []model.CourseModel
	if err := tx.Limit(10).Find(&courses).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Duplicate check failed")
	}

	candidates := make([]dto.DuplicateCandidate, 0, len(courses))
	for _, s := range courses {
		candidates = append(candidates, dto.ToDuplicateCandidate(s))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"found":   len(candidates) > 0,
		"courses": candidates,
		"count":   len(candidates),
	})
}

/* =========================================================
   PUT /api/a/courses/:id — admin partial update
========================================================= */

func (h *CourseController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var course model.CourseModel
	if err := h.DB.First(&course, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch course")
	}

	req.ApplyToModel(&course)

	if err := h.DB.Save(&course).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "This course is already registered")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update course")
	}

	return helper.Success(c, "Course updated", course)
}

/* =========================================================
   DELETE /api/a/courses/:id — blocked while reviews exist
========================================================= */

func (h *CourseController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var course model.CourseModel
	if err := h.DB.First(&course, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch course")
	}

	var reviewCount int64
	if err := h.DB.Table("reviews").
		Where("review_course_id = ?", id).
		Count(&reviewCount).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to check reviews")
	}
	if reviewCount > 0 {
		return helper.Error(c, fiber.StatusConflict, "Course has reviews and cannot be deleted")
	}

	if err := h.DB.Delete(&course).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete course")
	}

	return helper.Success(c, "Course deleted", nil)
}

func (h *CourseController) resolveUniversity() (universityModel.UniversityModel, error) {
	var u universityModel.UniversityModel
	err := h.DB.Order("created_at ASC").First(&u).Error
	return u, err
}
