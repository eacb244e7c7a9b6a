package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	service "campusreview_backend/internals/features/admin/analytics/service"
	courseModel "campusreview_backend/internals/features/courses/courses/model"
	helper "campusreview_backend/internals/helpers"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

const trendMonths = 12

// resolveTimeRange maps the query value to a day count, defaulting to 30.
func resolveTimeRange(v string) int {
	switch v {
	case "7d":
		return 7
	case "90d":
		return 90
	case "1y":
		return 365
	default:
		return 30
	}
}

// GetAnalytics assembles the growth and trend blocks. Like the dashboard,
// a failing block degrades to an empty series instead of failing the whole
// response.
// GET /api/a/analytics?time_range=7d|30d|90d|1y
func (h *AnalyticsController) GetAnalytics(c *fiber.Ctx) error {
	now := time.Now()
	days := resolveTimeRange(c.Query("time_range"))

	registrationTrend, err := service.DailySeries(h.DB, "user_profiles", "", nil, days, now)
	if err != nil {
		log.Printf("[ERROR] analytics: registration trend: %v", err)
	}
	activityTrend, err := service.DailySeries(h.DB, "reviews", "", nil, days, now)
	if err != nil {
		log.Printf("[ERROR] analytics: activity trend: %v", err)
	}
	revenueTrend, err := service.DailyRevenueSeries(h.DB, days, now)
	if err != nil {
		log.Printf("[ERROR] analytics: revenue trend: %v", err)
	}
	monthlyReviewTrend, err := service.MonthlySeries(h.DB, "reviews", "", nil, trendMonths, now)
	if err != nil {
		log.Printf("[ERROR] analytics: monthly review trend: %v", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevStart := monthStart.AddDate(0, -1, 0)

	curUsers := h.countCreatedBetween("user_profiles", monthStart, now)
	prevUsers := h.countCreatedBetween("user_profiles", prevStart, monthStart)
	curReviews := h.countCreatedBetween("reviews", monthStart, now)
	prevReviews := h.countCreatedBetween("reviews", prevStart, monthStart)

	return helper.Success(c, "OK", fiber.Map{
		"time_range_days":      days,
		"registration_trend":   registrationTrend,
		"activity_trend":       activityTrend,
		"revenue_trend":        revenueTrend,
		"monthly_review_trend": monthlyReviewTrend,
		"growth": fiber.Map{
			"users_this_month":    curUsers,
			"users_last_month":    prevUsers,
			"user_growth_pct":     service.GrowthPercent(curUsers, prevUsers),
			"reviews_this_month":  curReviews,
			"reviews_last_month":  prevReviews,
			"review_growth_pct":   service.GrowthPercent(curReviews, prevReviews),
		},
		"top_courses":           h.topCourses(5),
		"category_distribution": h.categoryDistribution(),
		"generated_at":          now,
	})
}

func (h *AnalyticsController) countCreatedBetween(table string, from, to time.Time) int64 {
	var n int64
	if err := h.DB.Table(table).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&n).Error; err != nil {
		log.Printf("[ERROR] analytics: count %s: %v", table, err)
		return 0
	}
	return n
}

func (h *AnalyticsController) topCourses(limit int) []courseModel.CourseModel {
	var courses []courseModel.CourseModel
	if err := h.DB.Model(&courseModel.CourseModel{}).
		Where("course_total_reviews > 0").
		Order("course_total_reviews DESC, course_average_rating DESC").
		Limit(limit).
		Find(&courses).Error; err != nil {
		log.Printf("[ERROR] analytics: top courses: %v", err)
		return nil
	}
	return courses
}

type categoryCount struct {
	Category string `gorm:"column:course_category" json:"category"`
	Count    int64  `json:"count"`
}

func (h *AnalyticsController) categoryDistribution() []categoryCount {
	var rows []categoryCount
	if err := h.DB.Model(&courseModel.CourseModel{}).
		Select("course_category, COUNT(*) AS count").
		Group("course_category").
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		log.Printf("[ERROR] analytics: category distribution: %v", err)
		return nil
	}
	return rows
}
