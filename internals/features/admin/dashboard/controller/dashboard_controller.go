package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"gorm.io/gorm"

	logModel "campusreview_backend/internals/features/admin/action_logs/model"
	historyModel "campusreview_backend/internals/features/billing/billing_history/model"
	subModel "campusreview_backend/internals/features/billing/subscriptions/model"
	courseModel "campusreview_backend/internals/features/courses/courses/model"
	reviewModel "campusreview_backend/internals/features/reviews/reviews/model"
	userModel "campusreview_backend/internals/features/users/user_profiles/model"
	helper "campusreview_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type dashboardStats struct {
	TotalUsers          int64 `json:"total_users"`
	PremiumUsers        int64 `json:"premium_users"`
	TotalCourses        int64 `json:"total_courses"`
	TotalReviews        int64 `json:"total_reviews"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
	FlaggedReviews      int64 `json:"flagged_reviews"`

	NewUsersThisMonth   int64  `json:"new_users_this_month"`
	ReviewsThisMonth    int64  `json:"reviews_this_month"`
	RevenueThisMonth    int64  `json:"revenue_this_month"`
	RevenueCurrencyUnit string `json:"revenue_currency_unit"`
}

type systemHealth struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskPercent   float64 `json:"disk_percent"`
	UptimeSeconds uint64  `json:"uptime_seconds"`
}

// GetStats aggregates the overview blocks. Each block fails soft: a broken
// query logs and reports zero so the dashboard always renders.
// GET /api/a/dashboard
func (h *DashboardController) GetStats(c *fiber.Ctx) error {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := dashboardStats{RevenueCurrencyUnit: "jpy"}

	h.countInto(&stats.TotalUsers, h.DB.Model(&userModel.UserProfileModel{}), "total users")
	h.countInto(&stats.PremiumUsers,
		h.DB.Model(&userModel.UserProfileModel{}).Where("user_profile_is_premium = ?", true),
		"premium users")
	h.countInto(&stats.TotalCourses, h.DB.Model(&courseModel.CourseModel{}), "total courses")
	h.countInto(&stats.TotalReviews, h.DB.Model(&reviewModel.ReviewModel{}), "total reviews")
	h.countInto(&stats.ActiveSubscriptions,
		h.DB.Model(&subModel.SubscriptionModel{}).
			Where("subscription_status IN ?", []string{
				subModel.SubscriptionStatusActive, subModel.SubscriptionStatusTrialing,
			}),
		"active subscriptions")
	h.countInto(&stats.FlaggedReviews,
		h.DB.Model(&reviewModel.ReviewModel{}).Where("review_is_flagged = ?", true),
		"flagged reviews")
	h.countInto(&stats.NewUsersThisMonth,
		h.DB.Model(&userModel.UserProfileModel{}).Where("created_at >= ?", monthStart),
		"new users this month")
	h.countInto(&stats.ReviewsThisMonth,
		h.DB.Model(&reviewModel.ReviewModel{}).Where("created_at >= ?", monthStart),
		"reviews this month")

	var revenue *int64
	err := h.DB.Model(&historyModel.BillingHistoryModel{}).
		Where("billing_history_status = ? AND created_at >= ?", historyModel.InvoiceStatusPaid, monthStart).
		Select("SUM(billing_history_amount)").
		Scan(&revenue).Error
	if err != nil {
		log.Printf("[ERROR] dashboard: monthly revenue: %v", err)
	} else if revenue != nil {
		stats.RevenueThisMonth = *revenue
	}

	var recentActions []logModel.AdminActionLogModel
	if err := h.DB.Order("created_at DESC").Limit(10).
		Find(&recentActions).Error; err != nil {
		log.Printf("[ERROR] dashboard: recent actions: %v", err)
		recentActions = nil
	}

	return helper.Success(c, "OK", fiber.Map{
		"stats":          stats,
		"recent_actions": recentActions,
		"system_health":  collectSystemHealth(),
		"generated_at":   now,
	})
}

func (h *DashboardController) countInto(dst *int64, tx *gorm.DB, label string) {
	if err := tx.Count(dst).Error; err != nil {
		log.Printf("[ERROR] dashboard: %s: %v", label, err)
		*dst = 0
	}
}

// collectSystemHealth samples the host. Sampling errors leave zeros; the block
// is informational only.
func collectSystemHealth() systemHealth {
	var sh systemHealth

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		sh.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		sh.MemoryPercent = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		sh.DiskPercent = du.UsedPercent
	}
	if up, err := host.Uptime(); err == nil {
		sh.UptimeSeconds = up
	}

	return sh
}
