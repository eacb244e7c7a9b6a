package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "campusreview_backend/internals/features/admin/action_logs/service"
	subModel "campusreview_backend/internals/features/billing/subscriptions/model"
	subService "campusreview_backend/internals/features/billing/subscriptions/service"
	userModel "campusreview_backend/internals/features/users/user_profiles/model"
	helper "campusreview_backend/internals/helpers"
)

var validate = validator.New()

type AdminUserController struct {
	DB *gorm.DB
}

func NewAdminUserController(db *gorm.DB) *AdminUserController {
	return &AdminUserController{DB: db}
}

var userSortColumns = map[string]string{
	"created_at":   "created_at",
	"email":        "user_profile_email",
	"display_name": "user_profile_display_name",
}

/* =========================================================
   GET /api/a/users
========================================================= */

func (h *AdminUserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&userModel.UserProfileModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		tx = tx.Where("user_profile_email ILIKE ? OR user_profile_display_name ILIKE ?", like, like)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		tx = tx.Where("user_profile_status = ?", status)
	}
	if premium := strings.TrimSpace(c.Query("premium")); premium != "" {
		tx = tx.Where("user_profile_is_premium = ?", premium == "true")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	orderBy, err := helper.ResolveSort(c.Query("sort"), userSortColumns, "-created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var users []userModel.UserProfileModel
	if err := tx.Order(orderBy).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	return helper.Success(c, "OK", fiber.Map{
		"users":      users,
		"pagination": helper.BuildPagination(paging.Page, paging.PerPage, total, len(users)),
	})
}

/* =========================================================
   POST /api/a/users/:id/actions
========================================================= */

type userActionRequest struct {
	Action string `json:"action" validate:"required"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type userActionFn func(h *AdminUserController, target *userModel.UserProfileModel) error

// Closed dispatch table. Anything outside it is a 400, never a silent no-op.
var userActions = map[string]userActionFn{
	"suspend":            (*AdminUserController).suspendUser,
	"activate":           (*AdminUserController).activateUser,
	"delete":             (*AdminUserController).softDeleteUser,
	"upgrade_to_premium": (*AdminUserController).upgradeToPremium,
	"downgrade_to_free":  (*AdminUserController).downgradeToFree,
}

func (h *AdminUserController) ExecuteAction(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req userActionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	action, ok := userActions[req.Action]
	if !ok {
		return helper.Error(c, fiber.StatusBadRequest, "Unknown action: "+req.Action)
	}

	if targetID == adminID && (req.Action == "suspend" || req.Action == "delete") {
		return helper.Error(c, fiber.StatusBadRequest, "You cannot "+req.Action+" your own account")
	}

	var target userModel.UserProfileModel
	if err := h.DB.First(&target, "user_profile_id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "User not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	if err := action(h, &target); err != nil {
		log.Printf("[ERROR] admin action %s on %s: %v", req.Action, targetID, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Action failed")
	}

	detail := map[string]interface{}{}
	if req.Reason != "" {
		detail["reason"] = req.Reason
	}
	auditService.Record(h.DB, adminID, helper.GetUserEmailFromToken(c), req.Action, "user", targetID, detail)

	return helper.Success(c, "Action applied", target)
}

func (h *AdminUserController) suspendUser(target *userModel.UserProfileModel) error {
	target.UserProfileStatus = userModel.UserStatusSuspended
	return h.DB.Save(target).Error
}

func (h *AdminUserController) activateUser(target *userModel.UserProfileModel) error {
	target.UserProfileStatus = userModel.UserStatusActive
	return h.DB.Save(target).Error
}

// softDeleteUser keeps the row (reviews stay attributed to an anonymized
// account) but ends any ongoing subscription.
func (h *AdminUserController) softDeleteUser(target *userModel.UserProfileModel) error {
	if err := h.cancelOngoingSubscriptions(target.UserProfileID); err != nil {
		return err
	}
	target.UserProfileStatus = userModel.UserStatusDeleted
	target.UserProfileIsPremium = false
	target.UserProfilePremiumExpiresAt = nil
	return h.DB.Save(target).Error
}

// upgradeToPremium grants a manual 30-day premium window with no processor
// subscription behind it.
func (h *AdminUserController) upgradeToPremium(target *userModel.UserProfileModel) error {
	expires := time.Now().AddDate(0, 0, 30)
	target.UserProfileIsPremium = true
	target.UserProfilePremiumExpiresAt = &expires
	return h.DB.Save(target).Error
}

func (h *AdminUserController) downgradeToFree(target *userModel.UserProfileModel) error {
	if err := h.cancelOngoingSubscriptions(target.UserProfileID); err != nil {
		return err
	}
	target.UserProfileIsPremium = false
	target.UserProfilePremiumExpiresAt = nil
	return h.DB.Save(target).Error
}

func (h *AdminUserController) cancelOngoingSubscriptions(userID uuid.UUID) error {
	var subs []subModel.SubscriptionModel
	if err := h.DB.Where(
		"subscription_user_id = ? AND subscription_status IN ?",
		userID, []string{subModel.SubscriptionStatusActive, subModel.SubscriptionStatusTrialing},
	).Find(&subs).Error; err != nil {
		return err
	}
	for _, sub := range subs {
		if _, err := subService.CancelNow(sub.SubscriptionStripeSubscriptionID); err != nil {
			return err
		}
		now := time.Now()
		if err := h.DB.Model(&subModel.SubscriptionModel{}).
			Where("subscription_id = ?", sub.SubscriptionID).
			Updates(map[string]interface{}{
				"subscription_status":      subModel.SubscriptionStatusCanceled,
				"subscription_canceled_at": now,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

