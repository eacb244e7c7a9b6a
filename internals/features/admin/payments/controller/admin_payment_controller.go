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
	historyModel "campusreview_backend/internals/features/billing/billing_history/model"
	subModel "campusreview_backend/internals/features/billing/subscriptions/model"
	subService "campusreview_backend/internals/features/billing/subscriptions/service"
	helper "campusreview_backend/internals/helpers"
)

var validate = validator.New()

type AdminPaymentController struct {
	DB *gorm.DB
}

func NewAdminPaymentController(db *gorm.DB) *AdminPaymentController {
	return &AdminPaymentController{DB: db}
}

/* =========================================================
   GET /api/a/payments — subscriptions joined with user emails
========================================================= */

type subscriptionRow struct {
	subModel.SubscriptionModel
	UserEmail       string `gorm:"column:user_profile_email" json:"user_email"`
	UserDisplayName string `gorm:"column:user_profile_display_name" json:"user_display_name"`
}

func (h *AdminPaymentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&subModel.SubscriptionModel{}).
		Joins("JOIN user_profiles ON user_profiles.user_profile_id = subscriptions.subscription_user_id")

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		tx = tx.Where("subscription_status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		tx = tx.Where("user_profile_email ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch subscriptions")
	}

	var rows []subscriptionRow
	if err := tx.
		Select("subscriptions.*, user_profiles.user_profile_email, user_profiles.user_profile_display_name").
		Order("subscriptions.created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch subscriptions")
	}

	return helper.Success(c, "OK", fiber.Map{
		"subscriptions": rows,
		"pagination":    helper.BuildPagination(paging.Page, paging.PerPage, total, len(rows)),
	})
}

/* =========================================================
   POST /api/a/payments/:id/actions — :id is the local subscription id
========================================================= */

type paymentActionRequest struct {
	Action string `json:"action" validate:"required"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type paymentActionFn func(h *AdminPaymentController, sub *subModel.SubscriptionModel) error

var paymentActions = map[string]paymentActionFn{
	"cancel_subscription": (*AdminPaymentController).cancelSubscription,
	"retry_invoice":       (*AdminPaymentController).retryLatestInvoice,
	"send_invoice":        (*AdminPaymentController).sendLatestInvoice,
	"refund_last_payment": (*AdminPaymentController).refundLastPayment,
}

func (h *AdminPaymentController) ExecuteAction(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	subID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid subscription ID")
	}

	var req paymentActionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	action, ok := paymentActions[req.Action]
	if !ok {
		return helper.Error(c, fiber.StatusBadRequest, "Unknown action: "+req.Action)
	}

	var sub subModel.SubscriptionModel
	if err := h.DB.First(&sub, "subscription_id = ?", subID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Subscription not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch subscription")
	}

	if err := action(h, &sub); err != nil {
		log.Printf("[ERROR] admin payment action %s on %s: %v", req.Action, subID, err)
		if errors.Is(err, errNoInvoice) {
			return helper.Error(c, fiber.StatusNotFound, "No invoice found for this subscription")
		}
		return helper.Error(c, fiber.StatusBadGateway, "Action failed at the payment provider")
	}

	detail := map[string]interface{}{}
	if req.Reason != "" {
		detail["reason"] = req.Reason
	}
	auditService.Record(h.DB, adminID, helper.GetUserEmailFromToken(c), req.Action, "subscription", subID, detail)

	return helper.Success(c, "Action applied", sub)
}

var errNoInvoice = errors.New("no invoice on record")

func (h *AdminPaymentController) cancelSubscription(sub *subModel.SubscriptionModel) error {
	if sub.SubscriptionStatus == subModel.SubscriptionStatusCanceled {
		return nil
	}
	updated, err := subService.CancelNow(sub.SubscriptionStripeSubscriptionID)
	if err != nil {
		return err
	}
	now := time.Now()
	sub.SubscriptionStatus = string(updated.Status)
	sub.SubscriptionCanceledAt = &now
	return h.DB.Save(sub).Error
}

func (h *AdminPaymentController) retryLatestInvoice(sub *subModel.SubscriptionModel) error {
	invoiceID, err := h.latestInvoiceID(sub.SubscriptionUserID)
	if err != nil {
		return err
	}
	_, err = subService.RetryInvoicePayment(invoiceID)
	return err
}

func (h *AdminPaymentController) sendLatestInvoice(sub *subModel.SubscriptionModel) error {
	invoiceID, err := h.latestInvoiceID(sub.SubscriptionUserID)
	if err != nil {
		return err
	}
	_, err = subService.SendInvoiceToCustomer(invoiceID)
	return err
}

func (h *AdminPaymentController) refundLastPayment(sub *subModel.SubscriptionModel) error {
	var row historyModel.BillingHistoryModel
	err := h.DB.Where(
		"billing_history_user_id = ? AND billing_history_status = ?",
		sub.SubscriptionUserID, historyModel.InvoiceStatusPaid,
	).Order("created_at DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNoInvoice
		}
		return err
	}
	_, err = subService.RefundInvoicePayment(row.BillingHistoryStripeInvoiceID)
	return err
}

func (h *AdminPaymentController) latestInvoiceID(userID uuid.UUID) (string, error) {
	var row historyModel.BillingHistoryModel
	err := h.DB.Where("billing_history_user_id = ?", userID).
		Order("created_at DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errNoInvoice
		}
		return "", err
	}
	return row.BillingHistoryStripeInvoiceID, nil
}
