package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusreview_backend/internals/configs"
	customerModel "campusreview_backend/internals/features/billing/stripe_customers/model"
	dto "campusreview_backend/internals/features/billing/subscriptions/dto"
	model "campusreview_backend/internals/features/billing/subscriptions/model"
	service "campusreview_backend/internals/features/billing/subscriptions/service"
	userModel "campusreview_backend/internals/features/users/user_profiles/model"
	helper "campusreview_backend/internals/helpers"
)

var validate = validator.New()

type SubscriptionController struct {
	DB *gorm.DB
}

func NewSubscriptionController(db *gorm.DB) *SubscriptionController {
	return &SubscriptionController{DB: db}
}

// subscribeRejection rejects a second ongoing subscription as a validation
// failure.
func subscribeRejection(hasOngoing bool) (int, string) {
	if hasOngoing {
		return fiber.StatusBadRequest, "You already have an active subscription"
	}
	return 0, ""
}

// cancelRejection classifies a cancel request against the subscription's
// current state, zero status when the cancel may proceed.
func cancelRejection(status string, scheduled, immediately bool) (int, string) {
	if status == model.SubscriptionStatusCanceled {
		return fiber.StatusBadRequest, "Subscription is already canceled"
	}
	if scheduled && !immediately {
		return fiber.StatusBadRequest, "Subscription is already scheduled to cancel"
	}
	return 0, ""
}

/* =========================================================
   POST /api/u/subscriptions
========================================================= */

func (h *SubscriptionController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	priceID := configs.StripePremiumMonthlyPriceID
	if req.Plan == dto.PlanYearly {
		priceID = configs.StripePremiumYearlyPriceID
	}
	if priceID == "" {
		return helper.Error(c, fiber.StatusServiceUnavailable, "Billing is not configured")
	}

	// One ongoing subscription per user.
	var ongoing model.SubscriptionModel
	err = h.DB.Where(
		"subscription_user_id = ? AND subscription_status IN ?",
		userID, []string{model.SubscriptionStatusActive, model.SubscriptionStatusTrialing},
	).First(&ongoing).Error
	if err == nil {
		status, msg := subscribeRejection(true)
		return helper.Error(c, status, msg)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to check subscriptions")
	}

	cust, err := h.ensureCustomer(c, userID)
	if err != nil {
		log.Printf("[ERROR] ensure customer: %v", err)
		return helper.Error(c, fiber.StatusBadGateway, "Failed to register with payment provider")
	}

	sub, err := service.CreateSubscription(cust.StripeCustomerStripeID, priceID, userID.String(), req.TrialDays)
	if err != nil {
		log.Printf("[ERROR] create subscription: %v", err)
		return helper.Error(c, fiber.StatusBadGateway, "Failed to create subscription")
	}

	row := model.SubscriptionModel{
		SubscriptionUserID:               userID,
		SubscriptionStripeSubscriptionID: sub.ID,
		SubscriptionStripeCustomerID:     cust.StripeCustomerStripeID,
		SubscriptionStatus:               string(sub.Status),
		SubscriptionPriceID:              priceID,
		SubscriptionCurrentPeriodStart:   time.Unix(sub.CurrentPeriodStart, 0),
		SubscriptionCurrentPeriodEnd:     time.Unix(sub.CurrentPeriodEnd, 0),
	}
	if err := h.DB.Create(&row).Error; err != nil {
		// Keep local state authoritative: if the mirror row cannot be
		// written, void the processor-side subscription.
		if _, cancelErr := service.CancelNow(sub.ID); cancelErr != nil {
			log.Printf("[ERROR] compensating cancel of %s failed: %v", sub.ID, cancelErr)
		}
		log.Printf("[ERROR] persist subscription: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create subscription")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Subscription created",
		dto.CreateSubscriptionResponse{
			Subscription: row,
			ClientSecret: service.PaymentIntentClientSecret(sub),
		})
}

// ensureCustomer returns the local mirror of the user's processor customer,
// creating both sides on first use.
func (h *SubscriptionController) ensureCustomer(c *fiber.Ctx, userID uuid.UUID) (*customerModel.StripeCustomerModel, error) {
	var cust customerModel.StripeCustomerModel
	err := h.DB.First(&cust, "stripe_customer_user_id = ?", userID).Error
	if err == nil {
		return &cust, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var profile userModel.UserProfileModel
	if err := h.DB.First(&profile, "user_profile_id = ?", userID).Error; err != nil {
		return nil, err
	}

	created, err := service.CreateCustomer(profile.UserProfileEmail, profile.UserProfileDisplayName, userID.String())
	if err != nil {
		return nil, err
	}

	cust = customerModel.StripeCustomerModel{
		StripeCustomerUserID:   userID,
		StripeCustomerStripeID: created.ID,
		StripeCustomerEmail:    profile.UserProfileEmail,
	}
	if profile.UserProfileDisplayName != "" {
		cust.StripeCustomerName = &profile.UserProfileDisplayName
	}
	if err := h.DB.Create(&cust).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			// Concurrent first subscribe; reuse whichever row won.
			if err := h.DB.First(&cust, "stripe_customer_user_id = ?", userID).Error; err != nil {
				return nil, err
			}
			return &cust, nil
		}
		return nil, err
	}
	return &cust, nil
}

/* =========================================================
   GET /api/u/subscriptions
========================================================= */

func (h *SubscriptionController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var sub model.SubscriptionModel
	err = h.DB.
		Where("subscription_user_id = ?", userID).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Success(c, "OK", fiber.Map{"subscription": nil})
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch subscription")
	}

	return helper.Success(c, "OK", fiber.Map{"subscription": sub})
}

/* =========================================================
   POST /api/u/subscriptions/cancel
========================================================= */

func (h *SubscriptionController) Cancel(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CancelSubscriptionRequest
	// Body is optional; default is cancel at period end.
	_ = c.BodyParser(&req)
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var sub model.SubscriptionModel
	if req.SubscriptionID != "" {
		// Scoped to the caller so one user cannot cancel another's subscription.
		err = h.DB.Where(
			"subscription_id = ? AND subscription_user_id = ?",
			req.SubscriptionID, userID,
		).First(&sub).Error
	} else {
		err = h.DB.Where(
			"subscription_user_id = ? AND subscription_status IN ?",
			userID, []string{model.SubscriptionStatusActive, model.SubscriptionStatusTrialing},
		).Order("created_at DESC").First(&sub).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Subscription not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch subscription")
	}
	if status, msg := cancelRejection(sub.SubscriptionStatus, sub.SubscriptionCancelAtPeriodEnd, req.Immediately); status != 0 {
		return helper.Error(c, status, msg)
	}

	if req.Immediately {
		updated, err := service.CancelNow(sub.SubscriptionStripeSubscriptionID)
		if err != nil {
			log.Printf("[ERROR] cancel subscription: %v", err)
			return helper.Error(c, fiber.StatusBadGateway, "Failed to cancel subscription")
		}
		now := time.Now()
		sub.SubscriptionStatus = string(updated.Status)
		sub.SubscriptionCanceledAt = &now
	} else {
		updated, err := service.ScheduleCancel(sub.SubscriptionStripeSubscriptionID)
		if err != nil {
			log.Printf("[ERROR] schedule cancel: %v", err)
			return helper.Error(c, fiber.StatusBadGateway, "Failed to cancel subscription")
		}
		sub.SubscriptionStatus = string(updated.Status)
		sub.SubscriptionCancelAtPeriodEnd = true
	}

	if err := h.DB.Save(&sub).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update subscription")
	}

	return helper.Success(c, "Subscription canceled", sub)
}

/* =========================================================
   POST /api/u/billing/portal
========================================================= */

func (h *SubscriptionController) OpenPortal(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var cust customerModel.StripeCustomerModel
	if err := h.DB.First(&cust, "stripe_customer_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "No billing account yet")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch billing account")
	}

	session, err := service.CreatePortalSession(cust.StripeCustomerStripeID, configs.AppURL+"/settings/billing")
	if err != nil {
		log.Printf("[ERROR] portal session: %v", err)
		return helper.Error(c, fiber.StatusBadGateway, "Failed to open billing portal")
	}

	return helper.Success(c, "OK", dto.PortalSessionResponse{URL: session.URL})
}
