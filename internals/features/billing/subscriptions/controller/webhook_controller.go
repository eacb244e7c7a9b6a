package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76/webhook"
	"gorm.io/gorm"

	"campusreview_backend/internals/configs"
	service "campusreview_backend/internals/features/billing/subscriptions/service"
	helper "campusreview_backend/internals/helpers"
)

type WebhookController struct {
	DB *gorm.DB
}

func NewWebhookController(db *gorm.DB) *WebhookController {
	return &WebhookController{DB: db}
}

// HandleStripeWebhook verifies the signature, then dispatches. A bad
// signature is a hard 400; a handler failure is a 500 so the processor
// redelivers.
// POST /api/payments/stripe/webhook
func (h *WebhookController) HandleStripeWebhook(c *fiber.Ctx) error {
	secret := configs.StripeWebhookSecret
	if secret == "" {
		log.Println("[ERROR] webhook received but STRIPE_WEBHOOK_SECRET is not set")
		return helper.Error(c, fiber.StatusServiceUnavailable, "Webhook is not configured")
	}

	event, err := webhook.ConstructEvent(c.Body(), c.Get("Stripe-Signature"), secret)
	if err != nil {
		log.Printf("[WARN] webhook signature verification failed: %v", err)
		return helper.Error(c, fiber.StatusBadRequest, "Invalid signature")
	}

	if err := service.HandleWebhookEvent(h.DB, event); err != nil {
		log.Printf("[ERROR] webhook %s (%s): %v", event.Type, event.ID, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Event processing failed")
	}

	return c.SendStatus(fiber.StatusOK)
}
