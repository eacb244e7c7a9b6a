package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subscriptionController "campusreview_backend/internals/features/billing/subscriptions/controller"
	middlewares "campusreview_backend/internals/middlewares"
)

// WebhookRoutes: no auth middleware, the signature check inside the handler
// is the gate. Higher rate ceiling than browser traffic since the processor
// bursts on redelivery.
func WebhookRoutes(app *fiber.App, db *gorm.DB) {
	webhookCtrl := subscriptionController.NewWebhookController(db)

	app.Post("/api/payments/stripe/webhook",
		middlewares.WebhookRateLimiter(),
		webhookCtrl.HandleStripeWebhook,
	)
}
