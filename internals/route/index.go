package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	details "campusreview_backend/internals/route/details"
)

// SetupRoutes mounts the four route groups: public catalog, authenticated
// user surface, admin surface, and the payment webhook.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	details.PublicRoutes(app, db)
	details.UserRoutes(app, db)
	details.AdminRoutes(app, db)
	details.WebhookRoutes(app, db)
}
