package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	historyController "campusreview_backend/internals/features/billing/billing_history/controller"
	subscriptionController "campusreview_backend/internals/features/billing/subscriptions/controller"
	usageController "campusreview_backend/internals/features/billing/usage_limits/controller"
	courseController "campusreview_backend/internals/features/courses/courses/controller"
	reviewController "campusreview_backend/internals/features/reviews/reviews/controller"
	profileController "campusreview_backend/internals/features/users/user_profiles/controller"
	middlewares "campusreview_backend/internals/middlewares"
	"campusreview_backend/internals/middlewares/auth"
)

// UserRoutes: everything that needs a signed-in student. Mutating endpoints
// sit behind the tighter write limiter.
func UserRoutes(app *fiber.App, db *gorm.DB) {
	courseCtrl := courseController.NewCourseController(db)
	reviewCtrl := reviewController.NewReviewController(db)
	profileCtrl := profileController.NewUserProfileController(db)
	usageCtrl := usageController.NewUsageLimitController(db)
	subCtrl := subscriptionController.NewSubscriptionController(db)
	historyCtrl := historyController.NewBillingHistoryController(db)

	user := app.Group("/api/u", auth.AuthMiddleware(db))
	write := middlewares.WriteRateLimiter()

	user.Post("/courses", write, courseCtrl.CreateByUser)
	user.Get("/courses/check-duplicate", courseCtrl.CheckDuplicate)

	user.Post("/reviews", write, reviewCtrl.Create)
	user.Get("/reviews/mine", reviewCtrl.ListMine)
	user.Put("/reviews/:id", write, reviewCtrl.Update)
	user.Delete("/reviews/:id", write, reviewCtrl.Delete)
	user.Post("/reviews/:id/vote", write, reviewCtrl.Vote)

	user.Get("/profile", profileCtrl.GetMe)
	user.Put("/profile", write, profileCtrl.UpdateMe)

	user.Get("/usage-limits", usageCtrl.GetStatus)
	user.Post("/usage-limits", usageCtrl.Consume)

	user.Post("/subscriptions", write, subCtrl.Create)
	user.Post("/subscriptions/cancel", write, subCtrl.Cancel)
	user.Get("/subscriptions", subCtrl.GetMine)
	user.Get("/billing-history", historyCtrl.ListMine)
	user.Post("/billing-portal", subCtrl.OpenPortal)
}
