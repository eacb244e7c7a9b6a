package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	analyticsController "campusreview_backend/internals/features/admin/analytics/controller"
	dashboardController "campusreview_backend/internals/features/admin/dashboard/controller"
	paymentController "campusreview_backend/internals/features/admin/payments/controller"
	adminUserController "campusreview_backend/internals/features/admin/users/controller"
	courseController "campusreview_backend/internals/features/courses/courses/controller"
	"campusreview_backend/internals/middlewares/auth"
)

// AdminRoutes: management surface, JWT plus the admin flag.
func AdminRoutes(app *fiber.App, db *gorm.DB) {
	courseCtrl := courseController.NewCourseController(db)
	userCtrl := adminUserController.NewAdminUserController(db)
	paymentCtrl := paymentController.NewAdminPaymentController(db)
	dashboardCtrl := dashboardController.NewDashboardController(db)
	analyticsCtrl := analyticsController.NewAnalyticsController(db)

	admin := app.Group("/api/a", auth.AuthMiddleware(db), auth.AdminOnly())

	admin.Post("/courses", courseCtrl.CreateByAdmin)
	admin.Put("/courses/:id", courseCtrl.Update)
	admin.Delete("/courses/:id", courseCtrl.Delete)

	admin.Get("/users", userCtrl.List)
	admin.Post("/users/:id/actions", userCtrl.ExecuteAction)

	admin.Get("/payments", paymentCtrl.List)
	admin.Post("/payments/:id/actions", paymentCtrl.ExecuteAction)

	admin.Get("/dashboard", dashboardCtrl.GetStats)
	admin.Get("/analytics", analyticsCtrl.GetAnalytics)
}
