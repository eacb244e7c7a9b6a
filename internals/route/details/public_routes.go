package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseController "campusreview_backend/internals/features/courses/courses/controller"
	reviewController "campusreview_backend/internals/features/reviews/reviews/controller"
	"campusreview_backend/internals/middlewares/auth"
)

// PublicRoutes: read-only catalog and review browsing. Auth is optional so
// signed-in callers get their own votes and the search counter applied.
func PublicRoutes(app *fiber.App, db *gorm.DB) {
	courseCtrl := courseController.NewCourseController(db)
	reviewCtrl := reviewController.NewReviewController(db)

	public := app.Group("/api/public", auth.OptionalAuthMiddleware(db))

	public.Get("/courses", courseCtrl.List)
	public.Get("/courses/:id", courseCtrl.GetByID)

	public.Get("/reviews", reviewCtrl.Search)
	public.Get("/reviews/:id", reviewCtrl.GetByID)
	public.Get("/reviews/:id/votes", reviewCtrl.GetVoteStats)
}
