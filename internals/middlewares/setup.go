package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"campusreview_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain: recovery first, then
// request logging, CORS and the global rate limiter.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
