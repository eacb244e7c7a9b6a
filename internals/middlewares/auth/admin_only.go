package auth

import (
	"github.com/gofiber/fiber/v2"
)

// AdminOnly gates a route group behind the admin flag resolved by
// AuthMiddleware. Must run after it.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, _ := c.Locals("is_admin").(bool)
		if !isAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}
