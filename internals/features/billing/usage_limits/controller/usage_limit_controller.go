package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusreview_backend/internals/constants"
	service "campusreview_backend/internals/features/billing/usage_limits/service"
	helper "campusreview_backend/internals/helpers"
)

type UsageLimitController struct {
	DB *gorm.DB
}

func NewUsageLimitController(db *gorm.DB) *UsageLimitController {
	return &UsageLimitController{DB: db}
}

// GetStatus reports one counter without charging it.
// GET /api/u/usage-limits?feature=
func (h *UsageLimitController) GetStatus(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	feature := strings.TrimSpace(c.Query("feature"))
	if !constants.IsMeteredFeature(feature) {
		return helper.Error(c, fiber.StatusBadRequest, "Unknown feature: "+feature)
	}

	res, err := service.Status(h.DB, userID, feature)
	if err != nil {
		log.Printf("[ERROR] usage status: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch usage")
	}

	return helper.Success(c, "OK", res)
}

type consumeRequest struct {
	Feature string `json:"feature"`
}

// Consume charges one unit of a counter. At or over the limit the counter is
// left untouched and allowed=false comes back with a 200.
// POST /api/u/usage-limits
func (h *UsageLimitController) Consume(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req consumeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if !constants.IsMeteredFeature(req.Feature) {
		return helper.Error(c, fiber.StatusBadRequest, "Unknown feature: "+req.Feature)
	}

	res, err := service.CheckAndIncrement(h.DB, userID, req.Feature)
	if err != nil {
		log.Printf("[ERROR] usage consume: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update usage")
	}

	return helper.Success(c, "OK", res)
}
