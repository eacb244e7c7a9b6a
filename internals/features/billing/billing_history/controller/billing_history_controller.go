package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "campusreview_backend/internals/features/billing/billing_history/model"
	helper "campusreview_backend/internals/helpers"
)

type BillingHistoryController struct {
	DB *gorm.DB
}

func NewBillingHistoryController(db *gorm.DB) *BillingHistoryController {
	return &BillingHistoryController{DB: db}
}

// ListMine returns the caller's invoice history, newest first.
// GET /api/u/billing/history
func (h *BillingHistoryController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&model.BillingHistoryModel{}).
		Where("billing_history_user_id = ?", userID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch billing history")
	}

	var rows []model.BillingHistoryModel
	if err := tx.Order("created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch billing history")
	}

	return helper.Success(c, "OK", fiber.Map{
		"history":    rows,
		"pagination": helper.BuildPagination(paging.Page, paging.PerPage, total, len(rows)),
	})
}
