package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "campusreview_backend/internals/features/users/user_profiles/dto"
	model "campusreview_backend/internals/features/users/user_profiles/model"
	helper "campusreview_backend/internals/helpers"
)

var validate = validator.New()

type UserProfileController struct {
	DB *gorm.DB
}

func NewUserProfileController(db *gorm.DB) *UserProfileController {
	return &UserProfileController{DB: db}
}

// GetMe returns the caller's profile. A first-time caller gets a row created
// from their token claims so the rest of the API always has a profile to
// join against.
// GET /api/u/profile
func (h *UserProfileController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var profile model.UserProfileModel
	err = h.DB.First(&profile, "user_profile_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		email := helper.GetUserEmailFromToken(c)
		profile = model.UserProfileModel{
			UserProfileID:          userID,
			UserProfileDisplayName: displayNameFromEmail(email),
			UserProfileEmail:       email,
		}
		if err := h.DB.Create(&profile).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				// Lost a race against a concurrent first request.
				if err := h.DB.First(&profile, "user_profile_id = ?", userID).Error; err != nil {
					return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch profile")
				}
			} else {
				return helper.Error(c, fiber.StatusInternalServerError, "Failed to create profile")
			}
		}
	} else if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch profile")
	}

	return helper.Success(c, "OK", dto.ToProfileResponse(profile, time.Now()))
}

// UpdateMe applies a partial update to the caller's profile.
// PUT /api/u/profile
func (h *UserProfileController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var profile model.UserProfileModel
	if err := h.DB.First(&profile, "user_profile_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Profile not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch profile")
	}

	req.ApplyToModel(&profile)

	if err := h.DB.Save(&profile).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	return helper.Success(c, "Profile updated", dto.ToProfileResponse(profile, time.Now()))
}

func displayNameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	if email == "" {
		return "student"
	}
	return email
}
