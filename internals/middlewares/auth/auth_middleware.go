package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusreview_backend/internals/configs"
	profileModel "campusreview_backend/internals/features/users/user_profiles/model"
)

// AuthMiddleware verifies the auth provider's JWT and loads the caller's
// profile flags into locals. Suspended accounts are rejected here so no
// handler has to re-check.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals("user_id", userID.String())

		if err := resolveProfileFlags(c, db, userID); err != nil {
			return err
		}

		storeBasicClaimsToLocals(c, claims)
		return c.Next()
	}
}

// OptionalAuthMiddleware fills locals when a valid token is present and
// passes through anonymously otherwise.
func OptionalAuthMiddleware(db *gorm.DB) fiber.Handler {
	required := AuthMiddleware(db)
	return func(c *fiber.Ctx) error {
		if _, err := extractBearerToken(c); err != nil {
			return c.Next()
		}
		return required(c)
	}
}

func resolveProfileFlags(c *fiber.Ctx, db *gorm.DB, userID uuid.UUID) error {
	var p profileModel.UserProfileModel
	err := db.Select("user_profile_is_admin", "user_profile_status").
		First(&p, "user_profile_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// token is valid but no profile row yet; treat as plain user
			c.Locals("is_admin", false)
			return nil
		}
		log.Println("[ERROR] profile lookup:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}

	switch p.UserProfileStatus {
	case profileModel.UserStatusSuspended:
		return fiber.NewError(fiber.StatusForbidden, "Your account has been suspended")
	case profileModel.UserStatusDeleted:
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
	}

	c.Locals("is_admin", p.UserProfileIsAdmin)
	return nil
}
