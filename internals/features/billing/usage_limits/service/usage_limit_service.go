package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campusreview_backend/internals/constants"
	model "campusreview_backend/internals/features/billing/usage_limits/model"
	userModel "campusreview_backend/internals/features/users/user_profiles/model"
)

// Re-exported so callers don't also import constants.
const (
	FeatureReviews  = constants.FeatureReviewsPerMonth
	FeatureSearches = constants.FeatureSearchesPerDay
)

// Result reports one counter after a check or a charge.
type Result struct {
	Allowed   bool      `json:"allowed"`
	Limit     int       `json:"limit"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
	ResetDate time.Time `json:"reset_date"`
	IsPremium bool      `json:"is_premium"`
}

// windowBoundsFor returns the start and reset instant of the current window.
// Review counters reset at the start of next month, search counters at the
// start of next day.
func windowBoundsFor(feature string, now time.Time) (time.Time, time.Time) {
	switch feature {
	case constants.FeatureReviewsPerMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	default:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 0, 1)
	}
}

func unlimitedResult(reset time.Time) Result {
	return Result{
		Allowed:   true,
		Limit:     constants.Unlimited,
		Used:      0,
		Remaining: constants.Unlimited,
		ResetDate: reset,
		IsPremium: true,
	}
}

func isPremiumUser(db *gorm.DB, userID uuid.UUID, now time.Time) (bool, error) {
	var profile userModel.UserProfileModel
	err := db.Select("user_profile_is_premium", "user_profile_premium_expires_at").
		First(&profile, "user_profile_id = ?", userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return profile.IsPremiumAt(now), nil
}

// currentRow loads the live counter row for this window, if any. Stale rows
// from past windows are left behind and simply ignored.
func currentRow(tx *gorm.DB, userID uuid.UUID, feature string, windowStart time.Time) (*model.UsageLimitModel, error) {
	var row model.UsageLimitModel
	err := tx.Where(
		"usage_limit_user_id = ? AND usage_limit_feature = ? AND usage_limit_reset_date > ?",
		userID, feature, windowStart,
	).Order("usage_limit_reset_date DESC").First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Status reports the counter without charging it.
func Status(db *gorm.DB, userID uuid.UUID, feature string) (Result, error) {
	now := time.Now()
	windowStart, reset := windowBoundsFor(feature, now)

	premium, err := isPremiumUser(db, userID, now)
	if err != nil {
		return Result{}, err
	}
	if premium {
		return unlimitedResult(reset), nil
	}

	limit := constants.FreeLimitFor(feature)
	row, err := currentRow(db, userID, feature, windowStart)
	if err != nil {
		return Result{}, err
	}

	used := 0
	if row != nil {
		used = row.UsageLimitUsedCount
		reset = row.UsageLimitResetDate
	}
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   used < limit,
		Limit:     limit,
		Used:      used,
		Remaining: remaining,
		ResetDate: reset,
	}, nil
}

// CheckAndIncrement charges one unit if the free-tier counter has room.
// Premium users always pass without a row. The increment runs inside a
// transaction with the row locked so concurrent requests cannot push the
// counter past the limit.
func CheckAndIncrement(db *gorm.DB, userID uuid.UUID, feature string) (Result, error) {
	now := time.Now()
	windowStart, reset := windowBoundsFor(feature, now)

	premium, err := isPremiumUser(db, userID, now)
	if err != nil {
		return Result{}, err
	}
	if premium {
		return unlimitedResult(reset), nil
	}

	limit := constants.FreeLimitFor(feature)
	var out Result

	err = db.Transaction(func(tx *gorm.DB) error {
		var row model.UsageLimitModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"usage_limit_user_id = ? AND usage_limit_feature = ? AND usage_limit_reset_date > ?",
				userID, feature, windowStart,
			).Order("usage_limit_reset_date DESC").First(&row).Error

		switch {
		case err == gorm.ErrRecordNotFound:
			row = model.UsageLimitModel{
				UsageLimitUserID:    userID,
				UsageLimitFeature:   feature,
				UsageLimitUsedCount: 1,
				UsageLimitResetDate: reset,
			}
			// Two first-of-window requests race to create the counter; the
			// unique (user, feature, reset_date) index makes the loser fold
			// its unit into the winner's row instead of splitting the count.
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "usage_limit_user_id"},
					{Name: "usage_limit_feature"},
					{Name: "usage_limit_reset_date"},
				},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"usage_limit_used_count": gorm.Expr("usage_limits.usage_limit_used_count + 1"),
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
			if err := tx.Where(
				"usage_limit_user_id = ? AND usage_limit_feature = ? AND usage_limit_reset_date = ?",
				userID, feature, reset,
			).First(&row).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if row.UsageLimitUsedCount >= limit {
				out = Result{
					Allowed:   false,
					Limit:     limit,
					Used:      row.UsageLimitUsedCount,
					Remaining: 0,
					ResetDate: row.UsageLimitResetDate,
				}
				return nil
			}
			row.UsageLimitUsedCount++
			if err := tx.Model(&model.UsageLimitModel{}).
				Where("usage_limit_id = ?", row.UsageLimitID).
				Update("usage_limit_used_count", row.UsageLimitUsedCount).Error; err != nil {
				return err
			}
		}

		out = Result{
			Allowed:   true,
			Limit:     limit,
			Used:      row.UsageLimitUsedCount,
			Remaining: limit - row.UsageLimitUsedCount,
			ResetDate: row.UsageLimitResetDate,
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return out, nil
}
