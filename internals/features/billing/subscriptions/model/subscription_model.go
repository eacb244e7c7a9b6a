package model

import (
	"time"

	"github.com/google/uuid"
)

// Processor-side subscription statuses, mirrored verbatim. This service
// never decides billing state on its own; webhooks overwrite these fields.
const (
	SubscriptionStatusIncomplete        = "incomplete"
	SubscriptionStatusIncompleteExpired = "incomplete_expired"
	SubscriptionStatusTrialing          = "trialing"
	SubscriptionStatusActive            = "active"
	SubscriptionStatusPastDue           = "past_due"
	SubscriptionStatusCanceled          = "canceled"
	SubscriptionStatusUnpaid            = "unpaid"
	SubscriptionStatusPaused            = "paused"
)

// SubscriptionModel is the local mirror of one processor subscription.
type SubscriptionModel struct {
	SubscriptionID     uuid.UUID `gorm:"column:subscription_id;type:uuid;default:gen_random_uuid();primaryKey" json:"subscription_id"`
	SubscriptionUserID uuid.UUID `gorm:"column:subscription_user_id;type:uuid;not null;index" json:"subscription_user_id"`

	SubscriptionStripeSubscriptionID string `gorm:"column:subscription_stripe_subscription_id;type:varchar(255);not null;unique" json:"subscription_stripe_subscription_id"`
	SubscriptionStripeCustomerID     string `gorm:"column:subscription_stripe_customer_id;type:varchar(255);not null" json:"subscription_stripe_customer_id"`

	SubscriptionStatus  string `gorm:"column:subscription_status;type:varchar(30);not null" json:"subscription_status"`
	SubscriptionPriceID string `gorm:"column:subscription_price_id;type:varchar(255);not null" json:"subscription_price_id"`

	SubscriptionCurrentPeriodStart time.Time  `gorm:"column:subscription_current_period_start;not null" json:"subscription_current_period_start"`
	SubscriptionCurrentPeriodEnd   time.Time  `gorm:"column:subscription_current_period_end;not null" json:"subscription_current_period_end"`
	SubscriptionTrialStart         *time.Time `gorm:"column:subscription_trial_start" json:"subscription_trial_start,omitempty"`
	SubscriptionTrialEnd           *time.Time `gorm:"column:subscription_trial_end" json:"subscription_trial_end,omitempty"`

	SubscriptionCancelAtPeriodEnd bool       `gorm:"column:subscription_cancel_at_period_end;not null;default:false" json:"subscription_cancel_at_period_end"`
	SubscriptionCanceledAt        *time.Time `gorm:"column:subscription_canceled_at" json:"subscription_canceled_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// IsOngoing: active or trialing counts as a subscription the user still holds.
func (s *SubscriptionModel) IsOngoing() bool {
	return s.SubscriptionStatus == SubscriptionStatusActive ||
		s.SubscriptionStatus == SubscriptionStatusTrialing
}
