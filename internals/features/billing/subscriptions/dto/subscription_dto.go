package dto

import (
	model "campusreview_backend/internals/features/billing/subscriptions/model"
)

const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

type CreateSubscriptionRequest struct {
	Plan string `json:"plan" validate:"required,oneof=monthly yearly"`
	// TrialDays starts the subscription with a free trial of that length.
	TrialDays int64 `json:"trial_days" validate:"omitempty,min=1,max=90"`
}

type CancelSubscriptionRequest struct {
	SubscriptionID string `json:"subscription_id" validate:"omitempty,uuid"`
	// Immediately ends the subscription now instead of at the period end.
	Immediately bool `json:"immediately"`
}

// CreateSubscriptionResponse carries the client secret the frontend needs
// to confirm the first payment.
type CreateSubscriptionResponse struct {
	Subscription model.SubscriptionModel `json:"subscription"`
	ClientSecret string                  `json:"client_secret,omitempty"`
}

type PortalSessionResponse struct {
	URL string `json:"url"`
}
