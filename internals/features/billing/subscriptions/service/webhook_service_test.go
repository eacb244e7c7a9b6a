package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "campusreview_backend/internals/features/billing/subscriptions/model"
)

func TestWebhookHandlers_RegisteredEventTypes(t *testing.T) {
	for _, eventType := range []string{
		"customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted",
		"invoice.payment_succeeded",
		"invoice.payment_failed",
		"customer.created",
		"customer.updated",
	} {
		_, ok := webhookHandlers[eventType]
		assert.True(t, ok, "missing handler for %s", eventType)
	}

	_, ok := webhookHandlers["charge.refunded"]
	assert.False(t, ok, "unhandled types must fall through to the ignore path")
}

func TestSubscriptionRowFrom(t *testing.T) {
	userID := uuid.New()
	periodStart := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)
	trialEnd := periodStart.AddDate(0, 0, 7)

	sub := &stripe.Subscription{
		ID:                 "sub_123",
		Customer:           &stripe.Customer{ID: "cus_123"},
		Status:             stripe.SubscriptionStatusTrialing,
		CurrentPeriodStart: periodStart.Unix(),
		CurrentPeriodEnd:   periodEnd.Unix(),
		TrialStart:         periodStart.Unix(),
		TrialEnd:           trialEnd.Unix(),
		CancelAtPeriodEnd:  true,
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{
				{Price: &stripe.Price{ID: "price_premium_monthly"}},
			},
		},
	}

	row := subscriptionRowFrom(sub, userID)

	assert.Equal(t, userID, row.SubscriptionUserID)
	assert.Equal(t, "sub_123", row.SubscriptionStripeSubscriptionID)
	assert.Equal(t, "cus_123", row.SubscriptionStripeCustomerID)
	assert.Equal(t, model.SubscriptionStatusTrialing, row.SubscriptionStatus)
	assert.Equal(t, "price_premium_monthly", row.SubscriptionPriceID)
	assert.True(t, row.SubscriptionCurrentPeriodStart.Equal(periodStart))
	assert.True(t, row.SubscriptionCurrentPeriodEnd.Equal(periodEnd))
	require.NotNil(t, row.SubscriptionTrialEnd)
	assert.True(t, row.SubscriptionTrialEnd.Equal(trialEnd))
	assert.True(t, row.SubscriptionCancelAtPeriodEnd)
	assert.Nil(t, row.SubscriptionCanceledAt)
}

func TestSubscriptionRowFrom_MinimalPayload(t *testing.T) {
	row := subscriptionRowFrom(&stripe.Subscription{ID: "sub_bare"}, uuid.New())

	assert.Equal(t, "sub_bare", row.SubscriptionStripeSubscriptionID)
	assert.Empty(t, row.SubscriptionStripeCustomerID)
	assert.Empty(t, row.SubscriptionPriceID)
	assert.Nil(t, row.SubscriptionTrialStart)
	assert.Nil(t, row.SubscriptionTrialEnd)
}

func TestCustomerIDOf(t *testing.T) {
	assert.Equal(t, "", customerIDOf(nil))
	assert.Equal(t, "cus_9", customerIDOf(&stripe.Customer{ID: "cus_9"}))
}
