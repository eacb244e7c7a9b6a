package controller

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	dto "campusreview_backend/internals/features/billing/subscriptions/dto"
	model "campusreview_backend/internals/features/billing/subscriptions/model"
)

func TestSubscribeRejection(t *testing.T) {
	status, _ := subscribeRejection(false)
	assert.Zero(t, status)

	// A second ongoing subscription is a bad request, not a conflict.
	status, msg := subscribeRejection(true)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, msg, "active subscription")
}

func TestCancelRejection(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		scheduled   bool
		immediately bool
		want        int
	}{
		{"active cancels fine", model.SubscriptionStatusActive, false, false, 0},
		{"trialing cancels fine", model.SubscriptionStatusTrialing, false, false, 0},
		{"already canceled", model.SubscriptionStatusCanceled, false, false, fiber.StatusBadRequest},
		{"already canceled even immediate", model.SubscriptionStatusCanceled, false, true, fiber.StatusBadRequest},
		{"already scheduled", model.SubscriptionStatusActive, true, false, fiber.StatusBadRequest},
		{"scheduled can still cancel now", model.SubscriptionStatusActive, true, true, 0},
	}

	for _, tt := range tests {
		got, _ := cancelRejection(tt.status, tt.scheduled, tt.immediately)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestCreateSubscriptionRequestTrialDays(t *testing.T) {
	ok := dto.CreateSubscriptionRequest{Plan: dto.PlanMonthly, TrialDays: 14}
	assert.NoError(t, validate.Struct(&ok))

	// Omitted trial is the default paid start.
	none := dto.CreateSubscriptionRequest{Plan: dto.PlanYearly}
	assert.NoError(t, validate.Struct(&none))

	neg := dto.CreateSubscriptionRequest{Plan: dto.PlanMonthly, TrialDays: -1}
	assert.Error(t, validate.Struct(&neg))

	long := dto.CreateSubscriptionRequest{Plan: dto.PlanMonthly, TrialDays: 365}
	assert.Error(t, validate.Struct(&long))
}
