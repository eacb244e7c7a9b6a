package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentActions_ClosedSet(t *testing.T) {
	for _, action := range []string{
		"cancel_subscription", "retry_invoice", "send_invoice", "refund_last_payment",
	} {
		_, ok := paymentActions[action]
		assert.True(t, ok, "missing action %s", action)
	}

	for _, action := range []string{"", "refund", "pause"} {
		_, ok := paymentActions[action]
		assert.False(t, ok, "unexpected action %s", action)
	}
}
