package service

import (
	"errors"

	stripe "github.com/stripe/stripe-go/v76"
	portalsession "github.com/stripe/stripe-go/v76/billingportal/session"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/invoice"
	"github.com/stripe/stripe-go/v76/refund"
	"github.com/stripe/stripe-go/v76/subscription"
)

// InitStripe sets the API key for the whole process. Call once at startup.
func InitStripe(secretKey string) {
	stripe.Key = secretKey
}

var ErrStripeNotConfigured = errors.New("stripe secret key is not configured")

// CreateCustomer registers the user with the processor. The local user id
// travels in metadata so webhooks can always map back without a DB lookup
// on email.
func CreateCustomer(email, name, userID string) (*stripe.Customer, error) {
	if stripe.Key == "" {
		return nil, ErrStripeNotConfigured
	}
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	if name != "" {
		params.Name = stripe.String(name)
	}
	params.AddMetadata("user_id", userID)
	return customer.New(params)
}

// CreateSubscription opens a default_incomplete subscription so the client
// confirms the first payment with the returned payment intent secret.
// trialDays > 0 starts the subscription trialing for that many days.
func CreateSubscription(customerID, priceID, userID string, trialDays int64) (*stripe.Subscription, error) {
	if stripe.Key == "" {
		return nil, ErrStripeNotConfigured
	}
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
		PaymentSettings: &stripe.SubscriptionPaymentSettingsParams{
			SaveDefaultPaymentMethod: stripe.String("on_subscription"),
		},
	}
	if trialDays > 0 {
		params.TrialPeriodDays = stripe.Int64(trialDays)
	}
	params.AddMetadata("user_id", userID)
	params.AddExpand("latest_invoice.payment_intent")
	return subscription.New(params)
}

// ScheduleCancel flags the subscription to end at the period boundary.
// Access stays until then.
func ScheduleCancel(stripeSubscriptionID string) (*stripe.Subscription, error) {
	if stripe.Key == "" {
		return nil, ErrStripeNotConfigured
	}
	return subscription.Update(stripeSubscriptionID, &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(true),
	})
}

// CancelNow terminates the subscription immediately.
func CancelNow(stripeSubscriptionID string) (*stripe.Subscription, error) {
	if stripe.Key == "" {
		return nil, ErrStripeNotConfigured
	}
	return subscription.Cancel(stripeSubscriptionID, nil)
}

// CreatePortalSession opens the processor-hosted billing portal for payment
// method and invoice management.
func CreatePortalSession(customerID, returnURL string) (*stripe.BillingPortalSession, error) {
	if stripe.Key == "" {
		return nil, ErrStripeNotConfigured
	}
	return portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	})
}

// RetryInvoicePayment re-attempts collection on an open invoice.
func RetryInvoicePayment(stripeInvoiceID string) (*stripe.Invoice, error) {
	if stripe.Key == "" {
		return nil, ErrStripeNotConfigured
	}
	return invoice.Pay(stripeInvoiceID, nil)
}

// SendInvoiceToCustomer emails the hosted invoice to the customer.
func SendInvoiceToCustomer(stripeInvoiceID string) (*stripe.Invoice, error) {
	if stripe.Key == "" {
		return nil, ErrStripeNotConfigured
	}
	return invoice.SendInvoice(stripeInvoiceID, nil)
}

// RefundInvoicePayment refunds the payment behind a paid invoice in full.
func RefundInvoicePayment(stripeInvoiceID string) (*stripe.Refund, error) {
	if stripe.Key == "" {
		return nil, ErrStripeNotConfigured
	}
	inv, err := invoice.Get(stripeInvoiceID, nil)
	if err != nil {
		return nil, err
	}
	if inv.PaymentIntent == nil {
		return nil, errors.New("invoice has no payment to refund")
	}
	return refund.New(&stripe.RefundParams{
		PaymentIntent: stripe.String(inv.PaymentIntent.ID),
	})
}

// PaymentIntentClientSecret digs the confirmation secret out of an expanded
// subscription, empty when the processor has not attached one (trials).
func PaymentIntentClientSecret(sub *stripe.Subscription) string {
	if sub == nil || sub.LatestInvoice == nil || sub.LatestInvoice.PaymentIntent == nil {
		return ""
	}
	return sub.LatestInvoice.PaymentIntent.ClientSecret
}
