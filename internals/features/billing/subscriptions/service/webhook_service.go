package service

import (
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v76"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	historyModel "campusreview_backend/internals/features/billing/billing_history/model"
	customerModel "campusreview_backend/internals/features/billing/stripe_customers/model"
	model "campusreview_backend/internals/features/billing/subscriptions/model"
	userModel "campusreview_backend/internals/features/users/user_profiles/model"
)

type webhookHandler func(db *gorm.DB, event stripe.Event) error

// Registry of the event types this service reacts to. Everything else is
// acknowledged and dropped so the processor never retries noise.
var webhookHandlers = map[string]webhookHandler{
	"customer.subscription.created": handleSubscriptionChange,
	"customer.subscription.updated": handleSubscriptionChange,
	"customer.subscription.deleted": handleSubscriptionDeleted,
	"invoice.payment_succeeded":     handleInvoicePaymentSucceeded,
	"invoice.payment_failed":        handleInvoicePaymentFailed,
	"customer.created":              handleCustomerChange,
	"customer.updated":              handleCustomerChange,
}

// HandleWebhookEvent dispatches one verified event. Handlers are idempotent:
// the processor redelivers on any non-2xx, so replaying an event must land
// on the same rows.
func HandleWebhookEvent(db *gorm.DB, event stripe.Event) error {
	handler, ok := webhookHandlers[string(event.Type)]
	if !ok {
		log.Printf("[INFO] webhook: ignoring event type %s", event.Type)
		return nil
	}
	return handler(db, event)
}

/* =========================================================
   subscription lifecycle
========================================================= */

func handleSubscriptionChange(db *gorm.DB, event stripe.Event) error {
	var sub stripe.Subscription
	if err := sonic.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("decode subscription: %w", err)
	}

	userID, err := resolveUserID(db, sub.Metadata["user_id"], customerIDOf(sub.Customer))
	if err != nil {
		return err
	}

	row := subscriptionRowFrom(&sub, userID)

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subscription_stripe_subscription_id"}},
			UpdateAll: true,
		}).Create(&row).Error; err != nil {
			return err
		}
		return applyPremiumState(tx, userID, &sub)
	})
}

func handleSubscriptionDeleted(db *gorm.DB, event stripe.Event) error {
	var sub stripe.Subscription
	if err := sonic.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("decode subscription: %w", err)
	}

	userID, err := resolveUserID(db, sub.Metadata["user_id"], customerIDOf(sub.Customer))
	if err != nil {
		return err
	}

	canceledAt := time.Now()
	if sub.CanceledAt > 0 {
		canceledAt = time.Unix(sub.CanceledAt, 0)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.SubscriptionModel{}).
			Where("subscription_stripe_subscription_id = ?", sub.ID).
			Updates(map[string]interface{}{
				"subscription_status":      model.SubscriptionStatusCanceled,
				"subscription_canceled_at": canceledAt,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&userModel.UserProfileModel{}).
			Where("user_profile_id = ?", userID).
			Updates(map[string]interface{}{
				"user_profile_is_premium":         false,
				"user_profile_premium_expires_at": nil,
			}).Error
	})
}

/* =========================================================
   invoices
========================================================= */

func handleInvoicePaymentSucceeded(db *gorm.DB, event stripe.Event) error {
	return upsertInvoice(db, event, historyModel.InvoiceStatusPaid)
}

func handleInvoicePaymentFailed(db *gorm.DB, event stripe.Event) error {
	return upsertInvoice(db, event, historyModel.InvoiceStatusOpen)
}

func upsertInvoice(db *gorm.DB, event stripe.Event, fallbackStatus string) error {
	var inv stripe.Invoice
	if err := sonic.Unmarshal(event.Data.Raw, &inv); err != nil {
		return fmt.Errorf("decode invoice: %w", err)
	}

	userID, err := resolveUserID(db, inv.Metadata["user_id"], customerIDOf(inv.Customer))
	if err != nil {
		return err
	}

	amount := inv.AmountPaid
	if amount == 0 {
		amount = inv.AmountDue
	}
	status := string(inv.Status)
	if status == "" {
		status = fallbackStatus
	}

	row := historyModel.BillingHistoryModel{
		BillingHistoryUserID:          userID,
		BillingHistoryStripeInvoiceID: inv.ID,
		BillingHistoryAmount:          amount,
		BillingHistoryCurrency:        string(inv.Currency),
		BillingHistoryStatus:          status,
	}
	if inv.Description != "" {
		row.BillingHistoryDescription = &inv.Description
	}
	if inv.HostedInvoiceURL != "" {
		row.BillingHistoryHostedInvoiceURL = &inv.HostedInvoiceURL
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "billing_history_stripe_invoice_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"billing_history_amount",
			"billing_history_status",
			"billing_history_hosted_invoice_url",
		}),
	}).Create(&row).Error
}

/* =========================================================
   customers
========================================================= */

func handleCustomerChange(db *gorm.DB, event stripe.Event) error {
	var cust stripe.Customer
	if err := sonic.Unmarshal(event.Data.Raw, &cust); err != nil {
		return fmt.Errorf("decode customer: %w", err)
	}

	rawUserID, ok := cust.Metadata["user_id"]
	if !ok {
		// Customers created outside this service carry no mapping; nothing
		// to mirror.
		log.Printf("[INFO] webhook: customer %s has no user_id metadata, skipping", cust.ID)
		return nil
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return fmt.Errorf("customer %s: bad user_id metadata: %w", cust.ID, err)
	}

	row := customerModel.StripeCustomerModel{
		StripeCustomerUserID:   userID,
		StripeCustomerStripeID: cust.ID,
		StripeCustomerEmail:    cust.Email,
	}
	if cust.Name != "" {
		row.StripeCustomerName = &cust.Name
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "stripe_customer_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"stripe_customer_stripe_id",
			"stripe_customer_email",
			"stripe_customer_name",
		}),
	}).Create(&row).Error
}

/* =========================================================
   shared
========================================================= */

func customerIDOf(c *stripe.Customer) string {
	if c == nil {
		return ""
	}
	return c.ID
}

// resolveUserID maps an event back to a local user: metadata first, then the
// mirrored customer record.
func resolveUserID(db *gorm.DB, metaUserID, stripeCustomerID string) (uuid.UUID, error) {
	if metaUserID != "" {
		if id, err := uuid.Parse(metaUserID); err == nil {
			return id, nil
		}
	}
	if stripeCustomerID == "" {
		return uuid.Nil, fmt.Errorf("event carries neither user_id metadata nor a customer id")
	}
	var cust customerModel.StripeCustomerModel
	if err := db.First(&cust, "stripe_customer_stripe_id = ?", stripeCustomerID).Error; err != nil {
		return uuid.Nil, fmt.Errorf("no local user for customer %s: %w", stripeCustomerID, err)
	}
	return cust.StripeCustomerUserID, nil
}

func subscriptionRowFrom(sub *stripe.Subscription, userID uuid.UUID) model.SubscriptionModel {
	row := model.SubscriptionModel{
		SubscriptionUserID:               userID,
		SubscriptionStripeSubscriptionID: sub.ID,
		SubscriptionStripeCustomerID:     customerIDOf(sub.Customer),
		SubscriptionStatus:               string(sub.Status),
		SubscriptionCurrentPeriodStart:   time.Unix(sub.CurrentPeriodStart, 0),
		SubscriptionCurrentPeriodEnd:     time.Unix(sub.CurrentPeriodEnd, 0),
		SubscriptionCancelAtPeriodEnd:    sub.CancelAtPeriodEnd,
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		row.SubscriptionPriceID = sub.Items.Data[0].Price.ID
	}
	if sub.TrialStart > 0 {
		t := time.Unix(sub.TrialStart, 0)
		row.SubscriptionTrialStart = &t
	}
	if sub.TrialEnd > 0 {
		t := time.Unix(sub.TrialEnd, 0)
		row.SubscriptionTrialEnd = &t
	}
	if sub.CanceledAt > 0 {
		t := time.Unix(sub.CanceledAt, 0)
		row.SubscriptionCanceledAt = &t
	}
	return row
}

// applyPremiumState derives the profile's premium flag from the processor
// status. Active and trialing grant access until the period end; everything
// else revokes it.
func applyPremiumState(tx *gorm.DB, userID uuid.UUID, sub *stripe.Subscription) error {
	status := string(sub.Status)
	premium := status == model.SubscriptionStatusActive || status == model.SubscriptionStatusTrialing

	updates := map[string]interface{}{
		"user_profile_is_premium": premium,
	}
	if premium {
		updates["user_profile_premium_expires_at"] = time.Unix(sub.CurrentPeriodEnd, 0)
	} else {
		updates["user_profile_premium_expires_at"] = nil
	}

	return tx.Model(&userModel.UserProfileModel{}).
		Where("user_profile_id = ?", userID).
		Updates(updates).Error
}
