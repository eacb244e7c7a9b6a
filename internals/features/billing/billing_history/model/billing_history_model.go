package model

import (
	"time"

	"github.com/google/uuid"
)

// Invoice statuses as the processor reports them.
const (
	InvoiceStatusDraft         = "draft"
	InvoiceStatusOpen          = "open"
	InvoiceStatusPaid          = "paid"
	InvoiceStatusUncollectible = "uncollectible"
	InvoiceStatusVoid          = "void"
)

// BillingHistoryModel is the append-only local mirror of invoice events.
// One row per succeeded or failed invoice, upserted on the external invoice
// id so webhook replays stay single-row.
type BillingHistoryModel struct {
	BillingHistoryID     uuid.UUID `gorm:"column:billing_history_id;type:uuid;default:gen_random_uuid();primaryKey" json:"billing_history_id"`
	BillingHistoryUserID uuid.UUID `gorm:"column:billing_history_user_id;type:uuid;not null;index" json:"billing_history_user_id"`

	BillingHistoryStripeInvoiceID string `gorm:"column:billing_history_stripe_invoice_id;type:varchar(255);not null;unique" json:"billing_history_stripe_invoice_id"`

	BillingHistoryAmount   int64  `gorm:"column:billing_history_amount;not null" json:"billing_history_amount"`
	BillingHistoryCurrency string `gorm:"column:billing_history_currency;type:varchar(10);not null" json:"billing_history_currency"`
	BillingHistoryStatus   string `gorm:"column:billing_history_status;type:varchar(20);not null" json:"billing_history_status"`

	BillingHistoryDescription      *string `gorm:"column:billing_history_description;type:text" json:"billing_history_description,omitempty"`
	BillingHistoryHostedInvoiceURL *string `gorm:"column:billing_history_hosted_invoice_url;type:text" json:"billing_history_hosted_invoice_url,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BillingHistoryModel) TableName() string {
	return "billing_history"
}
