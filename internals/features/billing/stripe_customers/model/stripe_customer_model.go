package model

import (
	"time"

	"github.com/google/uuid"
)

// StripeCustomerModel links a local user to the processor's customer record.
// Created lazily the first time the user subscribes.
type StripeCustomerModel struct {
	StripeCustomerID     uuid.UUID `gorm:"column:stripe_customer_id;type:uuid;default:gen_random_uuid();primaryKey" json:"stripe_customer_id"`
	StripeCustomerUserID uuid.UUID `gorm:"column:stripe_customer_user_id;type:uuid;not null;unique" json:"stripe_customer_user_id"`

	StripeCustomerStripeID string  `gorm:"column:stripe_customer_stripe_id;type:varchar(255);not null;unique" json:"stripe_customer_stripe_id"`
	StripeCustomerEmail    string  `gorm:"column:stripe_customer_email;type:varchar(255);not null" json:"stripe_customer_email"`
	StripeCustomerName     *string `gorm:"column:stripe_customer_name;type:varchar(255)" json:"stripe_customer_name,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StripeCustomerModel) TableName() string {
	return "stripe_customers"
}
