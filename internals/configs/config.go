package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret           string
	StripeSecretKey     string
	StripeWebhookSecret string
	AppURL              string

	// Price IDs for the premium tiers, provisioned on the processor side.
	StripePremiumMonthlyPriceID string
	StripePremiumYearlyPriceID  string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using system ENV")
		}
	} else {
		log.Println("running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	StripeSecretKey = GetEnv("STRIPE_SECRET_KEY")
	StripeWebhookSecret = GetEnv("STRIPE_WEBHOOK_SECRET")
	AppURL = GetEnv("APP_URL", "http://localhost:3000")
	StripePremiumMonthlyPriceID = GetEnv("STRIPE_PREMIUM_MONTHLY_PRICE_ID")
	StripePremiumYearlyPriceID = GetEnv("STRIPE_PREMIUM_YEARLY_PRICE_ID")

	if JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set")
	}
	if StripeSecretKey == "" {
		log.Println("[WARN] STRIPE_SECRET_KEY is not set")
	}
	if StripeWebhookSecret == "" {
		log.Println("[WARN] STRIPE_WEBHOOK_SECRET is not set")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
