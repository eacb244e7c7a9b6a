package constants

// Metered free-tier features. Premium bypasses every counter.
const (
	FeatureReviewsPerMonth = "reviews_per_month"
	FeatureSearchesPerDay  = "searches_per_day"
)

// Unlimited is the reported limit for premium users.
const Unlimited = -1

// Free-tier quotas.
const (
	FreeReviewsPerMonth = 5
	FreeSearchesPerDay  = 50
)

// Premium-only feature flags.
const (
	FreeAdvancedFilters   = false
	FreeExportData        = false
	FreeDetailedAnalytics = false
)

func IsMeteredFeature(feature string) bool {
	switch feature {
	case FeatureReviewsPerMonth, FeatureSearchesPerDay:
		return true
	}
	return false
}

func FreeLimitFor(feature string) int {
	switch feature {
	case FeatureReviewsPerMonth:
		return FreeReviewsPerMonth
	case FeatureSearchesPerDay:
		return FreeSearchesPerDay
	}
	return 0
}
