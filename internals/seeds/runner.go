package seeds

import (
	"log"

	"gorm.io/gorm"

	universities "campusreview_backend/internals/seeds/universities"
)

// RunAllSeeds provisions the baseline rows a fresh database needs. Every
// seed is idempotent; running twice changes nothing.
func RunAllSeeds(db *gorm.DB) {
	if err := universities.SeedDefaultUniversity(db); err != nil {
		log.Printf("[ERROR] seed universities: %v", err)
	}
}
