package universities

import (
	"log"

	"gorm.io/gorm"

	"campusreview_backend/internals/configs"
	model "campusreview_backend/internals/features/courses/universities/model"
)

// SeedDefaultUniversity inserts the single campus row the catalog scopes
// against. Name comes from env so deployments can brand themselves without
// a migration.
func SeedDefaultUniversity(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.UniversityModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	row := model.UniversityModel{
		UniversityName:      configs.GetEnv("UNIVERSITY_NAME", "東京大学"),
		UniversityShortName: configs.GetEnv("UNIVERSITY_SHORT_NAME", "東大"),
	}
	if err := db.Create(&row).Error; err != nil {
		return err
	}

	log.Printf("[INFO] seeded university %s (%s)", row.UniversityName, row.UniversityID)
	return nil
}
