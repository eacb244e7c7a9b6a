package service

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type reviewAggregates struct {
	Total         int64    `gorm:"column:total"`
	AvgRating     *float64 `gorm:"column:avg_rating"`
	AvgDifficulty *float64 `gorm:"column:avg_difficulty"`
	AvgWorkload   *float64 `gorm:"column:avg_workload"`
}

// RecalcCourseAggregates recomputes the derived course fields from the
// review table and writes them back. Called inside the same transaction as
// the review mutation so readers never see a half-updated course row.
// With zero reviews the averages go back to NULL.
func RecalcCourseAggregates(tx *gorm.DB, courseID uuid.UUID) error {
	var agg reviewAggregates
	err := tx.Table("reviews").
		Select(`COUNT(*) AS total,
			AVG(review_overall_rating) AS avg_rating,
			AVG(review_difficulty)     AS avg_difficulty,
			AVG(review_workload)       AS avg_workload`).
		Where("review_course_id = ?", courseID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	return tx.Table("courses").
		Where("course_id = ?", courseID).
		Updates(map[string]interface{}{
			"course_total_reviews":      agg.Total,
			"course_average_rating":     agg.AvgRating,
			"course_average_difficulty": agg.AvgDifficulty,
			"course_average_workload":   agg.AvgWorkload,
		}).Error
}
