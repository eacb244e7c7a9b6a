package service

import (
	"time"

	"gorm.io/gorm"
)

// GrowthPercent is (current-previous)/previous*100, rounded to two decimals.
// A zero previous period reports 0, not infinity.
func GrowthPercent(current, previous int64) float64 {
	if previous == 0 {
		return 0
	}
	raw := float64(current-previous) / float64(previous) * 100
	return float64(int64(raw*100+signOf(raw)*0.5)) / 100
}

func signOf(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}

// TrendPoint is one bucket of a time series.
type TrendPoint struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
}

// RevenuePoint is one bucket of the revenue series, amount in the smallest
// currency unit.
type RevenuePoint struct {
	Period string `json:"period"`
	Amount int64  `json:"amount"`
}

// MonthKey formats a bucket the way the series are keyed.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthlySeries buckets rows of `table` by creation month over the last
// `months` months, filling empty buckets with zero so charts have a point
// per month.
func MonthlySeries(db *gorm.DB, table, where string, args []interface{}, months int, now time.Time) ([]TrendPoint, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(months - 1), 0)

	type bucket struct {
		Period string
		Count  int64
	}
	var rows []bucket

	tx := db.Table(table).
		Select("to_char(created_at, 'YYYY-MM') AS period, COUNT(*) AS count").
		Where("created_at >= ?", start)
	if where != "" {
		tx = tx.Where(where, args...)
	}
	if err := tx.Group("period").Order("period").Scan(&rows).Error; err != nil {
		return nil, err
	}

	byPeriod := make(map[string]int64, len(rows))
	for _, r := range rows {
		byPeriod[r.Period] = r.Count
	}

	out := make([]TrendPoint, 0, months)
	for i := 0; i < months; i++ {
		key := MonthKey(start.AddDate(0, i, 0))
		out = append(out, TrendPoint{Period: key, Count: byPeriod[key]})
	}
	return out, nil
}

// DailySeries buckets rows by creation day over the last `days` days.
func DailySeries(db *gorm.DB, table, where string, args []interface{}, days int, now time.Time) ([]TrendPoint, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1))

	type bucket struct {
		Period string
		Count  int64
	}
	var rows []bucket

	tx := db.Table(table).
		Select("to_char(created_at, 'YYYY-MM-DD') AS period, COUNT(*) AS count").
		Where("created_at >= ?", start)
	if where != "" {
		tx = tx.Where(where, args...)
	}
	if err := tx.Group("period").Order("period").Scan(&rows).Error; err != nil {
		return nil, err
	}

	byPeriod := make(map[string]int64, len(rows))
	for _, r := range rows {
		byPeriod[r.Period] = r.Count
	}

	out := make([]TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		key := DayKey(start.AddDate(0, 0, i))
		out = append(out, TrendPoint{Period: key, Count: byPeriod[key]})
	}
	return out, nil
}

// DailyRevenueSeries sums paid invoice amounts per day.
func DailyRevenueSeries(db *gorm.DB, days int, now time.Time) ([]RevenuePoint, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1))

	type bucket struct {
		Period string
		Amount int64
	}
	var rows []bucket

	err := db.Table("billing_history").
		Select("to_char(created_at, 'YYYY-MM-DD') AS period, SUM(billing_history_amount) AS amount").
		Where("billing_history_status = ? AND created_at >= ?", "paid", start).
		Group("period").Order("period").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byPeriod := make(map[string]int64, len(rows))
	for _, r := range rows {
		byPeriod[r.Period] = r.Amount
	}

	out := make([]RevenuePoint, 0, days)
	for i := 0; i < days; i++ {
		key := DayKey(start.AddDate(0, 0, i))
		out = append(out, RevenuePoint{Period: key, Amount: byPeriod[key]})
	}
	return out, nil
}

// MonthlyRevenueSeries sums paid invoice amounts per month.
func MonthlyRevenueSeries(db *gorm.DB, months int, now time.Time) ([]RevenuePoint, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(months - 1), 0)

	type bucket struct {
		Period string
		Amount int64
	}
	var rows []bucket

	err := db.Table("billing_history").
		Select("to_char(created_at, 'YYYY-MM') AS period, SUM(billing_history_amount) AS amount").
		Where("billing_history_status = ? AND created_at >= ?", "paid", start).
		Group("period").Order("period").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byPeriod := make(map[string]int64, len(rows))
	for _, r := range rows {
		byPeriod[r.Period] = r.Amount
	}

	out := make([]RevenuePoint, 0, months)
	for i := 0; i < months; i++ {
		key := MonthKey(start.AddDate(0, i, 0))
		out = append(out, RevenuePoint{Period: key, Amount: byPeriod[key]})
	}
	return out, nil
}
