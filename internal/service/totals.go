package service

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/bmviana/caltrack/internal/model"
)

type DayTotals struct {
	Date        string  `json:"date"`
	CaloriesIn  float64 `json:"calories_in"`
	CaloriesOut float64 `json:"calories_out"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	WaterMl     int     `json:"water_ml"`
}

// NetCalories may be negative; nothing clamps it.
func (t DayTotals) NetCalories() float64 {
	return t.CaloriesIn - t.CaloriesOut
}

// Active reports whether anything at all was logged for the day.
func (t DayTotals) Active() bool {
	return t.CaloriesIn != 0 || t.CaloriesOut != 0 || t.WaterMl != 0
}

type WindowReport struct {
	FromDate       string      `json:"from_date"`
	ToDate         string      `json:"to_date"`
	Days           []DayTotals `json:"days"`
	ActiveDays     int         `json:"active_days"`
	TotalIn        float64     `json:"total_calories_in"`
	TotalOut       float64     `json:"total_calories_out"`
	TotalProteinG  float64     `json:"total_protein_g"`
	TotalCarbsG    float64     `json:"total_carbs_g"`
	TotalFatG      float64     `json:"total_fat_g"`
	TotalWaterMl   int         `json:"total_water_ml"`
	AvgInPerDay    float64     `json:"avg_calories_in_per_day"`
	AvgOutPerDay   float64     `json:"avg_calories_out_per_day"`
	AvgWaterPerDay float64     `json:"avg_water_ml_per_day"`
	HighestIntake  *DayTotals  `json:"highest_intake_day,omitempty"`
	LowestIntake   *DayTotals  `json:"lowest_intake_day,omitempty"`
}

// ComputeDayTotals resolves every logged entry against the catalog and
// accumulates. Per-100g food profiles scale by grams/100, per-hour burn
// rates by minutes/60. Entries whose id no longer resolves contribute
// zero. No rounding happens here; rounding is a display concern.
func ComputeDayTotals(rec model.DayRecord, cat *Catalog) DayTotals {
	out := DayTotals{Date: rec.Date, WaterMl: rec.WaterMl}
	for _, slot := range model.MealSlots() {
		for _, e := range rec.Meals[slot] {
			food, ok := cat.Food(e.FoodID)
			if !ok {
				continue
			}
			mult := e.Grams / 100
			out.CaloriesIn += food.CaloriesPer100g * mult
			out.ProteinG += food.ProteinPer100g * mult
			out.CarbsG += food.CarbsPer100g * mult
			out.FatG += food.FatPer100g * mult
		}
	}
	for _, e := range rec.Exercises {
		ex, ok := cat.Exercise(e.ExerciseID)
		if !ok {
			continue
		}
		out.CaloriesOut += ex.CaloriesPerHour / 60 * e.Minutes
	}
	return out
}

// WindowTotals computes per-day totals for the numDays calendar dates
// ending at endDate inclusive, oldest first. Days without a stored
// record yield all-zero totals and are never persisted by the walk.
func WindowTotals(db *sql.DB, cat *Catalog, endDate string, numDays int) ([]DayTotals, error) {
	if numDays <= 0 {
		return nil, fmt.Errorf("window length must be > 0")
	}
	if err := validateDate(endDate); err != nil {
		return nil, err
	}
	end, err := time.ParseInLocation(DateLayout, endDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}

	out := make([]DayTotals, 0, numDays)
	for i := numDays - 1; i >= 0; i-- {
		date := end.AddDate(0, 0, -i).Format(DateLayout)
		rec, err := GetDay(db, date)
		if err != nil {
			return nil, err
		}
		out = append(out, ComputeDayTotals(rec, cat))
	}
	return out, nil
}

// BuildWindowReport wraps WindowTotals with aggregates for the summary
// view. Averages divide by the window length, not by active days, so a
// quiet week reads as a quiet week.
func BuildWindowReport(db *sql.DB, cat *Catalog, endDate string, numDays int) (*WindowReport, error) {
	days, err := WindowTotals(db, cat, endDate, numDays)
	if err != nil {
		return nil, err
	}
	report := &WindowReport{
		FromDate: days[0].Date,
		ToDate:   days[len(days)-1].Date,
		Days:     days,
	}
	for _, d := range days {
		report.TotalIn += d.CaloriesIn
		report.TotalOut += d.CaloriesOut
		report.TotalProteinG += d.ProteinG
		report.TotalCarbsG += d.CarbsG
		report.TotalFatG += d.FatG
		report.TotalWaterMl += d.WaterMl
		if d.Active() {
			report.ActiveDays++
		}
	}
	div := float64(len(days))
	report.AvgInPerDay = report.TotalIn / div
	report.AvgOutPerDay = report.TotalOut / div
	report.AvgWaterPerDay = float64(report.TotalWaterMl) / div
	report.HighestIntake, report.LowestIntake = extremeIntakeDays(days)
	return report, nil
}

func extremeIntakeDays(days []DayTotals) (*DayTotals, *DayTotals) {
	active := make([]DayTotals, 0, len(days))
	for _, d := range days {
		if d.Active() {
			active = append(active, d)
		}
	}
	if len(active) == 0 {
		return nil, nil
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CaloriesIn < active[j].CaloriesIn
	})
	low := active[0]
	high := active[len(active)-1]
	return &high, &low
}
