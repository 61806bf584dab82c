package service

import (
	"database/sql"
	"fmt"

	"github.com/bmviana/caltrack/internal/model"
)

// GetDay returns the stored record for date, or a freshly materialized
// empty record when none exists. Reading never creates storage; the
// empty record is only committed once a mutation goes through PutDay.
func GetDay(db *sql.DB, date string) (model.DayRecord, error) {
	if err := validateDate(date); err != nil {
		return model.DayRecord{}, err
	}
	rec := model.NewDayRecord(date)

	var water int
	var seq int64
	err := db.QueryRow(`SELECT water_ml, entry_seq FROM day_logs WHERE date = ?`, date).Scan(&water, &seq)
	if err == sql.ErrNoRows {
		return rec, nil
	}
	if err != nil {
		return model.DayRecord{}, fmt.Errorf("load day %s: %w", date, err)
	}
	rec.WaterMl = water
	rec.EntrySeq = seq

	rows, err := db.Query(`
SELECT entry_id, slot, food_id, grams
FROM meal_entries
WHERE date = ?
ORDER BY slot, position ASC
`, date)
	if err != nil {
		return model.DayRecord{}, fmt.Errorf("load meal entries for %s: %w", date, err)
	}
	defer rows.Close()
	for rows.Next() {
		var e model.FoodEntry
		var slot string
		if err := rows.Scan(&e.ID, &slot, &e.FoodID, &e.Grams); err != nil {
			return model.DayRecord{}, fmt.Errorf("scan meal entry: %w", err)
		}
		rec.Meals[model.MealSlot(slot)] = append(rec.Meals[model.MealSlot(slot)], e)
	}
	if err := rows.Err(); err != nil {
		return model.DayRecord{}, fmt.Errorf("iterate meal entries: %w", err)
	}

	exRows, err := db.Query(`
SELECT entry_id, exercise_id, minutes
FROM exercise_entries
WHERE date = ?
ORDER BY position ASC
`, date)
	if err != nil {
		return model.DayRecord{}, fmt.Errorf("load exercise entries for %s: %w", date, err)
	}
	defer exRows.Close()
	for exRows.Next() {
		var e model.ExerciseEntry
		if err := exRows.Scan(&e.ID, &e.ExerciseID, &e.Minutes); err != nil {
			return model.DayRecord{}, fmt.Errorf("scan exercise entry: %w", err)
		}
		rec.Exercises = append(rec.Exercises, e)
	}
	if err := exRows.Err(); err != nil {
		return model.DayRecord{}, fmt.Errorf("iterate exercise entries: %w", err)
	}

	return rec, nil
}

// PutDay replaces the whole stored record for rec.Date in one
// transaction. It is the sole write path into the daily log.
func PutDay(db *sql.DB, rec model.DayRecord) error {
	if err := validateDate(rec.Date); err != nil {
		return err
	}
	if rec.WaterMl < 0 {
		return fmt.Errorf("water volume must be >= 0")
	}
	if rec.EntrySeq < 1 {
		return fmt.Errorf("entry sequence must be >= 1")
	}
	for slot, entries := range rec.Meals {
		if !model.ValidMealSlot(slot) {
			return fmt.Errorf("unknown meal slot %q", slot)
		}
		for _, e := range entries {
			if e.Grams <= 0 {
				return fmt.Errorf("meal entry %d in %s: grams must be > 0", e.ID, slot)
			}
		}
	}
	for _, e := range rec.Exercises {
		if e.Minutes <= 0 {
			return fmt.Errorf("exercise entry %d: minutes must be > 0", e.ID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin day tx: %w", err)
	}
	if _, err := tx.Exec(`
INSERT INTO day_logs(date, water_ml, entry_seq)
VALUES(?, ?, ?)
ON CONFLICT(date) DO UPDATE SET water_ml = excluded.water_ml, entry_seq = excluded.entry_seq, updated_at = CURRENT_TIMESTAMP
`, rec.Date, rec.WaterMl, rec.EntrySeq); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("store day %s: %w", rec.Date, err)
	}
	if _, err := tx.Exec(`DELETE FROM meal_entries WHERE date = ?`, rec.Date); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear meal entries for %s: %w", rec.Date, err)
	}
	if _, err := tx.Exec(`DELETE FROM exercise_entries WHERE date = ?`, rec.Date); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear exercise entries for %s: %w", rec.Date, err)
	}
	for _, slot := range model.MealSlots() {
		for pos, e := range rec.Meals[slot] {
			if _, err := tx.Exec(`
INSERT INTO meal_entries(date, entry_id, slot, position, food_id, grams)
VALUES(?, ?, ?, ?, ?, ?)
`, rec.Date, e.ID, string(slot), pos, e.FoodID, e.Grams); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("store meal entry %d for %s: %w", e.ID, rec.Date, err)
			}
		}
	}
	for pos, e := range rec.Exercises {
		if _, err := tx.Exec(`
INSERT INTO exercise_entries(date, entry_id, position, exercise_id, minutes)
VALUES(?, ?, ?, ?, ?)
`, rec.Date, e.ID, pos, e.ExerciseID, e.Minutes); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store exercise entry %d for %s: %w", e.ID, rec.Date, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit day %s: %w", rec.Date, err)
	}
	return nil
}

// ListDayDates returns every date that has a committed record,
// ascending.
func ListDayDates(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT date FROM day_logs ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list day dates: %w", err)
	}
	defer rows.Close()
	dates := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan day date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day dates: %w", err)
	}
	return dates, nil
}
