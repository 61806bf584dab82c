package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bmviana/caltrack/internal/model"
)

// SnapshotSchemaVersion is bumped whenever the snapshot layout changes
// incompatibly. Import refuses snapshots from a newer schema.
const SnapshotSchemaVersion = 1

type Snapshot struct {
	SchemaVersion   int                `json:"schema_version"`
	ExportedAt      string             `json:"exported_at"`
	CustomFoods     []SnapshotFood     `json:"custom_foods"`
	CustomExercises []SnapshotExercise `json:"custom_exercises"`
	Days            []SnapshotDay      `json:"days"`
}

type SnapshotFood struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories_per_100g"`
	Protein  float64 `json:"protein_per_100g"`
	Carbs    float64 `json:"carbs_per_100g"`
	Fat      float64 `json:"fat_per_100g"`
}

type SnapshotExercise struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories_per_hour"`
}

type SnapshotDay struct {
	Date      string                         `json:"date"`
	Meals     map[string][]SnapshotFoodEntry `json:"meals"`
	Exercises []SnapshotExerciseEntry        `json:"exercises"`
	WaterMl   int                            `json:"water_ml"`
}

type SnapshotFoodEntry struct {
	FoodID string  `json:"food_id"`
	Grams  float64 `json:"grams"`
}

type SnapshotExerciseEntry struct {
	ExerciseID string  `json:"exercise_id"`
	Minutes    float64 `json:"minutes"`
}

type ImportStats struct {
	Foods          int `json:"foods"`
	Exercises      int `json:"exercises"`
	Days           int `json:"days"`
	SkippedItems   int `json:"skipped_items"`
	SkippedEntries int `json:"skipped_entries"`
}

func ExportSnapshot(db *sql.DB) (*Snapshot, error) {
	cat, err := LoadCatalog(db)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		SchemaVersion:   SnapshotSchemaVersion,
		ExportedAt:      time.Now().Format(time.RFC3339),
		CustomFoods:     make([]SnapshotFood, 0),
		CustomExercises: make([]SnapshotExercise, 0),
		Days:            make([]SnapshotDay, 0),
	}
	for _, f := range cat.Foods() {
		if !f.Custom {
			continue
		}
		snap.CustomFoods = append(snap.CustomFoods, SnapshotFood{
			ID:       f.ID,
			Name:     f.Name,
			Calories: f.CaloriesPer100g,
			Protein:  f.ProteinPer100g,
			Carbs:    f.CarbsPer100g,
			Fat:      f.FatPer100g,
		})
	}
	for _, e := range cat.Exercises() {
		if !e.Custom {
			continue
		}
		snap.CustomExercises = append(snap.CustomExercises, SnapshotExercise{
			ID:       e.ID,
			Name:     e.Name,
			Calories: e.CaloriesPerHour,
		})
	}

	dates, err := ListDayDates(db)
	if err != nil {
		return nil, err
	}
	for _, date := range dates {
		rec, err := GetDay(db, date)
		if err != nil {
			return nil, err
		}
		day := SnapshotDay{
			Date:      rec.Date,
			Meals:     make(map[string][]SnapshotFoodEntry, len(rec.Meals)),
			Exercises: make([]SnapshotExerciseEntry, 0, len(rec.Exercises)),
			WaterMl:   rec.WaterMl,
		}
		for _, slot := range model.MealSlots() {
			entries := make([]SnapshotFoodEntry, 0, len(rec.Meals[slot]))
			for _, e := range rec.Meals[slot] {
				entries = append(entries, SnapshotFoodEntry{FoodID: e.FoodID, Grams: e.Grams})
			}
			day.Meals[string(slot)] = entries
		}
		for _, e := range rec.Exercises {
			day.Exercises = append(day.Exercises, SnapshotExerciseEntry{ExerciseID: e.ExerciseID, Minutes: e.Minutes})
		}
		snap.Days = append(snap.Days, day)
	}
	return snap, nil
}

// ImportSnapshot restores a snapshot row by row. Invalid rows (bad
// dates, unknown slots, non-positive amounts, built-in id collisions)
// are skipped and counted, never fatal; the day records that do import
// replace whatever was stored for their dates.
func ImportSnapshot(db *sql.DB, snap *Snapshot, maxWater int) (ImportStats, error) {
	stats := ImportStats{}
	if snap == nil {
		return stats, fmt.Errorf("snapshot is required")
	}
	if snap.SchemaVersion > SnapshotSchemaVersion {
		return stats, fmt.Errorf("snapshot schema version %d is newer than supported version %d", snap.SchemaVersion, SnapshotSchemaVersion)
	}

	for _, f := range snap.CustomFoods {
		if !importCustomFood(db, f) {
			stats.SkippedItems++
			continue
		}
		stats.Foods++
	}
	for _, e := range snap.CustomExercises {
		if !importCustomExercise(db, e) {
			stats.SkippedItems++
			continue
		}
		stats.Exercises++
	}

	for _, day := range snap.Days {
		if err := validateDate(day.Date); err != nil {
			stats.SkippedEntries++
			continue
		}
		rec := model.NewDayRecord(day.Date)
		for slot, entries := range day.Meals {
			for _, e := range entries {
				next := AddFood(rec, model.MealSlot(slot), e.FoodID, e.Grams)
				if next.EntrySeq == rec.EntrySeq {
					stats.SkippedEntries++
				}
				rec = next
			}
		}
		for _, e := range day.Exercises {
			next := AddExercise(rec, e.ExerciseID, e.Minutes)
			if next.EntrySeq == rec.EntrySeq {
				stats.SkippedEntries++
			}
			rec = next
		}
		rec = SetWater(rec, day.WaterMl, maxWater)
		if err := PutDay(db, rec); err != nil {
			return stats, err
		}
		stats.Days++
	}
	return stats, nil
}

func importCustomFood(db *sql.DB, f SnapshotFood) bool {
	id := strings.TrimSpace(f.ID)
	if !strings.HasPrefix(id, customFoodPrefix) {
		return false
	}
	if strings.TrimSpace(f.Name) == "" || f.Calories < 0 || f.Protein < 0 || f.Carbs < 0 || f.Fat < 0 {
		return false
	}
	_, err := db.Exec(`
INSERT INTO foods(id, name, calories_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g, is_builtin)
VALUES(?, ?, ?, ?, ?, ?, 0)
ON CONFLICT(id) DO UPDATE SET
  name = excluded.name,
  calories_per_100g = excluded.calories_per_100g,
  protein_per_100g = excluded.protein_per_100g,
  carbs_per_100g = excluded.carbs_per_100g,
  fat_per_100g = excluded.fat_per_100g,
  updated_at = CURRENT_TIMESTAMP
WHERE is_builtin = 0
`, id, strings.TrimSpace(f.Name), f.Calories, f.Protein, f.Carbs, f.Fat)
	if err != nil {
		return false
	}
	if n := sequenceSuffix(id, customFoodPrefix); n > 0 {
		_ = bumpSequencePast(db, "custom_food", n)
	}
	return true
}

func importCustomExercise(db *sql.DB, e SnapshotExercise) bool {
	id := strings.TrimSpace(e.ID)
	if !strings.HasPrefix(id, customExercisePrefix) {
		return false
	}
	if strings.TrimSpace(e.Name) == "" || e.Calories < 0 {
		return false
	}
	_, err := db.Exec(`
INSERT INTO exercises(id, name, calories_per_hour, is_builtin)
VALUES(?, ?, ?, 0)
ON CONFLICT(id) DO UPDATE SET
  name = excluded.name,
  calories_per_hour = excluded.calories_per_hour,
  updated_at = CURRENT_TIMESTAMP
WHERE is_builtin = 0
`, id, strings.TrimSpace(e.Name), e.Calories)
	if err != nil {
		return false
	}
	if n := sequenceSuffix(id, customExercisePrefix); n > 0 {
		_ = bumpSequencePast(db, "custom_exercise", n)
	}
	return true
}

func sequenceSuffix(id, prefix string) int64 {
	n, err := strconv.ParseInt(strings.TrimPrefix(id, prefix), 10, 64)
	if err != nil || n < 1 {
		return 0
	}
	return n
}
