package service

import (
	"strings"

	"github.com/bmviana/caltrack/internal/model"
)

// Mutators are pure: each returns a new record and leaves the input
// untouched. Invalid requests (non-positive amounts, unknown slots or
// entry ids) return the input record unchanged rather than failing;
// the caller decides whether that deserves a user-facing message.

// AddFood appends a food entry to the slot, minting a stable entry id
// from the record's counter.
func AddFood(rec model.DayRecord, slot model.MealSlot, foodID string, grams float64) model.DayRecord {
	if grams <= 0 || !model.ValidMealSlot(slot) || strings.TrimSpace(foodID) == "" {
		return rec
	}
	out := rec.Clone()
	out.Meals[slot] = append(out.Meals[slot], model.FoodEntry{ID: out.EntrySeq, FoodID: foodID, Grams: grams})
	out.EntrySeq++
	return out
}

// UpdateFood replaces the food id and quantity of the entry addressed
// by its stable id, preserving its position in the slot.
func UpdateFood(rec model.DayRecord, slot model.MealSlot, entryID int64, foodID string, grams float64) model.DayRecord {
	if grams <= 0 || !model.ValidMealSlot(slot) || strings.TrimSpace(foodID) == "" {
		return rec
	}
	for i, e := range rec.Meals[slot] {
		if e.ID != entryID {
			continue
		}
		out := rec.Clone()
		out.Meals[slot][i].FoodID = foodID
		out.Meals[slot][i].Grams = grams
		return out
	}
	return rec
}

func RemoveFood(rec model.DayRecord, slot model.MealSlot, entryID int64) model.DayRecord {
	if !model.ValidMealSlot(slot) {
		return rec
	}
	for i, e := range rec.Meals[slot] {
		if e.ID != entryID {
			continue
		}
		out := rec.Clone()
		out.Meals[slot] = append(out.Meals[slot][:i], out.Meals[slot][i+1:]...)
		return out
	}
	return rec
}

func AddExercise(rec model.DayRecord, exerciseID string, minutes float64) model.DayRecord {
	if minutes <= 0 || strings.TrimSpace(exerciseID) == "" {
		return rec
	}
	out := rec.Clone()
	out.Exercises = append(out.Exercises, model.ExerciseEntry{ID: out.EntrySeq, ExerciseID: exerciseID, Minutes: minutes})
	out.EntrySeq++
	return out
}

func UpdateExercise(rec model.DayRecord, entryID int64, exerciseID string, minutes float64) model.DayRecord {
	if minutes <= 0 || strings.TrimSpace(exerciseID) == "" {
		return rec
	}
	for i, e := range rec.Exercises {
		if e.ID != entryID {
			continue
		}
		out := rec.Clone()
		out.Exercises[i].ExerciseID = exerciseID
		out.Exercises[i].Minutes = minutes
		return out
	}
	return rec
}

func RemoveExercise(rec model.DayRecord, entryID int64) model.DayRecord {
	for i, e := range rec.Exercises {
		if e.ID != entryID {
			continue
		}
		out := rec.Clone()
		out.Exercises = append(out.Exercises[:i], out.Exercises[i+1:]...)
		return out
	}
	return rec
}

// SetWater replaces the water volume, clamped to [0, maxWater].
func SetWater(rec model.DayRecord, ml, maxWater int) model.DayRecord {
	if ml < 0 {
		ml = 0
	}
	if ml > maxWater {
		ml = maxWater
	}
	out := rec.Clone()
	out.WaterMl = ml
	return out
}

// AddWater adjusts the water volume by delta, clamping at both ends.
// Negative deltas clamp at zero.
func AddWater(rec model.DayRecord, delta, maxWater int) model.DayRecord {
	return SetWater(rec, rec.WaterMl+delta, maxWater)
}
