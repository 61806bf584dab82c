package service_test

import (
	"testing"

	"github.com/bmviana/caltrack/internal/model"
	"github.com/bmviana/caltrack/internal/service"
)

func TestAddFoodMintsStableIDs(t *testing.T) {
	t.Parallel()
	rec := model.NewDayRecord("2026-08-30")

	rec = service.AddFood(rec, model.Breakfast, "f1", 200)
	rec = service.AddFood(rec, model.Lunch, "f2", 150)
	rec = service.AddExercise(rec, "e1", 30)

	if len(rec.Meals[model.Breakfast]) != 1 || rec.Meals[model.Breakfast][0].ID != 1 {
		t.Fatalf("unexpected breakfast entries: %+v", rec.Meals[model.Breakfast])
	}
	if len(rec.Meals[model.Lunch]) != 1 || rec.Meals[model.Lunch][0].ID != 2 {
		t.Fatalf("unexpected lunch entries: %+v", rec.Meals[model.Lunch])
	}
	if len(rec.Exercises) != 1 || rec.Exercises[0].ID != 3 {
		t.Fatalf("unexpected exercises: %+v", rec.Exercises)
	}
	if rec.EntrySeq != 4 {
		t.Fatalf("expected entry counter at 4, got %d", rec.EntrySeq)
	}
}

func TestAddFoodRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	rec := model.NewDayRecord("2026-08-30")

	for _, grams := range []float64{0, -50} {
		got := service.AddFood(rec, model.Breakfast, "f1", grams)
		if len(got.Meals[model.Breakfast]) != 0 {
			t.Fatalf("grams=%v should not add an entry", grams)
		}
		if got.EntrySeq != rec.EntrySeq {
			t.Fatalf("grams=%v should not advance the counter", grams)
		}
	}
	if got := service.AddFood(rec, model.MealSlot("brunch"), "f1", 100); len(got.Meals[model.Breakfast]) != 0 || got.EntrySeq != rec.EntrySeq {
		t.Fatalf("unknown slot should be a no-op")
	}
	if got := service.AddFood(rec, model.Breakfast, "  ", 100); got.EntrySeq != rec.EntrySeq {
		t.Fatalf("blank food id should be a no-op")
	}
}

func TestMutatorsLeaveInputUntouched(t *testing.T) {
	t.Parallel()
	rec := model.NewDayRecord("2026-08-30")
	rec = service.AddFood(rec, model.Dinner, "f3", 120)

	_ = service.AddFood(rec, model.Dinner, "f4", 80)
	_ = service.UpdateFood(rec, model.Dinner, 1, "f5", 90)
	_ = service.RemoveFood(rec, model.Dinner, 1)
	_ = service.SetWater(rec, 1000, service.DefaultMaxWaterMl)

	if len(rec.Meals[model.Dinner]) != 1 {
		t.Fatalf("input record mutated: %+v", rec.Meals[model.Dinner])
	}
	if rec.Meals[model.Dinner][0].FoodID != "f3" || rec.Meals[model.Dinner][0].Grams != 120 {
		t.Fatalf("input entry mutated: %+v", rec.Meals[model.Dinner][0])
	}
	if rec.WaterMl != 0 {
		t.Fatalf("input water mutated: %d", rec.WaterMl)
	}
}

func TestUpdateFoodByEntryID(t *testing.T) {
	t.Parallel()
	rec := model.NewDayRecord("2026-08-30")
	rec = service.AddFood(rec, model.Snacks, "f1", 100)
	rec = service.AddFood(rec, model.Snacks, "f2", 50)

	got := service.UpdateFood(rec, model.Snacks, 1, "f9", 250)
	if got.Meals[model.Snacks][0].FoodID != "f9" || got.Meals[model.Snacks][0].Grams != 250 {
		t.Fatalf("entry 1 not updated: %+v", got.Meals[model.Snacks][0])
	}
	if got.Meals[model.Snacks][0].ID != 1 {
		t.Fatalf("update must keep the entry id, got %d", got.Meals[model.Snacks][0].ID)
	}
	if got.Meals[model.Snacks][1].FoodID != "f2" {
		t.Fatalf("sibling entry touched: %+v", got.Meals[model.Snacks][1])
	}

	// Unknown id leaves the record untouched.
	same := service.UpdateFood(rec, model.Snacks, 42, "f9", 250)
	if same.Meals[model.Snacks][0].FoodID != "f1" {
		t.Fatalf("unknown entry id should be a no-op")
	}
}

func TestRemoveFoodRoundTrip(t *testing.T) {
	t.Parallel()
	rec := model.NewDayRecord("2026-08-30")
	rec = service.AddFood(rec, model.Lunch, "f1", 100)
	rec = service.AddFood(rec, model.Lunch, "f2", 200)
	rec = service.AddFood(rec, model.Lunch, "f3", 300)

	got := service.RemoveFood(rec, model.Lunch, 2)
	if len(got.Meals[model.Lunch]) != 2 {
		t.Fatalf("expected 2 entries after remove, got %d", len(got.Meals[model.Lunch]))
	}
	if got.Meals[model.Lunch][0].FoodID != "f1" || got.Meals[model.Lunch][1].FoodID != "f3" {
		t.Fatalf("remove broke ordering: %+v", got.Meals[model.Lunch])
	}

	if same := service.RemoveFood(got, model.Lunch, 2); len(same.Meals[model.Lunch]) != 2 {
		t.Fatalf("removing an already removed id should be a no-op")
	}
}

func TestExerciseMutators(t *testing.T) {
	t.Parallel()
	rec := model.NewDayRecord("2026-08-30")
	rec = service.AddExercise(rec, "e1", 30)
	rec = service.AddExercise(rec, "e2", 45)

	got := service.UpdateExercise(rec, 1, "e3", 60)
	if got.Exercises[0].ExerciseID != "e3" || got.Exercises[0].Minutes != 60 {
		t.Fatalf("exercise 1 not updated: %+v", got.Exercises[0])
	}

	got = service.RemoveExercise(got, 2)
	if len(got.Exercises) != 1 || got.Exercises[0].ID != 1 {
		t.Fatalf("unexpected exercises after remove: %+v", got.Exercises)
	}

	if same := service.AddExercise(rec, "e1", 0); len(same.Exercises) != 2 {
		t.Fatalf("zero minutes should be a no-op")
	}
	if same := service.RemoveExercise(rec, 99); len(same.Exercises) != 2 {
		t.Fatalf("unknown exercise entry id should be a no-op")
	}
}

func TestSetWaterClampsAndIsIdempotent(t *testing.T) {
	t.Parallel()
	rec := model.NewDayRecord("2026-08-30")
	max := service.DefaultMaxWaterMl

	over := service.SetWater(rec, max+500, max)
	if over.WaterMl != max {
		t.Fatalf("expected clamp to %d, got %d", max, over.WaterMl)
	}
	if again := service.SetWater(over, over.WaterMl, max); again.WaterMl != max {
		t.Fatalf("clamped value must be a fixed point, got %d", again.WaterMl)
	}

	under := service.SetWater(rec, -100, max)
	if under.WaterMl != 0 {
		t.Fatalf("expected clamp to 0, got %d", under.WaterMl)
	}
	if again := service.SetWater(under, under.WaterMl, max); again.WaterMl != 0 {
		t.Fatalf("zero must be a fixed point, got %d", again.WaterMl)
	}
}

func TestAddWaterClampsBothEnds(t *testing.T) {
	t.Parallel()
	rec := model.NewDayRecord("2026-08-30")
	max := service.DefaultMaxWaterMl
	step := service.DefaultWaterStepMl

	rec = service.AddWater(rec, step, max)
	if rec.WaterMl != step {
		t.Fatalf("expected %d after one step, got %d", step, rec.WaterMl)
	}
	rec = service.AddWater(rec, -2*step, max)
	if rec.WaterMl != 0 {
		t.Fatalf("expected clamp at 0, got %d", rec.WaterMl)
	}
	rec = service.AddWater(rec, max+step, max)
	if rec.WaterMl != max {
		t.Fatalf("expected clamp at %d, got %d", max, rec.WaterMl)
	}
}
