package service_test

import (
	"testing"

	"github.com/bmviana/caltrack/internal/model"
	"github.com/bmviana/caltrack/internal/service"
)

func TestGetDayAbsentReturnsEmptyWithoutPersisting(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	rec, err := service.GetDay(db, "2026-08-30")
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if !rec.Empty() {
		t.Fatalf("expected empty record, got %+v", rec)
	}
	if rec.Date != "2026-08-30" || rec.EntrySeq != 1 {
		t.Fatalf("unexpected fresh record: date=%s seq=%d", rec.Date, rec.EntrySeq)
	}

	dates, err := service.ListDayDates(db)
	if err != nil {
		t.Fatalf("list day dates: %v", err)
	}
	if len(dates) != 0 {
		t.Fatalf("reading must not create storage, found dates %v", dates)
	}
}

func TestPutDayGetDayRoundTrip(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	rec := model.NewDayRecord("2026-08-30")
	rec = service.AddFood(rec, model.Breakfast, "f1", 200)
	rec = service.AddFood(rec, model.Breakfast, "f2", 80)
	rec = service.AddFood(rec, model.Dinner, "c-f-1", 150)
	rec = service.AddExercise(rec, "e1", 30)
	rec = service.SetWater(rec, 750, service.DefaultMaxWaterMl)

	if err := service.PutDay(db, rec); err != nil {
		t.Fatalf("put day: %v", err)
	}
	got, err := service.GetDay(db, "2026-08-30")
	if err != nil {
		t.Fatalf("get day: %v", err)
	}

	if got.WaterMl != 750 {
		t.Fatalf("expected 750 ml water, got %d", got.WaterMl)
	}
	if got.EntrySeq != rec.EntrySeq {
		t.Fatalf("entry counter not persisted: want %d, got %d", rec.EntrySeq, got.EntrySeq)
	}
	bf := got.Meals[model.Breakfast]
	if len(bf) != 2 || bf[0].ID != 1 || bf[0].FoodID != "f1" || bf[0].Grams != 200 || bf[1].ID != 2 {
		t.Fatalf("breakfast did not round-trip: %+v", bf)
	}
	dn := got.Meals[model.Dinner]
	if len(dn) != 1 || dn[0].FoodID != "c-f-1" {
		t.Fatalf("dinner did not round-trip: %+v", dn)
	}
	if len(got.Exercises) != 1 || got.Exercises[0].ID != 4 || got.Exercises[0].Minutes != 30 {
		t.Fatalf("exercises did not round-trip: %+v", got.Exercises)
	}
}

func TestPutDayReplacesWholeRecord(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	rec := model.NewDayRecord("2026-08-30")
	rec = service.AddFood(rec, model.Lunch, "f1", 100)
	rec = service.AddFood(rec, model.Lunch, "f2", 200)
	if err := service.PutDay(db, rec); err != nil {
		t.Fatalf("put day: %v", err)
	}

	rec = service.RemoveFood(rec, model.Lunch, 1)
	rec = service.SetWater(rec, 500, service.DefaultMaxWaterMl)
	if err := service.PutDay(db, rec); err != nil {
		t.Fatalf("put day again: %v", err)
	}

	got, err := service.GetDay(db, "2026-08-30")
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if len(got.Meals[model.Lunch]) != 1 || got.Meals[model.Lunch][0].ID != 2 {
		t.Fatalf("stale entries survived replace: %+v", got.Meals[model.Lunch])
	}
	if got.WaterMl != 500 {
		t.Fatalf("expected 500 ml water, got %d", got.WaterMl)
	}
}

func TestPutDayValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.PutDay(db, model.NewDayRecord("30-08-2026")); err == nil {
		t.Fatalf("expected invalid date error")
	}
	if err := service.PutDay(db, model.NewDayRecord("2026-13-01")); err == nil {
		t.Fatalf("expected out-of-range date error")
	}

	bad := model.NewDayRecord("2026-08-30")
	bad.WaterMl = -1
	if err := service.PutDay(db, bad); err == nil {
		t.Fatalf("expected negative water error")
	}

	bad = model.NewDayRecord("2026-08-30")
	bad.Meals[model.Lunch] = append(bad.Meals[model.Lunch], model.FoodEntry{ID: 1, FoodID: "f1", Grams: 0})
	if err := service.PutDay(db, bad); err == nil {
		t.Fatalf("expected non-positive grams error")
	}
}

func TestGetDayRejectsMalformedDates(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	for _, date := range []string{"", "2026-8-3", "not-a-date", "2026-02-30"} {
		if _, err := service.GetDay(db, date); err == nil {
			t.Fatalf("expected error for date %q", date)
		}
	}
}

func TestListDayDatesAscending(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	for _, date := range []string{"2026-08-30", "2026-08-28", "2026-08-29"} {
		rec := model.NewDayRecord(date)
		rec = service.SetWater(rec, 250, service.DefaultMaxWaterMl)
		if err := service.PutDay(db, rec); err != nil {
			t.Fatalf("put day %s: %v", date, err)
		}
	}

	dates, err := service.ListDayDates(db)
	if err != nil {
		t.Fatalf("list day dates: %v", err)
	}
	want := []string{"2026-08-28", "2026-08-29", "2026-08-30"}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %v", len(want), dates)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, dates)
		}
	}
}
