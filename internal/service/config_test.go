package service_test

import (
	"testing"

	"github.com/bmviana/caltrack/internal/service"
)

func TestSetGetConfigRoundTrip(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, ok, err := service.GetConfig(db, service.ConfigMaxWaterMl); err != nil || ok {
		t.Fatalf("expected unset key, ok=%v err=%v", ok, err)
	}

	if err := service.SetConfig(db, service.ConfigMaxWaterMl, "3000"); err != nil {
		t.Fatalf("set config: %v", err)
	}
	value, ok, err := service.GetConfig(db, service.ConfigMaxWaterMl)
	if err != nil || !ok || value != "3000" {
		t.Fatalf("unexpected config read: value=%q ok=%v err=%v", value, ok, err)
	}

	// Overwrite and list.
	if err := service.SetConfig(db, service.ConfigMaxWaterMl, "2500"); err != nil {
		t.Fatalf("overwrite config: %v", err)
	}
	all, err := service.ListConfig(db)
	if err != nil {
		t.Fatalf("list config: %v", err)
	}
	if all[service.ConfigMaxWaterMl] != "2500" {
		t.Fatalf("unexpected listed config: %v", all)
	}
}

func TestWaterLimitsResolution(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	// Nothing set: defaults.
	max, step, err := service.WaterLimits(db, 0, 0)
	if err != nil {
		t.Fatalf("water limits: %v", err)
	}
	if max != service.DefaultMaxWaterMl || step != service.DefaultWaterStepMl {
		t.Fatalf("expected defaults, got max=%d step=%d", max, step)
	}

	// Stored config beats the default.
	if err := service.SetConfig(db, service.ConfigMaxWaterMl, "3000"); err != nil {
		t.Fatalf("set config: %v", err)
	}
	max, step, err = service.WaterLimits(db, 0, 0)
	if err != nil {
		t.Fatalf("water limits: %v", err)
	}
	if max != 3000 || step != service.DefaultWaterStepMl {
		t.Fatalf("expected stored max, got max=%d step=%d", max, step)
	}

	// Environment beats stored config.
	max, step, err = service.WaterLimits(db, 4000, 500)
	if err != nil {
		t.Fatalf("water limits: %v", err)
	}
	if max != 4000 || step != 500 {
		t.Fatalf("expected env override, got max=%d step=%d", max, step)
	}
}

func TestWaterLimitsRejectsGarbageStoredValue(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetConfig(db, service.ConfigWaterStepMl, "plenty"); err != nil {
		t.Fatalf("set config: %v", err)
	}
	if _, _, err := service.WaterLimits(db, 0, 0); err == nil {
		t.Fatalf("expected error for non-numeric stored value")
	}

	if err := service.SetConfig(db, service.ConfigWaterStepMl, "-250"); err != nil {
		t.Fatalf("set config: %v", err)
	}
	if _, _, err := service.WaterLimits(db, 0, 0); err == nil {
		t.Fatalf("expected error for non-positive stored value")
	}
}
