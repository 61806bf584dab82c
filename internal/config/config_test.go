package config_test

import (
	"testing"

	"github.com/bmviana/caltrack/internal/config"
)

func TestParseEnvDefaults(t *testing.T) {
	t.Setenv("CALTRACK_DB", "")
	t.Setenv("CALTRACK_MAX_WATER_ML", "")
	t.Setenv("CALTRACK_WATER_STEP_ML", "")

	cfg, err := config.ParseEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.DBPath != "" || cfg.MaxWaterMl != 0 || cfg.WaterStepMl != 0 {
		t.Fatalf("expected zero values, got %+v", cfg)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("CALTRACK_DB", "/tmp/journal.db")
	t.Setenv("CALTRACK_MAX_WATER_ML", "3000")
	t.Setenv("CALTRACK_WATER_STEP_ML", "500")

	cfg, err := config.ParseEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.DBPath != "/tmp/journal.db" || cfg.MaxWaterMl != 3000 || cfg.WaterStepMl != 500 {
		t.Fatalf("unexpected env config: %+v", cfg)
	}
}

func TestParseEnvRejectsNegatives(t *testing.T) {
	t.Setenv("CALTRACK_MAX_WATER_ML", "-1")
	if _, err := config.ParseEnv(); err == nil {
		t.Fatalf("expected error for negative ceiling")
	}
}
