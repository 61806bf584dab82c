package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from the environment. Values of zero mean
// "not set"; callers fall back to stored config and then defaults.
type Env struct {
	DBPath      string `env:"CALTRACK_DB"`
	MaxWaterMl  int    `env:"CALTRACK_MAX_WATER_ML"`
	WaterStepMl int    `env:"CALTRACK_WATER_STEP_ML"`
}

func ParseEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxWaterMl < 0 {
		return Env{}, fmt.Errorf("CALTRACK_MAX_WATER_ML must be >= 0")
	}
	if cfg.WaterStepMl < 0 {
		return Env{}, fmt.Errorf("CALTRACK_WATER_STEP_ML must be >= 0")
	}
	return cfg, nil
}
