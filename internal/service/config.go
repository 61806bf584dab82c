package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

const (
	ConfigMaxWaterMl  = "water.max_ml"
	ConfigWaterStepMl = "water.step_ml"
)

const (
	DefaultMaxWaterMl  = 2250
	DefaultWaterStepMl = 250
)

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`, key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// WaterLimits resolves the water ceiling and increment. Environment
// overrides win over stored config, stored config over defaults; a
// zero env value means unset.
func WaterLimits(db *sql.DB, envMax, envStep int) (int, int, error) {
	max, err := resolveWaterValue(db, ConfigMaxWaterMl, envMax, DefaultMaxWaterMl)
	if err != nil {
		return 0, 0, err
	}
	step, err := resolveWaterValue(db, ConfigWaterStepMl, envStep, DefaultWaterStepMl)
	if err != nil {
		return 0, 0, err
	}
	return max, step, nil
}

func resolveWaterValue(db *sql.DB, key string, envValue, fallback int) (int, error) {
	if envValue > 0 {
		return envValue, nil
	}
	stored, ok, err := GetConfig(db, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(stored)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("config %s must be a positive integer, got %q", key, stored)
	}
	return v, nil
}
