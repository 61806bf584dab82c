package caltrack

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/bmviana/caltrack/internal/app"
	"github.com/bmviana/caltrack/internal/config"
	"github.com/bmviana/caltrack/internal/db"
	"github.com/bmviana/caltrack/internal/model"
	"github.com/bmviana/caltrack/internal/service"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// resolveDBPath resolves flag > environment > default location.
func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	env, err := config.ParseEnv()
	if err != nil {
		return "", err
	}
	if env.DBPath != "" {
		return env.DBPath, nil
	}
	return app.DefaultDBPath()
}

func waterLimits(sqldb *sql.DB) (int, int, error) {
	env, err := config.ParseEnv()
	if err != nil {
		return 0, 0, err
	}
	return service.WaterLimits(sqldb, env.MaxWaterMl, env.WaterStepMl)
}

func parseDateOrToday(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return service.Today(), nil
	}
	// GetDay validates again; fail fast here for a clean flag error.
	if len(value) != len(service.DateLayout) {
		return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", value)
	}
	return value, nil
}

func parseMealSlot(value string) (model.MealSlot, error) {
	slot := model.MealSlot(strings.ToLower(strings.TrimSpace(value)))
	if !model.ValidMealSlot(slot) {
		return "", fmt.Errorf("invalid --slot %q (expected breakfast, lunch, dinner, or snacks)", value)
	}
	return slot, nil
}

func parseEntryIDArg(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry id %q", value)
	}
	return id, nil
}

// hasFoodEntry checks for the entry before mutating, so commands can
// report a miss and skip the write instead of committing a record that
// didn't change.
func hasFoodEntry(rec model.DayRecord, slot model.MealSlot, entryID int64) bool {
	for _, e := range rec.Meals[slot] {
		if e.ID == entryID {
			return true
		}
	}
	return false
}

func hasExerciseEntry(rec model.DayRecord, entryID int64) bool {
	for _, e := range rec.Exercises {
		if e.ID == entryID {
			return true
		}
	}
	return false
}
