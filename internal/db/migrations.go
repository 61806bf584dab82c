package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS foods (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  calories_per_100g REAL NOT NULL CHECK(calories_per_100g >= 0),
  protein_per_100g REAL NOT NULL CHECK(protein_per_100g >= 0),
  carbs_per_100g REAL NOT NULL CHECK(carbs_per_100g >= 0),
  fat_per_100g REAL NOT NULL CHECK(fat_per_100g >= 0),
  is_builtin INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS exercises (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  calories_per_hour REAL NOT NULL CHECK(calories_per_hour >= 0),
  is_builtin INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS day_logs (
  date TEXT PRIMARY KEY,
  water_ml INTEGER NOT NULL DEFAULT 0 CHECK(water_ml >= 0),
  entry_seq INTEGER NOT NULL DEFAULT 1 CHECK(entry_seq >= 1),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS meal_entries (
  date TEXT NOT NULL,
  entry_id INTEGER NOT NULL,
  slot TEXT NOT NULL CHECK(slot IN ('breakfast', 'lunch', 'dinner', 'snacks')),
  position INTEGER NOT NULL,
  food_id TEXT NOT NULL,
  grams REAL NOT NULL CHECK(grams > 0),
  PRIMARY KEY(date, entry_id),
  FOREIGN KEY(date) REFERENCES day_logs(date) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_meal_entries_date_slot ON meal_entries(date, slot);

CREATE TABLE IF NOT EXISTS exercise_entries (
  date TEXT NOT NULL,
  entry_id INTEGER NOT NULL,
  position INTEGER NOT NULL,
  exercise_id TEXT NOT NULL,
  minutes REAL NOT NULL CHECK(minutes > 0),
  PRIMARY KEY(date, entry_id),
  FOREIGN KEY(date) REFERENCES day_logs(date) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS id_seq (
  name TEXT PRIMARY KEY,
  next INTEGER NOT NULL CHECK(next >= 1)
);
`,
	},
	{
		version: 2,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

// Log entries intentionally carry no foreign key into the catalog:
// deleting a custom item must never cascade into past days. Entries
// whose catalog id no longer resolves contribute zero to totals.

type builtinFood struct {
	id       string
	name     string
	calories float64
	protein  float64
	carbs    float64
	fat      float64
}

type builtinExercise struct {
	id      string
	name    string
	perHour float64
}

var builtinFoods = []builtinFood{
	{"f1", "White rice", 130, 2.7, 28, 0.3},
	{"f2", "Grilled chicken breast", 165, 31, 0, 3.6},
	{"f3", "Apple", 95, 0.5, 25, 0.3},
	{"f4", "Boiled egg", 78, 6, 0.6, 5},
	{"f5", "Whole wheat bread", 80, 4, 14, 1},
	{"f6", "Banana", 105, 1.3, 27, 0.4},
	{"f7", "Sweet potato", 86, 1.6, 20, 0.1},
	{"f8", "Salmon", 208, 20, 0, 13},
	{"f9", "Broccoli", 34, 2.8, 7, 0.4},
	{"f10", "Olive oil", 119, 0, 0, 14},
}

var builtinExercises = []builtinExercise{
	{"e1", "Running", 600},
	{"e2", "Walking", 300},
	{"e3", "Weight training", 400},
	{"e4", "Swimming", 700},
	{"e5", "Cycling", 550},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	for _, f := range builtinFoods {
		if _, err := db.Exec(`
INSERT OR IGNORE INTO foods(id, name, calories_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g, is_builtin)
VALUES(?, ?, ?, ?, ?, ?, 1)
`, f.id, f.name, f.calories, f.protein, f.carbs, f.fat); err != nil {
			return fmt.Errorf("seed builtin food %s: %w", f.id, err)
		}
	}
	for _, e := range builtinExercises {
		if _, err := db.Exec(`
INSERT OR IGNORE INTO exercises(id, name, calories_per_hour, is_builtin)
VALUES(?, ?, ?, 1)
`, e.id, e.name, e.perHour); err != nil {
			return fmt.Errorf("seed builtin exercise %s: %w", e.id, err)
		}
	}

	for _, seq := range []string{"custom_food", "custom_exercise"} {
		if _, err := db.Exec(`INSERT OR IGNORE INTO id_seq(name, next) VALUES(?, 1)`, seq); err != nil {
			return fmt.Errorf("seed id sequence %s: %w", seq, err)
		}
	}

	return nil
}
