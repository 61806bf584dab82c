package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/bmviana/caltrack/internal/model"
)

const (
	customFoodPrefix     = "c-f-"
	customExercisePrefix = "c-e-"
)

// Catalog is an in-memory snapshot of the merged built-in + custom
// reference tables. Aggregation resolves against it so totals stay pure
// functions over explicit inputs.
type Catalog struct {
	foods     map[string]model.Food
	exercises map[string]model.Exercise
	foodList  []model.Food
	exerList  []model.Exercise
}

func NewCatalog(foods []model.Food, exercises []model.Exercise) *Catalog {
	c := &Catalog{
		foods:     make(map[string]model.Food, len(foods)),
		exercises: make(map[string]model.Exercise, len(exercises)),
		foodList:  foods,
		exerList:  exercises,
	}
	for _, f := range foods {
		c.foods[f.ID] = f
	}
	for _, e := range exercises {
		c.exercises[e.ID] = e
	}
	return c
}

func (c *Catalog) Food(id string) (model.Food, bool) {
	f, ok := c.foods[id]
	return f, ok
}

func (c *Catalog) Exercise(id string) (model.Exercise, bool) {
	e, ok := c.exercises[id]
	return e, ok
}

// Foods returns all items in display order, built-ins first.
func (c *Catalog) Foods() []model.Food {
	return c.foodList
}

func (c *Catalog) Exercises() []model.Exercise {
	return c.exerList
}

func LoadCatalog(db *sql.DB) (*Catalog, error) {
	rows, err := db.Query(`
SELECT id, name, calories_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g, is_builtin
FROM foods
ORDER BY is_builtin DESC, rowid ASC
`)
	if err != nil {
		return nil, fmt.Errorf("load foods: %w", err)
	}
	defer rows.Close()

	foods := make([]model.Food, 0)
	for rows.Next() {
		var f model.Food
		var builtin int
		if err := rows.Scan(&f.ID, &f.Name, &f.CaloriesPer100g, &f.ProteinPer100g, &f.CarbsPer100g, &f.FatPer100g, &builtin); err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		f.Custom = builtin == 0
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}

	exRows, err := db.Query(`
SELECT id, name, calories_per_hour, is_builtin
FROM exercises
ORDER BY is_builtin DESC, rowid ASC
`)
	if err != nil {
		return nil, fmt.Errorf("load exercises: %w", err)
	}
	defer exRows.Close()

	exercises := make([]model.Exercise, 0)
	for exRows.Next() {
		var e model.Exercise
		var builtin int
		if err := exRows.Scan(&e.ID, &e.Name, &e.CaloriesPerHour, &builtin); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		e.Custom = builtin == 0
		exercises = append(exercises, e)
	}
	if err := exRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises: %w", err)
	}

	return NewCatalog(foods, exercises), nil
}

// UpsertCustomFood updates the custom item in place when its id already
// exists, otherwise mints a fresh id and inserts. Built-in rows are
// never touched through this path.
func UpsertCustomFood(db *sql.DB, item model.Food) (model.Food, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return model.Food{}, fmt.Errorf("food name is required")
	}
	if err := validateNonNegativeFloat("calories", item.CaloriesPer100g); err != nil {
		return model.Food{}, err
	}
	if err := validateNonNegativeFloat("protein", item.ProteinPer100g); err != nil {
		return model.Food{}, err
	}
	if err := validateNonNegativeFloat("carbs", item.CarbsPer100g); err != nil {
		return model.Food{}, err
	}
	if err := validateNonNegativeFloat("fat", item.FatPer100g); err != nil {
		return model.Food{}, err
	}
	item.Custom = true

	if item.ID != "" {
		res, err := db.Exec(`
UPDATE foods
SET name = ?, calories_per_100g = ?, protein_per_100g = ?, carbs_per_100g = ?, fat_per_100g = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND is_builtin = 0
`, item.Name, item.CaloriesPer100g, item.ProteinPer100g, item.CarbsPer100g, item.FatPer100g, item.ID)
		if err != nil {
			return model.Food{}, fmt.Errorf("update custom food %s: %w", item.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return model.Food{}, fmt.Errorf("read rows affected for food %s: %w", item.ID, err)
		}
		if affected == 0 {
			return model.Food{}, fmt.Errorf("custom food %s not found", item.ID)
		}
		return item, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return model.Food{}, fmt.Errorf("begin custom food tx: %w", err)
	}
	id, err := mintID(tx, "custom_food", customFoodPrefix)
	if err != nil {
		_ = tx.Rollback()
		return model.Food{}, err
	}
	item.ID = id
	if _, err := tx.Exec(`
INSERT INTO foods(id, name, calories_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g, is_builtin)
VALUES(?, ?, ?, ?, ?, ?, 0)
`, item.ID, item.Name, item.CaloriesPer100g, item.ProteinPer100g, item.CarbsPer100g, item.FatPer100g); err != nil {
		_ = tx.Rollback()
		return model.Food{}, fmt.Errorf("insert custom food: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Food{}, fmt.Errorf("commit custom food: %w", err)
	}
	return item, nil
}

// DeleteCustomFood removes the custom item if present and is a no-op
// otherwise. It never cascades into day records; entries referencing
// the id become dangling and resolve to zero.
func DeleteCustomFood(db *sql.DB, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("food id is required")
	}
	if _, err := db.Exec(`DELETE FROM foods WHERE id = ? AND is_builtin = 0`, id); err != nil {
		return fmt.Errorf("delete custom food %s: %w", id, err)
	}
	return nil
}

func UpsertCustomExercise(db *sql.DB, item model.Exercise) (model.Exercise, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return model.Exercise{}, fmt.Errorf("exercise name is required")
	}
	if err := validateNonNegativeFloat("calories per hour", item.CaloriesPerHour); err != nil {
		return model.Exercise{}, err
	}
	item.Custom = true

	if item.ID != "" {
		res, err := db.Exec(`
UPDATE exercises
SET name = ?, calories_per_hour = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND is_builtin = 0
`, item.Name, item.CaloriesPerHour, item.ID)
		if err != nil {
			return model.Exercise{}, fmt.Errorf("update custom exercise %s: %w", item.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return model.Exercise{}, fmt.Errorf("read rows affected for exercise %s: %w", item.ID, err)
		}
		if affected == 0 {
			return model.Exercise{}, fmt.Errorf("custom exercise %s not found", item.ID)
		}
		return item, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return model.Exercise{}, fmt.Errorf("begin custom exercise tx: %w", err)
	}
	id, err := mintID(tx, "custom_exercise", customExercisePrefix)
	if err != nil {
		_ = tx.Rollback()
		return model.Exercise{}, err
	}
	item.ID = id
	if _, err := tx.Exec(`
INSERT INTO exercises(id, name, calories_per_hour, is_builtin)
VALUES(?, ?, ?, 0)
`, item.ID, item.Name, item.CaloriesPerHour); err != nil {
		_ = tx.Rollback()
		return model.Exercise{}, fmt.Errorf("insert custom exercise: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Exercise{}, fmt.Errorf("commit custom exercise: %w", err)
	}
	return item, nil
}

func DeleteCustomExercise(db *sql.DB, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("exercise id is required")
	}
	if _, err := db.Exec(`DELETE FROM exercises WHERE id = ? AND is_builtin = 0`, id); err != nil {
		return fmt.Errorf("delete custom exercise %s: %w", id, err)
	}
	return nil
}

// mintID hands out the next id from the named sequence. Sequences only
// move forward, so freed ids are never reissued and can never collide
// with a built-in id.
func mintID(tx *sql.Tx, seq, prefix string) (string, error) {
	var next int64
	if err := tx.QueryRow(`SELECT next FROM id_seq WHERE name = ?`, seq).Scan(&next); err != nil {
		return "", fmt.Errorf("read id sequence %s: %w", seq, err)
	}
	if _, err := tx.Exec(`UPDATE id_seq SET next = ? WHERE name = ?`, next+1, seq); err != nil {
		return "", fmt.Errorf("advance id sequence %s: %w", seq, err)
	}
	return fmt.Sprintf("%s%d", prefix, next), nil
}

// bumpSequencePast moves the named sequence beyond n when needed, used
// by snapshot import so restored ids are not minted again.
func bumpSequencePast(db *sql.DB, seq string, n int64) error {
	if _, err := db.Exec(`UPDATE id_seq SET next = ? WHERE name = ? AND next <= ?`, n+1, seq, n); err != nil {
		return fmt.Errorf("bump id sequence %s: %w", seq, err)
	}
	return nil
}
