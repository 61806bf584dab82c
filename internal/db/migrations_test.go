package db_test

import (
	"path/filepath"
	"testing"

	"github.com/bmviana/caltrack/internal/db"
)

func TestApplyMigrationsIdempotent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "caltrack.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	for i := 0; i < 2; i++ {
		if err := db.ApplyMigrations(sqldb); err != nil {
			t.Fatalf("apply migrations run %d: %v", i+1, err)
		}
	}

	var versions int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&versions); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if versions == 0 {
		t.Fatalf("expected recorded migrations")
	}
}

func TestBuiltinCatalogSeeded(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "caltrack.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	var foods, exercises int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM foods WHERE is_builtin = 1`).Scan(&foods); err != nil {
		t.Fatalf("count builtin foods: %v", err)
	}
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM exercises WHERE is_builtin = 1`).Scan(&exercises); err != nil {
		t.Fatalf("count builtin exercises: %v", err)
	}
	if foods != 10 {
		t.Fatalf("expected 10 builtin foods, got %d", foods)
	}
	if exercises != 5 {
		t.Fatalf("expected 5 builtin exercises, got %d", exercises)
	}

	var calories float64
	if err := sqldb.QueryRow(`SELECT calories_per_100g FROM foods WHERE id = 'f1'`).Scan(&calories); err != nil {
		t.Fatalf("load f1: %v", err)
	}
	if calories != 130 {
		t.Fatalf("expected f1 at 130 kcal per 100g, got %v", calories)
	}
}
