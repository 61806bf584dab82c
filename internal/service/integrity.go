package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

// DoctorReport counts the degradations the journal tolerates at read
// time, so the user can see and optionally clean them up.
type DoctorReport struct {
	DanglingFoodRefs     int `json:"dangling_food_refs"`
	DanglingExerciseRefs int `json:"dangling_exercise_refs"`
	OrphanMealRows       int `json:"orphan_meal_rows"`
	OrphanExerciseRows   int `json:"orphan_exercise_rows"`
	DaysOverWaterLimit   int `json:"days_over_water_limit"`
	PrunedRows           int `json:"pruned_rows,omitempty"`
}

func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := copyFile(dbPath, outPath); err != nil {
		return BackupInfo{}, err
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RunDoctor reports dangling catalog references, entry rows without a
// day record, and days whose stored water exceeds the current ceiling.
// With prune set, orphan rows are deleted; dangling references are
// reported only, since the entries may become valid again if the item
// is re-imported.
func RunDoctor(db *sql.DB, maxWater int, prune bool) (DoctorReport, error) {
	report := DoctorReport{}
	if err := db.QueryRow(`
SELECT COUNT(1) FROM meal_entries m LEFT JOIN foods f ON f.id = m.food_id WHERE f.id IS NULL
`).Scan(&report.DanglingFoodRefs); err != nil {
		return report, fmt.Errorf("doctor dangling food check: %w", err)
	}
	if err := db.QueryRow(`
SELECT COUNT(1) FROM exercise_entries x LEFT JOIN exercises e ON e.id = x.exercise_id WHERE e.id IS NULL
`).Scan(&report.DanglingExerciseRefs); err != nil {
		return report, fmt.Errorf("doctor dangling exercise check: %w", err)
	}
	if err := db.QueryRow(`
SELECT COUNT(1) FROM meal_entries m LEFT JOIN day_logs d ON d.date = m.date WHERE d.date IS NULL
`).Scan(&report.OrphanMealRows); err != nil {
		return report, fmt.Errorf("doctor orphan meal check: %w", err)
	}
	if err := db.QueryRow(`
SELECT COUNT(1) FROM exercise_entries x LEFT JOIN day_logs d ON d.date = x.date WHERE d.date IS NULL
`).Scan(&report.OrphanExerciseRows); err != nil {
		return report, fmt.Errorf("doctor orphan exercise check: %w", err)
	}
	if err := db.QueryRow(`SELECT COUNT(1) FROM day_logs WHERE water_ml > ?`, maxWater).Scan(&report.DaysOverWaterLimit); err != nil {
		return report, fmt.Errorf("doctor water limit check: %w", err)
	}

	if prune && (report.OrphanMealRows > 0 || report.OrphanExerciseRows > 0) {
		tx, err := db.Begin()
		if err != nil {
			return report, fmt.Errorf("doctor prune begin tx: %w", err)
		}
		res, err := tx.Exec(`
DELETE FROM meal_entries WHERE date NOT IN (SELECT date FROM day_logs)
`)
		if err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor prune meal rows: %w", err)
		}
		n, _ := res.RowsAffected()
		report.PrunedRows += int(n)
		res, err = tx.Exec(`
DELETE FROM exercise_entries WHERE date NOT IN (SELECT date FROM day_logs)
`)
		if err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor prune exercise rows: %w", err)
		}
		n, _ = res.RowsAffected()
		report.PrunedRows += int(n)
		if err := tx.Commit(); err != nil {
			return report, fmt.Errorf("doctor prune commit: %w", err)
		}
	}

	return report, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
