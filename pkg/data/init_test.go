package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitDuckDB(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize DB: %v", err)
	}
	defer db.Close()

	// Verify tables exist
	var tableCount int
	err = db.QueryRow(`SELECT COUNT(*) FROM information_schema.tables WHERE table_name IN ('workouts', 'preferences')`).Scan(&tableCount)
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}

	if tableCount != 2 {
		t.Errorf("Expected 2 tables, got %d", tableCount)
	}
}

func TestInitDuckDBIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize DB: %v", err)
	}
	repo := NewRepository(db)
	if err := repo.SaveWorkout(&Workout{Title: "Push"}); err != nil {
		t.Fatalf("Failed to save workout: %v", err)
	}
	db.Close()

	db, err = InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen DB: %v", err)
	}
	defer db.Close()

	workouts, err := NewRepository(db).ListWorkouts()
	if err != nil {
		t.Fatalf("Failed to list workouts: %v", err)
	}
	if len(workouts) != 1 {
		t.Errorf("Expected 1 workout after reopening, got %d", len(workouts))
	}
}

func TestInitDuckDBCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	// Use nested directory that doesn't exist
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	db, err := InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize DB with nested path: %v", err)
	}
	defer db.Close()

	// Verify file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("DB file was not created")
	}
}

func TestNewDuckDBRepositorySingleton(t *testing.T) {
	// Reset global var for testing
	oldDB := duckDB
	duckDB = nil
	defer func() { duckDB = oldDB }()

	dbPath := filepath.Join(t.TempDir(), "singleton.db")

	repo1, err := NewDuckDBRepository(dbPath)
	if err != nil {
		t.Fatalf("Failed to open repository: %v", err)
	}
	repo2, err := NewDuckDBRepository(filepath.Join(t.TempDir(), "ignored.db"))
	if err != nil {
		t.Fatalf("Failed to open repository: %v", err)
	}

	// Both should reference the same underlying DB
	if repo1.db != repo2.db {
		t.Error("Expected singleton pattern - both repos should share the same DB")
	}

	if err := repo1.Close(); err != nil {
		t.Errorf("Failed to close: %v", err)
	}
	if duckDB != nil {
		t.Error("Expected Close to release the shared DB")
	}
}
