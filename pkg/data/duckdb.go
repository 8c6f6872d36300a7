package data

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb/v2"
)

const schema = `
CREATE TABLE IF NOT EXISTS workouts (
	id VARCHAR PRIMARY KEY,
	title VARCHAR NOT NULL,
	duration VARCHAR,
	workouts_per_week INTEGER,
	target_muscles VARCHAR,
	gender VARCHAR,
	age INTEGER,
	fitness_goal VARCHAR,
	difficulty VARCHAR,
	training_schedule VARCHAR,
	exercises VARCHAR,
	created_at TIMESTAMP,
	updated_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS preferences (
	key VARCHAR PRIMARY KEY,
	value VARCHAR,
	updated_at TIMESTAMP
);
`

// InitDuckDB opens (creating if needed) the database at path and its schema.
func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

type Repository struct {
	db *sql.DB
}

var duckDB *sql.DB

// NewDuckDBRepository returns a repository over the process-wide database,
// opening it at path on first use.
func NewDuckDBRepository(path string) (*Repository, error) {
	if duckDB == nil {
		db, err := InitDuckDB(path)
		if err != nil {
			return nil, err
		}
		duckDB = db
	}

	return &Repository{db: duckDB}, nil
}

// NewRepository wraps an already initialized database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Close() error {
	if r.db == duckDB {
		duckDB = nil
	}
	return r.db.Close()
}
