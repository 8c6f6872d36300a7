package data

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

const workoutColumns = `id, title, duration, workouts_per_week, target_muscles, gender, age,
	fitness_goal, difficulty, training_schedule, exercises, created_at, updated_at`

// SaveWorkout inserts or replaces w. A missing ID is generated and a zero
// CreatedAt is set to now; UpdatedAt always moves to now.
func (r *Repository) SaveWorkout(w *Workout) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now

	targets, err := json.Marshal(orEmpty(w.TargetMuscles))
	if err != nil {
		return fmt.Errorf("failed to encode target muscles: %w", err)
	}
	schedule := w.TrainingSchedule
	if schedule == nil {
		schedule = map[string][]string{}
	}
	scheduleJSON, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	exercises := w.Exercises
	if exercises == nil {
		exercises = []WorkoutExercise{}
	}
	exercisesJSON, err := json.Marshal(exercises)
	if err != nil {
		return fmt.Errorf("failed to encode exercises: %w", err)
	}

	query := `INSERT OR REPLACE INTO workouts (` + workoutColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.Exec(query,
		w.ID, w.Title, w.Duration, w.WorkoutsPerWeek, string(targets), w.Gender, w.Age,
		w.FitnessGoal, w.Difficulty, string(scheduleJSON), string(exercisesJSON),
		w.CreatedAt, w.UpdatedAt)
	return err
}

// GetWorkout returns nil, nil when no workout has id.
func (r *Repository) GetWorkout(id string) (*Workout, error) {
	row := r.db.QueryRow(`SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, id)
	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return w, err
}

// ListWorkouts returns every workout, oldest first.
func (r *Repository) ListWorkouts() ([]*Workout, error) {
	rows, err := r.db.Query(`SELECT ` + workoutColumns + ` FROM workouts ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []*Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// DeleteWorkout reports whether a row was removed.
func (r *Repository) DeleteWorkout(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ExportWorkouts writes every workout as a savedWorkouts JSON array.
func (r *Repository) ExportWorkouts(w io.Writer) error {
	workouts, err := r.ListWorkouts()
	if err != nil {
		return err
	}
	if workouts == nil {
		workouts = []*Workout{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(workouts)
}

// ImportWorkouts reads a savedWorkouts JSON array and saves each entry,
// last writer wins on id. It returns how many workouts were saved.
func (r *Repository) ImportWorkouts(rd io.Reader) (int, error) {
	var workouts []*Workout
	if err := json.NewDecoder(rd).Decode(&workouts); err != nil {
		return 0, fmt.Errorf("failed to decode workouts: %w", err)
	}
	saved := 0
	for _, w := range workouts {
		if w == nil {
			continue
		}
		if err := r.SaveWorkout(w); err != nil {
			return saved, fmt.Errorf("failed to save workout %q: %w", w.Title, err)
		}
		saved++
	}
	return saved, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkout(s scanner) (*Workout, error) {
	var (
		w                                  Workout
		duration, gender, goal, difficulty sql.NullString
		targets, schedule, exercises       sql.NullString
		perWeek, age                       sql.NullInt64
		createdAt, updatedAt               sql.NullTime
	)
	err := s.Scan(&w.ID, &w.Title, &duration, &perWeek, &targets, &gender, &age,
		&goal, &difficulty, &schedule, &exercises, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	w.Duration = duration.String
	w.WorkoutsPerWeek = int(perWeek.Int64)
	w.Gender = gender.String
	w.Age = int(age.Int64)
	w.FitnessGoal = goal.String
	w.Difficulty = difficulty.String
	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	if err := decodeColumn(targets, &w.TargetMuscles); err != nil {
		return nil, fmt.Errorf("workout %s target muscles: %w", w.ID, err)
	}
	if err := decodeColumn(schedule, &w.TrainingSchedule); err != nil {
		return nil, fmt.Errorf("workout %s schedule: %w", w.ID, err)
	}
	if err := decodeColumn(exercises, &w.Exercises); err != nil {
		return nil, fmt.Errorf("workout %s exercises: %w", w.ID, err)
	}
	return &w, nil
}

func decodeColumn(col sql.NullString, v any) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), v)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
