package data

import (
	"encoding/json"
	"sort"
	"time"
)

// WorkoutExercise is one prescribed exercise of a workout.
type WorkoutExercise struct {
	Name   string `json:"name"`
	Muscle string `json:"muscle"`
	Sets   int    `json:"sets"`
	Reps   string `json:"reps"`  // "8-12", "AMRAP"
	Rest   string `json:"rest"`  // "60s"
	Tempo  string `json:"tempo"` // "3-1-1"
}

// Workout is a saved plan. The JSON form matches the savedWorkouts array
// kept by the web client, so exported files can be imported back.
type Workout struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Duration         string              `json:"duration"`
	WorkoutsPerWeek  int                 `json:"workoutsPerWeek"`
	TargetMuscles    []string            `json:"targetMuscles"`
	Gender           string              `json:"gender"`
	Age              int                 `json:"age"`
	FitnessGoal      string              `json:"fitnessGoal"`
	Difficulty       string              `json:"difficulty"`
	TrainingSchedule map[string][]string `json:"trainingSchedule"`
	Exercises        []WorkoutExercise   `json:"exercises"`
	CreatedAt        time.Time           `json:"createdAt,omitzero"`
	UpdatedAt        time.Time           `json:"updatedAt,omitzero"`
}

// Weekdays is the display order of TrainingSchedule keys.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ScheduleDays returns the scheduled days in week order, followed by any
// other keys sorted by name.
func (w *Workout) ScheduleDays() []string {
	var days []string
	seen := make(map[string]bool, len(w.TrainingSchedule))
	for _, d := range Weekdays {
		if _, ok := w.TrainingSchedule[d]; ok {
			days = append(days, d)
			seen[d] = true
		}
	}
	var extra []string
	for d := range w.TrainingSchedule {
		if !seen[d] {
			extra = append(extra, d)
		}
	}
	sort.Strings(extra)
	return append(days, extra...)
}

// ExercisesFor returns the exercises whose muscle is trained on day.
func (w *Workout) ExercisesFor(day string) []WorkoutExercise {
	muscles := make(map[string]bool)
	for _, m := range w.TrainingSchedule[day] {
		muscles[m] = true
	}
	var out []WorkoutExercise
	for _, e := range w.Exercises {
		if muscles[e.Muscle] {
			out = append(out, e)
		}
	}
	return out
}

// UnmarshalJSON accepts numeric ids, which the web client generated from
// timestamps.
func (w *Workout) UnmarshalJSON(b []byte) error {
	type alias Workout
	aux := struct {
		*alias
		ID json.RawMessage `json:"id"`
	}{alias: (*alias)(w)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	w.ID = ""
	if len(aux.ID) == 0 || string(aux.ID) == "null" {
		return nil
	}
	var id string
	if err := json.Unmarshal(aux.ID, &id); err == nil {
		w.ID = id
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(aux.ID, &n); err != nil {
		return err
	}
	w.ID = n.String()
	return nil
}
