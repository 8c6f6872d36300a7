package screens

import (
	"github.com/kerbaras/fitguide/pkg/catalog"
	"github.com/kerbaras/fitguide/pkg/data"
	"github.com/kerbaras/fitguide/pkg/services"
)

// SwitchScreenMsg asks the root screen to change the visible screen.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

const (
	screenGuide    = "guide"
	screenWorkouts = "workouts"
	screenAssets   = "assets"
	screenDetails  = "details"
)

// DetailsRequest opens the exercise modal.
type DetailsRequest struct {
	Name   string
	Gender catalog.Gender
}

// inputCapturer is implemented by screens that own the keyboard while a text
// input is focused.
type inputCapturer interface {
	CapturingInput() bool
}

type workoutSavedMsg struct {
	workout *data.Workout
	err     error
}

type workoutsLoadedMsg struct {
	workouts []*data.Workout
	err      error
}

type workoutDeletedMsg struct {
	title string
	err   error
}

type exportDoneMsg struct {
	path string
	err  error
}

type syncProgressMsg services.SyncProgress

type syncDoneMsg struct {
	result services.SyncResult
	err    error
}

type themeSavedMsg struct {
	name string
	err  error
}
