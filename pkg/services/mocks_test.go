package services

import (
	"context"
	"sort"

	"github.com/kerbaras/fitguide/pkg/api"
	"github.com/kerbaras/fitguide/pkg/data"
)

// memRepo is an in-memory Repository. saveFunc, when set, replaces
// SaveWorkout.
type memRepo struct {
	workouts map[string]*data.Workout
	session  data.Session
	theme    data.ThemePreferences
	prefs    data.UserPreferences
	saves    int
	saveFunc func(w *data.Workout) error
}

func newMemRepo() *memRepo {
	return &memRepo{workouts: make(map[string]*data.Workout)}
}

func (r *memRepo) SaveWorkout(w *data.Workout) error {
	r.saves++
	if r.saveFunc != nil {
		return r.saveFunc(w)
	}
	if w.ID == "" {
		w.ID = "generated-id"
	}
	cp := *w
	r.workouts[w.ID] = &cp
	return nil
}

func (r *memRepo) GetWorkout(id string) (*data.Workout, error) {
	w, ok := r.workouts[id]
	if !ok {
		return nil, nil
	}
	return w, nil
}

func (r *memRepo) ListWorkouts() ([]*data.Workout, error) {
	var out []*data.Workout
	for _, w := range r.workouts {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) DeleteWorkout(id string) (bool, error) {
	if _, ok := r.workouts[id]; !ok {
		return false, nil
	}
	delete(r.workouts, id)
	return true, nil
}

func (r *memRepo) SaveSession(s data.Session) error          { r.session = s; return nil }
func (r *memRepo) LoadSession() (data.Session, error)        { return r.session, nil }
func (r *memRepo) ClearSession() error                       { r.session = data.Session{}; return nil }
func (r *memRepo) LoadTheme() (data.ThemePreferences, error) { return r.theme, nil }
func (r *memRepo) SaveTheme(t data.ThemePreferences) error   { r.theme = t; return nil }

func (r *memRepo) LoadUserPreferences() (data.UserPreferences, error) { return r.prefs, nil }
func (r *memRepo) SaveUserPreferences(p data.UserPreferences) error {
	r.prefs = p
	return nil
}

// mockBackend implements Backend with optional function fields.
type mockBackend struct {
	token string

	loginFunc          func(ctx context.Context, username, password string) (*api.TokenResponse, error)
	loginGoogleFunc    func(ctx context.Context, idToken string) (*api.TokenResponse, error)
	meFunc             func(ctx context.Context) (*api.User, error)
	workoutRoutinesFn  func(ctx context.Context) ([]data.Workout, error)
	saveRoutineFunc    func(ctx context.Context, w *data.Workout) (*data.Workout, error)
	mealsFunc          func(ctx context.Context, date string) ([]api.Meal, error)
	logMealFunc        func(ctx context.Context, m api.Meal) (*api.Meal, error)
	searchFoodsFunc    func(ctx context.Context, query string) ([]api.Food, error)
	savePrefsFunc      func(ctx context.Context, prefs map[string]any) error
	routinesFunc       func(ctx context.Context) ([]api.Routine, error)
	routineFoldersFunc func(ctx context.Context) ([]api.RoutineFolder, error)
}

func (m *mockBackend) SetToken(token string) { m.token = token }
func (m *mockBackend) Token() string         { return m.token }

func (m *mockBackend) Login(ctx context.Context, username, password string) (*api.TokenResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, username, password)
	}
	return &api.TokenResponse{AccessToken: "token"}, nil
}

func (m *mockBackend) LoginGoogle(ctx context.Context, idToken string) (*api.TokenResponse, error) {
	if m.loginGoogleFunc != nil {
		return m.loginGoogleFunc(ctx, idToken)
	}
	return &api.TokenResponse{AccessToken: "google-token"}, nil
}

func (m *mockBackend) Me(ctx context.Context) (*api.User, error) {
	if m.meFunc != nil {
		return m.meFunc(ctx)
	}
	return &api.User{ID: "1", Username: "ana", Raw: []byte(`{"id":1,"username":"ana"}`)}, nil
}

func (m *mockBackend) WorkoutRoutines(ctx context.Context) ([]data.Workout, error) {
	if m.workoutRoutinesFn != nil {
		return m.workoutRoutinesFn(ctx)
	}
	return nil, nil
}

func (m *mockBackend) SaveWorkoutRoutine(ctx context.Context, w *data.Workout) (*data.Workout, error) {
	if m.saveRoutineFunc != nil {
		return m.saveRoutineFunc(ctx, w)
	}
	return w, nil
}

func (m *mockBackend) Meals(ctx context.Context, date string) ([]api.Meal, error) {
	if m.mealsFunc != nil {
		return m.mealsFunc(ctx, date)
	}
	return nil, nil
}

func (m *mockBackend) LogMeal(ctx context.Context, meal api.Meal) (*api.Meal, error) {
	if m.logMealFunc != nil {
		return m.logMealFunc(ctx, meal)
	}
	return &meal, nil
}

func (m *mockBackend) SearchFoods(ctx context.Context, query string) ([]api.Food, error) {
	if m.searchFoodsFunc != nil {
		return m.searchFoodsFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockBackend) SavePreferences(ctx context.Context, prefs map[string]any) error {
	if m.savePrefsFunc != nil {
		return m.savePrefsFunc(ctx, prefs)
	}
	return nil
}

func (m *mockBackend) Routines(ctx context.Context) ([]api.Routine, error) {
	if m.routinesFunc != nil {
		return m.routinesFunc(ctx)
	}
	return nil, nil
}

func (m *mockBackend) RoutineFolders(ctx context.Context) ([]api.RoutineFolder, error) {
	if m.routineFoldersFunc != nil {
		return m.routineFoldersFunc(ctx)
	}
	return nil, nil
}
