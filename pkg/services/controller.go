package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/kerbaras/fitguide/pkg/api"
	"github.com/kerbaras/fitguide/pkg/assets"
	"github.com/kerbaras/fitguide/pkg/catalog"
	"github.com/kerbaras/fitguide/pkg/config"
	"github.com/kerbaras/fitguide/pkg/data"
	fgerr "github.com/kerbaras/fitguide/pkg/errors"
	"github.com/kerbaras/fitguide/pkg/integrations"
	"github.com/kerbaras/fitguide/pkg/logging"
)

// Repository is the local state the controller needs.
type Repository interface {
	SaveWorkout(w *data.Workout) error
	GetWorkout(id string) (*data.Workout, error)
	ListWorkouts() ([]*data.Workout, error)
	DeleteWorkout(id string) (bool, error)
	SaveSession(s data.Session) error
	LoadSession() (data.Session, error)
	ClearSession() error
	LoadTheme() (data.ThemePreferences, error)
	SaveTheme(t data.ThemePreferences) error
	LoadUserPreferences() (data.UserPreferences, error)
	SaveUserPreferences(p data.UserPreferences) error
}

// Backend is the part of the REST API the controller calls.
type Backend interface {
	SetToken(token string)
	Token() string
	Login(ctx context.Context, username, password string) (*api.TokenResponse, error)
	LoginGoogle(ctx context.Context, idToken string) (*api.TokenResponse, error)
	Me(ctx context.Context) (*api.User, error)
	WorkoutRoutines(ctx context.Context) ([]data.Workout, error)
	SaveWorkoutRoutine(ctx context.Context, w *data.Workout) (*data.Workout, error)
	Meals(ctx context.Context, date string) ([]api.Meal, error)
	LogMeal(ctx context.Context, m api.Meal) (*api.Meal, error)
	SearchFoods(ctx context.Context, query string) ([]api.Food, error)
	SavePreferences(ctx context.Context, prefs map[string]any) error
	Routines(ctx context.Context) ([]api.Routine, error)
	RoutineFolders(ctx context.Context) ([]api.RoutineFolder, error)
}

// ControllerConfig wires a FitGuideController. Catalog and Repo are
// required; a nil Backend disables every account feature.
type ControllerConfig struct {
	Catalog     *catalog.Catalog
	Repo        Repository
	Backend     Backend
	AssetDir    string
	AssetRemote string
	ExportDir   string
	Device      string // booklet device profile
	Logger      *slog.Logger
}

// Default prescription for exercises added from the guide.
const (
	DefaultSets  = 3
	DefaultReps  = "8-12"
	DefaultRest  = "60s"
	DefaultTempo = "2-1-2"
)

type FitGuideController struct {
	catalog   *catalog.Catalog
	resolver  *assets.Resolver
	repo      Repository
	backend   Backend
	syncer    *AssetSyncer
	assetDir  string
	exportDir string
	device    string
	logger    *slog.Logger
	closers   []func() error
}

func NewFitGuideController(cfg ControllerConfig) *FitGuideController {
	logger := logging.OrDiscard(cfg.Logger)
	c := &FitGuideController{
		catalog:   cfg.Catalog,
		resolver:  assets.NewResolver(cfg.Catalog, logger),
		repo:      cfg.Repo,
		backend:   cfg.Backend,
		assetDir:  cfg.AssetDir,
		exportDir: cfg.ExportDir,
		device:    cfg.Device,
		logger:    logger,
	}
	if cfg.AssetRemote != "" && cfg.AssetDir != "" {
		c.syncer = NewAssetSyncer(SyncerConfig{
			Remote:   cfg.AssetRemote,
			AssetDir: cfg.AssetDir,
			Logger:   logger,
		})
	}
	return c
}

// NewFitGuideControllerFromConfig opens the catalog, the local database and
// the API client described by cfg, restoring a saved session.
func NewFitGuideControllerFromConfig(cfg *config.Config, logger *slog.Logger) (*FitGuideController, error) {
	cat, err := catalog.Open(cfg.CatalogDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	repo, err := data.NewDuckDBRepository(cfg.DBPath)
	if err != nil {
		return nil, fgerr.Wrap(err, fgerr.CodeStorage, "failed to open database")
	}

	client := api.NewClient(cfg.APIBaseURL)
	if s, err := repo.LoadSession(); err == nil && s.Token != "" {
		client.SetToken(s.Token)
	}

	c := NewFitGuideController(ControllerConfig{
		Catalog:     cat,
		Repo:        repo,
		Backend:     client,
		AssetDir:    cfg.AssetDir,
		AssetRemote: cfg.AssetRemote,
		ExportDir:   filepath.Join(cfg.DataDir, "exports"),
		Device:      cfg.Device,
		Logger:      logger,
	})
	c.closers = append(c.closers, repo.Close)
	return c, nil
}

func (c *FitGuideController) Catalog() *catalog.Catalog  { return c.catalog }
func (c *FitGuideController) Resolver() *assets.Resolver { return c.resolver }
func (c *FitGuideController) AssetDir() string           { return c.assetDir }
func (c *FitGuideController) Logger() *slog.Logger       { return c.logger }

// Syncer is nil when no remote asset host is configured.
func (c *FitGuideController) Syncer() *AssetSyncer { return c.syncer }

// NewSession starts a guide session over the controller's catalog.
func (c *FitGuideController) NewSession() *GuideSession {
	return NewGuideSession(c.catalog, c.resolver)
}

// ValidateWorkout checks w before anything is written.
func ValidateWorkout(w *data.Workout) error {
	if w == nil {
		return fgerr.New(fgerr.CodeValidation, "workout is required")
	}
	if strings.TrimSpace(w.Title) == "" {
		return fgerr.New(fgerr.CodeValidation, "please enter a workout name")
	}
	if len(w.Exercises) == 0 {
		return fgerr.New(fgerr.CodeValidation, "add at least one exercise")
	}
	for i, e := range w.Exercises {
		if strings.TrimSpace(e.Name) == "" {
			return fgerr.Newf(fgerr.CodeValidation, "exercise %d has no name", i+1)
		}
		if e.Sets < 0 {
			return fgerr.Newf(fgerr.CodeValidation, "%s: sets cannot be negative", e.Name)
		}
	}
	return nil
}

// SaveWorkout validates and stores w; an invalid workout is never written.
func (c *FitGuideController) SaveWorkout(w *data.Workout) error {
	if err := ValidateWorkout(w); err != nil {
		return err
	}
	w.Title = strings.TrimSpace(w.Title)
	if err := c.repo.SaveWorkout(w); err != nil {
		return fgerr.Wrap(err, fgerr.CodeStorage, "failed to save workout")
	}
	c.logger.Info("workout saved", "id", w.ID, "title", w.Title, "exercises", len(w.Exercises))
	return nil
}

func (c *FitGuideController) Workouts() ([]*data.Workout, error) {
	ws, err := c.repo.ListWorkouts()
	if err != nil {
		return nil, fgerr.Wrap(err, fgerr.CodeStorage, "failed to list workouts")
	}
	return ws, nil
}

// Workout finds a workout by id or by a unique id prefix.
func (c *FitGuideController) Workout(idOrPrefix string) (*data.Workout, error) {
	w, err := c.repo.GetWorkout(idOrPrefix)
	if err != nil {
		return nil, fgerr.Wrap(err, fgerr.CodeStorage, "failed to load workout")
	}
	if w != nil {
		return w, nil
	}

	all, err := c.Workouts()
	if err != nil {
		return nil, err
	}
	var matches []*data.Workout
	for _, w := range all {
		if strings.HasPrefix(w.ID, idOrPrefix) {
			matches = append(matches, w)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fgerr.Newf(fgerr.CodeNotFound, "no workout %q", idOrPrefix)
	}
	return nil, fgerr.Newf(fgerr.CodeValidation, "%q matches %d workouts", idOrPrefix, len(matches))
}

func (c *FitGuideController) DeleteWorkout(idOrPrefix string) error {
	w, err := c.Workout(idOrPrefix)
	if err != nil {
		return err
	}
	ok, err := c.repo.DeleteWorkout(w.ID)
	if err != nil {
		return fgerr.Wrap(err, fgerr.CodeStorage, "failed to delete workout")
	}
	if !ok {
		return fgerr.Newf(fgerr.CodeNotFound, "no workout %q", idOrPrefix)
	}
	c.logger.Info("workout deleted", "id", w.ID)
	return nil
}

// DraftWorkout builds an unsaved workout from exercises picked in the guide.
// Each exercise gets the default prescription and is scheduled on Monday
// under its muscle.
func (c *FitGuideController) DraftWorkout(title string, g catalog.Gender, muscle string, names []string) *data.Workout {
	w := &data.Workout{
		Title:            strings.TrimSpace(title),
		Gender:           string(g),
		WorkoutsPerWeek:  1,
		TrainingSchedule: map[string][]string{},
	}
	if muscle != "" {
		w.TargetMuscles = []string{muscle}
		w.TrainingSchedule["Monday"] = []string{muscle}
	}

	var difficulty catalog.Difficulty
	for _, name := range names {
		w.Exercises = append(w.Exercises, data.WorkoutExercise{
			Name:   name,
			Muscle: muscle,
			Sets:   DefaultSets,
			Reps:   DefaultReps,
			Rest:   DefaultRest,
			Tempo:  DefaultTempo,
		})
		if ex, ok := c.catalog.Lookup(name, g); ok && rankDifficulty(ex.Difficulty) > rankDifficulty(difficulty) {
			difficulty = ex.Difficulty
		}
	}
	w.Difficulty = string(difficulty)
	return w
}

func rankDifficulty(d catalog.Difficulty) int {
	switch d {
	case catalog.Beginner:
		return 1
	case catalog.Intermediate:
		return 2
	case catalog.Advanced:
		return 3
	}
	return 0
}

func (c *FitGuideController) requireBackend() error {
	if c.backend == nil {
		return fgerr.New(fgerr.CodeInternal, "no backend configured")
	}
	return nil
}

func (c *FitGuideController) requireLogin() error {
	if err := c.requireBackend(); err != nil {
		return err
	}
	if c.backend.Token() == "" {
		return fgerr.New(fgerr.CodeUnauthorized, "not logged in, run `fitguide login` first")
	}
	return nil
}

// LoggedIn reports whether a token is available.
func (c *FitGuideController) LoggedIn() bool {
	return c.backend != nil && c.backend.Token() != ""
}

// Login authenticates, fetches the profile and stores both locally. A
// failed login leaves any previous session untouched.
func (c *FitGuideController) Login(ctx context.Context, username, password string) (*api.User, error) {
	if err := c.requireBackend(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fgerr.New(fgerr.CodeValidation, "username and password are required")
	}

	previous := c.backend.Token()
	tok, err := c.backend.Login(ctx, username, password)
	if err != nil {
		c.backend.SetToken(previous)
		return nil, err
	}
	return c.finishLogin(ctx, tok.AccessToken, previous)
}

// LoginGoogle is Login with a Google ID token.
func (c *FitGuideController) LoginGoogle(ctx context.Context, idToken string) (*api.User, error) {
	if err := c.requireBackend(); err != nil {
		return nil, err
	}
	previous := c.backend.Token()
	tok, err := c.backend.LoginGoogle(ctx, idToken)
	if err != nil {
		c.backend.SetToken(previous)
		return nil, err
	}
	return c.finishLogin(ctx, tok.AccessToken, previous)
}

func (c *FitGuideController) finishLogin(ctx context.Context, token, previous string) (*api.User, error) {
	c.backend.SetToken(token)
	user, err := c.backend.Me(ctx)
	if err != nil {
		c.backend.SetToken(previous)
		return nil, err
	}
	if err := c.repo.SaveSession(data.Session{Token: token, User: user.Raw}); err != nil {
		return nil, fgerr.Wrap(err, fgerr.CodeStorage, "failed to store session")
	}
	c.logger.Info("logged in", "user", user.Username)
	return user, nil
}

// Export renders a saved workout with the exporter for format ("epub" or
// "xlsx") into dir, or into the configured export directory when dir is
// empty.
func (c *FitGuideController) Export(ctx context.Context, idOrPrefix, format, dir string) (string, error) {
	exporter, ok := integrations.ExporterFor(strings.ToLower(format), integrations.ExportConfig{
		Catalog:  c.catalog,
		AssetDir: c.assetDir,
		Device:   c.device,
		Logger:   c.logger,
	})
	if !ok {
		return "", fgerr.Newf(fgerr.CodeValidation, "unknown export format %q (use %s)", format, strings.Join(integrations.Formats, ", "))
	}
	w, err := c.Workout(idOrPrefix)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = c.exportDir
	}
	if dir == "" {
		dir = "."
	}
	path, err := exporter.Export(ctx, w, dir)
	if err != nil {
		return "", fmt.Errorf("failed to export %s: %w", w.Title, err)
	}
	c.logger.Info("workout exported", "id", w.ID, "format", format, "path", path)
	return path, nil
}

// Logout forgets the token locally.
func (c *FitGuideController) Logout() error {
	if c.backend != nil {
		c.backend.SetToken("")
	}
	if err := c.repo.ClearSession(); err != nil {
		return fgerr.Wrap(err, fgerr.CodeStorage, "failed to clear session")
	}
	return nil
}

func (c *FitGuideController) WhoAmI(ctx context.Context) (*api.User, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	return c.backend.Me(ctx)
}

// PushWorkout uploads a local workout to the backend.
func (c *FitGuideController) PushWorkout(ctx context.Context, idOrPrefix string) (*data.Workout, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	w, err := c.Workout(idOrPrefix)
	if err != nil {
		return nil, err
	}
	return c.backend.SaveWorkoutRoutine(ctx, w)
}

// PullWorkouts stores every backend workout routine locally, last writer
// wins on id. Invalid routines are skipped and logged.
func (c *FitGuideController) PullWorkouts(ctx context.Context) (int, error) {
	if err := c.requireLogin(); err != nil {
		return 0, err
	}
	remote, err := c.backend.WorkoutRoutines(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range remote {
		w := &remote[i]
		if err := c.SaveWorkout(w); err != nil {
			c.logger.Warn("skipping remote workout", "id", w.ID, "title", w.Title, "error", err)
			continue
		}
		n++
	}
	return n, nil
}

func (c *FitGuideController) Routines(ctx context.Context) ([]api.Routine, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	return c.backend.Routines(ctx)
}

func (c *FitGuideController) RoutineFolders(ctx context.Context) ([]api.RoutineFolder, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	return c.backend.RoutineFolders(ctx)
}

func (c *FitGuideController) Meals(ctx context.Context, date string) ([]api.Meal, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	return c.backend.Meals(ctx, date)
}

func (c *FitGuideController) LogMeal(ctx context.Context, m api.Meal) (*api.Meal, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(m.Name) == "" {
		return nil, fgerr.New(fgerr.CodeValidation, "meal name is required")
	}
	return c.backend.LogMeal(ctx, m)
}

func (c *FitGuideController) SearchFoods(ctx context.Context, query string) ([]api.Food, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, fgerr.New(fgerr.CodeValidation, "search query is required")
	}
	return c.backend.SearchFoods(ctx, query)
}

// SavePreferences stores prefs locally and, when logged in, on the backend.
// The local copy is kept even if the upload fails.
func (c *FitGuideController) SavePreferences(ctx context.Context, prefs data.UserPreferences) error {
	if err := c.repo.SaveUserPreferences(prefs); err != nil {
		return fgerr.Wrap(err, fgerr.CodeStorage, "failed to save preferences")
	}
	if !c.LoggedIn() {
		return nil
	}
	return c.backend.SavePreferences(ctx, prefs)
}

func (c *FitGuideController) Preferences() (data.UserPreferences, error) {
	prefs, err := c.repo.LoadUserPreferences()
	if err != nil {
		return nil, fgerr.Wrap(err, fgerr.CodeStorage, "failed to load preferences")
	}
	return prefs, nil
}

func (c *FitGuideController) Theme() (data.ThemePreferences, error) {
	return c.repo.LoadTheme()
}

func (c *FitGuideController) SaveTheme(t data.ThemePreferences) error {
	return c.repo.SaveTheme(t)
}

// Close releases the syncer and the database.
func (c *FitGuideController) Close() error {
	if c.syncer != nil {
		c.syncer.Close()
	}
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
