package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/fitguide/pkg/api"
	"github.com/kerbaras/fitguide/pkg/assets"
	"github.com/kerbaras/fitguide/pkg/catalog"
	"github.com/kerbaras/fitguide/pkg/data"
)

// E2E tests wiring the controller to DuckDB, the HTTP client and a fake
// backend.

func newE2EController(t *testing.T, backendURL, assetURL string) (*FitGuideController, *data.Repository) {
	t.Helper()
	db, err := data.InitDuckDB(filepath.Join(t.TempDir(), "fitguide.db"))
	require.NoError(t, err)
	repo := data.NewRepository(db)
	t.Cleanup(func() { repo.Close() })

	cat, err := catalog.Default(nil)
	require.NoError(t, err)

	c := NewFitGuideController(ControllerConfig{
		Catalog:     cat,
		Repo:        repo,
		Backend:     api.NewClient(backendURL),
		AssetDir:    t.TempDir(),
		AssetRemote: assetURL,
	})
	t.Cleanup(func() { c.Close() })
	return c, repo
}

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	var pushed []data.Workout
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/token" && r.Header.Get("Authorization") != "Bearer e2e-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/auth/token":
			json.NewEncoder(w).Encode(map[string]string{"access_token": "e2e-token", "token_type": "bearer"})
		case r.URL.Path == "/users/me":
			json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "ana", "email": "ana@example.com"})
		case r.URL.Path == "/workout-routines" && r.Method == http.MethodPost:
			var wk data.Workout
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&wk))
			pushed = append(pushed, wk)
			json.NewEncoder(w).Encode(wk)
		case r.URL.Path == "/workout-routines":
			remote := append([]data.Workout{{
				ID:        "1700000000000",
				Title:     "Remote Legs",
				Exercises: []data.WorkoutExercise{{Name: "Barbell Back Squat", Muscle: "Quads", Sets: 5}},
			}}, pushed...)
			json.NewEncoder(w).Encode(remote)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestE2E_GuideToSavedWorkout(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}
	c, repo := newE2EController(t, "http://127.0.0.1:1", "")

	s := c.NewSession()
	require.True(t, s.Click(leftShoulderFront))
	s.SetFilter(catalog.Dumbbells)
	picked := s.Exercises()[:2]

	w := c.DraftWorkout("Shoulder Day", s.Gender(), s.Muscle(), picked)
	require.NoError(t, c.SaveWorkout(w))
	require.NotEmpty(t, w.ID)

	stored, err := repo.GetWorkout(w.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Shoulder Day", stored.Title)
	assert.Equal(t, picked[0], stored.Exercises[0].Name)
	assert.Equal(t, []string{"Shoulders"}, stored.TrainingSchedule["Monday"])

	found, err := c.Workout(w.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, w.ID, found.ID)

	require.NoError(t, c.DeleteWorkout(w.ID))
	list, err := c.Workouts()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestE2E_LoginPushPull(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}
	srv := fakeBackend(t)
	c, repo := newE2EController(t, srv.URL, "")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := c.PullWorkouts(ctx)
	require.Error(t, err, "pull before login")

	u, err := c.Login(ctx, "ana", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)

	session, err := repo.LoadSession()
	require.NoError(t, err)
	assert.Equal(t, "e2e-token", session.Token)

	local := c.DraftWorkout("Local Push", catalog.Male, "Chest", []string{"Barbell Bench Press"})
	require.NoError(t, c.SaveWorkout(local))
	_, err = c.PushWorkout(ctx, local.ID)
	require.NoError(t, err)

	n, err := c.PullWorkouts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	remote, err := c.Workout("1700000000000")
	require.NoError(t, err)
	assert.Equal(t, "Remote Legs", remote.Title)

	require.NoError(t, c.Logout())
	session, err = repo.LoadSession()
	require.NoError(t, err)
	assert.Empty(t, session.Token)
}

func TestE2E_AssetSyncFromCatalog(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}
	// only flat paths exist on the remote; every item falls back
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path.Dir(r.URL.Path) != "/assets/exercises" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("GIF89a"))
	}))
	defer srv.Close()

	c, _ := newE2EController(t, "http://127.0.0.1:1", srv.URL)
	syncer := c.Syncer()
	require.NotNil(t, syncer)

	all := SyncItems(c.Catalog())
	items := all[:3]
	result, err := syncer.Sync(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Downloaded)

	local := assets.FSProber{Root: c.AssetDir()}
	for _, it := range items {
		ok, err := local.Exists(context.Background(), assets.FixAssetPath(it.Src))
		require.NoError(t, err)
		assert.True(t, ok, it.Src)
	}
}
