package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/fitguide/pkg/assets"
	"github.com/kerbaras/fitguide/pkg/catalog"
	"github.com/kerbaras/fitguide/pkg/muscles"
)

func newTestServer(t *testing.T, assetDir string) *httptest.Server {
	t.Helper()
	c, err := catalog.Default(nil)
	require.NoError(t, err)
	srv := httptest.NewServer(New(c, assetDir, nil).Router())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, srv *httptest.Server, path string, v any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, "")
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEquipment(t *testing.T) {
	srv := newTestServer(t, "")

	var got []string
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/equipment", &got))
	assert.Equal(t, "All Equipment", got[0])
	assert.Len(t, got, len(catalog.Equipments)+1)
}

func TestMuscles(t *testing.T) {
	srv := newTestServer(t, "")

	var got []muscleResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/muscles?gender=female", &got))
	require.NotEmpty(t, got)
	assert.Equal(t, "Shoulders", got[0].Name)
	assert.Positive(t, got[0].Count)
}

func TestMuscleExercises(t *testing.T) {
	srv := newTestServer(t, "")

	var got []string
	status := getJSON(t, srv, "/api/muscles/Shoulders/exercises?equipment=dumbbells&gender=male", &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Dumbbell Shoulder Press", "Dumbbell Lateral Raise", "Dumbbell Front Raise", "Arnold Press"}, got)
}

func TestBadEnumsAreRejected(t *testing.T) {
	srv := newTestServer(t, "")

	paths := []string{
		"/api/muscles?gender=robot",
		"/api/muscles/Shoulders/exercises?equipment=rope",
		"/api/regions?view=side",
		"/api/hit?x=abc&y=1",
	}
	for _, p := range paths {
		var e errorResponse
		status := getJSON(t, srv, p, &e)
		if status != http.StatusBadRequest {
			t.Errorf("GET %s: expected 400, got %d", p, status)
		}
		if e.Error == "" {
			t.Errorf("GET %s: expected error message", p)
		}
	}
}

func TestUnknownMuscle(t *testing.T) {
	srv := newTestServer(t, "")

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv, "/api/muscles/Neck/exercises", nil))
}

func TestUnknownExerciseIsPlaceholder(t *testing.T) {
	srv := newTestServer(t, "")

	var got exerciseResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/exercises/"+url.PathEscape("Nonexistent Exercise")+"?gender=male", &got))
	assert.Equal(t, "Nonexistent Exercise", got.Name)
	assert.False(t, got.Available)
	assert.Equal(t, "image", got.Type)
	assert.Equal(t, assets.PlaceholderPath, got.Src)
	assert.Equal(t, assets.NoDemonstration, got.Description)
	assert.Equal(t, []string{}, got.Alternatives)
	assert.Nil(t, got.Equipment)
	assert.Nil(t, got.Difficulty)
}

func TestExercise(t *testing.T) {
	srv := newTestServer(t, "")

	var got exerciseResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/exercises/"+url.PathEscape("Arnold Press"), &got))
	assert.Equal(t, "Arnold Press", got.Name)
	assert.True(t, got.Available)
	assert.Equal(t, "/assets/exercises/male/arnold-press.gif", got.Src)
	require.NotNil(t, got.Equipment)
	assert.Equal(t, catalog.Dumbbells, *got.Equipment)

	// record exists but has no female variant
	got = exerciseResponse{}
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/exercises/"+url.PathEscape("Barbell Bench Press")+"?gender=female", &got))
	assert.False(t, got.Available)
	assert.Contains(t, got.Description, "female")
}

func TestRegionsAndHit(t *testing.T) {
	srv := newTestServer(t, "")

	var regions []muscles.Region
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/regions?gender=male&view=back", &regions))
	glutes, ok := muscles.Find(regions, "Glutes")
	require.True(t, ok)

	mk := glutes.Markers[0]
	var hit hitResponse
	path := "/api/hit?gender=male&view=back&x=" + ftoa(mk.Left) + "&y=" + ftoa(mk.Top)
	require.Equal(t, http.StatusOK, getJSON(t, srv, path, &hit))
	assert.True(t, hit.Hit)
	assert.Equal(t, "Glutes", hit.Region)

	hit = hitResponse{}
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/hit?x=0&y=100", &hit))
	assert.False(t, hit.Hit)
}

func TestHitRejectsNonFinite(t *testing.T) {
	srv := newTestServer(t, "")

	for _, q := range []string{"x=NaN&y=50", "x=30&y=Inf", "x=-Inf&y=nan"} {
		var e struct {
			Error string `json:"error"`
		}
		assert.Equal(t, http.StatusBadRequest, getJSON(t, srv, "/api/hit?"+q, &e), q)
		assert.NotEmpty(t, e.Error, q)
	}
}

func TestServesAssets(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "assets", "exercises", "male", "a.gif")
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0755))
	require.NoError(t, os.WriteFile(file, []byte("GIF89a"), 0644))
	srv := newTestServer(t, dir)

	resp, err := http.Get(srv.URL + "/assets/exercises/male/a.gif")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Head(srv.URL + "/assets/exercises/male/missing.gif")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
