package assets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/fitguide/pkg/catalog"
)

func TestFixAssetPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", PlaceholderPath},
		{"   ", PlaceholderPath},
		{"/assets/exercises/male/a.gif", "/assets/exercises/male/a.gif"},
		{"src/assets/exercises/male/a.gif", "/assets/exercises/male/a.gif"},
		{"../src/assets/exercises/male/a.gif", "/assets/exercises/male/a.gif"},
		{"./src/assets/a.gif", "/assets/a.gif"},
		{"public/assets/a.gif", "/assets/a.gif"},
		{"/public/assets/a.gif", "/assets/a.gif"},
		{"assets/a.gif", "/assets/a.gif"},
		{"https://cdn.example.com/a.gif", "https://cdn.example.com/a.gif"},
		{"data:image/gif;base64,AAAA", "data:image/gif;base64,AAAA"},
	}
	for _, tt := range tests {
		if got := FixAssetPath(tt.in); got != tt.want {
			t.Errorf("FixAssetPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCandidatesOrder(t *testing.T) {
	got := Candidates("src/assets/exercises/male/barbell-shrug.gif", catalog.Female)
	want := []string{
		"/assets/exercises/male/barbell-shrug.gif",
		"/assets/exercises/barbell-shrug.gif",
		"/assets/exercises/female/barbell-shrug.gif",
		"/assets/exercises/male/barbell-shrug.gif",
		"/static/exercises/male/barbell-shrug.gif",
		"/barbell-shrug.gif",
	}
	assert.Equal(t, want, got)
	assert.Len(t, got, MaxAttempts)
}

func TestCandidatesGuessGender(t *testing.T) {
	got := Candidates("/img/female/frog-pump.gif", catalog.Male)
	assert.Equal(t, "/assets/exercises/female/frog-pump.gif", got[0])
	assert.Equal(t, "/assets/exercises/male/frog-pump.gif", got[2])

	got = Candidates("/img/frog-pump.gif", catalog.Male)
	assert.Equal(t, "/assets/exercises/male/frog-pump.gif", got[0])
}

func TestFallbackExhaustsAfterExactlySixAttempts(t *testing.T) {
	fb := NewFallback("/assets/exercises/male/missing.gif", catalog.Male)
	assert.Equal(t, "/assets/exercises/male/missing.gif", fb.Current())

	candidates := Candidates("/assets/exercises/male/missing.gif", catalog.Male)
	for i := 0; i < MaxAttempts; i++ {
		next, ok := fb.OnError()
		require.True(t, ok, "attempt %d", i+1)
		assert.Equal(t, candidates[i], next)
		assert.Equal(t, i+1, fb.Attempts())
	}

	next, ok := fb.OnError()
	assert.False(t, ok)
	assert.Equal(t, PlaceholderPath, next)
	assert.True(t, fb.Exhausted())
	assert.Equal(t, MaxAttempts, fb.Attempts())

	// a failing placeholder must not restart the cascade
	for i := 0; i < 10; i++ {
		next, ok = fb.OnError()
		assert.False(t, ok)
		assert.Equal(t, PlaceholderPath, next)
	}
	assert.Equal(t, MaxAttempts, fb.Attempts())
}

func TestFallbackResetsOnSourceChange(t *testing.T) {
	fb := NewFallback("/a.gif", catalog.Male)
	fb.OnError()
	fb.OnError()
	require.Equal(t, 2, fb.Attempts())

	fb.SetSource("/a.gif", catalog.Male)
	assert.Equal(t, 2, fb.Attempts(), "same source keeps the counter")

	fb.SetSource("/b.gif", catalog.Male)
	assert.Equal(t, 0, fb.Attempts())
	assert.Equal(t, "/b.gif", fb.Current())
	assert.False(t, fb.Exhausted())

	fb.SetSource("/b.gif", catalog.Female)
	assert.Equal(t, 0, fb.Attempts())
}

func TestFallbackEmptySourceIsPlaceholder(t *testing.T) {
	fb := NewFallback("", catalog.Male)
	assert.True(t, fb.Exhausted())
	assert.Equal(t, PlaceholderPath, fb.Current())
}

type stubLookup map[catalog.Gender]map[string]*catalog.Exercise

func (s stubLookup) Lookup(name string, g catalog.Gender) (*catalog.Exercise, bool) {
	ex, ok := s[g][name]
	return ex, ok
}

func TestResolveUnknownExercise(t *testing.T) {
	r := NewResolver(stubLookup{}, nil)

	d := r.Resolve("Nonexistent Exercise", catalog.Male)
	assert.Equal(t, Display{
		Type:         "image",
		Src:          PlaceholderPath,
		Description:  "No demonstration available yet.",
		Alternatives: []string{},
	}, d)
	assert.Nil(t, d.Equipment)
	assert.Nil(t, d.Difficulty)
	assert.False(t, d.Available())
}

func TestResolveMissingVariant(t *testing.T) {
	ex := catalog.NewExercise("Barbell Bench Press", catalog.Barbell, catalog.Intermediate,
		map[catalog.Gender]catalog.Variant{catalog.Male: {ImagePath: "/m.gif", Description: "m"}})
	ex.Alternatives = []string{"Push-Up"}
	r := NewResolver(stubLookup{catalog.Female: {ex.Name: ex}}, nil)

	d := r.Resolve("Barbell Bench Press", catalog.Female)
	assert.Equal(t, PlaceholderPath, d.Src)
	assert.Contains(t, d.Description, "not available for the female body type")
	assert.Equal(t, []string{"Push-Up"}, d.Alternatives)
	require.NotNil(t, d.Equipment)
	assert.Equal(t, catalog.Barbell, *d.Equipment)
	require.NotNil(t, d.Difficulty)
	assert.Equal(t, catalog.Intermediate, *d.Difficulty)
}

func TestResolveFillsDefaults(t *testing.T) {
	ex := catalog.NewExercise("Plank", catalog.Bodyweight, catalog.Beginner,
		map[catalog.Gender]catalog.Variant{catalog.Male: {ImagePath: "src/assets/exercises/male/plank.gif"}})
	ex.MediaType = ""
	r := NewResolver(stubLookup{catalog.Male: {ex.Name: ex}}, nil)

	d := r.Resolve("Plank", catalog.Male)
	assert.Equal(t, "image", d.Type)
	assert.Equal(t, "/assets/exercises/male/plank.gif", d.Src)
	assert.Equal(t, NoDescription, d.Description)
	assert.NotNil(t, d.Alternatives)
	assert.Empty(t, d.Alternatives)
}

func TestResolveDefaultCatalog(t *testing.T) {
	c, err := catalog.Default(nil)
	require.NoError(t, err)
	r := NewResolver(c, nil)

	d := r.Resolve("Dumbbell Shoulder Press", catalog.Male)
	assert.True(t, strings.HasSuffix(d.Src, "/male/dumbbell-shoulder-press.gif"), d.Src)
	assert.NotEmpty(t, d.Description)
	assert.Contains(t, d.Alternatives, "Arnold Press")

	// every display record has a src and a description
	for _, g := range catalog.Genders {
		for _, name := range append(c.Names(g), "Nonexistent Exercise") {
			d := r.Resolve(name, g)
			assert.NotEmpty(t, d.Src, name)
			assert.NotEmpty(t, d.Description, name)
		}
	}
}

func TestResolveReturnsCopies(t *testing.T) {
	ex := catalog.NewExercise("Plank", catalog.Bodyweight, catalog.Beginner,
		map[catalog.Gender]catalog.Variant{catalog.Male: {ImagePath: "/p.gif", Alternatives: []string{"Crunch"}}})
	r := NewResolver(stubLookup{catalog.Male: {ex.Name: ex}}, nil)

	d := r.Resolve("Plank", catalog.Male)
	d.Alternatives[0] = "mutated"
	*d.Equipment = catalog.Cable

	d = r.Resolve("Plank", catalog.Male)
	assert.Equal(t, "Crunch", d.Alternatives[0])
	assert.Equal(t, catalog.Bodyweight, *d.Equipment)
}

// recordingProber answers from a fixed set and records the probe order.
type recordingProber struct {
	mu     sync.Mutex
	exists map[string]bool
	fail   map[string]error
	probed []string
}

func (p *recordingProber) Exists(_ context.Context, path string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probed = append(p.probed, path)
	if err := p.fail[path]; err != nil {
		return false, err
	}
	return p.exists[path], nil
}

func TestLocateFirstHit(t *testing.T) {
	p := &recordingProber{exists: map[string]bool{"/assets/exercises/male/a.gif": true}}

	loc, err := Locate(context.Background(), p, "src/assets/exercises/male/a.gif", catalog.Male, nil)
	require.NoError(t, err)
	assert.Equal(t, "/assets/exercises/male/a.gif", loc.Path)
	assert.Equal(t, 0, loc.Attempts)
	assert.False(t, loc.Placeholder)
}

func TestLocateFallsBackInOrder(t *testing.T) {
	p := &recordingProber{
		exists: map[string]bool{"/static/exercises/male/a.gif": true},
		fail:   map[string]error{"/assets/exercises/a.gif": errors.New("boom")},
	}

	loc, err := Locate(context.Background(), p, "/img/a.gif", catalog.Male, nil)
	require.NoError(t, err)
	assert.Equal(t, "/static/exercises/male/a.gif", loc.Path)
	assert.Equal(t, 5, loc.Attempts)
	assert.Equal(t, []string{
		"/img/a.gif",
		"/assets/exercises/male/a.gif",
		"/assets/exercises/a.gif",
		"/assets/exercises/female/a.gif",
		"/img/a.gif",
		"/static/exercises/male/a.gif",
	}, p.probed)
}

func TestLocateGivesUpWithPlaceholder(t *testing.T) {
	p := &recordingProber{}

	loc, err := Locate(context.Background(), p, "/assets/exercises/male/a.gif", catalog.Male, nil)
	require.NoError(t, err)
	assert.True(t, loc.Placeholder)
	assert.Equal(t, PlaceholderPath, loc.Path)
	assert.Equal(t, MaxAttempts, loc.Attempts)
	assert.Len(t, p.probed, MaxAttempts+1)
}

func TestLocateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Locate(ctx, &recordingProber{}, "/a.gif", catalog.Male, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFSProber(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "assets", "exercises", "female")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "frog-pump.gif"), []byte("GIF89a"), 0644))

	p := FSProber{Root: root}
	ctx := context.Background()

	ok, err := p.Exists(ctx, "/assets/exercises/female/frog-pump.gif")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Exists(ctx, "/assets/exercises/male/frog-pump.gif")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _ = p.Exists(ctx, "/assets/exercises")
	assert.False(t, ok, "directories are not assets")

	assert.Equal(t, filepath.Join(root, "etc", "passwd"), p.Path("/../../etc/passwd"))

	loc, err := Locate(ctx, p, "/img/female/frog-pump.gif", catalog.Male, nil)
	require.NoError(t, err)
	assert.Equal(t, "/assets/exercises/female/frog-pump.gif", loc.Path)
}

func TestHTTPProber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/assets/exercises/a.gif":
			w.WriteHeader(http.StatusOK)
		case "/broken.gif":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewHTTPProber(srv.URL + "/")
	ctx := context.Background()

	ok, err := p.Exists(ctx, "/assets/exercises/a.gif")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Exists(ctx, "/nope.gif")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = p.Exists(ctx, "/broken.gif")
	assert.Error(t, err)

	loc, err := Locate(ctx, p, "/assets/exercises/male/a.gif", catalog.Male, nil)
	require.NoError(t, err)
	assert.Equal(t, "/assets/exercises/a.gif", loc.Path)
	assert.Equal(t, 2, loc.Attempts)
}
