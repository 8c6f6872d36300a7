package catalog

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fgerr "github.com/kerbaras/fitguide/pkg/errors"
)

const testIndex = `male:
  Chest:
    Bodyweight: ["Push-Up"]
    Dumbbells: ["Dumbbell Bench Press"]
female:
  Chest:
    Bodyweight: ["Push-Up"]
`

const testRegions = `male:
  front:
    - name: Chest
      markers: [{top: 27, left: 42}]
female:
  front:
    - name: Chest
      markers: [{top: 28, left: 43}]
`

const malePrimary = `gender: male
layer: primary
exercises:
  - name: "Push-Up"
    type: image
    equipment: Bodyweight
    difficulty: Beginner
    male:
      src: /assets/exercises/male/push-up.gif
      description: "Lower the chest to the floor."
      alternatives: ["Dumbbell Bench Press"]
  - name: "Dumbbell Bench Press"
    equipment: Dumbbells
    difficulty: Intermediate
    male:
      src: /assets/exercises/male/dumbbell-bench-press.gif
      description: "Press from the chest."
`

func testFS(extra map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{
		"index.yaml":   {Data: []byte(testIndex)},
		"regions.yaml": {Data: []byte(testRegions)},
		"male.yaml":    {Data: []byte(malePrimary)},
	}
	for name, body := range extra {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestLoadMinimal(t *testing.T) {
	c, err := Load(testFS(nil), nil)
	require.NoError(t, err)

	ex, ok := c.Lookup("Push-Up", Male)
	require.True(t, ok)
	assert.Equal(t, "image", ex.MediaType)
	assert.Equal(t, Bodyweight, ex.Equipment)
	assert.Equal(t, Beginner, ex.Difficulty)

	v, ok := ex.Variant(Male)
	require.True(t, ok)
	assert.Equal(t, "/assets/exercises/male/push-up.gif", v.ImagePath)
	assert.Equal(t, []string{"Dumbbell Bench Press"}, v.Alternatives)

	_, ok = ex.Variant(Female)
	assert.False(t, ok)

	// no female table at all
	_, ok = c.Lookup("Push-Up", Female)
	assert.False(t, ok)

	issues := c.Validate()
	require.Len(t, issues, 1)
	assert.Equal(t, Female, issues[0].Gender)
	assert.Equal(t, "Push-Up", issues[0].Name)
}

func TestLoadRejectsDuplicateInLayer(t *testing.T) {
	dup := `gender: male
layer: primary
exercises:
  - name: "Push-Up"
    equipment: Bodyweight
    difficulty: Advanced
`
	_, err := Load(testFS(map[string]string{"zz_more.yaml": dup}), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fgerr.ErrDuplicateEntry))
	assert.Contains(t, err.Error(), "male.yaml:4")
	assert.Contains(t, err.Error(), "zz_more.yaml:4")
}

func TestLoadSameNameDifferentLayersIsNotDuplicate(t *testing.T) {
	alt := `gender: male
layer: alternatives
exercises:
  - name: "Push-Up"
    type: image
    equipment: Bodyweight
    difficulty: Beginner
    male:
      src: /assets/exercises/male/push-up.gif
      description: "Hands under shoulders, lower and press."
      alternatives: ["Dumbbell Bench Press"]
  - name: "Diamond Push-Up"
    equipment: Bodyweight
    difficulty: Intermediate
`
	c, err := Load(testFS(map[string]string{"male_alt.yaml": alt}), nil)
	require.NoError(t, err)

	conflicts := c.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, "Push-Up", conflicts[0].Name)
	assert.Equal(t, Male, conflicts[0].Gender)
	assert.Equal(t, []string{"male.description"}, conflicts[0].Fields)
	assert.Equal(t, "male.yaml:4", conflicts[0].Primary)
	assert.Equal(t, "male_alt.yaml:4", conflicts[0].Alternatives)
	assert.True(t, strings.Contains(conflicts[0].String(), "male.description"))

	ex, _ := c.Lookup("Push-Up", Male)
	v, _ := ex.Variant(Male)
	assert.Equal(t, "Lower the chest to the floor.", v.Description)

	_, ok := c.Lookup("Diamond Push-Up", Male)
	assert.True(t, ok)
}

func TestLoadRejectsBadEnums(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"gender", "gender: other\nexercises: []\n"},
		{"layer", "gender: male\nlayer: extra\nexercises: []\n"},
		{"equipment", "gender: male\nexercises:\n  - name: X\n    equipment: Rope\n    difficulty: Beginner\n"},
		{"filter as equipment", "gender: male\nexercises:\n  - name: X\n    equipment: All Equipment\n    difficulty: Beginner\n"},
		{"difficulty", "gender: male\nexercises:\n  - name: X\n    equipment: Cable\n    difficulty: Elite\n"},
		{"no name", "gender: male\nexercises:\n  - equipment: Cable\n    difficulty: Beginner\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(testFS(map[string]string{"bad.yaml": tt.body}), nil)
			require.Error(t, err)
			assert.Equal(t, fgerr.CodeInvalidCatalog, fgerr.CodeOf(err))
		})
	}
}

func TestIndexRejectsUnknownEquipment(t *testing.T) {
	fsys := testFS(nil)
	fsys["index.yaml"] = &fstest.MapFile{Data: []byte("male:\n  Chest:\n    Rope: [X]\n")}
	_, err := Load(fsys, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index.yaml:3")
}

func TestIndexRejectsDuplicateMuscle(t *testing.T) {
	fsys := testFS(nil)
	fsys["index.yaml"] = &fstest.MapFile{Data: []byte("male:\n  Chest:\n    Cable: [X]\n  Chest:\n    Barbell: [Y]\n")}
	_, err := Load(fsys, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fgerr.ErrDuplicateEntry))
}

func TestIndexBucketOrderDoesNotMatter(t *testing.T) {
	c, err := Load(testFS(nil), nil)
	require.NoError(t, err)

	// Bodyweight is declared first but Dumbbells ranks first.
	assert.Equal(t, []string{"Dumbbell Bench Press", "Push-Up"}, c.Filter("Chest", AllEquipment, Male))
	assert.Equal(t, []Equipment{Dumbbells, Bodyweight}, c.Index().Equipment("Chest", Male))
}

func TestRegionsRequireMarkers(t *testing.T) {
	fsys := testFS(nil)
	fsys["regions.yaml"] = &fstest.MapFile{Data: []byte("male:\n  front:\n    - name: Chest\n      markers: []\n")}
	_, err := Load(fsys, nil)
	require.Error(t, err)
	assert.Equal(t, fgerr.CodeInvalidCatalog, fgerr.CodeOf(err))
}

func TestRegionsRejectNonFiniteMarkers(t *testing.T) {
	fsys := testFS(nil)
	fsys["regions.yaml"] = &fstest.MapFile{Data: []byte("male:\n  front:\n    - name: Chest\n      markers:\n        - {top: .nan, left: 40}\n")}
	_, err := Load(fsys, nil)
	require.Error(t, err)
	assert.Equal(t, fgerr.CodeInvalidCatalog, fgerr.CodeOf(err))
}

func TestLoadMissingIndex(t *testing.T) {
	fsys := testFS(nil)
	delete(fsys, "index.yaml")
	_, err := Load(fsys, nil)
	assert.Error(t, err)
}

func TestIndexHelpers(t *testing.T) {
	c, err := Load(testFS(nil), nil)
	require.NoError(t, err)
	idx := c.Index()

	assert.True(t, idx.HasMuscle("Chest", Male))
	assert.True(t, idx.HasData("Chest", Male))
	assert.False(t, idx.HasData("Back", Male))
	assert.Equal(t, 1, idx.Count("Chest", Dumbbells, Male))
	assert.Equal(t, 0, idx.Count("Chest", Cable, Male))
	assert.Equal(t, []string{"Chest"}, idx.MusclesFor("Push-Up", Male))
	assert.Empty(t, idx.MusclesFor("Squat", Male))
}
