package catalog

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/fitguide/pkg/muscles"
)

func loadDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default(nil)
	require.NoError(t, err)
	return c
}

func TestDefaultCatalogLoads(t *testing.T) {
	c := loadDefault(t)

	for _, g := range Genders {
		if len(c.Names(g)) == 0 {
			t.Errorf("Expected %s table to have exercises", g)
		}
		if len(c.Muscles(g)) == 0 {
			t.Errorf("Expected %s index to have muscles", g)
		}
		for _, v := range []View{Front, Back} {
			if len(c.Regions(g, v)) == 0 {
				t.Errorf("Expected %s/%s regions", g, v)
			}
		}
	}
}

func TestFilterShouldersDumbbellsMale(t *testing.T) {
	c := loadDefault(t)

	got := c.Filter("Shoulders", Dumbbells, Male)
	want := []string{"Dumbbell Shoulder Press", "Dumbbell Lateral Raise", "Dumbbell Front Raise", "Arnold Press"}
	assert.Equal(t, want, got)
}

func TestFilterAllEquipmentIsConcatenationInCategoryOrder(t *testing.T) {
	c := loadDefault(t)

	for _, g := range Genders {
		for _, m := range c.Muscles(g) {
			var want []string
			total := 0
			for _, eq := range Equipments {
				bucket := c.Filter(m, eq, g)
				want = append(want, bucket...)
				total += len(bucket)
			}
			got := c.Filter(m, AllEquipment, g)
			if want == nil {
				want = []string{}
			}
			assert.Equal(t, want, got, "%s/%s", g, m)
			assert.Len(t, got, total)
			assert.Equal(t, total, c.Index().Count(m, AllEquipment, g))
		}
	}
}

func TestFilterMissingBucketIsEmpty(t *testing.T) {
	c := loadDefault(t)

	got := c.Filter("Cardio", Dumbbells, Male)
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil list, got %#v", got)
	}

	got = c.Filter("Neck", AllEquipment, Female)
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil list for unknown muscle, got %#v", got)
	}
}

func TestFilterReturnsCopy(t *testing.T) {
	c := loadDefault(t)

	got := c.Filter("Shoulders", Dumbbells, Male)
	got[0] = "mutated"
	assert.Equal(t, "Dumbbell Shoulder Press", c.Filter("Shoulders", Dumbbells, Male)[0])
}

func TestMusclesKeepDeclarationOrder(t *testing.T) {
	c := loadDefault(t)

	muscles := c.Muscles(Male)
	require.GreaterOrEqual(t, len(muscles), 2)
	assert.Equal(t, "Shoulders", muscles[0])
	assert.Equal(t, "Chest", muscles[1])
}

func TestGlutesBackMarkerHits(t *testing.T) {
	c := loadDefault(t)

	for _, g := range Genders {
		regions := c.Regions(g, Back)
		glutes, ok := muscles.Find(regions, "Glutes")
		require.True(t, ok, "%s back regions lack Glutes", g)

		for _, mk := range glutes.Markers {
			m, ok := muscles.Nearest(mk.Point(), regions)
			require.True(t, ok)
			assert.Equal(t, "Glutes", m.Region)
		}
	}
}

func TestConflictsReported(t *testing.T) {
	c := loadDefault(t)

	var names []string
	for _, cf := range c.Conflicts() {
		names = append(names, cf.Name)
	}
	assert.Contains(t, names, "Dumbbell Shoulder Press")
	assert.Contains(t, names, "Barbell Hip Thrust")
	// identical in both tables, so not a conflict
	assert.NotContains(t, names, "Dumbbell Romanian Deadlift")
}

func TestPrimaryWinsOverAlternatives(t *testing.T) {
	c := loadDefault(t)

	ex, ok := c.Lookup("Dumbbell Shoulder Press", Male)
	require.True(t, ok)
	v, ok := ex.Variant(Male)
	require.True(t, ok)
	assert.Contains(t, v.Alternatives, "Barbell Overhead Press")
	assert.NotContains(t, v.Alternatives, "Landmine Press")
}

func TestAlternativesLayerFillsMissingNames(t *testing.T) {
	c := loadDefault(t)

	ex, ok := c.Lookup("Landmine Press", Male)
	require.True(t, ok)
	assert.Equal(t, Barbell, ex.Equipment)

	_, ok = c.Lookup("Landmine Press", Female)
	assert.False(t, ok)
}

func TestMissingVariantRecord(t *testing.T) {
	c := loadDefault(t)

	ex, ok := c.Lookup("Barbell Bench Press", Female)
	require.True(t, ok)
	_, ok = ex.Variant(Female)
	assert.False(t, ok)
	assert.Equal(t, []Gender{Male}, ex.Genders())
}

func TestValidateDefaultIsClean(t *testing.T) {
	c := loadDefault(t)
	assert.Empty(t, c.Validate())
}

func TestRegionsReturnsCopy(t *testing.T) {
	c := loadDefault(t)

	r := c.Regions(Male, Front)
	r[0].Name = "mutated"
	assert.NotEqual(t, "mutated", c.Regions(Male, Front)[0].Name)
}

func TestOpenOverlaysDirectory(t *testing.T) {
	dir := t.TempDir()
	index := []byte(`male:
  Shoulders:
    Barbell: ["Barbell Overhead Press"]
female: {}
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.yaml"), index, 0644))

	c, err := Open(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Shoulders"}, c.Muscles(Male))
	assert.Empty(t, c.Muscles(Female))
	// tables and regions still come from the built-in files
	_, ok := c.Lookup("Arnold Press", Male)
	assert.True(t, ok)
	assert.NotEmpty(t, c.Regions(Female, Back))
}

func TestOpenEmptyDirIsDefault(t *testing.T) {
	c, err := Open("", nil)
	require.NoError(t, err)
	assert.True(t, slices.Contains(c.Names(Male), "Arnold Press"))
}

func TestOpenMissingDir(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}
