package muscles

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testRegions = []Region{
	{Name: "Shoulders", Markers: []Marker{{Top: 22, Left: 28}, {Top: 22, Left: 72}}},
	{Name: "Chest", Markers: []Marker{{Top: 28, Left: 42}, {Top: 28, Left: 58}}},
	{Name: "Abs", Markers: []Marker{{Top: 42, Left: 50}}},
	{Name: "Glutes", Markers: []Marker{{Top: 54, Left: 42}, {Top: 54, Left: 58}}},
}

func TestNearestExactMarker(t *testing.T) {
	for _, r := range testRegions {
		for _, mk := range r.Markers {
			m, ok := Nearest(mk.Point(), testRegions)
			if !ok {
				t.Fatalf("expected match at %+v", mk)
			}
			if m.Region != r.Name {
				t.Errorf("marker %+v: expected %s, got %s", mk, r.Name, m.Region)
			}
			if m.Distance != 0 {
				t.Errorf("expected zero distance, got %f", m.Distance)
			}
		}
	}
}

func TestNearestNoMatchBeyondThreshold(t *testing.T) {
	points := []Point{
		{Left: 0, Top: 0},
		{Left: 100, Top: 100},
		{Left: 5, Top: 90},
	}
	for _, p := range points {
		if m, ok := Nearest(p, testRegions); ok {
			t.Errorf("point %+v: expected no match, got %s", p, m.Region)
		}
	}
}

func TestNearestThresholdIsExclusive(t *testing.T) {
	regions := []Region{{Name: "Calves", Markers: []Marker{{Top: 80, Left: 40}}}}

	_, ok := Nearest(Point{Left: 40, Top: 80 + MatchThreshold}, regions)
	assert.False(t, ok, "a marker exactly at the threshold should not match")

	m, ok := Nearest(Point{Left: 40, Top: 80 + MatchThreshold - 0.01}, regions)
	assert.True(t, ok)
	assert.Equal(t, "Calves", m.Region)
}

func TestNearestPicksClosest(t *testing.T) {
	// Between the two chest markers but nearer the right one.
	m, ok := Nearest(Point{Left: 55, Top: 28}, testRegions)
	assert.True(t, ok)
	assert.Equal(t, "Chest", m.Region)
	assert.Equal(t, Marker{Top: 28, Left: 58}, m.Marker)
}

func TestNearestTieFirstRegionWins(t *testing.T) {
	regions := []Region{
		{Name: "First", Markers: []Marker{{Top: 50, Left: 40}}},
		{Name: "Second", Markers: []Marker{{Top: 50, Left: 60}}},
	}
	m, ok := Nearest(Point{Left: 50, Top: 50}, regions)
	assert.True(t, ok)
	assert.Equal(t, "First", m.Region)

	// Reversed declaration order flips the winner.
	m, _ = Nearest(Point{Left: 50, Top: 50}, []Region{regions[1], regions[0]})
	assert.Equal(t, "Second", m.Region)
}

func TestNearestSingleCandidateIndependentOfOrder(t *testing.T) {
	p := Point{Left: 43, Top: 43}
	reversed := make([]Region, len(testRegions))
	for i, r := range testRegions {
		reversed[len(testRegions)-1-i] = r
	}

	a, okA := Nearest(p, testRegions)
	b, okB := Nearest(p, reversed)
	assert.True(t, okA)
	assert.True(t, okB)
	assert.Equal(t, a.Region, b.Region)
}

func TestEarlyExitStopsAtFirstCloseMarker(t *testing.T) {
	regions := []Region{
		{Name: "Near", Markers: []Marker{{Top: 50, Left: 45}}},
		{Name: "Nearer", Markers: []Marker{{Top: 50, Left: 49}}},
	}
	p := Point{Left: 50, Top: 50}

	exact := HitTester{Threshold: MatchThreshold}
	m, _ := exact.Nearest(p, regions)
	assert.Equal(t, "Nearer", m.Region)

	fast := HitTester{Threshold: MatchThreshold, EarlyExit: EarlyExitThreshold}
	m, _ = fast.Nearest(p, regions)
	assert.Equal(t, "Near", m.Region)
}

func TestNearestEmptyRegions(t *testing.T) {
	_, ok := Nearest(Point{Left: 50, Top: 50}, nil)
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	r, ok := Find(testRegions, "Abs")
	assert.True(t, ok)
	assert.Len(t, r.Markers, 1)

	_, ok = Find(testRegions, "Neck")
	assert.False(t, ok)
}

func TestNearestNonFinitePoint(t *testing.T) {
	points := []Point{
		{Left: math.NaN(), Top: 50},
		{Left: 28, Top: math.NaN()},
		{Left: math.Inf(1), Top: 22},
		{Left: 28, Top: math.Inf(-1)},
	}
	for _, p := range points {
		if m, ok := Nearest(p, testRegions); ok {
			t.Errorf("expected no match for %+v, got %s at %f", p, m.Region, m.Distance)
		}
	}
}
