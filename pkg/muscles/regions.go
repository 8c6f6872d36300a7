// Package muscles maps pointer positions on the body diagram to labelled
// muscle regions and tracks the hover/click interaction over them.
//
// All coordinates are percentages (0-100) of the reference body image:
// Left grows to the right, Top grows downwards.
package muscles

import "math"

// Point is a pointer position in percentage space.
type Point struct {
	Left float64
	Top  float64
}

// Finite reports whether both coordinates are real numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.Left) && !math.IsInf(p.Left, 0) &&
		!math.IsNaN(p.Top) && !math.IsInf(p.Top, 0)
}

// Marker is one on-image anchor of a region.
type Marker struct {
	Top  float64 `yaml:"top" json:"top"`
	Left float64 `yaml:"left" json:"left"`
}

// Point converts the marker to a Point.
func (m Marker) Point() Point {
	return Point{Left: m.Left, Top: m.Top}
}

// Region is a named muscle group with one or more markers.
type Region struct {
	Name    string   `yaml:"name" json:"name"`
	Markers []Marker `yaml:"markers" json:"markers"`
}

// Distance is the Euclidean distance in percentage points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.Left-b.Left, a.Top-b.Top)
}

// Find returns the region named name.
func Find(regions []Region, name string) (Region, bool) {
	for _, r := range regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}
