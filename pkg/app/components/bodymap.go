package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/fitguide/pkg/app/styles"
	"github.com/kerbaras/fitguide/pkg/muscles"
)

const (
	markerGlyph    = "o"
	highlightGlyph = "@"
	emptyGlyph     = " "
)

// BodyMap draws region markers on a character grid. Cells map linearly onto
// the 0-100 percentage space of the reference image.
type BodyMap struct {
	Regions     []muscles.Region
	Highlighted string
	Width       int
	Height      int
}

func NewBodyMap() *BodyMap {
	return &BodyMap{
		Width:  40,
		Height: 20,
	}
}

// PointAt converts a grid cell to percentage space. Cells outside the grid
// are clamped to the border.
func (b *BodyMap) PointAt(x, y int) muscles.Point {
	return muscles.Point{
		Left: scale(x, b.Width),
		Top:  scale(y, b.Height),
	}
}

// CellAt converts a percentage point to the nearest grid cell.
func (b *BodyMap) CellAt(p muscles.Point) (x, y int) {
	return unscale(p.Left, b.Width), unscale(p.Top, b.Height)
}

// Contains reports whether the cell lies on the grid.
func (b *BodyMap) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

func scale(v, size int) float64 {
	if size <= 1 {
		return 0
	}
	v = max(0, min(v, size-1))
	return float64(v) / float64(size-1) * 100
}

func unscale(pct float64, size int) int {
	if size <= 1 {
		return 0
	}
	if math.IsNaN(pct) {
		return 0
	}
	pct = max(0, min(pct, 100))
	return int(pct/100*float64(size-1) + 0.5)
}

func (b *BodyMap) View() string {
	if b.Width <= 0 || b.Height <= 0 {
		return ""
	}

	grid := make([][]string, b.Height)
	for y := range grid {
		grid[y] = make([]string, b.Width)
		for x := range grid[y] {
			grid[y][x] = emptyGlyph
		}
	}

	// highlighted markers are drawn last so they win shared cells
	for _, pass := range []bool{false, true} {
		for _, r := range b.Regions {
			if (r.Name == b.Highlighted) != pass {
				continue
			}
			glyph := styles.MarkerStyle.Render(markerGlyph)
			if pass {
				glyph = styles.HighlightStyle.Render(highlightGlyph)
			}
			for _, m := range r.Markers {
				x, y := b.CellAt(m.Point())
				grid[y][x] = glyph
			}
		}
	}

	rows := make([]string, len(grid))
	for y, row := range grid {
		rows[y] = strings.Join(row, "")
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
