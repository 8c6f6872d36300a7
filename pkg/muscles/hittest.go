package muscles

const (
	// MatchThreshold is the largest distance, in percentage points, at which a
	// pointer still selects a marker.
	MatchThreshold = 15.0
	// EarlyExitThreshold stops the scan at the first marker this close.
	EarlyExitThreshold = 8.0
)

// Match is a hit-test result.
type Match struct {
	Region   string
	Marker   Marker
	Distance float64
}

// HitTester finds the region nearest to a pointer.
type HitTester struct {
	Threshold float64
	// EarlyExit, when positive, returns the first marker closer than this
	// instead of scanning the rest. It trades exactness for speed: a later,
	// closer marker is not considered.
	EarlyExit float64
}

// DefaultHitTester scans every marker with the 15 point threshold.
func DefaultHitTester() HitTester {
	return HitTester{Threshold: MatchThreshold}
}

// Nearest returns the region owning the marker closest to p. Ties keep the
// marker met first in region then marker order. ok is false when no marker
// is strictly closer than the threshold, or when p is not finite.
func (h HitTester) Nearest(p Point, regions []Region) (m Match, ok bool) {
	if !p.Finite() {
		return m, false
	}
	threshold := h.Threshold
	if threshold <= 0 {
		threshold = MatchThreshold
	}

	best := threshold
	for _, r := range regions {
		for _, mk := range r.Markers {
			d := Distance(p, mk.Point())
			if d >= threshold {
				continue
			}
			if !ok || d < best {
				m = Match{Region: r.Name, Marker: mk, Distance: d}
				best = d
				ok = true
			}
			if h.EarlyExit > 0 && d < h.EarlyExit {
				return m, true
			}
		}
	}
	return m, ok
}

// Nearest is DefaultHitTester().Nearest.
func Nearest(p Point, regions []Region) (Match, bool) {
	return DefaultHitTester().Nearest(p, regions)
}
