package assets

import (
	"strings"

	"github.com/kerbaras/fitguide/pkg/catalog"
)

// guessGender reads a body type segment out of src, defaulting to g.
func guessGender(src string, g catalog.Gender) catalog.Gender {
	switch {
	case strings.Contains(src, "/female/"):
		return catalog.Female
	case strings.Contains(src, "/male/"):
		return catalog.Male
	}
	return g
}

// Candidates lists the alternate paths tried, in order, after src fails to
// load.
func Candidates(src string, g catalog.Gender) []string {
	file := fileName(src)
	gender := guessGender(src, g)

	original := src
	if !IsURL(src) {
		original = StripDevPrefix(src)
		if !strings.HasPrefix(original, "/") {
			original = "/" + original
		}
	}

	return []string{
		"/assets/exercises/" + string(gender) + "/" + file,
		"/assets/exercises/" + file,
		"/assets/exercises/" + string(gender.Opposite()) + "/" + file,
		original,
		"/static/exercises/" + string(gender) + "/" + file,
		"/" + file,
	}
}

// Fallback is the attempt state of one displayed image. The zero value is
// not usable; create it with NewFallback.
type Fallback struct {
	src        string
	gender     catalog.Gender
	current    string
	candidates []string
	attempts   int
	exhausted  bool
}

func NewFallback(src string, g catalog.Gender) *Fallback {
	f := &Fallback{}
	f.reset(src, g)
	return f
}

// SetSource points the fallback at a new image. The attempt counter only
// resets when the source or body type actually changes.
func (f *Fallback) SetSource(src string, g catalog.Gender) {
	if src == f.src && g == f.gender {
		return
	}
	f.reset(src, g)
}

func (f *Fallback) reset(src string, g catalog.Gender) {
	f.src = src
	f.gender = g
	f.current = FixAssetPath(src)
	f.candidates = Candidates(src, g)
	f.attempts = 0
	f.exhausted = f.current == PlaceholderPath
}

// Current is the path to load now.
func (f *Fallback) Current() string {
	return f.current
}

// Attempts counts the alternate paths tried since the last reset.
func (f *Fallback) Attempts() int {
	return f.attempts
}

// Exhausted reports whether the placeholder is showing.
func (f *Fallback) Exhausted() bool {
	return f.exhausted
}

// OnError records that Current failed to load and moves to the next
// candidate. ok is false once the cascade is spent; the placeholder is then
// current and further errors are ignored.
func (f *Fallback) OnError() (next string, ok bool) {
	if f.exhausted {
		return f.current, false
	}
	if f.attempts >= MaxAttempts {
		f.exhausted = true
		f.current = PlaceholderPath
		return f.current, false
	}
	f.current = f.candidates[f.attempts]
	f.attempts++
	return f.current, true
}
