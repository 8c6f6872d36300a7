package assets

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/kerbaras/fitguide/pkg/catalog"
	"github.com/kerbaras/fitguide/pkg/logging"
)

const (
	NoDemonstration    = "No demonstration available yet."
	NoDescription      = "No description available."
	DefaultMediaType   = "image"
	unavailableVariant = "This exercise is not available for the %s body type."
)

// Display is what the UI renders for one exercise. Equipment and Difficulty
// are nil when the exercise is unknown.
type Display struct {
	Type         string              `json:"type"`
	Src          string              `json:"src"`
	Description  string              `json:"description"`
	Alternatives []string            `json:"alternatives"`
	Equipment    *catalog.Equipment  `json:"equipment"`
	Difficulty   *catalog.Difficulty `json:"difficulty"`
}

// Available reports whether the record carries real media for the body type.
func (d Display) Available() bool {
	return d.Src != PlaceholderPath
}

// Lookup is the part of the catalog the resolver needs.
type Lookup interface {
	Lookup(name string, g catalog.Gender) (*catalog.Exercise, bool)
}

type Resolver struct {
	catalog Lookup
	logger  *slog.Logger
}

func NewResolver(c Lookup, logger *slog.Logger) *Resolver {
	return &Resolver{catalog: c, logger: logging.OrDiscard(logger)}
}

// Resolve never fails: unknown exercises and missing body-type variants
// produce placeholder records.
func (r *Resolver) Resolve(name string, g catalog.Gender) Display {
	ex, ok := r.catalog.Lookup(name, g)
	if !ok {
		r.logger.Debug("no catalog record", "exercise", name, "gender", g)
		return Display{
			Type:         DefaultMediaType,
			Src:          PlaceholderPath,
			Description:  NoDemonstration,
			Alternatives: []string{},
		}
	}

	eq := ex.Equipment
	diff := ex.Difficulty
	d := Display{
		Type:       ex.MediaType,
		Equipment:  &eq,
		Difficulty: &diff,
	}
	if d.Type == "" {
		d.Type = DefaultMediaType
	}

	v, ok := ex.Variant(g)
	if !ok {
		r.logger.Debug("no variant for body type", "exercise", name, "gender", g)
		d.Src = PlaceholderPath
		d.Description = fmt.Sprintf(unavailableVariant, g)
		d.Alternatives = orEmpty(ex.Alternatives)
		return d
	}

	d.Src = FixAssetPath(v.ImagePath)
	d.Description = v.Description
	if d.Description == "" {
		d.Description = NoDescription
	}
	d.Alternatives = orEmpty(v.Alternatives)
	return d
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
