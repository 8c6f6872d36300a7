// Package catalog loads the exercise tables, the muscle/equipment index and
// the body-diagram regions. A Catalog is immutable once loaded and is passed
// to whatever needs it.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/kerbaras/fitguide/pkg/logging"
	"github.com/kerbaras/fitguide/pkg/muscles"
)

//go:embed data/*.yaml
var embedded embed.FS

// Conflict records an exercise defined in both the primary and the
// alternatives table of a body type with different content. The primary
// entry is the one served; the conflict is reported, not reconciled.
type Conflict struct {
	Name         string
	Gender       Gender
	Fields       []string
	Primary      string // file:line
	Alternatives string // file:line
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s (%s): %s differ between %s and %s",
		c.Name, c.Gender, strings.Join(c.Fields, ", "), c.Primary, c.Alternatives)
}

// Issue is an index entry without a matching catalog record. It is a data
// warning only: resolving such a name yields placeholder content.
type Issue struct {
	Gender    Gender
	Muscle    string
	Equipment Equipment
	Name      string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s/%s/%s: %q has no %s catalog record", i.Gender, i.Muscle, i.Equipment, i.Name, i.Gender)
}

type Catalog struct {
	tables    map[Gender]map[string]*Exercise
	index     *Index
	regions   map[Gender]map[View][]muscles.Region
	conflicts []Conflict
}

// Load parses a catalog directory: any number of exercise table files plus
// index.yaml and regions.yaml.
func Load(fsys fs.FS, logger *slog.Logger) (*Catalog, error) {
	logger = logging.OrDiscard(logger)

	l := newLoader(fsys)
	files, err := l.exerciseFiles()
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := l.readTable(f); err != nil {
			return nil, err
		}
	}
	tables, conflicts := l.merge()

	idx, err := readIndex(fsys)
	if err != nil {
		return nil, err
	}
	regions, err := readRegions(fsys)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		tables:    tables,
		index:     idx,
		regions:   regions,
		conflicts: conflicts,
	}

	for _, cf := range conflicts {
		logger.Warn("catalog tables disagree",
			"exercise", cf.Name,
			"gender", cf.Gender,
			"fields", strings.Join(cf.Fields, ","),
			"primary", cf.Primary,
			"alternatives", cf.Alternatives)
	}
	for _, is := range c.Validate() {
		logger.Debug("index entry without catalog record",
			"exercise", is.Name, "gender", is.Gender, "muscle", is.Muscle)
	}
	logger.Debug("catalog loaded",
		"male", len(tables[Male]), "female", len(tables[Female]), "conflicts", len(conflicts))
	return c, nil
}

// EmbeddedFS returns the built-in catalog files.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Default loads the built-in catalog.
func Default(logger *slog.Logger) (*Catalog, error) {
	return Load(EmbeddedFS(), logger)
}

// Open loads dir laid over the built-in catalog: a file in dir replaces the
// built-in file of the same name, other built-in files still apply. An empty
// dir is the built-in catalog.
func Open(dir string, logger *slog.Logger) (*Catalog, error) {
	if dir == "" {
		return Default(logger)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("catalog directory: %w", err)
	}
	return Load(overlayFS{upper: os.DirFS(dir), lower: EmbeddedFS()}, logger)
}

// Lookup returns the record for name in g's table.
func (c *Catalog) Lookup(name string, g Gender) (*Exercise, bool) {
	ex, ok := c.tables[g][name]
	return ex, ok
}

// Names lists g's table sorted by name.
func (c *Catalog) Names(g Gender) []string {
	names := make([]string, 0, len(c.tables[g]))
	for n := range c.tables[g] {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) Index() *Index {
	return c.index
}

// Filter is Index().Filter.
func (c *Catalog) Filter(muscle string, filter Equipment, g Gender) []string {
	return c.index.Filter(muscle, filter, g)
}

func (c *Catalog) Muscles(g Gender) []string {
	return c.index.Muscles(g)
}

// Regions returns the body-diagram regions for g and v in declaration order.
func (c *Catalog) Regions(g Gender, v View) []muscles.Region {
	return slices.Clone(c.regions[g][v])
}

// Conflicts lists primary/alternatives disagreements found while loading.
func (c *Catalog) Conflicts() []Conflict {
	return slices.Clone(c.conflicts)
}

// Validate cross-checks the index against the tables.
func (c *Catalog) Validate() []Issue {
	var issues []Issue
	for _, g := range Genders {
		for _, m := range c.index.Muscles(g) {
			for _, eq := range Equipments {
				for _, name := range c.index.Filter(m, eq, g) {
					if _, ok := c.Lookup(name, g); !ok {
						issues = append(issues, Issue{Gender: g, Muscle: m, Equipment: eq, Name: name})
					}
				}
			}
		}
	}
	return issues
}

// overlayFS resolves names in upper first, then lower.
type overlayFS struct {
	upper, lower fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := o.upper.Open(name)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return o.lower.Open(name)
}

func (o overlayFS) ReadDir(name string) ([]fs.DirEntry, error) {
	seen := make(map[string]bool)
	var out []fs.DirEntry
	for _, layer := range []fs.FS{o.upper, o.lower} {
		entries, err := fs.ReadDir(layer, name)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		for _, e := range entries {
			if !seen[e.Name()] {
				seen[e.Name()] = true
				out = append(out, e)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}
