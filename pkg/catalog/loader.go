package catalog

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	fgerr "github.com/kerbaras/fitguide/pkg/errors"
	"github.com/kerbaras/fitguide/pkg/muscles"
)

const (
	indexFile   = "index.yaml"
	regionsFile = "regions.yaml"
)

// Layer is the table an exercise file belongs to.
type Layer string

const (
	LayerPrimary      Layer = "primary"
	LayerAlternatives Layer = "alternatives"
)

type variantDoc struct {
	Src          string   `yaml:"src"`
	Description  string   `yaml:"description"`
	Alternatives []string `yaml:"alternatives"`
}

type exerciseDoc struct {
	Name         string      `yaml:"name"`
	Type         string      `yaml:"type"`
	Equipment    string      `yaml:"equipment"`
	Difficulty   string      `yaml:"difficulty"`
	Alternatives []string    `yaml:"alternatives"`
	Male         *variantDoc `yaml:"male"`
	Female       *variantDoc `yaml:"female"`
}

type tableDoc struct {
	Gender    string      `yaml:"gender"`
	Layer     string      `yaml:"layer"`
	Exercises []yaml.Node `yaml:"exercises"`
}

// entry is a parsed exercise with the position it was declared at.
type entry struct {
	ex  *Exercise
	pos string
}

type tableKey struct {
	gender Gender
	layer  Layer
}

// loader accumulates the parsed files of one catalog directory.
type loader struct {
	fsys   fs.FS
	layers map[tableKey]map[string]entry
}

func newLoader(fsys fs.FS) *loader {
	return &loader{fsys: fsys, layers: make(map[tableKey]map[string]entry)}
}

// exerciseFiles lists every yaml file except the index and regions files,
// sorted so ingestion is deterministic.
func (l *loader) exerciseFiles() ([]string, error) {
	dir, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fgerr.Wrap(err, fgerr.CodeInvalidCatalog, "failed to read catalog directory")
	}
	var files []string
	for _, d := range dir {
		name := d.Name()
		if d.IsDir() || name == indexFile || name == regionsFile {
			continue
		}
		if ext := path.Ext(name); ext == ".yaml" || ext == ".yml" {
			files = append(files, name)
		}
	}
	sort.Strings(files)
	return files, nil
}

func (l *loader) readTable(file string) error {
	raw, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return fgerr.Wrap(err, fgerr.CodeInvalidCatalog, "failed to read "+file)
	}

	var doc tableDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fgerr.Wrap(err, fgerr.CodeInvalidCatalog, "failed to parse "+file)
	}

	gender, err := ParseGender(doc.Gender)
	if err != nil {
		return fgerr.Wrap(err, fgerr.CodeInvalidCatalog, file)
	}
	layer := Layer(strings.ToLower(strings.TrimSpace(doc.Layer)))
	if layer == "" {
		layer = LayerPrimary
	}
	if layer != LayerPrimary && layer != LayerAlternatives {
		return fgerr.Newf(fgerr.CodeInvalidCatalog, "%s: unknown layer %q", file, doc.Layer)
	}

	key := tableKey{gender, layer}
	table, ok := l.layers[key]
	if !ok {
		table = make(map[string]entry)
		l.layers[key] = table
	}

	for i := range doc.Exercises {
		node := &doc.Exercises[i]
		pos := fmt.Sprintf("%s:%d", file, node.Line)

		var ed exerciseDoc
		if err := node.Decode(&ed); err != nil {
			return fgerr.Wrap(err, fgerr.CodeInvalidCatalog, "failed to decode exercise at "+pos)
		}
		ex, err := ed.toExercise()
		if err != nil {
			return fgerr.Wrap(err, fgerr.CodeInvalidCatalog, pos)
		}
		if prev, dup := table[ex.Name]; dup {
			return fgerr.Newf(fgerr.CodeDuplicateEntry,
				"exercise %q declared twice in the %s %s table (%s and %s)",
				ex.Name, gender, layer, prev.pos, pos).
				WithMetadata("first", prev.pos).
				WithMetadata("second", pos)
		}
		table[ex.Name] = entry{ex: ex, pos: pos}
	}
	return nil
}

func (ed exerciseDoc) toExercise() (*Exercise, error) {
	name := strings.TrimSpace(ed.Name)
	if name == "" {
		return nil, fmt.Errorf("exercise without a name")
	}
	eq, err := parseCategory(ed.Equipment)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	diff, err := ParseDifficulty(ed.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	variants := make(map[Gender]Variant, 2)
	if ed.Male != nil {
		variants[Male] = ed.Male.toVariant()
	}
	if ed.Female != nil {
		variants[Female] = ed.Female.toVariant()
	}

	ex := NewExercise(name, eq, diff, variants)
	if ed.Type != "" {
		ex.MediaType = ed.Type
	}
	ex.Alternatives = slices.Clone(ed.Alternatives)
	return ex, nil
}

func (vd *variantDoc) toVariant() Variant {
	return Variant{
		ImagePath:    vd.Src,
		Description:  vd.Description,
		Alternatives: slices.Clone(vd.Alternatives),
	}
}

// merge builds the per-gender tables. Primary entries always win; an
// alternatives entry only fills a name the primary table lacks, and any
// divergence between the two is returned as a Conflict.
func (l *loader) merge() (map[Gender]map[string]*Exercise, []Conflict) {
	tables := make(map[Gender]map[string]*Exercise, len(Genders))
	var conflicts []Conflict

	for _, g := range Genders {
		table := make(map[string]*Exercise)
		primary := l.layers[tableKey{g, LayerPrimary}]
		for name, e := range primary {
			table[name] = e.ex
		}

		alts := l.layers[tableKey{g, LayerAlternatives}]
		names := make([]string, 0, len(alts))
		for name := range alts {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			alt := alts[name]
			p, ok := primary[name]
			if !ok {
				table[name] = alt.ex
				continue
			}
			if fields := diffExercises(p.ex, alt.ex); len(fields) > 0 {
				conflicts = append(conflicts, Conflict{
					Name:         name,
					Gender:       g,
					Fields:       fields,
					Primary:      p.pos,
					Alternatives: alt.pos,
				})
			}
		}
		tables[g] = table
	}
	return tables, conflicts
}

// diffExercises names the fields on which a and b disagree.
func diffExercises(a, b *Exercise) []string {
	var fields []string
	if a.MediaType != b.MediaType {
		fields = append(fields, "type")
	}
	if a.Equipment != b.Equipment {
		fields = append(fields, "equipment")
	}
	if a.Difficulty != b.Difficulty {
		fields = append(fields, "difficulty")
	}
	if !slices.Equal(a.Alternatives, b.Alternatives) {
		fields = append(fields, "alternatives")
	}
	for _, g := range Genders {
		va, okA := a.Variant(g)
		vb, okB := b.Variant(g)
		switch {
		case okA != okB:
			fields = append(fields, string(g))
		case !okA:
		default:
			if va.ImagePath != vb.ImagePath {
				fields = append(fields, string(g)+".src")
			}
			if va.Description != vb.Description {
				fields = append(fields, string(g)+".description")
			}
			if !slices.Equal(va.Alternatives, vb.Alternatives) {
				fields = append(fields, string(g)+".alternatives")
			}
		}
	}
	return fields
}

// readIndex walks index.yaml as a node tree so muscle declaration order
// survives and duplicate keys are caught.
func readIndex(fsys fs.FS) (*Index, error) {
	raw, err := fs.ReadFile(fsys, indexFile)
	if err != nil {
		return nil, fgerr.Wrap(err, fgerr.CodeInvalidCatalog, "failed to read "+indexFile)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fgerr.Wrap(err, fgerr.CodeInvalidCatalog, "failed to parse "+indexFile)
	}

	idx := newIndex()
	if len(root.Content) == 0 {
		return idx, nil
	}
	genders := root.Content[0]
	if genders.Kind != yaml.MappingNode {
		return nil, indexError(genders, "expected a mapping of body types")
	}

	for i := 0; i+1 < len(genders.Content); i += 2 {
		gk, gv := genders.Content[i], genders.Content[i+1]
		g, err := ParseGender(gk.Value)
		if err != nil {
			return nil, indexError(gk, err.Error())
		}
		if gv.Kind != yaml.MappingNode {
			return nil, indexError(gv, "expected a mapping of muscles")
		}
		for j := 0; j+1 < len(gv.Content); j += 2 {
			mk, mv := gv.Content[j], gv.Content[j+1]
			if idx.HasMuscle(mk.Value, g) {
				return nil, fgerr.Newf(fgerr.CodeDuplicateEntry, "%s:%d: muscle %q declared twice for %s",
					indexFile, mk.Line, mk.Value, g)
			}
			buckets, err := readBuckets(mv)
			if err != nil {
				return nil, err
			}
			idx.add(g, mk.Value, buckets)
		}
	}
	return idx, nil
}

func readBuckets(n *yaml.Node) (map[Equipment][]string, error) {
	if n.Kind != yaml.MappingNode {
		return nil, indexError(n, "expected a mapping of equipment categories")
	}
	buckets := make(map[Equipment][]string, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		ek, ev := n.Content[i], n.Content[i+1]
		eq, err := parseCategory(ek.Value)
		if err != nil {
			return nil, indexError(ek, err.Error())
		}
		if _, dup := buckets[eq]; dup {
			return nil, fgerr.Newf(fgerr.CodeDuplicateEntry, "%s:%d: equipment %q declared twice",
				indexFile, ek.Line, ek.Value)
		}
		var names []string
		if err := ev.Decode(&names); err != nil {
			return nil, indexError(ev, "expected a list of exercise names")
		}
		buckets[eq] = names
	}
	return buckets, nil
}

func indexError(n *yaml.Node, msg string) error {
	return fgerr.Newf(fgerr.CodeInvalidCatalog, "%s:%d: %s", indexFile, n.Line, msg)
}

type regionsDoc map[string]map[string][]muscles.Region

func readRegions(fsys fs.FS) (map[Gender]map[View][]muscles.Region, error) {
	raw, err := fs.ReadFile(fsys, regionsFile)
	if err != nil {
		return nil, fgerr.Wrap(err, fgerr.CodeInvalidCatalog, "failed to read "+regionsFile)
	}
	var doc regionsDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fgerr.Wrap(err, fgerr.CodeInvalidCatalog, "failed to parse "+regionsFile)
	}

	out := make(map[Gender]map[View][]muscles.Region, len(doc))
	for gs, views := range doc {
		g, err := ParseGender(gs)
		if err != nil {
			return nil, fgerr.Wrap(err, fgerr.CodeInvalidCatalog, regionsFile)
		}
		out[g] = make(map[View][]muscles.Region, len(views))
		for vs, regions := range views {
			v, err := ParseView(vs)
			if err != nil {
				return nil, fgerr.Wrap(err, fgerr.CodeInvalidCatalog, regionsFile)
			}
			for _, r := range regions {
				if r.Name == "" || len(r.Markers) == 0 {
					return nil, fgerr.Newf(fgerr.CodeInvalidCatalog,
						"%s: %s/%s region %q needs a name and at least one marker", regionsFile, g, v, r.Name)
				}
				for _, mk := range r.Markers {
					if !mk.Point().Finite() {
						return nil, fgerr.Newf(fgerr.CodeInvalidCatalog,
							"%s: %s/%s region %q has a non-finite marker", regionsFile, g, v, r.Name)
					}
				}
			}
			out[g][v] = regions
		}
	}
	return out, nil
}
