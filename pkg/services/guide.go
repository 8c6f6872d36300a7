package services

import (
	"github.com/kerbaras/fitguide/pkg/assets"
	"github.com/kerbaras/fitguide/pkg/catalog"
	"github.com/kerbaras/fitguide/pkg/muscles"
)

// MuscleOption is one entry of the muscle picker.
type MuscleOption struct {
	Name     string
	Count    int  // exercises under the current filter
	Disabled bool // nothing to show under the current filter
}

// GuideSession is the selection state of the interactive muscle guide:
// body type, diagram side, selected muscle and equipment filter.
type GuideSession struct {
	catalog     *catalog.Catalog
	resolver    *assets.Resolver
	interaction *muscles.Interaction

	gender catalog.Gender
	view   catalog.View
	muscle string
	filter catalog.Equipment
}

// NewGuideSession starts on the male front view with no muscle selected and
// no equipment filter.
func NewGuideSession(c *catalog.Catalog, r *assets.Resolver) *GuideSession {
	s := &GuideSession{
		catalog:  c,
		resolver: r,
		gender:   catalog.Male,
		view:     catalog.Front,
		filter:   catalog.AllEquipment,
	}
	s.interaction = muscles.NewInteraction(c.Regions(s.gender, s.view))
	return s
}

func (s *GuideSession) Gender() catalog.Gender            { return s.gender }
func (s *GuideSession) View() catalog.View                { return s.view }
func (s *GuideSession) Muscle() string                    { return s.muscle }
func (s *GuideSession) Filter() catalog.Equipment         { return s.filter }
func (s *GuideSession) Interaction() *muscles.Interaction { return s.interaction }

// Regions are the diagram regions for the current body type and side.
func (s *GuideSession) Regions() []muscles.Region {
	return s.interaction.Regions()
}

// ToggleGender switches body type. The muscle selection and the equipment
// filter go back to their defaults.
func (s *GuideSession) ToggleGender() {
	s.SetGender(s.gender.Opposite())
}

func (s *GuideSession) SetGender(g catalog.Gender) {
	if g == s.gender {
		return
	}
	s.gender = g
	s.muscle = ""
	s.filter = catalog.AllEquipment
	s.interaction.SetRegions(s.catalog.Regions(s.gender, s.view))
}

// ToggleView flips the diagram. The selected muscle is kept and stays
// highlighted when the other side shows it too.
func (s *GuideSession) ToggleView() {
	s.SetView(s.view.Toggle())
}

func (s *GuideSession) SetView(v catalog.View) {
	if v == s.view {
		return
	}
	s.view = v
	s.interaction.SetRegions(s.catalog.Regions(s.gender, s.view))
	if _, ok := muscles.Find(s.interaction.Regions(), s.muscle); ok {
		s.interaction.Select(s.muscle)
	}
}

// SetFilter changes the equipment filter; the selected muscle is kept.
func (s *GuideSession) SetFilter(e catalog.Equipment) {
	s.filter = e
}

// CycleFilter moves to the next filter option, wrapping around.
func (s *GuideSession) CycleFilter() catalog.Equipment {
	opts := catalog.FilterOptions()
	next := 0
	for i, o := range opts {
		if o == s.filter {
			next = (i + 1) % len(opts)
			break
		}
	}
	s.filter = opts[next]
	return s.filter
}

// SelectMuscle makes name the selected muscle, as picked from a list.
// Picking the selected muscle again keeps it selected.
func (s *GuideSession) SelectMuscle(name string) {
	s.muscle = name
	if name == "" {
		s.interaction.Reset()
		return
	}
	if s.interaction.Active() != name {
		if _, ok := muscles.Find(s.interaction.Regions(), name); ok {
			s.interaction.Select(name)
		} else {
			s.interaction.Reset()
		}
	}
}

// PointerMove forwards a pointer position to the diagram.
func (s *GuideSession) PointerMove(p muscles.Point) {
	s.interaction.PointerMove(p)
}

// Click applies a diagram click; the selected muscle follows the active
// region, including toggling off.
func (s *GuideSession) Click(p muscles.Point) bool {
	if !s.interaction.Click(p) {
		return false
	}
	s.muscle = s.interaction.Active()
	return true
}

// Reset clears the muscle selection and the diagram state. The filter stays.
func (s *GuideSession) Reset() {
	s.muscle = ""
	s.interaction.Reset()
}

// Exercises lists the selected muscle's exercises under the filter.
func (s *GuideSession) Exercises() []string {
	if s.muscle == "" {
		return []string{}
	}
	return s.catalog.Filter(s.muscle, s.filter, s.gender)
}

// Display resolves one exercise for the current body type.
func (s *GuideSession) Display(name string) assets.Display {
	return s.resolver.Resolve(name, s.gender)
}

// MuscleOptions lists the indexed muscles for the current body type with
// their counts under the current filter. Muscles without exercises are
// marked disabled rather than dropped.
func (s *GuideSession) MuscleOptions() []MuscleOption {
	idx := s.catalog.Index()
	names := idx.Muscles(s.gender)
	opts := make([]MuscleOption, 0, len(names))
	for _, m := range names {
		n := idx.Count(m, s.filter, s.gender)
		opts = append(opts, MuscleOption{Name: m, Count: n, Disabled: n == 0})
	}
	return opts
}
