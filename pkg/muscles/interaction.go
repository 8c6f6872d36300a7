package muscles

// State is the body diagram interaction state.
type State int

const (
	Idle State = iota
	Hovered
	Active
)

func (s State) String() string {
	switch s {
	case Hovered:
		return "hovered"
	case Active:
		return "active"
	default:
		return "idle"
	}
}

// Interaction tracks hover and click over one region set.
//
//	Idle/Hovered --move--> Idle/Hovered (re-evaluated)
//	any --click on region R--> Active(R), or Idle when R is already active
//	any --reset--> Idle
//
// While Active, pointer moves do not change the highlight.
type Interaction struct {
	tester  HitTester
	regions []Region

	state   State
	hovered string
	active  string
}

// NewInteraction starts Idle over regions.
func NewInteraction(regions []Region) *Interaction {
	return &Interaction{tester: DefaultHitTester(), regions: regions}
}

// SetTester replaces the hit tester.
func (i *Interaction) SetTester(t HitTester) {
	i.tester = t
}

// SetRegions swaps the region set (gender or view change) and resets.
func (i *Interaction) SetRegions(regions []Region) {
	i.regions = regions
	i.Reset()
}

// Regions returns the current region set.
func (i *Interaction) Regions() []Region {
	return i.regions
}

// State returns the current state.
func (i *Interaction) State() State {
	return i.state
}

// Active returns the clicked region, if any.
func (i *Interaction) Active() string {
	return i.active
}

// Hovered returns the region under the pointer, if any, even while another
// region is active.
func (i *Interaction) Hovered() string {
	return i.hovered
}

// Highlighted is the region the diagram should emphasize.
func (i *Interaction) Highlighted() string {
	if i.state == Active {
		return i.active
	}
	return i.hovered
}

// PointerMove re-evaluates the region under p.
func (i *Interaction) PointerMove(p Point) {
	m, ok := i.tester.Nearest(p, i.regions)
	if ok {
		i.hovered = m.Region
	} else {
		i.hovered = ""
	}

	if i.state == Active {
		return
	}
	if ok {
		i.state = Hovered
	} else {
		i.state = Idle
	}
}

// Click activates the region under p. Clicking the active region toggles it
// off. A click that hits nothing leaves the state unchanged. It reports
// whether the state changed.
func (i *Interaction) Click(p Point) bool {
	m, ok := i.tester.Nearest(p, i.regions)
	if !ok {
		return false
	}
	return i.Select(m.Region)
}

// Select behaves like a click on region name; used for keyboard selection.
func (i *Interaction) Select(name string) bool {
	if name == "" {
		return false
	}
	if i.state == Active && i.active == name {
		i.state = Idle
		i.active = ""
		i.hovered = ""
		return true
	}
	i.state = Active
	i.active = name
	return true
}

// Reset forces Idle.
func (i *Interaction) Reset() {
	i.state = Idle
	i.active = ""
	i.hovered = ""
}
