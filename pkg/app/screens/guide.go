package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/fitguide/pkg/app/components"
	"github.com/kerbaras/fitguide/pkg/app/styles"
	"github.com/kerbaras/fitguide/pkg/services"
)

// guideMapTop is the first row of the body map inside the guide view.
const guideMapTop = 2

type GuideScreen struct {
	controller *services.FitGuideController
	session    *services.GuideSession

	bodyMap   *components.BodyMap
	exercises *components.ExerciseList
	notice    components.Notice

	prompt    textinput.Model
	prompting bool

	width  int
	height int
}

func NewGuideScreen(controller *services.FitGuideController) *GuideScreen {
	ti := textinput.New()
	ti.Placeholder = "Workout name..."
	ti.CharLimit = 80
	ti.Width = 40

	g := &GuideScreen{
		controller: controller,
		session:    controller.NewSession(),
		bodyMap:    components.NewBodyMap(),
		exercises:  components.NewExerciseList(),
		prompt:     ti,
	}
	g.refreshMap()
	g.refreshExercises()
	return g
}

func (g *GuideScreen) Init() tea.Cmd {
	return nil
}

func (g *GuideScreen) CapturingInput() bool {
	return g.prompting
}

func (g *GuideScreen) Session() *services.GuideSession {
	return g.session
}

func (g *GuideScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
		g.resize()

	case tea.MouseMsg:
		g.handleMouse(msg)

	case tea.KeyMsg:
		if g.prompting {
			return g.updatePrompt(msg)
		}
		return g, g.handleKey(msg)

	case workoutSavedMsg:
		if msg.err != nil {
			g.notice.Error(msg.err)
			return g, nil
		}
		g.closePrompt()
		g.refreshExercises()
		g.notice.Success(fmt.Sprintf("Saved %q with %d exercises", msg.workout.Title, len(msg.workout.Exercises)))
	}

	return g, nil
}

func (g *GuideScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "g":
		g.session.ToggleGender()
		g.refreshMap()
		g.refreshExercises()
	case "v":
		g.session.ToggleView()
		g.refreshMap()
	case "e":
		g.session.CycleFilter()
		g.refreshExercises()
	case "esc":
		g.session.Reset()
		g.notice.Clear()
		g.refreshMap()
		g.refreshExercises()
	case "right", "l":
		g.cycleMuscle(1)
	case "left", "h":
		g.cycleMuscle(-1)
	case "down", "j":
		g.exercises.Next()
	case "up", "k":
		g.exercises.Prev()
	case " ":
		g.exercises.ToggleMark()
	case "w":
		g.prompting = true
		g.notice.Clear()
		return g.prompt.Focus()
	case "enter":
		if it := g.exercises.Selected(); it != nil {
			req := DetailsRequest{Name: it.Name, Gender: g.session.Gender()}
			return func() tea.Msg {
				return SwitchScreenMsg{Screen: screenDetails, Data: req}
			}
		}
	}
	return nil
}

func (g *GuideScreen) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		g.closePrompt()
		return g, nil
	case "enter":
		w := g.controller.DraftWorkout(g.prompt.Value(), g.session.Gender(), g.session.Muscle(), g.exercises.Marked())
		// invalid drafts keep the prompt open
		if err := services.ValidateWorkout(w); err != nil {
			g.notice.Error(err)
			return g, nil
		}
		return g, func() tea.Msg {
			err := g.controller.SaveWorkout(w)
			return workoutSavedMsg{workout: w, err: err}
		}
	}

	var cmd tea.Cmd
	g.prompt, cmd = g.prompt.Update(msg)
	return g, cmd
}

func (g *GuideScreen) closePrompt() {
	g.prompting = false
	g.prompt.Blur()
	g.prompt.Reset()
}

func (g *GuideScreen) handleMouse(msg tea.MouseMsg) {
	x, y := msg.X, msg.Y-guideMapTop
	if !g.bodyMap.Contains(x, y) {
		return
	}
	p := g.bodyMap.PointAt(x, y)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if g.session.Click(p) {
			g.refreshExercises()
		}
	case msg.Action == tea.MouseActionMotion:
		g.session.PointerMove(p)
	}
	g.bodyMap.Highlighted = g.session.Interaction().Highlighted()
}

// cycleMuscle moves the selection through the muscles that have exercises
// under the current filter.
func (g *GuideScreen) cycleMuscle(step int) {
	opts := g.session.MuscleOptions()
	if len(opts) == 0 {
		return
	}
	cur := -1
	for i, o := range opts {
		if o.Name == g.session.Muscle() {
			cur = i
			break
		}
	}
	if cur == -1 && step < 0 {
		cur = 0
	}
	for range opts {
		cur = (cur + step + len(opts)) % len(opts)
		if !opts[cur].Disabled {
			g.session.SelectMuscle(opts[cur].Name)
			g.refreshMap()
			g.refreshExercises()
			return
		}
	}
}

func (g *GuideScreen) refreshMap() {
	g.bodyMap.Regions = g.session.Regions()
	g.bodyMap.Highlighted = g.session.Interaction().Highlighted()
}

func (g *GuideScreen) refreshExercises() {
	names := g.session.Exercises()
	items := make([]components.ExerciseListItem, len(names))
	for i, n := range names {
		items[i] = components.ExerciseListItem{Name: n, Display: g.session.Display(n)}
	}
	g.exercises.SetItems(items)

	switch {
	case g.session.Muscle() == "":
		g.exercises.Empty = "Click a muscle or use ←/→ to pick one"
	default:
		g.exercises.Empty = fmt.Sprintf("No %s exercises for %s", g.session.Filter(), g.session.Muscle())
	}
}

func (g *GuideScreen) resize() {
	h := max(10, min(g.height-10, 30))
	g.bodyMap.Height = h
	g.bodyMap.Width = min(h*2+1, max(g.width/2, 21))
	g.exercises.Width = max(20, g.width-g.bodyMap.Width-4)
	g.exercises.Height = max(4, h-6)
}

func (g *GuideScreen) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.TitleStyle.Render("Muscle Guide"),
		"  ",
		styles.MutedStyle.Render(fmt.Sprintf("%s · %s · %s",
			g.session.Gender(), g.session.View(), g.session.Filter())),
	)

	mapView := g.bodyMap.View()
	panel := lipgloss.JoinVertical(lipgloss.Left,
		g.renderMuscles(),
		"",
		g.exercises.View(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, mapView, "  ", panel)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")

	if g.prompting {
		b.WriteString(styles.FocusedInputStyle.Render(g.prompt.View()))
		b.WriteString("\n")
	}
	if g.notice.Visible() {
		b.WriteString(g.notice.View())
		b.WriteString("\n")
	}

	help := "click/←→: muscle • ↑↓: exercise • space: mark • enter: details • w: save workout • g: body • v: side • e: equipment • esc: reset"
	if g.prompting {
		help = "enter: save • esc: cancel"
	}
	b.WriteString(styles.HelpStyle.Render(help))
	return b.String()
}

func (g *GuideScreen) renderMuscles() string {
	var chips []string
	for _, o := range g.session.MuscleOptions() {
		label := fmt.Sprintf("%s (%d)", o.Name, o.Count)
		switch {
		case o.Name == g.session.Muscle():
			label = styles.SelectedStyle.Render("[" + label + "]")
		case o.Disabled:
			label = styles.DisabledStyle.Render(label)
		case o.Name == g.session.Interaction().Hovered():
			label = styles.HighlightStyle.Render(label)
		default:
			label = styles.TextStyle.Render(label)
		}
		chips = append(chips, label)
	}
	return lipgloss.NewStyle().Width(max(20, g.exercises.Width)).Render(strings.Join(chips, "  "))
}
