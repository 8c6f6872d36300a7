package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/fitguide/pkg/app/styles"
	"github.com/kerbaras/fitguide/pkg/assets"
	"github.com/kerbaras/fitguide/pkg/catalog"
	"github.com/kerbaras/fitguide/pkg/services"
)

// DetailsScreen is the exercise modal. Alternatives can be followed; back
// returns along the visited chain.
type DetailsScreen struct {
	controller *services.FitGuideController
	gender     catalog.Gender

	name     string
	display  assets.Display
	history  []string
	selected int
	media    *assets.Location

	width  int
	height int
}

func NewDetailsScreen(controller *services.FitGuideController, req DetailsRequest) *DetailsScreen {
	s := &DetailsScreen{
		controller: controller,
		gender:     req.Gender,
	}
	s.show(req.Name)
	return s
}

type mediaLocatedMsg struct {
	name string
	loc  assets.Location
}

func (s *DetailsScreen) Init() tea.Cmd {
	return s.locateMedia()
}

func (s *DetailsScreen) Name() string      { return s.name }
func (s *DetailsScreen) History() []string { return s.history }

func (s *DetailsScreen) show(name string) {
	s.name = name
	s.display = s.controller.Resolver().Resolve(name, s.gender)
	s.selected = 0
	s.media = nil
}

// Follow opens the selected alternative.
func (s *DetailsScreen) Follow() bool {
	if s.selected >= len(s.display.Alternatives) {
		return false
	}
	s.history = append(s.history, s.name)
	s.show(s.display.Alternatives[s.selected])
	return true
}

// Back returns to the previous exercise.
func (s *DetailsScreen) Back() bool {
	if len(s.history) == 0 {
		return false
	}
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.show(prev)
	return true
}

// locateMedia checks the local asset directory for the current exercise.
func (s *DetailsScreen) locateMedia() tea.Cmd {
	name, d, g := s.name, s.display, s.gender
	dir, logger := s.controller.AssetDir(), s.controller.Logger()
	if dir == "" || !d.Available() || assets.IsURL(d.Src) {
		return nil
	}
	return func() tea.Msg {
		loc, err := assets.Locate(context.Background(), assets.FSProber{Root: dir}, d.Src, g, logger)
		if err != nil {
			return nil
		}
		return mediaLocatedMsg{name: name, loc: loc}
	}
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case mediaLocatedMsg:
		// stale lookups from a previous exercise are dropped
		if msg.name == s.name {
			loc := msg.loc
			s.media = &loc
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "down", "j":
			if s.selected < len(s.display.Alternatives)-1 {
				s.selected++
			}
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "enter":
			if s.Follow() {
				return s, s.locateMedia()
			}
		case "backspace", "b":
			if s.Back() {
				return s, s.locateMedia()
			}
		case "esc":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: screenGuide}
			}
		}
	}
	return s, nil
}

func (s *DetailsScreen) View() string {
	d := s.display

	var meta []string
	if d.Equipment != nil {
		meta = append(meta, "Equipment: "+string(*d.Equipment))
	}
	if d.Difficulty != nil {
		meta = append(meta, "Difficulty: "+string(*d.Difficulty))
	}
	meta = append(meta, "Body: "+string(s.gender))

	media := styles.MutedStyle.Render("Media: " + d.Src)
	switch {
	case !d.Available():
		media = styles.StatusWarning.Render(assets.NoDemonstration)
	case s.media != nil && s.media.Placeholder:
		media = styles.StatusWarning.Render("Media not synced: " + d.Src)
	case s.media != nil:
		media = styles.StatusCompleted.Render("Media: " + s.media.Path)
	}

	width := 70
	if s.width > 0 {
		width = min(width, s.width-8)
	}

	parts := []string{
		styles.TitleStyle.Render(s.name),
		styles.MutedStyle.Render(strings.Join(meta, " · ")),
		"",
		lipgloss.NewStyle().Width(width).Render(styles.TextStyle.Render(d.Description)),
		"",
		media,
		"",
		s.renderAlternatives(),
	}
	if len(s.history) > 0 {
		parts = append(parts, "", styles.MutedStyle.Render("From: "+strings.Join(s.history, " → ")))
	}
	parts = append(parts, styles.HelpStyle.Render("↑↓: alternative • enter: open • backspace: back • esc: close"))

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (s *DetailsScreen) renderAlternatives() string {
	alts := s.display.Alternatives
	if len(alts) == 0 {
		return styles.MutedStyle.Render("No alternatives")
	}

	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Alternatives (%d):", len(alts))))
	for i, a := range alts {
		b.WriteString("\n")
		if i == s.selected {
			b.WriteString(styles.SelectedStyle.Render("> " + a))
		} else {
			b.WriteString(styles.TextStyle.Render("  " + a))
		}
	}
	return b.String()
}
