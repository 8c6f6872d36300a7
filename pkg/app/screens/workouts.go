package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/fitguide/pkg/app/components"
	"github.com/kerbaras/fitguide/pkg/app/styles"
	"github.com/kerbaras/fitguide/pkg/data"
	"github.com/kerbaras/fitguide/pkg/services"
)

type WorkoutsScreen struct {
	controller    *services.FitGuideController
	list          *components.WorkoutList
	notice        components.Notice
	loading       bool
	exporting     bool
	confirmDelete bool
	width         int
	height        int
}

func NewWorkoutsScreen(controller *services.FitGuideController) *WorkoutsScreen {
	return &WorkoutsScreen{
		controller: controller,
		list:       components.NewWorkoutList(),
	}
}

func (s *WorkoutsScreen) Init() tea.Cmd {
	s.loading = true
	return s.loadWorkouts
}

func (s *WorkoutsScreen) loadWorkouts() tea.Msg {
	workouts, err := s.controller.Workouts()
	return workoutsLoadedMsg{workouts: workouts, err: err}
}

func (s *WorkoutsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width
		s.list.Height = msg.Height - 8

	case tea.KeyMsg:
		if s.confirmDelete {
			s.confirmDelete = false
			if msg.String() == "y" {
				return s, s.deleteSelected()
			}
			s.notice.Clear()
			return s, nil
		}

		switch msg.String() {
		case "down", "j":
			s.list.Next()
		case "up", "k":
			s.list.Prev()
		case "r":
			return s, s.Init()
		case "d":
			if w := s.list.Selected(); w != nil {
				s.confirmDelete = true
				s.notice.Info(fmt.Sprintf("Delete %q? y/n", w.Title))
			}
		case "e":
			return s, s.export("epub")
		case "x":
			return s, s.export("xlsx")
		}

	case workoutsLoadedMsg:
		s.loading = false
		if msg.err != nil {
			s.notice.Error(msg.err)
			return s, nil
		}
		s.list.SetItems(msg.workouts)

	case workoutDeletedMsg:
		if msg.err != nil {
			s.notice.Error(msg.err)
			return s, nil
		}
		s.notice.Success(fmt.Sprintf("Deleted %q", msg.title))
		return s, s.loadWorkouts

	case exportDoneMsg:
		s.exporting = false
		if msg.err != nil {
			s.notice.Error(msg.err)
			return s, nil
		}
		s.notice.Success("Exported to " + msg.path)
	}

	return s, nil
}

func (s *WorkoutsScreen) deleteSelected() tea.Cmd {
	w := s.list.Selected()
	if w == nil {
		return nil
	}
	id, title := w.ID, w.Title
	return func() tea.Msg {
		return workoutDeletedMsg{title: title, err: s.controller.DeleteWorkout(id)}
	}
}

func (s *WorkoutsScreen) export(format string) tea.Cmd {
	w := s.list.Selected()
	if w == nil || s.exporting {
		return nil
	}
	s.exporting = true
	s.notice.Info(fmt.Sprintf("Exporting %q as %s...", w.Title, format))
	id := w.ID
	return func() tea.Msg {
		path, err := s.controller.Export(context.Background(), id, format, "")
		return exportDoneMsg{path: path, err: err}
	}
}

func (s *WorkoutsScreen) Selected() *data.Workout {
	return s.list.Selected()
}

func (s *WorkoutsScreen) View() string {
	if s.loading {
		return styles.MutedStyle.Render("Loading workouts...")
	}

	header := styles.TitleStyle.Render(fmt.Sprintf("Saved Workouts (%d)", len(s.list.Items)))

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(s.list.View())
	if w := s.list.Selected(); w != nil {
		b.WriteString(s.renderSchedule(w))
	}
	if s.notice.Visible() {
		b.WriteString("\n")
		b.WriteString(s.notice.View())
	}
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑↓: navigate • e: export epub • x: export xlsx • d: delete • r: refresh"))
	return b.String()
}

func (s *WorkoutsScreen) renderSchedule(w *data.Workout) string {
	days := w.ScheduleDays()
	if len(days) == 0 {
		return ""
	}
	var lines []string
	for _, d := range days {
		var names []string
		for _, e := range w.ExercisesFor(d) {
			names = append(names, e.Name)
		}
		line := fmt.Sprintf("%-10s %s", d, strings.Join(w.TrainingSchedule[d], ", "))
		if len(names) > 0 {
			line += styles.MutedStyle.Render(" · " + strings.Join(names, ", "))
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.SubtitleStyle.Render("Schedule"),
		strings.Join(lines, "\n"),
	) + "\n"
}
