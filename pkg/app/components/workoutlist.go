package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/fitguide/pkg/app/styles"
	"github.com/kerbaras/fitguide/pkg/data"
)

type WorkoutList struct {
	Items         []*data.Workout
	SelectedIndex int
	Width         int
	Height        int
}

func NewWorkoutList() *WorkoutList {
	return &WorkoutList{
		Items:  []*data.Workout{},
		Width:  80,
		Height: 20,
	}
}

func (l *WorkoutList) SetItems(items []*data.Workout) {
	l.Items = items
	if l.SelectedIndex >= len(items) && len(items) > 0 {
		l.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		l.SelectedIndex = 0
	}
}

func (l *WorkoutList) Next() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex = (l.SelectedIndex + 1) % len(l.Items)
}

func (l *WorkoutList) Prev() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex--
	if l.SelectedIndex < 0 {
		l.SelectedIndex = len(l.Items) - 1
	}
}

func (l *WorkoutList) Selected() *data.Workout {
	if len(l.Items) == 0 || l.SelectedIndex >= len(l.Items) {
		return nil
	}
	return l.Items[l.SelectedIndex]
}

func (l *WorkoutList) View() string {
	if len(l.Items) == 0 {
		msg := styles.MutedStyle.Render("No saved workouts. Mark exercises in the guide and press w.")
		return lipgloss.Place(l.Width, l.Height, lipgloss.Center, lipgloss.Center, msg)
	}

	var b strings.Builder
	for i, w := range l.Items {
		cardStyle := styles.CardStyle
		if i == l.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := styles.TitleStyle.Render(w.Title)
		info := styles.MutedStyle.Render(fmt.Sprintf("%d exercises · %d/week · %s",
			len(w.Exercises), w.WorkoutsPerWeek, orDash(w.Difficulty)))
		muscles := styles.TextStyle.Render("Targets: " + orDash(strings.Join(w.TargetMuscles, ", ")))

		id := w.ID
		if len(id) > 8 {
			id = id[:8]
		}
		meta := styles.MutedStyle.Render(fmt.Sprintf("ID: %s", id))

		content := lipgloss.JoinVertical(lipgloss.Left, title, muscles, info, meta)
		b.WriteString(cardStyle.Width(l.Width - 4).Render(content))
		b.WriteString("\n")
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
