package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/fitguide/pkg/app/styles"
	"github.com/kerbaras/fitguide/pkg/assets"
)

type ExerciseListItem struct {
	Name    string
	Display assets.Display
	Marked  bool
}

// ExerciseList is the exercise column of the guide. Marked items are the
// ones collected into a new workout.
type ExerciseList struct {
	Items         []ExerciseListItem
	SelectedIndex int
	Width         int
	Height        int
	Empty         string
}

func NewExerciseList() *ExerciseList {
	return &ExerciseList{
		Items:  []ExerciseListItem{},
		Width:  60,
		Height: 20,
		Empty:  "Select a muscle to see exercises",
	}
}

func (l *ExerciseList) SetItems(items []ExerciseListItem) {
	l.Items = items
	if l.SelectedIndex >= len(items) && len(items) > 0 {
		l.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		l.SelectedIndex = 0
	}
}

func (l *ExerciseList) Next() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex = (l.SelectedIndex + 1) % len(l.Items)
}

func (l *ExerciseList) Prev() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex--
	if l.SelectedIndex < 0 {
		l.SelectedIndex = len(l.Items) - 1
	}
}

func (l *ExerciseList) Selected() *ExerciseListItem {
	if len(l.Items) == 0 || l.SelectedIndex >= len(l.Items) {
		return nil
	}
	return &l.Items[l.SelectedIndex]
}

// ToggleMark flips the mark of the selected item.
func (l *ExerciseList) ToggleMark() {
	if it := l.Selected(); it != nil {
		it.Marked = !it.Marked
	}
}

// Marked returns the marked names in list order.
func (l *ExerciseList) Marked() []string {
	var names []string
	for _, it := range l.Items {
		if it.Marked {
			names = append(names, it.Name)
		}
	}
	return names
}

func (l *ExerciseList) View() string {
	if len(l.Items) == 0 {
		msg := styles.MutedStyle.Render(l.Empty)
		return lipgloss.Place(l.Width, l.Height, lipgloss.Center, lipgloss.Center, msg)
	}

	// each row takes two lines
	visible := max(1, l.Height/2)
	start := 0
	if l.SelectedIndex >= visible {
		start = l.SelectedIndex - visible + 1
	}
	end := min(len(l.Items), start+visible)

	var b strings.Builder
	for i := start; i < end; i++ {
		it := l.Items[i]

		mark := "[ ]"
		if it.Marked {
			mark = "[x]"
		}
		name := styles.TextStyle.Render(it.Name)
		cursor := "  "
		if i == l.SelectedIndex {
			name = styles.SelectedStyle.Render(it.Name)
			cursor = styles.SelectedStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, mark, name))
		b.WriteString("      ")
		b.WriteString(styles.MutedStyle.Render(itemMeta(it.Display)))
		b.WriteString("\n")
	}
	if end < len(l.Items) {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("  ... %d more", len(l.Items)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func itemMeta(d assets.Display) string {
	var parts []string
	if d.Equipment != nil {
		parts = append(parts, string(*d.Equipment))
	}
	if d.Difficulty != nil {
		parts = append(parts, string(*d.Difficulty))
	}
	if !d.Available() {
		parts = append(parts, "no media")
	}
	if len(parts) == 0 {
		return "unknown exercise"
	}
	return strings.Join(parts, " · ")
}
