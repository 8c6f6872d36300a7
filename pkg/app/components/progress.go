package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kerbaras/fitguide/pkg/app/styles"
	"github.com/kerbaras/fitguide/pkg/services"
)

// ProgressTracker shows in-flight media syncs. Finished files leave the list
// and are only counted.
type ProgressTracker struct {
	active   map[string]*services.SyncProgress
	done     int
	total    int
	problems []services.SyncProgress
	width    int
}

func NewProgressTracker(width int) *ProgressTracker {
	return &ProgressTracker{
		active: make(map[string]*services.SyncProgress),
		width:  width,
	}
}

func progressKey(p services.SyncProgress) string {
	return string(p.Gender) + ":" + p.Exercise
}

func (p *ProgressTracker) Update(progress services.SyncProgress) {
	if progress.Total > 0 {
		p.total = progress.Total
	}
	key := progressKey(progress)
	switch progress.Status {
	case services.SyncComplete, services.SyncSkipped:
		delete(p.active, key)
		p.done++
	case services.SyncMissing, services.SyncError:
		delete(p.active, key)
		p.done++
		p.problems = append(p.problems, progress)
	default:
		prog := progress
		p.active[key] = &prog
	}
}

// SetWidth changes the render width and keeps the tracked state.
func (p *ProgressTracker) SetWidth(width int) {
	p.width = width
}

func (p *ProgressTracker) Clear() {
	p.active = make(map[string]*services.SyncProgress)
	p.problems = nil
	p.done, p.total = 0, 0
}

func (p *ProgressTracker) HasActive() bool {
	return len(p.active) > 0
}

func (p *ProgressTracker) Done() int  { return p.done }
func (p *ProgressTracker) Total() int { return p.total }

func (p *ProgressTracker) View() string {
	if p.total == 0 && len(p.active) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Media Sync"))
	b.WriteString("\n\n")

	if p.total > 0 {
		b.WriteString(renderProgressBar(p.done, p.total, p.width-4))
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%d/%d files", p.done, p.total)))
		b.WriteString("\n\n")
	}

	keys := make([]string, 0, len(p.active))
	for k := range p.active {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		prog := p.active[k]
		b.WriteString(styles.TextStyle.Render(fmt.Sprintf("%s (%s)", prog.Exercise, prog.Gender)))
		b.WriteString(" ")
		b.WriteString(styles.StatusStyle(prog.Status).Render(prog.Status))
		b.WriteString("\n")
	}

	for _, prog := range p.problems {
		line := fmt.Sprintf("%s (%s): %s", prog.Exercise, prog.Gender, prog.Status)
		if prog.Error != nil {
			line += ": " + prog.Error.Error()
		}
		b.WriteString(styles.StatusStyle(prog.Status).Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styles.ProgressBarStyle.Render(bar)
}

// SimpleProgress renders a simple progress bar
func SimpleProgress(current, total, width int) string {
	return renderProgressBar(current, total, width)
}
