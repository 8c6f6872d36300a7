package screens

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/fitguide/pkg/app/styles"
	"github.com/kerbaras/fitguide/pkg/services"
)

type screenType int

const (
	guideView screenType = iota
	workoutsView
	assetsView
	detailsView
)

// rootHeaderHeight is the number of rows above the active screen: the tab
// bar and a blank line.
const rootHeaderHeight = 2

var tabNames = []string{"Guide", "Workouts", "Assets"}

type RootScreen struct {
	controller *services.FitGuideController

	currentView screenType
	guide       *GuideScreen
	workouts    *WorkoutsScreen
	assets      *AssetsScreen
	details     *DetailsScreen

	notice string
	width  int
	height int
}

func NewRootScreen(controller *services.FitGuideController) *RootScreen {
	return &RootScreen{
		controller:  controller,
		currentView: guideView,
		guide:       NewGuideScreen(controller),
		workouts:    NewWorkoutsScreen(controller),
		assets:      NewAssetsScreen(controller),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(r.guide.Init(), r.assets.Init())
}

func (r *RootScreen) capturing() bool {
	var active tea.Model
	switch r.currentView {
	case guideView:
		active = r.guide
	case workoutsView:
		active = r.workouts
	case assetsView:
		active = r.assets
	case detailsView:
		active = r.details
	}
	c, ok := active.(inputCapturer)
	return ok && c.CapturingInput()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - rootHeaderHeight}
		r.guide.Update(inner)
		r.workouts.Update(inner)
		r.assets.Update(inner)
		if r.details != nil {
			r.details.Update(inner)
		}
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			r.assets.Stop()
			return r, tea.Quit
		}
		if r.capturing() {
			break
		}
		switch msg.String() {
		case "q":
			r.assets.Stop()
			return r, tea.Quit
		case "tab":
			if r.currentView == detailsView {
				break
			}
			return r, r.switchTo((r.currentView + 1) % screenType(len(tabNames)))
		case "t":
			return r, r.cycleTheme()
		}

	case tea.MouseMsg:
		if r.currentView != guideView {
			return r, nil
		}
		msg.Y -= rootHeaderHeight
		_, cmd = r.guide.Update(msg)
		return r, cmd

	case SwitchScreenMsg:
		switch msg.Screen {
		case screenGuide:
			cmd = r.switchTo(guideView)
		case screenWorkouts:
			cmd = r.switchTo(workoutsView)
		case screenAssets:
			cmd = r.switchTo(assetsView)
		case screenDetails:
			if req, ok := msg.Data.(DetailsRequest); ok {
				r.details = NewDetailsScreen(r.controller, req)
				r.details.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height - rootHeaderHeight})
				r.currentView = detailsView
				cmd = r.details.Init()
			}
		}
		return r, cmd

	case themeSavedMsg:
		if msg.err != nil {
			r.notice = styles.StatusError.Render(fmt.Sprintf("Theme not saved: %s", msg.err))
		} else {
			r.notice = styles.MutedStyle.Render("Theme: " + msg.name)
		}
		return r, nil

	// results of background work go to their screen whichever is visible
	case syncProgressMsg, syncDoneMsg:
		_, cmd = r.assets.Update(msg)
		return r, cmd
	case workoutsLoadedMsg, workoutDeletedMsg, exportDoneMsg:
		_, cmd = r.workouts.Update(msg)
		return r, cmd
	case workoutSavedMsg:
		_, cmd = r.guide.Update(msg)
		return r, cmd
	case mediaLocatedMsg:
		if r.details != nil {
			_, cmd = r.details.Update(msg)
		}
		return r, cmd
	}

	// Forward message to active screen
	switch r.currentView {
	case guideView:
		_, cmd = r.guide.Update(msg)
	case workoutsView:
		_, cmd = r.workouts.Update(msg)
	case assetsView:
		_, cmd = r.assets.Update(msg)
	case detailsView:
		if r.details != nil {
			_, cmd = r.details.Update(msg)
		}
	}
	return r, cmd
}

func (r *RootScreen) switchTo(v screenType) tea.Cmd {
	r.currentView = v
	r.details = nil
	switch v {
	case workoutsView:
		return r.workouts.Init()
	case assetsView:
		return r.assets.Init()
	}
	return nil
}

// cycleTheme applies the next named theme and stores it.
func (r *RootScreen) cycleTheme() tea.Cmd {
	names := styles.ThemeNames()
	i := slices.Index(names, styles.Current().Name)
	next := names[(i+1)%len(names)]

	prefs, err := r.controller.Theme()
	if err != nil {
		r.controller.Logger().Warn("failed to load theme", "error", err)
	}
	prefs.Name = next
	if !slices.Contains(prefs.Unlocked, next) {
		prefs.Unlocked = append(prefs.Unlocked, next)
	}
	styles.ApplyNamed(next, prefs.CustomColor, prefs.UseCustomColor)

	return func() tea.Msg {
		return themeSavedMsg{name: next, err: r.controller.SaveTheme(prefs)}
	}
}

func (r *RootScreen) View() string {
	var content string
	switch r.currentView {
	case guideView:
		content = r.guide.View()
	case workoutsView:
		content = r.workouts.View()
	case assetsView:
		content = r.assets.View()
	case detailsView:
		if r.details != nil {
			content = r.details.View()
		}
	}

	out := fmt.Sprintf("%s\n\n%s", r.renderTabs(), content)
	if r.notice != "" {
		out += "\n" + r.notice
	}
	return out
}

func (r *RootScreen) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if screenType(i) == r.currentView {
			tabs[i] = styles.ActiveTabStyle.Render(name)
		} else {
			tabs[i] = styles.InactiveTabStyle.Render(name)
		}
	}
	tabs = append(tabs, styles.MutedStyle.Render("  tab: switch • t: theme • q: quit"))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
