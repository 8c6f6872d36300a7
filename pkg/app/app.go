package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/fitguide/pkg/app/screens"
	"github.com/kerbaras/fitguide/pkg/app/styles"
	"github.com/kerbaras/fitguide/pkg/services"
)

type App struct {
	controller *services.FitGuideController
}

func NewApp(controller *services.FitGuideController) *App {
	return &App{controller: controller}
}

// ApplyTheme loads the stored theme; unknown names fall back to the default.
func (a *App) ApplyTheme() {
	t, err := a.controller.Theme()
	if err != nil {
		a.controller.Logger().Warn("failed to load theme", "error", err)
		return
	}
	if t.Name == "" {
		return
	}
	if !styles.ApplyNamed(t.Name, t.CustomColor, t.UseCustomColor) {
		a.controller.Logger().Warn("unknown theme, using default", "theme", t.Name)
	}
}

func (a *App) Run() error {
	a.ApplyTheme()
	model := screens.NewRootScreen(a.controller)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
