package screens

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/fitguide/pkg/app/components"
	"github.com/kerbaras/fitguide/pkg/app/styles"
	"github.com/kerbaras/fitguide/pkg/services"
)

// AssetsScreen mirrors exercise media into the local asset directory.
type AssetsScreen struct {
	controller *services.FitGuideController
	syncer     *services.AssetSyncer
	tracker    *components.ProgressTracker
	notice     components.Notice

	running   bool
	listening bool
	cancel    context.CancelFunc
	result    *services.SyncResult

	width  int
	height int
}

func NewAssetsScreen(controller *services.FitGuideController) *AssetsScreen {
	return &AssetsScreen{
		controller: controller,
		syncer:     controller.Syncer(),
		tracker:    components.NewProgressTracker(80),
	}
}

func (s *AssetsScreen) Init() tea.Cmd {
	if s.syncer == nil || s.listening {
		return nil
	}
	s.listening = true
	return s.listenForProgress()
}

func (s *AssetsScreen) Running() bool {
	return s.running
}

func (s *AssetsScreen) listenForProgress() tea.Cmd {
	ch := s.syncer.Progress()
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return syncProgressMsg(p)
	}
}

func (s *AssetsScreen) start() tea.Cmd {
	if s.syncer == nil || s.running {
		return nil
	}
	items := services.SyncItems(s.controller.Catalog())
	if len(items) == 0 {
		s.notice.Info("No media declared in the catalog")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true
	s.result = nil
	s.tracker.Clear()
	s.notice.Info(fmt.Sprintf("Syncing %d files...", len(items)))

	syncer := s.syncer
	return func() tea.Msg {
		res, err := syncer.Sync(ctx, items)
		return syncDoneMsg{result: res, err: err}
	}
}

// Stop cancels a running sync.
func (s *AssetsScreen) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *AssetsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.tracker.SetWidth(msg.Width - 4)

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			return s, s.start()
		case "c":
			s.Stop()
		}

	case syncProgressMsg:
		s.tracker.Update(services.SyncProgress(msg))
		return s, s.listenForProgress()

	case syncDoneMsg:
		s.running = false
		s.cancel = nil
		res := msg.result
		s.result = &res
		switch {
		case errors.Is(msg.err, context.Canceled):
			s.notice.Info("Sync cancelled")
		case msg.err != nil:
			s.notice.Error(msg.err)
		case res.Failed > 0:
			s.notice.Error(fmt.Errorf("%d files failed", res.Failed))
		default:
			s.notice.Success("Sync complete")
		}
	}

	return s, nil
}

func (s *AssetsScreen) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Exercise Media"))
	b.WriteString("\n\n")

	if s.syncer == nil {
		b.WriteString(styles.MutedStyle.Render("Media sync is disabled. Set FITGUIDE_ASSET_REMOTE to the asset host."))
		b.WriteString("\n")
		if dir := s.controller.AssetDir(); dir != "" {
			b.WriteString(styles.MutedStyle.Render("Local media: " + dir))
		}
		return b.String()
	}

	b.WriteString(styles.TextStyle.Render("Local media: " + s.controller.AssetDir()))
	b.WriteString("\n\n")

	if v := s.tracker.View(); v != "" {
		b.WriteString(v)
		b.WriteString("\n")
	}
	if s.result != nil {
		r := s.result
		b.WriteString(styles.TextStyle.Render(fmt.Sprintf(
			"Downloaded %d · already present %d · missing %d · failed %d",
			r.Downloaded, r.Skipped, r.Missing, r.Failed)))
		b.WriteString("\n")
	}
	if s.notice.Visible() {
		b.WriteString(s.notice.View())
		b.WriteString("\n")
	}

	help := "s: sync media"
	if s.running {
		help = "c: cancel sync"
	}
	b.WriteString(styles.HelpStyle.Render(help))
	return b.String()
}
