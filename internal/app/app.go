package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"versequest/internal/config"
	"versequest/internal/content"
	"versequest/internal/progress"
	"versequest/internal/router"
	"versequest/internal/screen"
	"versequest/internal/screens/home"
	"versequest/internal/store"
	"versequest/internal/ui/layout"
)

// Options carries the wired dependencies into the TUI.
type Options struct {
	Config       *config.Config
	Corpus       *content.Corpus
	SnapshotRepo store.SnapshotRepo
	EventRepo    store.EventRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int

	streak       int
	sessionsLeft int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Config, opts.Corpus, opts.SnapshotRepo, opts.EventRepo)

	m := AppModel{
		router: router.New(homeScreen),
	}
	m.streak, m.sessionsLeft = headerNumbers(opts)
	return m
}

// headerNumbers derives the header's streak and quota from the latest
// snapshot.
func headerNumbers(opts Options) (streak, left int) {
	now := time.Now()
	left = opts.Config.Quota.Limit

	snap, err := opts.SnapshotRepo.Latest(context.Background())
	if err != nil || snap == nil {
		return 0, left
	}

	prog := progress.RecordFromSnapshot(snap.Data.Progress)
	quota := progress.QuotaFromSnapshot(snap.Data.Quota, opts.Config.Quota.Limit, opts.Config.Quota.Window, now)
	return prog.CurrentStreak, quota.Remaining(now)
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StatsChangedMsg:
		m.streak = msg.Streak
		m.sessionsLeft = msg.SessionsLeft
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.streak, m.sessionsLeft, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
