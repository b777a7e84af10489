package home

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"versequest/internal/config"
	"versequest/internal/content"
	"versequest/internal/progress"
	"versequest/internal/router"
	"versequest/internal/screen"
	"versequest/internal/screens/quest"
	"versequest/internal/screens/stats"
	"versequest/internal/srs"
	"versequest/internal/store"
	"versequest/internal/ui/components"
	"versequest/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	cfg       *config.Config
	corpus    *content.Corpus
	snapRepo  store.SnapshotRepo
	eventRepo store.EventRepo

	menu         components.Menu
	streak       int
	tracked      int
	reviewsDue   int
	planDay      int
	planTitle    string
	sessionsLeft int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen, deriving the headline numbers from the
// latest snapshot.
func New(cfg *config.Config, corpus *content.Corpus, snapRepo store.SnapshotRepo, eventRepo store.EventRepo) *HomeScreen {
	h := &HomeScreen{
		cfg:       cfg,
		corpus:    corpus,
		snapRepo:  snapRepo,
		eventRepo: eventRepo,
	}
	h.refresh()
	return h
}

// refresh reloads the snapshot-derived numbers and rebuilds the menu.
// Runs at construction and again each time the screen becomes active,
// since a finished session changes the quota, streak, and due counts.
func (h *HomeScreen) refresh() {
	now := time.Now()

	var snapData *store.SnapshotData
	if h.snapRepo != nil {
		if snap, err := h.snapRepo.Latest(context.Background()); err == nil && snap != nil {
			snapData = &snap.Data
		}
	}

	sched := srs.NewScheduler(snapData)
	var progData *store.ProgressSnapshotData
	var quotaData *store.QuotaSnapshotData
	if snapData != nil {
		progData = snapData.Progress
		quotaData = snapData.Quota
	}
	prog := progress.RecordFromSnapshot(progData)
	quota := progress.QuotaFromSnapshot(quotaData, h.cfg.Quota.Limit, h.cfg.Quota.Window, now)

	h.streak = prog.CurrentStreak
	h.tracked = len(sched.All())
	h.reviewsDue = len(sched.Due(now))
	h.sessionsLeft = quota.Remaining(now)

	h.planDay = nextPlanDay(h.corpus, prog)
	h.planTitle = ""
	if p, ok := h.corpus.DayPassage(h.planDay); ok {
		h.planTitle = p.Title
	}

	items := []components.MenuItem{
		{Label: "START TODAY'S QUEST", Disabled: h.sessionsLeft == 0, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: quest.New(quest.ModeDaily, h.cfg, h.corpus, h.snapRepo, h.eventRepo),
				}
			}
		}},
		{Label: "REVIEW DUE VERSES", Disabled: h.reviewsDue == 0, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: quest.New(quest.ModeReview, h.cfg, h.corpus, h.snapRepo, h.eventRepo),
				}
			}
		}},
		{Label: "STATS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: stats.New(h.snapRepo, h.eventRepo),
				}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
}

// nextPlanDay mirrors the quest screen's day selection so the menu can
// preview what's up next.
func nextPlanDay(corpus *content.Corpus, prog *progress.Record) int {
	for _, p := range corpus.Plan {
		if !prog.Completed(p.Day) {
			return p.Day
		}
	}
	days := corpus.Days()
	if days == 0 {
		return 0
	}
	return (len(prog.CompletedDayIDs) % days) + 1
}

func (h *HomeScreen) Init() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.Width(width).Render("⋆ VerseQuest ⋆")
	subtitle := theme.Subtitle.Width(width).Render("hide the word in your heart")
	sections = append(sections, title+"\n"+subtitle)

	if h.planDay > 0 {
		up := "Up next: Day " + strconv.Itoa(h.planDay)
		if h.planTitle != "" {
			up += " — " + h.planTitle
		}
		sections = append(sections, lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Render(up))
	}

	statsLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(
			"★ " + strconv.Itoa(h.streak) + " day streak    " +
				"✎ " + strconv.Itoa(h.tracked) + " verses tracked    " +
				"⏰ " + strconv.Itoa(h.reviewsDue) + " due",
		)
	sections = append(sections, statsLine)

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())
	sections = append(sections, menu)

	content := strings.Join(sections, "\n\n")
	return lipgloss.PlaceVertical(height, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

