package stats

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"versequest/internal/progress"
	"versequest/internal/router"
	"versequest/internal/screen"
	"versequest/internal/srs"
	"versequest/internal/store"
	"versequest/internal/ui/layout"
	"versequest/internal/ui/theme"
)

// verseRow is one line of the mastery table.
type verseRow struct {
	Reference string
	Level     int
	DueIn     string
}

// StatsScreen shows lifetime totals, the streak, and per-verse mastery.
type StatsScreen struct {
	stats   *store.SessionStats
	streak  int
	longest int
	rows    []verseRow
	errMsg  string
	scroll  int
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen backed by the store.
func New(snapRepo store.SnapshotRepo, eventRepo store.EventRepo) *StatsScreen {
	s := &StatsScreen{}
	s.load(snapRepo, eventRepo)
	return s
}

// load fetches everything synchronously; the data set is tiny.
func (s *StatsScreen) load(snapRepo store.SnapshotRepo, eventRepo store.EventRepo) {
	ctx := context.Background()
	now := time.Now()

	stats, err := eventRepo.Stats(ctx)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.stats = stats

	var snapData *store.SnapshotData
	if snap, err := snapRepo.Latest(ctx); err == nil && snap != nil {
		snapData = &snap.Data
	}

	var progData *store.ProgressSnapshotData
	if snapData != nil {
		progData = snapData.Progress
	}
	prog := progress.RecordFromSnapshot(progData)
	s.streak = prog.CurrentStreak
	s.longest = prog.LongestStreak

	sched := srs.NewScheduler(snapData)
	for ref, rec := range sched.All() {
		due := "due now"
		if d := rec.DaysUntilReview(now); d > 0 {
			due = fmt.Sprintf("in %dd", d)
		}
		s.rows = append(s.rows, verseRow{Reference: ref, Level: rec.Level, DueIn: due})
	}
	sort.Slice(s.rows, func(i, j int) bool {
		if s.rows[i].Level != s.rows[j].Level {
			return s.rows[i].Level > s.rows[j].Level
		}
		return s.rows[i].Reference < s.rows[j].Reference
	})
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		if s.scroll < len(s.rows)-1 {
			s.scroll++
		}
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\nError: " + s.errMsg)
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Your journey so far"))
	b.WriteString("\n\n")

	if s.stats != nil {
		line := fmt.Sprintf("Sessions: %d        Questions: %d        Correct: %d        Points: %d",
			s.stats.TotalSessions, s.stats.TotalQuestions, s.stats.TotalCorrect, s.stats.TotalReward)
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(line))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(fmt.Sprintf("★ Current streak: %d        Longest: %d", s.streak, s.longest)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render("Verses")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	if len(s.rows) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Nothing tracked yet — start your first quest!"))
		return b.String()
	}

	visible := height - lipgloss.Height(b.String()) - 1
	if visible < 3 {
		visible = 3
	}
	start := s.scroll
	if start > len(s.rows)-1 {
		start = len(s.rows) - 1
	}
	end := start + visible
	if end > len(s.rows) {
		end = len(s.rows)
	}

	for _, row := range s.rows[start:end] {
		ladder := strings.Repeat("●", row.Level) + strings.Repeat("○", srs.MaxLevel-row.Level)
		line := fmt.Sprintf("%-22s %s  %s", row.Reference, ladder, row.DueIn)
		style := theme.Body
		if row.DueIn == "due now" {
			style = lipgloss.NewStyle().Foreground(theme.Accent)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
