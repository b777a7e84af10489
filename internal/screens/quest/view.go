package quest

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"versequest/internal/quiz"
	"versequest/internal/ui/components"
	"versequest/internal/ui/theme"
)

func (s *QuestScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.state == nil {
		return renderLoading(width)
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}
	if s.state.Complete() {
		return ""
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}

// renderQuestion renders the active question with its input component.
func (s *QuestScreen) renderQuestion(width int) string {
	var b strings.Builder

	// Status line: where we are, how we're doing.
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", s.qview.Kind))
	right := theme.Hint.Render(fmt.Sprintf("Score %d", s.state.Score()))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		pad = 1
	}
	b.WriteString(left + strings.Repeat(" ", pad) + right)
	b.WriteString("\n")

	bar := components.NewProgressBar("", s.state.Progress(), false, width-8)
	b.WriteString("  " + bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	switch s.qview.Kind {
	case quiz.KindGapFill:
		b.WriteString(centered(width, theme.Hint.Render(s.qview.Reference)))
		b.WriteString("\n\n")
		b.WriteString(centered(width, wrap(theme.Verse.Render(s.qview.Prompt), width-8)))
		b.WriteString("\n\n")
		b.WriteString(centered(width, s.wordBank.View()))

	case quiz.KindReference:
		b.WriteString(centered(width, theme.Body.Bold(true).Render("Where is this verse found?")))
		b.WriteString("\n\n")
		b.WriteString(centered(width, wrap(theme.Verse.Render(s.qview.Prompt), width-8)))
		b.WriteString("\n\n")
		b.WriteString(centered(width, s.choices.View()))

	case quiz.KindMatchPairs:
		b.WriteString(centered(width, theme.Body.Bold(true).Render("Match each snippet to its reference")))
		b.WriteString("\n\n")
		b.WriteString(centered(width, s.pairs.View()))

	case quiz.KindRecall:
		b.WriteString(centered(width, theme.Hint.Render(s.qview.Reference)))
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Body.Bold(true).Render("Type the verse from memory")))
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Hint.Render(s.qview.Prompt)))
		b.WriteString("\n\n")
		b.WriteString(centered(width, s.input.View()))
	}

	return b.String()
}

// renderFeedback renders the grading overlay.
func (s *QuestScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	if s.lastCorrect {
		b.WriteString(centered(width, theme.Correct.Render("Correct!")))
	} else {
		b.WriteString(centered(width, theme.Incorrect.Render("Not quite")))
		if s.reveal != "" {
			b.WriteString("\n\n")
			b.WriteString(centered(width, wrap(theme.Body.Render(s.reveal), width-8)))
		}
		if s.retryQueued {
			b.WriteString("\n")
			b.WriteString(centered(width, theme.Hint.Render("You'll see this one again before the session ends.")))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint.Render("Press any key to continue...")))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, theme.Body.Bold(true).Render("End session early?")))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Hint.Render("Your progress will be saved.")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Correct.Render("[Y] Yes, end session")))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Selected.Render("[N] No, keep going")))
	return b.String()
}

func renderLoading(width int) string {
	return centered(width, theme.Hint.Render("\n\n\n  Preparing your session..."))
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n%s\n\nPress any key to go back.", errMsg))
}

// centered places a block in the middle of the line width.
func centered(width int, block string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// wrap re-renders text constrained to the given width.
func wrap(text string, width int) string {
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
