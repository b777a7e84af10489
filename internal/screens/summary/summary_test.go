package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"versequest/internal/router"
	"versequest/internal/session"
)

func testSummary() *session.Summary {
	return &session.Summary{
		SessionID:     "abc",
		DayID:         3,
		Duration:      95 * time.Second,
		QuestionCount: 6,
		Score:         5,
		Percentage:    83.3,
		Reward:        40,
	}
}

func TestViewShowsScoreAndReward(t *testing.T) {
	s := New(testSummary(), 4)
	out := s.View(100, 30)

	for _, want := range []string{"Session complete!", "Questions: 6", "Correct: 5", "40 points", "4 day streak"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if !strings.Contains(out, "accuracy bonus") {
		t.Error("view should name the accuracy bonus at 83%")
	}
}

func TestViewPerfectBonus(t *testing.T) {
	sum := testSummary()
	sum.Score = 6
	sum.Percentage = 100
	sum.Reward = 55

	out := New(sum, 1).View(100, 30)
	if !strings.Contains(out, "perfect bonus") {
		t.Error("view should name the perfect bonus at 100%")
	}
}

func TestEnterPopsToHome(t *testing.T) {
	s := New(testSummary(), 0)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
