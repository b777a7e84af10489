package session

import "time"

// Summary holds the final score record emitted when a session
// completes.
type Summary struct {
	SessionID     string
	DayID         int
	Duration      time.Duration
	QuestionCount int
	Score         int
	Percentage    float64
	Reward        int
}

// BuildSummary creates the final score record for a session. The
// question count includes recycled questions.
func BuildSummary(s *State) *Summary {
	return &Summary{
		SessionID:     s.ID,
		DayID:         s.DayID,
		Duration:      time.Since(s.StartTime),
		QuestionCount: s.QuestionCount(),
		Score:         s.Score(),
		Percentage:    s.Percentage(),
		Reward:        s.EarnedReward(),
	}
}
