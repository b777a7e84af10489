// Package session drives one assessment attempt: it serves questions
// in order, recycles missed questions exactly once, and computes the
// final score and reward.
package session

import (
	"fmt"
	"time"

	"versequest/internal/quiz"
)

// Reward tuning. Bonuses are flat and mutually exclusive; the higher
// threshold wins.
const (
	RewardPerCorrect = 5
	PerfectBonus     = 25
	StrongBonus      = 15
	PerfectThreshold = 100.0
	StrongThreshold  = 80.0
)

// State tracks a single assessment attempt. It is not safe for
// concurrent use; one session belongs to one caller.
type State struct {
	// ID is the UUID assigned at session start.
	ID string

	// DayID identifies the reading-plan day this session assesses.
	DayID int

	// StartTime is when the session began.
	StartTime time.Time

	questions    []*quiz.Question
	cursor       int
	score        int
	recycleQueue []*quiz.Question
	requeued     map[*quiz.Question]bool
	complete     bool
}

// New creates a session over a generated question set. An empty set
// yields an immediately complete session.
func New(id string, dayID int, questions []*quiz.Question) *State {
	s := &State{
		ID:        id,
		DayID:     dayID,
		StartTime: time.Now(),
		questions: questions,
		requeued:  make(map[*quiz.Question]bool),
	}
	if len(questions) == 0 {
		s.complete = true
	}
	return s
}

// Current returns the question at the cursor. Calling it on a complete
// session is a caller bug.
func (s *State) Current() *quiz.Question {
	s.mustBeActive("Current")
	return s.questions[s.cursor]
}

// Answer validates a candidate against the current question. A correct
// answer increments the score. The first failed attempt on a question
// queues one copy for recycling; a question is recycled at most once no
// matter how often it is missed afterwards.
func (s *State) Answer(c quiz.Candidate) bool {
	s.mustBeActive("Answer")

	q := s.questions[s.cursor]
	correct := quiz.Check(q, c)
	if correct {
		s.score++
		return true
	}

	if !s.requeued[q] {
		s.requeued[q] = true
		clone := q.Clone()
		s.requeued[clone] = true
		s.recycleQueue = append(s.recycleQueue, clone)
	}
	return false
}

// Advance moves to the next question. When the main list is exhausted
// it drains the recycle queue into the question list (preserving queue
// order) and continues there; with nothing left, the session completes.
// Advancing a complete session is a caller bug.
func (s *State) Advance() {
	s.mustBeActive("Advance")

	if s.cursor < len(s.questions)-1 {
		s.cursor++
		return
	}
	if len(s.recycleQueue) > 0 {
		s.questions = append(s.questions, s.recycleQueue...)
		s.recycleQueue = nil
		s.cursor++
		return
	}
	s.complete = true
}

// PendingRetries returns how many recycled questions are waiting to be
// served.
func (s *State) PendingRetries() int {
	return len(s.recycleQueue)
}

// Complete reports whether the session has finished. Completion is
// terminal.
func (s *State) Complete() bool {
	return s.complete
}

// Score returns the number of correctly answered questions so far.
func (s *State) Score() int {
	return s.score
}

// QuestionCount returns the current question count, including any
// recycled copies already appended.
func (s *State) QuestionCount() int {
	return len(s.questions)
}

// Percentage returns score over the question count as a percentage.
// Computed against the final count once the session is complete.
func (s *State) Percentage() float64 {
	if len(s.questions) == 0 {
		return 0
	}
	return float64(s.score) / float64(len(s.questions)) * 100.0
}

// Progress returns how far through the question list the cursor is, in
// [0,1]. A complete session reports 1.
func (s *State) Progress() float64 {
	if s.complete || len(s.questions) == 0 {
		return 1.0
	}
	return float64(s.cursor) / float64(len(s.questions))
}

// EarnedReward returns the reward for the session so far: a fixed
// amount per correct answer plus a flat accuracy bonus.
func (s *State) EarnedReward() int {
	reward := s.score * RewardPerCorrect
	switch pct := s.Percentage(); {
	case pct >= PerfectThreshold:
		reward += PerfectBonus
	case pct >= StrongThreshold:
		reward += StrongBonus
	}
	return reward
}

// mustBeActive panics on use after completion or with the cursor out of
// range. Both indicate a caller bug, not a user-facing condition.
func (s *State) mustBeActive(op string) {
	if s.complete {
		panic(fmt.Sprintf("session: %s called on complete session %s", op, s.ID))
	}
	if s.cursor < 0 || s.cursor >= len(s.questions) {
		panic(fmt.Sprintf("session: %s called with cursor %d of %d questions", op, s.cursor, len(s.questions)))
	}
}
