package session

import (
	"math"
	"math/rand"
	"testing"

	"versequest/internal/quiz"
	"versequest/internal/verse"
)

// referenceQuestions builds n identify-reference questions with known
// answers so tests can drive correctness precisely.
func referenceQuestions(t *testing.T, n int) []*quiz.Question {
	t.Helper()
	qs := make([]*quiz.Question, 0, n)
	for i := 0; i < n; i++ {
		v, err := verse.New("John", 3, 16+i, "For God so loved the world, verse variant.")
		if err != nil {
			t.Fatal(err)
		}
		qs = append(qs, &quiz.Question{
			Kind:    quiz.KindReference,
			Verse:   v,
			Options: []string{v.Reference(), "Luke 1:1", "Mark 2:2", "Acts 3:3"},
		})
	}
	return qs
}

func answerCorrect(s *State) bool {
	return s.Answer(quiz.ReferenceCandidate(s.Current().Verse.Reference()))
}

func answerWrong(s *State) bool {
	return s.Answer(quiz.ReferenceCandidate("Obadiah 1:1"))
}

func TestSession_EmptyQuestionSetIsComplete(t *testing.T) {
	s := New("s0", 1, nil)
	if !s.Complete() {
		t.Error("zero-question session should be immediately complete")
	}
	if s.Progress() != 1.0 {
		t.Errorf("progress = %v, want 1.0", s.Progress())
	}
}

func TestSession_AllCorrect(t *testing.T) {
	s := New("s1", 1, referenceQuestions(t, 3))
	for !s.Complete() {
		if !answerCorrect(s) {
			t.Fatal("correct answer rejected")
		}
		s.Advance()
	}
	if s.Score() != 3 {
		t.Errorf("score = %d, want 3", s.Score())
	}
	if s.Percentage() != 100.0 {
		t.Errorf("percentage = %v, want 100", s.Percentage())
	}
	if got, want := s.EarnedReward(), 3*RewardPerCorrect+PerfectBonus; got != want {
		t.Errorf("reward = %d, want %d", got, want)
	}
}

func TestSession_RecycleScenario(t *testing.T) {
	// Five questions, miss #2 on first attempt, answer all others (and
	// the recycled copy) correctly: count 6, score 5, pct 83.3, reward
	// 25 + 15 = 40.
	s := New("s2", 1, referenceQuestions(t, 5))

	for i := 0; i < 5; i++ {
		if i == 1 {
			if answerWrong(s) {
				t.Fatal("wrong answer accepted")
			}
		} else {
			answerCorrect(s)
		}
		s.Advance()
	}

	if s.Complete() {
		t.Fatal("session should continue into the recycled question")
	}
	if s.QuestionCount() != 6 {
		t.Fatalf("question count = %d, want 6", s.QuestionCount())
	}

	answerCorrect(s)
	s.Advance()

	if !s.Complete() {
		t.Fatal("session should be complete")
	}
	if s.Score() != 5 {
		t.Errorf("score = %d, want 5", s.Score())
	}
	wantPct := 5.0 / 6.0 * 100.0
	if math.Abs(s.Percentage()-wantPct) > 1e-9 {
		t.Errorf("percentage = %v, want %v", s.Percentage(), wantPct)
	}
	if got := s.EarnedReward(); got != 40 {
		t.Errorf("reward = %d, want 40 (5*5 + 15 bonus)", got)
	}
}

func TestSession_RecycledAtMostOnce(t *testing.T) {
	s := New("s3", 1, referenceQuestions(t, 2))

	// Miss question 1 twice before advancing: still only one recycle.
	answerWrong(s)
	answerWrong(s)
	s.Advance()
	answerCorrect(s)
	s.Advance()

	if s.QuestionCount() != 3 {
		t.Fatalf("question count = %d, want 3 (one recycled)", s.QuestionCount())
	}

	// Miss the recycled copy too: it must not requeue again.
	answerWrong(s)
	s.Advance()

	if !s.Complete() {
		t.Error("session should complete; recycled questions are not requeued")
	}
	if s.QuestionCount() != 3 {
		t.Errorf("question count = %d, want 3", s.QuestionCount())
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1", s.Score())
	}
}

func TestSession_NoBonusBelowThreshold(t *testing.T) {
	s := New("s4", 1, referenceQuestions(t, 4))
	// Miss two questions and never redeem them: score 2 of 6.
	for i := 0; i < 4; i++ {
		if i < 2 {
			answerWrong(s)
		} else {
			answerCorrect(s)
		}
		s.Advance()
	}
	// Recycled copies: miss both again.
	for !s.Complete() {
		answerWrong(s)
		s.Advance()
	}
	if got, want := s.EarnedReward(), 2*RewardPerCorrect; got != want {
		t.Errorf("reward = %d, want %d (no bonus below 80%%)", got, want)
	}
}

func TestSession_AnswerAfterCompletePanics(t *testing.T) {
	s := New("s5", 1, referenceQuestions(t, 1))
	answerCorrect(s)
	s.Advance()
	if !s.Complete() {
		t.Fatal("expected complete")
	}
	defer func() {
		if recover() == nil {
			t.Error("Answer after completion should panic")
		}
	}()
	answerCorrect(s)
}

func TestSession_AdvanceAfterCompletePanics(t *testing.T) {
	s := New("s6", 1, nil)
	defer func() {
		if recover() == nil {
			t.Error("Advance after completion should panic")
		}
	}()
	s.Advance()
}

func TestSession_Progress(t *testing.T) {
	s := New("s7", 1, referenceQuestions(t, 4))
	if s.Progress() != 0 {
		t.Errorf("initial progress = %v, want 0", s.Progress())
	}
	answerCorrect(s)
	s.Advance()
	if s.Progress() != 0.25 {
		t.Errorf("progress = %v, want 0.25", s.Progress())
	}
}

func TestView_ReferenceOmitsSourceReference(t *testing.T) {
	s := New("s8", 1, referenceQuestions(t, 1))
	v := s.View(rand.New(rand.NewSource(1)))
	if v.Kind != quiz.KindReference {
		t.Fatalf("kind = %v", v.Kind)
	}
	if v.Reference != "" {
		t.Error("reference view must not expose the source reference")
	}
	if len(v.Options) != 4 {
		t.Errorf("options = %d, want 4", len(v.Options))
	}
	if v.Prompt == "" {
		t.Error("reference view should show the verse text as prompt")
	}
}

func TestView_RecallHidesVerseText(t *testing.T) {
	v, _ := verse.New("Psalms", 23, 1, "The LORD is my shepherd; I shall not want.")
	q := &quiz.Question{Kind: quiz.KindRecall, Verse: v, Hint: "The LORD is my ..."}
	s := New("s9", 1, []*quiz.Question{q})
	view := s.View(rand.New(rand.NewSource(1)))
	if view.Prompt != q.Hint {
		t.Errorf("prompt = %q, want the hint", view.Prompt)
	}
	if view.Prompt == v.Text {
		t.Error("recall view must not expose the full verse text")
	}
}
