package quest

import (
	"context"
	"testing"
	"time"

	"versequest/internal/config"
	"versequest/internal/content"
	"versequest/internal/progress"
	"versequest/internal/quiz"
	"versequest/internal/store"
)

type fakeSnapRepo struct {
	snaps []*store.Snapshot
}

func (f *fakeSnapRepo) Save(_ context.Context, snap *store.Snapshot) error {
	f.snaps = append(f.snaps, snap)
	return nil
}

func (f *fakeSnapRepo) Latest(_ context.Context) (*store.Snapshot, error) {
	if len(f.snaps) == 0 {
		return nil, nil
	}
	return f.snaps[len(f.snaps)-1], nil
}

func (f *fakeSnapRepo) Prune(_ context.Context, _ int) error { return nil }

type fakeEventRepo struct {
	events []store.SessionEventData
}

func (f *fakeEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	f.events = append(f.events, data)
	return nil
}

func (f *fakeEventRepo) Stats(_ context.Context) (*store.SessionStats, error) {
	return &store.SessionStats{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		MaxQuestions: 5,
		Quota:        config.Quota{Limit: 5, Window: 24 * time.Hour},
		Quiz:         config.Quiz{RecallThreshold: 0.90},
	}
}

func testCorpus(t *testing.T) *content.Corpus {
	t.Helper()
	c, err := content.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func newTestQuest(t *testing.T, mode Mode, snapRepo *fakeSnapRepo, eventRepo *fakeEventRepo) *QuestScreen {
	t.Helper()
	return New(mode, testConfig(), testCorpus(t), snapRepo, eventRepo)
}

// correctAnswer builds the right candidate for any question.
func correctAnswer(q *quiz.Question) quiz.Candidate {
	switch q.Kind {
	case quiz.KindGapFill:
		return quiz.WordsCandidate(q.AnswerWords)
	case quiz.KindReference:
		return quiz.ReferenceCandidate(q.Verse.Reference())
	case quiz.KindMatchPairs:
		return quiz.PairsCandidate(q.Pairs)
	case quiz.KindRecall:
		return quiz.TextCandidate(q.Verse.Text)
	}
	return nil
}

func TestInitDaily(t *testing.T) {
	snapRepo := &fakeSnapRepo{}
	eventRepo := &fakeEventRepo{}
	s := newTestQuest(t, ModeDaily, snapRepo, eventRepo)

	msg := s.initQuest()().(questInitMsg)
	if msg.Err != nil {
		t.Fatalf("init error: %v", msg.Err)
	}
	if msg.State == nil {
		t.Fatal("init returned no session state")
	}
	if msg.State.DayID != 1 {
		t.Errorf("DayID = %d, want first plan day 1", msg.State.DayID)
	}
	// Day 1 is John 3:16-17: two verses, two questions.
	if got := msg.State.QuestionCount(); got != 2 {
		t.Errorf("QuestionCount = %d, want 2", got)
	}

	if len(eventRepo.events) != 1 || eventRepo.events[0].Action != "start" {
		t.Errorf("events = %+v, want one start event", eventRepo.events)
	}

	// A quota slot was burned and persisted before any answer.
	if len(snapRepo.snaps) == 0 {
		t.Fatal("expected a snapshot save at session start")
	}
	q := snapRepo.snaps[len(snapRepo.snaps)-1].Data.Quota
	if q == nil || q.Remaining != 4 {
		t.Errorf("persisted quota = %+v, want remaining 4", q)
	}
}

func TestInitDaily_QuotaExhausted(t *testing.T) {
	snapRepo := &fakeSnapRepo{snaps: []*store.Snapshot{{
		Timestamp: time.Now(),
		Data: store.SnapshotData{
			Version: 1,
			Quota: &store.QuotaSnapshotData{
				Remaining:       0,
				WindowStartedAt: time.Now().Format(time.RFC3339),
			},
		},
	}}}
	eventRepo := &fakeEventRepo{}
	s := newTestQuest(t, ModeDaily, snapRepo, eventRepo)

	msg := s.initQuest()().(questInitMsg)
	if msg.Err == nil {
		t.Fatal("expected quota error")
	}
	if len(eventRepo.events) != 0 {
		t.Error("no session event should be logged when the quota blocks the start")
	}
}

func TestInitReview_NothingDue(t *testing.T) {
	s := newTestQuest(t, ModeReview, &fakeSnapRepo{}, &fakeEventRepo{})

	msg := s.initQuest()().(questInitMsg)
	if msg.Err == nil {
		t.Fatal("expected error with nothing due")
	}
}

func TestInitReview_DueVersesGetRecallQuestions(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)
	snapRepo := &fakeSnapRepo{snaps: []*store.Snapshot{{
		Timestamp: time.Now(),
		Data: store.SnapshotData{
			Version: 1,
			Mastery: &store.MasterySnapshotData{
				Records: map[string]*store.MasteryRecordData{
					"John 3:16": {
						Reference:      "John 3:16",
						Level:          2,
						LastReviewedAt: past,
						NextReviewAt:   past,
					},
				},
			},
		},
	}}}
	s := newTestQuest(t, ModeReview, snapRepo, &fakeEventRepo{})

	msg := s.initQuest()().(questInitMsg)
	if msg.Err != nil {
		t.Fatalf("init error: %v", msg.Err)
	}
	if got := msg.State.QuestionCount(); got != 1 {
		t.Fatalf("QuestionCount = %d, want 1", got)
	}
	if k := msg.State.Current().Kind; k != quiz.KindRecall {
		t.Errorf("question kind = %v, want recall", k)
	}
	if msg.State.Current().Verse.Text == "" {
		t.Error("due verse text was not resolved from the corpus")
	}
}

func TestHandleEnd_CompletedDailySession(t *testing.T) {
	snapRepo := &fakeSnapRepo{}
	eventRepo := &fakeEventRepo{}
	s := newTestQuest(t, ModeDaily, snapRepo, eventRepo)

	msg := s.initQuest()().(questInitMsg)
	if msg.Err != nil {
		t.Fatal(msg.Err)
	}
	s.handleInit(msg)

	// Answer every question correctly, straight through the engine.
	for !s.state.Complete() {
		q := s.state.Current()
		if !s.state.Answer(correctAnswer(q)) {
			t.Fatalf("correct candidate graded wrong for %v", q.Kind)
		}
		s.state.Advance()
	}

	s.handleEnd()

	var end *store.SessionEventData
	for i := range eventRepo.events {
		if eventRepo.events[i].Action == "end" {
			end = &eventRepo.events[i]
		}
	}
	if end == nil {
		t.Fatal("no end event logged")
	}
	if end.Correct != 2 || end.Questions != 2 {
		t.Errorf("end event = %+v, want 2/2", end)
	}
	// 2 correct * 5 + perfect bonus 25.
	if end.Reward != 35 {
		t.Errorf("reward = %d, want 35", end.Reward)
	}

	// Streak started and was persisted.
	if s.prog.CurrentStreak != 1 {
		t.Errorf("streak = %d, want 1", s.prog.CurrentStreak)
	}
	last := snapRepo.snaps[len(snapRepo.snaps)-1].Data
	if last.Progress == nil || last.Progress.CurrentStreak != 1 {
		t.Errorf("persisted progress = %+v, want streak 1", last.Progress)
	}
	if last.Mastery == nil || len(last.Mastery.Records) != 2 {
		t.Errorf("persisted mastery records = %+v, want 2 tracked verses", last.Mastery)
	}
}

func TestNextDayWrapsAfterPlanCompletes(t *testing.T) {
	corpus := testCorpus(t)

	r := progress.NewRecord()
	day := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= corpus.Days(); i++ {
		r.CompleteDay(i, day.AddDate(0, 0, i))
	}

	if got := nextDay(corpus, r); got != 1 {
		t.Errorf("nextDay = %d after full plan, want wrap to 1", got)
	}

	partial := progress.NewRecord()
	partial.CompleteDay(1, day)
	if got := nextDay(corpus, partial); got != 2 {
		t.Errorf("nextDay = %d with day 1 done, want 2", got)
	}
}
