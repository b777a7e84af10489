package quest

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"versequest/internal/config"
	"versequest/internal/content"
	"versequest/internal/progress"
	"versequest/internal/quiz"
	"versequest/internal/router"
	"versequest/internal/screen"
	"versequest/internal/screens/summary"
	sess "versequest/internal/session"
	"versequest/internal/srs"
	"versequest/internal/store"
	"versequest/internal/ui/components"
	"versequest/internal/ui/layout"
	"versequest/internal/verse"
)

// Mode selects what the quest assesses.
type Mode int

const (
	// ModeDaily runs the next reading-plan day with mixed question
	// kinds. Consumes one session from the quota.
	ModeDaily Mode = iota

	// ModeReview runs typing recall over verses whose review date has
	// arrived. Free: it does not touch the quota or the streak.
	ModeReview
)

// QuestScreen drives an active question-and-answer session.
type QuestScreen struct {
	mode      Mode
	cfg       *config.Config
	corpus    *content.Corpus
	snapRepo  store.SnapshotRepo
	eventRepo store.EventRepo

	state *sess.State
	sched *srs.Scheduler
	prog  *progress.Record
	quota *progress.Quota
	rng   *rand.Rand

	qview    sess.QuestionView
	wordBank components.WordBank
	choices  components.Choices
	pairs    components.PairMatch
	input    components.TextInput

	showingFeedback bool
	lastCorrect     bool
	retryQueued     bool
	reveal          string
	quitConfirm     bool
	errMsg          string
}

var _ screen.Screen = (*QuestScreen)(nil)
var _ screen.KeyHintProvider = (*QuestScreen)(nil)

// New creates a quest screen with injected dependencies.
func New(mode Mode, cfg *config.Config, corpus *content.Corpus, snapRepo store.SnapshotRepo, eventRepo store.EventRepo) *QuestScreen {
	return &QuestScreen{
		mode:      mode,
		cfg:       cfg,
		corpus:    corpus,
		snapRepo:  snapRepo,
		eventRepo: eventRepo,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *QuestScreen) Init() tea.Cmd {
	return s.initQuest()
}

func (s *QuestScreen) Title() string {
	if s.mode == ModeReview {
		return "Review"
	}
	return "Daily Quest"
}

func (s *QuestScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	if s.state != nil && !s.state.Complete() {
		switch s.state.Current().Kind {
		case quiz.KindGapFill:
			return []layout.KeyHint{
				{Key: "←→", Description: "Word"},
				{Key: "Space", Description: "Pick"},
				{Key: "Backspace", Description: "Undo"},
				{Key: "Enter", Description: "Submit"},
				{Key: "Esc", Description: "Quit"},
			}
		case quiz.KindMatchPairs:
			return []layout.KeyHint{
				{Key: "↑↓", Description: "Reference"},
				{Key: "Enter", Description: "Assign / Submit"},
				{Key: "Backspace", Description: "Undo"},
				{Key: "Esc", Description: "Quit"},
			}
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

// initQuest loads learner state, checks the quota, and generates the
// question set.
func (s *QuestScreen) initQuest() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now()

		var snapData *store.SnapshotData
		snap, err := s.snapRepo.Latest(ctx)
		if err != nil {
			return questInitMsg{Err: err}
		}
		if snap != nil {
			snapData = &snap.Data
		}

		sched := srs.NewScheduler(snapData)
		var progData *store.ProgressSnapshotData
		var quotaData *store.QuotaSnapshotData
		if snapData != nil {
			progData = snapData.Progress
			quotaData = snapData.Quota
		}
		prog := progress.RecordFromSnapshot(progData)
		quota := progress.QuotaFromSnapshot(quotaData, s.cfg.Quota.Limit, s.cfg.Quota.Window, now)

		qcfg := quiz.DefaultConfig()
		qcfg.MaxQuestions = s.cfg.MaxQuestions
		qcfg.RecallSimilarity = s.cfg.Quiz.RecallThreshold
		qcfg.Rand = rand.New(rand.NewSource(now.UnixNano()))
		if books := s.corpus.BookNames(); len(books) >= 2 {
			qcfg.Books = books
		}

		var questions []*quiz.Question
		dayID := 0

		switch s.mode {
		case ModeDaily:
			if !quota.TryStart(now) {
				return questInitMsg{Err: fmt.Errorf(
					"session limit reached (%d per %s) — come back later or run a free review",
					s.cfg.Quota.Limit, s.cfg.Quota.Window)}
			}
			dayID = nextDay(s.corpus, prog)
			passage, ok := s.corpus.DayPassage(dayID)
			if !ok {
				return questInitMsg{Err: fmt.Errorf("reading plan has no day %d", dayID)}
			}
			verses, err := s.corpus.PassageVerses(passage)
			if err != nil {
				return questInitMsg{Err: err}
			}
			for _, v := range verses {
				sched.Track(v.Reference(), now)
			}
			questions = quiz.Generate(verses, qcfg)

			// The session consumed a quota slot even if the user bails
			// out mid-quiz, so persist immediately.
			saveSnapshot(ctx, s.snapRepo, sched, prog, quota, now)

		case ModeReview:
			due := sched.Due(now)
			if len(due) == 0 {
				return questInitMsg{Err: errors.New("no verses are due for review — well done")}
			}
			verses := s.versesFor(due)
			if len(verses) == 0 {
				return questInitMsg{Err: errors.New("due verses are missing from the corpus")}
			}
			questions = quiz.RecallOnly(verses, qcfg)
		}

		st := sess.New(uuid.New().String(), dayID, questions)
		_ = s.eventRepo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: st.ID,
			Action:    "start",
			DayID:     dayID,
		})

		return questInitMsg{State: st, Sched: sched, Prog: prog, Quota: quota}
	}
}

// versesFor resolves mastery references back to corpus verses, skipping
// any that no longer resolve.
func (s *QuestScreen) versesFor(refs []string) []verse.Ref {
	var out []verse.Ref
	for _, ref := range refs {
		book, chapter, verseNum, err := verse.ParseReference(ref)
		if err != nil {
			continue
		}
		vs, err := s.corpus.FetchVerses(book, chapter, verseNum, chapter, verseNum)
		if err != nil || len(vs) == 0 {
			continue
		}
		out = append(out, vs[0])
	}
	return out
}

// nextDay picks the first incomplete plan day, wrapping around to the
// start once the whole plan has been finished.
func nextDay(corpus *content.Corpus, prog *progress.Record) int {
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

func (s *QuestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questInitMsg:
		return s.handleInit(msg)
	case questEndMsg:
		return s.handleEnd()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Blink and friends go to the text input while it is on screen.
	if s.activeKind() == quiz.KindRecall && !s.showingFeedback {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuestScreen) handleInit(msg questInitMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.state = msg.State
	s.sched = msg.Sched
	s.prog = msg.Prog
	s.quota = msg.Quota

	if s.state.Complete() {
		// Empty question set, nothing to assess.
		return s, func() tea.Msg { return questEndMsg{} }
	}
	return s, s.prepareQuestion()
}

// prepareQuestion builds the view and input component for the question
// at the cursor.
func (s *QuestScreen) prepareQuestion() tea.Cmd {
	s.qview = s.state.View(s.rng)
	s.showingFeedback = false
	s.reveal = ""
	s.retryQueued = false

	switch s.qview.Kind {
	case quiz.KindGapFill:
		s.wordBank = components.NewWordBank(s.qview.WordBank, s.qview.BlankCount)
	case quiz.KindReference:
		s.choices = components.NewChoices(s.qview.Options)
	case quiz.KindMatchPairs:
		s.pairs = components.NewPairMatch(s.qview.Snippets, s.qview.References)
	case quiz.KindRecall:
		s.input = components.NewTextInput("Type the verse from memory...", 0)
		return s.input.Init()
	}
	return nil
}

func (s *QuestScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state — any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.state == nil {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, func() tea.Msg { return questEndMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	// Feedback overlay — any key continues.
	if s.showingFeedback {
		s.state.Advance()
		if s.state.Complete() {
			return s, func() tea.Msg { return questEndMsg{} }
		}
		return s, s.prepareQuestion()
	}

	if s.state.Complete() {
		return s, nil
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "enter":
		if s.readyToSubmit() {
			return s.submitAnswer()
		}
	}

	// Forward to the active input component.
	switch s.qview.Kind {
	case quiz.KindGapFill:
		s.wordBank, _ = s.wordBank.Update(msg)
	case quiz.KindReference:
		s.choices, _ = s.choices.Update(msg)
	case quiz.KindMatchPairs:
		s.pairs, _ = s.pairs.Update(msg)
	case quiz.KindRecall:
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// readyToSubmit reports whether enter should grade instead of feeding
// the input component.
func (s *QuestScreen) readyToSubmit() bool {
	switch s.qview.Kind {
	case quiz.KindGapFill:
		return s.wordBank.Done()
	case quiz.KindMatchPairs:
		return s.pairs.Done()
	case quiz.KindRecall:
		return strings.TrimSpace(s.input.Value()) != ""
	default:
		return true
	}
}

// submitAnswer grades the current question and records the review.
func (s *QuestScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	q := s.state.Current()

	var cand quiz.Candidate
	switch q.Kind {
	case quiz.KindGapFill:
		cand = quiz.WordsCandidate(s.wordBank.Answer())
	case quiz.KindReference:
		cand = quiz.ReferenceCandidate(s.choices.Value())
	case quiz.KindMatchPairs:
		matches := s.pairs.Matches()
		pairs := make([]quiz.Pair, len(matches))
		for i, ref := range matches {
			pairs[i] = quiz.Pair{Snippet: s.pairs.Snippets[i], Reference: ref}
		}
		cand = quiz.PairsCandidate(pairs)
	case quiz.KindRecall:
		cand = quiz.TextCandidate(strings.TrimSpace(s.input.Value()))
	}

	retriesBefore := s.state.PendingRetries()
	correct := s.state.Answer(cand)
	s.sched.RecordReview(q.Verse.Reference(), correct, time.Now())

	s.lastCorrect = correct
	s.retryQueued = s.state.PendingRetries() > retriesBefore
	if !correct {
		s.reveal = revealFor(q)
	}
	if q.Kind == quiz.KindRecall {
		s.input.Submit(correct)
	}
	s.showingFeedback = true
	return s, nil
}

// revealFor returns the correct answer text shown after a miss.
func revealFor(q *quiz.Question) string {
	switch q.Kind {
	case quiz.KindGapFill:
		return "Missing words: " + strings.Join(q.AnswerWords, ", ")
	case quiz.KindReference:
		return "This is " + q.Verse.Reference()
	case quiz.KindMatchPairs:
		var lines []string
		for _, p := range q.Pairs {
			lines = append(lines, fmt.Sprintf("%s → %s", p.Snippet, p.Reference))
		}
		return strings.Join(lines, "\n")
	case quiz.KindRecall:
		return q.Verse.Text
	}
	return ""
}

// handleEnd closes out the session: streak, events, snapshot, summary.
func (s *QuestScreen) handleEnd() (screen.Screen, tea.Cmd) {
	if s.state == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	ctx := context.Background()
	now := time.Now()
	sum := sess.BuildSummary(s.state)

	if s.mode == ModeDaily && s.state.Complete() && s.state.DayID > 0 {
		s.prog.CompleteDay(s.state.DayID, now)
	}

	_ = s.eventRepo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:    s.state.ID,
		Action:       "end",
		DayID:        s.state.DayID,
		Questions:    sum.QuestionCount,
		Correct:      sum.Score,
		Reward:       sum.Reward,
		DurationSecs: int(sum.Duration.Seconds()),
	})

	saveSnapshot(ctx, s.snapRepo, s.sched, s.prog, s.quota, now)

	streak := s.prog.CurrentStreak
	left := s.quota.Remaining(now)

	if !s.state.Complete() {
		// Quit mid-session: progress is saved, skip the summary.
		return s, tea.Batch(
			func() tea.Msg { return screen.StatsChangedMsg{Streak: streak, SessionsLeft: left} },
			func() tea.Msg { return router.PopScreenMsg{} },
		)
	}

	return s, tea.Batch(
		func() tea.Msg { return screen.StatsChangedMsg{Streak: streak, SessionsLeft: left} },
		func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(sum, streak)}
		},
	)
}

// saveSnapshot persists the full learner state.
func saveSnapshot(ctx context.Context, repo store.SnapshotRepo, sched *srs.Scheduler, prog *progress.Record, quota *progress.Quota, now time.Time) {
	snap := &store.Snapshot{
		Sequence:  now.UnixNano(),
		Timestamp: now,
		Data: store.SnapshotData{
			Version:  1,
			Mastery:  sched.SnapshotData(),
			Progress: prog.SnapshotData(),
			Quota:    quota.SnapshotData(),
		},
	}
	_ = repo.Save(ctx, snap)
	_ = repo.Prune(ctx, 20)
}

// activeKind returns the kind of the question on screen, or -1 when no
// question is active.
func (s *QuestScreen) activeKind() quiz.Kind {
	if s.state == nil || s.state.Complete() {
		return quiz.Kind(-1)
	}
	return s.qview.Kind
}
