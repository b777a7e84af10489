package quest

import (
	"versequest/internal/progress"
	sess "versequest/internal/session"
	"versequest/internal/srs"
)

// questInitMsg is sent when session setup (snapshot load, quota check,
// question generation) finishes.
type questInitMsg struct {
	State *sess.State
	Sched *srs.Scheduler
	Prog  *progress.Record
	Quota *progress.Quota
	Err   error
}

// questEndMsg triggers the session end flow.
type questEndMsg struct{}
