// Package progress maintains the consecutive-day streak and the
// free-session quota.
package progress

import (
	"time"

	"versequest/internal/store"
)

// Record tracks which plan days are finished and the user's
// consecutive-day streak. The engine mutates it on day-completed
// events; persistence belongs to the caller.
type Record struct {
	CompletedDayIDs map[int]bool
	CurrentStreak   int
	LongestStreak   int

	// LastActivityDate is midnight of the last day with a completed
	// activity. Zero means no activity yet.
	LastActivityDate time.Time
}

// NewRecord creates an empty progress record.
func NewRecord() *Record {
	return &Record{CompletedDayIDs: make(map[int]bool)}
}

// CompleteDay records a finished day. today must already be normalized
// to midnight by the caller. Re-completing the same calendar day is
// idempotent: the streak never inflates from repeat events.
func (r *Record) CompleteDay(dayID int, today time.Time) {
	r.CompletedDayIDs[dayID] = true

	switch {
	case r.LastActivityDate.IsZero():
		r.CurrentStreak = 1
	default:
		switch delta := daysBetween(r.LastActivityDate, today); {
		case delta == 0:
			// Same day, nothing to do.
		case delta == 1:
			r.CurrentStreak++
		default:
			r.CurrentStreak = 1
		}
	}

	if r.CurrentStreak > r.LongestStreak {
		r.LongestStreak = r.CurrentStreak
	}
	r.LastActivityDate = today
}

// Completed reports whether a plan day has been finished.
func (r *Record) Completed(dayID int) bool {
	return r.CompletedDayIDs[dayID]
}

// daysBetween returns the whole-day difference between two dates,
// comparing calendar days rather than 24-hour spans.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// Midnight normalizes a time to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SnapshotData exports the record for persistence.
func (r *Record) SnapshotData() *store.ProgressSnapshotData {
	data := &store.ProgressSnapshotData{
		CurrentStreak: r.CurrentStreak,
		LongestStreak: r.LongestStreak,
	}
	for id := range r.CompletedDayIDs {
		data.CompletedDayIDs = append(data.CompletedDayIDs, id)
	}
	if !r.LastActivityDate.IsZero() {
		data.LastActivityDate = r.LastActivityDate.Format(time.RFC3339)
	}
	return data
}

// RecordFromSnapshot restores a record, tolerating a nil snapshot.
func RecordFromSnapshot(data *store.ProgressSnapshotData) *Record {
	r := NewRecord()
	if data == nil {
		return r
	}
	for _, id := range data.CompletedDayIDs {
		r.CompletedDayIDs[id] = true
	}
	r.CurrentStreak = data.CurrentStreak
	r.LongestStreak = data.LongestStreak
	if data.LastActivityDate != "" {
		if t, err := time.Parse(time.RFC3339, data.LastActivityDate); err == nil {
			r.LastActivityDate = t
		}
	}
	return r
}
