package progress

import (
	"testing"
	"time"
)

func day(offset int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestCompleteDay_StreakSequence(t *testing.T) {
	// Events on D, D+1, D+3 yield streaks 1, 2, 1 with longest 2.
	r := NewRecord()

	r.CompleteDay(1, day(0))
	if r.CurrentStreak != 1 {
		t.Errorf("after D: streak = %d, want 1", r.CurrentStreak)
	}

	r.CompleteDay(2, day(1))
	if r.CurrentStreak != 2 {
		t.Errorf("after D+1: streak = %d, want 2", r.CurrentStreak)
	}

	r.CompleteDay(3, day(3))
	if r.CurrentStreak != 1 {
		t.Errorf("after D+3 gap: streak = %d, want 1", r.CurrentStreak)
	}
	if r.LongestStreak != 2 {
		t.Errorf("longest = %d, want 2", r.LongestStreak)
	}
}

func TestCompleteDay_SameDayIdempotent(t *testing.T) {
	r := NewRecord()
	r.CompleteDay(1, day(0))
	r.CompleteDay(1, day(0))
	r.CompleteDay(2, day(0))
	if r.CurrentStreak != 1 {
		t.Errorf("same-day repeats inflated streak to %d, want 1", r.CurrentStreak)
	}
}

func TestCompleteDay_TracksDayIDs(t *testing.T) {
	r := NewRecord()
	r.CompleteDay(7, day(0))
	if !r.Completed(7) {
		t.Error("day 7 should be marked complete")
	}
	if r.Completed(8) {
		t.Error("day 8 should not be marked complete")
	}
}

func TestDaysBetween_CalendarDays(t *testing.T) {
	// 23:59 to 00:01 next day is one calendar day apart.
	from := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	to := time.Date(2025, 6, 2, 0, 1, 0, 0, time.UTC)
	if got := daysBetween(from, to); got != 1 {
		t.Errorf("daysBetween = %d, want 1", got)
	}
}

func TestRecord_SnapshotRoundTrip(t *testing.T) {
	r := NewRecord()
	r.CompleteDay(1, day(0))
	r.CompleteDay(2, day(1))

	restored := RecordFromSnapshot(r.SnapshotData())
	if restored.CurrentStreak != r.CurrentStreak {
		t.Errorf("streak = %d, want %d", restored.CurrentStreak, r.CurrentStreak)
	}
	if restored.LongestStreak != r.LongestStreak {
		t.Errorf("longest = %d, want %d", restored.LongestStreak, r.LongestStreak)
	}
	if !restored.Completed(1) || !restored.Completed(2) {
		t.Error("completed days lost in round trip")
	}
	if !restored.LastActivityDate.Equal(r.LastActivityDate) {
		t.Errorf("last activity = %v, want %v", restored.LastActivityDate, r.LastActivityDate)
	}

	// Continuing the streak from a restored record works.
	restored.CompleteDay(3, day(2))
	if restored.CurrentStreak != 3 {
		t.Errorf("streak after restore+complete = %d, want 3", restored.CurrentStreak)
	}
}

func TestRecordFromSnapshot_Nil(t *testing.T) {
	r := RecordFromSnapshot(nil)
	if r.CurrentStreak != 0 || len(r.CompletedDayIDs) != 0 {
		t.Error("nil snapshot should produce an empty record")
	}
}
