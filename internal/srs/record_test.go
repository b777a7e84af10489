package srs

import (
	"testing"
	"time"
)

var reviewTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestReview_PromoteStampsNextReview(t *testing.T) {
	r := NewMasteryRecord("John 3:16", reviewTime)
	if r.Level != 0 {
		t.Fatalf("new record level = %d, want 0", r.Level)
	}

	later := reviewTime.Add(24 * time.Hour)
	r.Review(true, later)

	if r.Level != 1 {
		t.Errorf("level after promote = %d, want 1", r.Level)
	}
	if !r.LastReviewedAt.Equal(later) {
		t.Errorf("LastReviewedAt = %v, want %v", r.LastReviewedAt, later)
	}
	// Level 1 interval is 1 day.
	want := later.AddDate(0, 0, 1)
	if !r.NextReviewAt.Equal(want) {
		t.Errorf("NextReviewAt = %v, want %v", r.NextReviewAt, want)
	}
}

func TestReview_SaturatedPromoteUsesLastInterval(t *testing.T) {
	r := &MasteryRecord{Reference: "Psalms 23:1", Level: 5}
	r.Review(true, reviewTime)
	if r.Level != 5 {
		t.Errorf("level = %d, want 5 (saturated)", r.Level)
	}
	want := reviewTime.AddDate(0, 0, 30)
	if !r.NextReviewAt.Equal(want) {
		t.Errorf("NextReviewAt = %v, want %v (+30 days)", r.NextReviewAt, want)
	}
}

func TestReview_DemoteRecomputesFromNewLevel(t *testing.T) {
	r := &MasteryRecord{Reference: "Romans 8:28", Level: 3}
	r.Review(false, reviewTime)
	if r.Level != 2 {
		t.Errorf("level = %d, want 2", r.Level)
	}
	want := reviewTime.AddDate(0, 0, IntervalDays(2))
	if !r.NextReviewAt.Equal(want) {
		t.Errorf("NextReviewAt = %v, want %v", r.NextReviewAt, want)
	}
}

func TestNextReviewInvariant(t *testing.T) {
	// nextReviewAt must always equal lastReviewedAt + interval(level).
	r := NewMasteryRecord("Genesis 1:1", reviewTime)
	now := reviewTime
	outcomes := []bool{true, true, false, true, false, false, true}
	for _, correct := range outcomes {
		now = now.Add(36 * time.Hour)
		r.Review(correct, now)
		want := r.LastReviewedAt.AddDate(0, 0, IntervalDays(r.Level))
		if !r.NextReviewAt.Equal(want) {
			t.Fatalf("invariant broken at level %d: NextReviewAt = %v, want %v", r.Level, r.NextReviewAt, want)
		}
	}
}

func TestIsDueAndOverdue(t *testing.T) {
	r := &MasteryRecord{
		Reference:      "John 3:16",
		Level:          2,
		LastReviewedAt: reviewTime,
		NextReviewAt:   reviewTime.AddDate(0, 0, 3),
	}
	if r.IsDue(reviewTime) {
		t.Error("should not be due immediately after review")
	}
	due := reviewTime.AddDate(0, 0, 3)
	if !r.IsDue(due) {
		t.Error("should be due exactly at NextReviewAt")
	}
	if got := r.OverdueDays(due.AddDate(0, 0, 2)); got != 2 {
		t.Errorf("OverdueDays = %v, want 2", got)
	}
	if got := r.OverdueDays(reviewTime); got != 0 {
		t.Errorf("OverdueDays before due = %v, want 0", got)
	}
}

func TestScheduler_DueOrdering(t *testing.T) {
	s := NewScheduler(nil)
	base := reviewTime

	// Three verses with staggered due dates.
	s.records["John 3:16"] = &MasteryRecord{Reference: "John 3:16", Level: 1, LastReviewedAt: base, NextReviewAt: base.AddDate(0, 0, 1)}
	s.records["Psalms 23:1"] = &MasteryRecord{Reference: "Psalms 23:1", Level: 1, LastReviewedAt: base, NextReviewAt: base.AddDate(0, 0, 3)}
	s.records["Romans 8:28"] = &MasteryRecord{Reference: "Romans 8:28", Level: 1, LastReviewedAt: base, NextReviewAt: base.AddDate(0, 0, 10)}

	now := base.AddDate(0, 0, 5)
	due := s.Due(now)
	want := []string{"John 3:16", "Psalms 23:1"}
	if len(due) != len(want) {
		t.Fatalf("Due returned %d refs, want %d", len(due), len(want))
	}
	for i := range want {
		if due[i] != want[i] {
			t.Errorf("Due[%d] = %q, want %q", i, due[i], want[i])
		}
	}
}

func TestScheduler_SnapshotRoundTrip(t *testing.T) {
	s := NewScheduler(nil)
	s.RecordReview("John 3:16", true, reviewTime)
	s.RecordReview("John 3:16", true, reviewTime.AddDate(0, 0, 1))

	data := s.SnapshotData()
	restored := NewScheduler(nil)
	restored.loadFromSnapshot(data)

	r := restored.Record("John 3:16")
	if r == nil {
		t.Fatal("record missing after snapshot round trip")
	}
	orig := s.Record("John 3:16")
	if r.Level != orig.Level {
		t.Errorf("level = %d, want %d", r.Level, orig.Level)
	}
	if !r.NextReviewAt.Equal(orig.NextReviewAt) {
		t.Errorf("NextReviewAt = %v, want %v", r.NextReviewAt, orig.NextReviewAt)
	}
}

func TestScheduler_FirstReviewCreatesLevelZero(t *testing.T) {
	s := NewScheduler(nil)
	r := s.RecordReview("John 3:16", true, reviewTime)
	if r.Level != 0 {
		t.Errorf("first review level = %d, want 0 (created, not promoted)", r.Level)
	}
}
