package srs

import "time"

// MasteryRecord holds the spaced repetition state for a single verse.
// One record exists per distinct reference the user has reviewed.
type MasteryRecord struct {
	Reference      string    `json:"reference"`
	Level          int       `json:"level"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	NextReviewAt   time.Time `json:"next_review_at"`
}

// NewMasteryRecord creates a level-0 record for a verse first reviewed now.
func NewMasteryRecord(reference string, now time.Time) *MasteryRecord {
	r := &MasteryRecord{Reference: reference, Level: 0}
	r.stamp(now)
	return r
}

// NextReviewDate computes when a verse at the given level, reviewed at
// fromDate, is next due.
func NextReviewDate(level int, fromDate time.Time) time.Time {
	return fromDate.AddDate(0, 0, IntervalDays(level))
}

// Review applies one review outcome: promote on success, demote on
// failure, then restamp the review timestamps from the new level.
func (r *MasteryRecord) Review(correct bool, now time.Time) {
	if correct {
		r.Level = Promote(r.Level)
	} else {
		r.Level = Demote(r.Level)
	}
	r.stamp(now)
}

func (r *MasteryRecord) stamp(now time.Time) {
	r.LastReviewedAt = now
	r.NextReviewAt = NextReviewDate(r.Level, now)
}

// IsDue reports whether the verse is at or past its review date.
func (r *MasteryRecord) IsDue(now time.Time) bool {
	return !now.Before(r.NextReviewAt)
}

// OverdueDays returns how many days past due the verse is, or 0 if not
// yet due.
func (r *MasteryRecord) OverdueDays(now time.Time) float64 {
	if now.Before(r.NextReviewAt) {
		return 0
	}
	return now.Sub(r.NextReviewAt).Hours() / 24.0
}

// DaysUntilReview returns the number of whole days until the next
// review, or 0 if already due.
func (r *MasteryRecord) DaysUntilReview(now time.Time) int {
	if r.IsDue(now) {
		return 0
	}
	return int(r.NextReviewAt.Sub(now).Hours()/24.0) + 1
}
