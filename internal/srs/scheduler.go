// Package srs schedules verse reviews using a fixed spaced-repetition
// ladder over mastery levels 0-5.
package srs

import (
	"sort"
	"time"

	"versequest/internal/store"
)

// Scheduler manages mastery records for all memorized verses.
type Scheduler struct {
	records map[string]*MasteryRecord
}

// NewScheduler creates a scheduler, loading records from the snapshot
// if one is provided.
func NewScheduler(snap *store.SnapshotData) *Scheduler {
	s := &Scheduler{records: make(map[string]*MasteryRecord)}
	if snap != nil && snap.Mastery != nil {
		s.loadFromSnapshot(snap.Mastery)
	}
	return s
}

func (s *Scheduler) loadFromSnapshot(data *store.MasterySnapshotData) {
	for reference, rd := range data.Records {
		last, err := time.Parse(time.RFC3339, rd.LastReviewedAt)
		if err != nil {
			continue
		}
		next, err := time.Parse(time.RFC3339, rd.NextReviewAt)
		if err != nil {
			continue
		}
		level := rd.Level
		if level < 0 {
			level = 0
		}
		if level > MaxLevel {
			level = MaxLevel
		}
		s.records[reference] = &MasteryRecord{
			Reference:      rd.Reference,
			Level:          level,
			LastReviewedAt: last,
			NextReviewAt:   next,
		}
	}
}

// Record returns the mastery record for a reference, or nil if the
// verse has never been reviewed.
func (s *Scheduler) Record(reference string) *MasteryRecord {
	return s.records[reference]
}

// Track begins tracking a verse, creating a level-0 record. Tracking an
// already-tracked verse is a no-op and returns the existing record.
func (s *Scheduler) Track(reference string, now time.Time) *MasteryRecord {
	if r, ok := s.records[reference]; ok {
		return r
	}
	r := NewMasteryRecord(reference, now)
	s.records[reference] = r
	return r
}

// RecordReview applies a review outcome for a verse, creating the
// record on first review.
func (s *Scheduler) RecordReview(reference string, correct bool, now time.Time) *MasteryRecord {
	r := s.records[reference]
	if r == nil {
		r = NewMasteryRecord(reference, now)
		s.records[reference] = r
		return r
	}
	r.Review(correct, now)
	return r
}

// Due returns references due for review, most overdue first. Ties
// break on reference for deterministic ordering.
func (s *Scheduler) Due(now time.Time) []string {
	type dueVerse struct {
		reference string
		overdue   float64
	}
	var due []dueVerse
	for reference, r := range s.records {
		if r.IsDue(now) {
			due = append(due, dueVerse{reference: reference, overdue: r.OverdueDays(now)})
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].overdue != due[j].overdue {
			return due[i].overdue > due[j].overdue
		}
		return due[i].reference < due[j].reference
	})
	refs := make([]string, len(due))
	for i, d := range due {
		refs[i] = d.reference
	}
	return refs
}

// All returns every tracked record keyed by reference.
func (s *Scheduler) All() map[string]*MasteryRecord {
	out := make(map[string]*MasteryRecord, len(s.records))
	for reference, r := range s.records {
		out[reference] = r
	}
	return out
}

// SnapshotData exports the current records for persistence.
func (s *Scheduler) SnapshotData() *store.MasterySnapshotData {
	data := &store.MasterySnapshotData{
		Records: make(map[string]*store.MasteryRecordData, len(s.records)),
	}
	for reference, r := range s.records {
		data.Records[reference] = &store.MasteryRecordData{
			Reference:      r.Reference,
			Level:          r.Level,
			LastReviewedAt: r.LastReviewedAt.Format(time.RFC3339),
			NextReviewAt:   r.NextReviewAt.Format(time.RFC3339),
		}
	}
	return data
}
