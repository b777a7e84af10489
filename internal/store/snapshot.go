package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version  int                   `json:"version"`
	Mastery  *MasterySnapshotData  `json:"mastery,omitempty"`
	Progress *ProgressSnapshotData `json:"progress,omitempty"`
	Quota    *QuotaSnapshotData    `json:"quota,omitempty"`
}

// MasterySnapshotData holds serialized mastery records keyed by verse
// reference. Timestamps are RFC3339 strings.
type MasterySnapshotData struct {
	Records map[string]*MasteryRecordData `json:"records"`
}

// MasteryRecordData is the wire form of one mastery record.
type MasteryRecordData struct {
	Reference      string `json:"reference"`
	Level          int    `json:"level"`
	LastReviewedAt string `json:"last_reviewed_at"`
	NextReviewAt   string `json:"next_review_at"`
}

// ProgressSnapshotData is the wire form of the streak/progress record.
type ProgressSnapshotData struct {
	CompletedDayIDs  []int  `json:"completed_day_ids"`
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	LastActivityDate string `json:"last_activity_date,omitempty"`
}

// QuotaSnapshotData is the wire form of the free-session quota.
type QuotaSnapshotData struct {
	Remaining       int    `json:"remaining"`
	WindowStartedAt string `json:"window_started_at"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	raw, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO snapshots (sequence, timestamp, data) VALUES (?, ?, ?)`,
		snap.Sequence, snap.Timestamp.UTC().Format(time.RFC3339Nano), string(raw),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, sequence, timestamp, data FROM snapshots ORDER BY timestamp DESC, id DESC LIMIT 1`)

	var snap Snapshot
	var ts, raw string
	err := row.Scan(&snap.ID, &snap.Sequence, &ts, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	snap.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot timestamp: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY timestamp DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
