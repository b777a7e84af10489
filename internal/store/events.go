package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SessionEventData captures one session lifecycle event.
type SessionEventData struct {
	SessionID    string
	Action       string // "start" or "end"
	DayID        int
	Questions    int
	Correct      int
	Reward       int
	DurationSecs int
}

// SessionStats aggregates the event log for the stats command.
type SessionStats struct {
	TotalSessions  int
	TotalQuestions int
	TotalCorrect   int
	TotalReward    int
	LastSessionAt  time.Time
}

// EventRepo provides append and aggregate access to session events.
type EventRepo interface {
	// AppendSessionEvent records a session start/end event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// Stats aggregates completed sessions.
	Stats(ctx context.Context) (*SessionStats, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_events (session_id, action, day_id, questions, correct, reward, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		data.SessionID, data.Action, data.DayID, data.Questions, data.Correct, data.Reward, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("append session event: %w", err)
	}
	return nil
}

func (r *eventRepo) Stats(ctx context.Context) (*SessionStats, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(questions), 0),
		        COALESCE(SUM(correct), 0),
		        COALESCE(SUM(reward), 0),
		        COALESCE(MAX(created_at), '')
		 FROM session_events WHERE action = 'end'`)

	var stats SessionStats
	var last string
	if err := row.Scan(&stats.TotalSessions, &stats.TotalQuestions, &stats.TotalCorrect, &stats.TotalReward, &last); err != nil {
		return nil, fmt.Errorf("query session stats: %w", err)
	}
	if last != "" {
		// SQLite CURRENT_TIMESTAMP format.
		if t, err := time.Parse("2006-01-02 15:04:05", last); err == nil {
			stats.LastSessionAt = t
		}
	}
	return &stats, nil
}
