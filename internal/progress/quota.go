package progress

import (
	"sync"
	"time"

	"versequest/internal/store"
)

// DefaultQuotaCap is the free-tier session allowance per window.
const DefaultQuotaCap = 5

// DefaultQuotaWindow is the refill cadence for the session quota.
const DefaultQuotaWindow = 24 * time.Hour

// Quota rate-limits session starts. The check-and-decrement runs under
// a mutex so a background refresh racing a foreground tap cannot spend
// the same slot twice.
type Quota struct {
	mu              sync.Mutex
	limit           int
	window          time.Duration
	remaining       int
	windowStartedAt time.Time
}

// NewQuota creates a full quota whose window starts now.
func NewQuota(limit int, window time.Duration, now time.Time) *Quota {
	if limit <= 0 {
		limit = DefaultQuotaCap
	}
	if window <= 0 {
		window = DefaultQuotaWindow
	}
	return &Quota{
		limit:           limit,
		window:          window,
		remaining:       limit,
		windowStartedAt: now,
	}
}

// TryStart consumes one session slot if any remain, refilling first
// when the window has rolled over. Returns false, without mutating the
// count, when the quota is exhausted; the caller shows an upsell.
func (q *Quota) TryStart(now time.Time) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.refillLocked(now)

	if q.remaining > 0 {
		q.remaining--
		return true
	}
	return false
}

// Remaining returns the current slot count, refilling first when the
// window has rolled over.
func (q *Quota) Remaining(now time.Time) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.refillLocked(now)
	return q.remaining
}

func (q *Quota) refillLocked(now time.Time) {
	if now.Sub(q.windowStartedAt) >= q.window {
		q.remaining = q.limit
		q.windowStartedAt = now
	}
}

// SnapshotData exports the quota for persistence.
func (q *Quota) SnapshotData() *store.QuotaSnapshotData {
	q.mu.Lock()
	defer q.mu.Unlock()
	return &store.QuotaSnapshotData{
		Remaining:       q.remaining,
		WindowStartedAt: q.windowStartedAt.Format(time.RFC3339),
	}
}

// QuotaFromSnapshot restores a quota, falling back to a full quota when
// the snapshot is nil or unparseable.
func QuotaFromSnapshot(data *store.QuotaSnapshotData, limit int, window time.Duration, now time.Time) *Quota {
	q := NewQuota(limit, window, now)
	if data == nil {
		return q
	}
	started, err := time.Parse(time.RFC3339, data.WindowStartedAt)
	if err != nil {
		return q
	}
	q.windowStartedAt = started
	if data.Remaining >= 0 && data.Remaining <= q.limit {
		q.remaining = data.Remaining
	}
	q.refillLocked(now)
	return q
}
