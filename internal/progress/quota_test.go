package progress

import (
	"sync"
	"testing"
	"time"
)

func TestQuota_DecrementsToZero(t *testing.T) {
	now := day(0)
	q := NewQuota(3, DefaultQuotaWindow, now)

	for i := 0; i < 3; i++ {
		if !q.TryStart(now) {
			t.Fatalf("TryStart #%d should succeed", i+1)
		}
	}
	if q.TryStart(now) {
		t.Error("TryStart beyond cap should fail")
	}
	if got := q.Remaining(now); got != 0 {
		t.Errorf("remaining = %d, want 0 (exhausted TryStart must not mutate)", got)
	}
}

func TestQuota_WindowRefill(t *testing.T) {
	now := day(0)
	q := NewQuota(2, 24*time.Hour, now)
	q.TryStart(now)
	q.TryStart(now)
	if q.TryStart(now.Add(23 * time.Hour)) {
		t.Error("quota should still be exhausted inside the window")
	}
	if !q.TryStart(now.Add(24 * time.Hour)) {
		t.Error("quota should refill once the window rolls over")
	}
	if got := q.Remaining(now.Add(24 * time.Hour)); got != 1 {
		t.Errorf("remaining after refill+start = %d, want 1", got)
	}
}

func TestQuota_ConcurrentTryStart(t *testing.T) {
	now := day(0)
	limit := 10
	q := NewQuota(limit, DefaultQuotaWindow, now)

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if q.TryStart(now) {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if granted != limit {
		t.Errorf("granted %d sessions under contention, want exactly %d", granted, limit)
	}
}

func TestQuota_SnapshotRoundTrip(t *testing.T) {
	now := day(0)
	q := NewQuota(5, 24*time.Hour, now)
	q.TryStart(now)
	q.TryStart(now)

	restored := QuotaFromSnapshot(q.SnapshotData(), 5, 24*time.Hour, now)
	if got := restored.Remaining(now); got != 3 {
		t.Errorf("restored remaining = %d, want 3", got)
	}

	// Restoring past the window refills.
	later := now.Add(25 * time.Hour)
	refilled := QuotaFromSnapshot(q.SnapshotData(), 5, 24*time.Hour, later)
	if got := refilled.Remaining(later); got != 5 {
		t.Errorf("restored remaining after window = %d, want 5", got)
	}
}
