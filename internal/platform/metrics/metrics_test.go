package metrics

import (
	"testing"
	"time"
)

func TestSnapshotCountsRequestsAndErrors(t *testing.T) {
	c := New()
	c.RecordRequest(200, 10*time.Millisecond)
	c.RecordRequest(500, 30*time.Millisecond)
	c.RecordRequest(404, 20*time.Millisecond)

	snap := c.Snapshot()
	if got := snap["requestsTotal"].(uint64); got != 3 {
		t.Fatalf("requestsTotal = %d, want 3", got)
	}
	if got := snap["errorsTotal"].(uint64); got != 1 {
		t.Fatalf("errorsTotal = %d, want 1", got)
	}
	if got := snap["avgDurationMs"].(float64); got != 20 {
		t.Fatalf("avgDurationMs = %v, want 20", got)
	}
}

func TestSnapshotCountsAICalls(t *testing.T) {
	c := New()
	c.RecordAICall(100*time.Millisecond, false)
	c.RecordAICall(300*time.Millisecond, true)

	snap := c.Snapshot()
	if got := snap["aiCallsTotal"].(uint64); got != 2 {
		t.Fatalf("aiCallsTotal = %d, want 2", got)
	}
	if got := snap["aiFailuresTotal"].(uint64); got != 1 {
		t.Fatalf("aiFailuresTotal = %d, want 1", got)
	}
	if got := snap["aiAvgDurationMs"].(float64); got != 200 {
		t.Fatalf("aiAvgDurationMs = %v, want 200", got)
	}
}

func TestEmptySnapshotHasZeroAverages(t *testing.T) {
	snap := New().Snapshot()
	if got := snap["avgDurationMs"].(float64); got != 0 {
		t.Fatalf("avgDurationMs = %v, want 0", got)
	}
	if got := snap["aiAvgDurationMs"].(float64); got != 0 {
		t.Fatalf("aiAvgDurationMs = %v, want 0", got)
	}
}
