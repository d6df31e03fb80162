package buffer

import "testing"

func TestRingAppendKeepsOrder(t *testing.T) {
	r := NewRing(10)

	if !r.Append(1, []float64{1, 2, 3}) {
		t.Fatalf("expected first append to succeed")
	}
	if !r.Append(2, []float64{4, 5}) {
		t.Fatalf("expected second append to succeed")
	}

	got := r.Snapshot()
	want := []float64{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestRingOversizedBatchKeepsNewest(t *testing.T) {
	r := NewRing(5)

	if !r.Append(1, []float64{1, 2, 3, 4, 5, 6, 7}) {
		t.Fatalf("expected append to succeed")
	}

	got := r.Snapshot()
	want := []float64{3, 4, 5, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestRingNeverExceedsCapacity(t *testing.T) {
	r := NewRing(8)

	for ts := int64(1); ts <= 100; ts++ {
		r.Append(ts, []float64{float64(ts), float64(ts) + 0.5, float64(ts) + 0.9})
		if r.Len() > r.Cap() {
			t.Fatalf("buffer grew past capacity: len=%d cap=%d", r.Len(), r.Cap())
		}
	}
	if r.Len() != 8 {
		t.Fatalf("expected full buffer, got %d", r.Len())
	}
}

func TestRingRejectsOutOfOrderTimestamps(t *testing.T) {
	r := NewRing(10)

	r.Append(5, []float64{1, 2})
	before := r.Snapshot()

	if r.Append(5, []float64{9}) {
		t.Fatalf("equal timestamp should be rejected")
	}
	if r.Append(4, []float64{9}) {
		t.Fatalf("older timestamp should be rejected")
	}

	after := r.Snapshot()
	if len(before) != len(after) {
		t.Fatalf("rejected append changed buffer contents")
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("rejected append changed buffer contents at %d", i)
		}
	}
	if r.LastTimestamp() != 5 {
		t.Fatalf("expected last timestamp 5, got %d", r.LastTimestamp())
	}
}

func TestRingSnapshotIsCopy(t *testing.T) {
	r := NewRing(4)
	r.Append(1, []float64{1, 2})

	snap := r.Snapshot()
	snap[0] = 99

	if r.Snapshot()[0] != 1 {
		t.Fatalf("snapshot mutation leaked into buffer")
	}
}

func TestRingResizeKeepsNewest(t *testing.T) {
	r := NewRing(6)
	r.Append(1, []float64{1, 2, 3, 4, 5, 6})

	r.Resize(3)
	got := r.Snapshot()
	want := []float64{4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples after resize, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if r.Cap() != 3 {
		t.Fatalf("expected capacity 3, got %d", r.Cap())
	}
}
