package engine

import (
	"sync"
	"testing"
)

func TestReconciler_ConfirmsMatchingPair(t *testing.T) {
	r := NewReconciler(300)

	front := Repetition{StartFrame: 100, EndFrame: 160, IsComplete: true}
	side := Repetition{StartFrame: 150, EndFrame: 210, IsComplete: true}

	if got := r.Submit("front", front); got != OutcomePending {
		t.Fatalf("first submission outcome = %q, want %q", got, OutcomePending)
	}
	if got := r.Submit("side", side); got != OutcomeConfirmed {
		t.Fatalf("second submission outcome = %q, want %q", got, OutcomeConfirmed)
	}
	if r.Confirmed() != 1 {
		t.Errorf("Confirmed() = %d, want 1", r.Confirmed())
	}
}

func TestReconciler_PendingSlotsClearedAfterMatch(t *testing.T) {
	r := NewReconciler(300)

	r.Submit("front", Repetition{StartFrame: 100, IsComplete: true})
	r.Submit("side", Repetition{StartFrame: 150, IsComplete: true})

	// A later unrelated repetition must not re-match the consumed pair.
	if got := r.Submit("front", Repetition{StartFrame: 900, IsComplete: true}); got != OutcomePending {
		t.Errorf("outcome after cleared slots = %q, want %q", got, OutcomePending)
	}
	if r.Confirmed() != 1 {
		t.Errorf("Confirmed() = %d, want exactly 1", r.Confirmed())
	}
}

func TestReconciler_StalePendingClearedAfterMatch(t *testing.T) {
	r := NewReconciler(300)

	// A front repetition that never finds a counterpart goes stale.
	r.Submit("front", Repetition{StartFrame: 100, IsComplete: true})
	r.Submit("side", Repetition{StartFrame: 2000, IsComplete: true})

	// The next front repetition matches the side one and must consume
	// the stale front slot as well.
	if got := r.Submit("front", Repetition{StartFrame: 2100, IsComplete: true}); got != OutcomeConfirmed {
		t.Fatalf("outcome = %q, want %q", got, OutcomeConfirmed)
	}

	// The stale front repetition at 100 is gone, so a close side
	// repetition stays pending instead of matching it.
	if got := r.Submit("side", Repetition{StartFrame: 150, IsComplete: true}); got != OutcomePending {
		t.Errorf("outcome against cleared stale slot = %q, want %q", got, OutcomePending)
	}
	if r.Confirmed() != 1 {
		t.Errorf("Confirmed() = %d, want exactly 1", r.Confirmed())
	}
}

func TestReconciler_RejectsWhenEitherViewIncomplete(t *testing.T) {
	tests := []struct {
		name          string
		frontComplete bool
		sideComplete  bool
	}{
		{"front incomplete", false, true},
		{"side incomplete", true, false},
		{"both incomplete", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReconciler(300)
			r.Submit("front", Repetition{StartFrame: 100, IsComplete: tt.frontComplete})

			got := r.Submit("side", Repetition{StartFrame: 120, IsComplete: tt.sideComplete})
			if got != OutcomeRejected {
				t.Errorf("outcome = %q, want %q", got, OutcomeRejected)
			}
			if r.Confirmed() != 0 {
				t.Errorf("Confirmed() = %d, want 0", r.Confirmed())
			}
			if r.Rejected() != 1 {
				t.Errorf("Rejected() = %d, want 1", r.Rejected())
			}
		})
	}
}

func TestReconciler_DistantRepetitionsStayPending(t *testing.T) {
	r := NewReconciler(300)

	r.Submit("front", Repetition{StartFrame: 100, IsComplete: true})
	if got := r.Submit("side", Repetition{StartFrame: 500, IsComplete: true}); got != OutcomePending {
		t.Fatalf("outcome for distant repetition = %q, want %q", got, OutcomePending)
	}

	// The side pending slot was overwritten with frame 500; a new front
	// repetition near it can still match.
	if got := r.Submit("front", Repetition{StartFrame: 520, IsComplete: true}); got != OutcomeConfirmed {
		t.Errorf("outcome = %q, want %q", got, OutcomeConfirmed)
	}
}

func TestReconciler_ConcurrentSubmissions(t *testing.T) {
	r := NewReconciler(300)

	// Each physical repetition is submitted by both views concurrently, in
	// either order; the pair is 10 frames apart and must confirm exactly
	// once regardless of which view wins the race.
	for i := 0; i < 50; i++ {
		var wg sync.WaitGroup
		wg.Add(2)
		start := i * 1000
		go func() {
			defer wg.Done()
			r.Submit("front", Repetition{StartFrame: start, IsComplete: true})
		}()
		go func() {
			defer wg.Done()
			r.Submit("side", Repetition{StartFrame: start + 10, IsComplete: true})
		}()
		wg.Wait()
	}

	if r.Confirmed() != 50 {
		t.Errorf("Confirmed() = %d, want 50", r.Confirmed())
	}
}
