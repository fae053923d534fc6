package engine

import "sync"

// DefaultSyncThreshold is the maximum start-frame distance, in frames, for
// two views' repetitions to be treated as the same physical movement.
// Generous because phone and webcam streams drift and lag independently.
const DefaultSyncThreshold = 300

// Outcome is the reconciler's verdict for a submitted repetition.
type Outcome string

const (
	// OutcomePending means no temporally close counterpart exists yet.
	OutcomePending Outcome = "pending"
	// OutcomeConfirmed means both views reported the repetition complete.
	OutcomeConfirmed Outcome = "confirmed"
	// OutcomeRejected means the views matched but at least one reported
	// the repetition incomplete.
	OutcomeRejected Outcome = "rejected"
)

// Reconciler cross-validates repetitions between two synchronized camera
// views. A repetition is confirmed only when a temporally close counterpart
// from the other view is also complete. Safe for concurrent use: the two
// capture goroutines submit into shared state, and look-up, match and clear
// happen atomically under one lock.
//
// A pending repetition with no counterpart waits indefinitely; there is no
// timeout, so the reconciler never falsely confirms but may silently leave
// a real repetition unconfirmed when the other camera lost tracking.
type Reconciler struct {
	mu        sync.Mutex
	threshold int
	pending   map[string]Repetition
	confirmed int
	rejected  int
}

// NewReconciler creates a reconciler with the given start-frame distance
// threshold. A threshold of zero or less falls back to
// DefaultSyncThreshold.
func NewReconciler(threshold int) *Reconciler {
	if threshold <= 0 {
		threshold = DefaultSyncThreshold
	}
	return &Reconciler{
		threshold: threshold,
		pending:   make(map[string]Repetition),
	}
}

// Submit hands a completed-cycle repetition from one view to the
// reconciler. When the most recent unmatched repetition from another view
// starts within the threshold, the pair is resolved: confirmed if both are
// complete, rejected otherwise, and both pending slots are cleared so no
// repetition is ever matched twice. Otherwise the repetition is held
// pending for that view, superseding any older pending one.
func (r *Reconciler) Submit(view string, rep Repetition) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	for otherView, other := range r.pending {
		if otherView == view {
			continue
		}

		diff := rep.StartFrame - other.StartFrame
		if diff < 0 {
			diff = -diff
		}
		if diff >= r.threshold {
			continue
		}

		// Both stream-local slots are cleared: a stale pending rep from
		// the submitting view must not match a later counterpart.
		delete(r.pending, otherView)
		delete(r.pending, view)
		if rep.IsComplete && other.IsComplete {
			r.confirmed++
			return OutcomeConfirmed
		}
		r.rejected++
		return OutcomeRejected
	}

	r.pending[view] = rep
	return OutcomePending
}

// Confirmed returns the number of repetitions confirmed by both views.
func (r *Reconciler) Confirmed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.confirmed
}

// Rejected returns the number of matched pairs where at least one view
// reported the repetition incomplete.
func (r *Reconciler) Rejected() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rejected
}
