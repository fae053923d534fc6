package engine

// DefaultWindow is the number of neighbors examined on each side of a
// candidate extremum.
const DefaultWindow = 10

// ExtremumKind tags a detected extremum as a peak or a valley.
type ExtremumKind string

const (
	// Peak is a local maximum of the tracking signal, the top of a cycle.
	Peak ExtremumKind = "peak"
	// Valley is a local minimum of the tracking signal, the bottom of a cycle.
	Valley ExtremumKind = "valley"
)

// Extremum is a detected local maximum or minimum of the tracking signal.
type Extremum struct {
	Kind  ExtremumKind
	Frame int
	Value float64
}

// ExtremumDetector examines the signal history after each ingested sample
// and reports at most one extremum. Implementations may be swapped out for
// stronger peak finders without touching the segmenter.
type ExtremumDetector interface {
	Detect(h *SignalHistory) (Extremum, bool)
}

// WindowDetector detects local extrema with a fixed-width symmetric
// comparison: a candidate must strictly dominate every other sample within
// `window` neighbors on both sides. The candidate evaluated is always
// `window` samples behind the most recent ingestion, so both-sided context
// is guaranteed at the cost of reporting events `window` frames late.
//
// Strict dominance over 2*window neighbors tolerates pose jitter far better
// than comparing adjacent samples only, and ties disqualify the candidate so
// plateaus never double-fire.
type WindowDetector struct {
	window int
}

// NewWindowDetector creates a detector with the given half-window size.
// A size of zero or less falls back to DefaultWindow.
func NewWindowDetector(window int) *WindowDetector {
	if window <= 0 {
		window = DefaultWindow
	}
	return &WindowDetector{window: window}
}

// Detect evaluates the candidate sample sitting `window` positions behind
// the newest one. No extremum is reported until the history holds
// 2*window+1 samples.
func (d *WindowDetector) Detect(h *SignalHistory) (Extremum, bool) {
	w := d.window
	if h.Len() < 2*w+1 {
		return Extremum{}, false
	}

	checkIdx := h.Len() - w - 1
	candidate := h.At(checkIdx)

	isMax := true
	isMin := true
	for i := checkIdx - w; i <= checkIdx+w; i++ {
		if i == checkIdx {
			continue
		}
		v := h.At(i).Value
		// Equal neighbors disqualify both directions.
		if v >= candidate.Value {
			isMax = false
		}
		if v <= candidate.Value {
			isMin = false
		}
		if !isMax && !isMin {
			return Extremum{}, false
		}
	}

	if isMax {
		return Extremum{Kind: Peak, Frame: candidate.Frame, Value: candidate.Value}, true
	}
	if isMin {
		return Extremum{Kind: Valley, Frame: candidate.Frame, Value: candidate.Value}, true
	}
	return Extremum{}, false
}
