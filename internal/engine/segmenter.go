package engine

// Repetition is one detected movement cycle between a valley and the
// following peak of the tracking signal. Immutable after creation.
type Repetition struct {
	StartFrame int      `json:"start_frame"`
	EndFrame   int      `json:"end_frame"`
	MinAngle   float64  `json:"min_angle"`
	MaxAngle   float64  `json:"max_angle"`
	ROM        float64  `json:"rom"`
	IsComplete bool     `json:"is_complete"`
	Errors     []string `json:"errors,omitempty"`
}

// Segmenter pairs valley events with following peak events and cuts raw
// repetitions out of the signal history. It also tracks whether any frame
// inside the current valley-to-peak span had a technique error.
type Segmenter struct {
	valleyFrame int
	valleyValue float64
	hasValley   bool

	peakFrame int
	peakValue float64
	hasPeak   bool

	errorInCycle bool
}

// NewSegmenter creates a segmenter with no open cycle.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// NoteTechniqueError marks the current cycle as containing a technique
// error. Called once per frame with a bad angle; the mark persists for the
// whole valley-to-peak span regardless of which frame raised it.
func (s *Segmenter) NoteTechniqueError() {
	s.errorInCycle = true
}

// OnExtremum consumes a detected extremum. On a peak that closes an open
// valley it returns the raw repetition together with the cycle's technique
// error flag; in every other case ok is false.
//
// Min and max are taken over every history sample between the valley frame
// and the peak frame inclusive, not just the two endpoint values: the true
// excursion extremes can fall strictly between the detected valley and peak
// because detection lags behind the signal.
func (s *Segmenter) OnExtremum(ev Extremum, h *SignalHistory) (rep Repetition, hadError bool, ok bool) {
	switch ev.Kind {
	case Valley:
		// A fresh valley supersedes a stale one that never closed, and
		// starts a new cycle for error tracking.
		s.valleyFrame = ev.Frame
		s.valleyValue = ev.Value
		s.hasValley = true
		s.errorInCycle = false
		return Repetition{}, false, false

	case Peak:
		s.peakFrame = ev.Frame
		s.peakValue = ev.Value
		s.hasPeak = true

		// A peak with no valley before it is an incomplete leading
		// fragment, not a repetition.
		if !s.hasValley {
			return Repetition{}, false, false
		}

		samples := h.Between(s.valleyFrame, ev.Frame)
		minAngle, maxAngle := s.valleyValue, ev.Value
		if maxAngle < minAngle {
			minAngle, maxAngle = maxAngle, minAngle
		}
		for _, sm := range samples {
			if sm.Value < minAngle {
				minAngle = sm.Value
			}
			if sm.Value > maxAngle {
				maxAngle = sm.Value
			}
		}

		rep = Repetition{
			StartFrame: s.valleyFrame,
			EndFrame:   ev.Frame,
			MinAngle:   minAngle,
			MaxAngle:   maxAngle,
			ROM:        maxAngle - minAngle,
		}
		hadError = s.errorInCycle

		// Close the cycle: the valley and the error flag are never
		// re-used for another repetition.
		s.hasValley = false
		s.errorInCycle = false

		return rep, hadError, true
	}

	return Repetition{}, false, false
}
