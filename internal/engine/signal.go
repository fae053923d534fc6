package engine

// DefaultHistorySize is the capacity of the sliding signal history.
const DefaultHistorySize = 200

// ReduceSignal collapses a multi-joint angle frame into one scalar by
// averaging the angles of the primary joints that are present. The second
// return value is false when none of the primary joints have data.
//
// A single lift moves several joints whose time series are correlated but
// individually noisy; averaging them yields a steadier tracking signal for
// extremum detection.
func ReduceSignal(angles AngleFrame, primaryJoints []string) (float64, bool) {
	var sum float64
	var n int

	for _, joint := range primaryJoints {
		if angle, ok := angles[joint]; ok {
			sum += angle
			n++
		}
	}

	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Sample is one (frame index, signal value) pair in the history.
type Sample struct {
	Frame int
	Value float64
}

// SignalHistory is a fixed-capacity FIFO of signal samples, oldest evicted
// first. It is owned by a single Engine and mutated only by frame ingestion.
type SignalHistory struct {
	samples  []Sample
	capacity int
}

// NewSignalHistory creates a history with the given capacity. A capacity
// of zero or less falls back to DefaultHistorySize.
func NewSignalHistory(capacity int) *SignalHistory {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &SignalHistory{
		samples:  make([]Sample, 0, capacity),
		capacity: capacity,
	}
}

// Push appends a sample, evicting the oldest one when the history is full.
func (h *SignalHistory) Push(frame int, value float64) {
	if len(h.samples) >= h.capacity {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:len(h.samples)-1]
	}
	h.samples = append(h.samples, Sample{Frame: frame, Value: value})
}

// Len returns the number of stored samples.
func (h *SignalHistory) Len() int {
	return len(h.samples)
}

// At returns the sample at position i, oldest first.
func (h *SignalHistory) At(i int) Sample {
	return h.samples[i]
}

// Between returns all stored samples whose frame index lies in
// [from, to] inclusive, in ingestion order.
func (h *SignalHistory) Between(from, to int) []Sample {
	var out []Sample
	for _, s := range h.samples {
		if s.Frame >= from && s.Frame <= to {
			out = append(out, s)
		}
	}
	return out
}
