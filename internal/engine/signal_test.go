package engine

import "testing"

func TestReduceSignal_Mean(t *testing.T) {
	angles := AngleFrame{
		"left_shoulder":  100,
		"right_shoulder": 110,
		"left_elbow":     90,
	}
	primary := []string{"left_shoulder", "right_shoulder", "left_elbow", "right_elbow"}

	value, ok := ReduceSignal(angles, primary)
	if !ok {
		t.Fatal("expected a signal value when primary joints are present")
	}
	if value != 100 {
		t.Errorf("signal = %v, want 100 (mean of present primary joints)", value)
	}
}

func TestReduceSignal_NoData(t *testing.T) {
	angles := AngleFrame{"left_hip": 120}
	primary := []string{"left_shoulder", "right_shoulder"}

	if _, ok := ReduceSignal(angles, primary); ok {
		t.Error("expected no signal when no primary joint has data")
	}
}

func TestSignalHistory_FIFOEviction(t *testing.T) {
	h := NewSignalHistory(3)

	for i := 0; i < 5; i++ {
		h.Push(i, float64(i)*10)
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 after eviction", h.Len())
	}
	// Oldest two samples (frames 0 and 1) must be gone.
	if got := h.At(0).Frame; got != 2 {
		t.Errorf("oldest frame = %d, want 2", got)
	}
	if got := h.At(2).Frame; got != 4 {
		t.Errorf("newest frame = %d, want 4", got)
	}
}

func TestSignalHistory_Between(t *testing.T) {
	h := NewSignalHistory(10)
	for i := 0; i < 10; i++ {
		h.Push(i, float64(i))
	}

	samples := h.Between(3, 6)
	if len(samples) != 4 {
		t.Fatalf("Between(3, 6) returned %d samples, want 4", len(samples))
	}
	if samples[0].Frame != 3 || samples[3].Frame != 6 {
		t.Errorf("Between(3, 6) bounds = [%d, %d], want [3, 6]",
			samples[0].Frame, samples[3].Frame)
	}
}

func TestSignalHistory_DefaultCapacity(t *testing.T) {
	h := NewSignalHistory(0)
	for i := 0; i < DefaultHistorySize+50; i++ {
		h.Push(i, 0)
	}
	if h.Len() != DefaultHistorySize {
		t.Errorf("Len() = %d, want %d", h.Len(), DefaultHistorySize)
	}
}
