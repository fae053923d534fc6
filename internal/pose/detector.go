package pose

import "gocv.io/x/gocv"

// Detector defines the interface for body pose detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the detected body
	// landmarks, or nil when no person is found.
	Detect(frame *gocv.Mat) (*Landmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for pose detection.
type Config struct {
	// ModelComplexity selects the MediaPipe pose model (0-2, higher is
	// more accurate and slower).
	ModelComplexity int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		ModelComplexity: 2,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}
