package pose

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	landmarks *Landmarks
	err       error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetLandmarks sets the landmarks that will be returned by Detect.
func (m *MockDetector) SetLandmarks(lm *Landmarks) {
	m.landmarks = lm
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured landmarks or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Landmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.landmarks, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// standingBody fills in the trunk and leg landmarks shared by the preset
// poses: an upright person facing the camera.
func standingBody() *Landmarks {
	lm := &Landmarks{Score: 0.95}

	set := func(idx int, x, y float64) {
		lm.Points[idx] = Point{X: x, Y: y, Visibility: 0.95}
	}

	set(Nose, 0.50, 0.12)
	set(LeftShoulder, 0.42, 0.30)
	set(RightShoulder, 0.58, 0.30)
	set(LeftHip, 0.45, 0.55)
	set(RightHip, 0.55, 0.55)
	set(LeftKnee, 0.45, 0.75)
	set(RightKnee, 0.55, 0.75)
	set(LeftAnkle, 0.45, 0.93)
	set(RightAnkle, 0.55, 0.93)

	return lm
}

// PressBottomLandmarks returns a preset pose at the bottom of a shoulder
// press: elbows bent, wrists racked at shoulder height.
func PressBottomLandmarks() *Landmarks {
	lm := standingBody()

	set := func(idx int, x, y float64) {
		lm.Points[idx] = Point{X: x, Y: y, Visibility: 0.95}
	}

	set(LeftElbow, 0.36, 0.40)
	set(LeftWrist, 0.37, 0.29)
	set(RightElbow, 0.64, 0.40)
	set(RightWrist, 0.63, 0.29)

	return lm
}

// PressTopLandmarks returns a preset pose at the top of a shoulder press:
// arms extended straight overhead.
func PressTopLandmarks() *Landmarks {
	lm := standingBody()

	set := func(idx int, x, y float64) {
		lm.Points[idx] = Point{X: x, Y: y, Visibility: 0.95}
	}

	set(LeftElbow, 0.42, 0.17)
	set(LeftWrist, 0.42, 0.05)
	set(RightElbow, 0.58, 0.17)
	set(RightWrist, 0.58, 0.05)

	return lm
}
