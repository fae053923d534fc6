// Package pose provides body pose detection interfaces and joint angle
// geometry for exercise analysis.
package pose

// Body landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose          = 0
	LeftShoulder  = 11
	RightShoulder = 12
	LeftElbow     = 13
	RightElbow    = 14
	LeftWrist     = 15
	RightWrist    = 16
	LeftHip       = 23
	RightHip      = 24
	LeftKnee      = 25
	RightKnee     = 26
	LeftAnkle     = 27
	RightAnkle    = 28
	NumLandmarks  = 33
)

// Point represents one detected body landmark. X and Y are normalized to
// [0, 1] relative to the image; Visibility is the tracker's confidence that
// the landmark is actually in view.
type Point struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Visibility float64 `json:"visibility"`
}

// Landmarks represents the 33 body landmarks detected by MediaPipe for one
// person in one frame.
type Landmarks struct {
	Points [NumLandmarks]Point `json:"points"`
	Score  float64             `json:"score"`
}

// jointIndex maps the joint vocabulary used throughout the engine to
// landmark indices.
var jointIndex = map[string]int{
	"nose":           Nose,
	"left_shoulder":  LeftShoulder,
	"right_shoulder": RightShoulder,
	"left_elbow":     LeftElbow,
	"right_elbow":    RightElbow,
	"left_wrist":     LeftWrist,
	"right_wrist":    RightWrist,
	"left_hip":       LeftHip,
	"right_hip":      RightHip,
	"left_knee":      LeftKnee,
	"right_knee":     RightKnee,
	"left_ankle":     LeftAnkle,
	"right_ankle":    RightAnkle,
}
