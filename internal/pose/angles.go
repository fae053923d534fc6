package pose

import "math"

// DefaultVisibilityThreshold is the minimum landmark visibility for a
// point to be used in angle computation.
const DefaultVisibilityThreshold = 0.5

// angleChains maps every coached joint to the three landmarks whose a-b-c
// vertex angle defines it (b is the joint itself).
var angleChains = map[string][3]string{
	"left_elbow":     {"left_shoulder", "left_elbow", "left_wrist"},
	"right_elbow":    {"right_shoulder", "right_elbow", "right_wrist"},
	"left_knee":      {"left_hip", "left_knee", "left_ankle"},
	"right_knee":     {"right_hip", "right_knee", "right_ankle"},
	"left_shoulder":  {"left_elbow", "left_shoulder", "left_hip"},
	"right_shoulder": {"right_elbow", "right_shoulder", "right_hip"},
	"left_hip":       {"left_shoulder", "left_hip", "left_knee"},
	"right_hip":      {"right_shoulder", "right_hip", "right_knee"},
}

// coachedJoints is the fixed vocabulary of joints reported per frame.
var coachedJoints = []string{
	"left_elbow", "right_elbow",
	"left_knee", "right_knee",
	"left_shoulder", "right_shoulder",
	"left_hip", "right_hip",
}

// AngleCalculator derives joint angles in degrees from pose landmarks.
// Landmarks below the visibility threshold are treated as absent, so the
// resulting angle map simply omits joints that cannot be computed.
type AngleCalculator struct {
	visibilityThreshold float64
	imageWidth          float64
	imageHeight         float64
}

// NewAngleCalculator creates a calculator for frames of the given pixel
// dimensions. A threshold of zero or less falls back to
// DefaultVisibilityThreshold.
func NewAngleCalculator(width, height int, visibilityThreshold float64) *AngleCalculator {
	if visibilityThreshold <= 0 {
		visibilityThreshold = DefaultVisibilityThreshold
	}
	return &AngleCalculator{
		visibilityThreshold: visibilityThreshold,
		imageWidth:          float64(width),
		imageHeight:         float64(height),
	}
}

// JointAngle returns the angle in degrees for the named joint, e.g.
// "left_elbow". The second return value is false when the joint is unknown
// or any of its three landmarks is missing or below the visibility
// threshold.
func (c *AngleCalculator) JointAngle(lm *Landmarks, joint string) (float64, bool) {
	chain, ok := angleChains[joint]
	if !ok || lm == nil {
		return 0, false
	}

	ax, ay, ok := c.pixel(lm, chain[0])
	if !ok {
		return 0, false
	}
	bx, by, ok := c.pixel(lm, chain[1])
	if !ok {
		return 0, false
	}
	cx, cy, ok := c.pixel(lm, chain[2])
	if !ok {
		return 0, false
	}

	return vertexAngle(ax, ay, bx, by, cx, cy)
}

// AllAngles computes the angles for the full coached joint vocabulary.
// Joints that cannot be computed are omitted from the result, so an empty
// map means the whole frame is a data gap.
func (c *AngleCalculator) AllAngles(lm *Landmarks) map[string]float64 {
	angles := make(map[string]float64, len(coachedJoints))
	for _, joint := range coachedJoints {
		if angle, ok := c.JointAngle(lm, joint); ok {
			angles[joint] = angle
		}
	}
	return angles
}

// pixel converts a named landmark to pixel coordinates, rejecting
// landmarks below the visibility threshold.
func (c *AngleCalculator) pixel(lm *Landmarks, name string) (x, y float64, ok bool) {
	idx, found := jointIndex[name]
	if !found {
		return 0, 0, false
	}
	p := lm.Points[idx]
	if p.Visibility < c.visibilityThreshold {
		return 0, 0, false
	}
	return p.X * c.imageWidth, p.Y * c.imageHeight, true
}

// vertexAngle returns the angle in degrees at vertex b formed by points
// a-b-c. ok is false when either vector has zero length.
func vertexAngle(ax, ay, bx, by, cx, cy float64) (float64, bool) {
	bax := ax - bx
	bay := ay - by
	bcx := cx - bx
	bcy := cy - by

	na := math.Hypot(bax, bay)
	nc := math.Hypot(bcx, bcy)
	if na == 0 || nc == 0 {
		return 0, false
	}

	cos := (bax*bcx + bay*bcy) / (na * nc)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi, true
}
