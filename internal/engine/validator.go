// Package engine implements the repetition detection and technique
// validation core: per-frame angle checking, signal reduction, extremum
// detection, repetition segmentation, completeness scoring and dual-view
// reconciliation.
package engine

// AngleFrame maps a joint name (e.g. "left_shoulder") to its angle in
// degrees for one video frame. A joint absent from the map was not visible
// or not computable on that frame.
type AngleFrame map[string]float64

// Range is an inclusive [Min, Max] degree interval.
type Range struct {
	Min float64
	Max float64
}

// RangeTable maps joint names to inclusive degree ranges. It is used both
// for per-frame technique ranges and for per-repetition ROM thresholds.
type RangeTable map[string]Range

// JointStatus is the per-frame verdict for a single joint.
type JointStatus string

const (
	// JointOK means the angle is inside its configured range.
	JointOK JointStatus = "ok"
	// JointError means the angle is outside its configured range.
	JointError JointStatus = "error"
	// JointMissing means no angle data was available for the joint.
	JointMissing JointStatus = "missing"
)

// CheckAngles classifies each joint configured in ranges against the given
// frame. Joints not present in ranges are ignored. A joint with no angle
// data is reported as JointMissing, not as an error.
func CheckAngles(angles AngleFrame, ranges RangeTable) map[string]JointStatus {
	statuses := make(map[string]JointStatus, len(ranges))

	for joint, r := range ranges {
		angle, ok := angles[joint]
		switch {
		case !ok:
			statuses[joint] = JointMissing
		case angle >= r.Min && angle <= r.Max:
			statuses[joint] = JointOK
		default:
			statuses[joint] = JointError
		}
	}

	return statuses
}

// HasAngleErrors reports whether any configured joint has a present angle
// outside its range. Missing joints never count as errors: a joint that is
// merely out of camera view does not penalize technique.
func HasAngleErrors(angles AngleFrame, ranges RangeTable) bool {
	for joint, r := range ranges {
		angle, ok := angles[joint]
		if !ok {
			continue
		}
		if angle < r.Min || angle > r.Max {
			return true
		}
	}
	return false
}
