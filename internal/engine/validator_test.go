package engine

import "testing"

var testRanges = RangeTable{
	"left_shoulder":  {Min: 40, Max: 180},
	"right_shoulder": {Min: 40, Max: 180},
	"left_elbow":     {Min: 35, Max: 180},
}

func TestCheckAngles_Statuses(t *testing.T) {
	angles := AngleFrame{
		"left_shoulder": 90,  // in range
		"left_elbow":    10,  // below range
		"left_hip":      120, // not configured, must be ignored
	}

	statuses := CheckAngles(angles, testRanges)

	if got := statuses["left_shoulder"]; got != JointOK {
		t.Errorf("left_shoulder status = %q, want %q", got, JointOK)
	}
	if got := statuses["left_elbow"]; got != JointError {
		t.Errorf("left_elbow status = %q, want %q", got, JointError)
	}
	if got := statuses["right_shoulder"]; got != JointMissing {
		t.Errorf("right_shoulder status = %q, want %q", got, JointMissing)
	}
	if _, ok := statuses["left_hip"]; ok {
		t.Error("left_hip is not configured and must not be reported")
	}
}

func TestCheckAngles_RangeBoundsInclusive(t *testing.T) {
	for _, angle := range []float64{40, 180} {
		statuses := CheckAngles(AngleFrame{"left_shoulder": angle}, testRanges)
		if got := statuses["left_shoulder"]; got != JointOK {
			t.Errorf("angle %v: status = %q, want %q", angle, got, JointOK)
		}
	}
}

func TestHasAngleErrors(t *testing.T) {
	tests := []struct {
		name   string
		angles AngleFrame
		want   bool
	}{
		{"all in range", AngleFrame{"left_shoulder": 90, "left_elbow": 100}, false},
		{"one out of range", AngleFrame{"left_shoulder": 10}, true},
		{"missing joints are not errors", AngleFrame{}, false},
		{"missing plus one valid", AngleFrame{"left_elbow": 90}, false},
		{"unconfigured joint out of any range", AngleFrame{"left_knee": 999}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasAngleErrors(tt.angles, testRanges); got != tt.want {
				t.Errorf("HasAngleErrors() = %v, want %v", got, tt.want)
			}
		})
	}
}
