package engine

import "fmt"

// DefaultTolerance is the slack, in degrees, applied to ROM threshold
// coverage. Pose-derived angles are noisy and camera-angle dependent, so
// strict endpoint matching would reject many genuinely full repetitions;
// a generous fixed tolerance is acceptable for a coaching tool.
const DefaultTolerance = 20

// ScoreRepetition decides whether a segmented repetition counts as
// complete and collects human-readable failure reasons. Three independent
// rules apply and their messages are cumulative:
//
//  1. ROM floor: maxAngle-minAngle must reach minROM.
//  2. Range coverage: at least one joint in thresholds must have its
//     (low, high) interval covered by the observed span within tolerance,
//     i.e. minAngle <= low+tolerance and maxAngle >= high-tolerance.
//     An empty thresholds table disables this rule entirely: the
//     repetition is then judged on ROM and technique alone, which lets
//     an exercise definition act as a plain rep counter.
//  3. Technique: no frame inside the cycle may have had an angle error.
func ScoreRepetition(minAngle, maxAngle float64, thresholds RangeTable, hasError bool, minROM, tolerance float64) (bool, []string) {
	var errs []string

	rom := maxAngle - minAngle
	if rom < minROM {
		errs = append(errs, fmt.Sprintf("ROM too small (%.1f < %.1f)", rom, minROM))
	}

	if len(thresholds) > 0 {
		covered := false
		for _, r := range thresholds {
			if minAngle <= r.Min+tolerance && maxAngle >= r.Max-tolerance {
				covered = true
				break
			}
		}
		if !covered {
			errs = append(errs, "technique thresholds not reached")
		}
	}

	if hasError {
		errs = append(errs, "incorrect technique during movement")
	}

	return len(errs) == 0, errs
}
