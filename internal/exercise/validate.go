package exercise

import "fmt"

// ValidationError describes a single problem with an exercise definition.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a Definition for structural and semantic errors and
// returns every problem found (empty when valid).
func Validate(d *Definition) []ValidationError {
	var errs []ValidationError

	if d.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "is required"})
	}
	if d.MinROM < 0 {
		errs = append(errs, ValidationError{Field: "min_rom", Message: "must not be negative"})
	}
	if d.Tolerance < 0 {
		errs = append(errs, ValidationError{Field: "tolerance", Message: "must not be negative"})
	}
	if len(d.Views) == 0 {
		errs = append(errs, ValidationError{Field: "views", Message: "at least one view is required"})
	}

	for view, vc := range d.Views {
		if len(vc.PrimaryJoints) == 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("views.%s.primary_joints", view),
				Message: "at least one primary joint is required",
			})
		}
		if len(vc.Ranges) == 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("views.%s.ranges", view),
				Message: "at least one technique range is required",
			})
		}
		for joint, r := range vc.Ranges {
			if r.Min > r.Max {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("views.%s.ranges.%s", view, joint),
					Message: fmt.Sprintf("min %v exceeds max %v", r.Min, r.Max),
				})
			}
		}
		for joint, r := range vc.RomThresholds {
			if r.Min > r.Max {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("views.%s.rom_thresholds.%s", view, joint),
					Message: fmt.Sprintf("min %v exceeds max %v", r.Min, r.Max),
				})
			}
		}
	}

	return errs
}
