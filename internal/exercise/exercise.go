// Package exercise defines parametrized exercise descriptions: per-view
// technique angle ranges, ROM thresholds and primary joints, either built-in
// or loaded from YAML.
package exercise

import (
	"fmt"

	"github.com/jwojnar/cybercoach/internal/engine"
)

// View names recognized by the built-in definitions.
const (
	ViewFront = "front"
	ViewSide  = "side"
)

// ViewConfig holds everything the engine needs for one camera perspective.
type ViewConfig struct {
	Ranges        engine.RangeTable
	RomThresholds engine.RangeTable
	PrimaryJoints []string
}

// Definition is a named exercise with one config per supported view.
type Definition struct {
	Name      string
	Views     map[string]ViewConfig
	MinROM    float64
	Tolerance float64
}

// EngineConfig builds the engine configuration for the given view.
// An unrecognized view name fails with a configuration error; the engine
// never silently defaults to another perspective.
func (d *Definition) EngineConfig(view string) (engine.Config, error) {
	vc, ok := d.Views[view]
	if !ok {
		return engine.Config{}, fmt.Errorf("exercise %q: unknown view type %q", d.Name, view)
	}

	return engine.Config{
		View:          view,
		Ranges:        vc.Ranges,
		RomThresholds: vc.RomThresholds,
		PrimaryJoints: vc.PrimaryJoints,
		MinROM:        d.MinROM,
		Tolerance:     d.Tolerance,
	}, nil
}

// ShoulderPress returns the built-in shoulder press definition.
//
// The front view averages both shoulders and both elbows into the tracking
// signal; the side view sees only the left body half, so it tracks the left
// shoulder and elbow and additionally checks the hip to catch arching backs.
func ShoulderPress() *Definition {
	return &Definition{
		Name:      "shoulder_press",
		MinROM:    100,
		Tolerance: engine.DefaultTolerance,
		Views: map[string]ViewConfig{
			ViewFront: {
				Ranges: engine.RangeTable{
					"left_shoulder":  {Min: 40, Max: 180},
					"right_shoulder": {Min: 40, Max: 180},
					"left_elbow":     {Min: 35, Max: 180},
					"right_elbow":    {Min: 35, Max: 180},
				},
				RomThresholds: engine.RangeTable{
					"left_shoulder":  {Min: 50, Max: 170},
					"right_shoulder": {Min: 50, Max: 170},
				},
				PrimaryJoints: []string{
					"left_shoulder", "right_shoulder",
					"left_elbow", "right_elbow",
				},
			},
			ViewSide: {
				Ranges: engine.RangeTable{
					"left_shoulder": {Min: 0, Max: 160},
					"left_elbow":    {Min: 8, Max: 180},
					"left_hip":      {Min: 100, Max: 133},
				},
				RomThresholds: engine.RangeTable{
					"left_shoulder": {Min: 20, Max: 140},
					"left_elbow":    {Min: 30, Max: 160},
				},
				PrimaryJoints: []string{"left_shoulder", "left_elbow"},
			},
		},
	}
}
