package exercise

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jwojnar/cybercoach/internal/engine"
)

// File layout of a YAML exercise definition:
//
//	name: shoulder_press
//	min_rom: 100
//	tolerance: 20
//	views:
//	  front:
//	    primary_joints: [left_shoulder, right_shoulder]
//	    ranges:
//	      left_shoulder: {min: 40, max: 180}
//	    rom_thresholds:
//	      left_shoulder: {min: 50, max: 170}
type fileDefinition struct {
	Name      string              `yaml:"name"`
	MinROM    float64             `yaml:"min_rom"`
	Tolerance float64             `yaml:"tolerance"`
	Views     map[string]fileView `yaml:"views"`
}

type fileView struct {
	PrimaryJoints []string             `yaml:"primary_joints"`
	Ranges        map[string]fileRange `yaml:"ranges"`
	RomThresholds map[string]fileRange `yaml:"rom_thresholds"`
}

type fileRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Load reads and parses an exercise definition from the given YAML file
// path, then validates it.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading exercise file: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates an exercise definition from YAML bytes.
func Parse(data []byte) (*Definition, error) {
	var fd fileDefinition
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("parsing exercise YAML: %w", err)
	}

	def := &Definition{
		Name:      fd.Name,
		MinROM:    fd.MinROM,
		Tolerance: fd.Tolerance,
		Views:     make(map[string]ViewConfig, len(fd.Views)),
	}
	if def.Tolerance == 0 {
		def.Tolerance = engine.DefaultTolerance
	}

	for view, fv := range fd.Views {
		def.Views[view] = ViewConfig{
			PrimaryJoints: fv.PrimaryJoints,
			Ranges:        toRangeTable(fv.Ranges),
			RomThresholds: toRangeTable(fv.RomThresholds),
		}
	}

	if errs := Validate(def); len(errs) > 0 {
		return nil, fmt.Errorf("invalid exercise definition: %w", errs[0])
	}
	return def, nil
}

func toRangeTable(m map[string]fileRange) engine.RangeTable {
	table := make(engine.RangeTable, len(m))
	for joint, r := range m {
		table[joint] = engine.Range{Min: r.Min, Max: r.Max}
	}
	return table
}
