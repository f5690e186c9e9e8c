// Package slots holds the host-side input records: an ordered list of
// implant slots, each naming the four marker points and four radii for
// one planned/real pair. Slots are plain data decoded from a YAML file;
// the geometry engine never sees them, only the Input each one yields.
package slots

import (
	"fmt"
	"os"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"gopkg.in/yaml.v3"

	"github.com/chazu/osseo/pkg/analysis"
	"github.com/chazu/osseo/pkg/geom"
)

// DefaultRadius is used for any radius left out of a slot record (mm).
const DefaultRadius = 2.0

// MinSeparation is the advisory lower bound on base/apex distance (mm).
// Closer markers produce a warning, never an error: a warned, completed
// report is more useful than a blocked one.
const MinSeparation = 0.1

// originTol is the tolerance for the "markers at origin" sanity warning.
const originTol = 0.1

// Point is a 3D marker position as written in a slot file.
type Point [3]float64

// Vec converts a point to the engine's vector type.
func (p Point) Vec() v3.Vec {
	return v3.Vec{X: p[0], Y: p[1], Z: p[2]}
}

// Slot is one implant pair record. The marker points are pointers so a
// missing field is detectable and reported, rather than silently read as
// the origin.
type Slot struct {
	Name string `yaml:"name"`

	PlannedBase *Point `yaml:"planned_base"`
	PlannedApex *Point `yaml:"planned_apex"`
	RealBase    *Point `yaml:"real_base"`
	RealApex    *Point `yaml:"real_apex"`

	PlannedBaseRadius *float64 `yaml:"planned_base_radius"`
	PlannedApexRadius *float64 `yaml:"planned_apex_radius"`
	RealBaseRadius    *float64 `yaml:"real_base_radius"`
	RealApexRadius    *float64 `yaml:"real_apex_radius"`
}

// file is the top-level YAML document.
type file struct {
	Implants []Slot `yaml:"implants"`
}

// Load reads an ordered slot list from a YAML file.
func Load(path string) ([]Slot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes an ordered slot list from YAML bytes.
func Parse(data []byte) ([]Slot, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("slots: %w", err)
	}
	if len(f.Implants) == 0 {
		return nil, fmt.Errorf("slots: no implants defined")
	}
	return f.Implants, nil
}

// Input converts the slot to an engine input, or reports which marker
// points are missing.
func (s *Slot) Input() (analysis.Input, error) {
	var missing []string
	for _, m := range []struct {
		name string
		p    *Point
	}{
		{"planned_base", s.PlannedBase},
		{"planned_apex", s.PlannedApex},
		{"real_base", s.RealBase},
		{"real_apex", s.RealApex},
	} {
		if m.p == nil {
			missing = append(missing, m.name)
		}
	}
	if len(missing) > 0 {
		return analysis.Input{}, fmt.Errorf("missing marker points: %v", missing)
	}

	return analysis.Input{
		PlannedBase:       s.PlannedBase.Vec(),
		PlannedApex:       s.PlannedApex.Vec(),
		RealBase:          s.RealBase.Vec(),
		RealApex:          s.RealApex.Vec(),
		PlannedBaseRadius: radiusOrDefault(s.PlannedBaseRadius),
		PlannedApexRadius: radiusOrDefault(s.PlannedApexRadius),
		RealBaseRadius:    radiusOrDefault(s.RealBaseRadius),
		RealApexRadius:    radiusOrDefault(s.RealApexRadius),
	}, nil
}

// Warnings runs the advisory sanity checks on a complete slot. Analysis
// proceeds regardless of what they find.
func (s *Slot) Warnings() []string {
	in, err := s.Input()
	if err != nil {
		return nil
	}

	var warnings []string
	if d := geom.Distance(in.PlannedBase, in.PlannedApex); d < MinSeparation {
		warnings = append(warnings,
			fmt.Sprintf("planned base and apex are very close (%.3f mm apart)", d))
	}
	if d := geom.Distance(in.RealBase, in.RealApex); d < MinSeparation {
		warnings = append(warnings,
			fmt.Sprintf("real base and apex are very close (%.3f mm apart)", d))
	}
	if nearOrigin(in.PlannedBase) && nearOrigin(in.PlannedApex) {
		warnings = append(warnings,
			"planned markers appear to be at the origin, check marker selection")
	}
	return warnings
}

func radiusOrDefault(r *float64) float64 {
	if r == nil {
		return DefaultRadius
	}
	return *r
}

func nearOrigin(p v3.Vec) bool {
	return p.Equals(v3.Vec{}, originTol)
}
