// Package analysis produces the deviation and overlap report for one
// planned/real implant pair. It is the only consumer of the geometry
// stack: vector math for the deviations, a geometry kernel for the
// overlap volume, and the analytic frustum volume as the percentage
// denominator. Every call is self-contained; all geometry it creates is
// discarded when the call returns.
package analysis

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/osseo/pkg/geom"
	"github.com/chazu/osseo/pkg/kernel"
	"github.com/chazu/osseo/pkg/kernel/meshcsg"
)

// Input holds one implant pair: planned and real axis endpoints plus the
// radius at each end of each solid. Millimeters throughout.
type Input struct {
	PlannedBase v3.Vec
	PlannedApex v3.Vec
	RealBase    v3.Vec
	RealApex    v3.Vec

	PlannedApexRadius float64
	PlannedBaseRadius float64
	RealApexRadius    float64
	RealBaseRadius    float64
}

// Report is the full deviation/overlap record for one implant pair.
// Immutable once produced.
type Report struct {
	BaseDeviation v3.Vec
	BaseDistance  float64
	ApexDeviation v3.Vec
	ApexDistance  float64

	AngularDeviationDegrees float64

	OverlapVolume  float64 // mm³, from the mesh boolean
	OverlapPercent float64 // of the analytic planned volume
}

// String renders the report as the fixed clinical text block.
func (r *Report) String() string {
	return fmt.Sprintf(
		"Base deviation vector: (%.3f, %.3f, %.3f) mm\n"+
			"Base deviation distance: %.3f mm\n"+
			"Apex deviation vector: (%.3f, %.3f, %.3f) mm\n"+
			"Apex deviation distance: %.3f mm\n"+
			"Angular deviation: %.2f°\n"+
			"Overlap volume: %.2f mm³\n"+
			"Overlap percentage: %.2f %%",
		r.BaseDeviation.X, r.BaseDeviation.Y, r.BaseDeviation.Z,
		r.BaseDistance,
		r.ApexDeviation.X, r.ApexDeviation.Y, r.ApexDeviation.Z,
		r.ApexDistance,
		r.AngularDeviationDegrees,
		r.OverlapVolume,
		r.OverlapPercent,
	)
}

// InvalidGeometryError reports that one of the solids could not be
// constructed. It is distinct from a genuine zero-volume overlap, which
// yields a normal report: a failed build must never read as 0 % overlap.
type InvalidGeometryError struct {
	Solid string // "planned" or "real"
	Err   error
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid %s implant geometry: %v", e.Solid, e.Err)
}

func (e *InvalidGeometryError) Unwrap() error {
	return e.Err
}

// Analyzer computes deviation/overlap reports against a geometry kernel.
// It holds no mutable state, so one Analyzer may serve concurrent batch
// analyses.
type Analyzer struct {
	Kernel kernel.Kernel
}

// New returns an Analyzer on the default exact mesh-boolean kernel.
func New() *Analyzer {
	return &Analyzer{Kernel: meshcsg.New()}
}

// Analyze produces the report for one implant pair, or an
// *InvalidGeometryError when either frustum cannot be built.
func (a *Analyzer) Analyze(in Input) (*Report, error) {
	r := &Report{
		BaseDeviation: geom.VectorBetween(in.PlannedBase, in.RealBase),
		ApexDeviation: geom.VectorBetween(in.PlannedApex, in.RealApex),
	}
	r.BaseDistance = r.BaseDeviation.Length()
	r.ApexDistance = r.ApexDeviation.Length()
	r.AngularDeviationDegrees = geom.AngleBetweenDegrees(
		geom.VectorBetween(in.PlannedBase, in.PlannedApex),
		geom.VectorBetween(in.RealBase, in.RealApex),
	)

	planned, err := a.Kernel.Frustum(in.PlannedBase, in.PlannedApex, in.PlannedBaseRadius, in.PlannedApexRadius)
	if err != nil {
		return nil, &InvalidGeometryError{Solid: "planned", Err: err}
	}
	placed, err := a.Kernel.Frustum(in.RealBase, in.RealApex, in.RealBaseRadius, in.RealApexRadius)
	if err != nil {
		return nil, &InvalidGeometryError{Solid: "real", Err: err}
	}

	r.OverlapVolume = kernel.IntersectionVolume(a.Kernel, planned, placed)

	plannedVol := geom.FrustumVolume(
		in.PlannedApexRadius, in.PlannedBaseRadius,
		geom.Distance(in.PlannedBase, in.PlannedApex),
	)
	if plannedVol > 0 {
		r.OverlapPercent = 100.0 * r.OverlapVolume / plannedVol
	}

	return r, nil
}
