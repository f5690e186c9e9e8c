// Package kernel defines the abstract geometry kernel interface for the
// implant overlap computation. Implementations (meshcsg, sdfx) provide
// frustum solids and boolean intersection behind this interface, so the
// boolean engine can be swapped without changing the analysis layer.
package kernel

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max v3.Vec)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Frustum builds a truncated-cone solid spanning base to apex with
	// the given end radii. It fails if base and apex coincide.
	Frustum(base, apex v3.Vec, baseRadius, apexRadius float64) (Solid, error)

	// Intersection returns the boolean intersection of two solids,
	// possibly empty if the solids do not overlap.
	Intersection(a, b Solid) Solid

	// ToMesh realizes a solid as a closed triangle mesh.
	ToMesh(s Solid) (*Mesh, error)
}
