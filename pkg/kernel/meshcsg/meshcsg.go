// Package meshcsg implements the kernel.Kernel interface with an exact
// boolean intersection for convex triangulated solids. Every solid the
// analysis produces is a frustum, which is convex with planar facets, so
// the intersection boundary can be computed directly by clipping each
// solid's faces against the other's face half-spaces. No sampling or
// re-meshing is involved; the result is exact for the discretized solids.
package meshcsg

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/osseo/pkg/frustum"
	"github.com/chazu/osseo/pkg/kernel"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*Kernel)(nil)
var _ kernel.Solid = (*meshSolid)(nil)

// meshSolid wraps a triangle mesh to implement kernel.Solid.
type meshSolid struct {
	m *kernel.Mesh
}

// BoundingBox returns the axis-aligned bounding box.
func (s *meshSolid) BoundingBox() (min, max v3.Vec) {
	return s.m.BoundingBox()
}

// Kernel implements kernel.Kernel on explicit triangle meshes.
type Kernel struct {
	// Segments is the ring resolution used for frustum solids.
	Segments int
}

// New returns a Kernel at the shared default ring resolution.
func New() *Kernel {
	return &Kernel{Segments: frustum.DefaultSegments}
}

// unwrap extracts the underlying mesh from a kernel.Solid.
func unwrap(s kernel.Solid) *kernel.Mesh {
	return s.(*meshSolid).m
}

// Frustum builds a closed frustum mesh spanning base to apex.
func (k *Kernel) Frustum(base, apex v3.Vec, baseRadius, apexRadius float64) (kernel.Solid, error) {
	f := frustum.Frustum{
		Base:       base,
		Apex:       apex,
		BaseRadius: baseRadius,
		ApexRadius: apexRadius,
	}
	m, err := f.Mesh(k.Segments)
	if err != nil {
		return nil, err
	}
	return &meshSolid{m: m}, nil
}

// Intersection returns the boolean intersection of two convex solids.
// The result is empty when the solids do not overlap.
func (k *Kernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return &meshSolid{m: intersectConvex(unwrap(a), unwrap(b))}
}

// ToMesh returns the solid's mesh. The mesh is already the internal
// representation, so no conversion happens.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	return unwrap(s), nil
}
