// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Solids are signed
// distance fields and meshing goes through marching cubes, so volumes
// from this backend are approximations bounded by the cell resolution.
// It serves as an independent cross-check on the meshcsg backend.
package sdfx

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/osseo/pkg/frustum"
	"github.com/chazu/osseo/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 120

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max v3.Vec) {
	bb := s.s.BoundingBox()
	return bb.Min, bb.Max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Frustum builds a truncated cone spanning base to apex. sdf.Cone3D is
// centered at the origin along +Z, so the same alignment transform the
// mesh builder uses carries it onto the world axis.
func (k *SdfxKernel) Frustum(base, apex v3.Vec, baseRadius, apexRadius float64) (kernel.Solid, error) {
	m, err := frustum.Alignment(base, apex)
	if err != nil {
		return nil, err
	}
	h := apex.Sub(base).Length()
	s, err := sdf.Cone3D(h, baseRadius, apexRadius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: Cone3D: %w", err)
	}
	return wrap(sdf.Transform3D(s, m)), nil
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(defaultMeshCells)
	triangles := render.ToTriangles(sdf3, renderer)

	mesh := &kernel.Mesh{
		Verts: make([]v3.Vec, 0, len(triangles)*3),
		Faces: make([][3]int, 0, len(triangles)),
	}
	for i, tri := range triangles {
		mesh.Verts = append(mesh.Verts, tri[0], tri[1], tri[2])
		mesh.Faces = append(mesh.Faces, [3]int{i * 3, i*3 + 1, i*3 + 2})
	}
	return mesh, nil
}
