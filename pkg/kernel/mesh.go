package kernel

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is an indexed triangle mesh. Faces index into Verts; a well-formed
// mesh is a closed, consistently outward-wound surface suitable for
// signed-volume integration. Meshes are ephemeral: each is created inside
// one analysis call, consumed by the boolean or the volume integration,
// and discarded.
type Mesh struct {
	Verts []v3.Vec
	Faces [][3]int
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Verts)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Faces) == 0
}

// BoundingBox returns the axis-aligned bounding box of the vertices.
// An empty mesh has a zero box.
func (m *Mesh) BoundingBox() (min, max v3.Vec) {
	if len(m.Verts) == 0 {
		return v3.Vec{}, v3.Vec{}
	}
	min, max = m.Verts[0], m.Verts[0]
	for _, v := range m.Verts[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	return min, max
}

// Centroid returns the mean of the vertex positions, or the origin for a
// mesh with no vertices.
func (m *Mesh) Centroid() v3.Vec {
	if len(m.Verts) == 0 {
		return v3.Vec{}
	}
	var sum v3.Vec
	for _, v := range m.Verts {
		sum = sum.Add(v)
	}
	return sum.DivScalar(float64(len(m.Verts)))
}

// SignedVolumeAbout integrates the signed volume of the mesh by the
// divergence theorem, summing dot(v0, cross(v1, v2))/6 over all triangles
// with vertices taken relative to the reference point o.
//
// For a closed surface the result is independent of o; for an open surface
// it is not, which IntersectionVolume exploits to detect broken boolean
// output.
func (m *Mesh) SignedVolumeAbout(o v3.Vec) float64 {
	var vol float64
	for _, f := range m.Faces {
		a := m.Verts[f[0]].Sub(o)
		b := m.Verts[f[1]].Sub(o)
		c := m.Verts[f[2]].Sub(o)
		vol += a.Dot(b.Cross(c))
	}
	return vol / 6.0
}

// Volume returns the unsigned enclosed volume of a closed mesh. The sign
// of the raw integral depends only on winding convention, not physical
// meaning, so the absolute value is taken.
func (m *Mesh) Volume() float64 {
	return math.Abs(m.SignedVolumeAbout(v3.Vec{}))
}
