package meshcsg

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/osseo/pkg/kernel"
)

// weldScale sets the clipping tolerance relative to the solids' extent.
const weldScale = 1e-9

// plane is a half-space: points p with n·p <= d are inside.
type plane struct {
	n v3.Vec
	d float64
}

// facePlanes derives the supporting half-space of every facet, with
// outward normals taken from the winding. Degenerate triangles (the
// collapsed quad halves of a zero-radius cone tip) contribute no plane.
func facePlanes(m *kernel.Mesh) []plane {
	planes := make([]plane, 0, len(m.Faces))
	for _, f := range m.Faces {
		v0 := m.Verts[f[0]]
		e1 := m.Verts[f[1]].Sub(v0)
		e2 := m.Verts[f[2]].Sub(v0)
		n := e1.Cross(e2)
		l := n.Length()
		if l == 0 {
			continue
		}
		n = n.DivScalar(l)
		planes = append(planes, plane{n: n, d: n.Dot(v0)})
	}
	return planes
}

// clipPolygon clips a convex polygon against one half-space
// (Sutherland–Hodgman). eps shifts the plane outward (positive, keeping
// on-plane points) or inward (negative, discarding them). Vertex order,
// and with it the outward winding, is preserved.
func clipPolygon(poly []v3.Vec, pl plane, eps float64) []v3.Vec {
	out := make([]v3.Vec, 0, len(poly)+2)
	for i := range poly {
		cur := poly[i]
		next := poly[(i+1)%len(poly)]
		dc := pl.n.Dot(cur) - pl.d
		dn := pl.n.Dot(next) - pl.d
		curIn := dc <= eps
		nextIn := dn <= eps
		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			t := dc / (dc - dn)
			out = append(out, cur.Add(next.Sub(cur).MulScalar(t)))
		}
	}
	return out
}

// clipFaces clips every facet of m against all planes, returning the
// surviving polygons.
func clipFaces(m *kernel.Mesh, planes []plane, eps float64) [][]v3.Vec {
	var polys [][]v3.Vec
	for _, f := range m.Faces {
		poly := []v3.Vec{m.Verts[f[0]], m.Verts[f[1]], m.Verts[f[2]]}
		for _, pl := range planes {
			poly = clipPolygon(poly, pl, eps)
			if len(poly) < 3 {
				break
			}
		}
		if len(poly) >= 3 {
			polys = append(polys, poly)
		}
	}
	return polys
}

// intersectConvex computes the boolean intersection of two convex closed
// meshes. The boundary of A∩B is the part of A's surface inside B plus
// the part of B's surface inside A, so each mesh's facets are clipped
// against the other's half-spaces and the survivors assembled into a new
// closed surface. B's facets are clipped strictly (negative eps) so that
// facets coplanar with A's boundary — identical solids are the common
// case in self-overlap checks — are counted once, from A's side only.
func intersectConvex(a, b *kernel.Mesh) *kernel.Mesh {
	planesA := facePlanes(a)
	planesB := facePlanes(b)
	// A solid needs at least four bounding half-spaces. Fewer means a
	// fully collapsed input (both radii zero), which encloses nothing
	// and must not let the other solid through unclipped.
	if len(planesA) < 4 || len(planesB) < 4 {
		return &kernel.Mesh{}
	}
	eps := weldEps(a, b)

	polys := clipFaces(a, planesB, eps)
	polys = append(polys, clipFaces(b, planesA, -eps)...)

	out := &kernel.Mesh{}
	for _, poly := range polys {
		base := len(out.Verts)
		out.Verts = append(out.Verts, poly...)
		for i := 1; i < len(poly)-1; i++ {
			out.Faces = append(out.Faces, [3]int{base, base + i, base + i + 1})
		}
	}
	return out
}

// weldEps returns the absolute clipping tolerance for a solid pair,
// scaled to the pair's combined extent.
func weldEps(a, b *kernel.Mesh) float64 {
	aMin, aMax := a.BoundingBox()
	bMin, bMax := b.BoundingBox()
	min := aMin.Min(bMin)
	max := aMax.Max(bMax)
	return weldScale * (max.Sub(min).Length() + 1.0)
}
