// Package frustum builds truncated-cone solids from two endpoints and two
// radii. The realized form is a closed triangulated surface: a vertex ring
// at each end, fan-triangulated caps, and side quads split into triangles,
// all wound outward. Every frustum in the system shares one ring
// resolution so intersection comparisons are consistent.
package frustum

import (
	"errors"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/osseo/pkg/geom"
	"github.com/chazu/osseo/pkg/kernel"
)

// DefaultSegments is the ring resolution used for every frustum built in
// the system. It matches the 64-vertex cone primitive the clinical
// reference data was produced with.
const DefaultSegments = 64

// alignCosTol decides, in cosine space, when an axis counts as parallel
// or anti-parallel to the +Z reference axis. It selects which branch of
// the rotation derivation fires and must stay at 1e-6 to reproduce
// reference output at near-vertical axes.
const alignCosTol = 1e-6

// ErrZeroHeight is returned when a frustum's base and apex coincide.
// A zero-height solid is invalid and must never reach volume math.
var ErrZeroHeight = errors.New("frustum: base and apex coincide")

// Frustum is a truncated-cone solid defined by its axis endpoints and the
// radius at each. All dimensions are millimeters.
type Frustum struct {
	Base       v3.Vec
	Apex       v3.Vec
	BaseRadius float64
	ApexRadius float64
}

// Height returns the length of the base→apex axis.
func (f Frustum) Height() float64 {
	return geom.Distance(f.Base, f.Apex)
}

// AnalyticVolume returns the closed-form truncated-cone volume.
func (f Frustum) AnalyticVolume() float64 {
	return geom.FrustumVolume(f.ApexRadius, f.BaseRadius, f.Height())
}

// Alignment returns the rigid transform that carries the canonical
// Z-aligned frustum (centered at the origin) onto the base→apex axis:
// a rotation mapping +Z to the axis direction followed by a translation
// to the axis midpoint. Fails with ErrZeroHeight when the endpoints
// coincide.
func Alignment(base, apex v3.Vec) (sdf.M44, error) {
	dir := apex.Sub(base)
	h := dir.Length()
	if h == 0 {
		return sdf.Identity3d(), ErrZeroHeight
	}
	mid := base.Add(apex).MulScalar(0.5)
	return sdf.Translate3d(mid).Mul(rotationTo(dir.DivScalar(h))), nil
}

// rotationTo returns the rotation carrying the +Z reference axis onto the
// unit direction u.
func rotationTo(u v3.Vec) sdf.M44 {
	up := v3.Vec{X: 0, Y: 0, Z: 1}
	cos := up.Dot(u)
	switch {
	case cos >= 1.0-alignCosTol:
		// Already aligned.
		return sdf.Identity3d()
	case cos <= -1.0+alignCosTol:
		// Anti-parallel: rotate 180° about +X, a fixed perpendicular,
		// for determinism.
		return sdf.Rotate3d(v3.Vec{X: 1, Y: 0, Z: 0}, math.Pi)
	default:
		axis := up.Cross(u).Normalize()
		angle := math.Acos(math.Max(-1.0, math.Min(1.0, cos)))
		return sdf.Rotate3d(axis, angle)
	}
}

// Mesh realizes the frustum as a closed triangle mesh with the given ring
// resolution. Segment counts below 3 fall back to DefaultSegments.
// Fails with ErrZeroHeight when base and apex coincide.
//
// The canonical solid is built along +Z with the base ring at -h/2 and the
// apex ring at +h/2, then rotated and translated onto the world axis.
func (f Frustum) Mesh(segments int) (*kernel.Mesh, error) {
	if segments < 3 {
		segments = DefaultSegments
	}

	m, err := Alignment(f.Base, f.Apex)
	if err != nil {
		return nil, err
	}
	h := f.Height()

	n := segments
	verts := make([]v3.Vec, 0, 2*n+2)
	for i := 0; i < n; i++ {
		theta := 2.0 * math.Pi * float64(i) / float64(n)
		c, s := math.Cos(theta), math.Sin(theta)
		verts = append(verts, v3.Vec{X: f.BaseRadius * c, Y: f.BaseRadius * s, Z: -h / 2})
	}
	for i := 0; i < n; i++ {
		theta := 2.0 * math.Pi * float64(i) / float64(n)
		c, s := math.Cos(theta), math.Sin(theta)
		verts = append(verts, v3.Vec{X: f.ApexRadius * c, Y: f.ApexRadius * s, Z: h / 2})
	}
	baseCenter := 2 * n
	apexCenter := 2*n + 1
	verts = append(verts, v3.Vec{X: 0, Y: 0, Z: -h / 2})
	verts = append(verts, v3.Vec{X: 0, Y: 0, Z: h / 2})

	faces := make([][3]int, 0, 4*n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		// Base cap, outward normal -Z.
		faces = append(faces, [3]int{baseCenter, j, i})
		// Apex cap, outward normal +Z.
		faces = append(faces, [3]int{apexCenter, n + i, n + j})
		// Side quad split into two triangles, outward radial normal.
		faces = append(faces, [3]int{i, j, n + j})
		faces = append(faces, [3]int{i, n + j, n + i})
	}

	for i, v := range verts {
		verts[i] = m.MulPosition(v)
	}

	return &kernel.Mesh{Verts: verts, Faces: faces}, nil
}
