package kernel

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// closureTol is the relative tolerance on translation invariance of the
// signed volume. A closed mesh integrates to the same volume about any
// reference point; a gap from a degenerate boolean shows up as a
// disagreement far above float rounding.
const closureTol = 1e-6

// IntersectionVolume computes the volume of the boolean intersection of
// two solids. It is total over well-formed solids: disjoint solids,
// empty or topologically broken boolean output, and backend panics all
// yield 0 rather than an error, so the clinical report always renders.
// A genuine zero return therefore means "no usable overlap volume", and
// the caller distinguishes construction failures before ever getting here.
func IntersectionVolume(k Kernel, a, b Solid) (vol float64) {
	defer func() {
		// Thin overlaps and coplanar degeneracies can fault inside a
		// backend. Absorb as zero overlap.
		if recover() != nil {
			vol = 0
		}
	}()

	if !boxesOverlap(a, b) {
		return 0
	}

	m, err := k.ToMesh(k.Intersection(a, b))
	if err != nil || m.IsEmpty() {
		return 0
	}

	v0 := m.SignedVolumeAbout(v3.Vec{})
	vc := m.SignedVolumeAbout(m.Centroid())
	if math.Abs(v0-vc) > closureTol*math.Max(math.Abs(v0), 1.0) {
		// Not a closed surface: treat as zero overlap.
		return 0
	}
	return math.Abs(v0)
}

// boxesOverlap reports whether the axis-aligned bounding boxes of two
// solids intersect.
func boxesOverlap(a, b Solid) bool {
	aMin, aMax := a.BoundingBox()
	bMin, bMax := b.BoundingBox()
	if aMax.X < bMin.X || bMax.X < aMin.X {
		return false
	}
	if aMax.Y < bMin.Y || bMax.Y < aMin.Y {
		return false
	}
	if aMax.Z < bMin.Z || bMax.Z < aMin.Z {
		return false
	}
	return true
}
