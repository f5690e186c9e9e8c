// Package geom provides the scalar and vector math used by the implant
// analysis: deviation vectors and distances between marker points, the
// angle between implant axes, and the analytic truncated-cone volume.
// All positions and lengths are in millimeters.
package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// VectorBetween returns the vector from p1 to p2.
func VectorBetween(p1, p2 v3.Vec) v3.Vec {
	return p2.Sub(p1)
}

// Distance returns the Euclidean distance between two points.
func Distance(p1, p2 v3.Vec) float64 {
	return VectorBetween(p1, p2).Length()
}

// AngleBetweenDegrees returns the angle between two vectors in degrees,
// in the range [0, 180].
//
// If either vector has zero length the angle is 0.0 by policy rather than
// an error: a zero-length axis signals an upstream measurement problem
// that the caller is responsible for flagging, and the analysis report
// must still render.
func AngleBetweenDegrees(v1, v2 v3.Vec) float64 {
	n1 := v1.Length()
	n2 := v2.Length()
	if n1 == 0 || n2 == 0 {
		return 0.0
	}
	cos := clamp(v1.Dot(v2)/(n1*n2), -1.0, 1.0)
	return sdf.RtoD(math.Acos(cos))
}

// FrustumVolume returns the volume of a truncated cone with the given end
// radii and height: (π·h/3)·(rTop² + rTop·rBottom + rBottom²).
//
// This is the analytic reference volume used as the overlap-percentage
// denominator. The overlap numerator always comes from the mesh boolean,
// so the two solids' real geometric overlap is measured, not just
// volumetric coincidence.
func FrustumVolume(rTop, rBottom, h float64) float64 {
	return (math.Pi * h / 3.0) * (rTop*rTop + rTop*rBottom + rBottom*rBottom)
}

// clamp limits x to [lo, hi]. Guards acos against dot products that land
// just outside [-1, 1] from rounding.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
