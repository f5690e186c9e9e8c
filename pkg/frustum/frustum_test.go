package frustum

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ringFactor is the exact ratio between the volume of the n-gon
// discretized frustum and the analytic circular one: the ring polygon
// area is sin(d)/d of the disc area with d = 2π/n, and the prismatoid
// volume scales linearly with it.
func ringFactor(n int) float64 {
	d := 2 * math.Pi / float64(n)
	return math.Sin(d) / d
}

func TestMeshZeroHeight(t *testing.T) {
	f := Frustum{
		Base:       v3.Vec{X: 1, Y: 2, Z: 3},
		Apex:       v3.Vec{X: 1, Y: 2, Z: 3},
		BaseRadius: 2,
		ApexRadius: 2,
	}
	if _, err := f.Mesh(DefaultSegments); !errors.Is(err, ErrZeroHeight) {
		t.Fatalf("Mesh() error = %v, want ErrZeroHeight", err)
	}
}

func TestAlignmentZeroHeight(t *testing.T) {
	p := v3.Vec{X: -4, Y: 0, Z: 9}
	if _, err := Alignment(p, p); !errors.Is(err, ErrZeroHeight) {
		t.Fatalf("Alignment() error = %v, want ErrZeroHeight", err)
	}
}

func TestMeshCounts(t *testing.T) {
	tests := []struct {
		name      string
		segments  int
		wantVerts int
		wantFaces int
	}{
		{"default resolution", DefaultSegments, 2*DefaultSegments + 2, 4 * DefaultSegments},
		{"coarse", 16, 34, 64},
		{"below minimum falls back", 2, 2*DefaultSegments + 2, 4 * DefaultSegments},
	}
	f := Frustum{Apex: v3.Vec{Z: 10}, BaseRadius: 2, ApexRadius: 1}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := f.Mesh(tt.segments)
			if err != nil {
				t.Fatalf("Mesh() error = %v", err)
			}
			if got := m.VertexCount(); got != tt.wantVerts {
				t.Errorf("VertexCount() = %d, want %d", got, tt.wantVerts)
			}
			if got := m.TriangleCount(); got != tt.wantFaces {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.wantFaces)
			}
		})
	}
}

func TestMeshVolume(t *testing.T) {
	tests := []struct {
		name string
		f    Frustum
	}{
		{
			"cylinder along z",
			Frustum{Apex: v3.Vec{Z: 10}, BaseRadius: 2, ApexRadius: 2},
		},
		{
			"tapered along x",
			Frustum{Base: v3.Vec{X: -3}, Apex: v3.Vec{X: 5}, BaseRadius: 2, ApexRadius: 1},
		},
		{
			"cone on arbitrary axis",
			Frustum{Base: v3.Vec{X: 1, Y: 2, Z: 3}, Apex: v3.Vec{X: 4, Y: -1, Z: 7}, BaseRadius: 1.5, ApexRadius: 0},
		},
		{
			"offset from origin",
			Frustum{Base: v3.Vec{X: 100, Y: -50, Z: 20}, Apex: v3.Vec{X: 103, Y: -49, Z: 28}, BaseRadius: 2.5, ApexRadius: 2.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.f.Mesh(DefaultSegments)
			if err != nil {
				t.Fatalf("Mesh() error = %v", err)
			}
			want := tt.f.AnalyticVolume() * ringFactor(DefaultSegments)
			got := m.Volume()
			if relDiff(got, want) > 1e-9 {
				t.Errorf("Volume() = %.12g, want %.12g (discretized analytic)", got, want)
			}
			// And the discretization itself stays within 1% of the
			// analytic solid.
			if relDiff(got, tt.f.AnalyticVolume()) > 0.01 {
				t.Errorf("Volume() = %g, more than 1%% from analytic %g", got, tt.f.AnalyticVolume())
			}
		})
	}
}

// Outward-consistent winding makes the raw signed integral positive.
func TestMeshWindingOutward(t *testing.T) {
	f := Frustum{Base: v3.Vec{X: 2, Y: 2, Z: 2}, Apex: v3.Vec{X: 2, Y: 2, Z: 12}, BaseRadius: 2, ApexRadius: 1}
	m, err := f.Mesh(DefaultSegments)
	if err != nil {
		t.Fatalf("Mesh() error = %v", err)
	}
	if v := m.SignedVolumeAbout(v3.Vec{}); v <= 0 {
		t.Errorf("SignedVolumeAbout(origin) = %g, want > 0 for outward winding", v)
	}
}

// A closed mesh integrates to the same volume about any reference point.
func TestMeshVolumeTranslationInvariant(t *testing.T) {
	f := Frustum{Base: v3.Vec{X: 1, Y: -2, Z: 0}, Apex: v3.Vec{X: 3, Y: 4, Z: 9}, BaseRadius: 2, ApexRadius: 1.2}
	m, err := f.Mesh(DefaultSegments)
	if err != nil {
		t.Fatalf("Mesh() error = %v", err)
	}
	v0 := m.SignedVolumeAbout(v3.Vec{})
	vc := m.SignedVolumeAbout(m.Centroid())
	if relDiff(v0, vc) > 1e-9 {
		t.Errorf("signed volume depends on reference point: %g vs %g", v0, vc)
	}
}

// A straight-down axis exercises the anti-parallel rotation branch and
// must produce the same solid as the up-built one with base and apex
// swapped.
func TestMeshAntiParallelAxis(t *testing.T) {
	down := Frustum{Base: v3.Vec{Z: 10}, Apex: v3.Vec{}, BaseRadius: 2, ApexRadius: 1}
	up := Frustum{Base: v3.Vec{}, Apex: v3.Vec{Z: 10}, BaseRadius: 1, ApexRadius: 2}

	dm, err := down.Mesh(DefaultSegments)
	if err != nil {
		t.Fatalf("down Mesh() error = %v", err)
	}
	um, err := up.Mesh(DefaultSegments)
	if err != nil {
		t.Fatalf("up Mesh() error = %v", err)
	}
	if relDiff(dm.Volume(), um.Volume()) > 1e-9 {
		t.Errorf("down volume %g != up volume %g", dm.Volume(), um.Volume())
	}

	// Both orientations must span the same z range.
	dMin, dMax := dm.BoundingBox()
	if math.Abs(dMin.Z-0) > 1e-9 || math.Abs(dMax.Z-10) > 1e-9 {
		t.Errorf("down-built frustum spans z [%g, %g], want [0, 10]", dMin.Z, dMax.Z)
	}
}

func TestAlignmentMapsAxisEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		base, apex v3.Vec
	}{
		{"up", v3.Vec{}, v3.Vec{Z: 10}},
		{"down", v3.Vec{Z: 10}, v3.Vec{}},
		{"arbitrary", v3.Vec{X: 1, Y: 2, Z: 3}, v3.Vec{X: -4, Y: 0.5, Z: 11}},
		{"horizontal", v3.Vec{X: -2}, v3.Vec{X: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Alignment(tt.base, tt.apex)
			if err != nil {
				t.Fatalf("Alignment() error = %v", err)
			}
			h := tt.apex.Sub(tt.base).Length()
			gotApex := m.MulPosition(v3.Vec{Z: h / 2})
			gotBase := m.MulPosition(v3.Vec{Z: -h / 2})
			if !gotApex.Equals(tt.apex, 1e-9) {
				t.Errorf("local apex maps to %v, want %v", gotApex, tt.apex)
			}
			if !gotBase.Equals(tt.base, 1e-9) {
				t.Errorf("local base maps to %v, want %v", gotBase, tt.base)
			}
		})
	}
}

func TestHeightAndAnalyticVolume(t *testing.T) {
	f := Frustum{Base: v3.Vec{}, Apex: v3.Vec{Z: 10}, BaseRadius: 2, ApexRadius: 2}
	if got := f.Height(); math.Abs(got-10) > 1e-12 {
		t.Errorf("Height() = %g, want 10", got)
	}
	want := math.Pi * 4 * 10
	if got := f.AnalyticVolume(); math.Abs(got-want) > 1e-9 {
		t.Errorf("AnalyticVolume() = %g, want %g", got, want)
	}
}

func relDiff(a, b float64) float64 {
	if b == 0 {
		return math.Abs(a)
	}
	return math.Abs(a-b) / math.Abs(b)
}
