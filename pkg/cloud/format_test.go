package cloud

import (
	"testing"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

func TestFormatRoundTrip(t *testing.T) {
	vectors := []math.Vec3{
		{X: 1, Y: 2, Z: 3},
		{X: -4.5, Y: 0, Z: 9.25},
		{X: 0, Y: 0, Z: 0},
	}

	for _, f := range Formats {
		for _, v := range vectors {
			if got := f.ToRenderer(f.ToProject(v)); got != v {
				t.Errorf("%s: ToRenderer(ToProject(%v)) = %v, want %v", f.Name, v, got, v)
			}
		}

		p := [3]float32{7, 8, 9}
		if got := f.ToProject(f.ToRenderer(p)); got != p {
			t.Errorf("%s: ToProject(ToRenderer(%v)) = %v, want %v", f.Name, p, got, p)
		}
	}
}

func TestFormatPermutations(t *testing.T) {
	// Each format must map renderer axes onto a permutation of {0,1,2}.
	for _, f := range Formats {
		seen := [3]bool{}
		for _, idx := range []int{f.X, f.Y, f.Z} {
			if idx < 0 || idx > 2 {
				t.Fatalf("%s: axis index %d out of range", f.Name, idx)
			}
			if seen[idx] {
				t.Errorf("%s: axis index %d repeated", f.Name, idx)
			}
			seen[idx] = true
		}
	}
}

func TestFormatByName(t *testing.T) {
	if got := FormatByName("zxy"); got != FormatZXY {
		t.Errorf("FormatByName(zxy) = %v, want %v", got, FormatZXY)
	}

	// Unknown names fall back to xyz.
	if got := FormatByName("nope"); got != FormatXYZ {
		t.Errorf("FormatByName(nope) = %v, want %v", got, FormatXYZ)
	}
}

func TestFormatAxisMapping(t *testing.T) {
	// In zxy the renderer x comes from project axis 2, y from 0, z from 1.
	v := FormatZXY.ToRenderer([3]float32{10, 20, 30})
	want := math.Vec3{X: 30, Y: 10, Z: 20}
	if v != want {
		t.Errorf("FormatZXY.ToRenderer() = %v, want %v", v, want)
	}
}
