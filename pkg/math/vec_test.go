package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec2Cross(t *testing.T) {
	a := Vec2{1, 0}
	b := Vec2{0, 1}
	if got := a.Cross(b); got != 1 {
		t.Errorf("Vec2.Cross() = %v, want 1", got)
	}
	if got := b.Cross(a); got != -1 {
		t.Errorf("Vec2.Cross() reversed = %v, want -1", got)
	}
	// Parallel vectors have zero cross product
	if got := a.Cross(Vec2{2, 0}); got != 0 {
		t.Errorf("Vec2.Cross() parallel = %v, want 0", got)
	}
}

func TestVec2DistanceSquared(t *testing.T) {
	a := Vec2{1, 1}
	b := Vec2{4, 5}
	got := a.DistanceSquared(b)
	want := float32(25)
	if got != want {
		t.Errorf("Vec2.DistanceSquared() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, 2, -4}
	if got, want := a.Min(b), (Vec3{1, 2, -4}); got != want {
		t.Errorf("Vec3.Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{3, 5, -2}); got != want {
		t.Errorf("Vec3.Max() = %v, want %v", got, want)
	}
}

func TestVec4PerspectiveDivide(t *testing.T) {
	v := Vec4{2, 4, 6, 2}
	got := v.PerspectiveDivide()
	want := Vec3{1, 2, 3}
	if got != want {
		t.Errorf("Vec4.PerspectiveDivide() = %v, want %v", got, want)
	}

	// Zero W leaves components untouched
	z := Vec4{1, 2, 3, 0}
	if got := z.PerspectiveDivide(); got != (Vec3{1, 2, 3}) {
		t.Errorf("Vec4.PerspectiveDivide() with w=0 = %v, want {1 2 3}", got)
	}
}
