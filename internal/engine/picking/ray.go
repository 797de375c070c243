// Package picking provides ray casting primitives and a generic hover/select
// engine over pickable objects.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// Ray is a ray in world space.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // normalized
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// AABBFromPoints returns the bounding box of a point set, padded on every
// side so near-planar selections still present a pickable volume.
func AABBFromPoints(points []math.Vec3, padding float32) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]
	for _, p := range points[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}

	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	return AABB{Min: min.Sub(pad), Max: max.Add(pad)}
}

// ScreenToRay converts pixel coordinates into a world-space ray.
// invViewProj is the inverse of the camera's view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Pixel coords to NDC, flipping Y
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH

	near := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, -1.0, 1.0}).PerspectiveDivide()
	far := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, 1.0, 1.0}).PerspectiveDivide()

	return Ray{
		Origin:    near,
		Direction: far.Sub(near).Normalize(),
	}
}

// IntersectAABB tests the ray against a box using the slab method.
// Returns the entry distance, or the exit distance when the ray starts
// inside the box.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	bmin := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	bmax := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] != 0 {
			t1 := (bmin[axis] - origin[axis]) / dir[axis]
			t2 := (bmax[axis] - origin[axis]) / dir[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if origin[axis] < bmin[axis] || origin[axis] > bmax[axis] {
			return 0, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
