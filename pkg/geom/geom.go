// Package geom provides the 2D shapes drawn over the viewport and the
// containment predicates used to capture projected points. All coordinates
// are normalized device coordinates in [-1,1] x [-1,1].
package geom

import (
	"github.com/chewxy/math32"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// ShapeKind discriminates the concrete shape behind the Shape interface.
type ShapeKind int

// Shape kinds.
const (
	KindCircle ShapeKind = iota
	KindPolygon
)

// String returns a human-readable kind name.
func (k ShapeKind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is a closed 2D region in NDC space that can test point containment.
type Shape interface {
	Kind() ShapeKind
	Contains(p math.Vec2) bool
}

// Circle is a disc defined by center and radius in NDC.
type Circle struct {
	Center math.Vec2
	Radius float32
}

// Kind returns KindCircle.
func (c Circle) Kind() ShapeKind { return KindCircle }

// Contains reports whether p lies strictly inside the circle.
// Points exactly on the boundary are excluded.
func (c Circle) Contains(p math.Vec2) bool {
	return p.DistanceSquared(c.Center) < c.Radius*c.Radius
}

// Polygon is an ordered vertex loop in NDC. The loop is implicitly closed:
// the last vertex connects back to the first.
type Polygon []math.Vec2

// Kind returns KindPolygon.
func (poly Polygon) Kind() ShapeKind { return KindPolygon }

// Contains reports whether p is inside the polygon per the winding-number
// test: +1 for each edge crossing the point's horizontal ray upward with p
// strictly left of it, -1 for each downward crossing with p strictly right,
// inside iff the total is non-zero. A point lying exactly on any edge is
// reported as outside, even where the winding number would be non-zero.
func (poly Polygon) Contains(p math.Vec2) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	winding := 0
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]

		cross := edgeCross(a, b, p)
		if cross == 0 && inSegmentSpan(a, b, p) {
			// Exactly on this edge
			return false
		}

		if a.Y <= p.Y {
			if b.Y > p.Y && cross > 0 { // upward crossing
				winding++
			}
		} else {
			if b.Y <= p.Y && cross < 0 { // downward crossing
				winding--
			}
		}
	}

	return winding != 0
}

// BoxPolygon builds a 4-vertex counter-clockwise polygon from two opposite
// corners of an axis-aligned box. The corners may be given in any order.
func BoxPolygon(a, b math.Vec2) Polygon {
	minX := math32.Min(a.X, b.X)
	maxX := math32.Max(a.X, b.X)
	minY := math32.Min(a.Y, b.Y)
	maxY := math32.Max(a.Y, b.Y)

	return Polygon{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}
}

// edgeCross is the signed cross term (b-a) x (p-a): positive when p lies to
// the left of the directed edge a->b, zero when collinear.
func edgeCross(a, b, p math.Vec2) float32 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

// inSegmentSpan reports whether p falls within the axis-aligned span of the
// segment ab. Combined with a zero cross term this identifies points lying
// exactly on the segment.
func inSegmentSpan(a, b, p math.Vec2) bool {
	return p.X >= math32.Min(a.X, b.X) && p.X <= math32.Max(a.X, b.X) &&
		p.Y >= math32.Min(a.Y, b.Y) && p.Y <= math32.Max(a.Y, b.Y)
}
