package camera

import (
	"github.com/chewxy/math32"

	"github.com/maralbahari/pcd-segmentation-interface/internal/engine/picking"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// Projector projects world-space points into normalized device coordinates
// for the spatial queries behind drawn shapes. Matrices are recomputed only
// on Update; callers refresh at well-defined points (entering draw mode,
// camera changes) rather than every frame.
type Projector struct {
	width  float32
	height float32
	fovY   float32
	near   float32
	far    float32

	viewProj    math.Mat4
	invViewProj math.Mat4
}

// NewProjector creates a projector for the given viewport size.
func NewProjector(width, height int) *Projector {
	p := &Projector{
		fovY: math32.Pi / 4,
		near: 0.05,
		far:  5000.0,
	}
	p.SetViewport(width, height)
	p.viewProj = math.Identity()
	p.invViewProj = math.Identity()
	return p
}

// SetViewport updates the viewport dimensions. Degenerate sizes are clamped
// to one pixel.
func (p *Projector) SetViewport(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	p.width = float32(width)
	p.height = float32(height)
}

// Viewport returns the current viewport size in pixels.
func (p *Projector) Viewport() (width, height float32) {
	return p.width, p.height
}

// Update recomputes the view-projection matrices from the camera's current
// pose. Cached NDC projections taken before an Update are stale.
func (p *Projector) Update(cam *OrbitCamera) {
	proj := math.Perspective(p.fovY, p.width/p.height, p.near, p.far)
	p.viewProj = proj.Mul(cam.ViewMatrix())
	p.invViewProj = p.viewProj.Inverse()
}

// ViewProjection returns the current view-projection matrix.
func (p *Projector) ViewProjection() math.Mat4 { return p.viewProj }

// WorldToNDC projects a world-space point into NDC. The second return is
// false for points at or behind the camera plane, whose projection is
// meaningless.
func (p *Projector) WorldToNDC(v math.Vec3) (math.Vec2, bool) {
	clip := p.viewProj.MulVec4(math.Vec4{v.X, v.Y, v.Z, 1})
	if clip.W() <= 0 {
		return math.Vec2{}, false
	}
	ndc := clip.PerspectiveDivide()
	return math.Vec2{X: ndc.X, Y: ndc.Y}, true
}

// ProjectAll projects every point, marking invalid projections with NaN
// components. NaN coordinates fail every containment predicate, so marked
// points are naturally excluded from spatial queries.
func (p *Projector) ProjectAll(points []math.Vec3) []math.Vec2 {
	nan := math32.NaN()
	out := make([]math.Vec2, len(points))
	for i, v := range points {
		ndc, ok := p.WorldToNDC(v)
		if !ok {
			out[i] = math.Vec2{X: nan, Y: nan}
			continue
		}
		out[i] = ndc
	}
	return out
}

// PointerRay builds a world-space ray through the given pixel position.
func (p *Projector) PointerRay(x, y float32) picking.Ray {
	return picking.ScreenToRay(x, y, p.width, p.height, p.invViewProj)
}

// PixelToNDC converts a pixel position to NDC, flipping Y so NDC y grows
// upward.
func (p *Projector) PixelToNDC(x, y float32) math.Vec2 {
	return math.Vec2{
		X: 2*x/p.width - 1,
		Y: 1 - 2*y/p.height,
	}
}

// NDCRadius converts a brush radius in pixels to an NDC radius along the
// smaller viewport dimension.
func (p *Projector) NDCRadius(pixels float32) float32 {
	min := p.width
	if p.height < min {
		min = p.height
	}
	return 2 * pixels / min
}
