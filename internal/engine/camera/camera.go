// Package camera provides the orbit camera and the world-to-NDC projector
// used for spatial queries over drawn shapes.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// OrbitCamera orbits around a center point. While a drawing tool is active
// the scene clears Enabled so pointer drags reach the tool instead of the
// camera.
type OrbitCamera struct {
	Enabled bool

	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // vertical angle, radians
	Yaw      float32 // horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
	PanSensitivity  float32
}

// NewOrbitCamera creates an orbit camera with defaults suited to
// meter-scale point clouds.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Enabled:         true,
		Distance:        20.0,
		Pitch:           0.5,
		Yaw:             0.0,
		MinDistance:     0.5,
		MaxDistance:     2000.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.002,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * math32.Cos(c.Pitch) * math32.Sin(c.Yaw)
	y := c.Distance * math32.Sin(c.Pitch)
	z := c.Distance * math32.Cos(c.Pitch) * math32.Cos(c.Yaw)

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{Y: 1}
	return math.LookAt(c.Position(), c.Center, up)
}

// HandleDrag updates rotation from a pointer drag delta. No-op while the
// camera is disabled.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	if !c.Enabled {
		return
	}

	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity

	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// HandleZoom updates distance from a scroll wheel delta. No-op while the
// camera is disabled.
func (c *OrbitCamera) HandleZoom(delta float32) {
	if !c.Enabled {
		return
	}

	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandlePan shifts the orbit center in the camera's screen plane. Speed
// scales with distance so panning feels uniform at any zoom.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	if !c.Enabled {
		return
	}

	forward := c.Center.Sub(c.Position()).Normalize()
	right := forward.Cross(math.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	speed := c.Distance * c.PanSensitivity
	c.Center = c.Center.
		Add(right.Scale(-deltaX * speed)).
		Add(up.Scale(deltaY * speed))
}

// FitToBounds frames the given bounding box: centers on it and backs off
// far enough to see the whole extent.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)

	size := max.Sub(min).Length()
	if size <= 0 {
		size = 1
	}

	c.Distance = size * 1.2
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}

	c.Pitch = 0.6
	c.Yaw = 0.0
}
