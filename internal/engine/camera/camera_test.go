package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

func TestOrbitCameraPitchClamp(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	if c.Pitch != c.MaxPitch {
		t.Errorf("Pitch = %v, want clamped to %v", c.Pitch, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.Pitch != c.MinPitch {
		t.Errorf("Pitch = %v, want clamped to %v", c.Pitch, c.MinPitch)
	}
}

func TestOrbitCameraZoomClamp(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleZoom(1e9)
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want clamped to %v", c.Distance, c.MinDistance)
	}
	c.HandleZoom(-1e9)
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %v, want clamped to %v", c.Distance, c.MaxDistance)
	}
}

func TestOrbitCameraDisabled(t *testing.T) {
	c := NewOrbitCamera()
	c.Enabled = false

	yaw, dist, center := c.Yaw, c.Distance, c.Center
	c.HandleDrag(100, 100)
	c.HandleZoom(10)
	c.HandlePan(50, 50)

	if c.Yaw != yaw || c.Distance != dist || c.Center != center {
		t.Error("disabled camera should ignore pointer input")
	}
}

func TestOrbitCameraFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(math.Vec3{X: -2, Y: -2, Z: -2}, math.Vec3{X: 2, Y: 2, Z: 2})

	if c.Center != (math.Vec3{}) {
		t.Errorf("Center = %v, want origin", c.Center)
	}
	if c.Distance <= 0 {
		t.Errorf("Distance = %v, want positive", c.Distance)
	}
}

func TestProjectorCenterProjection(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}

	p := NewProjector(800, 600)
	p.Update(c)

	// The orbit center lies on the view axis, so it projects to the NDC
	// origin.
	ndc, ok := p.WorldToNDC(c.Center)
	if !ok {
		t.Fatal("orbit center should project")
	}
	if math32.Abs(ndc.X) > 1e-4 || math32.Abs(ndc.Y) > 1e-4 {
		t.Errorf("center NDC = %v, want ~(0,0)", ndc)
	}
}

func TestProjectorBehindCamera(t *testing.T) {
	c := NewOrbitCamera()
	p := NewProjector(800, 600)
	p.Update(c)

	// A point behind the camera position along the view axis.
	behind := c.Position().Add(c.Position().Sub(c.Center).Normalize().Scale(10))
	if _, ok := p.WorldToNDC(behind); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestProjectorProjectAllMarksInvalid(t *testing.T) {
	c := NewOrbitCamera()
	p := NewProjector(800, 600)
	p.Update(c)

	behind := c.Position().Add(c.Position().Sub(c.Center).Normalize().Scale(10))
	ndc := p.ProjectAll([]math.Vec3{c.Center, behind})

	if len(ndc) != 2 {
		t.Fatalf("ProjectAll returned %d entries, want 2", len(ndc))
	}
	if math32.IsNaN(ndc[0].X) {
		t.Error("visible point should have a valid projection")
	}
	if !math32.IsNaN(ndc[1].X) || !math32.IsNaN(ndc[1].Y) {
		t.Error("behind-camera point should be marked with NaN")
	}
}

func TestProjectorPixelToNDC(t *testing.T) {
	p := NewProjector(400, 300)

	got := p.PixelToNDC(200, 150)
	if got != (math.Vec2{}) {
		t.Errorf("PixelToNDC(center) = %v, want (0,0)", got)
	}

	got = p.PixelToNDC(0, 0)
	if got != (math.Vec2{X: -1, Y: 1}) {
		t.Errorf("PixelToNDC(0,0) = %v, want (-1,1)", got)
	}
}

func TestProjectorRayHitsCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 5, Y: -1, Z: 2}
	p := NewProjector(640, 480)
	p.Update(c)

	// A ray through the viewport center passes through the orbit center.
	ray := p.PointerRay(320, 240)
	toCenter := c.Center.Sub(ray.Origin).Normalize()
	if toCenter.Dot(ray.Direction) < 0.999 {
		t.Errorf("center ray direction %v does not point at orbit center (dot %v)",
			ray.Direction, toCenter.Dot(ray.Direction))
	}
}
