package scene

import (
	"github.com/maralbahari/pcd-segmentation-interface/pkg/geom"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// curvatureMinStep is the minimum NDC distance between recorded lasso
// vertices; closer samples are dropped to keep the polygon manageable.
const curvatureMinStep = 0.01

// CurvatureTool draws a freehand lasso that closes into a polygon on
// release.
type CurvatureTool struct {
	enabled  bool
	drawing  bool
	vertices []math.Vec2
	sink     toolSink
}

func newCurvatureTool(sink toolSink) *CurvatureTool {
	return &CurvatureTool{sink: sink}
}

// Type returns ToolCurvature.
func (t *CurvatureTool) Type() ToolType { return ToolCurvature }

// Enabled reports whether the tool accepts pointer input.
func (t *CurvatureTool) Enabled() bool { return t.enabled }

// SetEnabled toggles the tool, discarding any in-progress lasso.
func (t *CurvatureTool) SetEnabled(enabled bool) {
	t.enabled = enabled
	if !enabled {
		t.drawing = false
		t.vertices = nil
	}
}

// IsDrawing reports whether a lasso is in progress.
func (t *CurvatureTool) IsDrawing() bool { return t.drawing }

// PointerDown starts the lasso.
func (t *CurvatureTool) PointerDown(p math.Vec2) {
	if !t.enabled {
		return
	}
	t.drawing = true
	t.vertices = []math.Vec2{p}
	t.sink.begin()
}

// PointerMoved appends a vertex once the pointer has moved far enough from
// the last recorded one.
func (t *CurvatureTool) PointerMoved(p math.Vec2) {
	if !t.drawing {
		return
	}
	if p.Distance(t.vertices[len(t.vertices)-1]) >= curvatureMinStep {
		t.vertices = append(t.vertices, p)
	}
}

// PointerUp closes the lasso into a polygon, or discards it when too few
// vertices were captured to enclose anything.
func (t *CurvatureTool) PointerUp(p math.Vec2) {
	if !t.drawing {
		return
	}
	t.drawing = false

	verts := t.vertices
	t.vertices = nil

	if len(verts) < 3 {
		t.sink.end(nil)
		return
	}

	shape := geom.Polygon(verts)
	t.sink.stamp(shape)
	t.sink.end(shape)
}

// DoubleClick is a no-op for the lasso.
func (t *CurvatureTool) DoubleClick(p math.Vec2) {}

// Preview returns the lasso path drawn so far.
func (t *CurvatureTool) Preview() []math.Vec2 {
	if !t.drawing {
		return nil
	}
	return t.vertices
}
