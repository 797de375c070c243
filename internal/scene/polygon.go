package scene

import (
	"github.com/maralbahari/pcd-segmentation-interface/pkg/geom"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// PolygonTool collects one vertex per click and closes the loop on a
// double-click.
type PolygonTool struct {
	enabled  bool
	vertices []math.Vec2
	cursor   math.Vec2
	sink     toolSink
}

func newPolygonTool(sink toolSink) *PolygonTool {
	return &PolygonTool{sink: sink}
}

// Type returns ToolPolygon.
func (t *PolygonTool) Type() ToolType { return ToolPolygon }

// Enabled reports whether the tool accepts pointer input.
func (t *PolygonTool) Enabled() bool { return t.enabled }

// SetEnabled toggles the tool, discarding collected vertices.
func (t *PolygonTool) SetEnabled(enabled bool) {
	t.enabled = enabled
	if !enabled {
		t.vertices = nil
	}
}

// IsDrawing reports whether vertices have been collected.
func (t *PolygonTool) IsDrawing() bool { return len(t.vertices) > 0 }

// PointerDown appends a vertex; the first one begins the draw.
func (t *PolygonTool) PointerDown(p math.Vec2) {
	if !t.enabled {
		return
	}
	if len(t.vertices) == 0 {
		t.sink.begin()
	}
	t.vertices = append(t.vertices, p)
}

// PointerMoved tracks the cursor for the rubber-band edge.
func (t *PolygonTool) PointerMoved(p math.Vec2) {
	t.cursor = p
}

// PointerUp is a no-op; polygon vertices are committed on down.
func (t *PolygonTool) PointerUp(p math.Vec2) {}

// DoubleClick closes the loop when at least three vertices exist. The two
// clicks preceding the double-click event have already appended duplicate
// vertices at the same position; they are collapsed before closing.
func (t *PolygonTool) DoubleClick(p math.Vec2) {
	if !t.enabled || len(t.vertices) == 0 {
		return
	}

	verts := dedupTail(t.vertices)
	t.vertices = nil

	if len(verts) < 3 {
		t.sink.end(nil)
		return
	}

	shape := geom.Polygon(verts)
	t.sink.stamp(shape)
	t.sink.end(shape)
}

// Preview returns the collected vertices plus the rubber-band cursor vertex.
func (t *PolygonTool) Preview() []math.Vec2 {
	if len(t.vertices) == 0 {
		return nil
	}
	return append(append([]math.Vec2{}, t.vertices...), t.cursor)
}

// dedupTail removes trailing vertices that repeat their predecessor, which
// the clicks of a closing double-click leave behind.
func dedupTail(verts []math.Vec2) []math.Vec2 {
	out := append([]math.Vec2{}, verts...)
	for len(out) >= 2 && out[len(out)-1] == out[len(out)-2] {
		out = out[:len(out)-1]
	}
	return out
}
