package scene

import (
	"github.com/chewxy/math32"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/geom"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// minBoxExtent is the smallest NDC side length a released box may have;
// anything smaller is treated as an accidental click and discarded.
const minBoxExtent = 1e-3

// BoxTool drags out an axis-aligned rectangle from two opposite corners.
type BoxTool struct {
	enabled bool
	drawing bool
	anchor  math.Vec2
	current math.Vec2
	sink    toolSink
}

func newBoxTool(sink toolSink) *BoxTool {
	return &BoxTool{sink: sink}
}

// Type returns ToolBox.
func (t *BoxTool) Type() ToolType { return ToolBox }

// Enabled reports whether the tool accepts pointer input.
func (t *BoxTool) Enabled() bool { return t.enabled }

// SetEnabled toggles the tool, discarding any in-progress box.
func (t *BoxTool) SetEnabled(enabled bool) {
	t.enabled = enabled
	if !enabled {
		t.drawing = false
	}
}

// IsDrawing reports whether a box is being dragged.
func (t *BoxTool) IsDrawing() bool { return t.drawing }

// PointerDown anchors the first corner.
func (t *BoxTool) PointerDown(p math.Vec2) {
	if !t.enabled {
		return
	}
	t.drawing = true
	t.anchor = p
	t.current = p
	t.sink.begin()
}

// PointerMoved tracks the opposite corner.
func (t *BoxTool) PointerMoved(p math.Vec2) {
	if t.drawing {
		t.current = p
	}
}

// PointerUp commits the box as a counter-clockwise 4-corner polygon, or
// discards a degenerate one.
func (t *BoxTool) PointerUp(p math.Vec2) {
	if !t.drawing {
		return
	}
	t.drawing = false
	t.current = p

	if math32.Abs(p.X-t.anchor.X) < minBoxExtent || math32.Abs(p.Y-t.anchor.Y) < minBoxExtent {
		t.sink.end(nil)
		return
	}

	shape := geom.BoxPolygon(t.anchor, p)
	t.sink.stamp(shape)
	t.sink.end(shape)
}

// DoubleClick is a no-op for the box tool.
func (t *BoxTool) DoubleClick(p math.Vec2) {}

// Preview returns the dragged rectangle outline.
func (t *BoxTool) Preview() []math.Vec2 {
	if !t.drawing {
		return nil
	}
	return geom.BoxPolygon(t.anchor, t.current)
}
