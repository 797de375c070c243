package scene

import (
	"github.com/chewxy/math32"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/geom"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// BrushTool stamps a circle of the current radius on press and on every
// drag step, so a stroke paints a swept region shape by shape.
type BrushTool struct {
	Radius float32 // NDC

	enabled bool
	drawing bool
	last    math.Vec2
	cursor  math.Vec2
	sink    toolSink
}

// newBrushTool creates a brush with the given NDC radius.
func newBrushTool(radius float32, sink toolSink) *BrushTool {
	return &BrushTool{Radius: radius, sink: sink}
}

// Type returns ToolBrush.
func (t *BrushTool) Type() ToolType { return ToolBrush }

// Enabled reports whether the tool accepts pointer input.
func (t *BrushTool) Enabled() bool { return t.enabled }

// SetEnabled toggles the tool, discarding any in-progress stroke.
func (t *BrushTool) SetEnabled(enabled bool) {
	t.enabled = enabled
	if !enabled {
		t.drawing = false
	}
}

// IsDrawing reports whether a stroke is in progress.
func (t *BrushTool) IsDrawing() bool { return t.drawing }

// PointerDown starts a stroke and stamps the first circle.
func (t *BrushTool) PointerDown(p math.Vec2) {
	if !t.enabled {
		return
	}
	t.drawing = true
	t.cursor = p
	t.sink.begin()
	t.stampAt(p)
}

// PointerMoved stamps another circle once the pointer has travelled half a
// radius, keeping the stroke continuous without re-querying on every pixel.
func (t *BrushTool) PointerMoved(p math.Vec2) {
	t.cursor = p
	if !t.drawing {
		return
	}
	if p.Distance(t.last) >= t.Radius*0.5 {
		t.stampAt(p)
	}
}

// PointerUp ends the stroke. The end payload is the brush circle at the
// release position, which may trail the last stamp by less than a step.
func (t *BrushTool) PointerUp(p math.Vec2) {
	if !t.drawing {
		return
	}
	t.drawing = false
	t.sink.end(geom.Circle{Center: p, Radius: t.Radius})
}

// DoubleClick is a no-op for the brush.
func (t *BrushTool) DoubleClick(p math.Vec2) {}

// Preview returns the brush outline at the pointer position.
func (t *BrushTool) Preview() []math.Vec2 {
	if !t.enabled {
		return nil
	}
	return circleOutline(t.cursor, t.Radius, 32)
}

func (t *BrushTool) stampAt(p math.Vec2) {
	t.last = p
	t.sink.stamp(geom.Circle{Center: p, Radius: t.Radius})
}

// circleOutline samples a circle boundary for overlay rendering.
func circleOutline(center math.Vec2, radius float32, segments int) []math.Vec2 {
	out := make([]math.Vec2, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math32.Pi * float32(i) / float32(segments)
		out[i] = math.Vec2{
			X: center.X + radius*math32.Cos(angle),
			Y: center.Y + radius*math32.Sin(angle),
		}
	}
	return out
}
