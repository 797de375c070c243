package scene

import (
	"testing"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/geom"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// recordingSink captures tool lifecycle calls for assertions.
type recordingSink struct {
	begins int
	stamps []geom.Shape
	ends   []geom.Shape
}

func (r *recordingSink) sink() toolSink {
	return toolSink{
		begin: func() { r.begins++ },
		stamp: func(s geom.Shape) { r.stamps = append(r.stamps, s) },
		end:   func(s geom.Shape) { r.ends = append(r.ends, s) },
	}
}

func TestBrushStampSpacing(t *testing.T) {
	rec := &recordingSink{}
	brush := newBrushTool(0.1, rec.sink())
	brush.SetEnabled(true)

	brush.PointerDown(math.Vec2{})
	if rec.begins != 1 || len(rec.stamps) != 1 {
		t.Fatalf("after down: begins=%d stamps=%d, want 1/1", rec.begins, len(rec.stamps))
	}

	// Movement below half a radius does not stamp; beyond it does.
	brush.PointerMoved(math.Vec2{X: 0.01})
	if len(rec.stamps) != 1 {
		t.Errorf("tiny move stamped; stamps=%d, want 1", len(rec.stamps))
	}
	brush.PointerMoved(math.Vec2{X: 0.08})
	if len(rec.stamps) != 2 {
		t.Errorf("half-radius move did not stamp; stamps=%d, want 2", len(rec.stamps))
	}

	// Release after a sub-step drift: no extra stamp, but the end payload
	// sits at the release position, not the last stamp.
	brush.PointerUp(math.Vec2{X: 0.1})
	if len(rec.stamps) != 2 {
		t.Errorf("release stamped; stamps=%d, want 2", len(rec.stamps))
	}
	if len(rec.ends) != 1 {
		t.Fatalf("ends=%d, want 1", len(rec.ends))
	}
	c, ok := rec.ends[0].(geom.Circle)
	if !ok || c.Radius != 0.1 || c.Center != (math.Vec2{X: 0.1}) {
		t.Errorf("EndDraw shape = %v, want brush circle at the release position", rec.ends[0])
	}
}

func TestBoxDegenerateDiscarded(t *testing.T) {
	rec := &recordingSink{}
	box := newBoxTool(rec.sink())
	box.SetEnabled(true)

	box.PointerDown(math.Vec2{X: 0.5, Y: 0.5})
	box.PointerUp(math.Vec2{X: 0.5, Y: 0.5})

	if len(rec.stamps) != 0 {
		t.Error("degenerate box should not stamp")
	}
	if len(rec.ends) != 1 || rec.ends[0] != nil {
		t.Errorf("ends = %v, want one nil end for a discarded draw", rec.ends)
	}
}

func TestBoxCommitsCCWPolygon(t *testing.T) {
	rec := &recordingSink{}
	box := newBoxTool(rec.sink())
	box.SetEnabled(true)

	box.PointerDown(math.Vec2{X: 0.4, Y: 0.4})
	box.PointerMoved(math.Vec2{X: -0.2, Y: 0})
	box.PointerUp(math.Vec2{X: -0.2, Y: -0.1})

	if len(rec.stamps) != 1 {
		t.Fatalf("stamps=%d, want 1", len(rec.stamps))
	}
	poly, ok := rec.stamps[0].(geom.Polygon)
	if !ok || len(poly) != 4 {
		t.Fatalf("stamp = %v, want a 4-corner polygon", rec.stamps[0])
	}
	if poly[0] != (math.Vec2{X: -0.2, Y: -0.1}) {
		t.Errorf("first corner = %v, want min corner {-0.2 -0.1}", poly[0])
	}
}

func TestPolygonDoubleClickCloses(t *testing.T) {
	rec := &recordingSink{}
	poly := newPolygonTool(rec.sink())
	poly.SetEnabled(true)

	poly.PointerDown(math.Vec2{X: -0.5, Y: -0.5})
	poly.PointerDown(math.Vec2{X: 0.5, Y: -0.5})
	poly.PointerDown(math.Vec2{X: 0, Y: 0.5})
	// The closing double-click first lands as two ordinary clicks at the
	// same spot.
	poly.PointerDown(math.Vec2{X: 0, Y: 0.5})
	poly.DoubleClick(math.Vec2{X: 0, Y: 0.5})

	if len(rec.stamps) != 1 {
		t.Fatalf("stamps=%d, want 1", len(rec.stamps))
	}
	shape, ok := rec.stamps[0].(geom.Polygon)
	if !ok {
		t.Fatalf("stamp = %T, want polygon", rec.stamps[0])
	}
	if len(shape) != 3 {
		t.Errorf("closed polygon has %d vertices, want 3 (duplicates collapsed)", len(shape))
	}
	if poly.IsDrawing() {
		t.Error("tool should be idle after closing")
	}
}

func TestPolygonTooFewVertices(t *testing.T) {
	rec := &recordingSink{}
	poly := newPolygonTool(rec.sink())
	poly.SetEnabled(true)

	poly.PointerDown(math.Vec2{})
	poly.PointerDown(math.Vec2{})
	poly.DoubleClick(math.Vec2{})

	if len(rec.stamps) != 0 {
		t.Error("a two-vertex polygon should be discarded")
	}
	if len(rec.ends) != 1 || rec.ends[0] != nil {
		t.Errorf("ends = %v, want one nil end", rec.ends)
	}
}

func TestCurvatureMinStep(t *testing.T) {
	rec := &recordingSink{}
	curv := newCurvatureTool(rec.sink())
	curv.SetEnabled(true)

	curv.PointerDown(math.Vec2{})
	// Sub-step jitter is dropped.
	curv.PointerMoved(math.Vec2{X: 0.001})
	curv.PointerMoved(math.Vec2{X: 0.002})
	if len(curv.vertices) != 1 {
		t.Errorf("vertices=%d after jitter, want 1", len(curv.vertices))
	}

	curv.PointerMoved(math.Vec2{X: 0.5})
	curv.PointerMoved(math.Vec2{X: 0.5, Y: 0.5})
	curv.PointerUp(math.Vec2{X: 0.5, Y: 0.5})

	if len(rec.stamps) != 1 {
		t.Fatalf("stamps=%d, want 1", len(rec.stamps))
	}
	if shape := rec.stamps[0].(geom.Polygon); len(shape) != 3 {
		t.Errorf("lasso polygon has %d vertices, want 3", len(shape))
	}
}

func TestCurvatureShortStrokeDiscarded(t *testing.T) {
	rec := &recordingSink{}
	curv := newCurvatureTool(rec.sink())
	curv.SetEnabled(true)

	curv.PointerDown(math.Vec2{})
	curv.PointerUp(math.Vec2{})

	if len(rec.stamps) != 0 {
		t.Error("a click-only lasso should be discarded")
	}
	if len(rec.ends) != 1 || rec.ends[0] != nil {
		t.Errorf("ends = %v, want one nil end", rec.ends)
	}
}

func TestDisabledToolsIgnoreInput(t *testing.T) {
	rec := &recordingSink{}
	for _, tool := range []Tool{
		newBrushTool(0.05, rec.sink()),
		newBoxTool(rec.sink()),
		newPolygonTool(rec.sink()),
		newCurvatureTool(rec.sink()),
	} {
		tool.PointerDown(math.Vec2{})
		tool.PointerMoved(math.Vec2{X: 0.5})
		tool.PointerUp(math.Vec2{X: 0.5})
		if tool.IsDrawing() {
			t.Errorf("disabled %v tool started drawing", tool.Type())
		}
	}
	if rec.begins != 0 || len(rec.stamps) != 0 {
		t.Errorf("disabled tools produced begins=%d stamps=%d", rec.begins, len(rec.stamps))
	}
}
