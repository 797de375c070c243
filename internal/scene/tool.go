package scene

import (
	"github.com/maralbahari/pcd-segmentation-interface/pkg/geom"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// Tool is one drawing tool. Tools receive pointer positions in NDC and push
// captured shapes into their sink; the scene enables exactly one tool at a
// time, matching the selected tool type.
//
// Disabling a tool mid-draw discards its uncommitted state without an
// end-draw: a mode switch deliberately abandons the in-progress shape.
type Tool interface {
	Type() ToolType
	Enabled() bool
	SetEnabled(enabled bool)
	IsDrawing() bool

	PointerDown(p math.Vec2)
	PointerMoved(p math.Vec2)
	PointerUp(p math.Vec2)
	DoubleClick(p math.Vec2)

	// Preview returns the in-progress outline for overlay rendering,
	// or nil when idle.
	Preview() []math.Vec2
}

// toolSink receives a tool's lifecycle callbacks. begin marks the start of
// a draw, stamp applies one captured shape (the brush stamps many per draw),
// and end closes the draw with the final shape, nil when discarded.
type toolSink struct {
	begin func()
	stamp func(shape geom.Shape)
	end   func(shape geom.Shape)
}
