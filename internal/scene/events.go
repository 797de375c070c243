package scene

import (
	"github.com/maralbahari/pcd-segmentation-interface/internal/label"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/geom"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// Event is a typed scene notification. Events are emitted synchronously to
// every subscribed listener; no acknowledgment is expected.
type Event interface{ isEvent() }

// InteractModeChanged fires when the interaction mode switches.
type InteractModeChanged struct{ Mode InteractMode }

// ToolChanged fires when the active tool switches.
type ToolChanged struct{ Tool ToolType }

// DrawModeChanged fires when the add/erase mode switches.
type DrawModeChanged struct{ Mode label.DrawMode }

// BrushSizeChanged fires when the brush radius changes.
type BrushSizeChanged struct{ Size float32 }

// CursorChanged tells the shell which pointer affordance to show.
type CursorChanged struct{ Cursor Cursor }

// PickedChanged fires when a selection becomes picked or unpicked.
type PickedChanged struct{ HasPicked bool }

// BeginDraw fires when a tool starts capturing a shape.
type BeginDraw struct{ Tool ToolType }

// EndDraw fires when a draw completes. Shape is nil when the draw was
// discarded as degenerate.
type EndDraw struct{ Shape geom.Shape }

// HoverEnter fires when a selection becomes hovered.
type HoverEnter struct {
	Selection   *label.Selection
	FromPointer bool
}

// HoverExit fires when a selection stops being hovered.
type HoverExit struct {
	Selection   *label.Selection
	FromPointer bool
}

// SelectEnter fires when a selection becomes picked.
type SelectEnter struct {
	Selection   *label.Selection
	FromPointer bool
}

// SelectExit fires when a selection stops being picked.
type SelectExit struct {
	Selection   *label.Selection
	FromPointer bool
}

// SelectionAdded fires when a drawn shape first captures points.
type SelectionAdded struct {
	Selection *label.Selection
	Points    []math.Vec3
}

// SelectionChanged fires when an existing selection is grown or shrunk.
type SelectionChanged struct {
	Selection *label.Selection
	Points    []math.Vec3
}

func (InteractModeChanged) isEvent() {}
func (ToolChanged) isEvent()         {}
func (DrawModeChanged) isEvent()     {}
func (BrushSizeChanged) isEvent()    {}
func (CursorChanged) isEvent()       {}
func (PickedChanged) isEvent()       {}
func (BeginDraw) isEvent()           {}
func (EndDraw) isEvent()             {}
func (HoverEnter) isEvent()          {}
func (HoverExit) isEvent()           {}
func (SelectEnter) isEvent()         {}
func (SelectExit) isEvent()          {}
func (SelectionAdded) isEvent()      {}
func (SelectionChanged) isEvent()    {}
