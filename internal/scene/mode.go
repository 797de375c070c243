// Package scene orchestrates annotation: it owns the point cloud, the label
// selections, the picker over them, one drawing tool per shape type, and the
// interaction-mode state machine that wires them together.
package scene

// InteractMode is the top-level interaction state.
type InteractMode int

// Interaction modes.
const (
	ModeNavigate InteractMode = iota
	ModeDraw
	ModeSelect
)

// String returns a human-readable mode name.
func (m InteractMode) String() string {
	switch m {
	case ModeDraw:
		return "draw"
	case ModeSelect:
		return "select"
	default:
		return "navigate"
	}
}

// ToolType identifies a drawing tool, or the selector.
type ToolType int

// Tool types.
const (
	ToolNone ToolType = iota
	ToolBrush
	ToolBox
	ToolPolygon
	ToolCurvature
	ToolSelector
)

// String returns a human-readable tool name.
func (t ToolType) String() string {
	switch t {
	case ToolBrush:
		return "brush"
	case ToolBox:
		return "box"
	case ToolPolygon:
		return "polygon"
	case ToolCurvature:
		return "curvature"
	case ToolSelector:
		return "selector"
	default:
		return "none"
	}
}

// Cursor is the pointer affordance the shell should show.
type Cursor int

// Cursor affordances.
const (
	CursorArrow Cursor = iota
	CursorCrosshair
	CursorHand
)
