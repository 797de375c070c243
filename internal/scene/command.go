package scene

import (
	"go.uber.org/zap"

	"github.com/maralbahari/pcd-segmentation-interface/internal/label"
)

// Command names a scene state-machine transition. Input binding (which key
// or button triggers which command) lives in the shell; the scene only
// executes.
type Command int

// Commands.
const (
	CmdSelectBrush Command = iota
	CmdSelectBox
	CmdSelectPolygon
	CmdSelectCurvature
	CmdSelectSelector
	CmdNavigate
	CmdToggleDrawMode
	CmdDrawAdd
	CmdDrawErase
	CmdGrowBrush
	CmdShrinkBrush
	CmdClearPicked
	CmdFitView
)

// brushSizeStep is the multiplicative step for grow/shrink commands.
const brushSizeStep = 1.25

// commandHandlers maps each command onto its transition.
var commandHandlers = map[Command]func(*Scene){
	CmdSelectBrush:     func(s *Scene) { s.SetTool(ToolBrush) },
	CmdSelectBox:       func(s *Scene) { s.SetTool(ToolBox) },
	CmdSelectPolygon:   func(s *Scene) { s.SetTool(ToolPolygon) },
	CmdSelectCurvature: func(s *Scene) { s.SetTool(ToolCurvature) },
	CmdSelectSelector:  func(s *Scene) { s.SetTool(ToolSelector) },
	CmdNavigate:        func(s *Scene) { s.SetTool(ToolNone) },
	CmdToggleDrawMode: func(s *Scene) {
		if s.DrawMode() == label.DrawAdd {
			s.SetDrawMode(label.DrawErase)
		} else {
			s.SetDrawMode(label.DrawAdd)
		}
	},
	CmdDrawAdd:     func(s *Scene) { s.SetDrawMode(label.DrawAdd) },
	CmdDrawErase:   func(s *Scene) { s.SetDrawMode(label.DrawErase) },
	CmdGrowBrush:   func(s *Scene) { s.SetBrushSize(s.BrushSize() * brushSizeStep) },
	CmdShrinkBrush: func(s *Scene) { s.SetBrushSize(s.BrushSize() / brushSizeStep) },
	CmdClearPicked: func(s *Scene) { s.ClearPicked() },
	CmdFitView: func(s *Scene) {
		if s.cloud == nil {
			return
		}
		min, max := s.cloud.Buffer.Bounds()
		s.cam.FitToBounds(min, max)
	},
}

// Execute runs a command against the scene. Unknown commands log and do
// nothing.
func (s *Scene) Execute(cmd Command) {
	handler, ok := commandHandlers[cmd]
	if !ok {
		zap.L().Warn("unknown scene command", zap.Int("command", int(cmd)))
		return
	}
	handler(s)
}
