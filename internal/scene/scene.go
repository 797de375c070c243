package scene

import (
	"go.uber.org/zap"

	"github.com/maralbahari/pcd-segmentation-interface/internal/engine/camera"
	"github.com/maralbahari/pcd-segmentation-interface/internal/engine/picking"
	"github.com/maralbahari/pcd-segmentation-interface/internal/label"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/geom"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// cloudProjectionID keys the query cloud's snapshot in the projection cache.
const cloudProjectionID = "cloud"

// Brush radius limits in NDC.
const (
	MinBrushSize     = 0.005
	MaxBrushSize     = 0.5
	DefaultBrushSize = 0.05
)

// selectionPickPadding inflates selection bounds for ray picking so thin,
// near-planar selections remain clickable.
const selectionPickPadding = 0.05

// Scene wires the cloud, the selections, the picker, the drawing tools and
// the interaction-mode state machine together. All methods are
// single-threaded: they must be called from the shell's input/render
// callback.
type Scene struct {
	cam         *camera.OrbitCamera
	projector   *camera.Projector
	editor      *label.Editor
	picker      *picking.Picker[*label.Selection]
	projections *label.Projections

	cloud       *label.Cloud
	filtered    *label.Cloud
	queryPoints []math.Vec3
	selections  []*label.Selection
	activeClass *label.Class

	interactMode InteractMode
	drawMode     label.DrawMode
	activeTool   ToolType
	tools        map[ToolType]Tool
	brush        *BrushTool

	listeners []func(Event)
}

// New creates a scene over the given camera and projector. The scene starts
// in navigate mode with no tool selected.
func New(cam *camera.OrbitCamera, projector *camera.Projector) *Scene {
	s := &Scene{
		cam:          cam,
		projector:    projector,
		editor:       label.NewEditor(),
		projections:  label.NewProjections(),
		interactMode: ModeNavigate,
		drawMode:     label.DrawAdd,
		activeTool:   ToolNone,
	}

	s.picker = picking.NewPicker(projector.PointerRay, intersectSelection)
	s.picker.HoverEnabled = false
	s.picker.SelectEnabled = false
	s.picker.OnHoverEnter = func(sel *label.Selection, fp bool) {
		s.emit(HoverEnter{Selection: sel, FromPointer: fp})
	}
	s.picker.OnHoverExit = func(sel *label.Selection, fp bool) {
		s.emit(HoverExit{Selection: sel, FromPointer: fp})
	}
	s.picker.OnSelectEnter = func(sel *label.Selection, fp bool) {
		s.emit(SelectEnter{Selection: sel, FromPointer: fp})
		s.emit(PickedChanged{HasPicked: true})
	}
	s.picker.OnSelectExit = func(sel *label.Selection, fp bool) {
		s.emit(SelectExit{Selection: sel, FromPointer: fp})
		if s.picker.Selected() == nil {
			s.emit(PickedChanged{HasPicked: false})
		}
	}

	s.editor.OnSelectionAdded = func(sel *label.Selection, pts []math.Vec3) {
		s.registerSelection(sel)
		s.emit(SelectionAdded{Selection: sel, Points: pts})
	}
	s.editor.OnSelectionChanged = func(sel *label.Selection, pts []math.Vec3) {
		s.projections.Refresh(sel.ID, sel.Points, s.projector)
		s.emit(SelectionChanged{Selection: sel, Points: pts})
	}

	sink := toolSink{
		begin: func() { s.emit(BeginDraw{Tool: s.activeTool}) },
		stamp: s.applyShape,
		end:   func(shape geom.Shape) { s.emit(EndDraw{Shape: shape}) },
	}
	s.brush = newBrushTool(DefaultBrushSize, sink)
	s.tools = map[ToolType]Tool{
		ToolBrush:     s.brush,
		ToolBox:       newBoxTool(sink),
		ToolPolygon:   newPolygonTool(sink),
		ToolCurvature: newCurvatureTool(sink),
	}

	return s
}

// intersectSelection ray-tests a selection through its padded bounding box.
func intersectSelection(sel *label.Selection, ray picking.Ray) []picking.Hit {
	box := picking.AABBFromPoints(sel.Points, selectionPickPadding)
	dist, hit := ray.IntersectAABB(box)
	if !hit {
		return nil
	}
	return []picking.Hit{{Distance: dist}}
}

// Subscribe registers a listener for scene events.
func (s *Scene) Subscribe(fn func(Event)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Scene) emit(e Event) {
	for _, fn := range s.listeners {
		fn(e)
	}
}

// Camera returns the orbit camera.
func (s *Scene) Camera() *camera.OrbitCamera { return s.cam }

// Projector returns the NDC projector.
func (s *Scene) Projector() *camera.Projector { return s.projector }

// Cloud returns the loaded cloud, nil before any load.
func (s *Scene) Cloud() *label.Cloud { return s.cloud }

// Filtered returns the cloud subset spatial queries run against.
func (s *Scene) Filtered() *label.Cloud { return s.filtered }

// Selections returns the scene-owned selection list.
func (s *Scene) Selections() []*label.Selection { return s.selections }

// Hovered returns the hovered selection, nil when none.
func (s *Scene) Hovered() *label.Selection { return s.picker.Hovered() }

// Picked returns the picked selection, nil when none.
func (s *Scene) Picked() *label.Selection { return s.picker.Selected() }

// InteractMode returns the current interaction mode.
func (s *Scene) InteractMode() InteractMode { return s.interactMode }

// DrawMode returns the current add/erase mode.
func (s *Scene) DrawMode() label.DrawMode { return s.drawMode }

// ActiveTool returns the selected tool type.
func (s *Scene) ActiveTool() ToolType { return s.activeTool }

// ActiveClass returns the label class applied to new selections.
func (s *Scene) ActiveClass() *label.Class { return s.activeClass }

// BrushSize returns the brush radius in NDC.
func (s *Scene) BrushSize() float32 { return s.brush.Radius }

// ToolPreview returns the active tool's in-progress outline for overlay
// rendering, nil when idle.
func (s *Scene) ToolPreview() []math.Vec2 {
	if tool, ok := s.tools[s.activeTool]; ok {
		return tool.Preview()
	}
	return nil
}

// SetCloud replaces the dataset: the selection list resets, the filter
// resets to the full cloud, and the camera reframes.
func (s *Scene) SetCloud(c *label.Cloud) {
	s.cloud = c
	s.filtered = c
	s.selections = nil
	s.picker.SetObjects(nil)
	s.projections = label.NewProjections()

	if c != nil {
		min, max := c.Buffer.Bounds()
		s.cam.FitToBounds(min, max)
		zap.L().Info("cloud loaded into scene",
			zap.Int("points", c.Buffer.NumPoints()),
			zap.Int("channels", c.Buffer.NumChannels()))
	}

	if s.interactMode == ModeDraw {
		s.refreshProjections()
	}
}

// SetFilter narrows the query cloud to points whose channel value lies in
// [min, max]. Spatial queries and rendering both use the filtered subset.
func (s *Scene) SetFilter(channel int, min, max float32) {
	if s.cloud == nil {
		return
	}
	s.filtered = s.cloud.Filtered(channel, min, max)
	if s.interactMode == ModeDraw {
		s.refreshProjections()
	}
}

// ClearFilter restores the full cloud as the query cloud.
func (s *Scene) ClearFilter() {
	s.filtered = s.cloud
	if s.interactMode == ModeDraw {
		s.refreshProjections()
	}
}

// SetActiveClass selects the label class new selections receive.
func (s *Scene) SetActiveClass(c *label.Class) {
	s.activeClass = c
}

// SetInteractMode switches the interaction mode and re-derives tool
// enablement, camera orbit enablement and picker enablement. Entering draw
// mode refreshes every NDC projection against the current camera.
func (s *Scene) SetInteractMode(m InteractMode) {
	if m == s.interactMode {
		return
	}
	s.interactMode = m
	s.deriveState()
	s.emit(InteractModeChanged{Mode: m})
}

// SetTool selects a tool. Drawing tools enter draw mode, the selector
// enters select mode, and ToolNone returns to navigation.
func (s *Scene) SetTool(t ToolType) {
	if t == s.activeTool {
		return
	}
	s.activeTool = t
	s.emit(ToolChanged{Tool: t})

	prev := s.interactMode
	switch t {
	case ToolSelector:
		s.SetInteractMode(ModeSelect)
	case ToolNone:
		s.SetInteractMode(ModeNavigate)
	default:
		s.SetInteractMode(ModeDraw)
	}

	// A tool change within draw mode re-derives without a mode transition.
	if s.interactMode == prev {
		s.deriveState()
	}
}

// SetDrawMode switches between add and erase.
func (s *Scene) SetDrawMode(m label.DrawMode) {
	if m == s.drawMode {
		return
	}
	s.drawMode = m
	s.emit(DrawModeChanged{Mode: m})
}

// SetBrushSize sets the brush radius in NDC, clamping out-of-range values
// with a logged diagnostic.
func (s *Scene) SetBrushSize(size float32) {
	clamped := size
	if clamped < MinBrushSize {
		clamped = MinBrushSize
	}
	if clamped > MaxBrushSize {
		clamped = MaxBrushSize
	}
	if clamped != size {
		zap.L().Warn("brush size out of range, clamping",
			zap.Float32("size", size),
			zap.Float32("clamped", clamped))
	}
	if clamped == s.brush.Radius {
		return
	}
	s.brush.Radius = clamped
	s.emit(BrushSizeChanged{Size: clamped})
}

// ClearPicked programmatically unpicks the current selection.
func (s *Scene) ClearPicked() {
	s.picker.SetSelected(nil)
}

// PickSelection programmatically picks a selection, for shells that offer
// a selection list alongside pointer picking.
func (s *Scene) PickSelection(sel *label.Selection) {
	s.picker.SetSelected(sel)
}

// deriveState recomputes everything that depends on mode and tool: exactly
// one tool is enabled in draw mode, the camera orbits outside draw mode,
// and the picker runs only in select mode.
func (s *Scene) deriveState() {
	for _, tool := range s.tools {
		tool.SetEnabled(s.interactMode == ModeDraw && tool.Type() == s.activeTool)
	}

	s.cam.Enabled = s.interactMode != ModeDraw

	selecting := s.interactMode == ModeSelect
	s.picker.HoverEnabled = selecting
	s.picker.SelectEnabled = selecting

	if s.interactMode == ModeDraw {
		s.refreshProjections()
	}

	s.emit(CursorChanged{Cursor: s.cursor()})
}

func (s *Scene) cursor() Cursor {
	switch s.interactMode {
	case ModeDraw:
		return CursorCrosshair
	case ModeSelect:
		return CursorHand
	default:
		return CursorArrow
	}
}

// RefreshProjections recomputes the NDC snapshots of the query cloud and
// every selection against the current camera. The scene calls this on
// entering draw mode; shells call it after camera movement while a draw
// mode is already active.
func (s *Scene) RefreshProjections() {
	s.refreshProjections()
}

// ViewportResized propagates a viewport size change to the projector.
// While draw mode is active the NDC snapshots are refreshed immediately:
// a resize changes the pixel-to-NDC mapping, and shapes drawn afterwards
// must query against the new one, not the snapshot taken on mode entry.
func (s *Scene) ViewportResized(width, height int) {
	s.projector.SetViewport(width, height)
	if s.interactMode == ModeDraw {
		s.refreshProjections()
	}
}

func (s *Scene) refreshProjections() {
	s.projector.Update(s.cam)

	if s.filtered != nil {
		s.queryPoints = s.filtered.Buffer.AllCoords()
		s.projections.Refresh(cloudProjectionID, s.queryPoints, s.projector)
	}
	for _, sel := range s.selections {
		s.projections.Refresh(sel.ID, sel.Points, s.projector)
	}
}

// registerSelection adopts a newly created selection: it joins the
// scene-owned list, the picker's tracked set, and the projection cache.
func (s *Scene) registerSelection(sel *label.Selection) {
	s.selections = append(s.selections, sel)
	s.picker.AddObject(sel)
	s.projections.Refresh(sel.ID, sel.Points, s.projector)
}

// applyShape routes a captured shape: with a picked selection it grows or
// shrinks it per the draw mode, otherwise it creates a new selection with
// the active class. Without either target the shape is dropped silently.
func (s *Scene) applyShape(shape geom.Shape) {
	cloudView, ok := s.projections.View(cloudProjectionID, s.queryPoints)
	if !ok {
		zap.L().Warn("query cloud projection missing, dropping drawn shape",
			zap.String("shape", shape.Kind().String()))
		return
	}

	if picked := s.picker.Selected(); picked != nil {
		selView, ok := s.projections.View(picked.ID, picked.Points)
		if !ok {
			zap.L().Warn("selection projection missing, dropping drawn shape",
				zap.String("selection", picked.ID))
			return
		}
		s.editor.Modify(shape, cloudView, picked, selView, s.drawMode)
		return
	}

	s.editor.Create(shape, s.activeClass, cloudView)
}

// PointerMoved routes a pointer move. The pick ray stays current in every
// mode; the active tool sees moves only in draw mode.
func (s *Scene) PointerMoved(x, y float32) {
	s.picker.PointerMoved(x, y)
	if s.interactMode == ModeDraw {
		if tool, ok := s.tools[s.activeTool]; ok {
			tool.PointerMoved(s.projector.PixelToNDC(x, y))
		}
	}
}

// PointerDown routes a primary-button press; other buttons are left to the
// shell (camera drag, context menus).
func (s *Scene) PointerDown(x, y float32, primary bool) {
	if !primary {
		return
	}
	switch s.interactMode {
	case ModeSelect:
		s.picker.PointerDown(true)
	case ModeDraw:
		if tool, ok := s.tools[s.activeTool]; ok {
			tool.PointerDown(s.projector.PixelToNDC(x, y))
		}
	}
}

// PointerUp routes a primary-button release to the active tool.
func (s *Scene) PointerUp(x, y float32, primary bool) {
	if !primary || s.interactMode != ModeDraw {
		return
	}
	if tool, ok := s.tools[s.activeTool]; ok {
		tool.PointerUp(s.projector.PixelToNDC(x, y))
	}
}

// DoubleClick routes a primary-button double-click to the active tool.
func (s *Scene) DoubleClick(x, y float32) {
	if s.interactMode != ModeDraw {
		return
	}
	if tool, ok := s.tools[s.activeTool]; ok {
		tool.DoubleClick(s.projector.PixelToNDC(x, y))
	}
}
