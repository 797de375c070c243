// Package main is a minimal SDL viewer shell around the annotation
// scene: no panels, keyboard-driven tools, native system cursors.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/maralbahari/pcd-segmentation-interface/internal/config"
	"github.com/maralbahari/pcd-segmentation-interface/internal/engine/camera"
	"github.com/maralbahari/pcd-segmentation-interface/internal/engine/input"
	"github.com/maralbahari/pcd-segmentation-interface/internal/engine/renderer"
	"github.com/maralbahari/pcd-segmentation-interface/internal/engine/window"
	"github.com/maralbahari/pcd-segmentation-interface/internal/label"
	"github.com/maralbahari/pcd-segmentation-interface/internal/logger"
	"github.com/maralbahari/pcd-segmentation-interface/internal/scene"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/cloud"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/pcd"
	"github.com/veandco/go-sdl2/sdl"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== PCD Viewer ===")

	v, err := newViewer(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	v.Run()

	logger.Info("viewer closed normally")
}

// keyCommands binds keys to scene commands.
var keyCommands = map[sdl.Scancode]scene.Command{
	sdl.SCANCODE_B:            scene.CmdSelectBrush,
	sdl.SCANCODE_X:            scene.CmdSelectBox,
	sdl.SCANCODE_P:            scene.CmdSelectPolygon,
	sdl.SCANCODE_C:            scene.CmdSelectCurvature,
	sdl.SCANCODE_S:            scene.CmdSelectSelector,
	sdl.SCANCODE_N:            scene.CmdNavigate,
	sdl.SCANCODE_E:            scene.CmdToggleDrawMode,
	sdl.SCANCODE_RIGHTBRACKET: scene.CmdGrowBrush,
	sdl.SCANCODE_LEFTBRACKET:  scene.CmdShrinkBrush,
	sdl.SCANCODE_ESCAPE:       scene.CmdClearPicked,
	sdl.SCANCODE_F:            scene.CmdFitView,
}

// viewer ties the SDL window, input pump, renderer and scene together.
type viewer struct {
	cfg      *config.Config
	window   *window.Window
	input    *input.Input
	renderer *renderer.Renderer
	scene    *scene.Scene
	classes  []label.Class
}

func newViewer(cfg *config.Config) (*viewer, error) {
	v := &viewer{cfg: cfg, input: input.New()}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "PCD Viewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	v.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		ClearColor: cfg.Viewer.Background,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	cam := camera.NewOrbitCamera()
	cam.DragSensitivity = cfg.Viewer.DragSensitivity
	cam.ZoomSensitivity = cfg.Viewer.ZoomSensitivity
	cam.PanSensitivity = cfg.Viewer.PanSensitivity
	v.scene = scene.New(cam, camera.NewProjector(cfg.Graphics.Width, cfg.Graphics.Height))
	v.scene.SetBrushSize(cfg.Viewer.BrushSize)

	v.classes = loadTaxonomy(cfg)
	if len(v.classes) > 0 {
		v.scene.SetActiveClass(&v.classes[0])
	}

	v.scene.Subscribe(func(e scene.Event) {
		switch ev := e.(type) {
		case scene.CursorChanged:
			v.window.SetCursor(ev.Cursor)
		case scene.SelectionAdded:
			v.renderer.SetSelection(ev.Selection)
		case scene.SelectionChanged:
			v.renderer.SetSelection(ev.Selection)
		}
	})

	if cfg.Dataset.CloudPath != "" {
		if err := v.loadCloud(cfg.Dataset.CloudPath); err != nil {
			logger.Error("failed to load cloud", zap.Error(err))
		}
	}

	return v, nil
}

func loadTaxonomy(cfg *config.Config) []label.Class {
	if cfg.Dataset.LabelsFile == "" {
		return config.DefaultLabels()
	}
	classes, err := config.LoadLabels(cfg.Dataset.LabelsFile)
	if err != nil {
		logger.Warn("falling back to built-in label taxonomy", zap.Error(err))
		return config.DefaultLabels()
	}
	return classes
}

func (v *viewer) loadCloud(path string) error {
	file, err := pcd.ParseFile(path)
	if err != nil {
		return err
	}

	c := label.NewCloud(file.Buffer(cloud.FormatByName(v.cfg.Dataset.Format)))
	c.SetPointSize(v.cfg.Viewer.CloudPointSize)
	v.scene.SetCloud(c)
	v.renderer.ClearSelections()
	v.renderer.SetCloud(c)
	v.window.SetTitle(fmt.Sprintf("PCD Viewer - %s", path))
	return nil
}

func (v *viewer) Close() {
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

// Run drives the frame loop until quit.
func (v *viewer) Run() {
	for {
		if v.input.Update() {
			return
		}
		for _, e := range v.input.Events() {
			v.handleEvent(e)
		}
		v.drawFrame()
		v.window.SwapBuffers()
	}
}

func (v *viewer) handleEvent(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		v.renderer.Resize(e.Width, e.Height)
		v.scene.ViewportResized(e.Width, e.Height)

	case input.EventKeyDown:
		v.handleKey(e)

	case input.EventMouseMove:
		v.scene.PointerMoved(float32(e.MouseX), float32(e.MouseY))
		if v.scene.InteractMode() != scene.ModeDraw {
			if v.input.IsButtonHeld(sdl.BUTTON_RIGHT) {
				v.scene.Camera().HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
			}
			if v.input.IsButtonHeld(sdl.BUTTON_MIDDLE) {
				v.scene.Camera().HandlePan(float32(e.DeltaX), float32(e.DeltaY))
			}
		}

	case input.EventMouseDown:
		v.scene.PointerDown(float32(e.MouseX), float32(e.MouseY), e.Primary())

	case input.EventMouseUp:
		v.scene.PointerUp(float32(e.MouseX), float32(e.MouseY), e.Primary())

	case input.EventDoubleClick:
		if e.Primary() {
			v.scene.DoubleClick(float32(e.MouseX), float32(e.MouseY))
		}

	case input.EventMouseWheel:
		v.scene.Camera().HandleZoom(float32(e.DeltaY))
	}
}

func (v *viewer) handleKey(e input.Event) {
	if cmd, ok := keyCommands[e.Key]; ok {
		v.scene.Execute(cmd)
		return
	}

	// Number keys select label classes.
	if e.Key >= sdl.SCANCODE_1 && e.Key <= sdl.SCANCODE_9 {
		idx := int(e.Key - sdl.SCANCODE_1)
		if idx < len(v.classes) {
			v.scene.SetActiveClass(&v.classes[idx])
		}
	}
}

func (v *viewer) drawFrame() {
	v.scene.Projector().Update(v.scene.Camera())

	frame := renderer.Frame{
		ViewProj: v.scene.Projector().ViewProjection(),
		Preview:  v.scene.ToolPreview(),
	}
	if hovered := v.scene.Hovered(); hovered != nil {
		frame.HoveredID = hovered.ID
	}
	if picked := v.scene.Picked(); picked != nil {
		frame.PickedID = picked.ID
	}

	v.renderer.Render(frame)
}
