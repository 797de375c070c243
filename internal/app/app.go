// Package app is the imgui annotation application: panels around an
// offscreen 3-D viewport, driving a scene over the active point cloud.
package app

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/maralbahari/pcd-segmentation-interface/internal/config"
	"github.com/maralbahari/pcd-segmentation-interface/internal/engine/camera"
	"github.com/maralbahari/pcd-segmentation-interface/internal/engine/renderer"
	"github.com/maralbahari/pcd-segmentation-interface/internal/label"
	"github.com/maralbahari/pcd-segmentation-interface/internal/logger"
	"github.com/maralbahari/pcd-segmentation-interface/internal/scene"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/cloud"
)

const (
	leftPanelWidth  = float32(260)
	rightPanelWidth = float32(280)
	statusBarHeight = float32(30)
)

// App owns the UI backend, the renderer and the annotation scene.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	cfg     *config.Config

	scene    *scene.Scene
	renderer *renderer.Renderer
	target   *renderer.Target

	classes []label.Class
	format  cloud.Format

	// Filter panel state, seeded from channel statistics on load.
	channelStats  map[int]label.ChannelStats
	filterChannel int
	filterMin     float32
	filterMax     float32
	filterActive  bool

	// Async load plumbing: the dialog goroutine queues chosen paths on
	// pendingPaths, the parser goroutine delivers on loads; both are
	// drained on the main thread in render.
	pendingPaths chan string
	loads        chan loadResult

	cloudPath string
	status    string

	lastViewportMouse imgui.Vec2
}

// New creates the application: backend, window, GL renderer, offscreen
// target and an empty scene.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:          cfg,
		format:       cloud.FormatByName(cfg.Dataset.Format),
		channelStats: make(map[int]label.ChannelStats),
		pendingPaths: make(chan string, 1),
		loads:        make(chan loadResult, 1),
		status:       "no cloud loaded",
	}

	a.classes = loadTaxonomy(cfg)

	var err error
	a.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("creating backend: %w", err)
	}

	bg := cfg.Viewer.Background
	a.backend.SetBgColor(imgui.NewVec4(bg[0], bg[1], bg[2], bg[3]))
	a.backend.CreateWindow("PCD Annotator", cfg.Graphics.Width, cfg.Graphics.Height)

	// The GL context exists once the window does.
	a.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		ClearColor: bg,
	})
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	a.target, err = renderer.NewTarget(int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
	if err != nil {
		return nil, fmt.Errorf("creating render target: %w", err)
	}

	cam := camera.NewOrbitCamera()
	cam.DragSensitivity = cfg.Viewer.DragSensitivity
	cam.ZoomSensitivity = cfg.Viewer.ZoomSensitivity
	cam.PanSensitivity = cfg.Viewer.PanSensitivity

	a.scene = scene.New(cam, camera.NewProjector(cfg.Graphics.Width, cfg.Graphics.Height))
	a.scene.SetBrushSize(cfg.Viewer.BrushSize)
	if len(a.classes) > 0 {
		a.scene.SetActiveClass(&a.classes[0])
	}

	// Keep the renderer's selection meshes in step with the scene.
	a.scene.Subscribe(func(e scene.Event) {
		switch ev := e.(type) {
		case scene.SelectionAdded:
			a.renderer.SetSelection(ev.Selection)
		case scene.SelectionChanged:
			a.renderer.SetSelection(ev.Selection)
		}
	})

	if cfg.Dataset.CloudPath != "" {
		a.beginLoad(cfg.Dataset.CloudPath)
	}

	return a, nil
}

// loadTaxonomy resolves the label classes: configured file, or built-in
// defaults when missing or broken.
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

// Run starts the main application loop.
func (a *App) Run() {
	a.backend.Run(a.render)
}

// Close releases GL and scene resources.
func (a *App) Close() {
	if a.target != nil {
		a.target.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
}

// render is called each frame to draw the UI.
func (a *App) render() {
	a.processLoads()
	a.handleShortcuts()

	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Open Cloud...") {
				a.openCloudDialog()
			}
			imgui.Separator()
			if imgui.MenuItemBool("Exit") {
				a.backend.SetShouldClose(true)
			}
			imgui.EndMenu()
		}
		if imgui.BeginMenu("View") {
			if imgui.MenuItemBool("Fit to Cloud") {
				a.scene.Execute(scene.CmdFitView)
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	contentHeight := workSize.Y - statusBarHeight

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(leftPanelWidth, contentHeight))
	if imgui.BeginV("Annotation", nil, flags) {
		a.renderToolsPanel()
		imgui.Separator()
		a.renderClassesPanel()
		imgui.Separator()
		a.renderFilterPanel()
	}
	imgui.End()

	viewportWidth := workSize.X - leftPanelWidth - rightPanelWidth
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(viewportWidth, contentHeight))
	if imgui.BeginV("Viewport", nil, flags) {
		a.renderViewport()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth+viewportWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(rightPanelWidth, contentHeight))
	if imgui.BeginV("Selections", nil, flags) {
		a.renderSelectionsPanel()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		a.renderStatusBar()
	}
	imgui.End()
}

// handleShortcuts maps keyboard chords onto scene commands. Suppressed
// while a text widget is active.
func (a *App) handleShortcuts() {
	if imgui.IsAnyItemActive() {
		return
	}

	chords := []struct {
		chord imgui.KeyChord
		cmd   scene.Command
	}{
		{imgui.KeyChord(imgui.KeyB), scene.CmdSelectBrush},
		{imgui.KeyChord(imgui.KeyX), scene.CmdSelectBox},
		{imgui.KeyChord(imgui.KeyP), scene.CmdSelectPolygon},
		{imgui.KeyChord(imgui.KeyC), scene.CmdSelectCurvature},
		{imgui.KeyChord(imgui.KeyS), scene.CmdSelectSelector},
		{imgui.KeyChord(imgui.KeyN), scene.CmdNavigate},
		{imgui.KeyChord(imgui.KeyE), scene.CmdToggleDrawMode},
		{imgui.KeyChord(imgui.KeyRightBracket), scene.CmdGrowBrush},
		{imgui.KeyChord(imgui.KeyLeftBracket), scene.CmdShrinkBrush},
		{imgui.KeyChord(imgui.KeyEscape), scene.CmdClearPicked},
		{imgui.KeyChord(imgui.KeyF), scene.CmdFitView},
	}
	for _, c := range chords {
		if imgui.IsKeyChordPressed(c.chord) {
			a.scene.Execute(c.cmd)
		}
	}

	ctrlO := imgui.KeyChord(imgui.ModCtrl) | imgui.KeyChord(imgui.KeyO)
	if imgui.IsKeyChordPressed(ctrlO) {
		a.openCloudDialog()
	}
}
