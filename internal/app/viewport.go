package app

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/maralbahari/pcd-segmentation-interface/internal/engine/renderer"
	"github.com/maralbahari/pcd-segmentation-interface/internal/scene"
)

// renderViewport draws the scene into the offscreen target, presents it
// as an image widget and routes pointer input back into the scene in
// viewport pixel coordinates.
func (a *App) renderViewport() {
	avail := imgui.ContentRegionAvail()
	if avail.X < 1 {
		avail.X = 1
	}
	if avail.Y < 1 {
		avail.Y = 1
	}

	a.target.Resize(int32(avail.X), int32(avail.Y))
	pw, ph := a.scene.Projector().Viewport()
	if int(pw) != int(avail.X) || int(ph) != int(avail.Y) {
		a.scene.ViewportResized(int(avail.X), int(avail.Y))
	}
	a.scene.Projector().Update(a.scene.Camera())

	frame := renderer.Frame{
		ViewProj: a.scene.Projector().ViewProjection(),
		Preview:  a.scene.ToolPreview(),
	}
	if hovered := a.scene.Hovered(); hovered != nil {
		frame.HoveredID = hovered.ID
	}
	if picked := a.scene.Picked(); picked != nil {
		frame.PickedID = picked.ID
	}

	restore := a.target.Bind()
	a.renderer.Render(frame)
	restore()

	// Present with flipped V: the target's origin is bottom-left.
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(a.target.Texture()))
	imgui.ImageWithBgV(
		*texRef,
		avail,
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		a.routeViewportInput()
	}
}

// routeViewportInput translates imgui mouse state over the viewport image
// into scene pointer calls and camera movement.
func (a *App) routeViewportInput() {
	rectMin := imgui.ItemRectMin()
	mouse := imgui.MousePos()
	px := mouse.X - rectMin.X
	py := mouse.Y - rectMin.Y

	a.scene.PointerMoved(px, py)

	if imgui.IsMouseClickedBool(imgui.MouseButtonLeft) {
		a.scene.PointerDown(px, py, true)
	}
	if imgui.IsMouseDoubleClicked(imgui.MouseButtonLeft) {
		a.scene.DoubleClick(px, py)
	}
	if imgui.IsMouseReleased(imgui.MouseButtonLeft) {
		a.scene.PointerUp(px, py, true)
	}
	if imgui.IsMouseClickedBool(imgui.MouseButtonRight) {
		a.scene.PointerDown(px, py, false)
	}
	if imgui.IsMouseReleased(imgui.MouseButtonRight) {
		a.scene.PointerUp(px, py, false)
	}

	// Camera movement outside draw mode. The camera itself ignores input
	// while drawing, but skipping the calls keeps the drag anchor stable.
	if a.scene.InteractMode() != scene.ModeDraw {
		if imgui.IsMouseDragging(imgui.MouseButtonRight) {
			a.scene.Camera().HandleDrag(mouse.X-a.lastViewportMouse.X, mouse.Y-a.lastViewportMouse.Y)
		}
		if imgui.IsMouseDragging(imgui.MouseButtonMiddle) {
			a.scene.Camera().HandlePan(mouse.X-a.lastViewportMouse.X, mouse.Y-a.lastViewportMouse.Y)
		}
		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			a.scene.Camera().HandleZoom(wheel)
		}
	}
	a.lastViewportMouse = mouse
}
