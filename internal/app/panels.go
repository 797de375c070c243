package app

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/maralbahari/pcd-segmentation-interface/internal/label"
	"github.com/maralbahari/pcd-segmentation-interface/internal/scene"
)

// renderToolsPanel renders mode and tool selection plus brush settings.
func (a *App) renderToolsPanel() {
	imgui.Text("Mode")

	modes := []struct {
		name string
		cmd  scene.Command
		tool scene.ToolType
	}{
		{"Navigate", scene.CmdNavigate, scene.ToolNone},
		{"Select", scene.CmdSelectSelector, scene.ToolSelector},
		{"Brush", scene.CmdSelectBrush, scene.ToolBrush},
		{"Box", scene.CmdSelectBox, scene.ToolBox},
		{"Polygon", scene.CmdSelectPolygon, scene.ToolPolygon},
		{"Curvature", scene.CmdSelectCurvature, scene.ToolCurvature},
	}
	for _, m := range modes {
		selected := a.scene.ActiveTool() == m.tool
		if imgui.SelectableBoolV(m.name, selected, 0, imgui.NewVec2(0, 0)) {
			a.scene.Execute(m.cmd)
		}
	}
	imgui.TextDisabled("(Right-drag orbit, wheel zoom)")

	if a.scene.InteractMode() == scene.ModeDraw {
		imgui.Separator()
		imgui.Text("Draw")

		if imgui.RadioButtonBool("Add", a.scene.DrawMode() == label.DrawAdd) {
			a.scene.Execute(scene.CmdDrawAdd)
		}
		imgui.SameLine()
		if imgui.RadioButtonBool("Erase", a.scene.DrawMode() == label.DrawErase) {
			a.scene.Execute(scene.CmdDrawErase)
		}

		if a.scene.ActiveTool() == scene.ToolBrush {
			size := a.scene.BrushSize()
			imgui.SetNextItemWidth(-1)
			if imgui.SliderFloatV("##brush", &size, scene.MinBrushSize, scene.MaxBrushSize, "brush %.3f", 0) {
				a.scene.SetBrushSize(size)
			}
		}
	}
}

// renderClassesPanel renders the label taxonomy list.
func (a *App) renderClassesPanel() {
	imgui.Text("Classes")

	if len(a.classes) == 0 {
		imgui.TextDisabled("No label classes loaded")
		return
	}

	active := a.scene.ActiveClass()
	for i := range a.classes {
		c := &a.classes[i]
		imgui.TextColored(imgui.NewVec4(c.Color[0], c.Color[1], c.Color[2], 1), "#")
		imgui.SameLine()
		name := fmt.Sprintf("%s##class%d", c.Name, c.ID)
		if imgui.SelectableBoolV(name, active == c, 0, imgui.NewVec2(0, 0)) {
			a.scene.SetActiveClass(c)
		}
	}
}

// renderFilterPanel renders the channel range filter, seeded from the
// loaded cloud's channel statistics.
func (a *App) renderFilterPanel() {
	imgui.Text("Filter")

	c := a.scene.Cloud()
	if c == nil || c.Buffer.NumChannels() <= 3 {
		imgui.TextDisabled("No filterable channels")
		return
	}

	preview := fmt.Sprintf("channel %d", a.filterChannel)
	if imgui.BeginCombo("##filterchannel", preview) {
		for ch := 3; ch < c.Buffer.NumChannels(); ch++ {
			name := fmt.Sprintf("channel %d", ch)
			if imgui.SelectableBoolV(name, ch == a.filterChannel, 0, imgui.NewVec2(0, 0)) {
				a.filterChannel = ch
				stats := a.channelStats[ch]
				a.filterMin = stats.P05
				a.filterMax = stats.P95
			}
		}
		imgui.EndCombo()
	}

	stats := a.channelStats[a.filterChannel]
	imgui.TextDisabled(fmt.Sprintf("min %.3f  max %.3f", stats.Min, stats.Max))
	imgui.TextDisabled(fmt.Sprintf("mean %.3f  median %.3f", stats.Mean, stats.Median))

	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##filtermin", &a.filterMin, stats.Min, stats.Max, "low %.3f", 0)
	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##filtermax", &a.filterMax, stats.Min, stats.Max, "high %.3f", 0)

	if imgui.Button("Apply##filter") {
		a.scene.SetFilter(a.filterChannel, a.filterMin, a.filterMax)
		a.renderer.SetCloud(a.scene.Filtered())
		a.filterActive = true
	}
	imgui.SameLine()
	if imgui.Button("Clear##filter") && a.filterActive {
		a.scene.ClearFilter()
		a.renderer.SetCloud(a.scene.Cloud())
		a.filterActive = false
	}
}

// renderSelectionsPanel lists the scene's selections; clicking one picks
// it for editing.
func (a *App) renderSelectionsPanel() {
	selections := a.scene.Selections()
	imgui.Text(fmt.Sprintf("Selections (%d)", len(selections)))

	if len(selections) == 0 {
		imgui.TextDisabled("Draw with a tool to create one")
		return
	}

	picked := a.scene.Picked()
	for _, sel := range selections {
		className := "unassigned"
		if sel.Class != nil {
			className = sel.Class.Name
		}
		name := fmt.Sprintf("%s  %d pts##%s", className, len(sel.Points), sel.ID)
		if imgui.SelectableBoolV(name, sel == picked, 0, imgui.NewVec2(0, 0)) {
			a.scene.PickSelection(sel)
		}
	}

	imgui.Separator()
	if imgui.Button("Clear Pick") {
		a.scene.ClearPicked()
	}
}

// renderStatusBar renders the bottom status strip.
func (a *App) renderStatusBar() {
	imgui.Text(a.status)
	imgui.SameLine()
	imgui.TextDisabled(fmt.Sprintf("| %v", a.scene.InteractMode()))
	if a.scene.InteractMode() == scene.ModeDraw {
		imgui.SameLine()
		imgui.TextDisabled(fmt.Sprintf("| %v / %v", a.scene.ActiveTool(), a.scene.DrawMode()))
	}
	if a.filterActive {
		imgui.SameLine()
		imgui.TextDisabled(fmt.Sprintf("| filter ch%d [%.2f, %.2f]", a.filterChannel, a.filterMin, a.filterMax))
	}
}
