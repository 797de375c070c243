// Package renderer draws point clouds, selections and tool overlays with
// OpenGL 4.1 core.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/maralbahari/pcd-segmentation-interface/internal/engine/shader"
	"github.com/maralbahari/pcd-segmentation-interface/internal/label"
	"github.com/maralbahari/pcd-segmentation-interface/internal/logger"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	// ClearColor is the viewport background, RGBA in [0,1].
	ClearColor [4]float32
}

// cloudGray is the base color of unlabeled points before intensity
// modulation.
const cloudGray = 0.75

// Frame describes one frame of the annotation viewport.
type Frame struct {
	ViewProj math.Mat4

	// HoveredID and PickedID brighten the matching selection mesh.
	HoveredID string
	PickedID  string

	// Preview is the active tool outline in NDC, drawn as a closed loop.
	// Empty means no overlay.
	Preview []math.Vec2
}

// pointMesh is one uploaded point batch: interleaved position (3) and
// color (3) floats.
type pointMesh struct {
	vao       uint32
	vbo       uint32
	count     int32
	pointSize float32
}

// Renderer owns the GL programs and meshes for the annotation viewport.
// All methods must run on the thread holding the GL context.
type Renderer struct {
	config Config

	pointProgram   uint32
	uViewProj      int32
	uPointSize     int32
	uBrightness    int32
	overlayProgram uint32
	uOverlayColor  int32

	cloud      *pointMesh
	selections map[string]*pointMesh

	overlayVAO uint32
	overlayVBO uint32
}

// New creates a renderer. Must be called after the OpenGL context is
// current on this thread.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:     cfg,
		selections: make(map[string]*pointMesh),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	var err error
	r.pointProgram, err = shader.CompileProgram(pointVertexSrc, pointFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("point shader: %w", err)
	}
	r.uViewProj = shader.GetUniform(r.pointProgram, "uViewProj")
	r.uPointSize = shader.GetUniform(r.pointProgram, "uPointSize")
	r.uBrightness = shader.GetUniform(r.pointProgram, "uBrightness")

	r.overlayProgram, err = shader.CompileProgram(overlayVertexSrc, overlayFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("overlay shader: %w", err)
	}
	r.uOverlayColor = shader.GetUniform(r.overlayProgram, "uColor")

	gl.GenVertexArrays(1, &r.overlayVAO)
	gl.BindVertexArray(r.overlayVAO)
	gl.GenBuffers(1, &r.overlayVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.overlayVBO)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return r, nil
}

// Close releases all GL resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.destroyMesh(r.cloud)
	r.cloud = nil
	for id, mesh := range r.selections {
		r.destroyMesh(mesh)
		delete(r.selections, id)
	}
	if r.overlayVAO != 0 {
		gl.DeleteVertexArrays(1, &r.overlayVAO)
	}
	if r.overlayVBO != 0 {
		gl.DeleteBuffers(1, &r.overlayVBO)
	}
	if r.pointProgram != 0 {
		gl.DeleteProgram(r.pointProgram)
	}
	if r.overlayProgram != 0 {
		gl.DeleteProgram(r.overlayProgram)
	}
}

// Resize updates the GL viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetCloud uploads the display cloud, replacing any previous one. A nil
// cloud clears the mesh. Points are tinted gray, modulated by the first
// extra channel (intensity) when present.
func (r *Renderer) SetCloud(c *label.Cloud) {
	r.destroyMesh(r.cloud)
	r.cloud = nil
	if c == nil || c.Buffer.NumPoints() == 0 {
		return
	}

	buf := c.Buffer
	n := buf.NumPoints()
	var intensity []float32
	if buf.NumChannels() > 3 {
		intensity = normalizeChannel(buf.Channel(3))
	}

	vertices := make([]float32, 0, n*6)
	for i := 0; i < n; i++ {
		pos := buf.Coords(i)
		shade := float32(cloudGray)
		if intensity != nil {
			shade = cloudGray * (0.35 + 0.65*intensity[i])
		}
		vertices = append(vertices, pos.X, pos.Y, pos.Z, shade, shade, shade)
	}

	r.cloud = r.uploadMesh(vertices, c.PointSize)
	logger.Debug("cloud mesh uploaded", zap.Int("points", n))
}

// SetSelection uploads or replaces one selection mesh, colored by its
// class. Selections with no class render white.
func (r *Renderer) SetSelection(sel *label.Selection) {
	if sel == nil {
		return
	}
	if old, ok := r.selections[sel.ID]; ok {
		r.destroyMesh(old)
		delete(r.selections, sel.ID)
	}
	if len(sel.Points) == 0 {
		return
	}

	color := [3]float32{1, 1, 1}
	if sel.Class != nil {
		color = sel.Class.Color
	}

	vertices := make([]float32, 0, len(sel.Points)*6)
	for _, p := range sel.Points {
		vertices = append(vertices, p.X, p.Y, p.Z, color[0], color[1], color[2])
	}

	r.selections[sel.ID] = r.uploadMesh(vertices, sel.PointSize)
}

// RemoveSelection drops one selection mesh.
func (r *Renderer) RemoveSelection(id string) {
	if mesh, ok := r.selections[id]; ok {
		r.destroyMesh(mesh)
		delete(r.selections, id)
	}
}

// ClearSelections drops all selection meshes.
func (r *Renderer) ClearSelections() {
	for id, mesh := range r.selections {
		r.destroyMesh(mesh)
		delete(r.selections, id)
	}
}

// Render draws one frame: the cloud, every selection with hover/pick
// highlighting, then the tool overlay on top.
func (r *Renderer) Render(frame Frame) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.pointProgram)
	viewProj := frame.ViewProj
	gl.UniformMatrix4fv(r.uViewProj, 1, false, viewProj.Ptr())

	if r.cloud != nil {
		r.drawMesh(r.cloud, 1.0)
	}
	for id, mesh := range r.selections {
		brightness := float32(1.0)
		switch id {
		case frame.PickedID:
			brightness = 1.6
		case frame.HoveredID:
			brightness = 1.3
		}
		r.drawMesh(mesh, brightness)
	}

	if len(frame.Preview) >= 2 {
		r.drawOverlay(frame.Preview)
	}
}

func (r *Renderer) drawMesh(mesh *pointMesh, brightness float32) {
	gl.Uniform1f(r.uPointSize, mesh.pointSize)
	gl.Uniform1f(r.uBrightness, brightness)
	gl.BindVertexArray(mesh.vao)
	gl.DrawArrays(gl.POINTS, 0, mesh.count)
	gl.BindVertexArray(0)
}

// drawOverlay renders the tool outline as an NDC line loop over the
// scene, ignoring depth.
func (r *Renderer) drawOverlay(points []math.Vec2) {
	flat := make([]float32, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, p.X, p.Y)
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(r.overlayProgram)
	gl.Uniform3f(r.uOverlayColor, 1.0, 0.85, 0.1)

	gl.BindVertexArray(r.overlayVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.overlayVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(flat)*4, gl.Ptr(flat), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.LINE_LOOP, 0, int32(len(points)))
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

func (r *Renderer) uploadMesh(vertices []float32, pointSize float32) *pointMesh {
	mesh := &pointMesh{
		count:     int32(len(vertices) / 6),
		pointSize: pointSize,
	}

	gl.GenVertexArrays(1, &mesh.vao)
	gl.BindVertexArray(mesh.vao)

	gl.GenBuffers(1, &mesh.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return mesh
}

func (r *Renderer) destroyMesh(mesh *pointMesh) {
	if mesh == nil {
		return
	}
	if mesh.vao != 0 {
		gl.DeleteVertexArrays(1, &mesh.vao)
	}
	if mesh.vbo != 0 {
		gl.DeleteBuffers(1, &mesh.vbo)
	}
}

// normalizeChannel rescales a channel into [0,1]. A flat channel maps to
// all ones.
func normalizeChannel(values []float32) []float32 {
	if len(values) == 0 {
		return nil
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := make([]float32, len(values))
	span := max - min
	if span == 0 {
		for i := range out {
			out[i] = 1
		}
		return out
	}
	for i, v := range values {
		out[i] = (v - min) / span
	}
	return out
}

const pointVertexSrc = `
	#version 410 core

	layout (location = 0) in vec3 aPos;
	layout (location = 1) in vec3 aColor;

	uniform mat4 uViewProj;
	uniform float uPointSize;
	uniform float uBrightness;

	out vec3 vColor;

	void main() {
		gl_Position = uViewProj * vec4(aPos, 1.0);
		gl_PointSize = uPointSize;
		vColor = aColor * uBrightness;
	}
`

const pointFragmentSrc = `
	#version 410 core

	in vec3 vColor;
	out vec4 FragColor;

	void main() {
		vec2 d = gl_PointCoord - vec2(0.5);
		if (dot(d, d) > 0.25) {
			discard;
		}
		FragColor = vec4(vColor, 1.0);
	}
`

const overlayVertexSrc = `
	#version 410 core

	layout (location = 0) in vec2 aPos;

	void main() {
		gl_Position = vec4(aPos, 0.0, 1.0);
	}
`

const overlayFragmentSrc = `
	#version 410 core

	uniform vec3 uColor;
	out vec4 FragColor;

	void main() {
		FragColor = vec4(uColor, 1.0);
	}
`
