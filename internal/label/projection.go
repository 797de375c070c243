package label

import (
	"github.com/maralbahari/pcd-segmentation-interface/internal/engine/camera"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// Projected pairs an entity's world-space points with their cached NDC
// projections, index-aligned. Spatial queries consume this view; they never
// reach back into live entity fields.
type Projected struct {
	Points []math.Vec3
	NDC    []math.Vec2
}

// Projections caches NDC snapshots per entity id. Snapshots are only valid
// for the camera pose they were refreshed against; the scene refreshes them
// on entering draw mode and after selection edits.
type Projections struct {
	byID map[string][]math.Vec2
}

// NewProjections creates an empty projection cache.
func NewProjections() *Projections {
	return &Projections{byID: make(map[string][]math.Vec2)}
}

// Refresh recomputes and stores the NDC snapshot for one entity.
func (pc *Projections) Refresh(id string, points []math.Vec3, proj *camera.Projector) {
	pc.byID[id] = proj.ProjectAll(points)
}

// View returns the projected view for an entity, or ok=false when the
// cached snapshot is missing or no longer index-aligned with the points.
func (pc *Projections) View(id string, points []math.Vec3) (Projected, bool) {
	ndc, ok := pc.byID[id]
	if !ok || len(ndc) != len(points) {
		return Projected{}, false
	}
	return Projected{Points: points, NDC: ndc}, true
}

// Drop removes an entity's snapshot.
func (pc *Projections) Drop(id string) {
	delete(pc.byID, id)
}
