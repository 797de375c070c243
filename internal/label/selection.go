package label

import (
	"github.com/google/uuid"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// Selection is a classified subset of the cloud's points, rendered and
// edited as a unit. Points are renderer-frame and replaced wholesale by the
// editor on every add/erase pass. Selections live for the process lifetime;
// the scene owns the only list of them.
type Selection struct {
	ID        string
	Points    []math.Vec3
	PointSize float32
	Class     *Class
}

// DefaultSelectionPointSize is the display size for newly created
// selections, slightly larger than the cloud so captured points read as a
// layer on top.
const DefaultSelectionPointSize = 4.0

// NewSelection creates a selection over the given points. IDs are UUIDs, so
// they are collision-free across a session.
func NewSelection(points []math.Vec3, class *Class) *Selection {
	return &Selection{
		ID:        uuid.NewString(),
		Points:    points,
		PointSize: DefaultSelectionPointSize,
		Class:     class,
	}
}

// Bounds returns the axis-aligned bounds of the selection's points.
func (s *Selection) Bounds() (min, max math.Vec3) {
	if len(s.Points) == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	min = s.Points[0]
	max = s.Points[0]
	for _, p := range s.Points[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}
