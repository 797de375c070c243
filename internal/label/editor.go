package label

import (
	"go.uber.org/zap"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/geom"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// DrawMode decides whether points captured by a drawn shape are unioned
// into (add) or subtracted from (erase) the target selection.
type DrawMode int

// Draw modes.
const (
	DrawAdd DrawMode = iota
	DrawErase
)

// String returns a human-readable mode name.
func (m DrawMode) String() string {
	if m == DrawErase {
		return "erase"
	}
	return "add"
}

// Editor turns drawn shapes into selection mutations. All calls are
// synchronous; the notification callbacks fire before the call returns.
type Editor struct {
	// OnSelectionAdded fires when a drawn shape first captures points,
	// carrying the new selection and the captured points.
	OnSelectionAdded func(sel *Selection, points []math.Vec3)

	// OnSelectionChanged fires when an existing selection is grown or
	// shrunk, carrying the added or removed points.
	OnSelectionChanged func(sel *Selection, points []math.Vec3)
}

// NewEditor creates an editor with no listeners attached.
func NewEditor() *Editor {
	return &Editor{}
}

// Create captures the cloud points inside shape into a new selection with
// the given class. Shapes that capture nothing produce no selection and no
// notification; a nil class is a silent no-op since the drawn shape has no
// classification target.
func (e *Editor) Create(shape geom.Shape, class *Class, cloud Projected) *Selection {
	if class == nil {
		return nil
	}

	matched := queryShape(shape, cloud)
	if len(matched) == 0 {
		return nil
	}

	sel := NewSelection(matched, class)
	zap.L().Debug("selection created",
		zap.String("id", sel.ID),
		zap.String("class", class.String()),
		zap.Int("points", len(matched)))

	if e.OnSelectionAdded != nil {
		e.OnSelectionAdded(sel, matched)
	}
	return sel
}

// Modify grows or shrinks an existing selection from a drawn shape. In add
// mode the captured cloud points are concatenated onto the selection;
// duplicates are deliberately not collapsed, so re-adding an overlapping
// region keeps both copies. In erase mode the shape is queried against the
// selection's own projected points and matches are removed by exact
// coordinate equality.
//
// The selection's point slice is replaced wholesale. Shapes matching no
// points emit nothing.
func (e *Editor) Modify(shape geom.Shape, cloud Projected, sel *Selection, selView Projected, mode DrawMode) {
	if sel == nil {
		return
	}

	var matched []math.Vec3
	switch mode {
	case DrawErase:
		matched = queryShape(shape, selView)
		if len(matched) == 0 {
			return
		}
		sel.Points = subtractPoints(sel.Points, matched)
	default:
		matched = queryShape(shape, cloud)
		if len(matched) == 0 {
			return
		}
		sel.Points = append(sel.Points, matched...)
	}

	zap.L().Debug("selection changed",
		zap.String("id", sel.ID),
		zap.String("mode", mode.String()),
		zap.Int("matched", len(matched)),
		zap.Int("total", len(sel.Points)))

	if e.OnSelectionChanged != nil {
		e.OnSelectionChanged(sel, matched)
	}
}

// queryShape returns the points whose cached NDC projection falls inside
// the shape. Invalid projections carry NaN coordinates and fail every
// containment test.
func queryShape(shape geom.Shape, view Projected) []math.Vec3 {
	var matched []math.Vec3
	for i, ndc := range view.NDC {
		if shape.Contains(ndc) {
			matched = append(matched, view.Points[i])
		}
	}
	return matched
}

// subtractPoints removes every element of remove from points by exact
// equality, preserving order of the remainder.
func subtractPoints(points, remove []math.Vec3) []math.Vec3 {
	removeSet := make(map[math.Vec3]int, len(remove))
	for _, p := range remove {
		removeSet[p]++
	}

	kept := points[:0:0]
	for _, p := range points {
		if n := removeSet[p]; n > 0 {
			removeSet[p] = n - 1
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
