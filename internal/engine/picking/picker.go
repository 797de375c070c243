package picking

import (
	"slices"

	"go.uber.org/zap"
)

// Hit is a single ray intersection. Intersect functions return hits sorted
// by ascending distance; the first entry is the nearest.
type Hit struct {
	Distance float32
}

// IntersectFunc computes the ray intersections of one object. A nil or empty
// result means the ray misses the object.
type IntersectFunc[T comparable] func(obj T, ray Ray) []Hit

// RayFunc maps a pointer position in pixels to a world-space ray.
type RayFunc func(x, y float32) Ray

// Picker resolves pointer input into hover and select transitions over a
// tracked object collection. At most one object is hovered and at most one
// selected at any time; either may independently be the zero value of T.
//
// All methods are synchronous and must be driven from the input callback;
// the event callbacks fire before the driving call returns.
type Picker[T comparable] struct {
	HoverEnabled  bool
	SelectEnabled bool

	// Transition callbacks; nil callbacks are skipped. The bool flag is true
	// for pointer-driven transitions, false for programmatic ones.
	OnHoverEnter  func(obj T, fromPointer bool)
	OnHoverExit   func(obj T, fromPointer bool)
	OnSelectEnter func(obj T, fromPointer bool)
	OnSelectExit  func(obj T, fromPointer bool)

	objects   []T
	hovered   T
	selected  T
	ray       Ray
	rayAt     RayFunc
	intersect IntersectFunc[T]
}

// NewPicker creates a picker over the given ray provider and intersection
// function. Hover and select start enabled.
func NewPicker[T comparable](rayAt RayFunc, intersect IntersectFunc[T]) *Picker[T] {
	return &Picker[T]{
		HoverEnabled:  true,
		SelectEnabled: true,
		rayAt:         rayAt,
		intersect:     intersect,
	}
}

// Objects returns the tracked object slice.
func (p *Picker[T]) Objects() []T { return p.objects }

// SetObjects replaces the tracked object set, clearing any current hover and
// selection. Iteration order of the slice decides intersection ties.
func (p *Picker[T]) SetObjects(objs []T) {
	p.setHovered(p.zero(), false)
	p.setSelected(p.zero(), false)
	p.objects = objs
}

// AddObject appends one object to the tracked set without disturbing the
// current hover or selection. Used to keep the set in sync as objects are
// created.
func (p *Picker[T]) AddObject(obj T) {
	p.objects = append(p.objects, obj)
}

// Hovered returns the currently hovered object, or the zero value of T.
func (p *Picker[T]) Hovered() T { return p.hovered }

// Selected returns the currently selected object, or the zero value of T.
func (p *Picker[T]) Selected() T { return p.selected }

// SetHovered programmatically assigns the hovered object.
func (p *Picker[T]) SetHovered(obj T) { p.setHovered(obj, false) }

// SetSelected programmatically assigns the selected object.
func (p *Picker[T]) SetSelected(obj T) { p.setSelected(obj, false) }

// PointerMoved updates the pick ray and, when hovering is enabled,
// re-resolves the hovered object. The ray is kept current even while
// hovering is disabled, so re-enabling hover immediately reflects the latest
// pointer position.
func (p *Picker[T]) PointerMoved(x, y float32) {
	p.ray = p.rayAt(x, y)
	if p.HoverEnabled {
		p.setHovered(p.resolveHovered(), true)
	}
}

// PointerDown commits the currently hovered object as selected. Only the
// primary button selects; selection must be enabled.
func (p *Picker[T]) PointerDown(primary bool) {
	if !primary || !p.SelectEnabled {
		return
	}
	p.setSelected(p.hovered, true)
}

// resolveHovered scans all tracked objects and returns the one whose first
// intersection is globally nearest. Ties keep the earlier object in slice
// order. Returns the zero value when nothing intersects.
func (p *Picker[T]) resolveHovered() T {
	best := p.zero()
	var bestDist float32
	found := false

	for _, obj := range p.objects {
		hits := p.intersect(obj, p.ray)
		if len(hits) == 0 {
			continue
		}
		if !found || hits[0].Distance < bestDist {
			best = obj
			bestDist = hits[0].Distance
			found = true
		}
	}

	return best
}

func (p *Picker[T]) setHovered(obj T, fromPointer bool) {
	if obj == p.hovered {
		return
	}
	p.warnIfUntracked(obj, "hovered")

	prev := p.hovered
	p.hovered = obj
	if prev != p.zero() && p.OnHoverExit != nil {
		p.OnHoverExit(prev, fromPointer)
	}
	if obj != p.zero() && p.OnHoverEnter != nil {
		p.OnHoverEnter(obj, fromPointer)
	}
}

func (p *Picker[T]) setSelected(obj T, fromPointer bool) {
	if obj == p.selected {
		return
	}
	p.warnIfUntracked(obj, "selected")

	prev := p.selected
	p.selected = obj
	if prev != p.zero() && p.OnSelectExit != nil {
		p.OnSelectExit(prev, fromPointer)
	}
	if obj != p.zero() && p.OnSelectEnter != nil {
		p.OnSelectEnter(obj, fromPointer)
	}
}

// warnIfUntracked logs when an object outside the tracked set is written
// into a pick role. The transition still happens.
func (p *Picker[T]) warnIfUntracked(obj T, role string) {
	if obj == p.zero() {
		return
	}
	if !slices.Contains(p.objects, obj) {
		zap.L().Warn("picker assigned object not in tracked set",
			zap.String("role", role))
	}
}

func (p *Picker[T]) zero() T {
	var zero T
	return zero
}
