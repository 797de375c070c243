// Package cloud interprets flat channel-interleaved point data and maps it
// between the project's axis convention and the renderer's.
package cloud

import (
	"go.uber.org/zap"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/math"
)

// Format maps the renderer's x/y/z axes onto indices of a project-frame
// coordinate triple. X, Y and Z are always a permutation of {0, 1, 2}, so
// both directions of the mapping are exact.
type Format struct {
	Name    string
	X, Y, Z int
}

// The six canonical formats, one per axis permutation. The name spells which
// project axes feed the renderer's x, y and z in order.
var (
	FormatXYZ = Format{Name: "xyz", X: 0, Y: 1, Z: 2}
	FormatXZY = Format{Name: "xzy", X: 0, Y: 2, Z: 1}
	FormatYXZ = Format{Name: "yxz", X: 1, Y: 0, Z: 2}
	FormatYZX = Format{Name: "yzx", X: 1, Y: 2, Z: 0}
	FormatZXY = Format{Name: "zxy", X: 2, Y: 0, Z: 1}
	FormatZYX = Format{Name: "zyx", X: 2, Y: 1, Z: 0}
)

// Formats lists all canonical formats in a stable order.
var Formats = []Format{
	FormatXYZ, FormatXZY, FormatYXZ, FormatYZX, FormatZXY, FormatZYX,
}

// FormatByName returns the canonical format with the given name.
// Unknown names fall back to FormatXYZ with a logged warning.
func FormatByName(name string) Format {
	for _, f := range Formats {
		if f.Name == name {
			return f
		}
	}
	zap.L().Warn("unknown coordinate format, falling back to xyz",
		zap.String("name", name))
	return FormatXYZ
}

// ToRenderer converts a project-frame coordinate triple to a renderer-frame
// vector.
func (f Format) ToRenderer(p [3]float32) math.Vec3 {
	return math.Vec3{X: p[f.X], Y: p[f.Y], Z: p[f.Z]}
}

// ToProject converts a renderer-frame vector back to a project-frame
// coordinate triple. Exact inverse of ToRenderer.
func (f Format) ToProject(v math.Vec3) [3]float32 {
	var p [3]float32
	p[f.X] = v.X
	p[f.Y] = v.Y
	p[f.Z] = v.Z
	return p
}
