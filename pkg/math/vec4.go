package math

// Vec4 is a 4-component vector, used for homogeneous coordinates.
type Vec4 [4]float32

// XYZ returns the first three components as Vec3, without dividing by W.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// W returns the fourth component.
func (v Vec4) W() float32 {
	return v[3]
}

// PerspectiveDivide returns the XYZ components divided by W.
// Returns the undivided XYZ when W is zero.
func (v Vec4) PerspectiveDivide() Vec3 {
	if v[3] == 0 {
		return v.XYZ()
	}
	return Vec3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
}
