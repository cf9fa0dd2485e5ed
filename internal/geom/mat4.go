package geom

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Mat4 is a column-major 4x4 matrix with mgl64's layout. Points are column
// vectors: p' = M * p.
type Mat4 mgl64.Mat4

func (v Vec3) mgl() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4(mgl64.Ident4())
}

// Translation returns a matrix translating by v.
func Translation(v Vec3) Mat4 {
	return Mat4(mgl64.Translate3D(v.X, v.Y, v.Z))
}

// RotationY returns a rotation of angle radians about the world Y axis.
// Positive angles turn -Z towards -X.
func RotationY(angle float64) Mat4 {
	return Mat4(mgl64.HomogRotate3DY(angle))
}

// Transform returns the world transform of an object at pos rotated by yaw:
// Translation(pos) * RotationY(yaw).
func Transform(pos Vec3, yaw float64) Mat4 {
	return Translation(pos).Mul(RotationY(yaw))
}

// Mul returns m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	return Mat4(mgl64.Mat4(m).Mul4(mgl64.Mat4(n)))
}

// MulPoint transforms p as a point (w = 1) and drops the resulting w.
// Only meaningful for affine matrices.
func (m Mat4) MulPoint(p Vec3) Vec3 {
	x, y, z, _ := m.MulVec4(p)
	return Vec3{x, y, z}
}

// MulVec4 transforms the homogeneous point (p, 1) and returns x, y, z, w.
func (m Mat4) MulVec4(p Vec3) (x, y, z, w float64) {
	return mgl64.Mat4(m).Mul4x1(p.mgl().Vec4(1)).Elem()
}

// LookAt returns the view matrix of an eye at eye looking at target.
// If the view direction is parallel to up, world -Z is used as up instead.
func LookAt(eye, target, up Vec3) Mat4 {
	if target.Sub(eye).Cross(up).LenSq() < 1e-12 {
		up = Vec3{0, 0, -1}
	}
	return Mat4(mgl64.LookAtV(eye.mgl(), target.mgl(), up.mgl()))
}

// Perspective returns an OpenGL-style projection matrix. fovY is the vertical
// field of view in degrees.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	return Mat4(mgl64.Perspective(mgl64.DegToRad(fovY), aspect, near, far))
}
