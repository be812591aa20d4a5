package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Clamp32 restricts v to [lo, hi].
func Clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SmoothStep maps t in [0, 1] onto the cubic Hermite curve 3t²-2t³.
func SmoothStep(t float32) float32 {
	return t * t * (3 - 2*t)
}

// Approach moves current toward target by at most rate, never overshooting.
func Approach(current, target, rate float32) float32 {
	if current < target {
		return math32.Min(current+rate, target)
	}
	return math32.Max(current-rate, target)
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// WrapAngle wraps a delta in radians into (-π, π]. A non-finite delta wraps to 0.
func WrapAngle(delta float32) float32 {
	if !Finite(delta) {
		return 0
	}
	delta = math32.Remainder(delta, 2*math32.Pi)
	if delta <= -math32.Pi {
		delta = math32.Pi
	}
	return delta
}

// ClampVec3 clamps each component of v to [-limit, limit].
func ClampVec3(v mgl32.Vec3, limit float32) mgl32.Vec3 {
	return mgl32.Vec3{
		Clamp32(v[0], -limit, limit),
		Clamp32(v[1], -limit, limit),
		Clamp32(v[2], -limit, limit),
	}
}

// LerpVec3 ...
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// AnyAbove reports whether any component of v has a magnitude above threshold.
func AnyAbove(v mgl32.Vec3, threshold float32) bool {
	return math32.Abs(v[0]) > threshold || math32.Abs(v[1]) > threshold || math32.Abs(v[2]) > threshold
}

// EulerToMat3 builds the rotation matrix for XYZ Euler angles in radians.
func EulerToMat3(rot mgl32.Vec3) mgl32.Mat3 {
	cx, sx := math32.Cos(rot[0]), math32.Sin(rot[0])
	cy, sy := math32.Cos(rot[1]), math32.Sin(rot[1])
	cz, sz := math32.Cos(rot[2]), math32.Sin(rot[2])

	return mgl32.Mat3FromRows(
		mgl32.Vec3{cy * cz, -cy * sz, sy},
		mgl32.Vec3{sx*sy*cz + cx*sz, -sx*sy*sz + cx*cz, -sx * cy},
		mgl32.Vec3{-cx*sy*cz + sx*sz, cx*sy*sz + sx*cz, cx * cy},
	)
}
