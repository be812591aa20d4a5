package spring

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpinertia/game"
	"github.com/oomph-ac/fpinertia/settings"
)

const (
	cameraMaxPosVelocity = 500
	cameraMaxRotVelocity = 50

	cameraYawToOffset   = 2.0
	cameraPitchToOffset = 1.5
	cameraPitchToRot    = 0.08
	cameraYawToRot      = 0.06
	cameraYawToRoll     = 0.04
)

// CameraInput is the per-tick drive of a camera spring.
type CameraInput struct {
	// Velocity is the smoothed camera angular velocity: X pitch, Z yaw, in rad/s.
	Velocity mgl32.Vec3
	// Intensity is the product of the global intensity and every blend factor.
	Intensity   float32
	DampingMult float32
	// StanceInvert flips both invert flags of the bundle.
	StanceInvert   bool
	EnablePosition bool
	EnableRotation bool
}

// Camera makes the rig lag behind camera rotation. It chases a target offset proportional to
// the camera's angular velocity, so the rig returns to rest once the camera stops.
type Camera struct {
	State State
}

func (c *Camera) Reset() {
	c.State.Reset()
}

// Update advances the spring by dt seconds.
func (c *Camera) Update(b *settings.Bundle, in CameraInput, dt float32) {
	if in.Intensity <= 0 {
		c.State.Reset()
		return
	}

	invPitch, invYaw := sign(b.InvertCameraPitch != in.StanceInvert), sign(b.InvertCameraYaw != in.StanceInvert)
	pitchVel, yawVel := in.Velocity.X(), in.Velocity.Z()
	k, m := b.Stiffness, b.Mass
	damping := b.Damping * max(in.DampingMult, 1)
	if m <= 0 {
		m = 1
	}

	if in.EnablePosition {
		target := game.ClampVec3(mgl32.Vec3{
			invYaw * -yawVel * cameraYawToOffset * in.Intensity,
			0,
			invPitch * pitchVel * cameraPitchToOffset * in.Intensity * b.CameraPitchMult,
		}, b.MaxOffset*2)
		integrate(&c.State.PosOffset, &c.State.PosVelocity, k, damping, m, target.Mul(k*0.5), dt,
			Limits{MaxVelocity: cameraMaxPosVelocity, MaxOffset: b.MaxOffset})
	}

	if in.EnableRotation {
		maxRot := b.MaxRotationRad()
		target := game.ClampVec3(mgl32.Vec3{
			invPitch * pitchVel * cameraPitchToRot * in.Intensity * b.PitchMultiplier * b.CameraPitchMult,
			invYaw * -yawVel * cameraYawToRot * in.Intensity,
			invYaw * -yawVel * cameraYawToRoll * in.Intensity * b.RollMultiplier,
		}, maxRot*2)
		integrate(&c.State.RotOffset, &c.State.RotVelocity, k, damping, m, target.Mul(k*0.5), dt,
			Limits{MaxVelocity: cameraMaxRotVelocity, MaxOffset: maxRot})
	}
}

func sign(inverted bool) float32 {
	if inverted {
		return -1
	}
	return 1
}
