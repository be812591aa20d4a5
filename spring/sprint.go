package spring

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpinertia/game"
	"github.com/oomph-ac/fpinertia/settings"
)

const (
	sprintMaxPosVelocity = 400
	sprintMaxRotVelocity = 40
	sprintMaxOffset      = 30
	sprintDisabledDecay  = 10

	// Impulse gains for starting and stopping a sprint. Stopping overshoots forward.
	sprintStartLift  = 20
	sprintStartPull  = 15
	sprintStartPitch = 10
	sprintStopDrop   = 25
	sprintStopPush   = 12
	sprintStopPitch  = 8

	instantBlendTime = 0.001
)

// Sprint kicks the rig when the player starts or stops sprinting and lets it settle back.
// The kick may be spread over the bundle's blend time.
type Sprint struct {
	State State

	progress   float32
	duration   float32
	pendingPos mgl32.Vec3
	pendingRot mgl32.Vec3
}

func (s *Sprint) Reset() {
	*s = Sprint{}
}

// SprintImpulse returns the velocity impulse for a sprint transition.
func SprintImpulse(b *settings.Bundle, starting bool) (pos, rot mgl32.Vec3) {
	rotImpulse := mgl32.DegToRad(b.SprintRotImpulse)
	if starting {
		return mgl32.Vec3{0, b.SprintImpulseY * sprintStartLift, -b.SprintImpulseZ * sprintStartPull},
			mgl32.Vec3{rotImpulse * sprintStartPitch, 0, 0}
	}
	return mgl32.Vec3{0, -b.SprintImpulseY * sprintStopDrop, b.SprintImpulseZ * sprintStopPush},
		mgl32.Vec3{-rotImpulse * sprintStopPitch, 0, 0}
}

// Update advances the spring by dt seconds given the sprint state of this and the previous tick.
func (s *Sprint) Update(b *settings.Bundle, sprinting, wasSprinting bool, dt float32) {
	if !b.SprintInertiaEnabled {
		s.State.Decay(min(1, dt*sprintDisabledDecay))
		s.progress = 0
		s.pendingPos, s.pendingRot = mgl32.Vec3{}, mgl32.Vec3{}
		return
	}

	if sprinting != wasSprinting {
		s.pendingPos, s.pendingRot = SprintImpulse(b, sprinting)
		s.duration, s.progress = b.SprintImpulseBlendTime, 0
		if s.duration <= instantBlendTime {
			s.State.AddImpulse(s.pendingPos, s.pendingRot)
			s.pendingPos, s.pendingRot = mgl32.Vec3{}, mgl32.Vec3{}
			s.progress = 1
		}
	}

	if s.progress < 1 && s.duration > instantBlendTime {
		prev := s.progress
		s.progress = min(1, s.progress+dt/s.duration)
		step := s.progress - prev
		s.State.AddImpulse(s.pendingPos.Mul(step), s.pendingRot.Mul(step))
		if s.progress >= 1 {
			s.pendingPos, s.pendingRot = mgl32.Vec3{}, mgl32.Vec3{}
		}
	}

	k, c := b.SprintStiffness, b.SprintDamping
	integrate(&s.State.PosOffset, &s.State.PosVelocity, k, c, 1, mgl32.Vec3{}, dt,
		Limits{MaxVelocity: sprintMaxPosVelocity, MaxOffset: sprintMaxOffset})
	integrate(&s.State.RotOffset, &s.State.RotVelocity, k, c, 1, mgl32.Vec3{}, dt,
		Limits{MaxVelocity: sprintMaxRotVelocity, MaxOffset: game.SpringRotationLimit})
}
