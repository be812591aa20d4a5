package spring

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpinertia/game"
	"github.com/oomph-ac/fpinertia/settings"
)

const (
	jumpMaxPosVelocity = 500
	jumpMaxRotVelocity = 50
	jumpMaxOffset      = 40
	jumpDisabledDecay  = 10

	takeoffLift  = 15
	takeoffPull  = 20
	takeoffPitch = 8
	landDrop     = 20
	landPull     = 25
	landPitch    = 10

	// DefaultJumpStiffness and DefaultJumpDamping are the airborne parameters a freshly reset
	// jump spring starts with.
	DefaultJumpStiffness = float32(40)
	DefaultJumpDamping   = float32(3)

	minAirScale          = 0.3
	landingFloor         = 0.3
	landingDampThreshold = 0.3
	fallLandingScale     = 0.7
)

// JumpInput describes the airborne state for one tick.
type JumpInput struct {
	InAir    bool
	WasInAir bool
	// DidJump distinguishes a jump from walking off a ledge. It is sampled at takeoff.
	DidJump bool
	Landed  bool
	AirTime float32
}

// Jump kicks the rig at takeoff and on landing. While airborne it runs loose so momentum
// carries; on landing it switches to a tight spring for a quick recovery.
type Jump struct {
	State State

	stiffness float32
	damping   float32
}

// NewJump returns a jump spring at rest with airborne parameters.
func NewJump() Jump {
	return Jump{stiffness: DefaultJumpStiffness, damping: DefaultJumpDamping}
}

func (j *Jump) Reset() {
	*j = NewJump()
}

// Parameters returns the stiffness and damping currently in effect.
func (j *Jump) Parameters() (stiffness, damping float32) {
	return j.stiffness, j.damping
}

// Settledness returns how close the state is to rest: 1 when idle, 0 at or above the energy
// a typical jump produces.
func Settledness(s *State) float32 {
	return 1 - normalizedEnergy(s)
}

func normalizedEnergy(s *State) float32 {
	return game.Clamp32(s.PosOffset.Len()/20+s.PosVelocity.Len()/200, 0, 1)
}

// LandingScale returns the multiplier applied to the landing impulse. Longer falls land harder;
// a spring still carrying energy from the jump receives a smaller kick, but never less than
// the floor share of it.
func LandingScale(s *State, airTime float32, didJump bool, airTimeScale float32) float32 {
	normAir := game.Clamp32((airTime-0.1)/1.5, 0, 1)
	base := float32(1)
	if !didJump {
		base = fallLandingScale
	}
	scale := base * (minAirScale + normAir*airTimeScale)
	return scale * (landingFloor + (1-landingFloor)*Settledness(s))
}

// Update advances the spring by dt seconds.
func (j *Jump) Update(b *settings.Bundle, in JumpInput, dt float32) {
	if !b.JumpInertiaEnabled {
		j.State.Decay(min(1, dt*jumpDisabledDecay))
		return
	}

	switch {
	case in.InAir && !in.WasInAir:
		j.stiffness, j.damping = b.JumpStiffness, b.JumpDamping
		y, z, rot := b.JumpImpulseY, b.JumpImpulseZ, b.JumpRotImpulse
		if !in.DidJump {
			y, z, rot = b.FallImpulseY, b.FallImpulseZ, b.FallRotImpulse
		}
		j.State.AddImpulse(
			mgl32.Vec3{0, y * takeoffLift, -z * takeoffPull},
			mgl32.Vec3{mgl32.DegToRad(rot) * takeoffPitch, 0, 0},
		)
	case in.Landed:
		j.stiffness, j.damping = b.LandStiffness, b.LandDamping

		energy := normalizedEnergy(&j.State)
		scale := LandingScale(&j.State, in.AirTime, in.DidJump, b.AirTimeImpulseScale)
		if energy > landingDampThreshold {
			j.State.ScaleVelocity(0.5 + 0.5*(1-energy))
		}
		j.State.AddImpulse(
			mgl32.Vec3{0, -b.LandImpulseY * scale * landDrop, -b.LandImpulseZ * scale * landPull},
			mgl32.Vec3{mgl32.DegToRad(b.LandRotImpulse) * scale * landPitch, 0, 0},
		)
	}

	integrate(&j.State.PosOffset, &j.State.PosVelocity, j.stiffness, j.damping, 1, mgl32.Vec3{}, dt,
		Limits{MaxVelocity: jumpMaxPosVelocity, MaxOffset: jumpMaxOffset})
	integrate(&j.State.RotOffset, &j.State.RotVelocity, j.stiffness, j.damping, 1, mgl32.Vec3{}, dt,
		Limits{MaxVelocity: jumpMaxRotVelocity, MaxOffset: game.SpringRotationLimit})
}
