package spring

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpinertia/game"
)

// State is the offset and velocity of one spring-damper. Positions are in rig-local units and
// rotations in radians.
type State struct {
	PosOffset   mgl32.Vec3
	PosVelocity mgl32.Vec3
	RotOffset   mgl32.Vec3
	RotVelocity mgl32.Vec3
}

// Reset zeroes the state.
func (s *State) Reset() {
	*s = State{}
}

// Decay pulls every offset and velocity toward zero by rate, where 1 zeroes the state.
func (s *State) Decay(rate float32) {
	rate = game.Clamp32(rate, 0, 1)
	keep := 1 - rate
	s.PosOffset = s.PosOffset.Mul(keep)
	s.PosVelocity = s.PosVelocity.Mul(keep)
	s.RotOffset = s.RotOffset.Mul(keep)
	s.RotVelocity = s.RotVelocity.Mul(keep)
}

// AddImpulse adds an instantaneous velocity change.
func (s *State) AddImpulse(pos, rot mgl32.Vec3) {
	s.PosVelocity = s.PosVelocity.Add(pos)
	s.RotVelocity = s.RotVelocity.Add(rot)
}

// ScaleVelocity multiplies both velocities by f.
func (s *State) ScaleVelocity(f float32) {
	s.PosVelocity = s.PosVelocity.Mul(f)
	s.RotVelocity = s.RotVelocity.Mul(f)
}

// OffsetMagnitude returns the combined length of the position and rotation offsets.
func (s *State) OffsetMagnitude() float32 {
	return math32.Sqrt(s.PosOffset.LenSqr() + s.RotOffset.LenSqr())
}

// Limits bounds one channel (position or rotation) of a spring.
type Limits struct {
	MaxVelocity float32
	MaxOffset   float32
}

// Substeps returns how many integration steps a tick of dt seconds is split into, and the
// length of each step.
func Substeps(dt float32) (int, float32) {
	n := int(math32.Ceil(dt / game.SubstepInterval))
	n = min(max(n, 1), game.MaxSubsteps)
	return n, dt / float32(n)
}

// integrate advances one channel under F = -k·x - c·v + drive with semi-implicit Euler. The
// velocity is clamped before it is used to move the offset, and the offset is clamped after
// every sub-step.
func integrate(offset, velocity *mgl32.Vec3, k, c, m float32, drive mgl32.Vec3, dt float32, lim Limits) {
	steps, h := Substeps(dt)
	for range steps {
		for i := range 3 {
			force := -k*offset[i] - c*velocity[i] + drive[i]
			velocity[i] = game.Clamp32(velocity[i]+force/m*h, -lim.MaxVelocity, lim.MaxVelocity)
			offset[i] = game.Clamp32(offset[i]+velocity[i]*h, -lim.MaxOffset, lim.MaxOffset)
		}
	}
}
