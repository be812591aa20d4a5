package spring

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpinertia/game"
	"github.com/oomph-ac/fpinertia/settings"
)

const (
	movementMaxPosVelocity = 300
	movementMaxRotVelocity = 30
	movementDisabledDecay  = 5

	lateralBoost    = 1.5
	lateralToRoll   = 0.033
	forwardToHeight = 0.3
)

// MovementInput is the per-tick drive of a movement spring.
type MovementInput struct {
	// Velocity is the smoothed local movement: X strafe (right positive), Y forward.
	Velocity  mgl32.Vec3
	Intensity float32
	// Enabled is the global movement toggle; the bundle carries its own.
	Enabled     bool
	Strength    float32
	Threshold   float32
	ForwardBack bool
	// StanceInvert flips both movement invert flags of the bundle.
	StanceInvert bool
}

// Movement sways the rig against the direction of locomotion. Unlike the other springs it
// tracks a moving target instead of a fixed rest position.
type Movement struct {
	State State
}

func (mv *Movement) Reset() {
	mv.State.Reset()
}

// MovementTarget computes the position and rotation a movement spring chases.
func MovementTarget(b *settings.Bundle, in MovementInput) (pos, rot mgl32.Vec3) {
	invLateral := sign(b.InvertMovementLateral != in.StanceInvert)
	invForward := sign(b.InvertMovementForwardBack != in.StanceInvert)

	lateral, forward := math32.Abs(in.Velocity.X()), math32.Abs(in.Velocity.Y())
	total := lateral + forward
	strength := in.Strength * in.Intensity

	if lateral > in.Threshold {
		blended := strength * axisShare(lateral, total) * min(1, lateral/game.MovementReferenceSpeed) * lateralBoost
		norm := game.Clamp32(in.Velocity.X()/game.MovementReferenceSpeed, -1, 1)
		mult := max(0, norm)*b.MovementRightMult + max(0, -norm)*b.MovementLeftMult

		pos[0] = invLateral * -norm * mult * blended
		rot[2] = pos[0] * lateralToRoll
	}

	if in.ForwardBack && forward > in.Threshold {
		blended := strength * axisShare(forward, total) * min(1, forward/game.MovementReferenceSpeed)
		norm := game.Clamp32(in.Velocity.Y()/game.MovementReferenceSpeed, -1, 1)
		mult := max(0, norm)*b.MovementForwardMult + max(0, -norm)*b.MovementBackwardMult

		pos[1] = invForward * -norm * mult * blended
		pos[2] += pos[1] * forwardToHeight
	}

	return game.ClampVec3(pos, b.MovementMaxOffset), game.ClampVec3(rot, b.MovementMaxRotationRad())
}

// Update advances the spring by dt seconds. When movement sway is disabled globally, by the
// bundle, or by a zero intensity, the state eases back to rest instead of snapping.
func (mv *Movement) Update(b *settings.Bundle, in MovementInput, dt float32) {
	if !in.Enabled || !b.MovementInertiaEnabled || in.Intensity <= 0 {
		mv.State.Decay(min(1, dt*movementDisabledDecay))
		return
	}

	pos, rot := MovementTarget(b, in)
	k, c := b.MovementStiffness, b.MovementDamping
	integrate(&mv.State.PosOffset, &mv.State.PosVelocity, k, c, 1, pos.Mul(k), dt,
		Limits{MaxVelocity: movementMaxPosVelocity, MaxOffset: b.MovementMaxOffset})
	integrate(&mv.State.RotOffset, &mv.State.RotVelocity, k, c, 1, rot.Mul(k), dt,
		Limits{MaxVelocity: movementMaxRotVelocity, MaxOffset: b.MovementMaxRotationRad()})
}

// axisShare returns how much of the total speed belongs to one axis, so diagonal movement
// does not count twice.
func axisShare(axis, total float32) float32 {
	if total <= 0.1 {
		return 0
	}
	return axis / total
}
