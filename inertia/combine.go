package inertia

import (
	"github.com/chewxy/math32"
	"github.com/oomph-ac/fpinertia/game"
	"github.com/oomph-ac/fpinertia/settings"
	"github.com/oomph-ac/fpinertia/spring"
)

// simultaneousBlendRange is how far above the threshold both springs must be for the
// simultaneous multipliers to apply fully.
const simultaneousBlendRange = 1.0

func cameraActivity(s *spring.State) float32 {
	p, r := s.PosOffset, s.RotOffset
	return math32.Sqrt(p.X()*p.X() + p.Z()*p.Z() + r.X()*r.X() + r.Z()*r.Z())
}

func movementActivity(s *spring.State) float32 {
	p, r := s.PosOffset, s.RotOffset
	return math32.Sqrt(p.X()*p.X() + p.Y()*p.Y() + r.Z()*r.Z())
}

// simultaneousScale returns the camera and movement multipliers for when the player is turning
// and moving at once. Both are 1 unless both springs are above the threshold.
func simultaneousScale(b *settings.Bundle, camera, movement *spring.State) (cam, mov float32) {
	camAbove := game.Clamp32((cameraActivity(camera)-b.SimultaneousThreshold)/simultaneousBlendRange, 0, 1)
	movAbove := game.Clamp32((movementActivity(movement)-b.SimultaneousThreshold)/simultaneousBlendRange, 0, 1)
	blend := game.SmoothStep(camAbove * movAbove)

	return 1 + (b.SimultaneousCameraMult-1)*blend, 1 + (b.SimultaneousMovementMult-1)*blend
}

// combine sums the springs of one hand. Camera and movement output is scaled, sprint and jump
// output is added as is.
func combine(set *spring.Set, cameraScale, movementScale float32) Offset {
	cam, mov := &set.Camera.State, &set.Movement.State
	sprint, jump := &set.Sprint.State, &set.Jump.State

	return Offset{
		Position: cam.PosOffset.Mul(cameraScale).
			Add(mov.PosOffset.Mul(movementScale)).
			Add(sprint.PosOffset).
			Add(jump.PosOffset),
		Rotation: cam.RotOffset.Mul(cameraScale).
			Add(mov.RotOffset.Mul(movementScale)).
			Add(sprint.RotOffset).
			Add(jump.RotOffset),
	}
}
