package spring

import "github.com/oomph-ac/fpinertia/game"

// Settler raises camera spring damping once the camera has been still for a while, so the
// rig comes to rest quickly instead of ringing.
type Settler struct {
	idle   float32
	factor float32
}

// Update feeds the current smoothed camera speed in rad/s.
func (s *Settler) Update(cameraSpeed, dt, delay, speed float32) {
	if cameraSpeed > game.CameraMovingThreshold {
		s.idle, s.factor = 0, 0
		return
	}
	s.idle += dt
	if s.idle > delay {
		s.factor = min(1, (s.idle-delay)*speed)
	}
}

// Factor returns the settling progress in [0, 1].
func (s *Settler) Factor() float32 {
	return s.factor
}

// DampingMultiplier maps the settling progress onto [1, maxMult].
func (s *Settler) DampingMultiplier(maxMult float32) float32 {
	return 1 + s.factor*(maxMult-1)
}

func (s *Settler) Reset() {
	s.idle, s.factor = 0, 0
}
