package signal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpinertia/game"
)

// Input is one tick of raw host state.
type Input struct {
	// Yaw and Pitch are the camera angles in radians.
	Yaw   float32
	Pitch float32
	// Move is the raw movement input, each axis in [-1, 1]: X strafe right, Y forward.
	Move mgl32.Vec2

	Sprinting bool
	InAir     bool
	// Jumping reports whether the host considers the player to be in a jump, as opposed to
	// falling. It is only read on the tick the player leaves the ground.
	Jumping bool
	// LandingSignal is the host's own landing cue, if it has one.
	LandingSignal bool
}

// Signals is the conditioned output of one tick.
type Signals struct {
	// CameraVelocity is the smoothed angular velocity: X pitch, Z yaw, in rad/s.
	CameraVelocity mgl32.Vec3
	CameraSpeed    float32
	// Movement is the smoothed local movement velocity.
	Movement mgl32.Vec3

	Sprinting    bool
	WasSprinting bool
	InAir        bool
	WasInAir     bool
	DidJump      bool
	AirTime      float32
	Landed       bool
}

// Options configures an Extractor.
type Options struct {
	// Smoothing is the share of the previous camera velocity kept each tick.
	Smoothing float32
	// LandingFallback treats any airborne to grounded transition as a landing when the host
	// provides no landing signal. This can fire twice when the host bounces between states
	// within the cooldown; that is accepted.
	LandingFallback bool
}

// Extractor turns raw per-tick host state into velocities and edge events. It only mutates
// its own previous-sample cache.
type Extractor struct {
	primed    bool
	lastYaw   float32
	lastPitch float32
	raw       mgl32.Vec3
	smoothed  mgl32.Vec3
	movement  mgl32.Vec3

	sprinting bool
	inAir     bool
	didJump   bool
	airTime   float32
	cooldown  float32
}

// Primed reports whether the extractor has seen a sample since the last reset.
func (e *Extractor) Primed() bool {
	return e.primed
}

func (e *Extractor) Reset() {
	*e = Extractor{}
}

// Sample conditions one tick of input. The first sample after a reset only seeds the cache and
// reports no motion and no edges. A non-finite yaw or pitch is ignored: the last angles are
// kept and the tick reports no camera motion.
func (e *Extractor) Sample(in Input, dt float32, opts Options) Signals {
	camOK := game.Finite(in.Yaw) && game.Finite(in.Pitch)
	if !game.Finite(in.Move.X()) || !game.Finite(in.Move.Y()) {
		in.Move = mgl32.Vec2{}
	}

	if !e.primed {
		if !camOK {
			// Nothing to seed the camera cache with yet.
			return Signals{}
		}
		e.primed = true
		e.lastYaw, e.lastPitch = in.Yaw, in.Pitch
		e.sprinting, e.inAir = in.Sprinting, in.InAir
		return Signals{Sprinting: in.Sprinting, WasSprinting: in.Sprinting, InAir: in.InAir, WasInAir: in.InAir}
	}

	out := Signals{}
	if camOK {
		out.CameraVelocity = e.cameraVelocity(in.Yaw, in.Pitch, dt, opts.Smoothing)
		out.CameraSpeed = out.CameraVelocity.Len()
	}
	out.Movement = e.localMovement(in.Move)

	out.WasSprinting, out.Sprinting = e.sprinting, in.Sprinting
	e.sprinting = in.Sprinting

	wasInAir := e.inAir
	if e.cooldown > 0 {
		e.cooldown -= dt
	}
	if in.InAir && !wasInAir {
		e.didJump = in.Jumping
		e.airTime = 0
	}
	if in.InAir {
		e.airTime += dt
	}
	if !in.InAir && wasInAir && e.cooldown <= 0 && (in.LandingSignal || opts.LandingFallback) {
		out.Landed = true
		e.cooldown = game.LandingCooldown
	}
	e.inAir = in.InAir

	out.WasInAir, out.InAir = wasInAir, in.InAir
	out.DidJump, out.AirTime = e.didJump, e.airTime
	return out
}

// cameraVelocity differentiates the camera angles. The result is clamped in magnitude and in
// per-tick change before smoothing, so a hitch or a snap turn cannot inject a spike.
func (e *Extractor) cameraVelocity(yaw, pitch, dt, smoothing float32) mgl32.Vec3 {
	v := mgl32.Vec3{
		(pitch - e.lastPitch) / dt,
		0,
		game.WrapAngle(yaw-e.lastYaw) / dt,
	}
	e.lastYaw, e.lastPitch = yaw, pitch

	v = game.ClampVec3(v, game.MaxCameraVelocity)
	v = e.raw.Add(game.ClampVec3(v.Sub(e.raw), game.MaxCameraAcceleration*dt))
	e.raw = v

	e.smoothed = game.LerpVec3(e.smoothed, v, 1-smoothing)
	return e.smoothed
}

func (e *Extractor) localMovement(move mgl32.Vec2) mgl32.Vec3 {
	target := mgl32.Vec3{move.X() * game.MovementInputScale, move.Y() * game.MovementInputScale, 0}
	e.movement = game.LerpVec3(e.movement, target, 1-game.MovementSmoothing)
	return e.movement
}
