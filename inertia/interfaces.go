package inertia

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpinertia/settings"
)

// PlayerState bridges the host's player, camera and UI state. It is queried once per tick.
type PlayerState interface {
	// Yaw and Pitch return the camera angles in radians.
	Yaw() float32
	Pitch() float32
	// MoveInput returns the raw, camera relative movement input: X strafe, Y forward, each in [-1, 1].
	MoveInput() mgl32.Vec2

	WeaponDrawn() bool
	Sprinting() bool
	InAir() bool
	// Jumping reports whether the player left the ground through a jump rather than a fall.
	Jumping() bool
	// LandingSignal reports the host's landing animation cue, if it has one.
	LandingSignal() bool

	Attacking() bool
	DrawingBow() bool
	Casting() bool

	Paused() bool
	FirstPerson() bool
}

// HandItem describes what is held in one hand.
type HandItem struct {
	Equipped bool
	Identity settings.Identity
	// Category is the base category of the item: a weapon category, Shield or Spell.
	Category settings.Category
}

// Equipment exposes what the player holds in each hand.
type Equipment interface {
	Hand(h settings.Hand) HandItem
}

// Resolver maps an equipped identity and category to a bundle. A nil bundle selects the
// built-in default. Returned bundles must stay valid until SettingsVersion changes.
type Resolver interface {
	Resolve(id settings.Identity, category settings.Category) *settings.Bundle
	SettingsVersion() uint32
}

// StanceProvider reports the player's current combat stance.
type StanceProvider interface {
	CurrentStance() settings.Stance
}

// NopStance always reports the neutral stance.
type NopStance struct{}

func (NopStance) CurrentStance() settings.Stance {
	return settings.StanceNeutral
}
