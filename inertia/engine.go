package inertia

import (
	"log/slog"

	"github.com/oomph-ac/fpinertia/assert"
	"github.com/oomph-ac/fpinertia/game"
	"github.com/oomph-ac/fpinertia/scene"
	"github.com/oomph-ac/fpinertia/settings"
	"github.com/oomph-ac/fpinertia/signal"
	"github.com/oomph-ac/fpinertia/spring"
)

// equipRestThreshold is the equip blend below which a sheathed rig counts as fully at rest.
const equipRestThreshold = 0.001

// Options configure a new Engine.
type Options struct {
	// Logger receives lifecycle and debug output. Nil uses slog.Default().
	Logger *slog.Logger

	Player    PlayerState
	Equipment Equipment
	// Resolver supplies bundles. Nil makes every loadout use the built-in default bundle.
	Resolver Resolver
	// Stance is optional. Nil reports the neutral stance.
	Stance StanceProvider

	Settings settings.Settings
}

// Engine runs the spring simulation for one first person rig. Tick produces at most one pending
// offset per call; Apply writes it into the skeleton. Neither method is safe for concurrent use.
type Engine struct {
	log *slog.Logger

	player    PlayerState
	equipment Equipment
	resolver  Resolver
	stance    StanceProvider
	settings  settings.Settings

	state     State
	sets      [2]spring.Set
	dual      bool
	extractor signal.Extractor
	settler   spring.Settler
	blends    blends
	cache     *bundleCache
	sel       selection

	currentStance settings.Stance
	lastDrawn     bool

	mailbox Mailbox
	applier Applier
	diag    *diagnostics
}

// NewEngine creates an inactive engine.
func NewEngine(opts Options) *Engine {
	assert.NotNil(opts.Player, "player state")
	assert.NotNil(opts.Equipment, "equipment")
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Stance == nil {
		opts.Stance = NopStance{}
	}

	e := &Engine{
		log:       opts.Logger,
		player:    opts.Player,
		equipment: opts.Equipment,
		resolver:  opts.Resolver,
		stance:    opts.Stance,
		settings:  opts.Settings,
		sets:      [2]spring.Set{spring.NewSet(), spring.NewSet()},
		blends:    newBlends(),
		cache:     newBundleCache(),
		diag:      newDiagnostics(),
	}
	e.applier = Applier{mailbox: &e.mailbox, settings: &e.settings, log: e.log}
	return e
}

// State returns the current coarse state.
func (e *Engine) State() State {
	return e.state
}

// Settings returns the settings in effect.
func (e *Engine) Settings() settings.Settings {
	return e.settings
}

// configurable is implemented by stance providers that read their modifiers from settings.
type configurable interface {
	Configure(s settings.Settings)
}

// SetSettings replaces the global settings. The change takes effect on the next tick.
func (e *Engine) SetSettings(s settings.Settings) {
	e.settings = s
	if c, ok := e.stance.(configurable); ok {
		c.Configure(s)
	}
}

// Mailbox exposes the pending offset slot.
func (e *Engine) Mailbox() *Mailbox {
	return &e.mailbox
}

// Springs returns the spring set for hand h.
func (e *Engine) Springs(h settings.Hand) *spring.Set {
	return &e.sets[h]
}

// Apply writes the pending offset below root. See Applier.Apply.
func (e *Engine) Apply(root scene.Node) bool {
	return e.applier.Apply(root)
}

// Tick advances the simulation by dt seconds and stores the resulting offset in the mailbox.
// A non-positive or non-finite dt is ignored.
func (e *Engine) Tick(dt float32) {
	if dt <= 0 || !game.Finite(dt) {
		return
	}
	s := &e.settings
	if !s.General.Enabled {
		if e.state != StateInactive {
			e.OnExitFirstPerson()
		}
		return
	}
	if e.player.Paused() {
		return
	}
	if !e.player.FirstPerson() {
		if e.state != StateInactive {
			e.OnExitFirstPerson()
		}
		return
	}

	drawn := e.player.WeaponDrawn() || !s.General.RequireWeaponDrawn
	e.blends.updateEquip(drawn, dt, s.Blend.EquipInSpeed, s.Blend.EquipOutSpeed)
	if drawn != e.lastDrawn && s.Debug.Logging {
		e.log.Debug("equip state changed", "drawn", drawn, "blend", e.blends.equip)
	}
	e.lastDrawn = drawn

	if e.blends.equip <= equipRestThreshold && !drawn {
		if e.state != StateInactive {
			e.log.Debug("fully sheathed, resetting springs")
			e.Reset()
		}
		return
	}
	if e.state == StateInactive {
		e.OnEnterFirstPerson()
	}

	primed := e.extractor.Primed()
	sig := e.extractor.Sample(signal.Input{
		Yaw:           e.player.Yaw(),
		Pitch:         e.player.Pitch(),
		Move:          e.player.MoveInput(),
		Sprinting:     e.player.Sprinting(),
		InAir:         e.player.InAir(),
		Jumping:       e.player.Jumping(),
		LandingSignal: e.player.LandingSignal(),
	}, dt, signal.Options{
		Smoothing:       s.General.SmoothingFactor,
		LandingFallback: s.Landing.FallbackDetection,
	})
	if !primed {
		// The first tick after entering only seeds the signal caches.
		return
	}

	e.settler.Update(sig.CameraSpeed, dt, s.Settling.Delay, s.Settling.Speed)
	e.blends.updateAction(e.inAction(), dt, s.ActionBlend.Speed, s.ActionBlend.MinIntensity)

	sel, refreshed := e.cache.lookup(e.resolver, e.equipment.Hand(settings.HandRight), e.equipment.Hand(settings.HandLeft))
	if refreshed && s.Debug.Logging {
		e.log.Debug("resolved bundle", "category", sel.Category.String(), "dual", sel.DualWield, "pivot", int32(sel.Bundle.PivotPoint))
	}
	e.sel = sel
	b := sel.Bundle

	if !b.Enabled {
		if e.state != StateSuppressed {
			e.resetSprings()
			e.mailbox.Clear()
			e.state = StateSuppressed
			if s.Debug.Logging {
				e.log.Debug("inertia disabled for category, springs reset", "category", sel.Category.String())
			}
		}
		return
	}
	e.state = StateActive

	e.blends.updateAir(sig.InAir, b.CameraInertiaAirMult, dt, s.Blend.AirSpeed)

	stance := settings.StanceNeutral
	if s.Stance.Enabled {
		stance = e.stance.CurrentStance()
	}
	stanceMult, invertCamera, invertMovement := b.StanceMultiplier(stance)
	if stance != e.currentStance && s.Debug.Logging {
		e.log.Debug("stance changed", "from", e.currentStance.String(), "to", stance.String(), "mult", stanceMult)
	}
	e.currentStance = stance

	intensity := e.blends.action * e.blends.equip * stanceMult
	camIn := spring.CameraInput{
		Velocity:       sig.CameraVelocity,
		Intensity:      s.General.GlobalIntensity * intensity,
		DampingMult:    e.settler.DampingMultiplier(s.Settling.DampingMult),
		StanceInvert:   invertCamera,
		EnablePosition: s.General.EnablePosition,
		EnableRotation: s.General.EnableRotation,
	}
	movIn := spring.MovementInput{
		Velocity:     sig.Movement,
		Intensity:    intensity,
		Enabled:      s.Movement.Enabled,
		Strength:     s.Movement.Strength,
		Threshold:    s.Movement.Threshold,
		ForwardBack:  s.Movement.ForwardBackInertia,
		StanceInvert: invertMovement,
	}
	jumpIn := spring.JumpInput{
		InAir:    sig.InAir,
		WasInAir: sig.WasInAir,
		DidJump:  sig.DidJump,
		Landed:   sig.Landed,
		AirTime:  sig.AirTime,
	}

	// A dual pivot outside genuine dual wield falls back to the single pivot.
	useDual := sel.DualWield && b.PivotPoint.Dual()
	if !useDual && e.dual {
		e.sets[settings.HandLeft].Reset()
	}
	e.dual = useDual

	for h := range e.sets {
		if settings.Hand(h) == settings.HandLeft && !useDual {
			continue
		}
		set := &e.sets[h]
		set.Camera.Update(b, camIn, dt)
		set.Movement.Update(b, movIn, dt)
		set.Sprint.Update(b, sig.Sprinting, sig.WasSprinting, dt)
		set.Jump.Update(b, jumpIn, dt)
	}

	right := &e.sets[settings.HandRight]
	camMult, movMult := simultaneousScale(b, &right.Camera.State, &right.Movement.State)
	camScale := e.blends.cameraAir * e.blends.equip * camMult
	movScale := e.blends.movementAir * e.blends.equip * movMult

	pending := PendingOffset{
		UseDualPivot: useDual,
		Primary:      combine(right, camScale, movScale),
		Bundle:       *b,
	}
	if useDual {
		pending.Secondary = combine(&e.sets[settings.HandLeft], camScale, movScale)
	}
	e.mailbox.Put(pending)

	e.diag.record(dt, pending.Primary)
	if s.Debug.Logging && e.diag.ticks%debugLogInterval == 0 {
		e.log.Debug("inertia", "snapshot", e.SnapshotString())
	}
}

func (e *Engine) inAction() bool {
	a := &e.settings.ActionBlend
	return (a.DuringAttack && e.player.Attacking()) ||
		(a.DuringBowDraw && e.player.DrawingBow()) ||
		(a.DuringSpellCast && e.player.Casting())
}

func (e *Engine) resetSprings() {
	for h := range e.sets {
		e.sets[h].Reset()
	}
	e.dual = false
}

// clearRuntime resets everything a first person transition invalidates, but leaves the equip
// blend alone.
func (e *Engine) clearRuntime() {
	e.resetSprings()
	e.extractor.Reset()
	e.settler.Reset()
	equip := e.blends.equip
	e.blends = newBlends()
	e.blends.equip = equip
	e.cache.invalidate()
	e.sel = selection{}
	e.applier.Forget()
	e.mailbox.Clear()
}

// Reset returns the engine to its initial, inactive state. Calling it repeatedly is harmless.
func (e *Engine) Reset() {
	e.clearRuntime()
	e.blends.equip = 0
	e.currentStance = settings.StanceNeutral
	e.diag.reset()
	e.state = StateInactive
}

// OnEnterFirstPerson starts a fresh simulation. The equip blend is kept so a weapon being
// drawn keeps blending in.
func (e *Engine) OnEnterFirstPerson() {
	e.clearRuntime()
	e.state = StateActive
	e.log.Info("entered first person, inertia active")
	if e.settings.Debug.Logging {
		e.log.Debug("settings",
			"enabled", e.settings.General.Enabled,
			"position", e.settings.General.EnablePosition,
			"rotation", e.settings.General.EnableRotation,
			"intensity", e.settings.General.GlobalIntensity,
		)
	}
}

// OnExitFirstPerson stops the simulation and drops everything tied to the first person
// skeleton, including any offset not yet applied.
func (e *Engine) OnExitFirstPerson() {
	e.clearRuntime()
	e.state = StateInactive
	e.log.Info("exited first person, inertia inactive")
}
