package stance

import (
	"github.com/oomph-ac/fpinertia/settings"
	"github.com/samber/lo"
)

// Modifiers exposes the game state stances are derived from.
type Modifiers interface {
	HasEffect(id string) bool
	HasPerk(id string) bool
}

// Resolver maps active effects and perks to a stance. Effects are checked before perks, and
// within each kind High wins over Mid, which wins over Low.
type Resolver struct {
	actor Modifiers
	cfg   config
}

type config struct {
	enabled bool
	// byStance is ordered High, Mid, Low.
	byStance [3]struct {
		stance settings.Stance
		mods   settings.StanceModifiers
	}
}

// NewResolver returns a resolver reading actor, configured from s.
func NewResolver(actor Modifiers, s settings.Settings) *Resolver {
	r := &Resolver{actor: actor}
	r.Configure(s)
	return r
}

// Configure replaces the configured modifier identifiers, typically after a settings reload.
func (r *Resolver) Configure(s settings.Settings) {
	r.cfg.enabled = s.Stance.Enabled
	r.cfg.byStance[0].stance, r.cfg.byStance[0].mods = settings.StanceHigh, s.Stance.High
	r.cfg.byStance[1].stance, r.cfg.byStance[1].mods = settings.StanceMid, s.Stance.Mid
	r.cfg.byStance[2].stance, r.cfg.byStance[2].mods = settings.StanceLow, s.Stance.Low
}

// CurrentStance implements inertia.StanceProvider.
func (r *Resolver) CurrentStance() settings.Stance {
	if !r.cfg.enabled || r.actor == nil {
		return settings.StanceNeutral
	}
	for _, s := range r.cfg.byStance {
		if lo.ContainsBy(s.mods.Effects, r.actor.HasEffect) {
			return s.stance
		}
	}
	for _, s := range r.cfg.byStance {
		if lo.ContainsBy(s.mods.Perks, r.actor.HasPerk) {
			return s.stance
		}
	}
	return settings.StanceNeutral
}
