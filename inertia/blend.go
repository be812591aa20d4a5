package inertia

import "github.com/oomph-ac/fpinertia/game"

// blends holds the smooth factors that scale spring output.
type blends struct {
	// equip ramps toward 1 while the weapon is drawn and toward 0 once it is sheathed.
	equip float32
	// action drops toward the configured floor during attacks, bow draws and casts.
	action float32

	cameraAir   float32
	movementAir float32
}

func newBlends() blends {
	return blends{action: 1, cameraAir: 1, movementAir: 1}
}

// updateEquip advances the equip blend. The delta is capped so a hitch cannot snap the blend.
func (b *blends) updateEquip(drawn bool, dt, inSpeed, outSpeed float32) {
	dt = min(dt, game.EquipBlendMaxDelta)
	target, speed := float32(0), outSpeed
	if drawn {
		target = 1
	}
	if b.equip < target {
		speed = inSpeed
	}
	b.equip = game.Approach(b.equip, target, speed*dt)
}

func (b *blends) updateAction(inAction bool, dt, speed, floor float32) {
	target := float32(1)
	if inAction {
		target = floor
	}
	b.action = game.Approach(b.action, target, dt*speed)
}

// updateAir fades movement sway out while airborne and eases camera sway toward airMult.
func (b *blends) updateAir(inAir bool, airMult, dt, speed float32) {
	movementTarget, cameraTarget := float32(1), float32(1)
	if inAir {
		movementTarget, cameraTarget = 0, airMult
	}
	b.movementAir = game.Approach(b.movementAir, movementTarget, speed*dt)
	b.cameraAir = game.Approach(b.cameraAir, cameraTarget, speed*dt)
}
