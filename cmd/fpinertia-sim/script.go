package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpinertia/inertia"
	"github.com/oomph-ac/fpinertia/settings"
)

type phase struct {
	name  string
	until float32
}

var script = []phase{
	{"idle", 0.5},
	{"turn", 1.5},
	{"strafe", 2.5},
	{"sprint", 3.5},
	{"jump", 4.1},
	{"settle", 5},
	{"sheathe", 1e9},
}

// scriptedPlayer plays back a fixed sequence of inputs.
type scriptedPlayer struct {
	t   float32
	yaw float32
}

func (p *scriptedPlayer) advance(dt float32) {
	p.t += dt
	if p.phase() == "turn" {
		p.yaw += 2.5 * dt
	}
}

func (p *scriptedPlayer) phase() string {
	for _, ph := range script {
		if p.t < ph.until {
			return ph.name
		}
	}
	return script[len(script)-1].name
}

func (p *scriptedPlayer) Yaw() float32   { return p.yaw }
func (p *scriptedPlayer) Pitch() float32 { return 0 }

func (p *scriptedPlayer) MoveInput() mgl32.Vec2 {
	switch p.phase() {
	case "strafe":
		return mgl32.Vec2{1, 0}
	case "sprint", "jump":
		return mgl32.Vec2{0, 1}
	}
	return mgl32.Vec2{}
}

func (p *scriptedPlayer) WeaponDrawn() bool   { return p.phase() != "sheathe" }
func (p *scriptedPlayer) Sprinting() bool     { return p.phase() == "sprint" }
func (p *scriptedPlayer) InAir() bool         { return p.phase() == "jump" }
func (p *scriptedPlayer) Jumping() bool       { return p.phase() == "jump" }
func (p *scriptedPlayer) LandingSignal() bool { return false }
func (p *scriptedPlayer) Attacking() bool     { return false }
func (p *scriptedPlayer) DrawingBow() bool    { return false }
func (p *scriptedPlayer) Casting() bool       { return false }
func (p *scriptedPlayer) Paused() bool        { return false }
func (p *scriptedPlayer) FirstPerson() bool   { return true }

// swordAndBoard holds an iron sword and a shield.
type swordAndBoard struct{}

func (swordAndBoard) Hand(h settings.Hand) inertia.HandItem {
	if h == settings.HandLeft {
		return inertia.HandItem{
			Equipped: true,
			Identity: settings.Identity{EditorID: "ShieldIron", Keywords: []string{"ArmorShield"}},
			Category: settings.CategoryShield,
		}
	}
	return inertia.HandItem{
		Equipped: true,
		Identity: settings.Identity{EditorID: "IronSword", Keywords: []string{"WEAPTypeSword", "WeapMaterialIron"}},
		Category: settings.CategoryOneHandSword,
	}
}

type noModifiers struct{}

func (noModifiers) HasEffect(string) bool { return false }
func (noModifiers) HasPerk(string) bool   { return false }
