package main

import (
	"fmt"

	"github.com/oomph-ac/fpinertia/inertia"
	"github.com/oomph-ac/fpinertia/scene"
)

// frameLine formats one line of harness output. The engine snapshot is appended as an overlay
// when Debug.OnScreen is set.
func frameLine(p *scriptedPlayer, t scene.Transform, e *inertia.Engine) string {
	line := fmt.Sprintf("t=%5.2fs %-10s pos=(%7.3f %7.3f %7.3f)",
		p.t, p.phase(), t.Translate.X(), t.Translate.Y(), t.Translate.Z())
	if e.Settings().Debug.OnScreen {
		line += " " + e.SnapshotString()
	}
	return line
}
