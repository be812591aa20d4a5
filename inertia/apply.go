package inertia

import (
	"log/slog"

	"github.com/oomph-ac/fpinertia/game"
	"github.com/oomph-ac/fpinertia/scene"
	"github.com/oomph-ac/fpinertia/settings"
)

var (
	spineNodeNames = []string{
		"NPC Spine2 [Spn2]",
		"NPC Spine1 [Spn1]",
		"NPC Spine [Spn0]",
		"Spine2",
		"Spine1",
	}
	clavicleNodeNames = [2][]string{
		settings.HandRight: {"NPC R Clavicle [RClv]", "RClavicle"},
		settings.HandLeft:  {"NPC L Clavicle [LClv]", "LClavicle"},
	}
)

// pitchCompensationShare is the share of the lever arm used to counter pitch rotation.
const pitchCompensationShare = 0.5

// Applier writes pending offsets into the first person skeleton. It must run from the host's
// render update, before the host derives world transforms from local ones.
type Applier struct {
	mailbox  *Mailbox
	settings *settings.Settings
	log      *slog.Logger

	spine     scene.Node
	clavicles [2]scene.Node
}

// Forget drops the cached pivot nodes. The next application looks them up again.
func (a *Applier) Forget() {
	a.spine = nil
	a.clavicles = [2]scene.Node{}
}

func (a *Applier) spineNode(root scene.Node) scene.Node {
	if a.spine == nil {
		a.spine = scene.FindFirst(root, spineNodeNames...)
	}
	return a.spine
}

func (a *Applier) clavicleNode(root scene.Node, h settings.Hand) scene.Node {
	if a.clavicles[h] == nil {
		a.clavicles[h] = scene.FindFirst(root, clavicleNodeNames[h]...)
	}
	return a.clavicles[h]
}

// Apply consumes the pending offset, if any, and writes it below root. It reports whether any
// node was modified. A nil root leaves the offset pending for the next frame.
func (a *Applier) Apply(root scene.Node) bool {
	if root == nil {
		return false
	}
	p, ok := a.mailbox.Peek()
	if !ok {
		return false
	}
	defer a.mailbox.Clear()

	if p.Primary.Negligible(game.NegligiblePosition, game.NegligibleRotation) &&
		(!p.UseDualPivot || p.Secondary.Negligible(game.NegligiblePosition, game.NegligibleRotation)) {
		return false
	}

	var touched []scene.Node
	if p.UseDualPivot {
		for h, off := range [2]Offset{settings.HandRight: p.Primary, settings.HandLeft: p.Secondary} {
			if n := a.clavicleNode(root, settings.Hand(h)); n != nil {
				a.write(n, off, p.Bundle.PivotPoint)
				touched = append(touched, n)
			}
		}
	} else if n := a.spineNode(root); n != nil {
		a.write(n, p.Primary, p.Bundle.PivotPoint)
		touched = append(touched, n)
	}
	if len(touched) == 0 {
		a.log.Debug("no pivot node found", "dual", p.UseDualPivot, "root", root.Name())
		return false
	}

	for _, n := range touched {
		scene.PropagateSelective(n)
	}
	return true
}

// write adds o to the local transform of n. Rotation is composed after the existing local
// rotation, and a lever arm term keeps the visual pivot at the hand, weapon or shoulder.
func (a *Applier) write(n scene.Node, o Offset, pivot settings.Pivot) {
	t := n.LocalTransform()
	if a.settings.General.EnablePosition {
		t.Translate = t.Translate.Add(o.Position)
	}
	if a.settings.General.EnableRotation && game.AnyAbove(o.Rotation, game.NegligibleRotation) {
		arm := pivot.ArmLength()
		t.Translate[0] += -arm * o.Rotation.Z()
		t.Translate[1] += -arm * o.Rotation.X() * pitchCompensationShare
		t.Rotate = t.Rotate.Mul3(game.EulerToMat3(o.Rotation))
	}
	n.SetLocalTransform(t)
}
