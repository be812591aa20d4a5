package inertia

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpinertia/settings"
)

// Offset is a combined position and rotation offset for one pivot.
type Offset struct {
	Position mgl32.Vec3
	// Rotation holds XYZ Euler angles in radians.
	Rotation mgl32.Vec3
}

// Negligible reports whether applying o would be visually indistinguishable from doing nothing.
func (o Offset) Negligible(posEpsilon, rotEpsilon float32) bool {
	return o.Position.Len() < posEpsilon && o.Rotation.Len() < rotEpsilon
}

// PendingOffset is the result of one tick, waiting to be written to the scene graph.
type PendingOffset struct {
	UseDualPivot bool
	Primary      Offset
	// Secondary is the left clavicle offset, only set when UseDualPivot is true.
	Secondary Offset
	// Bundle is a copy of the bundle the offset was computed with.
	Bundle settings.Bundle
}

// Mailbox is a single slot handoff between the tick hook and the render hook. A Put overwrites
// any offset that was not taken yet.
type Mailbox struct {
	pending PendingOffset
	hasData bool
}

func (m *Mailbox) Put(p PendingOffset) {
	m.pending, m.hasData = p, true
}

// Take returns the pending offset and empties the slot.
func (m *Mailbox) Take() (PendingOffset, bool) {
	if !m.hasData {
		return PendingOffset{}, false
	}
	m.hasData = false
	return m.pending, true
}

// Peek returns the pending offset without consuming it.
func (m *Mailbox) Peek() (PendingOffset, bool) {
	return m.pending, m.hasData
}

func (m *Mailbox) HasData() bool {
	return m.hasData
}

func (m *Mailbox) Clear() {
	m.pending, m.hasData = PendingOffset{}, false
}
