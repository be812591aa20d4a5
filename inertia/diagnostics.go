package inertia

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/fpinertia/game"
	"github.com/oomph-ac/fpinertia/utils"
)

const (
	frameHistory     = 120
	debugLogInterval = 30
)

type diagnostics struct {
	ticks      uint64
	frameTimes *utils.CircularQueue[float64]
	last       Offset
}

func newDiagnostics() *diagnostics {
	return &diagnostics{frameTimes: utils.NewCircularQueue[float64](frameHistory)}
}

func (d *diagnostics) record(dt float32, o Offset) {
	d.ticks++
	// The queue has a fixed non-zero capacity, Append cannot fail.
	_ = d.frameTimes.Append(float64(dt) * 1000)
	d.last = o
}

func (d *diagnostics) reset() {
	d.ticks = 0
	d.frameTimes.Clear()
	d.last = Offset{}
}

// Snapshot returns the engine's current blends, selection and frame timing, in a stable order.
func (e *Engine) Snapshot() *orderedmap.OrderedMap[string, any] {
	frames := e.diag.frameTimes.Values()

	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("state", e.state.String())
	data.Set("ticks", e.diag.ticks)
	if e.sel.Bundle != nil {
		data.Set("category", e.sel.Category.String())
		data.Set("dual", e.dual)
		data.Set("pivot", int32(e.sel.Bundle.PivotPoint))
	}
	data.Set("stance", e.currentStance.String())
	data.Set("equip", e.blends.equip)
	data.Set("action", e.blends.action)
	data.Set("cameraAir", e.blends.cameraAir)
	data.Set("movementAir", e.blends.movementAir)
	data.Set("settle", e.settler.Factor())
	data.Set("frameMeanMs", game.Mean(frames))
	data.Set("frameStdDevMs", game.StandardDeviation(frames))
	data.Set("pos", e.diag.last.Position)
	data.Set("rot", e.diag.last.Rotation)
	return data
}

// SnapshotString renders Snapshot as a single log friendly line.
func (e *Engine) SnapshotString() string {
	return utils.OrderedMapToString(e.Snapshot())
}
