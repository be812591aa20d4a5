package inertia

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/fpinertia/game"
	"github.com/oomph-ac/fpinertia/oerror"
	"github.com/oomph-ac/fpinertia/scene"
	"github.com/oomph-ac/fpinertia/settings"
)

// Hooks adapts an Engine to the host's two per frame callbacks. OnTick and OnRender must be
// called from the same thread, never concurrently.
type Hooks struct {
	engine  *Engine
	watcher *settings.Watcher

	// Now returns the current time. It defaults to time.Now.
	Now func() time.Time
	// OnReload, if set, is called after a hot reload replaced the settings.
	OnReload func(s settings.Settings)

	last    time.Time
	started bool
}

// NewHooks returns hooks driving e. watcher may be nil to disable hot reload.
func NewHooks(e *Engine, watcher *settings.Watcher) *Hooks {
	return &Hooks{engine: e, watcher: watcher, Now: time.Now}
}

// OnTick runs one simulation tick. The delta is measured since the last accepted call; calls
// arriving less than game.MinTickDelta after it are dropped, and the delta is clamped to
// game.MaxTickDelta.
func (h *Hooks) OnTick() {
	defer h.handlePanic("tick")

	now := h.Now()
	if !h.started {
		h.started, h.last = true, now
		return
	}
	elapsed := float32(now.Sub(h.last).Seconds())
	if elapsed < game.MinTickDelta {
		return
	}
	h.last = now

	dt := game.Clamp32(elapsed, game.MinTickDelta, game.MaxTickDelta)
	h.reload(dt)
	h.engine.Tick(dt)
}

// OnRender applies the pending offset below root. It must run before the host computes world
// transforms for the frame.
func (h *Hooks) OnRender(root scene.Node) {
	defer h.handlePanic("render")

	if h.engine.player.Paused() {
		return
	}
	h.engine.Apply(root)
}

func (h *Hooks) reload(dt float32) {
	if h.watcher == nil || !h.engine.settings.HotReload.Enabled {
		return
	}
	s, changed, err := h.watcher.Poll(dt)
	if err != nil {
		h.engine.log.Warn("settings reload failed, keeping current settings", "err", err)
		return
	}
	if !changed {
		return
	}
	h.watcher.SetInterval(s.HotReload.IntervalSec)
	h.engine.SetSettings(s)
	h.engine.log.Info("settings reloaded")
	if h.OnReload != nil {
		h.OnReload(s)
	}
}

// handlePanic reports a panic escaping a hook. The rig stays static for the frame. The event is
// queued on the transport and flushed by the host at shutdown, so a panic never stalls a frame.
func (h *Hooks) handlePanic(hook string) {
	if err := recover(); err != nil {
		h.engine.log.Error("hook panicked", "hook", hook, "err", err)
		hub := sentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("hook", hook)
		})
		hub.Recover(oerror.New("%s hook panic: %v", hook, err))
		h.engine.mailbox.Clear()
	}
}
