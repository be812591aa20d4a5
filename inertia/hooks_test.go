package inertia

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/fpinertia/settings"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// recordingTransport counts what the sentry client hands to it.
type recordingTransport struct {
	mu      sync.Mutex
	events  int
	flushes int
}

func (r *recordingTransport) Configure(sentry.ClientOptions) {}

func (r *recordingTransport) SendEvent(*sentry.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events++
}

func (r *recordingTransport) Flush(time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushes++
	return true
}

func (r *recordingTransport) Close() {}

func newTestHooks(p *mockPlayer, w *settings.Watcher) (*Hooks, *Engine, *fakeClock) {
	e := newTestEngine(p, &mockEquipment{}, nil)
	h := NewHooks(e, w)
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	h.Now = clock.Now
	return h, e, clock
}

func TestOnTickRateLimit(t *testing.T) {
	p := newMockPlayer()
	h, e, clock := newTestHooks(p, nil)

	h.OnTick()
	if e.State() != StateInactive {
		t.Fatalf("the first call only starts the clock")
	}
	clock.advance(2 * time.Millisecond)
	h.OnTick()
	if e.State() != StateInactive {
		t.Fatalf("calls closer than the minimum interval must be skipped")
	}
	clock.advance(14 * time.Millisecond)
	h.OnTick()
	if e.State() != StateActive {
		t.Fatalf("expected the tick to run, state %v", e.State())
	}

	clock.advance(time.Second)
	h.OnTick()
	frames := e.diag.frameTimes.Values()
	if len(frames) != 1 || math.Abs(frames[0]-100) > 1e-3 {
		t.Fatalf("expected a stall to be clamped to 100ms, got %v", frames)
	}
}

func TestOnTickRecoversPanics(t *testing.T) {
	p := newMockPlayer()
	h, e, clock := newTestHooks(p, nil)
	h.OnTick()
	for i := 0; i < 2; i++ {
		clock.advance(16 * time.Millisecond)
		h.OnTick()
	}
	if !e.Mailbox().HasData() {
		t.Fatalf("expected an offset before the panic")
	}

	p.panicOnYaw = true
	clock.advance(16 * time.Millisecond)
	h.OnTick()

	if e.Mailbox().HasData() {
		t.Fatalf("a panicking tick must leave nothing pending")
	}
}

func TestHookPanicDoesNotFlushSentry(t *testing.T) {
	tr := &recordingTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{Transport: tr})
	if err != nil {
		t.Fatalf("sentry client: %v", err)
	}
	hub := sentry.CurrentHub()
	prev := hub.Client()
	hub.BindClient(client)
	t.Cleanup(func() { hub.BindClient(prev) })

	p := newMockPlayer()
	h, _, clock := newTestHooks(p, nil)
	h.OnTick()
	p.panicOnYaw = true
	clock.advance(16 * time.Millisecond)
	h.OnTick()

	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.events != 1 {
		t.Fatalf("expected the panic to be reported once, got %d events", tr.events)
	}
	if tr.flushes != 0 {
		t.Fatalf("a hook must not flush sentry, got %d flushes", tr.flushes)
	}
}

func TestOnRenderSkippedWhilePaused(t *testing.T) {
	p := newMockPlayer()
	h, e, _ := newTestHooks(p, nil)
	rig := newTestRig()

	e.Mailbox().Put(pendingWith(settings.PivotChest, Offset{Position: mgl32.Vec3{1, 0, 0}}))
	p.paused = true
	h.OnRender(rig.root)
	if !e.Mailbox().HasData() || rig.spine.LocalTransform().Translate != (mgl32.Vec3{}) {
		t.Fatalf("render hook must not apply while paused")
	}

	p.paused = false
	h.OnRender(rig.root)
	if e.Mailbox().HasData() || rig.spine.LocalTransform().Translate != (mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("expected offset to be applied once unpaused")
	}
}

func TestOnTickHotReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fpinertia.toml")
	if err := settings.Save(path, settings.DefaultSettings()); err != nil {
		t.Fatalf("save: %v", err)
	}
	w := settings.NewWatcher(path, 0.05)

	p := newMockPlayer()
	h, e, clock := newTestHooks(p, w)
	var reloads int
	h.OnReload = func(settings.Settings) { reloads++ }

	updated := settings.DefaultSettings()
	updated.General.GlobalIntensity = 0.5
	if err := settings.Save(path, updated); err != nil {
		t.Fatalf("save: %v", err)
	}
	future := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	h.OnTick()
	for i := 0; i < 5; i++ {
		clock.advance(20 * time.Millisecond)
		h.OnTick()
	}
	if got := e.Settings().General.GlobalIntensity; got != 0.5 {
		t.Fatalf("expected reloaded intensity 0.5, got %v", got)
	}
	if reloads != 1 {
		t.Fatalf("expected one reload callback, got %d", reloads)
	}
}
