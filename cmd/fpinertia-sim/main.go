package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/fpinertia/inertia"
	"github.com/oomph-ac/fpinertia/preset"
	"github.com/oomph-ac/fpinertia/scene"
	"github.com/oomph-ac/fpinertia/settings"
	"github.com/oomph-ac/fpinertia/stance"
)

type config struct {
	SettingsPath string        `env:"FPI_SETTINGS" envDefault:"fpinertia.toml"`
	PresetDir    string        `env:"FPI_PRESET_DIR" envDefault:"fpinertia"`
	Duration     time.Duration `env:"FPI_SIM_DURATION" envDefault:"6s"`
	FrameRate    int           `env:"FPI_SIM_FPS" envDefault:"60"`
	PrintEvery   int           `env:"FPI_SIM_PRINT_EVERY" envDefault:"30"`
	SentryDSN    string        `env:"SENTRY_DSN"`
	Pprof        bool          `env:"PPROF_ENABLED"`
}

// The following program drives the inertia engine with a scripted player on an in-memory first
// person skeleton and prints the offset applied to the spine.
func main() {
	log := slog.Default()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Error("invalid environment", "err", err)
		os.Exit(1)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.Warn("sentry disabled", "err", err)
		}
		defer sentry.Flush(time.Second * 2)
	}

	if cfg.Pprof {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	s, err := loadSettings(cfg.SettingsPath)
	if err != nil {
		log.Error("unable to load settings", "err", err)
		os.Exit(1)
	}
	if s.Debug.Logging {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	store := preset.New(cfg.PresetDir, log)
	if err := store.Load(s.Presets.ActiveProfile); err != nil {
		log.Error("unable to load presets", "err", err)
		os.Exit(1)
	}

	player := &scriptedPlayer{}
	engine := inertia.NewEngine(inertia.Options{
		Logger:    log,
		Player:    player,
		Equipment: swordAndBoard{},
		Resolver:  store,
		Stance:    stance.NewResolver(noModifiers{}, s),
		Settings:  s,
	})

	hooks := inertia.NewHooks(engine, settings.NewWatcher(cfg.SettingsPath, s.HotReload.IntervalSec))
	hooks.OnReload = func(s settings.Settings) {
		if s.Presets.ActiveProfile == store.ActiveProfile() {
			return
		}
		if err := store.SetActiveProfile(s.Presets.ActiveProfile); err != nil {
			log.Warn("unable to switch preset profile", "profile", s.Presets.ActiveProfile, "err", err)
		}
	}

	frame := time.Second / time.Duration(max(cfg.FrameRate, 1))
	clock := time.Now()
	hooks.Now = func() time.Time { return clock }

	root, spine := newSkeleton()
	rest := spine.LocalTransform()

	frames := int(cfg.Duration / frame)
	for i := 0; i < frames; i++ {
		clock = clock.Add(frame)
		player.advance(float32(frame.Seconds()))

		// The host animation rewrites local transforms every frame.
		spine.SetLocalTransform(rest)

		hooks.OnTick()
		hooks.OnRender(root)
		root.UpdateAll()

		if cfg.PrintEvery > 0 && i%cfg.PrintEvery == 0 {
			fmt.Println(frameLine(player, spine.LocalTransform(), engine))
		}
	}

	if store.Dirty() {
		if err := <-store.SaveAsync(); err != nil {
			log.Warn("unable to save presets", "err", err)
		}
	}
}

// loadSettings reads the settings file, writing the defaults first if it does not exist, and
// applies environment overrides.
func loadSettings(path string) (settings.Settings, error) {
	if err := settings.SaveDefault(path); err == nil {
		slog.Info("wrote default settings", "path", path)
	}
	s, err := settings.Load(path)
	if err != nil {
		return settings.Settings{}, err
	}
	if err := settings.ParseEnv(&s); err != nil {
		return settings.Settings{}, errors.Join(errors.New("environment overrides"), err)
	}
	return s, nil
}

func newSkeleton() (root, spine *scene.MemNode) {
	root = scene.NewMemNode("1stPerson")
	spine = root.AttachNew("NPC Spine2 [Spn2]")
	for _, side := range []string{"R", "L"} {
		clavicle := spine.AttachNew(fmt.Sprintf("NPC %s Clavicle [%sClv]", side, side))
		hand := clavicle.AttachNew(fmt.Sprintf("NPC %s Hand [%sHnd]", side, side))
		hand.AttachNew("MagicEffectsNode")
	}
	root.UpdateAll()
	return root, spine
}
