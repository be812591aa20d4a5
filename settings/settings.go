package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml"
)

// Settings contains the global, category independent configuration of the inertia engine.
type Settings struct {
	General struct {
		Enabled            bool    `toml:"enabled" env:"FPI_ENABLED"`
		EnablePosition     bool    `toml:"enablePosition"`
		EnableRotation     bool    `toml:"enableRotation"`
		RequireWeaponDrawn bool    `toml:"requireWeaponDrawn"`
		GlobalIntensity    float32 `toml:"globalIntensity" env:"FPI_GLOBAL_INTENSITY"`
		// SmoothingFactor is the share of the previous camera velocity kept each tick.
		SmoothingFactor float32 `toml:"smoothingFactor"`
	} `toml:"general"`

	Settling struct {
		Delay       float32 `toml:"delay"`
		Speed       float32 `toml:"speed"`
		DampingMult float32 `toml:"dampingMult"`
	} `toml:"settling"`

	Movement struct {
		Enabled            bool    `toml:"enabled"`
		Strength           float32 `toml:"strength"`
		Threshold          float32 `toml:"threshold"`
		ForwardBackInertia bool    `toml:"forwardBackInertia"`
	} `toml:"movement"`

	ActionBlend struct {
		DuringAttack    bool    `toml:"duringAttack"`
		DuringBowDraw   bool    `toml:"duringBowDraw"`
		DuringSpellCast bool    `toml:"duringSpellCast"`
		Speed           float32 `toml:"speed"`
		MinIntensity    float32 `toml:"minIntensity"`
	} `toml:"actionBlend"`

	Blend struct {
		EquipInSpeed  float32 `toml:"equipInSpeed"`
		EquipOutSpeed float32 `toml:"equipOutSpeed"`
		AirSpeed      float32 `toml:"airSpeed"`
	} `toml:"blend"`

	Landing struct {
		// FallbackDetection treats a plain airborne to grounded transition as a landing
		// when the host has no landing animation signal.
		FallbackDetection bool `toml:"fallbackDetection"`
	} `toml:"landing"`

	Stance struct {
		Enabled bool            `toml:"enabled"`
		High    StanceModifiers `toml:"high"`
		Mid     StanceModifiers `toml:"mid"`
		Low     StanceModifiers `toml:"low"`
	} `toml:"stance"`

	Debug struct {
		Logging  bool `toml:"logging" env:"FPI_DEBUG_LOGGING"`
		OnScreen bool `toml:"onScreen"`
	} `toml:"debug"`

	HotReload struct {
		Enabled     bool    `toml:"enabled"`
		IntervalSec float32 `toml:"intervalSec"`
	} `toml:"hotReload"`

	Presets struct {
		// ActiveProfile names the preset profile file, without extension.
		ActiveProfile string `toml:"activeProfile" env:"FPI_PRESET_PROFILE"`
	} `toml:"presets"`
}

// StanceModifiers lists the effect and perk identifiers that put the player into a stance.
type StanceModifiers struct {
	Effects []string `toml:"effects"`
	Perks   []string `toml:"perks"`
}

// DefaultSettings returns the default global settings.
func DefaultSettings() Settings {
	s := Settings{}
	s.General.Enabled = true
	s.General.EnablePosition = true
	s.General.EnableRotation = true
	s.General.RequireWeaponDrawn = true
	s.General.GlobalIntensity = 1
	s.General.SmoothingFactor = 0.5

	s.Settling.Delay = 0.3
	s.Settling.Speed = 2
	s.Settling.DampingMult = 3

	s.Movement.Enabled = true
	s.Movement.Strength = 3
	s.Movement.Threshold = 30

	s.ActionBlend.DuringAttack = true
	s.ActionBlend.DuringBowDraw = true
	s.ActionBlend.DuringSpellCast = true
	s.ActionBlend.Speed = 5
	s.ActionBlend.MinIntensity = 0.2

	s.Blend.EquipInSpeed = 3
	s.Blend.EquipOutSpeed = 4
	s.Blend.AirSpeed = 8

	s.Landing.FallbackDetection = true

	s.Stance.Enabled = true
	s.Stance.High = StanceModifiers{Effects: []string{"StanceHighEffect"}, Perks: []string{"StanceHighPerk"}}
	s.Stance.Mid = StanceModifiers{Effects: []string{"StanceMidEffect"}, Perks: []string{"StanceMidPerk"}}
	s.Stance.Low = StanceModifiers{Effects: []string{"StanceLowEffect"}, Perks: []string{"StanceLowPerk"}}

	s.HotReload.Enabled = true
	s.HotReload.IntervalSec = 5

	s.Presets.ActiveProfile = "WeaponTypes"
	return s
}

// Sanitize clamps values that would otherwise destabilise the simulation.
func (s *Settings) Sanitize() {
	s.General.GlobalIntensity = max(s.General.GlobalIntensity, 0)
	s.General.SmoothingFactor = min(max(s.General.SmoothingFactor, 0), 0.99)
	s.Settling.Delay = max(s.Settling.Delay, 0)
	s.Settling.Speed = max(s.Settling.Speed, 0)
	s.Settling.DampingMult = max(s.Settling.DampingMult, 1)
	s.ActionBlend.MinIntensity = min(max(s.ActionBlend.MinIntensity, 0), 1)
	if s.Blend.EquipInSpeed <= 0 {
		s.Blend.EquipInSpeed = 3
	}
	if s.Blend.EquipOutSpeed <= 0 {
		s.Blend.EquipOutSpeed = 4
	}
	if s.Blend.AirSpeed <= 0 {
		s.Blend.AirSpeed = 8
	}
	if s.HotReload.IntervalSec <= 0 {
		s.HotReload.IntervalSec = 5
	}
	if s.Presets.ActiveProfile == "" {
		s.Presets.ActiveProfile = "WeaponTypes"
	}
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	return Save(path, DefaultSettings())
}

// Save encodes s and writes it to path, replacing any existing file.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed writing settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// Keys missing from the file keep their default value.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, errors.New("settings file doesn't exist")
		}
		return Settings{}, fmt.Errorf("error reading settings: %w", err)
	}

	s := DefaultSettings()
	if err = toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %w", err)
	}
	s.Sanitize()
	return s, nil
}

// ParseEnv applies FPI_* environment overrides on top of s.
func ParseEnv(s *Settings) error {
	if err := env.Parse(s); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	s.Sanitize()
	return nil
}
