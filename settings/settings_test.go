package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSaveDefaultAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fpinertia.toml")
	require.NoError(t, SaveDefault(path))
	require.Error(t, SaveDefault(path), "second SaveDefault must refuse to overwrite")

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultSettings(), s)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[general\nenabled = "), 0644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestSanitizeClampsRanges(t *testing.T) {
	s := DefaultSettings()
	s.General.SmoothingFactor = 4
	s.General.GlobalIntensity = -1
	s.Settling.DampingMult = 0.2
	s.Blend.EquipOutSpeed = 0
	s.Sanitize()

	require.Equal(t, float32(0.99), s.General.SmoothingFactor)
	require.Zero(t, s.General.GlobalIntensity)
	require.Equal(t, float32(1), s.Settling.DampingMult)
	require.Equal(t, float32(4), s.Blend.EquipOutSpeed)
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("FPI_GLOBAL_INTENSITY", "0.25")
	t.Setenv("FPI_DEBUG_LOGGING", "true")

	s := DefaultSettings()
	require.NoError(t, ParseEnv(&s))
	require.Equal(t, float32(0.25), s.General.GlobalIntensity)
	require.True(t, s.Debug.Logging)
	require.True(t, s.General.Enabled, "unset variables must not clear values")
}

func TestWatcherReloadsOnModification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fpinertia.toml")
	require.NoError(t, SaveDefault(path))

	w := NewWatcher(path, 1)
	_, changed, err := w.Poll(2)
	require.NoError(t, err)
	require.False(t, changed, "unchanged file must not reload")

	s := DefaultSettings()
	s.General.GlobalIntensity = 0.5
	require.NoError(t, Save(path, s))
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, future, future))

	_, changed, _ = w.Poll(0.5)
	require.False(t, changed, "interval has not elapsed yet")

	loaded, changed, err := w.Poll(0.5)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, float32(0.5), loaded.General.GlobalIntensity)

	_, changed, _ = w.Poll(1)
	require.False(t, changed, "the same modification must only be reported once")
}

func TestBundleStanceMultiplier(t *testing.T) {
	b := DefaultBundle()
	b.StanceMultipliers[StanceHigh] = 1.5
	b.StanceInvertCamera[StanceHigh] = true

	mult, invCam, invMov := b.StanceMultiplier(StanceHigh)
	require.Equal(t, float32(1), mult, "disabled stance multipliers are neutral")
	require.False(t, invCam)
	require.False(t, invMov)

	b.EnableStanceMultipliers = true
	mult, invCam, invMov = b.StanceMultiplier(StanceHigh)
	require.Equal(t, float32(1.5), mult)
	require.True(t, invCam)
	require.False(t, invMov)

	mult, _, _ = b.StanceMultiplier(Stance(9))
	require.Equal(t, float32(1), mult)
}

func TestBundleSanitize(t *testing.T) {
	b := DefaultBundle()
	b.Mass = 0
	b.Damping = -3
	b.PivotPoint = 42
	b.Sanitize()

	require.Equal(t, float32(1), b.Mass)
	require.Zero(t, b.Damping)
	require.Equal(t, PivotChest, b.PivotPoint)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("dualwieldmagic")
	require.True(t, ok)
	require.Equal(t, CategoryDualWieldMagic, c)

	_, ok = ParseCategory("OneHandRapier")
	require.False(t, ok)

	require.Len(t, Categories(), int(CategoryCount))
	require.Equal(t, "SpellAndWeapon", CategorySpellAndWeapon.String())
	require.True(t, CategoryBow.TwoHanded())
	require.False(t, CategoryShield.DualWield())
}

func TestPivotArmLength(t *testing.T) {
	lengths := map[Pivot]float32{
		PivotChest:               0,
		PivotRightHand:           35,
		PivotLeftHand:            35,
		PivotWeapon:              50,
		PivotBothClavicles:       0,
		PivotBothClaviclesOffset: 35,
	}
	for p, want := range lengths {
		require.Equal(t, want, p.ArmLength(), "pivot %d", p)
	}
	require.True(t, PivotBothClavicles.Dual())
	require.False(t, PivotWeapon.Dual())
}
