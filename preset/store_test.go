package preset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oomph-ac/fpinertia/settings"
	"github.com/stretchr/testify/require"
)

const testMappings = `; sword types
WEAPTypeSword=AnySword
# enchanted blades win over plain swords
WEAPTypeSword, MagicDisallowEnchanting = EnchantedSword
not a mapping
`

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, mappingDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, mappingDir, "swords.txt"), []byte(testMappings), 0o644))
	return New(dir, nil), dir
}

func bundleWithStiffness(k float32) settings.Bundle {
	b := settings.DefaultBundle()
	b.Stiffness = k
	return b
}

func TestParseMappings(t *testing.T) {
	m, errs := ParseMappings(strings.NewReader(testMappings))
	require.Len(t, errs, 1)
	require.Len(t, m, 2)

	sortMappings(m)
	require.Equal(t, "EnchantedSword", m[0].TypeName)
	require.Equal(t, []string{"WEAPTypeSword", "MagicDisallowEnchanting"}, m[0].Keywords)
	require.Equal(t, "AnySword", m[1].TypeName)
}

func TestBestMatchNeedsEveryKeyword(t *testing.T) {
	m, _ := ParseMappings(strings.NewReader(testMappings))
	sortMappings(m)

	name, ok := bestMatch(m, []string{"MagicDisallowEnchanting", "WEAPTypeSword", "VendorItemWeapon"})
	require.True(t, ok)
	require.Equal(t, "EnchantedSword", name)

	name, ok = bestMatch(m, []string{"WEAPTypeSword"})
	require.True(t, ok)
	require.Equal(t, "AnySword", name)

	_, ok = bestMatch(m, []string{"MagicDisallowEnchanting"})
	require.False(t, ok)
	_, ok = bestMatch(m, nil)
	require.False(t, ok)
}

func TestLoadInitialisesMissingProfile(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, s.Load("Fresh"))

	require.FileExists(t, filepath.Join(dir, profileDir, "Fresh.json"))
	require.Equal(t, "Fresh", s.ActiveProfile())
	require.False(t, s.Dirty())
	require.Equal(t, []string{"AnySword", "EnchantedSword"}, s.CustomTypes())
	require.Equal(t, settings.DefaultBundle(), s.Category(settings.CategoryBow))
}

func TestResolvePriority(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Load(""))

	require.NoError(t, s.SetCategory(settings.CategoryOneHandSword, bundleWithStiffness(10)))
	require.NoError(t, s.SetCategory(settings.CategoryDualWieldWeapons, bundleWithStiffness(11)))
	require.NoError(t, s.SetCustomType("AnySword", settings.CategoryOneHandSword, bundleWithStiffness(20)))
	require.NoError(t, s.SetCustomType("EnchantedSword", settings.CategoryOneHandSword, bundleWithStiffness(21)))
	require.NoError(t, s.SetItem("IronSword", bundleWithStiffness(30)))

	cases := []struct {
		name string
		id   settings.Identity
		cat  settings.Category
		want float32
	}{
		{"item override", settings.Identity{EditorID: "IronSword", Keywords: []string{"WEAPTypeSword"}}, settings.CategoryOneHandSword, 30},
		{"dual wield ignores item", settings.Identity{EditorID: "IronSword", Keywords: []string{"WEAPTypeSword"}}, settings.CategoryDualWieldWeapons, 11},
		{"most specific keywords", settings.Identity{EditorID: "Other", Keywords: []string{"WEAPTypeSword", "MagicDisallowEnchanting"}}, settings.CategoryOneHandSword, 21},
		{"single keyword", settings.Identity{Keywords: []string{"WEAPTypeSword"}}, settings.CategoryOneHandSword, 20},
		{"category", settings.Identity{EditorID: "Other"}, settings.CategoryOneHandSword, 10},
		{"empty identity", settings.Identity{}, settings.CategoryOneHandSword, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, s.Resolve(tc.id, tc.cat).Stiffness)
		})
	}

	require.Equal(t, settings.DefaultBundle(), *s.Resolve(settings.Identity{}, settings.CategoryCount))
}

func TestSettingsVersionBumpsOnEdits(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Load(""))

	v := s.SettingsVersion()
	before := s.Resolve(settings.Identity{}, settings.CategoryStaff)

	require.NoError(t, s.SetCategory(settings.CategoryStaff, bundleWithStiffness(5)))
	require.Greater(t, s.SettingsVersion(), v)
	require.True(t, s.Dirty())

	// Bundles already handed out are never edited in place.
	require.Equal(t, settings.DefaultBundle().Stiffness, before.Stiffness)
	require.Equal(t, float32(5), s.Resolve(settings.Identity{}, settings.CategoryStaff).Stiffness)

	v = s.SettingsVersion()
	s.ResetToDefaults()
	require.Greater(t, s.SettingsVersion(), v)
	require.Equal(t, settings.DefaultBundle(), s.Category(settings.CategoryStaff))

	require.NoError(t, s.Save())
	require.False(t, s.Dirty())
}

func TestLoadProfileFile(t *testing.T) {
	s, dir := newTestStore(t)
	profile := `{
	// tuned by hand
	"OneHandSword": {"weaponType": "OneHandSword", "stiffness": 42, "damping": -3},
	"AnySword": {"weaponType": "OneHandSword", "isCustomType": true, "stiffness": 7},
	"Ghost": {"weaponType": "Bow", "isCustomType": true},
	"Catapult": {"stiffness": 1}
}`
	require.NoError(t, os.MkdirAll(filepath.Join(dir, profileDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, profileDir, "Tuned.json"), []byte(profile), 0o644))
	require.NoError(t, s.Load("Tuned"))

	sword := s.Category(settings.CategoryOneHandSword)
	require.Equal(t, float32(42), sword.Stiffness)
	require.Equal(t, float32(0), sword.Damping, "negative damping is sanitized")
	require.Equal(t, settings.DefaultBundle().MaxOffset, sword.MaxOffset, "missing fields keep defaults")

	b, base, ok := s.CustomType("AnySword")
	require.True(t, ok)
	require.Equal(t, float32(7), b.Stiffness)
	require.Equal(t, settings.CategoryOneHandSword, base)

	_, _, ok = s.CustomType("Ghost")
	require.False(t, ok, "custom types without a mapping are dropped")

	// EnchantedSword is mapped but missing from the file.
	require.Equal(t, []string{"AnySword", "EnchantedSword"}, s.CustomTypes())
	require.True(t, s.Dirty())
}

func TestProfileLifecycle(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Load("Base"))
	require.NoError(t, s.SetCategory(settings.CategoryBow, bundleWithStiffness(3)))

	require.NoError(t, s.CreateProfile("Archer"))
	require.Equal(t, "Archer", s.ActiveProfile())
	require.Error(t, s.CreateProfile("Base"))
	require.Error(t, s.CreateProfile(" "))

	require.NoError(t, s.DuplicateProfile("Archer", "Archer Copy"))
	require.Error(t, s.DuplicateProfile("Archer", "Base"))

	require.Error(t, s.DeleteProfile("Archer"), "active profile cannot be deleted")
	require.NoError(t, s.DeleteProfile("Archer Copy"))

	require.NoError(t, s.RenameProfile("Archer", "Ranger"))
	require.Equal(t, "Ranger", s.ActiveProfile())

	profiles, err := s.Profiles()
	require.NoError(t, err)
	require.Equal(t, []string{"Base", "Ranger"}, profiles)

	v := s.SettingsVersion()
	require.NoError(t, s.SetActiveProfile("Base"))
	require.Greater(t, s.SettingsVersion(), v)
	require.Equal(t, settings.DefaultBundle().Stiffness, s.Category(settings.CategoryBow).Stiffness)

	require.NoError(t, s.SetActiveProfile("Ranger"))
	require.Equal(t, float32(3), s.Category(settings.CategoryBow).Stiffness)
	require.Error(t, s.SetActiveProfile("Missing"))
}

func TestItemOverridesPersist(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, s.Load(""))
	require.NoError(t, s.SetItem("Dwarven:Bow", bundleWithStiffness(9)))
	require.FileExists(t, filepath.Join(dir, profileDir, itemDir, "Dwarven_Bow.json"))

	reloaded := New(dir, nil)
	require.NoError(t, reloaded.Load(""))
	require.Equal(t, []string{"Dwarven:Bow"}, reloaded.Items())
	b, ok := reloaded.Item("Dwarven:Bow")
	require.True(t, ok)
	require.Equal(t, float32(9), b.Stiffness)

	require.NoError(t, reloaded.RemoveItem("Dwarven:Bow"))
	require.NoFileExists(t, filepath.Join(dir, profileDir, itemDir, "Dwarven_Bow.json"))
	require.Error(t, reloaded.RemoveItem("Dwarven:Bow"))
	require.Error(t, reloaded.SetItem("", settings.DefaultBundle()))
}

func TestSaveAsync(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, s.Load("Async"))
	require.NoError(t, s.SetCategory(settings.CategoryShield, bundleWithStiffness(12)))

	require.NoError(t, <-s.SaveAsync())
	require.False(t, s.Dirty())

	reloaded := New(dir, nil)
	require.NoError(t, reloaded.Load("Async"))
	require.Equal(t, float32(12), reloaded.Category(settings.CategoryShield).Stiffness)
}

func TestSanitizeFileName(t *testing.T) {
	require.Equal(t, "a_b_c_d_e_f_g_h_i_j", sanitizeFileName(`a\b/c:d*e?f"g<h>i|j`))
}
