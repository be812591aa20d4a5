package inertia

import (
	"strconv"
	"strings"

	"github.com/oomph-ac/fpinertia/settings"
	"github.com/zeebo/xxh3"
)

// selection is the outcome of a bundle lookup for the current loadout.
type selection struct {
	Category settings.Category
	// DualWield is true when two one-handed items are genuinely wielded together.
	DualWield bool
	Bundle    *settings.Bundle
}

func isWeapon(item HandItem) bool {
	if !item.Equipped {
		return false
	}
	switch item.Category {
	case settings.CategoryUnarmed, settings.CategorySpell, settings.CategoryShield:
		return false
	}
	return true
}

func isSpell(item HandItem) bool {
	return item.Equipped && item.Category == settings.CategorySpell
}

// classify picks the category the loadout is tuned by. A two-handed weapon in the right hand
// always wins, then the dual wield combinations, then the right hand item, then the left.
func classify(right, left HandItem) (settings.Category, bool) {
	if isWeapon(right) && right.Category.TwoHanded() {
		return right.Category, false
	}
	rw, lw, rs, ls := isWeapon(right), isWeapon(left), isSpell(right), isSpell(left)
	switch {
	case rw && lw:
		return settings.CategoryDualWieldWeapons, true
	case (rw && ls) || (rs && lw):
		return settings.CategorySpellAndWeapon, true
	case rs && ls:
		return settings.CategoryDualWieldMagic, true
	}
	if right.Equipped {
		return right.Category, false
	}
	if left.Equipped {
		return left.Category, false
	}
	return settings.CategoryUnarmed, false
}

// fingerprint hashes everything about the loadout that can change the resolved bundle.
func fingerprint(right, left HandItem) uint64 {
	var b strings.Builder
	for _, item := range [2]HandItem{right, left} {
		if item.Equipped {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
		b.WriteString(strconv.Itoa(int(item.Category)))
		b.WriteByte('|')
		b.WriteString(item.Identity.EditorID)
		b.WriteByte('|')
	}
	return xxh3.HashString(b.String())
}

// bundleCache remembers the last resolved selection, keyed by the loadout fingerprint and the
// resolver's settings version.
type bundleCache struct {
	valid       bool
	fingerprint uint64
	version     uint32
	sel         selection

	fallback settings.Bundle
}

func newBundleCache() *bundleCache {
	return &bundleCache{fallback: settings.DefaultBundle()}
}

// lookup returns the selection for the loadout, asking the resolver only when the loadout or
// the settings version changed. The second return value reports whether a lookup happened.
func (c *bundleCache) lookup(r Resolver, right, left HandItem) (selection, bool) {
	fp := fingerprint(right, left)
	var version uint32
	if r != nil {
		version = r.SettingsVersion()
	}
	if c.valid && c.fingerprint == fp && c.version == version {
		return c.sel, false
	}

	category, dual := classify(right, left)
	var id settings.Identity
	switch {
	case dual:
		// Combined categories are tuned as a whole, item overrides do not apply.
	case right.Equipped:
		id = right.Identity
	case left.Equipped:
		id = left.Identity
	}

	var bundle *settings.Bundle
	if r != nil {
		bundle = r.Resolve(id, category)
	}
	if bundle == nil {
		bundle = &c.fallback
	}

	c.valid, c.fingerprint, c.version = true, fp, version
	c.sel = selection{Category: category, DualWield: dual, Bundle: bundle}
	return c.sel, true
}

func (c *bundleCache) invalidate() {
	c.valid = false
	c.sel = selection{}
}
