package settings

import "strings"

// Hand selects one of the two arms of the rig.
type Hand uint8

const (
	HandRight Hand = iota
	HandLeft
)

func (h Hand) String() string {
	if h == HandLeft {
		return "left"
	}
	return "right"
}

// Stance is the combat stance reported by the stance provider.
type Stance uint8

const (
	StanceNeutral Stance = iota
	StanceLow
	StanceMid
	StanceHigh
	StanceCount
)

var stanceNames = [StanceCount]string{"Neutral", "Low", "Mid", "High"}

func (s Stance) Valid() bool {
	return s < StanceCount
}

func (s Stance) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return stanceNames[s]
}

// Pivot selects the skeleton node the offset is applied to.
type Pivot int32

const (
	PivotChest Pivot = iota
	PivotRightHand
	PivotLeftHand
	PivotWeapon
	PivotBothClavicles
	PivotBothClaviclesOffset
)

func (p Pivot) Valid() bool {
	return p >= PivotChest && p <= PivotBothClaviclesOffset
}

// Dual reports whether the pivot drives both clavicles independently.
func (p Pivot) Dual() bool {
	return p == PivotBothClavicles || p == PivotBothClaviclesOffset
}

// ArmLength is the lever arm used to keep the hands in place while rotating around a
// pivot that is not the hand itself.
func (p Pivot) ArmLength() float32 {
	switch p {
	case PivotRightHand, PivotLeftHand, PivotBothClaviclesOffset:
		return 35
	case PivotWeapon:
		return 50
	default:
		return 0
	}
}

// Category classifies the equipment in the player's hands.
type Category uint8

const (
	CategoryUnarmed Category = iota
	CategoryOneHandSword
	CategoryOneHandDagger
	CategoryOneHandAxe
	CategoryOneHandMace
	CategoryTwoHandSword
	CategoryTwoHandAxe
	CategoryBow
	CategoryStaff
	CategoryCrossbow
	CategoryShield
	CategorySpell
	CategoryDualWieldWeapons
	CategoryDualWieldMagic
	CategorySpellAndWeapon
	CategoryCount
)

var categoryNames = [CategoryCount]string{
	"Unarmed", "OneHandSword", "OneHandDagger", "OneHandAxe", "OneHandMace",
	"TwoHandSword", "TwoHandAxe", "Bow", "Staff", "Crossbow", "Shield", "Spell",
	"DualWieldWeapons", "DualWieldMagic", "SpellAndWeapon",
}

func (c Category) String() string {
	if c >= CategoryCount {
		return "Unknown"
	}
	return categoryNames[c]
}

// TwoHanded reports whether the category occupies both hands.
func (c Category) TwoHanded() bool {
	switch c {
	case CategoryTwoHandSword, CategoryTwoHandAxe, CategoryBow, CategoryCrossbow:
		return true
	}
	return false
}

// DualWield reports whether the category is one of the combined dual wield categories.
func (c Category) DualWield() bool {
	return c == CategoryDualWieldWeapons || c == CategoryDualWieldMagic || c == CategorySpellAndWeapon
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if strings.EqualFold(n, name) {
			return Category(i), true
		}
	}
	return CategoryUnarmed, false
}

// Categories returns every known category in declaration order.
func Categories() []Category {
	out := make([]Category, CategoryCount)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Identity names one equipped item for preset lookups.
type Identity struct {
	EditorID string
	Keywords []string
}

// Empty reports whether the identity carries nothing to look up by.
func (id Identity) Empty() bool {
	return id.EditorID == "" && len(id.Keywords) == 0
}
