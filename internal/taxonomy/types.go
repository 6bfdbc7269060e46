// Package taxonomy holds the card-game engine's constant tables: card type
// flags, attributes, races, scopes and effect categories.
package taxonomy

import (
	"errors"
	"fmt"
	"strings"
)

// Type is the bitmask stored in datas.type. A card combines one category
// flag (monster, spell or trap) with any number of subtype flags.
type Type uint32

const (
	TypeMonster     Type = 0x1
	TypeSpell       Type = 0x2
	TypeTrap        Type = 0x4
	TypeNormal      Type = 0x10
	TypeEffect      Type = 0x20
	TypeFusion      Type = 0x40
	TypeRitual      Type = 0x80
	TypeTrapMonster Type = 0x100
	TypeSpirit      Type = 0x200
	TypeUnion       Type = 0x400
	TypeDual        Type = 0x800
	TypeTuner       Type = 0x1000
	TypeSynchro     Type = 0x2000
	TypeToken       Type = 0x4000
	TypeQuickPlay   Type = 0x10000
	TypeContinuous  Type = 0x20000
	TypeEquip       Type = 0x40000
	TypeField       Type = 0x80000
	TypeCounter     Type = 0x100000
	TypeFlip        Type = 0x200000
	TypeToon        Type = 0x400000
	TypeXyz         Type = 0x800000
	TypePendulum    Type = 0x1000000
	TypeSpSummon    Type = 0x2000000
	TypeLink        Type = 0x4000000
	TypeSkill       Type = 0x8000000
	TypeAction      Type = 0x10000000
)

// Common combinations.
const (
	MonsterNormal   = TypeMonster | TypeNormal
	MonsterEffect   = TypeMonster | TypeEffect
	SpellQuickPlay  = TypeSpell | TypeQuickPlay
	SpellContinuous = TypeSpell | TypeContinuous
	SpellEquip      = TypeSpell | TypeEquip
	SpellField      = TypeSpell | TypeField
	TrapContinuous  = TypeTrap | TypeContinuous
	TrapCounter     = TypeTrap | TypeCounter
)

var ErrUnknownSubtype = errors.New("unknown card subtype")

// Has reports whether every bit of flag is set.
func (t Type) Has(flag Type) bool {
	return t&flag == flag
}

func (t Type) IsMonster() bool { return t&TypeMonster != 0 }
func (t Type) IsSpell() bool   { return t&TypeSpell != 0 }
func (t Type) IsTrap() bool    { return t&TypeTrap != 0 }

// Label returns the name a player would use for the card's frame,
// e.g. "Quick-Play Spell" or "Fusion Monster".
func (t Type) Label() string {
	switch {
	case t.IsMonster():
		switch {
		case t.Has(TypeNormal):
			return "Normal Monster"
		case t.Has(TypeXyz):
			return "Xyz Monster"
		case t.Has(TypeFusion):
			return "Fusion Monster"
		case t.Has(TypeSynchro):
			return "Synchro Monster"
		case t.Has(TypeLink):
			return "Link Monster"
		case t.Has(TypeRitual):
			return "Ritual Monster"
		case t.Has(TypeEffect):
			return "Effect Monster"
		}
		return "Monster"
	case t.IsSpell():
		switch {
		case t.Has(TypeEquip):
			return "Equip Spell"
		case t.Has(TypeField):
			return "Field Spell"
		case t.Has(TypeContinuous):
			return "Continuous Spell"
		case t.Has(TypeQuickPlay):
			return "Quick-Play Spell"
		}
		return "Normal Spell"
	case t.IsTrap():
		switch {
		case t.Has(TypeCounter):
			return "Counter Trap"
		case t.Has(TypeContinuous):
			return "Continuous Trap"
		}
		return "Normal Trap"
	}
	return "Unknown"
}

func (t Type) String() string {
	return fmt.Sprintf("%s (0x%x)", t.Label(), uint32(t))
}

var spellSubtypes = map[string]Type{
	"normal":     TypeSpell,
	"quickplay":  SpellQuickPlay,
	"continuous": SpellContinuous,
	"equip":      SpellEquip,
	"field":      SpellField,
}

var trapSubtypes = map[string]Type{
	"normal":     TypeTrap,
	"continuous": TrapContinuous,
	"counter":    TrapCounter,
}

// SpellSubtypes lists the accepted --spell-type values.
func SpellSubtypes() []string {
	return []string{"normal", "quickplay", "continuous", "equip", "field"}
}

// TrapSubtypes lists the accepted --trap-type values.
func TrapSubtypes() []string {
	return []string{"normal", "continuous", "counter"}
}

// SpellSubtype maps a spell subtype name to its full type flags.
// An empty name means a normal spell.
func SpellSubtype(name string) (Type, error) {
	return lookupSubtype(spellSubtypes, "spell", name)
}

// TrapSubtype maps a trap subtype name to its full type flags.
func TrapSubtype(name string) (Type, error) {
	return lookupSubtype(trapSubtypes, "trap", name)
}

func lookupSubtype(table map[string]Type, kind, name string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "normal"
	}
	key = strings.ReplaceAll(key, "-", "")
	t, ok := table[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s type %q", ErrUnknownSubtype, kind, name)
	}
	return t, nil
}
