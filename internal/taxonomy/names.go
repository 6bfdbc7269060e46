package taxonomy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrUnknownRace      = errors.New("unknown race")
	ErrUnknownScope     = errors.New("unknown scope")
)

// Attribute is the value stored in datas.attribute.
type Attribute uint32

const (
	AttributeEarth  Attribute = 0x01
	AttributeWater  Attribute = 0x02
	AttributeFire   Attribute = 0x04
	AttributeWind   Attribute = 0x08
	AttributeLight  Attribute = 0x10
	AttributeDark   Attribute = 0x20
	AttributeDivine Attribute = 0x40
)

// Race is the value stored in datas.race (the monster's "type" line).
type Race uint32

const (
	RaceWarrior      Race = 0x1
	RaceSpellcaster  Race = 0x2
	RaceFairy        Race = 0x4
	RaceFiend        Race = 0x8
	RaceZombie       Race = 0x10
	RaceMachine      Race = 0x20
	RaceAqua         Race = 0x40
	RacePyro         Race = 0x80
	RaceRock         Race = 0x100
	RaceWingedBeast  Race = 0x200
	RacePlant        Race = 0x400
	RaceInsect       Race = 0x800
	RaceThunder      Race = 0x1000
	RaceDragon       Race = 0x2000
	RaceBeast        Race = 0x4000
	RaceBeastWarrior Race = 0x8000
	RaceDinosaur     Race = 0x10000
	RaceFish         Race = 0x20000
	RaceSeaSerpent   Race = 0x40000
	RaceReptile      Race = 0x80000
	RacePsychic      Race = 0x100000
	RaceDivineBeast  Race = 0x200000
	RaceCreatorGod   Race = 0x400000
	RaceWyrm         Race = 0x800000
	RaceCyberse      Race = 0x1000000
	RaceIllusion     Race = 0x2000000
)

// Scope is the value stored in datas.ot: the formats a card is legal in.
type Scope uint32

const (
	ScopeOCG        Scope = 0x1
	ScopeTCG        Scope = 0x2
	ScopeAnime      Scope = 0x4
	ScopeIllegal    Scope = 0x8
	ScopeVideoGame  Scope = 0x10
	ScopeCustom     Scope = 0x20
	ScopeSpeed      Scope = 0x40
	ScopePrerelease Scope = 0x100
	ScopeRush       Scope = 0x200
	ScopeLegend     Scope = 0x400
	ScopeHidden     Scope = 0x1000

	// ScopeOCGTCG is what the engine shows by default.
	ScopeOCGTCG   = ScopeOCG | ScopeTCG
	ScopeOfficial = ScopeOCG | ScopeTCG | ScopePrerelease
)

// Category is the value stored in datas.category, used by the engine's
// card search filters.
type Category uint64

const (
	CategoryDestroy        Category = 0x1
	CategoryRelease        Category = 0x2
	CategoryRemove         Category = 0x4
	CategoryToHand         Category = 0x8
	CategoryToDeck         Category = 0x10
	CategoryToGrave        Category = 0x20
	CategoryDeckDes        Category = 0x40
	CategoryHandes         Category = 0x80
	CategorySummon         Category = 0x100
	CategorySpecialSummon  Category = 0x200
	CategoryToken          Category = 0x400
	CategoryFlip           Category = 0x800
	CategoryPosition       Category = 0x1000
	CategoryControl        Category = 0x2000
	CategoryDisable        Category = 0x4000
	CategoryDraw           Category = 0x8000
	CategorySearch         Category = 0x10000
	CategoryEquip          Category = 0x20000
	CategoryDamage         Category = 0x40000
	CategoryRecover        Category = 0x80000
	CategoryCounter        Category = 0x100000
	CategoryCoin           Category = 0x200000
	CategoryDice           Category = 0x400000
	CategoryFusionSummon   Category = 0x800000
	CategoryTuner          Category = 0x1000000
	CategoryXyz            Category = 0x2000000
	CategoryNegate         Category = 0x4000000
	CategoryLevel          Category = 0x8000000
	CategoryAtkDef         Category = 0x10000000
	CategoryLeaveGrave     Category = 0x20000000
	CategoryToExtra        Category = 0x40000000
	CategoryToGraveOnField Category = 0x80000000
)

type entry[T ~uint32] struct {
	value T
	name  string
}

var attributeTable = []entry[Attribute]{
	{AttributeEarth, "EARTH"},
	{AttributeWater, "WATER"},
	{AttributeFire, "FIRE"},
	{AttributeWind, "WIND"},
	{AttributeLight, "LIGHT"},
	{AttributeDark, "DARK"},
	{AttributeDivine, "DIVINE"},
}

var raceTable = []entry[Race]{
	{RaceWarrior, "Warrior"},
	{RaceSpellcaster, "Spellcaster"},
	{RaceFairy, "Fairy"},
	{RaceFiend, "Fiend"},
	{RaceZombie, "Zombie"},
	{RaceMachine, "Machine"},
	{RaceAqua, "Aqua"},
	{RacePyro, "Pyro"},
	{RaceRock, "Rock"},
	{RaceWingedBeast, "Winged Beast"},
	{RacePlant, "Plant"},
	{RaceInsect, "Insect"},
	{RaceThunder, "Thunder"},
	{RaceDragon, "Dragon"},
	{RaceBeast, "Beast"},
	{RaceBeastWarrior, "Beast-Warrior"},
	{RaceDinosaur, "Dinosaur"},
	{RaceFish, "Fish"},
	{RaceSeaSerpent, "Sea Serpent"},
	{RaceReptile, "Reptile"},
	{RacePsychic, "Psychic"},
	{RaceDivineBeast, "Divine-Beast"},
	{RaceCreatorGod, "Creator God"},
	{RaceWyrm, "Wyrm"},
	{RaceCyberse, "Cyberse"},
	{RaceIllusion, "Illusion"},
}

var scopeTable = []entry[Scope]{
	{ScopeOCG, "OCG"},
	{ScopeTCG, "TCG"},
	{ScopeAnime, "Anime"},
	{ScopeIllegal, "Illegal"},
	{ScopeVideoGame, "Video Game"},
	{ScopeCustom, "Custom"},
	{ScopeSpeed, "Speed Duel"},
	{ScopePrerelease, "Pre-release"},
	{ScopeRush, "Rush Duel"},
	{ScopeLegend, "Legend"},
	{ScopeHidden, "Hidden"},
}

// Lookup maps, filled once by init and never written afterwards.
var (
	attributeNames = map[Attribute]string{}
	attributeByKey = map[string]Attribute{}
	raceNames      = map[Race]string{}
	raceByKey      = map[string]Race{}
	scopeNames     = map[Scope]string{}
	scopeByKey     = map[string]Scope{}
)

func init() {
	for _, e := range attributeTable {
		attributeNames[e.value] = e.name
		attributeByKey[strings.ToUpper(e.name)] = e.value
	}
	for _, e := range raceTable {
		raceNames[e.value] = e.name
		key := strings.ToLower(e.name)
		raceByKey[key] = e.value
		raceByKey[strings.ReplaceAll(key, "-", "")] = e.value
	}
	for _, e := range scopeTable {
		scopeNames[e.value] = e.name
		scopeByKey[strings.ToUpper(e.name)] = e.value
	}
	scopeByKey["OCG_TCG"] = ScopeOCGTCG
	scopeByKey["OCGTCG"] = ScopeOCGTCG
	scopeByKey["OFFICIAL"] = ScopeOfficial
}

func (a Attribute) Name() string {
	if name, ok := attributeNames[a]; ok {
		return name
	}
	return "Unknown"
}

func (r Race) Name() string {
	if name, ok := raceNames[r]; ok {
		return name
	}
	return "Unknown"
}

func (s Scope) Name() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Label names each flag set in s, e.g. "OCG/TCG".
func (s Scope) Label() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	var parts []string
	for _, e := range scopeTable {
		if s&e.value != 0 {
			parts = append(parts, e.name)
		}
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, "/")
}

// ParseAttribute accepts an attribute name in any case ("fire", "FIRE").
func ParseAttribute(s string) (Attribute, error) {
	if a, ok := attributeByKey[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, s)
}

// ParseRace accepts a race name in any case, with or without its hyphen
// ("Beast-Warrior", "beastwarrior").
func ParseRace(s string) (Race, error) {
	if r, ok := raceByKey[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRace, s)
}

// ParseScope accepts a scope name in any case, plus the OCG_TCG and
// OFFICIAL shorthands.
func ParseScope(s string) (Scope, error) {
	if sc, ok := scopeByKey[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return sc, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScope, s)
}

// Attributes returns attribute names in engine order.
func Attributes() []string { return names(attributeTable) }

// Races returns race names in engine order.
func Races() []string { return names(raceTable) }

// Scopes returns scope names in engine order.
func Scopes() []string { return names(scopeTable) }

func names[T ~uint32](table []entry[T]) []string {
	out := make([]string, len(table))
	for i, e := range table {
		out[i] = e.name
	}
	return out
}
