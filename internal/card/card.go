package card

import (
	"errors"
	"fmt"
	"strings"

	"github.com/edopro-tools/cardsmith/internal/taxonomy"
)

// ID ranges reserved for custom content. The engine's official cards stay
// below CustomIDMin.
const (
	CustomIDMin  int64 = 10000000
	CustomIDMax  int64 = 99999999
	DefaultStart int64 = 10000100
)

// StringCount is the number of auxiliary strN columns in the texts table.
const StringCount = 16

var ErrMissingField = errors.New("missing required field")

// Card represents one card across the datas and texts tables
type Card struct {
	ID        int64              // datas.id / texts.id
	Scope     taxonomy.Scope     // datas.ot
	Alias     int64              // ID of the card this one is a variant of
	SetCode   int64              // archetype / deck-grouping code
	Type      taxonomy.Type      // category and subtype flags
	Attack    int64              // monsters only
	Defense   int64              // monsters only
	Level     int64              // monsters only (level or rank)
	Race      taxonomy.Race      // monsters only
	Attribute taxonomy.Attribute // monsters only
	Category  taxonomy.Category  // effect category flags
	Name      string
	Desc      string
	Strings   [StringCount]string // str1..str16
}

// Summary is the short form returned by listings
type Summary struct {
	ID      int64
	Name    string
	Type    taxonomy.Type
	Attack  int64
	Defense int64
	Level   int64
}

// Validate checks the fields the store requires before an insert.
func (c *Card) Validate() error {
	var missing []string
	if c.ID <= 0 {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.Desc) == "" {
		missing = append(missing, "desc")
	}
	if c.Type == 0 {
		missing = append(missing, "type")
	}
	if c.Scope == 0 {
		missing = append(missing, "ot")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

// IsCustom reports whether the ID falls in the custom-content range.
func (c *Card) IsCustom() bool {
	return c.ID >= CustomIDMin && c.ID <= CustomIDMax
}

// Monster holds the stats only monsters carry
type Monster struct {
	Attack    int64
	Defense   int64
	Level     int64
	Attribute taxonomy.Attribute
	Race      taxonomy.Race
	Normal    bool // normal (vanilla) monster rather than an effect monster
}

// NewMonster builds a monster card legal in OCG and TCG.
func NewMonster(id int64, name, desc string, m Monster) *Card {
	typ := taxonomy.MonsterEffect
	if m.Normal {
		typ = taxonomy.MonsterNormal
	}
	return &Card{
		ID:        id,
		Name:      name,
		Desc:      desc,
		Type:      typ,
		Scope:     taxonomy.ScopeOCGTCG,
		Attack:    m.Attack,
		Defense:   m.Defense,
		Level:     m.Level,
		Attribute: m.Attribute,
		Race:      m.Race,
	}
}

// NewSpell builds a spell card from a subtype name such as "quickplay".
func NewSpell(id int64, name, desc, subtype string) (*Card, error) {
	typ, err := taxonomy.SpellSubtype(subtype)
	if err != nil {
		return nil, err
	}
	return &Card{ID: id, Name: name, Desc: desc, Type: typ, Scope: taxonomy.ScopeOCGTCG}, nil
}

// NewTrap builds a trap card from a subtype name such as "counter".
func NewTrap(id int64, name, desc, subtype string) (*Card, error) {
	typ, err := taxonomy.TrapSubtype(subtype)
	if err != nil {
		return nil, err
	}
	return &Card{ID: id, Name: name, Desc: desc, Type: typ, Scope: taxonomy.ScopeOCGTCG}, nil
}
