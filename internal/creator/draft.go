package creator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/edopro-tools/cardsmith/internal/card"
	"github.com/edopro-tools/cardsmith/internal/script"
	"github.com/edopro-tools/cardsmith/internal/taxonomy"
)

var (
	ErrUnknownKind  = errors.New("unknown card kind")
	ErrMissingStats = errors.New("monster cards need atk, def, level, attribute and race")
)

// Kinds accepted by Draft.Kind.
const (
	KindMonster = "monster"
	KindSpell   = "spell"
	KindTrap    = "trap"
)

// Draft is the loosely typed form of a creation request, as it arrives from
// command-line flags or a manifest entry. Nil stats mean "not given".
type Draft struct {
	ID            int64
	Name          string
	Desc          string
	Kind          string
	SpellType     string
	TrapType      string
	Attack        *int64
	Defense       *int64
	Level         *int64
	Attribute     string
	Race          string
	EffectMonster bool
	Effect        string
	Amount        *int64
	Image         string
	NoScript      bool
	NoResize      bool
	Overwrite     bool
}

// Request validates the draft and turns it into a creation request.
func (d Draft) Request() (Request, error) {
	c, err := d.card()
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Card:      c,
		Pattern:   d.Effect,
		NoScript:  d.NoScript,
		Image:     d.Image,
		NoResize:  d.NoResize,
		Overwrite: d.Overwrite,
	}
	if d.Amount != nil {
		req.Params = script.Params{"amount": *d.Amount}
	}
	return req, nil
}

func (d Draft) card() (*card.Card, error) {
	var missing []string
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(d.Desc) == "" {
		missing = append(missing, "desc")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", card.ErrMissingField, strings.Join(missing, ", "))
	}

	switch strings.ToLower(strings.TrimSpace(d.Kind)) {
	case KindMonster:
		return d.monster()
	case KindSpell:
		return card.NewSpell(d.ID, d.Name, d.Desc, d.SpellType)
	case KindTrap:
		return card.NewTrap(d.ID, d.Name, d.Desc, d.TrapType)
	default:
		return nil, fmt.Errorf("%w: %q (want monster, spell or trap)", ErrUnknownKind, d.Kind)
	}
}

func (d Draft) monster() (*card.Card, error) {
	if d.Attack == nil || d.Defense == nil || d.Level == nil || d.Attribute == "" || d.Race == "" {
		return nil, ErrMissingStats
	}
	attr, err := taxonomy.ParseAttribute(d.Attribute)
	if err != nil {
		return nil, err
	}
	race, err := taxonomy.ParseRace(d.Race)
	if err != nil {
		return nil, err
	}
	return card.NewMonster(d.ID, d.Name, d.Desc, card.Monster{
		Attack:    *d.Attack,
		Defense:   *d.Defense,
		Level:     *d.Level,
		Attribute: attr,
		Race:      race,
		Normal:    !d.EffectMonster,
	}), nil
}
