// Package manifest reads batch files describing many cards to create in one
// run.
//
//	id_start = 10000200
//
//	[[card]]
//	name = "Healing Light"
//	desc = "Restore 500 Life Points"
//	kind = "spell"
//	effect = "recover_lp"
//	amount = 500
//	image = "art/healing_light.png"
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/edopro-tools/cardsmith/internal/artwork"
	"github.com/edopro-tools/cardsmith/internal/creator"
)

// Manifest is a decoded batch file.
type Manifest struct {
	Path      string  `toml:"-"`
	IDStart   int64   `toml:"id_start"`
	Overwrite bool    `toml:"overwrite"`
	NoResize  bool    `toml:"no_resize"`
	Cards     []Entry `toml:"card"`
}

// Entry is one [[card]] table. Stats are pointers so that a missing atk and
// an explicit atk = 0 can be told apart.
type Entry struct {
	ID            int64  `toml:"id"`
	Name          string `toml:"name"`
	Desc          string `toml:"desc"`
	Kind          string `toml:"kind"`
	SpellType     string `toml:"spell_type"`
	TrapType      string `toml:"trap_type"`
	Attack        *int64 `toml:"atk"`
	Defense       *int64 `toml:"def"`
	Level         *int64 `toml:"level"`
	Attribute     string `toml:"attribute"`
	Race          string `toml:"race"`
	EffectMonster bool   `toml:"effect_monster"`
	Effect        string `toml:"effect"`
	Amount        *int64 `toml:"amount"`
	Image         string `toml:"image"`
	NoScript      bool   `toml:"no_script"`

	m *Manifest
}

// Load decodes the manifest at path. Unknown keys and repeated explicit IDs
// are rejected; per-card validation happens in Entry.Request.
func Load(path string) (*Manifest, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("manifest not found: %s", path)
	}

	var m Manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("error parsing manifest: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in manifest: %s", strings.Join(keys, ", "))
	}
	if len(m.Cards) == 0 {
		return nil, fmt.Errorf("manifest %s defines no [[card]] entries", path)
	}

	seen := make(map[int64]int)
	for i := range m.Cards {
		e := &m.Cards[i]
		e.m = &m
		if e.ID == 0 {
			continue
		}
		if j, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("card %d and card %d both use ID %d", j+1, i+1, e.ID)
		}
		seen[e.ID] = i
	}

	m.Path = path
	return &m, nil
}

// ExplicitIDs lists the IDs entries set themselves, in manifest order.
func (m *Manifest) ExplicitIDs() []int64 {
	var ids []int64
	for _, e := range m.Cards {
		if e.ID != 0 {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Label names the entry in messages.
func (e Entry) Label() string {
	if e.ID != 0 {
		return fmt.Sprintf("%d %q", e.ID, e.Name)
	}
	return fmt.Sprintf("%q", e.Name)
}

// Draft converts the entry, resolving a relative local image path against
// the manifest's directory.
func (e Entry) Draft() creator.Draft {
	d := creator.Draft{
		ID:            e.ID,
		Name:          e.Name,
		Desc:          e.Desc,
		Kind:          e.Kind,
		SpellType:     e.SpellType,
		TrapType:      e.TrapType,
		Attack:        e.Attack,
		Defense:       e.Defense,
		Level:         e.Level,
		Attribute:     e.Attribute,
		Race:          e.Race,
		EffectMonster: e.EffectMonster,
		Effect:        e.Effect,
		Amount:        e.Amount,
		Image:         e.Image,
		NoScript:      e.NoScript,
	}
	if e.m != nil {
		d.Overwrite = e.m.Overwrite
		d.NoResize = e.m.NoResize
		if d.Image != "" && !artwork.IsRemote(d.Image) && !filepath.IsAbs(d.Image) && e.m.Path != "" {
			d.Image = filepath.Join(filepath.Dir(e.m.Path), d.Image)
		}
	}
	return d
}

// Request validates the entry the same way the create command validates
// its flags.
func (e Entry) Request() (creator.Request, error) {
	req, err := e.Draft().Request()
	if err != nil {
		return req, fmt.Errorf("card %s: %w", e.Label(), err)
	}
	return req, nil
}
