package card

import (
	"fmt"

	"github.com/edopro-tools/cardsmith/internal/taxonomy"
)

// Update is a sparse change set. Nil fields keep their stored value.
type Update struct {
	Scope     *taxonomy.Scope
	Alias     *int64
	SetCode   *int64
	Type      *taxonomy.Type
	Attack    *int64
	Defense   *int64
	Level     *int64
	Race      *taxonomy.Race
	Attribute *taxonomy.Attribute
	Category  *taxonomy.Category
	Name      *string
	Desc      *string
	// Strings is keyed by column number, 1 through 16.
	Strings map[int]string
}

// DataColumns returns the datas columns this update rewrites.
func (u Update) DataColumns() map[string]any {
	cols := map[string]any{}
	if u.Scope != nil {
		cols["ot"] = int64(*u.Scope)
	}
	if u.Alias != nil {
		cols["alias"] = *u.Alias
	}
	if u.SetCode != nil {
		cols["setcode"] = *u.SetCode
	}
	if u.Type != nil {
		cols["type"] = int64(*u.Type)
	}
	if u.Attack != nil {
		cols["atk"] = *u.Attack
	}
	if u.Defense != nil {
		cols["def"] = *u.Defense
	}
	if u.Level != nil {
		cols["level"] = *u.Level
	}
	if u.Race != nil {
		cols["race"] = int64(*u.Race)
	}
	if u.Attribute != nil {
		cols["attribute"] = int64(*u.Attribute)
	}
	if u.Category != nil {
		cols["category"] = int64(*u.Category)
	}
	return cols
}

// TextColumns returns the texts columns this update rewrites.
func (u Update) TextColumns() (map[string]any, error) {
	cols := map[string]any{}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Desc != nil {
		cols["desc"] = *u.Desc
	}
	for n, s := range u.Strings {
		if n < 1 || n > StringCount {
			return nil, fmt.Errorf("string column str%d out of range 1-%d", n, StringCount)
		}
		cols[fmt.Sprintf("str%d", n)] = s
	}
	return cols, nil
}

// Empty reports whether the update changes nothing.
func (u Update) Empty() bool {
	texts, _ := u.TextColumns()
	return len(u.DataColumns()) == 0 && len(texts) == 0 && len(u.Strings) == 0
}

// Apply returns a copy of c with the update's fields applied.
func (u Update) Apply(c Card) Card {
	if u.Scope != nil {
		c.Scope = *u.Scope
	}
	if u.Alias != nil {
		c.Alias = *u.Alias
	}
	if u.SetCode != nil {
		c.SetCode = *u.SetCode
	}
	if u.Type != nil {
		c.Type = *u.Type
	}
	if u.Attack != nil {
		c.Attack = *u.Attack
	}
	if u.Defense != nil {
		c.Defense = *u.Defense
	}
	if u.Level != nil {
		c.Level = *u.Level
	}
	if u.Race != nil {
		c.Race = *u.Race
	}
	if u.Attribute != nil {
		c.Attribute = *u.Attribute
	}
	if u.Category != nil {
		c.Category = *u.Category
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Desc != nil {
		c.Desc = *u.Desc
	}
	for n, s := range u.Strings {
		if n >= 1 && n <= StringCount {
			c.Strings[n-1] = s
		}
	}
	return c
}
