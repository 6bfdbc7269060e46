package store

import (
	"github.com/edopro-tools/cardsmith/internal/card"
	"github.com/edopro-tools/cardsmith/internal/taxonomy"
)

// dataRow maps the datas table. Column names follow the engine's schema.
type dataRow struct {
	ID        int64 `gorm:"column:id;primaryKey;autoIncrement:false"`
	OT        int64 `gorm:"column:ot"`
	Alias     int64 `gorm:"column:alias"`
	SetCode   int64 `gorm:"column:setcode"`
	Type      int64 `gorm:"column:type"`
	Atk       int64 `gorm:"column:atk"`
	Def       int64 `gorm:"column:def"`
	Level     int64 `gorm:"column:level"`
	Race      int64 `gorm:"column:race"`
	Attribute int64 `gorm:"column:attribute"`
	Category  int64 `gorm:"column:category"`
}

func (dataRow) TableName() string {
	return "datas"
}

// textRow maps the texts table.
type textRow struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name  string `gorm:"column:name"`
	Desc  string `gorm:"column:desc"`
	Str1  string `gorm:"column:str1"`
	Str2  string `gorm:"column:str2"`
	Str3  string `gorm:"column:str3"`
	Str4  string `gorm:"column:str4"`
	Str5  string `gorm:"column:str5"`
	Str6  string `gorm:"column:str6"`
	Str7  string `gorm:"column:str7"`
	Str8  string `gorm:"column:str8"`
	Str9  string `gorm:"column:str9"`
	Str10 string `gorm:"column:str10"`
	Str11 string `gorm:"column:str11"`
	Str12 string `gorm:"column:str12"`
	Str13 string `gorm:"column:str13"`
	Str14 string `gorm:"column:str14"`
	Str15 string `gorm:"column:str15"`
	Str16 string `gorm:"column:str16"`
}

func (textRow) TableName() string {
	return "texts"
}

// summaryRow receives the joined listing query. Name is a pointer because
// a datas row may have no texts row.
type summaryRow struct {
	ID    int64
	Name  *string
	Type  int64
	Atk   int64
	Def   int64
	Level int64
}

func (r *textRow) strings() *[card.StringCount]*string {
	return &[card.StringCount]*string{
		&r.Str1, &r.Str2, &r.Str3, &r.Str4, &r.Str5, &r.Str6, &r.Str7, &r.Str8,
		&r.Str9, &r.Str10, &r.Str11, &r.Str12, &r.Str13, &r.Str14, &r.Str15, &r.Str16,
	}
}

func rowsFromCard(c *card.Card) (dataRow, textRow) {
	d := dataRow{
		ID:        c.ID,
		OT:        int64(c.Scope),
		Alias:     c.Alias,
		SetCode:   c.SetCode,
		Type:      int64(c.Type),
		Atk:       c.Attack,
		Def:       c.Defense,
		Level:     c.Level,
		Race:      int64(c.Race),
		Attribute: int64(c.Attribute),
		Category:  int64(c.Category),
	}
	t := textRow{ID: c.ID, Name: c.Name, Desc: c.Desc}
	for i, p := range t.strings() {
		*p = c.Strings[i]
	}
	return d, t
}

func cardFromRows(d dataRow, t textRow) *card.Card {
	c := &card.Card{
		ID:        d.ID,
		Scope:     taxonomy.Scope(d.OT),
		Alias:     d.Alias,
		SetCode:   d.SetCode,
		Type:      taxonomy.Type(d.Type),
		Attack:    d.Atk,
		Defense:   d.Def,
		Level:     d.Level,
		Race:      taxonomy.Race(d.Race),
		Attribute: taxonomy.Attribute(d.Attribute),
		Category:  taxonomy.Category(d.Category),
		Name:      t.Name,
		Desc:      t.Desc,
	}
	for i, p := range t.strings() {
		c.Strings[i] = *p
	}
	return c
}
