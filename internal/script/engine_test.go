package script

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edopro-tools/cardsmith/internal/card"
	"github.com/edopro-tools/cardsmith/internal/taxonomy"
)

var placeholders = []string{phCardID, phCardName, phEffectDesc, phEffectType, phOperation, phProperties, phCode}

func assertNoPlaceholders(t *testing.T, out string) {
	t.Helper()
	for _, ph := range placeholders {
		assert.NotContains(t, out, ph)
	}
	assert.NotContains(t, out, "{amount}")
}

func healingLight() *card.Card {
	c, _ := card.NewSpell(10000100, "Healing Light", "Restore 500 Life Points", "")
	return c
}

func TestSelectTemplate(t *testing.T) {
	tests := []struct {
		typ  taxonomy.Type
		want Key
	}{
		{taxonomy.MonsterNormal, MonsterNormal},
		{taxonomy.MonsterEffect, MonsterEffect},
		{taxonomy.TypeMonster | taxonomy.TypeXyz | taxonomy.TypeEffect, MonsterEffect},
		{taxonomy.TypeMonster | taxonomy.TypeNormal | taxonomy.TypeEffect, MonsterNormal},
		{taxonomy.TypeSpell, SpellBasic},
		{taxonomy.SpellQuickPlay, SpellQuickPlay},
		{taxonomy.SpellContinuous, SpellContinuous},
		{taxonomy.SpellEquip, SpellBasic},
		{taxonomy.TypeTrap, TrapNormal},
		{taxonomy.TrapCounter, TrapCounter},
		{taxonomy.TrapContinuous, TrapContinuous},
		{taxonomy.TypeMonster | taxonomy.TypeSpell, MonsterEffect},
		{0, SpellBasic},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SelectTemplate(tt.typ), "type %#x", uint32(tt.typ))
	}
}

func TestBuiltinTemplatesExist(t *testing.T) {
	e := NewEngine()
	for _, key := range []Key{MonsterNormal, MonsterEffect, SpellContinuous, SpellQuickPlay, SpellBasic, TrapCounter, TrapContinuous, TrapNormal} {
		tmpl, err := e.load(key)
		require.NoError(t, err, key)
		assert.Contains(t, tmpl, phCardName, key)
		assert.Contains(t, tmpl, phOperation, key)
	}
}

func TestRenderWithPattern(t *testing.T) {
	out, err := NewEngine().Render(healingLight(), SpellBasic, "recover_lp", Params{"amount": 500})
	require.NoError(t, err)

	assert.Contains(t, out, "Duel.Recover(tp,500,REASON_EFFECT)")
	assert.Contains(t, out, "e1:SetProperty(EFFECT_FLAG_PLAYER_TARGET)")
	assert.Contains(t, out, "--Healing Light")
	assert.Contains(t, out, "10000100")
	assert.Contains(t, out, "Recover 500 Life Points")
	assertNoPlaceholders(t, out)
}

func TestRenderPatternDefaults(t *testing.T) {
	out, err := NewEngine().Render(healingLight(), SpellBasic, "draw", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Duel.Draw(tp,1,REASON_EFFECT)")
	// draw has no code fragment, so the marker stays.
	assert.Contains(t, out, CodeMarker)
	assertNoPlaceholders(t, out)
}

func TestRenderCodePattern(t *testing.T) {
	c, err := card.NewSpell(10000110, "Rally", "Your monsters gain 300 ATK", "continuous")
	require.NoError(t, err)

	out, err := NewEngine().Generate(c, "atk_boost", Params{"amount": 300})
	require.NoError(t, err)
	assert.Contains(t, out, "Continuous Spell")
	assert.Contains(t, out, "e1:SetCode(EFFECT_UPDATE_ATTACK)")
	assert.Contains(t, out, "e1:SetValue(300)")
	assert.Contains(t, out, OperationMarker)
	assertNoPlaceholders(t, out)
}

func TestRenderWithoutPattern(t *testing.T) {
	out, err := NewEngine().Render(healingLight(), SpellBasic, "", nil)
	require.NoError(t, err)

	assert.Contains(t, out, OperationMarker)
	assert.Contains(t, out, CodeMarker)
	assert.Contains(t, out, CustomEffect)
	assertNoPlaceholders(t, out)
}

func TestRenderUnknownPatternIsLenient(t *testing.T) {
	e := NewEngine()
	withUnknown, err := e.Render(healingLight(), SpellBasic, "summon_exodia", Params{"amount": 5})
	require.NoError(t, err)
	without, err := e.Render(healingLight(), SpellBasic, "", nil)
	require.NoError(t, err)
	assert.Equal(t, without, withUnknown)
}

func TestRenderMultilineDescription(t *testing.T) {
	c := healingLight()
	c.Desc = "line one\nline two"
	out, err := NewEngine().Generate(c, "", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "--line one\n--line two")
}

func TestRenderKeepsPlaceholderTextInCardFields(t *testing.T) {
	c := healingLight()
	c.Name = "The {EFFECT_CODE} Card"
	c.Desc = "Mentions {EFFECT_OPERATION} literally"
	out, err := NewEngine().Render(c, SpellBasic, "recover_lp", Params{"amount": 500})
	require.NoError(t, err)

	assert.Contains(t, out, "--The {EFFECT_CODE} Card")
	assert.Contains(t, out, "--Mentions {EFFECT_OPERATION} literally")
	assert.Equal(t, 1, strings.Count(out, "Duel.Recover(tp,500,REASON_EFFECT)"))
}

func TestRenderMissingTemplate(t *testing.T) {
	e := NewEngineFS(fstest.MapFS{
		"spell_basic.lua": {Data: []byte("--{CARD_NAME} {EFFECT_OPERATION}")},
	})

	out, err := e.Render(healingLight(), SpellBasic, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "--Healing Light "+OperationMarker, out)

	_, err = e.Render(healingLight(), TrapCounter, "", nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestPatternsCatalog(t *testing.T) {
	patterns := Patterns()
	for _, name := range []string{"recover_lp", "damage", "draw", "atk_boost", "def_boost"} {
		assert.Contains(t, patterns, name)
	}
	assert.Equal(t, "Recover {amount} Life Points", patterns["recover_lp"])
	assert.Equal(t, []string{"atk_boost", "damage", "def_boost", "draw", "recover_lp"}, PatternNames())

	p, ok := LookupPattern("damage")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(p.Operation, "Duel.Damage"))
}

func TestParseCatalogRejectsDuplicates(t *testing.T) {
	_, err := parseCatalog(`
[[pattern]]
name = "draw"
[[pattern]]
name = "draw"
`)
	assert.Error(t, err)
}
