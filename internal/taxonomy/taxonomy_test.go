package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeCategories(t *testing.T) {
	assert.True(t, MonsterNormal.IsMonster())
	assert.False(t, MonsterNormal.IsSpell())
	assert.True(t, SpellQuickPlay.IsSpell())
	assert.True(t, TrapCounter.IsTrap())
	assert.True(t, TrapCounter.Has(TypeCounter))
	assert.False(t, TypeTrap.Has(TrapCounter))
}

func TestTypeLabel(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{MonsterNormal, "Normal Monster"},
		{MonsterEffect, "Effect Monster"},
		{TypeMonster | TypeXyz | TypeEffect, "Xyz Monster"},
		{TypeSpell, "Normal Spell"},
		{SpellQuickPlay, "Quick-Play Spell"},
		{SpellEquip, "Equip Spell"},
		{TrapCounter, "Counter Trap"},
		{TrapContinuous, "Continuous Trap"},
		{0, "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.Label())
	}
}

func TestSubtypes(t *testing.T) {
	typ, err := SpellSubtype("quickplay")
	require.NoError(t, err)
	assert.Equal(t, SpellQuickPlay, typ)

	typ, err = SpellSubtype("Quick-Play")
	require.NoError(t, err)
	assert.Equal(t, SpellQuickPlay, typ)

	typ, err = SpellSubtype("")
	require.NoError(t, err)
	assert.Equal(t, TypeSpell, typ)

	typ, err = TrapSubtype("counter")
	require.NoError(t, err)
	assert.Equal(t, TrapCounter, typ)

	_, err = TrapSubtype("field")
	assert.ErrorIs(t, err, ErrUnknownSubtype)
}

func TestParseAttribute(t *testing.T) {
	a, err := ParseAttribute("fire")
	require.NoError(t, err)
	assert.Equal(t, AttributeFire, a)
	assert.Equal(t, "FIRE", a.Name())

	_, err = ParseAttribute("plasma")
	assert.ErrorIs(t, err, ErrUnknownAttribute)

	assert.Equal(t, "Unknown", Attribute(0x80).Name())
}

func TestParseRace(t *testing.T) {
	for _, in := range []string{"Beast-Warrior", "beast-warrior", "beastwarrior", "BEASTWARRIOR"} {
		r, err := ParseRace(in)
		require.NoError(t, err, in)
		assert.Equal(t, RaceBeastWarrior, r, in)
	}

	r, err := ParseRace("winged beast")
	require.NoError(t, err)
	assert.Equal(t, RaceWingedBeast, r)

	_, err = ParseRace("Robot")
	assert.ErrorIs(t, err, ErrUnknownRace)
}

func TestParseScope(t *testing.T) {
	s, err := ParseScope("ocg_tcg")
	require.NoError(t, err)
	assert.Equal(t, ScopeOCGTCG, s)

	s, err = ParseScope("official")
	require.NoError(t, err)
	assert.Equal(t, ScopeOfficial, s)

	s, err = ParseScope("speed duel")
	require.NoError(t, err)
	assert.Equal(t, ScopeSpeed, s)

	_, err = ParseScope("arcade")
	assert.ErrorIs(t, err, ErrUnknownScope)
}

func TestListingsRoundTrip(t *testing.T) {
	for _, name := range Attributes() {
		a, err := ParseAttribute(name)
		require.NoError(t, err)
		assert.Equal(t, name, a.Name())
	}
	for _, name := range Races() {
		r, err := ParseRace(name)
		require.NoError(t, err)
		assert.Equal(t, name, r.Name())
	}
	assert.Len(t, Races(), 26)
	assert.Equal(t, "OCG", Scopes()[0])
}

func TestScopeLabel(t *testing.T) {
	assert.Equal(t, "OCG/TCG", ScopeOCGTCG.Label())
	assert.Equal(t, "Custom", ScopeCustom.Label())
	assert.Equal(t, "Unknown", Scope(0).Label())
	assert.Equal(t, "Unknown", ScopeOCGTCG.Name())
}
