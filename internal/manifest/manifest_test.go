package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edopro-tools/cardsmith/internal/creator"
	"github.com/edopro-tools/cardsmith/internal/script"
	"github.com/edopro-tools/cardsmith/internal/taxonomy"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

const sample = `
id_start = 10000200
overwrite = true

[[card]]
id = 10000100
name = "Healing Light"
desc = "Restore 500 Life Points"
kind = "spell"
effect = "recover_lp"
amount = 500
image = "art/healing.png"

[[card]]
name = "Ember Wyrm"
desc = "A small dragon."
kind = "monster"
atk = 1800
def = 0
level = 4
attribute = "FIRE"
race = "Dragon"
image = "https://example.com/wyrm.jpg"
no_script = true
`

func TestLoad(t *testing.T) {
	path := writeManifest(t, sample)
	m, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, m.Path)
	assert.Equal(t, int64(10000200), m.IDStart)
	require.Len(t, m.Cards, 2)

	req, err := m.Cards[0].Request()
	require.NoError(t, err)
	assert.Equal(t, int64(10000100), req.Card.ID)
	assert.True(t, req.Card.Type.IsSpell())
	assert.Equal(t, "recover_lp", req.Pattern)
	assert.Equal(t, script.Params{"amount": int64(500)}, req.Params)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "art", "healing.png"), req.Image)
	assert.True(t, req.Overwrite)

	req, err = m.Cards[1].Request()
	require.NoError(t, err)
	assert.Zero(t, req.Card.ID)
	assert.Equal(t, taxonomy.MonsterNormal, req.Card.Type)
	assert.Equal(t, int64(0), req.Card.Defense)
	assert.Equal(t, "https://example.com/wyrm.jpg", req.Image)
	assert.True(t, req.NoScript)
}

func TestExplicitIDs(t *testing.T) {
	m, err := Load(writeManifest(t, sample))
	require.NoError(t, err)
	assert.Equal(t, []int64{10000100}, m.ExplicitIDs())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "manifest not found")

	_, err = Load(writeManifest(t, "id_start = 1\n"))
	assert.ErrorContains(t, err, "no [[card]] entries")

	_, err = Load(writeManifest(t, "[[card]]\nname = \"x\"\ncolour = \"red\"\n"))
	assert.ErrorContains(t, err, "unknown keys")

	_, err = Load(writeManifest(t, "[[card]]\nid = 10000100\n[[card]]\nid = 10000100\n"))
	assert.ErrorContains(t, err, "both use ID 10000100")

	_, err = Load(writeManifest(t, "[[card]\n"))
	assert.ErrorContains(t, err, "error parsing manifest")
}

func TestEntryRequestValidation(t *testing.T) {
	m, err := Load(writeManifest(t, `
[[card]]
name = "Half Monster"
desc = "Missing stats."
kind = "monster"
atk = 1000
attribute = "DARK"
race = "Fiend"

[[card]]
name = "Odd Trap"
desc = "Unknown subtype."
kind = "trap"
trap_type = "field"
`))
	require.NoError(t, err)

	_, err = m.Cards[0].Request()
	assert.ErrorIs(t, err, creator.ErrMissingStats)
	assert.ErrorContains(t, err, `"Half Monster"`)

	_, err = m.Cards[1].Request()
	assert.ErrorIs(t, err, taxonomy.ErrUnknownSubtype)
}
