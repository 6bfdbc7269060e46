package creator

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edopro-tools/cardsmith/internal/artwork"
	"github.com/edopro-tools/cardsmith/internal/card"
	"github.com/edopro-tools/cardsmith/internal/script"
	"github.com/edopro-tools/cardsmith/internal/store"
	"github.com/edopro-tools/cardsmith/internal/taxonomy"
)

func newTestCreator(t *testing.T) *Creator {
	t.Helper()
	root := t.TempDir()
	p := Paths{
		Database:  filepath.Join(root, "expansions", "cards.cdb"),
		ScriptDir: filepath.Join(root, "script"),
		PicsDir:   filepath.Join(root, "pics"),
	}
	require.NoError(t, store.CreateBlank(p.Database))
	c, err := New(p)
	require.NoError(t, err)
	return c
}

func healingLight(t *testing.T) *card.Card {
	c, err := card.NewSpell(10000100, "Healing Light", "Restore 500 Life Points", "")
	require.NoError(t, err)
	return c
}

func writePNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "art.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 40, 60))))
	return path
}

func TestNewCreatesDirectories(t *testing.T) {
	c := newTestCreator(t)
	assert.DirExists(t, c.Scripts.Dir)
	assert.DirExists(t, c.Artwork.Dir)
}

func TestNewFailsWhenDirectoryCannotBeCreated(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := New(Paths{
		Database:  filepath.Join(root, "cards.cdb"),
		ScriptDir: filepath.Join(blocker, "script"),
		PicsDir:   filepath.Join(root, "pics"),
	})
	assert.Error(t, err)
}

func TestCreateHealingLight(t *testing.T) {
	c := newTestCreator(t)

	res := c.Create(Request{
		Card:    healingLight(t),
		Pattern: "recover_lp",
		Params:  script.Params{"amount": 500},
	})
	require.True(t, res.OK(), "record step: %v", res.Record.Err)
	assert.Equal(t, int64(10000100), res.ID)
	assert.Equal(t, Succeeded, res.Script.Status)
	assert.Equal(t, Skipped, res.Artwork.Status)
	assert.Empty(t, res.Warnings())

	got, err := c.Store.Get(10000100)
	require.NoError(t, err)
	assert.True(t, got.Type.IsSpell())
	assert.Equal(t, "Healing Light", got.Name)

	list, err := c.Store.List(card.CustomIDMin, card.CustomIDMax)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	data, err := os.ReadFile(res.Script.Path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.Scripts.Dir, "c10000100.lua"), res.Script.Path)
	assert.Contains(t, string(data), "Duel.Recover(tp,500,REASON_EFFECT)")
	assert.NotContains(t, string(data), "{amount}")
}

func TestCreateWithArtwork(t *testing.T) {
	c := newTestCreator(t)

	res := c.Create(Request{Card: healingLight(t), Image: writePNG(t)})
	require.True(t, res.OK())
	assert.Equal(t, Succeeded, res.Artwork.Status)
	assert.Equal(t, filepath.Join(c.Artwork.Dir, "10000100.jpg"), res.Artwork.Path)

	info, err := c.Artwork.Verify(10000100)
	require.NoError(t, err)
	assert.True(t, info.Canonical)
}

func TestCreateAllocatesID(t *testing.T) {
	c := newTestCreator(t)

	first := c.Create(Request{Card: healingLight(t), NoScript: true})
	require.True(t, first.OK())

	next := healingLight(t)
	next.ID = 0
	second := c.Create(Request{Card: next, NoScript: true})
	require.True(t, second.OK())
	assert.Equal(t, int64(10000101), second.ID)
	assert.Equal(t, Skipped, second.Script.Status)
}

func TestCreateSkipsReservedIDs(t *testing.T) {
	c := newTestCreator(t)
	c.Reserve(10000100, 10000101)

	cd := healingLight(t)
	cd.ID = 0
	res := c.Create(Request{Card: cd, NoScript: true})
	require.True(t, res.OK())
	assert.Equal(t, int64(10000102), res.ID)

	reserved := healingLight(t)
	res = c.Create(Request{Card: reserved, NoScript: true})
	require.True(t, res.OK(), res.Record.Err)
	assert.Equal(t, int64(10000100), res.ID)
}

func TestCreateDuplicateSkipsLaterSteps(t *testing.T) {
	c := newTestCreator(t)
	require.True(t, c.Create(Request{Card: healingLight(t), NoScript: true}).OK())

	res := c.Create(Request{Card: healingLight(t), Image: writePNG(t)})
	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Record.Err, store.ErrExists)
	assert.Equal(t, Skipped, res.Script.Status)
	assert.Equal(t, Skipped, res.Artwork.Status)
	assert.False(t, c.Scripts.Exists(10000100))
}

func TestCreateKeepsRecordWhenLaterStepsFail(t *testing.T) {
	c := newTestCreator(t)
	c.Engine = script.NewEngineFS(fstest.MapFS{})

	res := c.Create(Request{
		Card:  healingLight(t),
		Image: filepath.Join(t.TempDir(), "missing.png"),
	})
	require.True(t, res.OK())
	assert.Equal(t, Failed, res.Script.Status)
	assert.ErrorIs(t, res.Script.Err, script.ErrTemplateNotFound)
	assert.Equal(t, Failed, res.Artwork.Status)
	assert.ErrorIs(t, res.Artwork.Err, artwork.ErrSourceMissing)
	assert.Len(t, res.Warnings(), 2)

	found, err := c.Store.Exists(10000100)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestCreateMissingDatabase(t *testing.T) {
	root := t.TempDir()
	c, err := New(Paths{
		Database:  filepath.Join(root, "nope.cdb"),
		ScriptDir: filepath.Join(root, "script"),
		PicsDir:   filepath.Join(root, "pics"),
	})
	require.NoError(t, err)

	res := c.Create(Request{Card: healingLight(t)})
	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Record.Err, store.ErrDatabaseMissing)
}

func TestRegenerate(t *testing.T) {
	c := newTestCreator(t)
	require.True(t, c.Create(Request{Card: healingLight(t)}).OK())

	r, err := c.Regenerate(10000100, "damage", script.Params{"amount": 800}, false)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Err, script.ErrScriptExists)

	r, err = c.Regenerate(10000100, "damage", script.Params{"amount": 800}, true)
	require.NoError(t, err)
	require.Equal(t, Succeeded, r.Status)
	data, err := os.ReadFile(r.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Duel.Damage(1-tp,800,REASON_EFFECT)")

	_, err = c.Regenerate(10000999, "", nil, true)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRemove(t *testing.T) {
	c := newTestCreator(t)
	require.True(t, c.Create(Request{Card: healingLight(t), Image: writePNG(t)}).OK())

	res := c.Remove(10000100, true)
	require.True(t, res.OK())
	assert.Equal(t, Succeeded, res.Script.Status)
	assert.Equal(t, Succeeded, res.Artwork.Status)
	assert.False(t, c.Scripts.Exists(10000100))
	_, ok := c.Artwork.FindExisting(10000100)
	assert.False(t, ok)

	res = c.Remove(10000100, true)
	assert.ErrorIs(t, res.Record.Err, store.ErrNotFound)
}

func TestRemoveKeepsFilesByDefault(t *testing.T) {
	c := newTestCreator(t)
	require.True(t, c.Create(Request{Card: healingLight(t)}).OK())

	res := c.Remove(10000100, false)
	require.True(t, res.OK())
	assert.Equal(t, Skipped, res.Script.Status)
	assert.True(t, c.Scripts.Exists(10000100))
}

func TestDraftRequest(t *testing.T) {
	i := func(v int64) *int64 { return &v }

	req, err := Draft{
		Name: "Ember Wyrm", Desc: "A small dragon.", Kind: "Monster",
		Attack: i(1800), Defense: i(1200), Level: i(4),
		Attribute: "fire", Race: "Dragon", EffectMonster: true,
	}.Request()
	require.NoError(t, err)
	assert.Equal(t, taxonomy.MonsterEffect, req.Card.Type)
	assert.Equal(t, taxonomy.AttributeFire, req.Card.Attribute)
	assert.Equal(t, int64(1800), req.Card.Attack)
	assert.Nil(t, req.Params)

	req, err = Draft{Name: "Zap", Desc: "Deal damage.", Kind: "trap", TrapType: "counter", Effect: "damage", Amount: i(300)}.Request()
	require.NoError(t, err)
	assert.Equal(t, taxonomy.TrapCounter, req.Card.Type)
	assert.Equal(t, script.Params{"amount": int64(300)}, req.Params)
	assert.Equal(t, "damage", req.Pattern)
}

func TestDraftRequestErrors(t *testing.T) {
	i := func(v int64) *int64 { return &v }
	monster := Draft{Name: "M", Desc: "d", Kind: "monster", Attack: i(1), Defense: i(1), Level: i(1), Attribute: "LIGHT", Race: "Fairy"}

	_, err := Draft{Desc: "d", Kind: "spell"}.Request()
	assert.ErrorIs(t, err, card.ErrMissingField)

	_, err = Draft{Name: "x", Desc: "d", Kind: "ritual"}.Request()
	assert.ErrorIs(t, err, ErrUnknownKind)

	noLevel := monster
	noLevel.Level = nil
	_, err = noLevel.Request()
	assert.ErrorIs(t, err, ErrMissingStats)

	badAttr := monster
	badAttr.Attribute = "PLASMA"
	_, err = badAttr.Request()
	assert.ErrorIs(t, err, taxonomy.ErrUnknownAttribute)

	badRace := monster
	badRace.Race = "Robot"
	_, err = badRace.Request()
	assert.ErrorIs(t, err, taxonomy.ErrUnknownRace)

	_, err = Draft{Name: "x", Desc: "d", Kind: "spell", SpellType: "ritualish"}.Request()
	assert.ErrorIs(t, err, taxonomy.ErrUnknownSubtype)

	_, err = monster.Request()
	assert.NoError(t, err)
}
