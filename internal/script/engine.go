// Package script generates Lua card scripts from per-type templates.
package script

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/edopro-tools/cardsmith/internal/card"
	"github.com/edopro-tools/cardsmith/internal/taxonomy"
)

//go:embed templates/*.lua
var builtin embed.FS

var log = commonlog.GetLogger("cardsmith.script")

var ErrTemplateNotFound = errors.New("template not found")

// Key names a template file (without the .lua extension).
type Key string

const (
	MonsterNormal   Key = "monster_normal"
	MonsterEffect   Key = "monster_effect"
	SpellContinuous Key = "spell_continuous"
	SpellQuickPlay  Key = "spell_quickplay"
	SpellBasic      Key = "spell_basic"
	TrapCounter     Key = "trap_counter"
	TrapContinuous  Key = "trap_continuous"
	TrapNormal      Key = "trap_normal"
)

// Template placeholders.
const (
	phCardID     = "{CARD_ID}"
	phCardName   = "{CARD_NAME}"
	phEffectDesc = "{EFFECT_DESC}"
	phEffectType = "{EFFECT_TYPE}"
	phOperation  = "{EFFECT_OPERATION}"
	phProperties = "{ADDITIONAL_PROPERTIES}"
	phCode       = "{EFFECT_CODE}"
)

// Markers written in place of fragments no pattern supplied.
const (
	OperationMarker = "-- TODO: Add effect operation here"
	CodeMarker      = "-- TODO: Add effect code here"
	CustomEffect    = "Custom Effect"
)

// SelectTemplate picks the template for a card's type flags. Monster is
// checked before spell before trap; a monster without the normal flag is
// an effect monster. Flags with no category fall back to a basic spell.
func SelectTemplate(t taxonomy.Type) Key {
	switch {
	case t.IsMonster():
		if t&taxonomy.TypeNormal != 0 {
			return MonsterNormal
		}
		return MonsterEffect
	case t.IsSpell():
		if t&taxonomy.TypeContinuous != 0 {
			return SpellContinuous
		}
		if t&taxonomy.TypeQuickPlay != 0 {
			return SpellQuickPlay
		}
		return SpellBasic
	case t.IsTrap():
		if t&taxonomy.TypeCounter != 0 {
			return TrapCounter
		}
		if t&taxonomy.TypeContinuous != 0 {
			return TrapContinuous
		}
		return TrapNormal
	}
	return SpellBasic
}

// Engine renders scripts from a set of templates.
type Engine struct {
	templates fs.FS
}

// NewEngine returns an engine using the built-in templates.
func NewEngine() *Engine {
	sub, _ := fs.Sub(builtin, "templates")
	return &Engine{templates: sub}
}

// NewEngineFS returns an engine reading <key>.lua files from fsys.
func NewEngineFS(fsys fs.FS) *Engine {
	return &Engine{templates: fsys}
}

// NewEngineDir returns an engine reading templates from a directory, or the
// built-in templates when dir is empty.
func NewEngineDir(dir string) *Engine {
	if dir == "" {
		return NewEngine()
	}
	return NewEngineFS(os.DirFS(dir))
}

func (e *Engine) load(key Key) (string, error) {
	name := string(key) + ".lua"
	data, err := fs.ReadFile(e.templates, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return "", fmt.Errorf("error loading template %s: %w", name, err)
	}
	return string(data), nil
}

// Render fills template key for c. When patternName names a catalog
// pattern its fragments are interpolated with params and substituted;
// an empty or unrecognized name leaves "not yet implemented" markers.
func (e *Engine) Render(c *card.Card, key Key, patternName string, params Params) (string, error) {
	tmpl, err := e.load(key)
	if err != nil {
		return "", err
	}

	operation, properties, code, effectType := OperationMarker, "", CodeMarker, CustomEffect

	if patternName != "" {
		if p, ok := LookupPattern(patternName); ok {
			merged := p.merged(params)
			if p.Operation != "" {
				operation = interpolate(p.Operation, merged)
			}
			if p.Properties != "" {
				properties = interpolate(p.Properties, merged)
			}
			if p.Code != "" {
				code = interpolate(p.Code, merged)
			}
			effectType = interpolate(p.Description, merged)
		} else {
			log.Noticef("unknown effect pattern %q for card %d, leaving markers", patternName, c.ID)
		}
	}

	// One pass, so placeholder text inside a card's name or description
	// is left as written.
	return strings.NewReplacer(
		phCardID, strconv.FormatInt(c.ID, 10),
		phCardName, c.Name,
		phEffectDesc, commentLines(c.Desc),
		phOperation, operation,
		phProperties, properties,
		phCode, code,
		phEffectType, effectType,
	).Replace(tmpl), nil
}

// Generate selects the template for c's type and renders it.
func (e *Engine) Generate(c *card.Card, patternName string, params Params) (string, error) {
	return e.Render(c, SelectTemplate(c.Type), patternName, params)
}

// commentLines keeps a multi-line description inside the Lua comment that
// the {EFFECT_DESC} placeholder sits in.
func commentLines(s string) string {
	return strings.ReplaceAll(s, "\n", "\n--")
}
