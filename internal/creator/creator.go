// Package creator runs card creation end to end: the database record first,
// then the script, then the artwork. Only the record step is fatal; a card
// whose script or image failed is still a valid card.
package creator

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/edopro-tools/cardsmith/internal/artwork"
	"github.com/edopro-tools/cardsmith/internal/card"
	"github.com/edopro-tools/cardsmith/internal/script"
	"github.com/edopro-tools/cardsmith/internal/store"
)

var log = commonlog.GetLogger("cardsmith.creator")

// Paths locates everything a creator writes to.
type Paths struct {
	Database     string
	ScriptDir    string
	PicsDir      string
	TemplatesDir string // empty means the built-in templates
}

// Creator wires the store, template engine, script writer and artwork
// placer together.
type Creator struct {
	Store   *store.Store
	Engine  *script.Engine
	Scripts *script.Writer
	Artwork *artwork.Placer
	IDStart int64 // first ID tried when a request carries none

	reserved map[int64]bool
}

// Reserve keeps ids out of ID allocation, for cards that will be created
// later with those IDs set explicitly.
func (c *Creator) Reserve(ids ...int64) {
	if c.reserved == nil {
		c.reserved = make(map[int64]bool, len(ids))
	}
	for _, id := range ids {
		c.reserved[id] = true
	}
}

// New builds a creator and makes sure the output directories exist. A
// directory that cannot be created is returned before anything else runs.
func New(p Paths) (*Creator, error) {
	engine := script.NewEngine()
	if p.TemplatesDir != "" {
		engine = script.NewEngineDir(p.TemplatesDir)
	}

	c := &Creator{
		Store:   store.New(p.Database),
		Engine:  engine,
		Scripts: script.NewWriter(p.ScriptDir),
		Artwork: artwork.NewPlacer(p.PicsDir),
		IDStart: card.DefaultStart,
	}
	if err := c.Scripts.EnsureDir(); err != nil {
		return nil, err
	}
	if err := c.Artwork.EnsureDir(); err != nil {
		return nil, err
	}
	return c, nil
}

// Request is one card to create.
type Request struct {
	Card      *card.Card // ID 0 allocates the next free ID
	Pattern   string     // effect pattern; empty or unknown leaves markers
	Params    script.Params
	NoScript  bool
	Image     string // URL or local path; empty skips the artwork step
	NoResize  bool
	Overwrite bool // replace an existing script or image
}

// Create runs the three steps for req. The returned Result always carries
// one entry per step.
func (c *Creator) Create(req Request) Result {
	res := Result{
		Record:  StepResult{Step: StepRecord},
		Script:  StepResult{Step: StepScript},
		Artwork: StepResult{Step: StepArtwork},
	}
	if req.Card == nil {
		res.Record.fail(fmt.Errorf("%w: card", card.ErrMissingField))
		return res
	}

	if err := c.insert(req.Card); err != nil {
		log.Errorf("card %d not created: %s", req.Card.ID, err)
		res.Record.fail(err)
		return res
	}
	res.ID = req.Card.ID
	res.Record.succeed(c.Store.Path)
	log.Infof("card %d (%s) added to database", req.Card.ID, req.Card.Name)

	if req.NoScript {
		log.Debugf("script step skipped for %d", req.Card.ID)
	} else {
		res.Script = c.WriteScript(req.Card, req.Pattern, req.Params, req.Overwrite)
	}

	if req.Image != "" {
		res.Artwork = c.PlaceArtwork(req.Image, req.Card.ID, artwork.Options{
			Resize:    !req.NoResize,
			Overwrite: req.Overwrite,
		})
	}
	return res
}

func (c *Creator) insert(cd *card.Card) error {
	if cd.ID == 0 {
		id, err := c.Store.NextAvailableID(c.IDStart)
		for err == nil && c.reserved[id] {
			id, err = c.Store.NextAvailableID(id + 1)
		}
		if err != nil {
			return fmt.Errorf("could not allocate card ID: %w", err)
		}
		cd.ID = id
		log.Debugf("allocated card ID %d", id)
	}
	return c.Store.Insert(cd)
}

// WriteScript renders and saves the script for cd.
func (c *Creator) WriteScript(cd *card.Card, pattern string, params script.Params, overwrite bool) StepResult {
	r := StepResult{Step: StepScript}
	content, err := c.Engine.Generate(cd, pattern, params)
	if err != nil {
		log.Warningf("script for %d not generated: %s", cd.ID, err)
		r.fail(err)
		return r
	}
	path, err := c.Scripts.Save(cd.ID, content, overwrite)
	if err != nil {
		log.Warningf("script for %d not saved: %s", cd.ID, err)
		r.fail(err)
		return r
	}
	r.succeed(path)
	return r
}

// PlaceArtwork downloads or copies src as the image for id.
func (c *Creator) PlaceArtwork(src string, id int64, opts artwork.Options) StepResult {
	r := StepResult{Step: StepArtwork}
	path, err := c.Artwork.Place(src, id, opts)
	if err != nil {
		log.Warningf("artwork for %d not placed: %s", id, err)
		r.fail(err)
		return r
	}
	r.succeed(path)
	return r
}

// Regenerate writes the script for a card already in the store.
func (c *Creator) Regenerate(id int64, pattern string, params script.Params, overwrite bool) (StepResult, error) {
	cd, err := c.Store.Get(id)
	if err != nil {
		return StepResult{Step: StepScript}, err
	}
	return c.WriteScript(cd, pattern, params, overwrite), nil
}

// Remove deletes the card record and, with withFiles, its script and image.
// File removal only runs once the record is gone; files that are not there
// are skipped and other failures are not fatal.
func (c *Creator) Remove(id int64, withFiles bool) Result {
	res := Result{
		ID:      id,
		Record:  StepResult{Step: StepRecord},
		Script:  StepResult{Step: StepScript},
		Artwork: StepResult{Step: StepArtwork},
	}
	if err := c.Store.Delete(id); err != nil {
		res.Record.fail(err)
		return res
	}
	res.Record.succeed(c.Store.Path)
	if !withFiles {
		return res
	}

	if c.Scripts.Exists(id) {
		path := c.Scripts.Path(id)
		if err := c.Scripts.Delete(id); err != nil {
			res.Script.fail(err)
		} else {
			res.Script.succeed(path)
		}
	}

	if path, ok := c.Artwork.FindExisting(id); ok {
		if err := c.Artwork.Delete(id); err != nil {
			res.Artwork.fail(err)
		} else {
			res.Artwork.succeed(path)
		}
	}
	return res
}

