// Package audit checks custom cards for the gaps the creator tolerates:
// records without names, scripts or artwork, and repeated names.
package audit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/edopro-tools/cardsmith/internal/artwork"
	"github.com/edopro-tools/cardsmith/internal/card"
	"github.com/edopro-tools/cardsmith/internal/taxonomy"
)

// Lister is the part of the record store an audit reads.
type Lister interface {
	List(minID, maxID int64) ([]card.Summary, error)
}

// Scripts reports whether a card has a script file.
type Scripts interface {
	Exists(id int64) bool
}

// Images reports on stored card artwork.
type Images interface {
	FindExisting(id int64) (string, bool)
	Verify(id int64) (*artwork.Info, error)
}

// Report holds the audit findings. Errors are records the engine cannot
// use; warnings are gaps it tolerates.
type Report struct {
	Cards    int
	Errors   []string
	Warnings []string

	missingArt []card.Summary
}

// OK reports whether the audit found no errors.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// MissingArtwork lists the audited cards that have no image.
func (r *Report) MissingArtwork() []card.Summary {
	return r.missingArt
}

type auditor struct {
	scripts Scripts
	images  Images
	report  Report
}

// Run audits every card with an ID in [minID, maxID].
func Run(records Lister, scripts Scripts, images Images, minID, maxID int64) (*Report, error) {
	cards, err := records.List(minID, maxID)
	if err != nil {
		return nil, fmt.Errorf("error listing cards: %w", err)
	}

	a := &auditor{scripts: scripts, images: images}
	a.report.Cards = len(cards)

	for _, c := range cards {
		a.checkName(c)
		a.checkScript(c)
		a.checkArtwork(c)
	}
	a.checkDuplicateNames(cards)

	return &a.report, nil
}

func (a *auditor) errorf(format string, args ...any) {
	a.report.Errors = append(a.report.Errors, fmt.Sprintf(format, args...))
}

func (a *auditor) warnf(format string, args ...any) {
	a.report.Warnings = append(a.report.Warnings, fmt.Sprintf(format, args...))
}

func (a *auditor) checkName(c card.Summary) {
	if strings.TrimSpace(c.Name) == "" {
		a.errorf("card %d has no name (missing texts row?)", c.ID)
	}
}

func (a *auditor) checkScript(c card.Summary) {
	// Normal monsters run without a script.
	if c.Type.IsMonster() && c.Type.Has(taxonomy.TypeNormal) {
		return
	}
	if !a.scripts.Exists(c.ID) {
		a.warnf("card %d (%s) has no script", c.ID, c.Name)
	}
}

func (a *auditor) checkArtwork(c card.Summary) {
	if _, ok := a.images.FindExisting(c.ID); !ok {
		a.warnf("card %d (%s) has no artwork", c.ID, c.Name)
		a.report.missingArt = append(a.report.missingArt, c)
		return
	}

	info, err := a.images.Verify(c.ID)
	if err != nil {
		a.warnf("card %d (%s) artwork unreadable: %v", c.ID, c.Name, err)
		return
	}
	if !info.Canonical {
		a.warnf("card %d (%s) artwork is %dx%d, expected %dx%d",
			c.ID, c.Name, info.Dims.X, info.Dims.Y, artwork.Width, artwork.Height)
	}
}

func (a *auditor) checkDuplicateNames(cards []card.Summary) {
	byName := make(map[string][]int64)
	for _, c := range cards {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if key == "" {
			continue
		}
		byName[key] = append(byName[key], c.ID)
	}

	var dups []string
	for _, c := range cards {
		ids := byName[strings.ToLower(strings.TrimSpace(c.Name))]
		if len(ids) > 1 && ids[0] == c.ID {
			dups = append(dups, fmt.Sprintf("name %q is used by %s", c.Name, joinIDs(ids)))
		}
	}
	sort.Strings(dups)
	a.report.Warnings = append(a.report.Warnings, dups...)
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
