// Package extract flattens a deck into per-slide text units suitable
// for classification, retaining run provenance for later targeted edits
package extract

import (
	"fmt"
	"strings"

	"slidesift/internal/core/pptx"
)

// CellPath addresses one table cell inside a shape
type CellPath struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Locator addresses the slide a unit came from
type Locator struct {
	Slide int `json:"slide"` // 1-based slide number
}

// RunRef points back at one run that contributed text to a unit.
// Indices address the slide's shape tree; Cell is set for table runs
type RunRef struct {
	Shape int
	Cell  *CellPath
	Para  int
	Run   int
	Text  string // run text at extraction time
}

// TextUnit is the flattened text of one slide. Immutable once built;
// the concatenation of provenance texts under the unit's whitespace
// joins reproduces Text
type TextUnit struct {
	UnitID     string
	Locator    Locator
	Text       string
	Provenance []RunRef
	Skipped    bool // slide part could not be parsed
}

// Extract produces one unit per slide in slide order. Extraction is
// deterministic: the same deck bytes always yield the same sequence
func Extract(d *pptx.Deck) []TextUnit {
	units := make([]TextUnit, 0, len(d.Slides()))
	for _, s := range d.Slides() {
		units = append(units, extractSlide(s))
	}
	return units
}

func extractSlide(s *pptx.Slide) TextUnit {
	u := TextUnit{
		UnitID:  fmt.Sprintf("slide-%d", s.Number()),
		Locator: Locator{Slide: s.Number()},
	}
	if s.Corrupt() {
		u.Skipped = true
		return u
	}

	var blocks []string
	for si, sh := range s.Shapes() {
		if sh.Table != nil {
			for ri, row := range sh.Table.Rows {
				for ci, cell := range row {
					path := &CellPath{Row: ri, Col: ci}
					if txt := collect(&u, si, path, cell.Paragraphs); txt != "" {
						blocks = append(blocks, txt)
					}
				}
			}
			continue
		}
		if txt := collect(&u, si, nil, sh.Paragraphs); txt != "" {
			blocks = append(blocks, txt)
		}
	}
	u.Text = strings.Join(blocks, " ")
	return u
}

// collect appends provenance for every run of the non-empty paragraphs
// and returns their texts joined by a single space. Paragraphs that are
// empty after trimming contribute nothing, runs of kept paragraphs are
// all recorded even when individually empty
func collect(u *TextUnit, shape int, cell *CellPath, paras []*pptx.Paragraph) string {
	var texts []string
	for pi, p := range paras {
		if strings.TrimSpace(p.Text()) == "" {
			continue
		}
		for ri, r := range p.Runs {
			u.Provenance = append(u.Provenance, RunRef{
				Shape: shape,
				Cell:  cell,
				Para:  pi,
				Run:   ri,
				Text:  r.Text(),
			})
		}
		texts = append(texts, p.Text())
	}
	return strings.Join(texts, " ")
}
