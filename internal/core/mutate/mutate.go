// Package mutate applies planned replacements and style overrides to a
// deck at run granularity, preserving formatting the edits do not target
package mutate

import (
	"strings"

	"slidesift/internal/core/extract"
	"slidesift/internal/core/plan"
	"slidesift/internal/core/pptx"
	perr "slidesift/internal/platform/errors"
)

// ColorScheme carries hex colors; BackgroundColor is accepted but only
// the text color is applied at run level
type ColorScheme struct {
	TextColor       string
	BackgroundColor string
}

// StyleConfig is sparse: zero-valued fields leave existing formatting
// untouched, they are never resets to a default
type StyleConfig struct {
	FontName string
	FontSize int // points
	Colors   *ColorScheme
}

// Applied records one replacement that landed
type Applied struct {
	UnitID string `json:"unit_id"`
	Slide  int    `json:"slide"`
}

// Skip records one replacement that could not land and why
type Skip struct {
	UnitID string `json:"unit_id"`
	Slide  int    `json:"slide"`
	Reason string `json:"reason"`
}

// Report is the outcome of a replacement batch. A skip never aborts the
// batch, every remaining replacement is still attempted
type Report struct {
	Applied []Applied `json:"applied"`
	Skipped []Skip    `json:"skipped"`
}

// ReplaceContent applies each replacement to its slide. Old text that
// is no longer present (drift) or a slide that cannot be read records a
// skip and processing continues
func ReplaceContent(d *pptx.Deck, reps []plan.Replacement) Report {
	var rep Report
	for _, r := range reps {
		s := d.Slide(r.Locator.Slide)
		switch {
		case s == nil:
			rep.Skipped = append(rep.Skipped, Skip{UnitID: r.UnitID, Slide: r.Locator.Slide, Reason: "slide not found"})
		case s.Corrupt():
			rep.Skipped = append(rep.Skipped, Skip{UnitID: r.UnitID, Slide: r.Locator.Slide, Reason: "slide unparseable"})
		default:
			ok, err := applyToSlide(s, r.OldText, r.NewText)
			switch {
			case err != nil:
				rep.Skipped = append(rep.Skipped, Skip{UnitID: r.UnitID, Slide: r.Locator.Slide, Reason: err.Error()})
			case !ok:
				rep.Skipped = append(rep.Skipped, Skip{UnitID: r.UnitID, Slide: r.Locator.Slide, Reason: "source text drifted"})
			default:
				rep.Applied = append(rep.Applied, Applied{UnitID: r.UnitID, Slide: r.Locator.Slide})
			}
		}
	}
	return rep
}

// applyToSlide substitutes old for new at the narrowest granularity
// where old is still present: a single run, a paragraph's merged runs,
// a shape's merged paragraphs, then the whole slide's merged text. The
// merged fallbacks write the full substituted text into the first
// spanned run (its formatting is canonical) and clear the remaining
// spanned runs without deleting them, so run indices stay valid for
// later replacements in the same batch
func applyToSlide(s *pptx.Slide, old, repl string) (bool, error) {
	if old == "" {
		return false, nil
	}

	// run level, the common case for short spans
	matched := false
	for _, p := range runPaths(s) {
		r := resolveRun(s, p)
		if r == nil || !strings.Contains(r.Text(), old) {
			continue
		}
		if err := setRunText(s, p, strings.ReplaceAll(r.Text(), old, repl)); err != nil {
			return false, err
		}
		matched = true
	}
	if matched {
		return true, nil
	}

	// paragraph level
	for _, group := range paragraphGroups(s) {
		merged := concatRunTexts(s, group)
		if !strings.Contains(merged, old) {
			continue
		}
		if err := writeMerged(s, group, strings.ReplaceAll(merged, old, repl)); err != nil {
			return false, err
		}
		matched = true
	}
	if matched {
		return true, nil
	}

	// shape level, paragraph texts joined the way extraction joins them
	for _, groups := range shapeGroups(s) {
		merged := joinGroups(s, groups)
		if !strings.Contains(merged, old) {
			continue
		}
		if err := writeMerged(s, flatten(groups), strings.ReplaceAll(merged, old, repl)); err != nil {
			return false, err
		}
		matched = true
	}
	if matched {
		return true, nil
	}

	// whole slide, matches a unit-sized old text spanning shapes
	var all [][]runPath
	for _, groups := range shapeGroups(s) {
		all = append(all, groups...)
	}
	merged := joinGroups(s, all)
	if !strings.Contains(merged, old) {
		return false, nil
	}
	if err := writeMerged(s, flatten(all), strings.ReplaceAll(merged, old, repl)); err != nil {
		return false, err
	}
	return true, nil
}

func flatten(groups [][]runPath) []runPath {
	var out []runPath
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// ModifyStyles applies the non-absent style fields to every run of the
// given slides (all slides when none are named) without touching run
// text. Corrupt slides are passed over
func ModifyStyles(d *pptx.Deck, cfg StyleConfig, slides ...int) error {
	subset := map[int]bool{}
	for _, n := range slides {
		subset[n] = true
	}

	for _, s := range d.Slides() {
		if s.Corrupt() {
			continue
		}
		if len(subset) > 0 && !subset[s.Number()] {
			continue
		}
		for _, p := range runPaths(s) {
			if cfg.FontName != "" {
				r := resolveRun(s, p)
				if r == nil {
					continue
				}
				if err := r.SetFontName(cfg.FontName); err != nil {
					return err
				}
			}
			if cfg.FontSize > 0 {
				r := resolveRun(s, p)
				if r == nil {
					continue
				}
				if err := r.SetSize(cfg.FontSize * 100); err != nil {
					return err
				}
			}
			if cfg.Colors != nil && cfg.Colors.TextColor != "" {
				r := resolveRun(s, p)
				if r == nil {
					continue
				}
				if err := r.SetColor(cfg.Colors.TextColor); err != nil {
					return perr.WrapIf(err, perr.ErrorCodeInvalidArgument, "text color")
				}
			}
		}
	}
	return nil
}

// runPath addresses one run through the slide's shape tree by index, so
// it survives the reparse every write triggers
type runPath struct {
	shape int
	cell  *extract.CellPath
	para  int
	run   int
}

func resolveRun(s *pptx.Slide, p runPath) *pptx.Run {
	shapes := s.Shapes()
	if p.shape >= len(shapes) {
		return nil
	}
	sh := shapes[p.shape]
	paras := sh.Paragraphs
	if p.cell != nil {
		if sh.Table == nil {
			return nil
		}
		c := sh.Table.Cell(p.cell.Row, p.cell.Col)
		if c == nil {
			return nil
		}
		paras = c.Paragraphs
	}
	if p.para >= len(paras) || p.run >= len(paras[p.para].Runs) {
		return nil
	}
	return paras[p.para].Runs[p.run]
}

// setRunText writes text into the addressed run with its formatting
// captured before the write and restored after it. The restore is
// unconditional on every captured attribute: the text primitive makes
// no promise about run properties surviving the write
func setRunText(s *pptx.Slide, p runPath, text string) error {
	r := resolveRun(s, p)
	if r == nil {
		return perr.Internalf("run %+v vanished during mutation", p)
	}
	name, hasName := r.FontName()
	size, hasSize := r.Size()
	bold, hasBold := r.Bold()
	italic, hasItalic := r.Italic()
	color, hasColor := r.Color()

	if err := r.SetText(text); err != nil {
		return err
	}
	if hasName {
		if err := resolveRun(s, p).SetFontName(name); err != nil {
			return err
		}
	}
	if hasSize {
		if err := resolveRun(s, p).SetSize(size); err != nil {
			return err
		}
	}
	if hasBold {
		if err := resolveRun(s, p).SetBold(bold); err != nil {
			return err
		}
	}
	if hasItalic {
		if err := resolveRun(s, p).SetItalic(italic); err != nil {
			return err
		}
	}
	if hasColor {
		if err := resolveRun(s, p).SetColor(color); err != nil {
			return err
		}
	}
	return nil
}

// writeMerged puts text into the first run of the group and clears the
// rest, formatting captured and restored around every write
func writeMerged(s *pptx.Slide, group []runPath, text string) error {
	if len(group) == 0 {
		return nil
	}
	if err := setRunText(s, group[0], text); err != nil {
		return err
	}
	for _, p := range group[1:] {
		if err := setRunText(s, p, ""); err != nil {
			return err
		}
	}
	return nil
}

// runPaths lists every run on the slide in document order
func runPaths(s *pptx.Slide) []runPath {
	var out []runPath
	for _, groups := range shapeGroups(s) {
		for _, g := range groups {
			out = append(out, g...)
		}
	}
	return out
}

// shapeGroups returns, per shape, one run-path group per paragraph
// (table shapes contribute their cells' paragraphs in row-major order),
// mirroring the order extraction flattens text in
func shapeGroups(s *pptx.Slide) [][][]runPath {
	var out [][][]runPath
	for si, sh := range s.Shapes() {
		var groups [][]runPath
		if sh.Table != nil {
			for ri, row := range sh.Table.Rows {
				for ci, c := range row {
					for pi, para := range c.Paragraphs {
						var g []runPath
						for runIdx := range para.Runs {
							g = append(g, runPath{shape: si, cell: &extract.CellPath{Row: ri, Col: ci}, para: pi, run: runIdx})
						}
						groups = append(groups, g)
					}
				}
			}
		} else {
			for pi, para := range sh.Paragraphs {
				var g []runPath
				for runIdx := range para.Runs {
					g = append(g, runPath{shape: si, para: pi, run: runIdx})
				}
				groups = append(groups, g)
			}
		}
		out = append(out, groups)
	}
	return out
}

// paragraphGroups flattens shapeGroups one level
func paragraphGroups(s *pptx.Slide) [][]runPath {
	var out [][]runPath
	for _, groups := range shapeGroups(s) {
		out = append(out, groups...)
	}
	return out
}

// concatRunTexts joins a group's run texts with no separator
func concatRunTexts(s *pptx.Slide, group []runPath) string {
	var b strings.Builder
	for _, p := range group {
		if r := resolveRun(s, p); r != nil {
			b.WriteString(r.Text())
		}
	}
	return b.String()
}

// joinGroups joins non-empty paragraph texts with a single space, the
// same join extraction uses when building unit text
func joinGroups(s *pptx.Slide, groups [][]runPath) string {
	var texts []string
	for _, g := range groups {
		if t := concatRunTexts(s, g); strings.TrimSpace(t) != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, " ")
}
