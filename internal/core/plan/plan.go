// Package plan decides which text units get replaced and with what
package plan

import (
	"context"

	"slidesift/internal/core/detect"
	"slidesift/internal/core/extract"
	perr "slidesift/internal/platform/errors"
)

// DefaultThreshold is the confidence a unit must strictly exceed
// before replacement is planned
const DefaultThreshold = 0.7

// Generator produces substitute text for a unit. A rule-based or
// model-based paraphraser; passthrough implementations are fine for
// tests
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}

// GeneratorFunc adapts a plain function into a Generator
type GeneratorFunc func(ctx context.Context, text string) (string, error)

// Generate implements Generator
func (f GeneratorFunc) Generate(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Replacement is one planned edit, addressed by locator rather than
// position so later edits stay valid regardless of apply order
type Replacement struct {
	UnitID  string
	Locator extract.Locator
	OldText string
	NewText string
}

// Skip records a unit that qualified for replacement but was dropped
type Skip struct {
	UnitID string
	Reason string
}

// Plan is the planner's output: replacements in unit (slide) order plus
// the units dropped along the way
type Plan struct {
	Replacements []Replacement
	Skipped      []Skip
}

// Planner turns detection results into a replacement plan
type Planner struct {
	gen Generator
}

// New returns a Planner over the given generator
func New(gen Generator) *Planner { return &Planner{gen: gen} }

// Build plans a replacement for every unit whose detection is AI with
// confidence strictly above threshold. Generator output that is empty
// or identical to the input drops the unit: a replacement that changes
// nothing is never emitted. Generator failures drop the unit with a
// recorded skip and never abort the rest of the plan
func (p *Planner) Build(
	ctx context.Context,
	units []extract.TextUnit,
	detections []detect.Result,
	threshold float64,
) (Plan, error) {
	if threshold < 0 || threshold > 1 {
		return Plan{}, perr.InvalidArgf("threshold %v outside [0,1]", threshold)
	}
	if len(units) != len(detections) {
		return Plan{}, perr.InvalidArgf("units (%d) and detections (%d) out of step", len(units), len(detections))
	}

	var out Plan
	for i, u := range units {
		det := detections[i]
		if det.Label != detect.LabelAI || det.Confidence <= threshold {
			continue
		}
		if u.Text == "" {
			continue
		}

		newText, err := p.gen.Generate(ctx, u.Text)
		if err != nil {
			out.Skipped = append(out.Skipped, Skip{UnitID: u.UnitID, Reason: "generator: " + err.Error()})
			continue
		}
		if newText == "" || newText == u.Text {
			continue
		}
		out.Replacements = append(out.Replacements, Replacement{
			UnitID:  u.UnitID,
			Locator: u.Locator,
			OldText: u.Text,
			NewText: newText,
		})
	}
	return out, nil
}
