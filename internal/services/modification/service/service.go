// Package service contains the modification pipeline workflows
package service

import (
	"context"
	"errors"
	"path/filepath"

	"slidesift/internal/core/detect"
	"slidesift/internal/core/extract"
	"slidesift/internal/core/mutate"
	"slidesift/internal/core/plan"
	"slidesift/internal/core/pptx"
	"slidesift/internal/platform/logger"
	"slidesift/internal/services/modification/domain"
)

// Service defines the service contract for modification
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	det     domain.DetectorPort
	planner *plan.Planner
	log     logger.Logger
}

// New creates a modification service. The detector port comes from the
// detection module; the generator is the shared content generator
func New(det domain.DetectorPort, gen plan.Generator) *Svc {
	if det == nil {
		panic("modification.Service requires a non nil DetectorPort")
	}
	if gen == nil {
		panic("modification.Service requires a non nil Generator")
	}
	return &Svc{
		det:     det,
		planner: plan.New(gen),
		log:     *logger.Named("modification"),
	}
}

// ModifyDeck runs the replace-then-style pass over one uploaded deck
// and serializes the result. Detection and replacement failures are
// isolated per slide and reported; only an unopenable container or an
// invalid request is fatal
func (s *Svc) ModifyDeck(
	ctx context.Context,
	filename string,
	raw []byte,
	req domain.ModifyRequest,
) (domain.ModifiedDeck, error) {
	d, err := pptx.Open(raw)
	if err != nil {
		return domain.ModifiedDeck{}, err
	}

	var report mutate.Report
	if req.ReplaceAIContent {
		report, err = s.replaceAIContent(ctx, d, req.Threshold)
		if err != nil {
			return domain.ModifiedDeck{}, err
		}
	}

	if req.FontName != "" || req.TextColor != "" {
		cfg := mutate.StyleConfig{FontName: req.FontName}
		if req.TextColor != "" {
			cfg.Colors = &mutate.ColorScheme{TextColor: req.TextColor}
		}
		if err := mutate.ModifyStyles(d, cfg); err != nil {
			return domain.ModifiedDeck{}, err
		}
	}

	out, err := d.Bytes()
	if err != nil {
		return domain.ModifiedDeck{}, err
	}

	s.log.Info().
		Str("file", filename).
		Int("applied", len(report.Applied)).
		Int("skipped", len(report.Skipped)).
		Msg("deck modification complete")

	return domain.ModifiedDeck{
		Name:   "modified_" + filepath.Base(filename),
		Data:   out,
		Report: report,
	}, nil
}

// replaceAIContent detects per unit, plans replacements above the
// threshold and applies them. A unit whose classification is
// unavailable is recorded as skipped and never fabricated into a plan
func (s *Svc) replaceAIContent(ctx context.Context, d *pptx.Deck, threshold float64) (mutate.Report, error) {
	units := extract.Extract(d)
	dets := make([]detect.Result, len(units))

	var report mutate.Report
	for i, u := range units {
		if u.Skipped || u.Text == "" {
			continue // zero-valued detection stays below any threshold
		}
		res, err := s.det.DetectText(ctx, u.Text)
		switch {
		case errors.Is(err, detect.ErrClassificationUnavailable):
			report.Skipped = append(report.Skipped, mutate.Skip{
				UnitID: u.UnitID,
				Slide:  u.Locator.Slide,
				Reason: "classification unavailable",
			})
		case err != nil:
			return mutate.Report{}, err
		default:
			dets[i] = res
		}
	}

	built, err := s.planner.Build(ctx, units, dets, threshold)
	if err != nil {
		return mutate.Report{}, err
	}
	for _, sk := range built.Skipped {
		report.Skipped = append(report.Skipped, mutate.Skip{UnitID: sk.UnitID, Reason: sk.Reason})
	}

	applied := mutate.ReplaceContent(d, built.Replacements)
	report.Applied = append(report.Applied, applied.Applied...)
	report.Skipped = append(report.Skipped, applied.Skipped...)
	return report, nil
}
