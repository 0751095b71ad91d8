// Package service contains the detection pipeline workflows
package service

import (
	"context"
	"errors"

	"slidesift/internal/core/detect"
	"slidesift/internal/core/extract"
	"slidesift/internal/core/pptx"
	"slidesift/internal/platform/logger"
	"slidesift/internal/services/detection/domain"
)

// Service defines the service contract for detection
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	agg *detect.Aggregator
	log logger.Logger
}

// New creates a detection service over the shared classifier handle
func New(cls detect.Classifier, opts detect.Options) *Svc {
	if cls == nil {
		panic("detection.Service requires a non nil Classifier")
	}
	return &Svc{
		agg: detect.New(cls, opts),
		log: *logger.Named("detection"),
	}
}

// DetectText classifies one text as-is
func (s *Svc) DetectText(ctx context.Context, text string) (detect.Result, error) {
	return s.agg.Detect(ctx, text)
}

// DetectDeck opens the deck, extracts one unit per slide and classifies
// each. Per-slide failures become flags on that slide's row; only a
// container that cannot be opened fails the whole report
func (s *Svc) DetectDeck(ctx context.Context, filename string, raw []byte) (domain.DeckReport, error) {
	d, err := pptx.Open(raw)
	if err != nil {
		return domain.DeckReport{}, err
	}

	units := extract.Extract(d)
	rep := domain.DeckReport{
		File:    filename,
		Slides:  len(units),
		Results: make([]domain.SlideDetection, 0, len(units)),
	}

	for _, u := range units {
		row := domain.SlideDetection{
			Slide:  u.Locator.Slide,
			UnitID: u.UnitID,
			Text:   u.Text,
		}
		switch {
		case u.Skipped:
			row.Skipped = true
			row.SkipReason = "slide unparseable"
			rep.Flagged++
		default:
			res, err := s.agg.Detect(ctx, u.Text)
			switch {
			case errors.Is(err, detect.ErrClassificationUnavailable):
				s.log.Warn().Str("unit", u.UnitID).Msg("classification unavailable for unit")
				row.Skipped = true
				row.SkipReason = "classification unavailable"
				rep.Flagged++
			case err != nil:
				return domain.DeckReport{}, err
			default:
				row.Detection = &res
				rep.Model = res.Model
				if res.Label == detect.LabelAI {
					rep.AISlides++
				} else {
					rep.HumanSlides++
				}
			}
		}
		rep.Results = append(rep.Results, row)
	}

	s.log.Info().
		Str("file", filename).
		Int("slides", rep.Slides).
		Int("ai", rep.AISlides).
		Int("human", rep.HumanSlides).
		Int("flagged", rep.Flagged).
		Msg("deck detection complete")
	return rep, nil
}
