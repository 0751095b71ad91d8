package service

import (
	"context"
	"strings"
	"testing"

	"slidesift/internal/core/detect"
	perr "slidesift/internal/platform/errors"

	"slidesift/internal/core/pptx/pptxtest"
)

type scripted struct {
	scores map[string]float64
	errs   map[string]error
}

func (s *scripted) ModelName() string { return "scripted" }

func (s *scripted) Classify(_ context.Context, text string) (float64, error) {
	if err, ok := s.errs[text]; ok {
		return 0, err
	}
	if p, ok := s.scores[text]; ok {
		return p, nil
	}
	return 0.1, nil
}

// long pads the text over the unreliable floor without changing its
// leading words, which the scripted classifier keys on
func long(lead string) string {
	return lead + strings.Repeat(" filler", 60)
}

func TestDetectDeckCountsLabels(t *testing.T) {
	aiText := long("generated")
	humanText := long("handwritten")

	raw := pptxtest.Deck(
		pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", aiText)))),
		pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", humanText)))),
	)

	svc := New(&scripted{scores: map[string]float64{
		aiText:    0.92,
		humanText: 0.12,
	}}, detect.Options{})

	rep, err := svc.DetectDeck(context.Background(), "deck.pptx", raw)
	if err != nil {
		t.Fatalf("DetectDeck: %v", err)
	}
	if rep.Slides != 2 || rep.AISlides != 1 || rep.HumanSlides != 1 || rep.Flagged != 0 {
		t.Fatalf("unexpected counters: %+v", rep)
	}
	if rep.Model != "scripted" {
		t.Fatalf("model = %q", rep.Model)
	}
	if rep.Results[0].Detection.Label != detect.LabelAI {
		t.Fatalf("slide 1 label = %v", rep.Results[0].Detection.Label)
	}
}

func TestDetectDeckFlagsUnavailableSlides(t *testing.T) {
	bad := long("broken")
	good := long("fine")

	raw := pptxtest.Deck(
		pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", bad)))),
		pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", good)))),
	)

	svc := New(&scripted{
		scores: map[string]float64{good: 0.8},
		errs:   map[string]error{bad: perr.Classifierf("upstream down")},
	}, detect.Options{})

	rep, err := svc.DetectDeck(context.Background(), "deck.pptx", raw)
	if err != nil {
		t.Fatalf("DetectDeck: %v", err)
	}
	if rep.Flagged != 1 || rep.AISlides != 1 {
		t.Fatalf("unexpected counters: %+v", rep)
	}
	row := rep.Results[0]
	if !row.Skipped || row.SkipReason != "classification unavailable" {
		t.Fatalf("slide 1 row = %+v", row)
	}
	if row.Detection != nil {
		t.Fatal("flagged slide must not carry a detection")
	}
}

func TestDetectDeckRejectsBadContainer(t *testing.T) {
	svc := New(&scripted{}, detect.Options{})
	_, err := svc.DetectDeck(context.Background(), "x.pptx", []byte("not a zip"))
	if !perr.IsCode(err, perr.ErrorCodeUnsupportedContainer) {
		t.Fatalf("want unsupported container, got %v", err)
	}
}
