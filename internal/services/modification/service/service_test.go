package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"slidesift/internal/core/detect"
	"slidesift/internal/core/plan"
	"slidesift/internal/core/pptx"
	"slidesift/internal/core/pptx/pptxtest"
	perr "slidesift/internal/platform/errors"
	"slidesift/internal/services/modification/domain"
)

// detector scores any text containing "synthetic" as AI
type detector struct{ err error }

func (d *detector) DetectText(_ context.Context, text string) (detect.Result, error) {
	if d.err != nil {
		return detect.Result{}, d.err
	}
	res := detect.Result{Label: detect.LabelHuman, Confidence: 0.1, Model: "stub", Chunks: 1}
	if strings.Contains(text, "synthetic") {
		res.Label = detect.LabelAI
		res.Confidence = 0.95
	}
	return res, nil
}

// upper rewrites flagged text wholesale
type upper struct{}

func (upper) Generate(_ context.Context, text string) (string, error) {
	return strings.ToUpper(text), nil
}

func TestModifyDeckReplacesFlaggedSlides(t *testing.T) {
	raw := pptxtest.Deck(
		pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", "synthetic words here")))),
		pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", "a human sentence")))),
	)

	svc := New(&detector{}, upper{})
	out, err := svc.ModifyDeck(context.Background(), "deck.pptx", raw, domain.ModifyRequest{
		ReplaceAIContent: true,
		Threshold:        plan.DefaultThreshold,
	})
	if err != nil {
		t.Fatalf("ModifyDeck: %v", err)
	}
	if out.Name != "modified_deck.pptx" {
		t.Fatalf("name = %q", out.Name)
	}
	if len(out.Report.Applied) != 1 || len(out.Report.Skipped) != 0 {
		t.Fatalf("report = %+v", out.Report)
	}

	d, err := pptx.Open(out.Data)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s1 := d.Slide(1)
	if got := s1.Shapes()[0].Paragraphs[0].Text(); got != "SYNTHETIC WORDS HERE" {
		t.Fatalf("slide 1 text = %q", got)
	}
	s2 := d.Slide(2)
	if got := s2.Shapes()[0].Paragraphs[0].Text(); got != "a human sentence" {
		t.Fatalf("slide 2 text = %q", got)
	}
}

func TestModifyDeckStylePassOnly(t *testing.T) {
	raw := pptxtest.Deck(
		pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", "synthetic words here")))),
	)

	svc := New(&detector{}, upper{})
	out, err := svc.ModifyDeck(context.Background(), "deck.pptx", raw, domain.ModifyRequest{
		ReplaceAIContent: false,
		FontName:         "Arial",
		TextColor:        "FF0000",
	})
	if err != nil {
		t.Fatalf("ModifyDeck: %v", err)
	}
	if len(out.Report.Applied) != 0 {
		t.Fatal("replacement pass must not run when disabled")
	}

	d, _ := pptx.Open(out.Data)
	s := d.Slide(1)
	run := s.Shapes()[0].Paragraphs[0].Runs[0]
	if name, ok := run.FontName(); !ok || name != "Arial" {
		t.Fatalf("font = %q ok=%v", name, ok)
	}
	if clr, ok := run.Color(); !ok || clr != "FF0000" {
		t.Fatalf("color = %q ok=%v", clr, ok)
	}
	// text untouched
	if got := s.Shapes()[0].Paragraphs[0].Text(); got != "synthetic words here" {
		t.Fatalf("text = %q", got)
	}
}

func TestModifyDeckRecordsUnavailableClassification(t *testing.T) {
	raw := pptxtest.Deck(
		pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", "synthetic words here")))),
	)

	svc := New(&detector{err: detect.ErrClassificationUnavailable}, upper{})
	out, err := svc.ModifyDeck(context.Background(), "deck.pptx", raw, domain.ModifyRequest{
		ReplaceAIContent: true,
		Threshold:        plan.DefaultThreshold,
	})
	if err != nil {
		t.Fatalf("ModifyDeck: %v", err)
	}
	if len(out.Report.Applied) != 0 || len(out.Report.Skipped) != 1 {
		t.Fatalf("report = %+v", out.Report)
	}
	if out.Report.Skipped[0].Reason != "classification unavailable" {
		t.Fatalf("reason = %q", out.Report.Skipped[0].Reason)
	}
	// deck bytes still produced, content untouched
	if !bytes.Contains(out.Data, []byte("PK")) {
		t.Fatal("output is not a zip container")
	}
}

func TestModifyDeckRejectsBadContainer(t *testing.T) {
	svc := New(&detector{}, upper{})
	_, err := svc.ModifyDeck(context.Background(), "x.pptx", []byte("nope"), domain.ModifyRequest{})
	if !perr.IsCode(err, perr.ErrorCodeUnsupportedContainer) {
		t.Fatalf("want unsupported container, got %v", err)
	}
}
