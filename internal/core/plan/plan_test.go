package plan

import (
	"context"
	"errors"
	"testing"

	"slidesift/internal/core/detect"
	"slidesift/internal/core/extract"
)

func unit(id, text string, slide int) extract.TextUnit {
	return extract.TextUnit{UnitID: id, Locator: extract.Locator{Slide: slide}, Text: text}
}

func upper(_ context.Context, text string) (string, error) {
	return "REWRITTEN: " + text, nil
}

func TestBuildThresholdIsStrict(t *testing.T) {
	t.Parallel()

	units := []extract.TextUnit{
		unit("slide-1", "at the boundary", 1),
		unit("slide-2", "above the boundary", 2),
	}
	dets := []detect.Result{
		{Label: detect.LabelAI, Confidence: 0.70},
		{Label: detect.LabelAI, Confidence: 0.71},
	}

	p, err := New(GeneratorFunc(upper)).Build(context.Background(), units, dets, 0.7)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(p.Replacements) != 1 {
		t.Fatalf("replacements = %+v, want exactly the 0.71 unit", p.Replacements)
	}
	r := p.Replacements[0]
	if r.UnitID != "slide-2" || r.Locator.Slide != 2 {
		t.Fatalf("planned unit = %+v", r)
	}
	if r.OldText != "above the boundary" || r.NewText != "REWRITTEN: above the boundary" {
		t.Fatalf("texts = %+v", r)
	}
}

func TestBuildIgnoresHumanAndEmptyUnits(t *testing.T) {
	t.Parallel()

	units := []extract.TextUnit{
		unit("slide-1", "written by someone", 1),
		unit("slide-2", "", 2), // empty units never qualify, whatever the detection says
	}
	dets := []detect.Result{
		{Label: detect.LabelHuman, Confidence: 0.95},
		{Label: detect.LabelAI, Confidence: 0.99},
	}

	p, err := New(GeneratorFunc(upper)).Build(context.Background(), units, dets, 0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(p.Replacements) != 0 || len(p.Skipped) != 0 {
		t.Fatalf("plan = %+v, want empty", p)
	}
}

func TestBuildDropsNoOpGeneratorOutput(t *testing.T) {
	t.Parallel()

	passthrough := GeneratorFunc(func(_ context.Context, s string) (string, error) { return s, nil })
	blank := GeneratorFunc(func(_ context.Context, _ string) (string, error) { return "", nil })

	units := []extract.TextUnit{unit("slide-1", "same text", 1)}
	dets := []detect.Result{{Label: detect.LabelAI, Confidence: 0.9}}

	for name, gen := range map[string]Generator{"identical": passthrough, "empty": blank} {
		p, err := New(gen).Build(context.Background(), units, dets, 0.5)
		if err != nil {
			t.Fatalf("%s: build: %v", name, err)
		}
		if len(p.Replacements) != 0 {
			t.Fatalf("%s: no-op output must not be planned: %+v", name, p.Replacements)
		}
	}
}

func TestBuildRecordsGeneratorFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("generator down")
	gen := GeneratorFunc(func(_ context.Context, s string) (string, error) {
		if s == "bad" {
			return "", boom
		}
		return "new " + s, nil
	})

	units := []extract.TextUnit{
		unit("slide-1", "bad", 1),
		unit("slide-2", "good", 2),
	}
	dets := []detect.Result{
		{Label: detect.LabelAI, Confidence: 0.9},
		{Label: detect.LabelAI, Confidence: 0.9},
	}

	p, err := New(gen).Build(context.Background(), units, dets, 0.5)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(p.Skipped) != 1 || p.Skipped[0].UnitID != "slide-1" {
		t.Fatalf("skips = %+v", p.Skipped)
	}
	if len(p.Replacements) != 1 || p.Replacements[0].UnitID != "slide-2" {
		t.Fatalf("one failure must not abort the rest: %+v", p.Replacements)
	}
}

func TestBuildValidatesInput(t *testing.T) {
	t.Parallel()

	gen := GeneratorFunc(upper)
	if _, err := New(gen).Build(context.Background(), nil, nil, 1.5); err == nil {
		t.Fatalf("expected error for threshold outside [0,1]")
	}
	if _, err := New(gen).Build(context.Background(), []extract.TextUnit{{}}, nil, 0.5); err == nil {
		t.Fatalf("expected error for mismatched inputs")
	}
}
