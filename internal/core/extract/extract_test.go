package extract

import (
	"reflect"
	"testing"

	"slidesift/internal/core/pptx"
	"slidesift/internal/core/pptx/pptxtest"
)

func mustOpen(t *testing.T, b []byte) *pptx.Deck {
	t.Helper()
	d, err := pptx.Open(b)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return d
}

func TestExtractFlattensSlides(t *testing.T) {
	t.Parallel()

	deck := pptxtest.Deck(
		pptxtest.Slide(
			pptxtest.TextShape(
				pptxtest.Para(pptxtest.Run("", "Hello "), pptxtest.Run("", "world")),
				pptxtest.Para(pptxtest.Run("", "second line")),
				pptxtest.Para(pptxtest.Run("", "   ")), // whitespace only, dropped
			),
			pptxtest.TableShape([]string{"r1c1", "r1c2"}, []string{"r2c1"}),
		),
		pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", "   ")))),
	)

	units := Extract(mustOpen(t, deck))
	if len(units) != 2 {
		t.Fatalf("units = %d, want 2", len(units))
	}

	u := units[0]
	if u.UnitID != "slide-1" || u.Locator.Slide != 1 {
		t.Fatalf("unit id/locator = %q/%d", u.UnitID, u.Locator.Slide)
	}
	want := "Hello world second line r1c1 r1c2 r2c1"
	if u.Text != want {
		t.Fatalf("text = %q, want %q", u.Text, want)
	}
	// two runs in para 0, one in para 1, one per table cell
	if len(u.Provenance) != 6 {
		t.Fatalf("provenance = %d, want 6", len(u.Provenance))
	}
	if u.Provenance[0].Text != "Hello " || u.Provenance[1].Text != "world" {
		t.Fatalf("provenance texts = %+v", u.Provenance[:2])
	}
	if u.Provenance[3].Cell == nil || u.Provenance[3].Cell.Row != 0 || u.Provenance[3].Cell.Col != 0 {
		t.Fatalf("table provenance = %+v", u.Provenance[3])
	}

	// whitespace-only slide: empty text, zero provenance
	empty := units[1]
	if empty.Text != "" || len(empty.Provenance) != 0 {
		t.Fatalf("empty slide unit = %+v", empty)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	t.Parallel()

	deck := pptxtest.Deck(
		pptxtest.Slide(
			pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", "alpha"))),
			pptxtest.TableShape([]string{"beta", "gamma"}),
		),
		pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", "delta")))),
	)

	first := Extract(mustOpen(t, deck))
	second := Extract(mustOpen(t, deck))
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction differs across identical decks:\n%+v\n%+v", first, second)
	}
}

func TestExtractMarksCorruptSlides(t *testing.T) {
	t.Parallel()

	deck := pptxtest.Deck(
		"<p:sld><oops",
		pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", "still here")))),
	)
	units := Extract(mustOpen(t, deck))
	if len(units) != 2 {
		t.Fatalf("units = %d, want 2", len(units))
	}
	if !units[0].Skipped || units[0].Text != "" {
		t.Fatalf("corrupt slide unit = %+v", units[0])
	}
	if units[1].Skipped || units[1].Text != "still here" {
		t.Fatalf("healthy slide unit = %+v", units[1])
	}
}
