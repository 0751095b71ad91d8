package pptx

import (
	"archive/zip"
	"bytes"
	"testing"

	"slidesift/internal/core/pptx/pptxtest"
	perr "slidesift/internal/platform/errors"
)

func TestOpenRejectsNonContainers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		b    []byte
	}{
		{"garbage", []byte("definitely not a zip")},
		{"empty", nil},
		{"zip without presentation", zipOf(t, map[string]string{
			"[Content_Types].xml": "<Types/>",
		})},
		{"zip without content types", zipOf(t, map[string]string{
			"ppt/presentation.xml": "<p:presentation/>",
		})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Open(tc.b)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !perr.IsCode(err, perr.ErrorCodeUnsupportedContainer) {
				t.Fatalf("code = %v, want unsupported container", perr.CodeOf(err))
			}
		})
	}
}

func TestOpenParsesShapesAndRuns(t *testing.T) {
	t.Parallel()

	deck := pptxtest.Deck(
		pptxtest.Slide(
			pptxtest.TextShape(
				pptxtest.Para(
					pptxtest.Run(`<a:rPr sz="1800" b="1"><a:solidFill><a:srgbClr val="ff0000"/></a:solidFill><a:latin typeface="Arial"/></a:rPr>`, "Hello "),
					pptxtest.Run("", "world"),
				),
			),
			pptxtest.TableShape([]string{"a1", "b1"}, []string{"a2", "b2"}),
		),
	)

	d, err := Open(deck)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	slides := d.Slides()
	if len(slides) != 1 {
		t.Fatalf("slides = %d, want 1", len(slides))
	}
	s := slides[0]
	if s.Number() != 1 || s.Corrupt() {
		t.Fatalf("slide number=%d corrupt=%v", s.Number(), s.Corrupt())
	}
	if len(s.Shapes()) != 2 {
		t.Fatalf("shapes = %d, want 2", len(s.Shapes()))
	}

	text := s.Shapes()[0]
	if text.Kind != ShapeText || len(text.Paragraphs) != 1 {
		t.Fatalf("unexpected text shape: %+v", text)
	}
	runs := text.Paragraphs[0].Runs
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if got := runs[0].Text() + runs[1].Text(); got != "Hello world" {
		t.Fatalf("text = %q", got)
	}
	if name, ok := runs[0].FontName(); !ok || name != "Arial" {
		t.Fatalf("font = %q ok=%v", name, ok)
	}
	if sz, ok := runs[0].Size(); !ok || sz != 1800 {
		t.Fatalf("size = %d ok=%v", sz, ok)
	}
	if b, ok := runs[0].Bold(); !ok || !b {
		t.Fatalf("bold = %v ok=%v", b, ok)
	}
	if c, ok := runs[0].Color(); !ok || c != "FF0000" {
		t.Fatalf("color = %q ok=%v", c, ok)
	}
	if _, ok := runs[1].FontName(); ok {
		t.Fatalf("bare run should have no explicit font")
	}

	tbl := s.Shapes()[1]
	if tbl.Kind != ShapeTable || tbl.Table == nil {
		t.Fatalf("unexpected table shape: %+v", tbl)
	}
	if got := tbl.Table.Cell(1, 0).Paragraphs[0].Text(); got != "a2" {
		t.Fatalf("cell(1,0) = %q", got)
	}
}

func TestSlideOrderIsNumeric(t *testing.T) {
	t.Parallel()

	parts := map[string]string{
		"[Content_Types].xml":       "<Types/>",
		"ppt/presentation.xml":      "<p:presentation/>",
		"ppt/slides/slide10.xml":    pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", "ten")))),
		"ppt/slides/slide2.xml":     pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", "two")))),
		"ppt/slides/slide1.xml":     pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", "one")))),
		"ppt/slides/slideNaN.xml":   "<p:sld/>",
		"ppt/notesSlides/note1.xml": "<p:notes/>",
	}
	d, err := Open(zipOf(t, parts))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var got []int
	for _, s := range d.Slides() {
		got = append(got, s.Number())
	}
	want := []int{1, 2, 10}
	if len(got) != len(want) {
		t.Fatalf("slides = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slides = %v, want %v", got, want)
		}
	}
}

func TestCorruptSlideIsIsolated(t *testing.T) {
	t.Parallel()

	d, err := Open(pptxtest.Deck(
		pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(pptxtest.Run("", "fine")))),
		"<p:sld><broken",
	))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if d.Slides()[0].Corrupt() {
		t.Fatalf("slide 1 should parse")
	}
	bad := d.Slides()[1]
	if !bad.Corrupt() || bad.Err() == nil {
		t.Fatalf("slide 2 should be corrupt with an error")
	}
	if len(bad.Shapes()) != 0 {
		t.Fatalf("corrupt slide should expose no shapes")
	}
}

func TestSetTextSplicesOnlyTheTextElement(t *testing.T) {
	t.Parallel()

	rpr := `<a:rPr sz="2400" i="1"><a:latin typeface="Calibri"/></a:rPr>`
	d, err := Open(pptxtest.Deck(pptxtest.Slide(pptxtest.TextShape(
		pptxtest.Para(pptxtest.Run(rpr, "before"), pptxtest.Run("", "tail")),
	))))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s := d.Slides()[0]
	if err := s.Shapes()[0].Paragraphs[0].Runs[0].SetText("after <&>"); err != nil {
		t.Fatalf("set text: %v", err)
	}

	// re-resolve, the write reparses the slide
	runs := s.Shapes()[0].Paragraphs[0].Runs
	if got := runs[0].Text(); got != "after <&>" {
		t.Fatalf("text = %q", got)
	}
	if got := runs[1].Text(); got != "tail" {
		t.Fatalf("sibling text = %q", got)
	}
	if !bytes.Contains(s.src, []byte(rpr)) {
		t.Fatalf("run properties were disturbed:\n%s", s.src)
	}
	if sz, ok := runs[0].Size(); !ok || sz != 2400 {
		t.Fatalf("size lost after text write: %d ok=%v", sz, ok)
	}
}

func TestSettersRewriteProperties(t *testing.T) {
	t.Parallel()

	open := func(t *testing.T, props string) (*Deck, *Slide) {
		d, err := Open(pptxtest.Deck(pptxtest.Slide(pptxtest.TextShape(
			pptxtest.Para(pptxtest.Run(props, "x")),
		))))
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		return d, d.Slides()[0]
	}
	run := func(s *Slide) *Run { return s.Shapes()[0].Paragraphs[0].Runs[0] }

	t.Run("bold added to existing rPr", func(t *testing.T) {
		_, s := open(t, `<a:rPr sz="1200"/>`)
		if err := run(s).SetBold(true); err != nil {
			t.Fatalf("set bold: %v", err)
		}
		if b, ok := run(s).Bold(); !ok || !b {
			t.Fatalf("bold = %v ok=%v", b, ok)
		}
		if sz, ok := run(s).Size(); !ok || sz != 1200 {
			t.Fatalf("sz clobbered: %d ok=%v", sz, ok)
		}
	})

	t.Run("props created when absent", func(t *testing.T) {
		_, s := open(t, "")
		if err := run(s).SetSize(1600); err != nil {
			t.Fatalf("set size: %v", err)
		}
		if sz, ok := run(s).Size(); !ok || sz != 1600 {
			t.Fatalf("size = %d ok=%v", sz, ok)
		}
		if got := run(s).Text(); got != "x" {
			t.Fatalf("text = %q", got)
		}
	})

	t.Run("font replaces existing latin", func(t *testing.T) {
		_, s := open(t, `<a:rPr><a:latin typeface="Calibri" pitchFamily="34"/></a:rPr>`)
		if err := run(s).SetFontName("Arial"); err != nil {
			t.Fatalf("set font: %v", err)
		}
		if name, ok := run(s).FontName(); !ok || name != "Arial" {
			t.Fatalf("font = %q ok=%v", name, ok)
		}
		if !bytes.Contains(s.src, []byte(`pitchFamily="34"`)) {
			t.Fatalf("unrelated latin attribute dropped:\n%s", s.src)
		}
	})

	t.Run("font added into self-closed rPr", func(t *testing.T) {
		_, s := open(t, `<a:rPr b="1"/>`)
		if err := run(s).SetFontName("Georgia"); err != nil {
			t.Fatalf("set font: %v", err)
		}
		if name, ok := run(s).FontName(); !ok || name != "Georgia" {
			t.Fatalf("font = %q ok=%v", name, ok)
		}
		if b, ok := run(s).Bold(); !ok || !b {
			t.Fatalf("bold lost: %v ok=%v", b, ok)
		}
	})

	t.Run("color replaces srgb value in place", func(t *testing.T) {
		_, s := open(t, `<a:rPr><a:solidFill><a:srgbClr val="00FF00"><a:alpha val="50000"/></a:srgbClr></a:solidFill></a:rPr>`)
		if err := run(s).SetColor("#112233"); err != nil {
			t.Fatalf("set color: %v", err)
		}
		if c, ok := run(s).Color(); !ok || c != "112233" {
			t.Fatalf("color = %q ok=%v", c, ok)
		}
		if !bytes.Contains(s.src, []byte("a:alpha")) {
			t.Fatalf("alpha child dropped:\n%s", s.src)
		}
	})

	t.Run("outline fill is not the text color", func(t *testing.T) {
		_, s := open(t, `<a:rPr><a:ln w="9525"><a:solidFill><a:srgbClr val="FF0000"/></a:solidFill></a:ln></a:rPr>`)
		if c, ok := run(s).Color(); ok {
			t.Fatalf("outline color %q reported as text color", c)
		}
		if err := run(s).SetColor("112233"); err != nil {
			t.Fatalf("set color: %v", err)
		}
		if c, ok := run(s).Color(); !ok || c != "112233" {
			t.Fatalf("color = %q ok=%v", c, ok)
		}
		// the outline keeps its own fill and the text fill follows it
		if !bytes.Contains(s.src, []byte(`<a:srgbClr val="FF0000"/>`)) {
			t.Fatalf("outline fill was rewritten:\n%s", s.src)
		}
		if !bytes.Contains(s.src, []byte(`</a:ln><a:solidFill><a:srgbClr val="112233"/></a:solidFill>`)) {
			t.Fatalf("text fill not inserted after the outline:\n%s", s.src)
		}
	})

	t.Run("underline fill is not the text color", func(t *testing.T) {
		_, s := open(t, `<a:rPr><a:uFill><a:solidFill><a:srgbClr val="00FF00"/></a:solidFill></a:uFill></a:rPr>`)
		if c, ok := run(s).Color(); ok {
			t.Fatalf("underline color %q reported as text color", c)
		}
	})

	t.Run("color rejects bad hex", func(t *testing.T) {
		_, s := open(t, "")
		if err := run(s).SetColor("red"); err == nil {
			t.Fatalf("expected error for non-hex color")
		}
	})
}

func TestStaleRunRejected(t *testing.T) {
	t.Parallel()

	d, err := Open(pptxtest.Deck(pptxtest.Slide(pptxtest.TextShape(
		pptxtest.Para(pptxtest.Run("", "a"), pptxtest.Run("", "b")),
	))))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s := d.Slides()[0]
	stale := s.Shapes()[0].Paragraphs[0].Runs[1]
	if err := s.Shapes()[0].Paragraphs[0].Runs[0].SetText("changed"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if err := stale.SetText("too late"); err == nil {
		t.Fatalf("expected stale run write to fail")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	t.Parallel()

	src := pptxtest.Deck(
		pptxtest.Slide(pptxtest.TextShape(pptxtest.Para(
			pptxtest.Run(`<a:rPr sz="1800"/>`, "keep me"),
		))),
	)
	d, err := Open(src)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	out, err := d.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	d2, err := Open(out)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !bytes.Equal(d.Slides()[0].src, d2.Slides()[0].src) {
		t.Fatalf("slide part changed across serialize/reopen")
	}
	if got := d2.Slides()[0].Shapes()[0].Paragraphs[0].Runs[0].Text(); got != "keep me" {
		t.Fatalf("text = %q", got)
	}
}

func zipOf(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
