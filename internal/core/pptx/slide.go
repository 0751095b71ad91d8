package pptx

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// ShapeKind distinguishes the text-bearing shape families we edit
type ShapeKind string

const (
	// ShapeText is a plain shape with a text body
	ShapeText ShapeKind = "text"
	// ShapeTable is a graphic frame holding a drawingml table
	ShapeTable ShapeKind = "table"
)

// Slide is one slide part. Shapes, paragraphs and runs index into the
// part's current bytes; any write invalidates previously obtained
// pointers for this slide, callers re-resolve by index afterwards
type Slide struct {
	deck    *Deck
	name    string
	number  int // 1-based, from the part file name
	src     []byte
	shapes  []*Shape
	gen     uint64
	corrupt bool
	err     error
}

// Number returns the 1-based slide number
func (s *Slide) Number() int { return s.number }

// Corrupt reports whether the slide part failed to parse.
// A corrupt slide has no shapes but still appears in Deck.Slides
func (s *Slide) Corrupt() bool { return s.corrupt }

// Err returns the parse error for a corrupt slide, nil otherwise
func (s *Slide) Err() error { return s.err }

// Shapes returns the slide's text-bearing shapes in document order.
// Shapes with no text body and no table never appear here
func (s *Slide) Shapes() []*Shape { return s.shapes }

// Shape is one text-bearing shape. Text shapes carry Paragraphs
// directly; table shapes carry them per cell
type Shape struct {
	Kind       ShapeKind
	Paragraphs []*Paragraph
	Table      *Table
}

// HasText reports whether the shape carries any run text at all
func (sh *Shape) HasText() bool {
	for _, p := range sh.allParagraphs() {
		for _, r := range p.Runs {
			if strings.TrimSpace(r.text) != "" {
				return true
			}
		}
	}
	return false
}

func (sh *Shape) allParagraphs() []*Paragraph {
	if sh.Table == nil {
		return sh.Paragraphs
	}
	var out []*Paragraph
	for _, row := range sh.Table.Rows {
		for _, c := range row {
			out = append(out, c.Paragraphs...)
		}
	}
	return out
}

// Table is a drawingml table inside a graphic frame
type Table struct {
	Rows [][]*Cell
}

// Cell returns the cell at (row, col), or nil when out of range
func (t *Table) Cell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][col]
}

// Cell is one table cell with its own paragraph list
type Cell struct {
	Row, Col   int
	Paragraphs []*Paragraph
}

// Paragraph groups the runs of one a:p element
type Paragraph struct {
	Runs []*Run
}

// Text concatenates run texts with no separator
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.text)
	}
	return b.String()
}

// splice replaces src[start:end) with repl and reparses the slide.
// All previously handed out shapes and runs go stale
func (s *Slide) splice(start, end int, repl []byte) error {
	buf := make([]byte, 0, len(s.src)-(end-start)+len(repl))
	buf = append(buf, s.src[:start]...)
	buf = append(buf, repl...)
	buf = append(buf, s.src[end:]...)
	s.src = buf
	return s.reparse()
}

// reparse rebuilds the shape tree from the current part bytes, recording
// byte offsets for every run, its properties and its text element.
// Offsets are taken as the decoder position before each token, which is
// exact because adjacent tokens are contiguous in the input
func (s *Slide) reparse() error {
	s.gen++
	s.shapes = nil

	dec := xml.NewDecoder(bytes.NewReader(s.src))

	var (
		shape  *Shape
		table  *Table
		row    []*Cell
		cell   *Cell
		para   *Paragraph
		run    *Run
		inT    bool
		text   strings.Builder
		inFill bool

		// depth of elements opened inside the current a:rPr; direct
		// children sit at 1. Fills nested in a:ln, a:uFill or
		// a:highlight belong to those elements, not to the run text
		inRPr     bool
		propDepth int
	)

	for {
		start := int(dec.InputOffset())
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		end := int(dec.InputOffset())

		switch t := tok.(type) {
		case xml.StartElement:
			if inRPr {
				propDepth++
			}
			switch {
			case t.Name.Space == nsP && t.Name.Local == "sp":
				shape = &Shape{Kind: ShapeText}
			case t.Name.Space == nsP && t.Name.Local == "graphicFrame":
				shape = &Shape{Kind: ShapeTable}
			case t.Name.Space == nsA && t.Name.Local == "tbl" && shape != nil && shape.Kind == ShapeTable:
				table = &Table{}
			case t.Name.Space == nsA && t.Name.Local == "tr" && table != nil:
				row = nil
			case t.Name.Space == nsA && t.Name.Local == "tc" && table != nil:
				cell = &Cell{Row: len(table.Rows), Col: len(row)}
			case t.Name.Space == nsA && t.Name.Local == "p" && shape != nil:
				para = &Paragraph{}
			case t.Name.Space == nsA && t.Name.Local == "r" && para != nil:
				run = &Run{slide: s, gen: s.gen, start: start, tagEnd: end}
			case t.Name.Space == nsA && t.Name.Local == "rPr" && run != nil:
				run.props = &runProps{start: start, tagEnd: end}
				inRPr = true
				propDepth = 0
				for _, a := range t.Attr {
					if a.Name.Space != "" {
						continue
					}
					switch a.Name.Local {
					case "sz":
						run.props.sz = a.Value
					case "b":
						run.props.b = a.Value
					case "i":
						run.props.i = a.Value
					}
				}
			case t.Name.Space == nsA && t.Name.Local == "ln" && run != nil && run.props != nil && propDepth == 1:
				run.props.ln = &elemRef{start: start, tagEnd: end}
			case t.Name.Space == nsA && t.Name.Local == "latin" && run != nil && run.props != nil && propDepth == 1:
				run.props.latin = &elemRef{start: start, tagEnd: end}
				for _, a := range t.Attr {
					if a.Name.Space == "" && a.Name.Local == "typeface" {
						run.props.latin.value = a.Value
					}
				}
			case t.Name.Space == nsA && t.Name.Local == "solidFill" && run != nil && run.props != nil && propDepth == 1:
				run.props.fill = &elemRef{start: start, tagEnd: end}
				inFill = true
			case t.Name.Space == nsA && t.Name.Local == "srgbClr" && inFill && propDepth == 2:
				run.props.clr = &elemRef{start: start, tagEnd: end}
				for _, a := range t.Attr {
					if a.Name.Space == "" && a.Name.Local == "val" {
						run.props.clr.value = a.Value
					}
				}
			case t.Name.Space == nsA && t.Name.Local == "t" && run != nil:
				run.tStart = start
				inT = true
				text.Reset()
			}

		case xml.CharData:
			if inT {
				text.Write([]byte(t))
			}

		case xml.EndElement:
			if inRPr {
				if t.Name.Space == nsA && t.Name.Local == "rPr" {
					inRPr = false
					propDepth = 0
				} else {
					propDepth--
				}
			}
			switch {
			case t.Name.Space == nsA && t.Name.Local == "t" && run != nil && inT:
				run.tEnd = end
				run.text = text.String()
				inT = false
			case t.Name.Space == nsA && t.Name.Local == "rPr" && run != nil && run.props != nil:
				run.props.end = end
				run.props.selfClose = end == run.props.tagEnd
			case t.Name.Space == nsA && t.Name.Local == "ln" && run != nil && run.props != nil && run.props.ln != nil && run.props.ln.end == 0:
				run.props.ln.end = end
			case t.Name.Space == nsA && t.Name.Local == "latin" && run != nil && run.props != nil && run.props.latin != nil && run.props.latin.end == 0:
				run.props.latin.end = end
			case t.Name.Space == nsA && t.Name.Local == "solidFill" && inFill:
				run.props.fill.end = end
				inFill = false
			case t.Name.Space == nsA && t.Name.Local == "srgbClr" && inFill && run.props.clr != nil && run.props.clr.end == 0:
				run.props.clr.end = end
			case t.Name.Space == nsA && t.Name.Local == "r" && run != nil:
				run.closeStart = start
				run.end = end
				para.Runs = append(para.Runs, run)
				run = nil
			case t.Name.Space == nsA && t.Name.Local == "p" && para != nil:
				if cell != nil {
					cell.Paragraphs = append(cell.Paragraphs, para)
				} else if shape != nil {
					shape.Paragraphs = append(shape.Paragraphs, para)
				}
				para = nil
			case t.Name.Space == nsA && t.Name.Local == "tc" && cell != nil:
				row = append(row, cell)
				cell = nil
			case t.Name.Space == nsA && t.Name.Local == "tr" && table != nil:
				table.Rows = append(table.Rows, row)
				row = nil
			case t.Name.Space == nsA && t.Name.Local == "tbl" && table != nil:
				if shape != nil {
					shape.Table = table
				}
				table = nil
			case t.Name.Space == nsP && (t.Name.Local == "sp" || t.Name.Local == "graphicFrame"):
				if shape != nil && (len(shape.Paragraphs) > 0 || shape.Table != nil) {
					s.shapes = append(s.shapes, shape)
				}
				shape = nil
			}
		}
	}
	return nil
}
