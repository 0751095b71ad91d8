package pptx

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	perr "slidesift/internal/platform/errors"
)

// Run is the smallest text-bearing element with its own formatting.
// Byte offsets point into the owning slide's current part bytes
type Run struct {
	slide *Slide
	gen   uint64
	text  string

	start, end int // whole <a:r> element
	tagEnd     int // end of the <a:r> start tag
	closeStart int // start of the </a:r> close tag

	tStart, tEnd int // whole <a:t> element, zero when absent

	props *runProps
}

// runProps records the <a:rPr> element of a run. selfClose marks the
// <a:rPr .../> form, which must be reopened before children are added
type runProps struct {
	start, tagEnd, end int
	selfClose          bool
	sz, b, i           string // raw attribute values, empty when absent

	ln    *elemRef // a:ln outline, owns its own fill
	latin *elemRef // a:latin
	fill  *elemRef // a:solidFill directly under rPr (the text fill)
	clr   *elemRef // a:srgbClr inside the text fill
}

// elemRef is a child element's byte range plus its one attribute of interest
type elemRef struct {
	start, tagEnd, end int
	value              string
}

// Text returns the run's current text
func (r *Run) Text() string { return r.text }

// FontName returns the latin typeface when explicitly set on the run
func (r *Run) FontName() (string, bool) {
	if r.props == nil || r.props.latin == nil {
		return "", false
	}
	return r.props.latin.value, true
}

// Size returns the font size in hundredths of a point when set
func (r *Run) Size() (int, bool) {
	if r.props == nil || r.props.sz == "" {
		return 0, false
	}
	n, err := strconv.Atoi(r.props.sz)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bold reports the run's bold flag and whether it is explicitly set
func (r *Run) Bold() (bool, bool) {
	if r.props == nil || r.props.b == "" {
		return false, false
	}
	return r.props.b == "1" || r.props.b == "true", true
}

// Italic reports the run's italic flag and whether it is explicitly set
func (r *Run) Italic() (bool, bool) {
	if r.props == nil || r.props.i == "" {
		return false, false
	}
	return r.props.i == "1" || r.props.i == "true", true
}

// Color returns the run's text fill color as uppercase RRGGBB when the
// fill directly under rPr is an explicit srgb color. Outline and
// underline fills never show through here
func (r *Run) Color() (string, bool) {
	if r.props == nil || r.props.clr == nil {
		return "", false
	}
	return strings.ToUpper(r.props.clr.value), true
}

// fresh rejects setter calls on runs obtained before the slide's last
// write; callers re-resolve runs by index after every mutation
func (r *Run) fresh() error {
	if r.gen != r.slide.gen {
		return perr.Internalf("stale run reference on slide %d", r.slide.number)
	}
	return nil
}

// SetText replaces the run's whole <a:t> element with escaped text.
// The primitive gives no promise about run properties surviving the
// write; callers that need formatting preserved capture and restore it
func (r *Run) SetText(text string) error {
	if err := r.fresh(); err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.WriteString("<a:t>")
	_ = xml.EscapeText(&buf, []byte(text))
	buf.WriteString("</a:t>")
	if r.tEnd > 0 {
		return r.slide.splice(r.tStart, r.tEnd, buf.Bytes())
	}
	return r.slide.splice(r.closeStart, r.closeStart, buf.Bytes())
}

// SetFontName sets the latin typeface, adding the a:latin child (and the
// a:rPr element itself) when absent
func (r *Run) SetFontName(name string) error {
	if err := r.fresh(); err != nil {
		return err
	}
	if cur, ok := r.FontName(); ok && cur == name {
		return nil
	}
	child := elemWithAttr("a:latin", "typeface", name)
	if r.props == nil {
		return r.insertProps(child)
	}
	if r.props.latin != nil {
		l := r.props.latin
		tag := setTagAttr(r.slide.src[l.start:l.tagEnd], "typeface", name)
		return r.slide.splice(l.start, l.tagEnd, tag)
	}
	// latin goes after any fill, so append before the rPr close tag
	return r.insertPropChild(child, false)
}

// SetSize sets the font size in hundredths of a point
func (r *Run) SetSize(hundredths int) error {
	return r.setPropAttr("sz", strconv.Itoa(hundredths), func() (string, bool) {
		if n, ok := r.Size(); ok {
			return strconv.Itoa(n), true
		}
		return "", false
	})
}

// SetBold sets the bold flag
func (r *Run) SetBold(v bool) error {
	return r.setPropAttr("b", boolAttr(v), func() (string, bool) {
		if b, ok := r.Bold(); ok {
			return boolAttr(b), true
		}
		return "", false
	})
}

// SetItalic sets the italic flag
func (r *Run) SetItalic(v bool) error {
	return r.setPropAttr("i", boolAttr(v), func() (string, bool) {
		if b, ok := r.Italic(); ok {
			return boolAttr(b), true
		}
		return "", false
	})
}

// SetColor sets the run's text fill to an srgb color, leaving outline
// and underline fills alone. Accepts RRGGBB with or without a leading #
func (r *Run) SetColor(hex string) error {
	if err := r.fresh(); err != nil {
		return err
	}
	val, err := normalizeHex(hex)
	if err != nil {
		return err
	}
	if cur, ok := r.Color(); ok && cur == val {
		return nil
	}
	fill := []byte(`<a:solidFill><a:srgbClr val="` + val + `"/></a:solidFill>`)
	switch {
	case r.props == nil:
		return r.insertProps(fill)
	case r.props.clr != nil:
		c := r.props.clr
		tag := setTagAttr(r.slide.src[c.start:c.tagEnd], "val", val)
		return r.slide.splice(c.start, c.tagEnd, tag)
	case r.props.fill != nil:
		// theme or preset fill, replace the whole element
		return r.slide.splice(r.props.fill.start, r.props.fill.end, fill)
	case r.props.ln != nil:
		// the text fill follows the outline in rPr child order
		return r.slide.splice(r.props.ln.end, r.props.ln.end, fill)
	default:
		// fill is first among the rPr children we emit
		return r.insertPropChild(fill, true)
	}
}

func (r *Run) setPropAttr(name, val string, current func() (string, bool)) error {
	if err := r.fresh(); err != nil {
		return err
	}
	if cur, ok := current(); ok && cur == val {
		return nil
	}
	if r.props == nil {
		tag := []byte(`<a:rPr ` + name + `="` + val + `"/>`)
		return r.slide.splice(r.tagEnd, r.tagEnd, tag)
	}
	p := r.props
	tag := setTagAttr(r.slide.src[p.start:p.tagEnd], name, val)
	return r.slide.splice(p.start, p.tagEnd, tag)
}

// insertProps adds a fresh <a:rPr> holding the given children as the
// run's first child, before the text element
func (r *Run) insertProps(children []byte) error {
	var buf bytes.Buffer
	buf.WriteString("<a:rPr>")
	buf.Write(children)
	buf.WriteString("</a:rPr>")
	return r.slide.splice(r.tagEnd, r.tagEnd, buf.Bytes())
}

// insertPropChild adds a child element inside an existing a:rPr,
// reopening a self-closed one when needed
func (r *Run) insertPropChild(child []byte, first bool) error {
	p := r.props
	if p.selfClose {
		tag := r.slide.src[p.start:p.tagEnd]
		var buf bytes.Buffer
		buf.Write(bytes.TrimSuffix(bytes.TrimSuffix(tag, []byte("/>")), []byte(" ")))
		buf.WriteString(">")
		buf.Write(child)
		buf.WriteString("</a:rPr>")
		return r.slide.splice(p.start, p.end, buf.Bytes())
	}
	if first {
		return r.slide.splice(p.tagEnd, p.tagEnd, child)
	}
	closeStart := p.end - len("</a:rPr>")
	return r.slide.splice(closeStart, closeStart, child)
}

// setTagAttr rewrites one attribute inside a raw start tag, inserting it
// before the tag close when absent. Everything else in the tag is kept
// byte for byte
func setTagAttr(tag []byte, name, val string) []byte {
	esc := escapeAttr(val)
	needle := []byte(" " + name + "=")
	if i := bytes.Index(tag, needle); i >= 0 {
		j := i + len(needle)
		if j < len(tag) && (tag[j] == '"' || tag[j] == '\'') {
			q := tag[j]
			if k := bytes.IndexByte(tag[j+1:], q); k >= 0 {
				out := make([]byte, 0, len(tag)+len(esc))
				out = append(out, tag[:j+1]...)
				out = append(out, esc...)
				out = append(out, tag[j+1+k:]...)
				return out
			}
		}
	}
	ins := []byte(" " + name + `="` + string(esc) + `"`)
	cut := len(tag) - 1 // before ">"
	if bytes.HasSuffix(tag, []byte("/>")) {
		cut = len(tag) - 2
	}
	out := make([]byte, 0, len(tag)+len(ins))
	out = append(out, tag[:cut]...)
	out = append(out, ins...)
	out = append(out, tag[cut:]...)
	return out
}

func elemWithAttr(elem, attr, val string) []byte {
	return []byte("<" + elem + " " + attr + `="` + string(escapeAttr(val)) + `"/>`)
}

func escapeAttr(v string) []byte {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(v))
	return buf.Bytes()
}

func boolAttr(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func normalizeHex(hex string) (string, error) {
	v := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(v) != 6 {
		return "", perr.InvalidArgf("color %q is not RRGGBB", hex)
	}
	for _, c := range v {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return "", perr.InvalidArgf("color %q is not RRGGBB", hex)
		}
	}
	return strings.ToUpper(v), nil
}
