// Package pptx reads and edits PresentationML (.pptx) containers.
//
// A deck is opened from raw bytes, slides expose a shape/paragraph/run
// tree parsed from each slide part, and edits are applied as byte-range
// splices over the original part bytes so every untouched byte survives
// serialization verbatim.
package pptx

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"sort"
	"strconv"

	perr "slidesift/internal/platform/errors"
)

// Drawing and presentation namespaces as they appear in slide parts.
const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
)

var slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Deck is one opened presentation. It owns a private copy of every zip
// part; two decks never share bytes
type Deck struct {
	names  []string // zip entry order, preserved on write
	parts  map[string][]byte
	slides []*Slide
}

// Open validates the container signature and parses every slide part.
// Anything that is not a pptx zip (wrong magic, missing content types,
// missing presentation part) is rejected before extraction begins
func Open(b []byte) (*Deck, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, perr.UnsupportedContainerf("not a pptx container: %v", err)
	}

	d := &Deck{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, perr.UnsupportedContainerf("corrupt part %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, perr.UnsupportedContainerf("corrupt part %s: %v", f.Name, err)
		}
		d.names = append(d.names, f.Name)
		d.parts[f.Name] = data
	}

	if _, ok := d.parts["[Content_Types].xml"]; !ok {
		return nil, perr.UnsupportedContainerf("missing [Content_Types].xml")
	}
	if _, ok := d.parts["ppt/presentation.xml"]; !ok {
		return nil, perr.UnsupportedContainerf("missing ppt/presentation.xml")
	}

	type numbered struct {
		n    int
		name string
	}
	var found []numbered
	for name := range d.parts {
		m := slidePartRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		found = append(found, numbered{n: n, name: name})
	}
	// numeric order, not lexicographic: slide10 sorts after slide9
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	for _, f := range found {
		s := &Slide{deck: d, name: f.name, number: f.n, src: d.parts[f.name]}
		if err := s.reparse(); err != nil {
			// a broken slide part is never fatal for the deck
			s.corrupt = true
			s.err = perr.Wrapf(err, perr.ErrorCodeUnknown, "slide %d unparseable", f.n)
			s.shapes = nil
		}
		d.slides = append(d.slides, s)
	}
	return d, nil
}

// Slides returns the deck's slides in slide-number order
func (d *Deck) Slides() []*Slide { return d.slides }

// Slide returns the slide with the given 1-based number, or nil
func (d *Deck) Slide(number int) *Slide {
	for _, s := range d.slides {
		if s.number == number {
			return s
		}
	}
	return nil
}

// Bytes serializes the deck back into a zip, with edited slide parts
// replacing the originals and every other part written untouched
func (d *Deck) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range d.names {
		data := d.parts[name]
		for _, s := range d.slides {
			if s.name == name {
				data = s.src
				break
			}
		}
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "write part %s", name)
		}
		if _, err := w.Write(data); err != nil {
			zw.Close()
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "write part %s", name)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "finalize container")
	}
	return buf.Bytes(), nil
}
