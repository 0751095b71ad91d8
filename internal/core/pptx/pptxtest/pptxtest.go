// Package pptxtest builds tiny in-memory .pptx fixtures for tests
package pptxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/><Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/></Types>`

const presentation = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"/>`

const slideTmpl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree>%s</p:spTree></p:cSld></p:sld>`

// Deck zips the given slide part payloads into a minimal valid pptx,
// one per ppt/slides/slideN.xml in order
func Deck(slides ...string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, body string) {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			panic(err)
		}
	}
	write("[Content_Types].xml", contentTypes)
	write("ppt/presentation.xml", presentation)
	for i, s := range slides {
		write(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), s)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Slide wraps shape markup into a complete slide part
func Slide(shapes ...string) string {
	return fmt.Sprintf(slideTmpl, join(shapes))
}

// TextShape wraps paragraphs into a p:sp with a text body
func TextShape(paras ...string) string {
	return `<p:sp><p:nvSpPr><p:cNvPr id="2" name="Text"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/>` +
		join(paras) + `</p:txBody></p:sp>`
}

// Para wraps runs into an a:p
func Para(runs ...string) string { return "<a:p>" + join(runs) + "</a:p>" }

// Run builds an a:r; props is raw a:rPr markup and may be empty
func Run(props, text string) string {
	return "<a:r>" + props + "<a:t>" + text + "</a:t></a:r>"
}

// TableShape builds a p:graphicFrame holding a table; each cell string
// becomes one single-run paragraph
func TableShape(rows ...[]string) string {
	var b bytes.Buffer
	b.WriteString(`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="3" name="Table"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl>`)
	for _, row := range rows {
		b.WriteString("<a:tr>")
		for _, cell := range row {
			b.WriteString(`<a:tc><a:txBody><a:bodyPr/>`)
			b.WriteString(Para(Run("", cell)))
			b.WriteString("</a:txBody></a:tc>")
		}
		b.WriteString("</a:tr>")
	}
	b.WriteString("</a:tbl></a:graphicData></a:graphic></p:graphicFrame>")
	return b.String()
}

func join(parts []string) string {
	var b bytes.Buffer
	for _, p := range parts {
		b.WriteString(p)
	}
	return b.String()
}
