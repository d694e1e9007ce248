// Package sarosui renders the presentation pieces of the Saros collaborative editing plugin: the account display with
// its account selector (see package account) and the whiteboard shapes in SVG (see package svg).
package sarosui

import (
	"bytes"
	"io"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/svg"
)

// Media types of rendered documents.
const (
	HTMLType    = "text/html"
	TextType    = "text/plain"
	SVGType     = "image/svg+xml"
	SessionType = "application/x-saros-session+yaml"
)

// Output writes rendered documents, minifying them when enabled.
type Output struct {
	Minify bool

	m *minify.M
}

// NewOutput returns an Output that minifies HTML and SVG. Precision is the number of significant digits kept in
// SVG numbers, 0 keeps all.
func NewOutput(minifyOutput bool, precision int) *Output {
	m := minify.New()
	m.Add(HTMLType, &html.Minifier{
		KeepDefaultAttrVals: true,
		KeepEndTags:         true,
	})
	m.Add(SVGType, &svg.Minifier{
		Precision: precision,
	})
	return &Output{minifyOutput, m}
}

// Write writes b of the given media type to w. Media types without a minifier are written as is.
func (o *Output) Write(mediatype string, w io.Writer, b []byte) error {
	if o.Minify {
		if err := o.m.Minify(mediatype, w, bytes.NewReader(b)); err != minify.ErrNotExist {
			return err
		}
	}
	_, err := w.Write(b)
	return err
}

// Bytes returns b of the given media type as it would be written.
func (o *Output) Bytes(mediatype string, b []byte) ([]byte, error) {
	w := bytes.NewBuffer(make([]byte, 0, len(b)))
	if err := o.Write(mediatype, w, b); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
