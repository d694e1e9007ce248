package svg

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// ErrUnknownElement is returned when encoding a shape without a known element.
var ErrUnknownElement = errors.New("unknown shape element")

// ErrInvalidName is returned when encoding a property whose name cannot be an attribute name.
var ErrInvalidName = errors.New("invalid attribute name")

var (
	svgStartBytes   = []byte(`<svg xmlns="http://www.w3.org/2000/svg">`)
	svgEndBytes     = []byte("</svg>")
	voidBytes       = []byte("/>")
	cdataStartBytes = []byte("<![CDATA[")
	cdataEndBytes   = []byte("]]>")
	cdataSplitBytes = []byte("]]]]><![CDATA[>")
	cdataEndEntity  = []byte("]]&gt;")
	ampBytes        = []byte("&")
	ampEntityBytes  = []byte("&amp;")
	ltBytes         = []byte("<")
	ltEntityBytes   = []byte("&lt;")
)

// Property is a single shape property in wire form.
type Property struct {
	Name  string
	Value string
}

// Shape is a whiteboard shape with its properties in document order.
// The character data of a text element is held by the text property.
type Shape struct {
	Element Element
	Props   []Property
}

// Get returns the value of the first property with the given name.
func (s Shape) Get(name string) (string, bool) {
	for _, p := range s.Props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

////////////////////////////////////////////////////////////////

// Decode reads SVG markup from r and returns the shapes in document order with normalized property values.
// Elements that are not shapes, such as svg or g, are skipped but their children are read.
func Decode(r io.Reader) ([]Shape, error) {
	input := parse.NewInput(r)
	l := xml.NewLexer(input)

	shapes := []Shape{}
	var cur *Shape
	var text []byte
	inText := false
	for {
		tt, _ := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() == io.EOF {
				if inText {
					return nil, parse.NewErrorLexer(input, "unterminated %v element", Text)
				}
				return shapes, nil
			}
			return nil, l.Err()
		case xml.StartTagToken:
			if !inText {
				if elem := ToElement(l.Text()); elem != 0 {
					cur = &Shape{Element: elem}
				}
			}
		case xml.AttributeToken:
			if cur == nil || inText {
				break
			}
			name := string(l.Text())
			val := l.AttrVal()
			if 1 < len(val) && (val[0] == '"' || val[0] == '\'') && val[0] == val[len(val)-1] {
				val = val[1 : len(val)-1]
			}
			b, err := normalizeValue(KindOf(name), []byte(html.UnescapeString(string(val))), 0)
			if err != nil {
				return nil, parse.NewErrorLexer(input, "%v attribute %s: %v", cur.Element, name, err)
			}
			cur.Props = append(cur.Props, Property{name, string(b)})
		case xml.StartTagCloseVoidToken:
			if cur != nil && !inText {
				shapes = append(shapes, *cur)
				cur = nil
			}
		case xml.StartTagCloseToken:
			if cur != nil && !inText {
				if cur.Element == Text {
					inText = true
					text = text[:0]
				} else {
					shapes = append(shapes, *cur)
					cur = nil
				}
			}
		case xml.TextToken:
			if inText {
				text = append(text, html.UnescapeString(string(l.Text()))...)
			}
		case xml.CDATAToken:
			if inText {
				text = append(text, l.Text()...)
			}
		case xml.EndTagToken:
			if inText && ToElement(l.Text()) == Text {
				b := parse.ReplaceMultipleWhitespace(parse.TrimWhitespace(text))
				cur.Props = append(cur.Props, Property{TextAttr.String(), string(b)})
				shapes = append(shapes, *cur)
				cur = nil
				inText = false
			}
		}
	}
}

////////////////////////////////////////////////////////////////

// Encoder writes shapes as an SVG document.
type Encoder struct {
	Precision int // number of significant digits for numbers, 0 is all
}

// Encode writes shapes to w using the default Encoder.
func Encode(w io.Writer, shapes []Shape) error {
	return (&Encoder{}).Encode(w, shapes)
}

// Encode writes shapes to w as a single svg element. Property values are normalized according to their kind.
func (e *Encoder) Encode(w io.Writer, shapes []Shape) error {
	var escBuf []byte
	b := bytes.NewBuffer(make([]byte, 0, 64*len(shapes)+len(svgStartBytes)+len(svgEndBytes)))
	b.Write(svgStartBytes)
	for _, s := range shapes {
		tag := s.Element.String()
		if tag == "" {
			return fmt.Errorf("%w: %d", ErrUnknownElement, s.Element)
		}
		b.WriteByte('<')
		b.WriteString(tag)

		var content []byte
		for _, p := range s.Props {
			if !validName(p.Name) {
				return fmt.Errorf("%v: %w %q", s.Element, ErrInvalidName, p.Name)
			}
			val, err := normalizeValue(KindOf(p.Name), []byte(p.Value), e.Precision)
			if err != nil {
				return fmt.Errorf("%v attribute %s: %w", s.Element, p.Name, err)
			}
			if s.Element == Text && p.Name == TextAttr.String() {
				content = val
				continue
			}
			val = bytes.ReplaceAll(val, ampBytes, ampEntityBytes)
			val = bytes.ReplaceAll(val, ltBytes, ltEntityBytes)
			b.WriteByte(' ')
			b.WriteString(p.Name)
			b.WriteByte('=')
			b.Write(xml.EscapeAttrVal(&escBuf, val))
		}

		if content == nil {
			b.Write(voidBytes)
			continue
		}
		b.WriteByte('>')
		if data, useText := xml.EscapeCDATAVal(&escBuf, content); useText {
			b.Write(bytes.ReplaceAll(data, cdataEndBytes, cdataEndEntity))
		} else {
			b.Write(cdataStartBytes)
			b.Write(bytes.ReplaceAll(data, cdataEndBytes, cdataSplitBytes))
			b.Write(cdataEndBytes)
		}
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteByte('>')
	}
	b.Write(svgEndBytes)

	_, err := w.Write(b.Bytes())
	return err
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		switch c := name[i]; c {
		case ' ', '\t', '\n', '\r', '\f', '=', '<', '>', '/', '"', '\'', '&':
			return false
		}
	}
	return true
}
