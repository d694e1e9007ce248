package svg

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestHashTable(t *testing.T) {
	test.T(t, ToElement([]byte("rect")), Rect, "'rect' must resolve to Rect")
	test.String(t, Rect.String(), "rect", "Rect must resolve to 'rect'")
	test.T(t, ToAttr([]byte("r")), R, "'r' must resolve to R")
	test.String(t, R.String(), "r", "R must resolve to 'r'")
	test.String(t, FontSize.String(), "fontSize")
	test.String(t, TextAttr.String(), "text")
	test.String(t, Text.String(), "text")
}

func TestElements(t *testing.T) {
	var elementTests = []struct {
		elem     Element
		expected string
	}{
		{Rect, "rect"},
		{Circle, "circle"},
		{Line, "line"},
		{Ellipse, "ellipse"},
		{Text, "text"},
		{Polyline, "polyline"},
		{Path, "path"},
	}
	test.T(t, len(Elements()), len(elementTests), "all elements must be listed")
	for i, tt := range elementTests {
		t.Run(tt.expected, func(t *testing.T) {
			test.T(t, Elements()[i], tt.elem)
			test.String(t, tt.elem.String(), tt.expected)
			test.T(t, ToElement([]byte(tt.expected)), tt.elem)
		})
	}
}

func TestAttrs(t *testing.T) {
	var attrTests = []struct {
		attr     Attr
		expected string
	}{
		{X, "x"},
		{Y, "y"},
		{R, "r"},
		{D, "d"},
		{X1, "x1"},
		{X2, "x2"},
		{Y1, "y1"},
		{Y2, "y2"},
		{Rx, "rx"},
		{Ry, "ry"},
		{Cx, "cx"},
		{Cy, "cy"},
		{Width, "width"},
		{Height, "height"},
		{TextAttr, "text"},
		{Color, "color"},
		{Fill, "fill"},
		{FontSize, "fontSize"},
	}
	test.T(t, len(Attrs()), len(attrTests), "all attributes must be listed")
	for i, tt := range attrTests {
		t.Run(tt.expected, func(t *testing.T) {
			test.T(t, Attrs()[i], tt.attr)
			test.String(t, tt.attr.String(), tt.expected)
			test.T(t, ToAttr([]byte(tt.expected)), tt.attr)
		})
	}
}

func TestUnknownHash(t *testing.T) {
	test.T(t, ToElement([]byte("g")), Element(0))
	test.T(t, ToElement([]byte("RECT")), Element(0))
	test.T(t, ToElement(nil), Element(0))
	test.T(t, ToAttr([]byte("stroke")), Attr(0))
	test.T(t, ToAttr([]byte("font-size")), Attr(0))
	test.String(t, Element(0).String(), "")
	test.String(t, Element(200).String(), "")
	test.String(t, Attr(0).String(), "")
	test.String(t, Attr(200).String(), "")
}

func TestHashStable(t *testing.T) {
	for _, a := range Attrs() {
		test.String(t, a.String(), a.String())
	}

	// returned slices are copies
	es := Elements()
	es[0] = Path
	test.T(t, Elements()[0], Rect)
}
