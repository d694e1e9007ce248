package svg

// Element identifies one of the shape elements drawn on the whiteboard.
type Element uint8

// Element identifiers, the wire string is given in the comment.
const (
	Rect     Element = iota + 1 // rect
	Circle                      // circle
	Line                        // line
	Ellipse                     // ellipse
	Text                        // text
	Polyline                    // polyline
	Path                        // path
)

// Attr identifies one of the shape properties serialized as an attribute.
type Attr uint8

// Attr identifiers, the wire string is given in the comment.
const (
	X        Attr = iota + 1 // x
	Y                        // y
	R                        // r
	D                        // d
	X1                       // x1
	X2                       // x2
	Y1                       // y1
	Y2                       // y2
	Rx                       // rx
	Ry                       // ry
	Cx                       // cx
	Cy                       // cy
	Width                    // width
	Height                   // height
	TextAttr                 // text
	Color                    // color
	Fill                     // fill
	FontSize                 // fontSize
)

// The tables are indexed by identifier and never written to. There is no API to change them.
var elementText = [...]string{
	Rect:     "rect",
	Circle:   "circle",
	Line:     "line",
	Ellipse:  "ellipse",
	Text:     "text",
	Polyline: "polyline",
	Path:     "path",
}

var attrText = [...]string{
	X:        "x",
	Y:        "y",
	R:        "r",
	D:        "d",
	X1:       "x1",
	X2:       "x2",
	Y1:       "y1",
	Y2:       "y2",
	Rx:       "rx",
	Ry:       "ry",
	Cx:       "cx",
	Cy:       "cy",
	Width:    "width",
	Height:   "height",
	TextAttr: "text",
	Color:    "color",
	Fill:     "fill",
	FontSize: "fontSize",
}

// String returns the wire string of the element, or the empty string for an unknown identifier.
func (e Element) String() string {
	if 0 < e && int(e) < len(elementText) {
		return elementText[e]
	}
	return ""
}

// String returns the wire string of the attribute, or the empty string for an unknown identifier.
func (a Attr) String() string {
	if 0 < a && int(a) < len(attrText) {
		return attrText[a]
	}
	return ""
}

// IsNumerical reports whether the attribute holds a number.
func (a Attr) IsNumerical() bool {
	return IsNumerical(a.String())
}

// IsColor reports whether the attribute holds a color.
func (a Attr) IsColor() bool {
	return IsColor(a.String())
}

// ToElement returns the element for the wire string, or zero if it is not a shape element.
func ToElement(b []byte) Element {
	switch string(b) {
	case "rect":
		return Rect
	case "circle":
		return Circle
	case "line":
		return Line
	case "ellipse":
		return Ellipse
	case "text":
		return Text
	case "polyline":
		return Polyline
	case "path":
		return Path
	}
	return 0
}

// ToAttr returns the attribute for the wire string, or zero if it is not a shape property.
func ToAttr(b []byte) Attr {
	switch string(b) {
	case "x":
		return X
	case "y":
		return Y
	case "r":
		return R
	case "d":
		return D
	case "x1":
		return X1
	case "x2":
		return X2
	case "y1":
		return Y1
	case "y2":
		return Y2
	case "rx":
		return Rx
	case "ry":
		return Ry
	case "cx":
		return Cx
	case "cy":
		return Cy
	case "width":
		return Width
	case "height":
		return Height
	case "text":
		return TextAttr
	case "color":
		return Color
	case "fill":
		return Fill
	case "fontSize":
		return FontSize
	}
	return 0
}

// Elements returns all shape elements in declaration order.
func Elements() []Element {
	es := make([]Element, 0, len(elementText)-1)
	for e := Rect; int(e) < len(elementText); e++ {
		es = append(es, e)
	}
	return es
}

// Attrs returns all shape attributes in declaration order.
func Attrs() []Attr {
	as := make([]Attr, 0, len(attrText)-1)
	for a := X; int(a) < len(attrText); a++ {
		as = append(as, a)
	}
	return as
}
