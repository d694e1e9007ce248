package svg

import (
	"errors"
	"math"
	"strconv"

	"github.com/tdewolff/parse/v2"
	strconvParse "github.com/tdewolff/parse/v2/strconv"
)

// ErrNotNumber is returned when a numerical attribute holds something other than a number.
var ErrNotNumber = errors.New("value is not a number")

// Kind is the encoding used for an attribute value.
type Kind int

// Value kinds.
const (
	RawValue Kind = iota
	NumberValue
	ColorValue
)

func (k Kind) String() string {
	switch k {
	case NumberValue:
		return "number"
	case ColorValue:
		return "color"
	}
	return "raw"
}

// KindOf returns the encoding of the attribute with the given wire name.
func KindOf(name string) Kind {
	if IsNumerical(name) {
		return NumberValue
	} else if IsColor(name) {
		return ColorValue
	}
	return RawValue
}

// NormalizeValue formats the value of attribute name according to its kind.
// Numbers are written in their shortest form, colors are lowercased and short hex colors expanded,
// other values have their whitespace trimmed and collapsed.
func NormalizeValue(name, value string) (string, error) {
	b, err := normalizeValue(KindOf(name), []byte(value), 0)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// normalizeValue may overwrite b.
func normalizeValue(kind Kind, b []byte, prec int) ([]byte, error) {
	b = parse.TrimWhitespace(b)
	switch kind {
	case NumberValue:
		return formatNumber(b, prec)
	case ColorValue:
		return formatColor(b), nil
	}
	return parse.ReplaceMultipleWhitespace(b), nil
}

// formatNumber accepts an optional px unit, which is the default user unit.
func formatNumber(b []byte, prec int) ([]byte, error) {
	f, n := strconvParse.ParseFloat(b)
	if n == 0 {
		return nil, ErrNotNumber
	} else if rest := b[n:]; len(rest) != 0 && string(rest) != "px" {
		return nil, ErrNotNumber
	} else if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, ErrNotNumber
	}
	if 0 < prec {
		f, _ = strconv.ParseFloat(strconv.FormatFloat(f, 'g', prec, 64), 64)
	}
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	return strconv.AppendFloat(b[:0], f, 'f', -1, 64), nil
}

func formatColor(b []byte) []byte {
	b = parse.ToLower(b)
	if len(b) == 4 && b[0] == '#' && isHex(b[1:]) {
		return []byte{'#', b[1], b[1], b[2], b[2], b[3], b[3]}
	}
	return b
}

func isHex(b []byte) bool {
	for _, c := range b {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}
