package svg

import (
	"errors"
	"testing"

	"github.com/tdewolff/test"
)

func TestKindOf(t *testing.T) {
	test.T(t, KindOf("r"), NumberValue)
	test.T(t, KindOf("fill"), ColorValue)
	test.T(t, KindOf("d"), RawValue)
	test.T(t, KindOf(""), RawValue)
	test.String(t, NumberValue.String(), "number")
	test.String(t, ColorValue.String(), "color")
	test.String(t, RawValue.String(), "raw")
}

func TestNormalizeValue(t *testing.T) {
	var valueTests = []struct {
		name     string
		value    string
		expected string
	}{
		{"x", "5", "5"},
		{"x", " 1.50 ", "1.5"},
		{"y", "0.5", "0.5"},
		{"y", ".5", "0.5"},
		{"r", "-0", "0"},
		{"width", "10px", "10"},
		{"height", "1e2", "100"},
		{"fontSize", "+12", "12"},
		{"fill", "#FFF", "#ffffff"},
		{"fill", "#AbCdEf", "#abcdef"},
		{"color", " Red ", "red"},
		{"color", "#ggg", "#ggg"},
		{"d", "M 0 0   L 10 10", "M 0 0 L 10 10"},
		{"text", "  hello   world ", "hello world"},
		{"unknown", "", ""},
	}
	for _, tt := range valueTests {
		t.Run(tt.name+"="+tt.value, func(t *testing.T) {
			val, err := NormalizeValue(tt.name, tt.value)
			test.Error(t, err)
			test.String(t, val, tt.expected)
		})
	}
}

func TestNormalizeValueError(t *testing.T) {
	var errorTests = []struct {
		name  string
		value string
	}{
		{"x", ""},
		{"x", "abc"},
		{"width", "10em"},
		{"r", "5 5"},
		{"x", "1e400"},
		{"y", "-1e400px"},
	}
	for _, tt := range errorTests {
		t.Run(tt.name+"="+tt.value, func(t *testing.T) {
			_, err := NormalizeValue(tt.name, tt.value)
			test.That(t, errors.Is(err, ErrNotNumber), "must return ErrNotNumber, got", err)
		})
	}
}

func TestNormalizeValuePrecision(t *testing.T) {
	b, err := normalizeValue(NumberValue, []byte("3.14159"), 3)
	test.Error(t, err)
	test.String(t, string(b), "3.14")

	b, err = normalizeValue(NumberValue, []byte("12345"), 2)
	test.Error(t, err)
	test.String(t, string(b), "12000")
}
