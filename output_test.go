package sarosui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestOutput(t *testing.T) {
	o := NewOutput(false, 0)
	b, err := o.Bytes(HTMLType, []byte(`<div id="active-account">  x  </div>`))
	test.Error(t, err)
	test.String(t, string(b), `<div id="active-account">  x  </div>`, "must not minify when disabled")
}

func TestOutputMinify(t *testing.T) {
	o := NewOutput(true, 0)
	b, err := o.Bytes(HTMLType, []byte(`<div id="active-account">  x  </div>`))
	test.Error(t, err)
	test.String(t, string(b), `<div id=active-account>x</div>`)

	b, err = o.Bytes(SVGType, []byte(`<svg xmlns="http://www.w3.org/2000/svg">  <rect x="1.50"/>  </svg>`))
	test.Error(t, err)
	test.That(t, strings.Contains(string(b), "<rect"), string(b))
	test.That(t, !strings.Contains(string(b), "  "), "whitespace must be removed", string(b))
}

func TestOutputUnknown(t *testing.T) {
	o := NewOutput(true, 0)
	b, err := o.Bytes(TextType, []byte("  alice@example.org  "))
	test.Error(t, err)
	test.String(t, string(b), "  alice@example.org  ", "media types without minifier must be copied")
}

func TestOutputError(t *testing.T) {
	o := NewOutput(false, 0)
	err := o.Write(HTMLType, test.NewErrorWriter(0), []byte("x"))
	test.That(t, err != nil, "must return write error")

	w := &bytes.Buffer{}
	test.Error(t, o.Write(SessionType, w, []byte("accounts: []\n")))
	test.String(t, w.String(), "accounts: []\n")
}
