package main

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/tdewolff/test"
)

func TestOpenFiles(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "out", "session.html")

	w, err := openOutputFile(filename)
	test.Error(t, err)
	_, err = w.Write([]byte("alice@example.org"))
	test.Error(t, err)
	test.Error(t, w.Close())

	r, err := openInputFile(filename)
	test.Error(t, err)
	b, err := io.ReadAll(r)
	test.Error(t, err)
	test.Error(t, r.Close())
	test.String(t, string(b), "alice@example.org")

	same, err := SameFile(filename, filepath.Join(dir, "out", ".", "session.html"))
	test.Error(t, err)
	test.That(t, same)

	_, err = openInputFile(filepath.Join(dir, "missing.yaml"))
	test.That(t, errors.Is(err, fs.ErrNotExist), "must return not exist error, got", err)
}

func TestCountWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := &countWriter{w: buf}
	_, _ = w.Write([]byte("alice"))
	_, _ = w.Write([]byte("@example.org"))
	test.T(t, w.n, 17)
	test.String(t, buf.String(), "alice@example.org")
}
