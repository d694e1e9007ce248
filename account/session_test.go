package account

import (
	"bytes"
	"errors"
	"testing"

	"github.com/tdewolff/test"
)

func TestReadSession(t *testing.T) {
	var sessionTests = []struct {
		name     string
		session  string
		active   *Account
		accounts []Account
	}{
		{"empty", ``, nil, nil},
		{"yaml", "active:\n  username: alice\n  domain: example.org\naccounts:\n  - username: alice\n    domain: example.org\n  - username: bob\n    domain: example.org\n",
			&Account{"alice", "example.org"}, []Account{{"alice", "example.org"}, {"bob", "example.org"}}},
		{"json", `{"accounts": [{"username": "bob", "domain": "example.org"}]}`, nil, []Account{{"bob", "example.org"}}},
		{"null active", "active: null\n", nil, nil},
		{"incomplete active", "active:\n  username: alice\n", &Account{Username: "alice"}, nil},
		{"malformed active", "active: alice\n", nil, nil},
	}
	for _, tt := range sessionTests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ReadSession(bytes.NewBufferString(tt.session))
			test.Error(t, err)
			test.T(t, s.Active, tt.active)
			test.T(t, s.Accounts, tt.accounts)
		})
	}
}

func TestReadSessionError(t *testing.T) {
	_, err := ReadSession(bytes.NewBufferString("accounts:\n  - username: alice\n"))
	test.That(t, errors.Is(err, ErrInvalidAccount), "must return ErrInvalidAccount, got", err)

	_, err = ReadSession(bytes.NewBufferString("accounts: [\n"))
	test.That(t, err != nil, "must return syntax error")
}

func TestSessionSetActive(t *testing.T) {
	s := &Session{Accounts: []Account{{"alice", "example.org"}, {"bob", "example.org"}}}
	test.Error(t, s.SetActive("bob@example.org"))
	test.T(t, s.Active, &Account{"bob", "example.org"})

	err := s.SetActive("carol@example.org")
	test.That(t, errors.Is(err, ErrUnknownAccount), "must return ErrUnknownAccount, got", err)
	test.T(t, s.Active, &Account{"bob", "example.org"})
}

func TestSessionView(t *testing.T) {
	s := &Session{Accounts: []Account{{"alice", "example.org"}, {"bob", "example.org"}}}
	v := s.View(loc)
	test.String(t, v.Text, "No account")

	test.That(t, v.Select("alice@example.org"))
	test.T(t, s.Active, &Account{"alice", "example.org"})
	test.String(t, v.Text, "No account", "a rendered view does not change")
	test.String(t, s.View(loc).Text, "alice@example.org")
}

func TestSessionWrite(t *testing.T) {
	s := &Session{Active: &Account{"bob", "example.org"}, Accounts: []Account{{"alice", "example.org"}, {"bob", "example.org"}}}
	w := &bytes.Buffer{}
	test.Error(t, s.Write(w))

	s2, err := ReadSession(w)
	test.Error(t, err)
	test.T(t, s2, s)
}
