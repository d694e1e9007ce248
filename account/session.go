package account

import (
	"errors"
	"fmt"
	"io"

	validator "github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrUnknownAccount is returned when selecting an account that is not configured.
var ErrUnknownAccount = errors.New("unknown account")

// ErrInvalidAccount is returned when a configured account lacks a username or domain.
var ErrInvalidAccount = errors.New("invalid account")

// validate caches struct info and is safe for concurrent use.
var validate = validator.New()

// Session holds the configured accounts and the active one. It owns the state the View only displays.
// A Session is not safe for concurrent use.
type Session struct {
	Active   *Account  `yaml:"active,omitempty"`
	Accounts []Account `yaml:"accounts"`
}

type sessionFile struct {
	Active   yaml.Node `yaml:"active"`
	Accounts []Account `yaml:"accounts"`
}

// ReadSession decodes a YAML (or JSON) session from r.
// Every configured account must have a username and domain. An active account that cannot be decoded is
// dropped, one that is incomplete is kept and displays as no account.
func ReadSession(r io.Reader) (*Session, error) {
	f := sessionFile{}
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	s := &Session{Accounts: f.Accounts}
	if f.Active.Kind != 0 && f.Active.Tag != "!!null" {
		active := &Account{}
		if err := f.Active.Decode(active); err == nil {
			s.Active = active
		}
	}
	for i := range s.Accounts {
		if err := validate.Struct(s.Accounts[i]); err != nil {
			return nil, fmt.Errorf("%w at index %d: %v", ErrInvalidAccount, i, err)
		}
	}
	return s, nil
}

// Write encodes the session as YAML to w.
func (s *Session) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// SetActive makes the first configured account with the given identity string the active account.
func (s *Session) SetActive(identity string) error {
	for i := range s.Accounts {
		if s.Accounts[i].Identity() == identity {
			active := s.Accounts[i]
			s.Active = &active
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownAccount, identity)
}

// View renders the session, selecting an item changes the active account of the session.
func (s *Session) View(loc Localizer) View {
	return Render(s.Active, s.Accounts, loc, func(identity string) {
		// items only hold configured identities
		_ = s.SetActive(identity)
	})
}
