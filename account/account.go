// Package account renders the active account of the plugin together with a selector over all configured accounts.
//
// The view is presentational: it reads the active account and the account list and forwards a selection to a
// callback, it never changes either of them.
package account

import (
	"strconv"
)

// NoAccountKey is the message key of the placeholder shown when no account is active.
const NoAccountKey = "message.noAccount"

// Title is the label of the account selector.
const Title = "Accounts"

// Account is a user account on an XMPP server.
type Account struct {
	Username string `yaml:"username" json:"username" validate:"required"`
	Domain   string `yaml:"domain" json:"domain" validate:"required"`
}

// WellFormed returns true if both username and domain are set. A nil account is not well-formed.
func (a *Account) WellFormed() bool {
	return a != nil && a.Username != "" && a.Domain != ""
}

// Identity returns the identity string username@domain.
func (a Account) Identity() string {
	return a.Username + "@" + a.Domain
}

// Localizer looks up translated messages by key.
type Localizer interface {
	Get(key string) string
}

// SelectFunc is called with the identity string of the selected account.
type SelectFunc func(identity string)

// MenuItem is an entry of the account selector.
type MenuItem struct {
	Key   string // unique among the items of a view
	Value string // identity string passed to the select callback
	Label string
	ID    string // bare username
}

// View is the rendered account display.
type View struct {
	Text   string // identity of the active account or the placeholder
	Active bool   // true if Text is an identity
	Title  string
	Items  []MenuItem

	onSelect SelectFunc
}

// Render returns the view of the active account and the selector over accounts.
// If active is nil or not well-formed, the text is the localized NoAccountKey message.
// Selecting an item of the returned view calls onSelect.
func Render(active *Account, accounts []Account, loc Localizer, onSelect SelectFunc) View {
	v := View{
		Title:    Title,
		Items:    make([]MenuItem, 0, len(accounts)),
		onSelect: onSelect,
	}
	if active.WellFormed() {
		v.Text = active.Identity()
		v.Active = true
	} else if loc != nil {
		v.Text = loc.Get(NoAccountKey)
	} else {
		v.Text = NoAccountKey
	}

	// keys of repeated identities must not collide with any configured identity
	used := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		used[a.Identity()] = true
	}
	seen := make(map[string]bool, len(accounts))
	for i, a := range accounts {
		identity := a.Identity()
		key := identity
		if seen[identity] {
			key = identity + "#" + strconv.Itoa(i)
			for n := len(accounts); used[key]; n++ {
				key = identity + "#" + strconv.Itoa(n)
			}
			used[key] = true
		}
		seen[identity] = true
		v.Items = append(v.Items, MenuItem{
			Key:   key,
			Value: identity,
			Label: identity,
			ID:    a.Username,
		})
	}
	return v
}

// Select calls the select callback once with identity if the selector has an item with that value.
// It returns false when there is no such item or no callback.
func (v View) Select(identity string) bool {
	if v.onSelect == nil {
		return false
	}
	for _, item := range v.Items {
		if item.Value == identity {
			v.onSelect(item.Value)
			return true
		}
	}
	return false
}

// Duplicates returns the identity strings that occur more than once in the selector, in order of their second occurrence.
func (v View) Duplicates() []string {
	var dups []string
	count := make(map[string]int, len(v.Items))
	for _, item := range v.Items {
		count[item.Value]++
		if count[item.Value] == 2 {
			dups = append(dups, item.Value)
		}
	}
	return dups
}
