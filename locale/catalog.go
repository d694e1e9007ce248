// Package locale provides message catalogs for translated user interface text.
package locale

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog maps dotted message keys to translated messages. It is read-only once loaded.
type Catalog struct {
	messages map[string]string
}

// Default is the English catalog.
var Default = &Catalog{map[string]string{
	"message.noAccount": "No account active",
}}

// Load decodes a YAML catalog from r. Nested maps are flattened into dotted keys, so that
//
//	message:
//	  noAccount: Kein Konto
//
// defines the key message.noAccount.
func Load(r io.Reader) (*Catalog, error) {
	tree := map[string]interface{}{}
	if err := yaml.NewDecoder(r).Decode(&tree); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{map[string]string{}}
	if err := c.flatten("", tree); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) flatten(prefix string, tree map[string]interface{}) error {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]interface{}:
			if err := c.flatten(key, v); err != nil {
				return err
			}
		case string:
			c.messages[key] = v
		case nil:
			return fmt.Errorf("message %s is empty", key)
		case []interface{}:
			return fmt.Errorf("message %s must be a string", key)
		default:
			c.messages[key] = fmt.Sprint(v)
		}
	}
	return nil
}

// Get returns the message for key, or the key itself when the catalog has no such message.
func (c *Catalog) Get(key string) string {
	if c != nil {
		if msg, ok := c.messages[key]; ok {
			return msg
		}
	}
	return key
}

// Len returns the number of messages.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.messages)
}

// Keys returns the sorted message keys.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, c.Len())
	if c != nil {
		for k := range c.messages {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Merge returns a catalog with the messages of c, overridden by those of other.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	m := &Catalog{make(map[string]string, c.Len()+other.Len())}
	for _, src := range []*Catalog{c, other} {
		if src == nil {
			continue
		}
		for k, v := range src.messages {
			m.messages[k] = v
		}
	}
	return m
}
