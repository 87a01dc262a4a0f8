// Package catalog holds the process-wide merchant alias lookup. The
// catalog is immutable once built; reload constructs a replacement and
// swaps it atomically, so unsynchronized concurrent reads are safe.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"finlens/internal/models"
	"finlens/internal/narration"
)

//go:embed data/merchants.json
var embeddedDataset []byte

// Entry maps a known merchant to its canonical name and category.
type Entry struct {
	CanonicalName string   `json:"canonical_name"`
	CategoryID    string   `json:"category_id"`
	SubcategoryID string   `json:"subcategory_id"`
	Aliases       []string `json:"aliases"`
}

// Match is a successful catalog lookup over a token span.
type Match struct {
	Entry      *Entry
	TokenStart int // index of the first matched token
	TokenEnd   int // exclusive
}

// Catalog is the immutable alias index. Lookups are O(1) amortized per
// token via the prebuilt alias map; this is the hot path, running once
// per transaction during classification and bulk reclassification.
type Catalog struct {
	entries []Entry
	aliases map[string]*Entry
}

type dataset struct {
	Merchants []Entry `json:"merchants"`
}

// Load builds a catalog from the file at path, or from the embedded
// dataset when path is empty. A load failure at startup is fatal for
// the caller: the process must not classify against a partial catalog.
func Load(path string) (*Catalog, error) {
	raw := embeddedDataset
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read merchant dataset: %w", err)
		}
		raw = b
	}

	var ds dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse merchant dataset: %w", err)
	}
	if len(ds.Merchants) == 0 {
		return nil, fmt.Errorf("merchant dataset is empty")
	}

	c := &Catalog{
		entries: ds.Merchants,
		aliases: make(map[string]*Entry, len(ds.Merchants)*2),
	}
	for i := range c.entries {
		e := &c.entries[i]
		if models.CategoryByID(e.CategoryID) == nil {
			return nil, fmt.Errorf("merchant %q references unknown category %q", e.CanonicalName, e.CategoryID)
		}
		for _, alias := range e.Aliases {
			key := NormalizeAlias(alias)
			if key == "" {
				return nil, fmt.Errorf("merchant %q has an empty alias", e.CanonicalName)
			}
			c.aliases[key] = e
		}
	}
	return c, nil
}

// NormalizeAlias lowercases and strips non-alphanumerics, so catalog
// keys match tokens regardless of the bank's delimiter noise.
func NormalizeAlias(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// Lookup scans the token sequence for cataloged aliases, trying
// adjacent token pairs (two-word merchant names) and single tokens.
// The longest contiguous span wins; equal lengths resolve to the
// earlier occurrence.
func (c *Catalog) Lookup(tokens []narration.Span) *Match {
	for i := 0; i+1 < len(tokens); i++ {
		key := NormalizeAlias(tokens[i].Text) + NormalizeAlias(tokens[i+1].Text)
		if e, ok := c.aliases[key]; ok {
			return &Match{Entry: e, TokenStart: i, TokenEnd: i + 2}
		}
	}
	for i := range tokens {
		if e, ok := c.aliases[NormalizeAlias(tokens[i].Text)]; ok {
			return &Match{Entry: e, TokenStart: i, TokenEnd: i + 1}
		}
	}
	return nil
}

// ContainsAlias reports whether the normalized form of s is a known
// merchant alias. The entity detector uses this to keep business
// names out of personal-name findings.
func (c *Catalog) ContainsAlias(s string) bool {
	_, ok := c.aliases[NormalizeAlias(s)]
	return ok
}

// Size returns the number of merchant entries.
func (c *Catalog) Size() int {
	return len(c.entries)
}
