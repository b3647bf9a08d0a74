// Package catalog holds the read-only product table used to recognize and
// price spoken orders. A Catalog is built once at startup and never mutated,
// so it can be shared by any number of goroutines.
package catalog

import (
	"fmt"
	"strings"

	"saajhamandi/internal/domain"
	apperrors "saajhamandi/internal/errors"
)

// Term is one recognizable surface form (a canonical name or a variant) and
// the entry it belongs to.
type Term struct {
	Text  string
	Entry domain.CatalogEntry
}

type Catalog struct {
	entries    []domain.CatalogEntry
	byName     map[string]int
	byID       map[int]int
	vocabulary []Term
}

// New validates entries and builds the lookup tables. Duplicate names or
// variants (case-insensitive), duplicate ids, non-positive prices and unknown
// base units are configuration errors.
func New(entries []domain.CatalogEntry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, apperrors.NewConfigError("catalog", "no entries")
	}

	c := &Catalog{
		entries: make([]domain.CatalogEntry, 0, len(entries)),
		byName:  make(map[string]int),
		byID:    make(map[int]int, len(entries)),
	}

	for i, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return nil, apperrors.NewConfigError("catalog", fmt.Sprintf("entry %d has no name", i))
		}
		if e.UnitPrice <= 0 {
			return nil, apperrors.NewConfigError("catalog", fmt.Sprintf("entry %q has non-positive unit price %v", e.Name, e.UnitPrice))
		}
		if !e.BaseUnit.Valid() {
			return nil, apperrors.NewConfigError("catalog", fmt.Sprintf("entry %q has unknown base unit %q", e.Name, e.BaseUnit))
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, apperrors.NewConfigError("catalog", fmt.Sprintf("duplicate id %d", e.ID))
		}

		e.Variants = append([]string(nil), e.Variants...)
		e.PackageSizes = append([]string(nil), e.PackageSizes...)

		idx := len(c.entries)
		for _, name := range e.Names() {
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, apperrors.NewConfigError("catalog", fmt.Sprintf("entry %q has an empty variant", e.Name))
			}
			if prev, dup := c.byName[name]; dup {
				owner := e.Name
				if prev < len(c.entries) {
					owner = c.entries[prev].Name
				}
				return nil, apperrors.NewConfigError("catalog", fmt.Sprintf("name %q of %q already used by %q", name, e.Name, owner))
			}
			c.byName[name] = idx
		}

		c.byID[e.ID] = idx
		c.entries = append(c.entries, e)
	}

	for _, e := range c.entries {
		for _, name := range e.Names() {
			c.vocabulary = append(c.vocabulary, Term{Text: strings.TrimSpace(name), Entry: e})
		}
	}

	return c, nil
}

// MustNew is New for tables known to be valid, such as Default.
func MustNew(entries []domain.CatalogEntry) *Catalog {
	c, err := New(entries)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup resolves a canonical name or variant, ignoring case and surrounding
// whitespace.
func (c *Catalog) Lookup(name string) (domain.CatalogEntry, bool) {
	idx, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return domain.CatalogEntry{}, false
	}
	return c.entries[idx], true
}

func (c *Catalog) FindByID(id int) (domain.CatalogEntry, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.CatalogEntry{}, false
	}
	return c.entries[idx], true
}

// Vocabulary returns every recognizable term in catalog order: each entry's
// canonical name first, then its variants.
func (c *Catalog) Vocabulary() []Term {
	out := make([]Term, len(c.vocabulary))
	copy(out, c.vocabulary)
	return out
}

// Entries returns the entries in load order.
func (c *Catalog) Entries() []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) ByCategory(category string) []domain.CatalogEntry {
	var out []domain.CatalogEntry
	for _, e := range c.entries {
		if strings.EqualFold(e.Category, category) {
			out = append(out, e)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.entries)
}
