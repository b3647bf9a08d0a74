package service

import (
	"saajhamandi/internal/catalog"
	"saajhamandi/internal/domain"
)

type Resolver struct {
	catalog *catalog.Catalog
}

func NewResolver(c *catalog.Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// Resolve maps a spoken name to its catalog entry by exact, case-insensitive
// match on the canonical name or any variant.
func (r *Resolver) Resolve(rawName string) (domain.CatalogEntry, bool) {
	return r.catalog.Lookup(rawName)
}

// DefaultQuantity is the quantity assumed when none was spoken: one base unit.
func DefaultQuantity(entry domain.CatalogEntry) string {
	switch entry.BaseUnit {
	case domain.UnitKg:
		return "1 kg"
	case domain.UnitLiter:
		return "1 liter"
	case domain.UnitDozen:
		return "1 dozen"
	default:
		return "1 " + string(entry.BaseUnit)
	}
}
