package domain

import "strings"

type BaseUnit string

const (
	UnitKg    BaseUnit = "kg"
	UnitLiter BaseUnit = "liter"
	UnitDozen BaseUnit = "dozen"
	UnitLoaf  BaseUnit = "loaf"
	UnitPack  BaseUnit = "pack"
	UnitCup   BaseUnit = "cup"
	UnitPiece BaseUnit = "piece"
)

func (u BaseUnit) Valid() bool {
	switch u {
	case UnitKg, UnitLiter, UnitDozen, UnitLoaf, UnitPack, UnitCup, UnitPiece:
		return true
	}
	return false
}

// CatalogEntry is one purchasable product. UnitPrice is denominated per one
// BaseUnit. Entries are loaded once at startup and never mutated.
type CatalogEntry struct {
	ID           int
	Name         string
	Variants     []string
	Category     string
	UnitPrice    float64
	BaseUnit     BaseUnit
	PackageSizes []string
}

// Names returns the canonical name followed by its variants, lower-cased.
func (e CatalogEntry) Names() []string {
	names := make([]string, 0, len(e.Variants)+1)
	names = append(names, strings.ToLower(e.Name))
	for _, v := range e.Variants {
		names = append(names, strings.ToLower(v))
	}
	return names
}
