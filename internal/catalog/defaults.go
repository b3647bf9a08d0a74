package catalog

import "saajhamandi/internal/domain"

// DefaultEntries is the built-in product table used when no catalog file is
// configured. Prices are in rupees per base unit.
func DefaultEntries() []domain.CatalogEntry {
	return []domain.CatalogEntry{
		{ID: 1, Name: "tomato", Variants: []string{"tomatoes"}, Category: "vegetables", UnitPrice: 50, BaseUnit: domain.UnitKg, PackageSizes: []string{"250g", "500g", "1kg", "2kg"}},
		{ID: 2, Name: "milk", Category: "dairy", UnitPrice: 60, BaseUnit: domain.UnitLiter, PackageSizes: []string{"500ml", "1 liter", "2 liters"}},
		{ID: 3, Name: "banana", Variants: []string{"bananas"}, Category: "fruits", UnitPrice: 30, BaseUnit: domain.UnitDozen, PackageSizes: []string{"1 piece", "half dozen", "1 dozen"}},
		{ID: 4, Name: "bread", Category: "bakery", UnitPrice: 40, BaseUnit: domain.UnitLoaf, PackageSizes: []string{"1 loaf", "2 loaves"}},
		{ID: 5, Name: "apple", Variants: []string{"apples"}, Category: "fruits", UnitPrice: 120, BaseUnit: domain.UnitKg, PackageSizes: []string{"500g", "1kg", "2kg"}},
		{ID: 6, Name: "potato", Variants: []string{"potatoes"}, Category: "vegetables", UnitPrice: 35, BaseUnit: domain.UnitKg, PackageSizes: []string{"1kg", "2kg", "5kg"}},
		{ID: 7, Name: "onion", Variants: []string{"onions"}, Category: "vegetables", UnitPrice: 25, BaseUnit: domain.UnitKg, PackageSizes: []string{"500g", "1kg", "2kg"}},
		{ID: 8, Name: "rice", Category: "grains", UnitPrice: 80, BaseUnit: domain.UnitKg, PackageSizes: []string{"1kg", "2kg", "5kg"}},
		{ID: 9, Name: "sugar", Category: "groceries", UnitPrice: 55, BaseUnit: domain.UnitKg, PackageSizes: []string{"500g", "1kg", "2kg"}},
		{ID: 10, Name: "flour", Category: "groceries", UnitPrice: 45, BaseUnit: domain.UnitKg, PackageSizes: []string{"500g", "1kg", "2kg"}},
		{ID: 11, Name: "egg", Variants: []string{"eggs"}, Category: "dairy", UnitPrice: 70, BaseUnit: domain.UnitDozen, PackageSizes: []string{"6 pieces", "12 pieces"}},
		{ID: 12, Name: "chicken", Category: "meat", UnitPrice: 200, BaseUnit: domain.UnitKg, PackageSizes: []string{"500g", "1kg", "2kg"}},
		{ID: 13, Name: "fish", Category: "seafood", UnitPrice: 180, BaseUnit: domain.UnitKg, PackageSizes: []string{"500g", "1kg"}},
		{ID: 14, Name: "paneer", Category: "dairy", UnitPrice: 150, BaseUnit: domain.UnitKg, PackageSizes: []string{"200g", "500g", "1kg"}},
		{ID: 15, Name: "curd", Variants: []string{"yogurt"}, Category: "dairy", UnitPrice: 40, BaseUnit: domain.UnitCup, PackageSizes: []string{"1 cup", "2 cups"}},
		{ID: 16, Name: "butter", Category: "dairy", UnitPrice: 90, BaseUnit: domain.UnitKg, PackageSizes: []string{"100g", "200g", "500g"}},
		{ID: 17, Name: "cheese", Category: "dairy", UnitPrice: 110, BaseUnit: domain.UnitPack, PackageSizes: []string{"1 pack", "2 packs"}},
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return MustNew(DefaultEntries())
}
