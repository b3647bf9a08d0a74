package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"saajhamandi/internal/domain"
)

type catalogFile struct {
	Products []catalogFileEntry `yaml:"products"`
}

type catalogFileEntry struct {
	ID           int      `yaml:"id"`
	Name         string   `yaml:"name"`
	Variants     []string `yaml:"variants"`
	Category     string   `yaml:"category"`
	Price        float64  `yaml:"price"`
	Unit         string   `yaml:"unit"`
	PackageSizes []string `yaml:"packageSizes"`
}

// LoadCatalogFile reads a YAML product table. Validation of the entries is
// left to catalog.New.
func LoadCatalogFile(path string) ([]domain.CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	return ParseCatalog(data)
}

func ParseCatalog(data []byte) ([]domain.CatalogEntry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	entries := make([]domain.CatalogEntry, 0, len(file.Products))
	for _, p := range file.Products {
		entries = append(entries, domain.CatalogEntry{
			ID:           p.ID,
			Name:         p.Name,
			Variants:     p.Variants,
			Category:     p.Category,
			UnitPrice:    p.Price,
			BaseUnit:     domain.BaseUnit(p.Unit),
			PackageSizes: p.PackageSizes,
		})
	}

	return entries, nil
}
