package product

import (
	"context"

	"saajhamandi/internal/domain"
)

type BrowseUseCase interface {
	ListProducts(ctx context.Context, category string) (*ListProductsResponse, error)
	GetProduct(ctx context.Context, name string) (*ProductDTO, error)
}

type Service interface {
	ListByCategory(ctx context.Context, category string) ([]domain.CatalogEntry, error)
	FindByName(ctx context.Context, name string) (domain.CatalogEntry, error)
}

// Repository is the read side of the product catalog.
type Repository interface {
	Entries() []domain.CatalogEntry
	ByCategory(category string) []domain.CatalogEntry
	Lookup(name string) (domain.CatalogEntry, bool)
	FindByID(id int) (domain.CatalogEntry, bool)
}
