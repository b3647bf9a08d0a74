package product

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"saajhamandi/internal/domain"
	"saajhamandi/internal/voiceorder/service"
)

type browseUseCase struct {
	service Service
	pricer  *service.Pricer
}

func NewBrowseUseCase(svc Service) BrowseUseCase {
	return &browseUseCase{service: svc, pricer: service.NewPricer()}
}

func (uc *browseUseCase) ListProducts(ctx context.Context, category string) (*ListProductsResponse, error) {
	entries, err := uc.service.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	titler := cases.Title(language.English)
	products := make([]ProductDTO, 0, len(entries))
	for _, e := range entries {
		products = append(products, uc.toDTO(titler, e))
	}

	return &ListProductsResponse{
		Category: category,
		Products: products,
	}, nil
}

func (uc *browseUseCase) GetProduct(ctx context.Context, name string) (*ProductDTO, error) {
	entry, err := uc.service.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	p := uc.toDTO(cases.Title(language.English), entry)
	return &p, nil
}

func (uc *browseUseCase) toDTO(titler cases.Caser, e domain.CatalogEntry) ProductDTO {
	variants := e.Variants
	if variants == nil {
		variants = []string{}
	}
	sizes := e.PackageSizes
	if sizes == nil {
		sizes = []string{}
	}

	return ProductDTO{
		ID:           e.ID,
		Name:         e.Name,
		DisplayName:  titler.String(e.Name),
		Variants:     variants,
		Category:     e.Category,
		Price:        e.UnitPrice,
		PriceLabel:   fmt.Sprintf("%s / %s", uc.pricer.FormatPrice(e.UnitPrice), e.BaseUnit),
		Unit:         string(e.BaseUnit),
		PackageSizes: sizes,
	}
}
