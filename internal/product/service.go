package product

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"saajhamandi/internal/domain"
	apperrors "saajhamandi/internal/errors"
)

type productService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &productService{repo: repo}
}

// ListByCategory returns every product when category is empty.
func (s *productService) ListByCategory(ctx context.Context, category string) ([]domain.CatalogEntry, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return s.repo.Entries(), nil
	}
	return s.repo.ByCategory(category), nil
}

// FindByName resolves a canonical name, a variant or a numeric product id.
func (s *productService) FindByName(ctx context.Context, name string) (domain.CatalogEntry, error) {
	if id, err := strconv.Atoi(name); err == nil {
		entry, ok := s.repo.FindByID(id)
		if !ok {
			return domain.CatalogEntry{}, apperrors.NewNotFoundError(fmt.Sprintf("product %d not found", id))
		}
		return entry, nil
	}

	entry, ok := s.repo.Lookup(name)
	if !ok {
		return domain.CatalogEntry{}, apperrors.NewNotFoundError(fmt.Sprintf("product %q not found", name))
	}
	return entry, nil
}
