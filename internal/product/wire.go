package product

import (
	"go.uber.org/zap"

	"saajhamandi/internal/catalog"
)

func NewModule(c *catalog.Catalog, logger *zap.Logger) *Controller {
	svc := NewService(c)
	uc := NewBrowseUseCase(svc)
	return NewController(uc, logger)
}
