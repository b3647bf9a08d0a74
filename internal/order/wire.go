package order

import (
	"database/sql"

	"go.uber.org/zap"

	"saajhamandi/internal/config"
	"saajhamandi/internal/order/controller"
	orderrepo "saajhamandi/internal/order/repository"
	"saajhamandi/internal/order/service"
	"saajhamandi/internal/order/usecase"
)

type Module struct {
	UseCase    *usecase.PlaceOrderUseCase
	Controller *controller.OrderController
}

// NewModule wires order placement. A nil db keeps orders in memory.
func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Module {
	var store usecase.OrderStore
	if db == nil {
		logger.Warn("database disabled, orders are kept in memory")
		store = orderrepo.NewMemoryOrderRepository()
	} else {
		store = service.NewOrderPlacementService(
			db,
			orderrepo.NewMySQLOrderRepository(db),
			orderrepo.NewMySQLOrderItemRepository(db),
			logger,
			cfg.Order.TxTimeout,
		)
	}

	uc := usecase.NewPlaceOrderUseCase(store, logger, cfg.Order.MaxRetryAttempts)

	return &Module{
		UseCase:    uc,
		Controller: controller.NewOrderController(uc, logger),
	}
}
