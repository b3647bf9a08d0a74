package voiceorder

import (
	"go.uber.org/zap"

	"saajhamandi/internal/catalog"
	"saajhamandi/internal/config"
	"saajhamandi/internal/voiceorder/controller"
	"saajhamandi/internal/voiceorder/repository"
	"saajhamandi/internal/voiceorder/service"
	"saajhamandi/internal/voiceorder/usecase"
)

type Module struct {
	Sessions   *repository.MemorySessionRepository
	Controller *controller.VoiceOrderController
}

func NewModule(c *catalog.Catalog, orders usecase.OrderPlacer, cfg *config.Config, logger *zap.Logger) *Module {
	simulator := service.NewSimulator(c, cfg.Voice.SimulationSeed)
	pipeline := service.NewPipeline(c, simulator, logger)
	sessions := repository.NewMemorySessionRepository(cfg.Session.TTL)

	uc := usecase.NewVoiceOrderUseCase(sessions, pipeline, orders, cfg.Voice.MaxRecording, logger)

	return &Module{
		Sessions:   sessions,
		Controller: controller.NewVoiceOrderController(uc, cfg.Voice.MaxRecording, logger),
	}
}
