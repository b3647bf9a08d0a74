package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"saajhamandi/internal/catalog"
	"saajhamandi/internal/commons"
	"saajhamandi/internal/config"
	"saajhamandi/internal/infrastructure/logger"
	"saajhamandi/internal/infrastructure/mysql"
	"saajhamandi/internal/order"
	"saajhamandi/internal/product"
	"saajhamandi/internal/server"
	"saajhamandi/internal/voiceorder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		zapLogger.Fatal("loading catalog", zap.Error(err))
	}
	zapLogger.Info("catalog loaded", zap.Int("entries", cat.Len()), zap.String("file", cfg.Catalog.File))

	var db *sql.DB
	if cfg.Database.Enabled {
		db, err = mysql.NewConnection(ctx, cfg.Database)
		if err != nil {
			zapLogger.Fatal("connecting to database", zap.Error(err))
		}
		defer db.Close()
		zapLogger.Info("database connected")
	}

	orderModule := order.NewModule(db, cfg, zapLogger)
	voiceModule := voiceorder.NewModule(cat, orderModule.UseCase, cfg, zapLogger)
	productCtrl := product.NewModule(cat, zapLogger)

	go voiceModule.Sessions.RunJanitor(ctx, cfg.Session.PurgeInterval, func(removed int) {
		zapLogger.Info("expired voice sessions purged", zap.Int("removed", removed))
	})

	var checks []server.HealthCheck
	if db != nil {
		checks = append(checks, server.HealthCheck{Name: "database", Check: db.PingContext})
	}

	var sessionMiddlewares []func(http.Handler) http.Handler
	if cfg.RateLimit.RPS > 0 {
		limiter := server.NewClientRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, zapLogger)
		sessionMiddlewares = append(sessionMiddlewares, limiter.Middleware)
	}

	router := server.NewRouter(server.Handlers{
		Products:    productCtrl,
		VoiceOrders: voiceModule.Controller,
		Orders:      orderModule.Controller,
		Health:      server.NewHealthHandler(checks...),
	}, sessionMiddlewares, server.StandardMiddlewares(zapLogger)...)

	srv := server.New(cfg.Server.Port, router, zapLogger)
	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}

	zapLogger.Info("server stopped gracefully")
}

func loadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.File == "" {
		return catalog.Default(), nil
	}
	entries, err := commons.LoadCatalogFile(cfg.File)
	if err != nil {
		return nil, err
	}
	return catalog.New(entries)
}
