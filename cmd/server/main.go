// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/develop-ac/requisicao-backend/internal/api"
	"github.com/develop-ac/requisicao-backend/internal/cache"
	"github.com/develop-ac/requisicao-backend/internal/config"
	"github.com/develop-ac/requisicao-backend/internal/domain"
	"github.com/develop-ac/requisicao-backend/internal/repository/postgres"
	"github.com/develop-ac/requisicao-backend/internal/requisicao"
	"github.com/develop-ac/requisicao-backend/internal/service"
	"github.com/develop-ac/requisicao-backend/internal/storage"
	"github.com/develop-ac/requisicao-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	requisicaoCache, err := cache.NewRequisicaoCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		requisicaoCache = cache.NewNoopRequisicaoCache()
	}

	archive, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Object storage unavailable, exports will not be archived")
		archive = storage.NewNoopStorage()
	}

	clock, err := requisicao.ClockIn(cfg.Requisicao.Timezone)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Invalid REQUISICAO_TIMEZONE")
	}

	// Initialize services
	engine := requisicao.NewEngine(
		postgres.NewStockRepository(db, domain.DefaultBranches),
		postgres.NewSalesRepository(db),
		requisicao.WithBranches(domain.DefaultBranches),
		requisicao.WithMaxProducts(cfg.Requisicao.MaxProducts),
		requisicao.WithConcurrency(cfg.Requisicao.Concurrency),
		requisicao.WithClock(clock),
	)
	requisicaoService := service.NewRequisicaoService(engine, requisicaoCache, archive)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{RequisicaoService: requisicaoService}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
