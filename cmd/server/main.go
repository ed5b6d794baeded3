package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"customers_backend/internal/config"
	"customers_backend/internal/database"
	"customers_backend/internal/repositories"
	"customers_backend/internal/router"
	"customers_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/heptiolabs/healthcheck"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.MustLoad()

	utils.InitLogger(cfg.Level, cfg.Format)
	if cfg.Format == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	opts := router.Options{AllowedOrigins: cfg.CORSAllowedOrigins}

	var customerRepo repositories.CustomerRepository
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		customerRepo = repositories.NewMemoryCustomerRepository()
		utils.LogInfo("Using in-memory customer store")
	default:
		db, err := database.Open(ctx, cfg.PostgresConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()

		if cfg.ApplySchema {
			if err := database.ApplySchema(ctx, db); err != nil {
				log.Fatal().Err(err).Msg("Failed to apply database schema")
			}
		}
		customerRepo = repositories.NewCustomerRepository(db)
		opts.ReadinessChecks = map[string]healthcheck.Check{
			"database": healthcheck.DatabasePingCheck(db.DB, time.Second),
		}
	}

	engine := router.New(customerRepo, opts)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerConfig.Port,
		Handler: engine,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.ServerConfig.Port, "store": cfg.StoreDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	utils.LogInfo("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server forced to shut down")
	}
	utils.LogInfo("Server stopped")
}
