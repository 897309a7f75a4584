package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ariebrainware/clinic-records/config"
	"github.com/ariebrainware/clinic-records/endpoint"
	"github.com/ariebrainware/clinic-records/metrics"
	"github.com/ariebrainware/clinic-records/model"
	"github.com/ariebrainware/clinic-records/util"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	logger, err := util.InitLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := config.ConnectDatabase()
	if err != nil {
		logger.Fatal("Error connecting to database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if err := model.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	m := metrics.New(logger)
	if err := m.RegisterGormCallbacks(db); err != nil {
		logger.Warn("Failed to register database metrics callbacks", zap.Error(err))
	}
	stopStats := m.StartDBStatsCollector(db, 15*time.Second)
	defer close(stopStats)

	util.SetAuditLoggerDB(db)
	endpoint.SetMetrics(m)

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)
	router := endpoint.NewRouter(db, m, cfg.AppName)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started",
			zap.String("app", cfg.AppName),
			zap.String("env", cfg.AppEnv),
			zap.String("address", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("error starting server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("Server exited")
}
