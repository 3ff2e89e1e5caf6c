package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/koseha/ryg-web-sub000/internal/infrastructure/di"
	"github.com/koseha/ryg-web-sub000/internal/interface/router"
	"github.com/koseha/ryg-web-sub000/internal/interface/server"
	"github.com/koseha/ryg-web-sub000/pkg/config"
	"github.com/koseha/ryg-web-sub000/pkg/logger"
)

// @title RYG League API
// @version 1.0
// @description リーグのメンバー管理・参加申請・権限管理の REST API
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logger setup
	if err := logger.Setup(logger.FromLevelAndFormat(cfg.Log.Level, cfg.Log.Format)); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize DI Container
	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := container.Close(); err != nil {
			slog.Error("failed to close container", "error", err)
		}
	}()

	handlers := di.NewHandlers(container)
	middlewares := di.NewMiddlewares(container)

	// Setup Server
	serverConfig := server.DefaultConfig()
	serverConfig.Port = cfg.Server.Port
	serverConfig.Debug = cfg.Server.Debug
	srv := server.NewServer(serverConfig)
	srv.UseDefaultMiddlewares(middlewares.CORS)

	router.NewRouter(srv.Echo(), handlers, middlewares).Setup()

	// Start background workers
	workerMgr := di.NewWorkerManager(container)
	workerMgr.Start()

	// Start server
	slog.Info("starting server", "addr", srv.Address())
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	// Graceful shutdown
	select {
	case err := <-serverErr:
		workerMgr.Shutdown(10 * time.Second)
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	workerMgr.Shutdown(10 * time.Second)

	if err := srv.Shutdown(context.Background()); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
	return nil
}
