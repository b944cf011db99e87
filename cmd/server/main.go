package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/book-collections/internal/config"
	"github.com/MKhiriev/book-collections/internal/handler"
	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/server"
	"github.com/MKhiriev/book-collections/internal/service"
	"github.com/MKhiriev/book-collections/internal/store"
	"github.com/MKhiriev/book-collections/internal/workers"
	"github.com/MKhiriev/book-collections/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("book-collections-server", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("book-collections-server", cfg.App.LogLevel)
	if buildInfo.HasVersion() && cfg.App.Version == "dev" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	if err = run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(cfg *config.StructuredConfig, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	bgWorkers := workers.NewWorkers(storages, cfg.Workers, log)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.RunServer(gCtx) })
	g.Go(func() error { return bgWorkers.Run(gCtx) })

	log.Info().
		Str("http", cfg.Server.HTTPAddress).
		Str("grpc", cfg.Server.GRPCAddress).
		Int("workers", bgWorkers.Len()).
		Msg("book-collections server started")

	return g.Wait()
}
