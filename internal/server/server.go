package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/book-collections/internal/config"
	"github.com/MKhiriev/book-collections/internal/handler"
	"github.com/MKhiriev/book-collections/internal/logger"
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer

	httpAddress     string
	grpcAddress     string
	shutdownTimeout time.Duration

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		httpAddress:     cfg.HTTPAddress,
		grpcAddress:     cfg.GRPCAddress,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// RunServer binds every configured listener before serving, so an
// unavailable address fails fast.
func (s *server) RunServer(ctx context.Context) error {
	var httpListener, grpcListener net.Listener
	var err error

	if s.httpServer != nil {
		if httpListener, err = net.Listen("tcp", s.httpAddress); err != nil {
			return fmt.Errorf("listen HTTP %s: %w", s.httpAddress, err)
		}
	}
	if s.gRPCServer != nil {
		if grpcListener, err = net.Listen("tcp", s.grpcAddress); err != nil {
			if httpListener != nil {
				_ = httpListener.Close()
			}
			return fmt.Errorf("listen gRPC %s: %w", s.grpcAddress, err)
		}
	}

	g, gCtx := errgroup.WithContext(ctx)

	if s.httpServer != nil {
		g.Go(func() error { return s.httpServer.run(httpListener) })
	}
	if s.gRPCServer != nil {
		g.Go(func() error { return s.gRPCServer.run(gCtx, grpcListener) })
	}

	// listen for stop signals or a failed transport
	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		return s.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	var errs []error

	// finish HTTP server
	if s.httpServer != nil {
		errs = append(errs, s.httpServer.shutdown(ctx))
	}

	// finish gRPC server
	if s.gRPCServer != nil {
		s.gRPCServer.shutdown(ctx)
	}

	return errors.Join(errs...)
}
