package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	myGRPC "github.com/MKhiriev/book-collections/internal/handler/grpc"
	"github.com/MKhiriev/book-collections/internal/logger"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server *grpc.Server

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer()
	handler.Register(server)
	reflection.Register(server)

	return &grpcServer{
		handler: handler,
		server:  server,
		logger:  logger,
	}
}

func (g *grpcServer) run(ctx context.Context, listener net.Listener) error {
	g.logger.Info().Str("address", listener.Addr().String()).Msg("gRPC server listening")
	g.handler.Refresh(ctx)

	if err := g.server.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC server Serve: %w", err)
	}
	return nil
}

// shutdown stops accepting calls and waits for in-flight ones until ctx is
// done, then closes the remaining connections.
func (g *grpcServer) shutdown(ctx context.Context) {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.handler.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		g.server.Stop()
	}
}
