package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/service"
)

// ServiceName is the health-checked service name. The empty name reports the
// overall server status and follows the same store check.
const ServiceName = "book-collections"

// Handler is the root gRPC transport handler.
//
// It serves the standard grpc.health.v1 service. The reported status follows
// the document store: SERVING while it answers pings, NOT_SERVING otherwise.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	health *health.Server

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
}

// Register attaches the health service to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, &healthServer{Server: h.health, refresh: h.Refresh})
}

// Refresh pings the store and publishes the resulting status to Check and
// Watch callers.
func (h *Handler) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := h.services.BookService.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("store ping failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
	return status
}

// Shutdown reports NOT_SERVING to every watcher and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

// healthServer refreshes the status before answering a Check.
type healthServer struct {
	*health.Server
	refresh func(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus
}

func (s *healthServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	s.refresh(ctx)
	return s.Server.Check(ctx, req)
}
