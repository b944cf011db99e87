package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/service"
)

type stubBookService struct {
	service.BookService
	pingErr error
}

func (s *stubBookService) Ping(context.Context) error { return s.pingErr }

func newTestHandler(books *stubBookService) (*Handler, healthpb.HealthServer) {
	h := NewHandler(&service.Services{BookService: books}, logger.Nop())
	return h, &healthServer{Server: h.health, refresh: h.Refresh}
}

func TestHealthCheck_FollowsStore(t *testing.T) {
	books := &stubBookService{}
	_, server := newTestHandler(books)
	ctx := context.Background()

	for _, name := range []string{"", ServiceName} {
		resp, err := server.Check(ctx, &healthpb.HealthCheckRequest{Service: name})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	}

	books.pingErr = errors.New("connection refused")

	resp, err := server.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestHealthCheck_UnknownService(t *testing.T) {
	_, server := newTestHandler(&stubBookService{})

	_, err := server.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "other"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestShutdown_ReportsNotServing(t *testing.T) {
	h, server := newTestHandler(&stubBookService{})
	h.Shutdown()

	resp, err := server.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}
