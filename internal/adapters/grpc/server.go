package grpc

import (
	"context"

	"google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/application"
)

// StateInternalServer exposes the standard health protocol for mesh probes.
type StateInternalServer struct {
	grpc_health_v1.UnimplementedHealthServer
	service *application.Service
}

func NewStateInternalServer(service *application.Service) *StateInternalServer {
	return &StateInternalServer{service: service}
}

func Register(server grpc.ServiceRegistrar, svc *StateInternalServer) {
	grpc_health_v1.RegisterHealthServer(server, svc)
}

func (s *StateInternalServer) Check(ctx context.Context, _ *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	if _, err := s.service.GetHealth(ctx); err != nil {
		return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}, nil
}

func (s *StateInternalServer) Watch(_ *grpc_health_v1.HealthCheckRequest, stream grpc_health_v1.Health_WatchServer) error {
	return stream.Send(&grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING})
}
