package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"lunchbot/internal/configuration/properties"
	"lunchbot/internal/metrics"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// RegistryServiceName is the health service name that turns SERVING once the
// registry snapshot is loaded.
const RegistryServiceName = "lunchbot.Registry"

const healthTimeout = 5 * time.Second

// HealthService exposes grpc.health.v1.Health for orchestrator probes.
type HealthService struct {
	network string
	address string
	health  *health.Server
	Server  *grpc.Server
}

func NewHealthService(cfg *properties.HealthConfigProperties) *HealthService {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(RegistryServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &HealthService{
		network: cfg.Network,
		address: cfg.Address,
		health:  hs,
	}
}

func (hs *HealthService) StartServer() (net.Listener, error) {
	lis, err := net.Listen(hs.network, hs.address)
	if err != nil {
		return nil, err
	}

	hs.Server = grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			metrics.UnaryServerInterceptor(),
			timeoutInterceptor(healthTimeout),
		),
		grpc.ChainStreamInterceptor(metrics.StreamServerInterceptor()),
	)

	healthpb.RegisterHealthServer(hs.Server, hs.health)
	reflection.Register(hs.Server)
	slog.Info(fmt.Sprintf("health service listening at %s", lis.Addr().String()))

	go func() {
		if err := hs.Server.Serve(lis); err != nil {
			slog.Error("failed to serve listener", "error", err)
		}
	}()

	return lis, nil
}

func (hs *HealthService) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	hs.health.SetServingStatus("", status)
	hs.health.SetServingStatus(RegistryServiceName, status)
}

func (hs *HealthService) Stop() {
	hs.health.Shutdown()
	if hs.Server != nil {
		hs.Server.GracefulStop()
	}
}

func timeoutInterceptor(d time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		return handler(ctx, req)
	}
}
