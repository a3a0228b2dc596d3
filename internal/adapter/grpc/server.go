package grpc

import (
	"context"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
)

// Server exposes the standard gRPC health protocol for the service, so that
// orchestrators can probe it the same way as the other backends.
type Server struct {
	*grpc.Server
	health  *health.Server
	service string
	logger  *logger.Logger
}

// DependencyCheck pings one backing service.
type DependencyCheck func(ctx context.Context) error

func NewGRPCServer(service string, appLogger *logger.Logger) *Server {
	log := appLogger.Named("grpc")
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(loggingInterceptor(log)),
	)

	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	s := &Server{
		Server:  srv,
		health:  hs,
		service: service,
		logger:  log,
	}
	s.SetServing(true)
	return s
}

// SetServing flips both the overall and the named service status.
func (s *Server) SetServing(serving bool) {
	st := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		st = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(s.service, st)
}

// WatchDependencies runs checks every interval until ctx ends and reports
// NOT_SERVING while any of them fails.
func (s *Server) WatchDependencies(ctx context.Context, interval time.Duration, checks map[string]DependencyCheck) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthy := true
	for {
		ok := s.probe(ctx, checks)
		if ok != healthy {
			s.logger.Info("Dependency health changed", zap.Bool("serving", ok))
		}
		healthy = ok
		s.SetServing(ok)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) probe(ctx context.Context, checks map[string]DependencyCheck) bool {
	ok := true
	for name, check := range checks {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := check(pingCtx)
		cancel()
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Warn("Dependency check failed", zap.String("dependency", name), zap.Error(err))
			}
			ok = false
		}
	}
	return ok
}

// Shutdown marks the service NOT_SERVING and stops accepting calls.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.GracefulStop()
}

func loggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Debug("gRPC call",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("latency", time.Since(start)),
		)
		return resp, err
	}
}
