package grpc_server

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported next to the overall status.
const ServiceName = "whereisit"

type Prober interface {
	Ping(ctx context.Context) error
}

// Server exposes grpc.health.v1.Health for orchestrators that probe over gRPC. The
// status follows the store: SERVING while it answers pings, NOT_SERVING otherwise.
type Server struct {
	srv    *grpc.Server
	health *health.Server
	probe  Prober
	notify chan error
	stop   context.CancelFunc

	address  string
	interval time.Duration
	logger   *zap.Logger
}

func New(probe Prober, opts ...Option) *Server {
	s := &Server{
		srv:      grpc.NewServer(),
		health:   health.NewServer(),
		probe:    probe,
		notify:   make(chan error, 1),
		address:  _defaultAddr,
		interval: _defaultInterval,
		logger:   zap.L().With(zap.String("component", "grpc")),
	}
	for _, opt := range opts {
		opt(s)
	}

	healthpb.RegisterHealthServer(s.srv, s.health)
	return s
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	s.refresh(ctx)
	go s.watch(ctx)

	go func() {
		s.logger.Info("gRPC health server listening", zap.String("address", s.address))
		if err := s.srv.Serve(lis); err != nil {
			s.notify <- err
		}
		close(s.notify)
	}()
	return nil
}

func (s *Server) watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.probe.Ping(ctx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn("Store ping failed", zap.Error(err))
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Notify -.
func (s *Server) Notify() <-chan error {
	return s.notify
}

// Shutdown flips every service to NOT_SERVING and drains open streams.
func (s *Server) Shutdown() {
	if s.stop != nil {
		s.stop()
	}
	s.health.Shutdown()
	s.srv.GracefulStop()
}
