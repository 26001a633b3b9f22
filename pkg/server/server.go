package server

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/duccv/whereisit/config"
	"github.com/duccv/whereisit/internal/repository"
	"github.com/duccv/whereisit/internal/router"
	"github.com/duccv/whereisit/internal/service"
	"github.com/duccv/whereisit/internal/session"
	"github.com/duccv/whereisit/internal/token"
	grpc_server "github.com/duccv/whereisit/pkg/server/grpc"
	http_server "github.com/duccv/whereisit/pkg/server/http"
	"go.uber.org/zap"
)

// Run opens the store, serves HTTP (and gRPC health when enabled) and blocks until
// ctx is cancelled or a server fails. Everything is shut down before it returns.
func Run(ctx context.Context, env *config.Env) error {
	log := zap.L().With(zap.String("component", "server"))

	stores, err := repository.Open(ctx, env)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := stores.Close(closeCtx); err != nil {
			log.Error("Failed to close store", zap.Error(err))
		}
	}()

	tokens := token.NewService([]byte(env.AuthConfig.AccessTokenSecret))
	deps := router.Deps{
		Tokens:     tokens,
		Cookies:    session.NewTransport(env.AppConfig.Environment),
		Items:      stores.Items,
		Recoveries: stores.Recoveries,
		RecoveryService: service.NewRecoveryService(
			stores.Items,
			stores.Recoveries,
			stores.Store,
			service.Consistency(env.RecoveryConfig.Consistency),
		),
		StrictRoutes: env.AuthConfig.StrictRoutes,
	}

	httpServer := http_server.New(env, deps, stores.Store,
		http_server.Port(strconv.Itoa(env.AppConfig.Port)),
		http_server.Timeout(time.Duration(env.AppConfig.RequestTimeout)*time.Second),
	)
	httpServer.Start()
	log.Info("App working", zap.Int("port", env.AppConfig.Port), zap.String("database", string(stores.Kind)))

	var grpcNotify <-chan error
	if env.GRPCConfig.Enabled {
		grpcServer := grpc_server.New(stores.Store,
			grpc_server.Port(strconv.Itoa(env.GRPCConfig.Port)),
			grpc_server.Interval(time.Duration(env.GRPCConfig.HealthInterval)*time.Second),
		)
		if err := grpcServer.Start(); err != nil {
			_ = httpServer.Shutdown()
			return fmt.Errorf("start grpc server: %w", err)
		}
		defer grpcServer.Shutdown()
		grpcNotify = grpcServer.Notify()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-httpServer.Notify():
		runErr = fmt.Errorf("http server: %w", err)
	case err := <-grpcNotify:
		runErr = fmt.Errorf("grpc server: %w", err)
	}

	if err := httpServer.Shutdown(); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
	return runErr
}
