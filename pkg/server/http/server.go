package http_server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/duccv/whereisit/config"
	"github.com/duccv/whereisit/internal/constant"
	"github.com/duccv/whereisit/internal/handler"
	"github.com/duccv/whereisit/internal/middleware"
	"github.com/duccv/whereisit/internal/router"
	"github.com/duccv/whereisit/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/duccv/whereisit/docs"
)

type Server struct {
	App    *gin.Engine
	srv    *http.Server
	notify chan error

	address         string
	timeout         time.Duration
	shutdownTimeout time.Duration
}

// New builds the gin engine with the API routes and the operational endpoints.
func New(env *config.Env, deps router.Deps, store handler.Pinger, opts ...Option) *Server {
	s := &Server{
		notify:          make(chan error, 1),
		address:         _defaultAddr,
		timeout:         _defaultTimeout,
		shutdownTimeout: _defaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.App = s.initGinServer(env, deps, store)
	s.srv = &http.Server{
		Addr:              s.address,
		Handler:           s.App,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func timeoutResponse(c *gin.Context) {
	c.JSON(http.StatusRequestTimeout, constant.REQUEST_TIMEOUT)
}

func timeoutMiddleware(to time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(to),
		timeout.WithResponse(timeoutResponse),
	)
}

func (s *Server) initGinServer(env *config.Env, deps router.Deps, store handler.Pinger) *gin.Engine {
	if env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CorrelationIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(middleware.DefaultMiddlewareConfig()).RequestLogger())

	if env.MetricsConfig.Enabled {
		m := metrics.GetMonitor(env.MetricsConfig.Path)
		m.Use(r)
	}

	if env.CORSConfig.Enabled {
		corsConfig := cors.Config{
			AllowOrigins:     env.CORSConfig.AllowedOrigins,
			AllowMethods:     env.CORSConfig.AllowedMethods,
			AllowHeaders:     env.CORSConfig.AllowedHeaders,
			ExposeHeaders:    env.CORSConfig.ExposedHeaders,
			AllowCredentials: env.CORSConfig.AllowCredentials,
			MaxAge:           time.Duration(env.CORSConfig.MaxAge) * time.Second,
		}

		r.Use(cors.New(corsConfig))
	}

	r.Use(timeoutMiddleware(s.timeout))

	health := handler.NewHealthHandler(store, env.DatabaseConfig.Type)
	r.GET("/health", health.Health)

	if env.SwaggerConfig.Enabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	}

	router.Register(r, deps)
	return r
}

// Start serves in the background. Errors other than a clean shutdown arrive on Notify.
func (s *Server) Start() {
	go func() {
		zap.L().Info("HTTP server listening", zap.String("address", s.address))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.notify <- err
		}
		close(s.notify)
	}()
}

// Notify -.
func (s *Server) Notify() <-chan error {
	return s.notify
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
