package http_server

import (
	"net"
	"time"
)

const (
	_defaultAddr            = ":5000"
	_defaultTimeout         = 10 * time.Second
	_defaultShutdownTimeout = 10 * time.Second
)

// Option -.
type Option func(*Server)

// Port -.
func Port(port string) Option {
	return func(s *Server) {
		s.address = net.JoinHostPort("", port)
	}
}

// Timeout bounds each request handler.
func Timeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.timeout = timeout
	}
}

// ShutdownTimeout bounds the graceful drain of in-flight requests.
func ShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = timeout
	}
}
