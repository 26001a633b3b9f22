package grpc_server

import (
	"net"
	"time"
)

const (
	_defaultAddr     = ":9090"
	_defaultInterval = 15 * time.Second
)

// Option -.
type Option func(*Server)

// Port -.
func Port(port string) Option {
	return func(s *Server) {
		s.address = net.JoinHostPort("", port)
	}
}

// Interval sets how often the store is probed to refresh the serving status.
func Interval(interval time.Duration) Option {
	return func(s *Server) {
		if interval > 0 {
			s.interval = interval
		}
	}
}
