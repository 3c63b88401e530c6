package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener a server accepts connections on, plain or TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a network server run by the process, HTTP or gRPC.
// Start blocks until the server stops. A graceful stop is not an error.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
