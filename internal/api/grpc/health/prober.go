package health

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/scriba-server/internal/logger"
)

// ServiceName is reported alongside the overall ("") status.
const ServiceName = "scriba"

const (
	defaultInterval = 15 * time.Second
	pingTimeout     = 3 * time.Second
)

// Pinger checks a dependency the server cannot work without.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Prober drives the gRPC health status from periodic pings.
type Prober struct {
	server   *health.Server
	pinger   Pinger
	interval time.Duration
	logger   *logger.Logger
}

// NewProber creates a Prober. A non-positive interval selects 15s.
func NewProber(server *health.Server, pinger Pinger, interval time.Duration, logger *logger.Logger) *Prober {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Prober{
		server:   server,
		pinger:   pinger,
		interval: interval,
		logger:   logger,
	}
}

// Probe pings once and publishes the result.
func (p *Prober) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := p.pinger.Ping(ctx); err != nil {
		p.logger.Warn("Health prober: database ping failed", "error", err.Error())
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	p.server.SetServingStatus("", status)
	p.server.SetServingStatus(ServiceName, status)

	return status
}

// Run probes immediately and then every interval until ctx is done.
// On exit every service is marked NOT_SERVING.
func (p *Prober) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			p.server.Shutdown()
			return
		case <-ticker.C:
			p.Probe(ctx)
		}
	}
}
