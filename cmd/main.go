package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	grpchealth "google.golang.org/grpc/health"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/scriba-server/internal/api/grpc/health"
	grpcrouter "github.com/dtroode/scriba-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/scriba-server/internal/api/grpc/server"
	httprouter "github.com/dtroode/scriba-server/internal/api/http/router"
	httpserver "github.com/dtroode/scriba-server/internal/api/http/server"
	"github.com/dtroode/scriba-server/internal/config"
	"github.com/dtroode/scriba-server/internal/credential"
	"github.com/dtroode/scriba-server/internal/logger"
	"github.com/dtroode/scriba-server/internal/mailer"
	"github.com/dtroode/scriba-server/internal/metrics"
	"github.com/dtroode/scriba-server/internal/model"
	"github.com/dtroode/scriba-server/internal/repository/postgres"
	"github.com/dtroode/scriba-server/internal/server"
	"github.com/dtroode/scriba-server/internal/service"
	storage "github.com/dtroode/scriba-server/internal/storage/minio"
	"github.com/dtroode/scriba-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN,
		postgres.WithMaxConns(cfg.Database.MaxConns),
		postgres.WithMaxConnIdleTime(cfg.Database.MaxConnIdleTime))
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.NewMetrics(registry)

	hasher, err := credential.NewBcryptHasher(cfg.Hash.Cost)
	if err != nil {
		logger.Fatal("failed to create password hasher", "error", err)
	}
	sessionIssuer := token.NewSessionIssuer(cfg.JWT.SessionSecret, token.WithTTL(cfg.JWT.SessionTTL))
	resetIssuer := token.NewResetIssuer(cfg.JWT.ResetSecret, token.WithTTL(cfg.Reset.TokenTTL))

	smtpMailer, err := mailer.NewSMTPMailer(mailer.Options{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		From:       cfg.SMTP.From,
		RequireTLS: cfg.SMTP.RequireTLS,
	})
	if err != nil {
		logger.Fatal("failed to create mailer", "error", err)
	}

	userRepo := postgres.NewUserRepository(db)

	var wg sync.WaitGroup

	resetOpts := []service.PasswordResetOption{service.WithResetMetrics(appMetrics)}
	if cfg.Reset.SingleUse {
		redemptionRepo := postgres.NewRedemptionRepository(db)
		resetOpts = append(resetOpts, service.WithRedemptionStore(redemptionRepo))

		sweeper := service.NewRedemptionSweeper(redemptionRepo, cfg.Reset.SweepInterval, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			sweeper.Run(ctx)
		}()
	}
	resetService := service.NewPasswordReset(userRepo, resetIssuer, hasher, smtpMailer, cfg.App.BaseURL, logger, resetOpts...)

	accountOpts := []service.AccountOption{service.WithAccountMetrics(appMetrics)}
	if cfg.Storage.Enabled {
		storageClient, err := newStorageClient(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		accountOpts = append(accountOpts, service.WithDocumentStorage(storageClient))
	}
	accountService, err := service.NewAccount(userRepo, hasher, sessionIssuer, logger, accountOpts...)
	if err != nil {
		logger.Fatal("failed to create account service", "error", err)
	}

	httpSrv, err := registerHTTPServer(resetService, accountService, registry, appMetrics, logger, net.JoinHostPort("", cfg.HTTP.Port))
	if err != nil {
		logger.Fatal("failed to create http server", "error", err)
	}

	healthServer := grpchealth.NewServer()
	prober := health.NewProber(healthServer, db, cfg.GRPC.HealthInterval, logger)
	wg.Add(1)
	go func() {
		defer wg.Done()
		prober.Run(ctx)
	}()

	grpcSrv := registerGRPCServer(healthServer, logger, net.JoinHostPort("", cfg.GRPC.Port))

	servers := []struct {
		server model.Server
		layer  model.SecurityLayer
	}{
		{httpSrv, server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)},
		{grpcSrv, server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)},
	}

	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			err := s.Start(sl)
			if err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s.server, s.layer)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.server.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.server.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func newStorageClient(ctx context.Context, cfg config.Storage) (*storage.Client, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return storage.NewClient(ctx, minioClient, cfg.Bucket)
}

func registerHTTPServer(
	resetService *service.PasswordReset,
	accountService *service.Account,
	registry *prometheus.Registry,
	appMetrics *metrics.Metrics,
	logger *logger.Logger,
	addr string,
) (*httpserver.HTTPServer, error) {
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	r := httprouter.New(resetService, accountService, metricsHandler, appMetrics, logger)
	e, err := r.Register()
	if err != nil {
		return nil, err
	}

	return httpserver.NewHTTPServer(e, addr), nil
}

func registerGRPCServer(healthServer *grpchealth.Server, logger *logger.Logger, addr string) *grpcserver.GRPCServer {
	r := grpcrouter.New(healthServer, logger)
	s := r.Register()

	reflection.Register(s)

	return grpcserver.NewGRPCServer(s, addr)
}
