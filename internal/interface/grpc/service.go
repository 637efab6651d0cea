package grpcservice

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"

	ledgerv1 "github.com/arkade-os/ledgerd/api-spec/ledger/v1"
	"github.com/arkade-os/ledgerd/internal/config"
	interfaces "github.com/arkade-os/ledgerd/internal/interface"
	"github.com/arkade-os/ledgerd/internal/interface/grpc/handlers"
	"github.com/arkade-os/ledgerd/internal/interface/grpc/interceptors"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	grpchealth "google.golang.org/grpc/health/grpc_health_v1"
)

type service struct {
	version       string
	config        Config
	appConfig     *config.Config
	server        *http.Server
	grpcServer    *grpc.Server
	healthServer  *health.Server
	readinessSvc  *interceptors.ReadinessService
	appSvcStarted atomic.Bool
}

func NewService(
	version string, svcConfig Config, appConfig *config.Config,
) (interfaces.Service, error) {
	if err := svcConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid service config: %s", err)
	}
	if err := appConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app config: %s", err)
	}

	return &service{
		version:   version,
		config:    svcConfig,
		appConfig: appConfig,
	}, nil
}

func (s *service) Start() error {
	if err := s.start(); err != nil {
		return err
	}
	log.Infof("started listening at %s", s.config.address())

	return s.startAppServices()
}

func (s *service) Stop() {
	s.stop()
	log.Info("shutdown service")
}

func (s *service) start() error {
	tlsConfig, err := s.config.tlsConfig()
	if err != nil {
		return err
	}

	if err := s.newServer(tlsConfig); err != nil {
		return err
	}

	lis, err := net.Listen("tcp", s.config.address())
	if err != nil {
		return fmt.Errorf("failed to listen at %s: %w", s.config.address(), err)
	}

	go func() {
		var err error
		if s.config.insecure() {
			err = s.server.Serve(lis)
		} else {
			err = s.server.ServeTLS(lis, "", "")
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped unexpectedly")
		}
	}()

	return nil
}

func (s *service) stop() {
	if s.healthServer != nil {
		s.healthServer.Shutdown()
	}

	if s.appSvcStarted.CompareAndSwap(true, false) {
		// app service is started, stop it
		appSvc, _ := s.appConfig.AppService()
		if appSvc != nil {
			appSvc.Stop()
		}
		if s.readinessSvc != nil {
			s.readinessSvc.MarkAppServiceStopped()
		}
	}

	// Hard-close HTTP listeners/conns first, then the gRPC transports.
	if s.server != nil {
		_ = s.server.Close()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
}

func (s *service) startAppServices() error {
	if !s.appSvcStarted.CompareAndSwap(false, true) {
		// app already started, skip
		return nil
	}

	appSvc, err := s.appConfig.AppService()
	if err != nil {
		s.appSvcStarted.Store(false)
		return fmt.Errorf("failed to create app service: %w", err)
	}
	if err := appSvc.Start(); err != nil {
		s.appSvcStarted.Store(false)
		return fmt.Errorf("failed to start app service: %w", err)
	}
	log.Info("started app service")

	if s.readinessSvc != nil {
		s.readinessSvc.MarkAppServiceStarted()
	}
	s.healthServer.SetServingStatus("", grpchealth.HealthCheckResponse_SERVING)
	s.healthServer.SetServingStatus(
		ledgerv1.ServiceName, grpchealth.HealthCheckResponse_SERVING,
	)

	log.Infof("ledger service %s is now ready", s.version)
	return nil
}

func (s *service) newServer(tlsConfig *tls.Config) error {
	otelHandler := otelgrpc.NewServerHandler(
		otelgrpc.WithTracerProvider(otel.GetTracerProvider()),
	)

	s.readinessSvc = interceptors.NewReadinessService()

	grpcConfig := []grpc.ServerOption{
		interceptors.UnaryInterceptor(s.readinessSvc),
		interceptors.StreamInterceptor(s.readinessSvc),
		grpc.StatsHandler(otelHandler),
	}
	creds := insecure.NewCredentials()
	if !s.config.insecure() {
		creds = credentials.NewTLS(tlsConfig)
	}
	grpcConfig = append(grpcConfig, grpc.Creds(creds))

	grpcServer := grpc.NewServer(grpcConfig...)

	appSvc, err := s.appConfig.AppService()
	if err != nil {
		return fmt.Errorf("failed to create app service: %w", err)
	}
	ledgerHandler := handlers.NewLedgerHandler(appSvc, s.config.HeartbeatInterval)
	ledgerv1.RegisterLedgerServiceServer(grpcServer, ledgerHandler)

	// Everything is reported as not serving until the app service is started.
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpchealth.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(
		ledgerv1.ServiceName, grpchealth.HealthCheckResponse_NOT_SERVING,
	)
	grpchealth.RegisterHealthServer(grpcServer, healthServer)

	handler := http.Handler(grpcServer)
	if s.config.insecure() {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	s.grpcServer = grpcServer
	s.healthServer = healthServer
	s.server = &http.Server{
		Addr:      s.config.address(),
		Handler:   handler,
		TLSConfig: tlsConfig,
	}
	return nil
}
