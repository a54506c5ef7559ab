// Пакет app собирает сервис: хранилища, use case'ы, HTTP API, ops-серверы и outbox worker.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	healthcheck "github.com/vladislavdragonenkov/burger-oms/internal/health"
	"github.com/vladislavdragonenkov/burger-oms/internal/metrics"
	"github.com/vladislavdragonenkov/burger-oms/internal/service/outbox"
	"github.com/vladislavdragonenkov/burger-oms/internal/transport/httpapi"
	"github.com/vladislavdragonenkov/burger-oms/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Run запускает сервис и блокируется до отмены ctx или падения одного из серверов.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")
	build := version.Current()
	logger.WithField("build", build.String()).Info("starting burger-oms")

	storage, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.close(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	deps, err := newDependencies(cfg, storage, logger)
	if err != nil {
		return err
	}

	pubs, err := initPublishers(cfg, logger)
	if err != nil {
		return err
	}
	defer pubs.close(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		build.Collector(),
	)

	router, err := httpapi.NewRouter(httpapi.Config{
		UseCases:       deps.UseCases,
		Tokens:         deps.Tokens,
		Uploads:        deps.Uploads,
		Logger:         log.WithField("component", "http"),
		HTTPMetrics:    metrics.NewHTTPMetrics(registry),
		UseCaseMetrics: metrics.NewUseCaseMetrics(registry),
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		return err
	}

	healthHandler := healthcheck.NewHandler(build.Version)
	if storage.pinger != nil {
		healthHandler.RegisterChecker("storage", healthcheck.FromPinger(storage.pinger))
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	worker := outbox.NewWorker(
		storage.outbox,
		pubs.events,
		outbox.WithDeadLetter(pubs.deadLetter),
		outbox.WithMetrics(metrics.NewOutboxMetrics(registry)),
		outbox.WithLogger(log.WithField("component", "outbox-worker")),
		outbox.WithPollInterval(cfg.OutboxPollInterval),
		outbox.WithBatchSize(cfg.OutboxBatchSize),
		outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
		outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
	)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Run(runCtx)
	}()

	metricsSrv := startMetricsServer(runCtx, cfg.MetricsAddr, logger, healthHandler, registry)

	grpcServer, healthServer := newOpsGRPCServer(registry, logger)
	grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		cancel()
		<-workerDone
		return err
	}

	apiSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Infof("gRPC ops сервер слушает %s", cfg.GRPCAddr)
		errCh <- grpcServer.Serve(grpcLis)
	}()
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки")
		runErr = ctx.Err()
	case err := <-errCh:
		if !errors.Is(err, grpc.ErrServerStopped) {
			runErr = err
		}
	}

	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	shutdownHTTP(apiSrv, logger)
	stopGRPC(grpcServer, logger)
	cancel()
	shutdownHTTP(metricsSrv, logger)
	<-workerDone

	return runErr
}

// newOpsGRPCServer поднимает gRPC health и reflection с метриками go-grpc-prometheus.
func newOpsGRPCServer(registry prometheus.Registerer, logger *log.Entry) (*grpc.Server, *health.Server) {
	grpcMetrics := promgrpc.NewServerMetrics()
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()),
		grpc.ChainStreamInterceptor(grpcMetrics.StreamServerInterceptor()),
	)
	if err := registry.Register(grpcMetrics); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	grpcMetrics.InitializeMetrics(grpcServer)

	return grpcServer, healthServer
}

func stopGRPC(server *grpc.Server, logger *log.Entry) {
	stopped := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(shutdownTimeout):
		logger.Warn("graceful stop превысил таймаут, принудительно останавливаем")
		server.Stop()
	}
}

// newOpsMux собирает ops-маршруты: /metrics, probes и /version.
func newOpsMux(healthHandler *healthcheck.Handler, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(version.Current())
	})
	return mux
}

// startMetricsServer запускает ops HTTP в фоне и останавливает его по ctx.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler, gatherer prometheus.Gatherer) *http.Server {
	srv := &http.Server{Addr: addr, Handler: newOpsMux(healthHandler, gatherer), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
