package service

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/ethereum/go-ethereum/log"

	"github.com/featlab/gofeat/metrics"
)

const (
	HealthzHost = "0.0.0.0"
	HealthzPort = "8080"

	MetricsHost = "0.0.0.0"
	MetricsPort = "7300"

	ReportsHost = "0.0.0.0"
	ReportsPort = "7800"
)

// Service bundles the long-running HTTP surfaces: health checks, prometheus
// metrics, and the report directory browser.
type Service struct {
	Healthz *HealthzServer
	Metrics *MetricsServer
	Reports *ReportsServer
}

// New creates the service. reportDir is the directory the reports server
// exposes; empty disables it.
func New(reportDir string) *Service {
	s := &Service{
		Healthz: &HealthzServer{},
		Metrics: &MetricsServer{},
	}
	if reportDir != "" {
		s.Reports = &ReportsServer{Dir: reportDir}
	}
	return s
}

func (s *Service) Start(ctx context.Context) {
	log.Info("service starting")

	go func() {
		addr := net.JoinHostPort(HealthzHost, HealthzPort)
		log.Info("starting healthz server", "addr", addr)
		if err := s.Healthz.Start(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("error starting healthz server", "err", err)
			metrics.RecordErrorDetails("error starting healthz server", err)
		}
	}()

	go func() {
		addr := net.JoinHostPort(MetricsHost, MetricsPort)
		log.Info("starting metrics server", "addr", addr)
		if err := s.Metrics.Start(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("error starting metrics server", "err", err)
			metrics.RecordErrorDetails("error starting metrics server", err)
		}
	}()

	if s.Reports != nil {
		go func() {
			addr := net.JoinHostPort(ReportsHost, ReportsPort)
			log.Info("starting reports server", "addr", addr, "dir", s.Reports.Dir)
			if err := s.Reports.Start(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("error starting reports server", "err", err)
				metrics.RecordErrorDetails("error starting reports server", err)
			}
		}()
	}

	log.Info("service started")
}

func (s *Service) Shutdown() {
	log.Info("service shutting down")

	_ = s.Healthz.Shutdown()
	log.Info("healthz stopped")

	_ = s.Metrics.Shutdown()
	log.Info("metrics stopped")

	if s.Reports != nil {
		_ = s.Reports.Shutdown()
		log.Info("reports stopped")
	}

	log.Info("service stopped")
}
