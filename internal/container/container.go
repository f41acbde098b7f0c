package container

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aaliyatanseeq-hub/events/internal/config"
	"github.com/aaliyatanseeq-hub/events/internal/console"
	"github.com/aaliyatanseeq-hub/events/internal/discovery"
	"github.com/aaliyatanseeq-hub/events/internal/metrics"
)

// Container holds all application dependencies
type Container struct {
	Logger   *slog.Logger
	Config   *config.Config
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Client   *discovery.Client
	Console  *console.Controller
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, cfg *config.Config) *Container {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	cache := discovery.NewCache(cfg.CacheTTL)
	client := discovery.NewClient(cfg.DiscoveryAPIURL, cfg.DiscoveryTimeout, cache, logger)
	controller := console.New(client, m, logger, cfg.MaxEventResults, cfg.MaxAttendees)

	return &Container{
		Logger:   logger,
		Config:   cfg,
		Registry: registry,
		Metrics:  m,
		Client:   client,
		Console:  controller,
	}
}
