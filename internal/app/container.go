package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"dronetrack/internal/config"
	"dronetrack/internal/gateway/lanes"
	"dronetrack/internal/gateway/lockers"
	ordersgw "dronetrack/internal/gateway/orders"
	"dronetrack/internal/gateway/telemetry"
	"dronetrack/internal/http/handlers"
	"dronetrack/internal/http/middleware"
	"dronetrack/internal/http/middleware/ratelimit"
	"dronetrack/internal/http/pprofserver"
	"dronetrack/internal/http/router"
	"dronetrack/internal/logx"
	"dronetrack/internal/repository"
	"dronetrack/internal/service/dispatch"
	"dronetrack/internal/service/route"
	"dronetrack/internal/service/tracking"
	"dronetrack/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function.
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function.
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the container for the HTTP service.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the container for the Kafka worker.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerGateways(container); err != nil {
		return nil, fmt.Errorf("gateways: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerGateways(container); err != nil {
		return nil, fmt.Errorf("gateways: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the HTTP service container with defaults.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker container with defaults.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		provideMetrics,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB, repository.NewCommandLogRepo)
}

type retryingGatewayIn struct {
	dig.In

	Client  *ordersgw.Client
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
	Cfg     *config.Config
}

func registerGateways(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) *ordersgw.Client {
			return ordersgw.NewClient(cfg.Gateways.OrdersBaseURL, cfg.Gateways.Timeout)
		},
		func(in retryingGatewayIn) *ordersgw.RetryingGateway {
			return ordersgw.NewRetryingGateway(in.Client, in.Logger, in.Retries, ordersgw.RetryConfig{
				MaxAttempts: in.Cfg.Gateways.MaxAttempts,
				BaseDelay:   in.Cfg.Gateways.BaseDelay,
				MaxDelay:    in.Cfg.Gateways.MaxDelay,
			})
		},
		func(cfg *config.Config) *lockers.Client {
			return lockers.NewClient(cfg.Gateways.LockersBaseURL, cfg.Gateways.Timeout)
		},
		func(cl *lockers.Client) *lockers.Cache {
			return lockers.NewCache(cl)
		},
		func(cfg *config.Config) *lanes.Client {
			return lanes.NewClient(cfg.Gateways.LanesBaseURL, cfg.Gateways.Timeout)
		},
		func(cfg *config.Config) *telemetry.Client {
			return telemetry.NewClient(cfg.Gateways.TelemetryBaseURL, cfg.Gateways.Timeout)
		},
	)
}

type trackingManagerIn struct {
	dig.In

	Orders    *ordersgw.RetryingGateway
	Telemetry *telemetry.Client
	Routes    *route.Assembler
	Logger    logx.Logger
	Failures  *prometheus.CounterVec `name:"poll_failures_total"`
	Cfg       *config.Config
}

type dispatchServiceIn struct {
	dig.In

	Gateway  *ordersgw.RetryingGateway
	Manager  *tracking.Manager
	Recorder *repository.CommandLogRepo
	Logger   logx.Logger
	Counter  *prometheus.CounterVec `name:"commands_dispatched_total"`
	Cfg      *config.Config
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		func(cache *lockers.Cache, lanesClient *lanes.Client, logger logx.Logger) *route.Assembler {
			return route.NewAssembler(cache, lanesClient, logger)
		},
		func(in trackingManagerIn) *tracking.Manager {
			return tracking.NewManager(in.Orders, in.Telemetry, in.Routes, in.Logger, in.Failures, tracking.Config{
				StateInterval:     in.Cfg.Tracking.StateInterval,
				TelemetryInterval: in.Cfg.Tracking.TelemetryInterval,
				FetchTimeout:      in.Cfg.Gateways.Timeout,
			})
		},
		func(in dispatchServiceIn) *dispatch.Service {
			return dispatch.NewService(
				in.Gateway,
				in.Manager,
				in.Recorder,
				in.Logger,
				in.Counter,
				in.Cfg.Dispatch.DefaultDroneID,
				in.Cfg.Dispatch.Timeout,
			)
		},
	)
}

type routerIn struct {
	dig.In

	Base      *handlers.Handlers
	Display   *handlers.DisplayHandler
	Route     *handlers.RouteHandler
	Dispatch  *handlers.DispatchHandler
	Tracking  *handlers.TrackingHandler
	Logger    logx.Logger
	RateLimit *ratelimit.Middleware
}

type pprofServerOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func providePprofServer(cfg *config.Config) pprofServerOut {
	if !cfg.Pprof.Enabled {
		return pprofServerOut{}
	}
	return pprofServerOut{Server: &http.Server{
		Addr: cfg.Pprof.Addr,
		Handler: pprofserver.Handler(pprofserver.Config{
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		// No WriteTimeout: the /track SSE stream stays open for the
		// whole session.
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		func(logger logx.Logger, gw *ordersgw.RetryingGateway) *handlers.DisplayHandler {
			return handlers.NewDisplayHandler(logger, gw)
		},
		func(logger logx.Logger, gw *ordersgw.RetryingGateway, a *route.Assembler) *handlers.RouteHandler {
			return handlers.NewRouteHandler(logger, gw, handlers.NewRouteBuilder(a))
		},
		func(logger logx.Logger, gw *ordersgw.RetryingGateway, svc *dispatch.Service) *handlers.DispatchHandler {
			return handlers.NewDispatchHandler(logger, gw, handlers.NewCommandDispatcher(svc))
		},
		func(logger logx.Logger, m *tracking.Manager) *handlers.TrackingHandler {
			return handlers.NewTrackingHandler(logger, handlers.NewTrackingManager(m))
		},
		func(in routerIn) http.Handler {
			return router.New(router.Deps{
				Base:          in.Base,
				Display:       in.Display,
				Route:         in.Route,
				Dispatch:      in.Dispatch,
				Tracking:      in.Tracking,
				Observability: middleware.Observability(in.Logger),
				RateLimit:     in.RateLimit.Handler(),
				Metrics:       promhttp.Handler(),
			})
		},
		serverProvider,
		providePprofServer,
	)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, logger logx.Logger, m *tracking.Manager) (*kafka.Consumer, error) {
			return kafka.NewConsumer(
				logger,
				cfg.Kafka.Brokers,
				cfg.Kafka.GroupID,
				cfg.Kafka.Topic,
				newOrderEventsHandler(m, logger),
			)
		},
	)
}
