package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"Jyotish/internal/handler/api"
	mid "Jyotish/internal/middleware"
	"Jyotish/internal/usecase"
	pkgch "Jyotish/pkg/clickhouse"
	"Jyotish/pkg/config"
	xhttp "Jyotish/pkg/http"
	applogger "Jyotish/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	astro      *api.AstroHandler
	stream     *api.StreamHandler
	pipeline   *mid.ActivationPipeline
	proc       *usecase.ActivationProcessor
	chClient   *pkgch.Client
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	astro *api.AstroHandler,
	stream *api.StreamHandler,
	pipeline *mid.ActivationPipeline,
	proc *usecase.ActivationProcessor,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		astro:    astro,
		stream:   stream,
		pipeline: pipeline,
		proc:     proc,
		chClient: chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.astro,
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(a.cfg.Metrics.Enabled, a.cfg.Metrics.Path),
	)
	if a.stream != nil {
		a.stream.RegisterRoutes(a.httpServer.Echo())
	}

	if a.pipeline != nil {
		a.pipeline.Start(ctx)
		a.logger.Info("activation pipeline started",
			applogger.String("backend", a.cfg.Backend.Type))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("engine ready", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if a.pipeline != nil {
		a.pipeline.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	// closes the publisher and archive handles
	if a.proc != nil {
		a.proc.Close()
	}

	a.logger.Info("shutdown complete")
	return nil
}
