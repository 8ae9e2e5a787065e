package app

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/config"
	"github.com/chaizz/lumen-Park/internal/queue"
	"github.com/chaizz/lumen-Park/internal/sse"
	"github.com/chaizz/lumen-Park/internal/telemetry"
)

type App struct {
	cfg      *config.Config
	registry *sse.Registry
	consumer queue.Consumer
	server   *http.Server
	tracing  telemetry.Shutdown
	logger   *zap.Logger
	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

func NewApp(cfg *config.Config, registry *sse.Registry, consumer queue.Consumer, router *gin.Engine, tracing telemetry.Shutdown, logger *zap.Logger) *App {
	return &App{
		cfg:      cfg,
		registry: registry,
		consumer: consumer,
		server: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: router,
		},
		tracing: tracing,
		logger:  logger,
		stop:    make(chan struct{}),
	}
}

// Run serves HTTP and consumes the queue until Shutdown. It returns nil after
// a graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		go func() {
			select {
			case <-a.stop:
				cancel()
			case <-ctx.Done():
			}
		}()
		if err := a.consumer.Start(ctx); err != nil && ctx.Err() == nil {
			a.logger.Error("consumer stopped", zap.Error(err))
		}
	}()

	a.logger.Info("http server listening", zap.String("addr", a.cfg.HTTPAddr))
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown closes the registry first so open streams return and the HTTP
// server can drain, then stops the consumer and flushes traces.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("graceful shutdown started")
	a.registry.Close()
	shutdownErr := a.server.Shutdown(ctx)
	a.stopOnce.Do(func() { close(a.stop) })

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		if shutdownErr == nil {
			shutdownErr = ctx.Err()
		}
	}

	if a.tracing != nil {
		if err := a.tracing(ctx); err != nil {
			a.logger.Error("tracer shutdown failed", zap.Error(err))
		}
	}
	if shutdownErr == nil {
		a.logger.Info("graceful shutdown completed")
	}
	return shutdownErr
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}

func (a *App) Config() *config.Config {
	return a.cfg
}
