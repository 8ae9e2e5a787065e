package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/config"
	"github.com/chaizz/lumen-Park/internal/telemetry"
)

func provideTracing(cfg *config.Config, logger *zap.Logger) (telemetry.Shutdown, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdown, err := telemetry.Init(ctx, cfg)
	if err != nil {
		logger.Error("tracing init failed", zap.String("endpoint", cfg.OTLPEndpoint), zap.Error(err))
		return nil, err
	}
	if cfg.OTLPEndpoint != "" {
		logger.Info("tracing enabled", zap.String("endpoint", cfg.OTLPEndpoint))
	}
	return shutdown, nil
}
