//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/chaizz/lumen-Park/internal/app"
	"github.com/chaizz/lumen-Park/internal/auth"
	"github.com/chaizz/lumen-Park/internal/config"
	"github.com/chaizz/lumen-Park/internal/http"
	"github.com/chaizz/lumen-Park/internal/http/controller"
	"github.com/chaizz/lumen-Park/internal/logging"
	"github.com/chaizz/lumen-Park/internal/metrics"
	"github.com/chaizz/lumen-Park/internal/queue/rabbitmq"
	"github.com/chaizz/lumen-Park/internal/service/notify"
	"github.com/chaizz/lumen-Park/internal/sse"
	"github.com/chaizz/lumen-Park/internal/store"
)

func InitializeApp() (*app.App, func(), error) {
	wire.Build(
		config.New,
		logging.New,
		provideTracing,
		store.NewBackend,
		store.NewStore,
		store.NewDirectory,
		metrics.New,
		sse.NewRegistry,
		auth.NewJWTVerifier,
		wire.Bind(new(auth.Verifier), new(*auth.JWTVerifier)),
		sse.NewStreamer,
		notify.NewService,
		rabbitmq.NewPublisher,
		controller.NewHandler,
		http.NewRouter,
		rabbitmq.NewConsumer,
		app.NewApp,
	)
	return nil, nil, nil
}
