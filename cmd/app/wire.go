//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/fitai/fitai-api/internal/bootstrap"
	"github.com/fitai/fitai-api/internal/domain/catalog"
	"github.com/fitai/fitai-api/internal/domain/diet"
	"github.com/fitai/fitai-api/internal/domain/relay"
	"github.com/fitai/fitai-api/internal/domain/workout"
	"github.com/fitai/fitai-api/internal/infra/config"
	"github.com/fitai/fitai-api/internal/infra/llm/chatgpt"
	httpiface "github.com/fitai/fitai-api/internal/interface/http"
	"github.com/fitai/fitai-api/pkg/logger"
	"github.com/fitai/fitai-api/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.NewTokenCounter,
		provideChatClient,
		provideCatalog,
		provideDietConfig,
		provideWorkoutConfig,
		diet.NewService,
		workout.NewService,
		wire.Bind(new(relay.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(relay.TokenCounter), new(*metrics.TokenCounter)),
		wire.Bind(new(workout.SplitLabeler), new(*catalog.Catalog)),
		wire.Bind(new(httpiface.SplitCatalog), new(*catalog.Catalog)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
