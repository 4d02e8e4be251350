package main

import (
	"log/slog"
	"strings"

	"github.com/fitai/fitai-api/internal/domain/catalog"
	"github.com/fitai/fitai-api/internal/domain/diet"
	"github.com/fitai/fitai-api/internal/domain/relay"
	"github.com/fitai/fitai-api/internal/domain/workout"
	"github.com/fitai/fitai-api/internal/infra/config"
	"github.com/fitai/fitai-api/internal/infra/llm/chatgpt"
)

func provideChatClient(cfg *config.Config, logger *slog.Logger) (*chatgpt.Client, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("llm api key not set, plan endpoints will answer with config_error", "component", "bootstrap")
	}
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
}

func provideDietConfig(cfg *config.Config) diet.Config {
	return diet.Config{
		Settings:     planSettings(cfg.LLM, cfg.Diet),
		SystemPrompt: cfg.Diet.SystemPrompt,
	}
}

func provideWorkoutConfig(cfg *config.Config) workout.Config {
	return workout.Config{
		Settings:     planSettings(cfg.LLM, cfg.Workout),
		SystemPrompt: cfg.Workout.SystemPrompt,
	}
}

func planSettings(llm config.LLMConfig, plan config.PlanConfig) relay.Settings {
	return relay.Settings{
		APIKey:       llm.APIKey,
		Model:        llm.Model,
		Temperature:  llm.Temperature,
		MaxTokens:    plan.MaxTokens,
		StrictSchema: plan.StrictSchema,
	}
}

func provideCatalog() (*catalog.Catalog, error) {
	return catalog.Load()
}
