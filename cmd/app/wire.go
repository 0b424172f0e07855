//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/PMQ9/ai-attire/internal/bootstrap"
	"github.com/PMQ9/ai-attire/internal/domain/occasion"
	"github.com/PMQ9/ai-attire/internal/domain/stylist"
	"github.com/PMQ9/ai-attire/internal/infra/config"
	"github.com/PMQ9/ai-attire/internal/infra/llm/chatgpt"
	httpiface "github.com/PMQ9/ai-attire/internal/interface/http"
	"github.com/PMQ9/ai-attire/pkg/jsonextract"
	"github.com/PMQ9/ai-attire/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		jsonextract.New,
		provideChatGPTClient,
		provideStylistConfig,
		provideOccasionConfig,
		provideWeatherClient,
		provideImageClient,
		provideMaxUploadBytes,
		occasion.NewResolver,
		stylist.NewService,
		wire.Bind(new(stylist.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(occasion.ChatClient), new(*chatgpt.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
