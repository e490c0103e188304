//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/seraface/seraface-server/internal/bootstrap"
	"github.com/seraface/seraface-server/internal/domain/analysis"
	"github.com/seraface/seraface-server/internal/domain/intake"
	"github.com/seraface/seraface-server/internal/domain/pipeline"
	"github.com/seraface/seraface-server/internal/domain/routine"
	"github.com/seraface/seraface-server/internal/infra/config"
	"github.com/seraface/seraface-server/internal/infra/llm/gemini"
	httpiface "github.com/seraface/seraface-server/internal/interface/http"
	"github.com/seraface/seraface-server/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideGeminiClient,
		provideAnalysisConfig,
		provideSessionStore,
		intake.NewService,
		analysis.NewService,
		routine.NewService,
		pipeline.NewService,
		wire.Bind(new(routine.GenAIClient), new(*gemini.Client)),
		wire.Bind(new(analysis.VisionClient), new(*gemini.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
