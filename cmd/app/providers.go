package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/seraface/seraface-server/internal/domain/analysis"
	"github.com/seraface/seraface-server/internal/domain/pipeline"
	"github.com/seraface/seraface-server/internal/infra/config"
	"github.com/seraface/seraface-server/internal/infra/llm/gemini"
	"github.com/seraface/seraface-server/internal/infra/sessionstore"
)

func provideGeminiClient(cfg *config.Config, logger *slog.Logger) *gemini.Client {
	return gemini.NewClient(context.Background(), cfg.LLM, logger)
}

func provideAnalysisConfig(cfg *config.Config) analysis.Config {
	return analysis.Config{MaxImageBytes: cfg.Analysis.MaxImageBytes}
}

func provideSessionStore(cfg *config.Config, logger *slog.Logger) pipeline.Store {
	if cfg.Session.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return sessionstore.NewMemoryStore(cfg.Session.TTL)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return sessionstore.NewMemoryStore(cfg.Session.TTL)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("valkey session store enabled", "addr", cfg.Session.Redis.Addr)
			return sessionstore.NewValkeyStore(client, "skincare", cfg.Session.TTL)
		}
	}
	return sessionstore.NewMemoryStore(cfg.Session.TTL)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Session.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Session.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Session.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
