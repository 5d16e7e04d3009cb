package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/gptmcp/internal/capability"
	"github.com/sandevgo/gptmcp/internal/config"
	"github.com/sandevgo/gptmcp/internal/providers/llm"
	"github.com/sandevgo/gptmcp/internal/service/search"
	"github.com/sandevgo/gptmcp/internal/transport/mcp"
	"github.com/sandevgo/gptmcp/pkg/log"
	"github.com/sandevgo/gptmcp/pkg/srv"
)

// NewServices builds the search service and the MCP transport around it.
func NewServices(ctx context.Context, cfg *config.OpenAIConfig) []srv.Service {
	serverCfg := config.NewServerConfig(ctx)

	svc := NewSearchService(ctx, cfg)
	server := mcp.NewTransportServer(mcp.NewServer(svc), serverCfg)

	return []srv.Service{server}
}

func NewSearchService(ctx context.Context, cfg *config.OpenAIConfig) *search.Service {
	log.FromCtx(ctx).Debug().
		Str("model", cfg.GetModel()).
		Strs("supported_models", cfg.GetSupportedModels()).
		Bool("discovery", cfg.IsModelDiscovery()).
		Msg("search defaults")

	return search.NewService(cfg, capability.Default(), llm.NewClient(cfg))
}

// loadConfig reads the .env file and the environment. Any error ends the
// command with status 1 before a transport starts.
func loadConfig(ctx context.Context) (*config.OpenAIConfig, error) {
	envFile := config.GetEnvFilePath()
	if err := initEnv(ctx, envFile); err != nil {
		return nil, err
	}

	cfg, err := config.ParseOpenAIConfig()
	if err != nil {
		return nil, fmt.Errorf("%w\nset OPENAI_API_KEY in the environment or in %s", err, envFile)
	}
	return cfg, nil
}

func initEnv(ctx context.Context, envFile string) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// Variables already set in the environment take precedence.
	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
