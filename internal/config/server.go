package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/gptmcp/pkg/log"
)

type TransportType string

const (
	TransportStdio TransportType = "stdio"
	TransportHTTP  TransportType = "http"
	TransportSSE   TransportType = "sse"
)

type ServerConfig struct {
	Transport TransportType `env:"MCP_TRANSPORT" envDefault:"stdio"`
	Addr      string        `env:"MCP_ADDR" envDefault:"127.0.0.1:8080"`
	// Public URL announced to SSE clients; the listen address when empty
	BaseURL string `env:"MCP_BASE_URL"`
}

func ParseServerConfig() (*ServerConfig, error) {
	c := &ServerConfig{}
	if err := env.Parse(c); err != nil {
		return nil, withEnvKeys(c, err)
	}
	switch c.Transport {
	case TransportStdio, TransportHTTP, TransportSSE:
	default:
		return nil, fmt.Errorf("unsupported MCP_TRANSPORT: %s", c.Transport)
	}
	return c, nil
}

func NewServerConfig(ctx context.Context) *ServerConfig {
	c, err := ParseServerConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse MCP server config")
	}
	return c
}
