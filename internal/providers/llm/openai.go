package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/sandevgo/gptmcp/internal/core"
	"github.com/sandevgo/gptmcp/pkg/log"
	"github.com/sandevgo/gptmcp/pkg/retry"
)

var _ core.Backend = (*Client)(nil)

// endpoints maps each call shape to its API path, relative to the base URL.
var endpoints = map[core.CallShape]string{
	core.ShapeReasoningTool: "responses",
	core.ShapeClassicChat:   "chat/completions",
}

type Config interface {
	GetAPIKey() string
	GetBaseURL() string
	GetMaxRetries() int
	GetTimeout() time.Duration
}

// Client is the single outbound path to the OpenAI API. The timeout applies to
// each attempt and the retry budget is shared by every call.
type Client struct {
	api     openai.Client
	retrier *retry.Retrier
}

func NewClient(cfg Config) *Client {
	retryCfg := retry.NewDefaultConfig()
	retryCfg.MaxRetries = cfg.GetMaxRetries()
	retryCfg.Retryable = IsRetryable

	return NewClientWithRetry(cfg, retryCfg)
}

func NewClientWithRetry(cfg Config, retryCfg *retry.Config) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.GetAPIKey()),
		option.WithRequestTimeout(cfg.GetTimeout()),
		// retries are ours, see IsRetryable
		option.WithMaxRetries(0),
		option.WithHeader("User-Agent", core.AppName+"/"+core.AppVersion),
	}
	if base := strings.TrimSpace(cfg.GetBaseURL()); base != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(base, "/")+"/"))
	}

	return &Client{
		api:     openai.NewClient(opts...),
		retrier: retry.NewRetrier(retryCfg),
	}
}

// Execute sends the plan's payload as-is and returns the raw response body.
func (c *Client) Execute(ctx context.Context, plan core.CallPlan) ([]byte, error) {
	path, ok := endpoints[plan.Shape]
	if !ok {
		return nil, fmt.Errorf("no endpoint for call shape %q", plan.Shape)
	}

	logger := log.FromCtx(ctx)
	logger.Debug().
		Str("model", plan.Model).
		Str("shape", string(plan.Shape)).
		Str("path", path).
		Msg("calling backend")

	start := time.Now()
	var raw []byte
	err := c.retrier.Do(ctx, func() error {
		raw = nil
		return c.api.Post(ctx, path, plan.Payload, &raw)
	})
	if err != nil {
		logger.Warn().Err(err).Str("model", plan.Model).Msg("backend call failed")
		return nil, &core.BackendCallError{Err: err}
	}

	logger.Debug().
		Str("model", plan.Model).
		Dur("elapsed", time.Since(start)).
		Int("bytes", len(raw)).
		Msg("backend call finished")
	return raw, nil
}

// Models lists every model id the credential can see.
func (c *Client) Models(ctx context.Context) ([]core.Model, error) {
	var models []core.Model
	err := c.retrier.Do(ctx, func() error {
		models = models[:0]
		iter := c.api.Models.ListAutoPaging(ctx)
		for iter.Next() {
			m := iter.Current()
			models = append(models, core.Model{ID: m.ID, OwnedBy: m.OwnedBy})
		}
		return iter.Err()
	})
	if err != nil {
		return nil, &core.BackendCallError{Err: fmt.Errorf("list models: %w", err)}
	}
	return models, nil
}

// IsRetryable reports whether an API error is transient: transport failures,
// per-attempt timeouts, rate limits and server-side errors.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusRequestTimeout,
			apiErr.StatusCode == http.StatusConflict,
			apiErr.StatusCode == http.StatusTooManyRequests,
			apiErr.StatusCode >= http.StatusInternalServerError:
			return true
		default:
			return false
		}
	}
	return true
}
