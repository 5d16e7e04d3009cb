package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	mcpproto "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/gptmcp/internal/core"
	"github.com/sandevgo/gptmcp/internal/service/search"
	"github.com/sandevgo/gptmcp/pkg/log"
)

const (
	ToolListModels     = "list_models"
	ToolAdvancedSearch = "advanced_search"
)

// NewServer builds the MCP server with both tools registered. Tool handlers
// never return a protocol error: every failure becomes an error text result.
func NewServer(svc *search.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(
		core.AppName,
		core.AppVersion,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)

	h := &handlers{svc: svc}
	s.AddTool(listModelsTool(), withRequestLog(ToolListModels, h.listModels))
	s.AddTool(advancedSearchTool(), withRequestLog(ToolAdvancedSearch, h.advancedSearch))
	return s
}

// withRequestLog tags every log line of one tool call with a request id.
func withRequestLog(tool string, next mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
		logger := log.FromCtx(ctx).With().
			Str("request_id", uuid.New().String()).
			Str("tool", tool).
			Logger()
		ctx = logger.WithContext(ctx)

		start := time.Now()
		res, err := next(ctx, req)
		logger.Info().
			Dur("elapsed", time.Since(start)).
			Bool("is_error", res != nil && res.IsError).
			Msg("tool call finished")
		return res, err
	}
}

func listModelsTool() mcpproto.Tool {
	return mcpproto.NewTool(ToolListModels,
		mcpproto.WithDescription("List the OpenAI models this server can call, grouped by whether they search the web natively."),
	)
}

func advancedSearchTool() mcpproto.Tool {
	return mcpproto.NewTool(ToolAdvancedSearch,
		mcpproto.WithDescription("Ask an OpenAI model a question, optionally with web search. "+
			"Models with native web search use it; other models are asked to answer from their most recent knowledge. "+
			"Unset parameters fall back to the server defaults."),
		mcpproto.WithString("prompt",
			mcpproto.Required(),
			mcpproto.Description("The question or task for the model"),
		),
		mcpproto.WithString("model",
			mcpproto.Description("Model id, e.g. gpt-5 or gpt-4o. Use list_models to see the options"),
		),
		mcpproto.WithString("reasoning_effort",
			mcpproto.Description("How much the model should think before answering"),
			mcpproto.Enum(core.Values(core.Efforts)...),
		),
		mcpproto.WithString("verbosity",
			mcpproto.Description("Answer length, for models that support it"),
			mcpproto.Enum(core.Values(core.Verbosities)...),
		),
		mcpproto.WithString("search_context_size",
			mcpproto.Description("How much web content native search pulls in"),
			mcpproto.Enum(core.Values(core.SearchContextSizes)...),
		),
		mcpproto.WithBoolean("enable_web_search",
			mcpproto.Description("Search the web (natively or simulated, depending on the model)"),
			mcpproto.DefaultBool(true),
		),
	)
}

type handlers struct {
	svc *search.Service
}

func (h *handlers) listModels(ctx context.Context, _ mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	text, err := h.svc.ListModels(ctx)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("list_models failed")
		return mcpproto.NewToolResultError(h.svc.Formatter().Error("list models", err)), nil
	}
	return mcpproto.NewToolResultText(text), nil
}

func (h *handlers) advancedSearch(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	f := h.svc.Formatter()

	prompt, err := req.RequireString("prompt")
	if err != nil {
		return mcpproto.NewToolResultError(f.Error("advanced search", &core.InvalidArgumentError{Name: "prompt"})), nil
	}

	sr := core.SearchRequest{
		Prompt:            prompt,
		Model:             req.GetString("model", ""),
		ReasoningEffort:   core.Effort(req.GetString("reasoning_effort", "")),
		Verbosity:         core.Verbosity(req.GetString("verbosity", "")),
		SearchContextSize: core.SearchContextSize(req.GetString("search_context_size", "")),
		EnableWebSearch:   req.GetBool("enable_web_search", true),
	}

	res, err := h.svc.AdvancedSearch(ctx, sr)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("model", sr.Model).Msg("advanced_search failed")
		return mcpproto.NewToolResultError(f.Error("advanced search", err)), nil
	}
	return mcpproto.NewToolResultText(f.Result(res)), nil
}
