package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/sandevgo/gptmcp/internal/capability"
	"github.com/sandevgo/gptmcp/internal/config"
	"github.com/sandevgo/gptmcp/internal/core"
	"github.com/sandevgo/gptmcp/internal/service/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	raw    []byte
	err    error
	models []core.Model
	calls  int
}

func (b *stubBackend) Execute(context.Context, core.CallPlan) ([]byte, error) {
	b.calls++
	return b.raw, b.err
}

func (b *stubBackend) Models(context.Context) ([]core.Model, error) {
	return b.models, b.err
}

func testConfig() *config.OpenAIConfig {
	return &config.OpenAIConfig{
		APIKey:            "sk-test",
		Model:             "gpt-5",
		ReasoningEffort:   "medium",
		Verbosity:         "medium",
		SearchContextSize: "medium",
		SupportedModels:   []string{"gpt-5", "o3", "gpt-4o"},
		RestrictModels:    true,
	}
}

func newTestClient(t *testing.T, backend *stubBackend) *client.Client {
	t.Helper()

	svc := search.NewService(testConfig(), capability.Default(), backend)
	cli, err := client.NewInProcessClient(NewServer(svc))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cli.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	require.NoError(t, cli.Start(ctx))

	req := mcpproto.InitializeRequest{}
	req.Params.ProtocolVersion = mcpproto.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcpproto.Implementation{Name: "test", Version: "0.0.0"}
	_, err = cli.Initialize(ctx, req)
	require.NoError(t, err)

	return cli
}

func callTool(t *testing.T, cli *client.Client, name string, args map[string]any) (string, bool) {
	t.Helper()

	req := mcpproto.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := cli.CallTool(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)

	var sb strings.Builder
	for _, c := range res.Content {
		switch tc := c.(type) {
		case mcpproto.TextContent:
			sb.WriteString(tc.Text)
		case *mcpproto.TextContent:
			sb.WriteString(tc.Text)
		}
	}
	return sb.String(), res.IsError
}

func TestServer_ListTools(t *testing.T) {
	cli := newTestClient(t, &stubBackend{})

	res, err := cli.ListTools(context.Background(), mcpproto.ListToolsRequest{})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		if tool.Name == ToolAdvancedSearch {
			assert.Equal(t, []string{"prompt"}, tool.InputSchema.Required)
			assert.Contains(t, tool.InputSchema.Properties, "enable_web_search")
		}
	}
	assert.ElementsMatch(t, []string{ToolListModels, ToolAdvancedSearch}, names)
}

func TestServer_AdvancedSearch(t *testing.T) {
	backend := &stubBackend{raw: []byte(`{"output_text":"Rust 1.90.0"}`)}
	cli := newTestClient(t, backend)

	text, isErr := callTool(t, cli, ToolAdvancedSearch, map[string]any{
		"prompt":           "latest Rust release",
		"model":            "gpt-5",
		"reasoning_effort": "high",
	})
	assert.False(t, isErr)
	assert.Equal(t, "Model Used: gpt-5\nReasoning Effort: high\nVerbosity: medium\n\nRust 1.90.0", text)
}

func TestServer_AdvancedSearch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		backend    *stubBackend
		args       map[string]any
		wantPrefix string
		wantCalls  int
	}{
		{
			name:       "missing prompt",
			backend:    &stubBackend{},
			args:       map[string]any{"model": "gpt-5"},
			wantPrefix: "Error: prompt is required",
		},
		{
			name:       "unsupported model",
			backend:    &stubBackend{},
			args:       map[string]any{"prompt": "q", "model": "gpt-2"},
			wantPrefix: "Error: Model 'gpt-2' is not supported. Supported models: gpt-5, o3, gpt-4o",
		},
		{
			name:       "invalid effort",
			backend:    &stubBackend{},
			args:       map[string]any{"prompt": "q", "reasoning_effort": "extreme"},
			wantPrefix: "Error: invalid reasoning_effort 'extreme'",
		},
		{
			name:       "backend failure",
			backend:    &stubBackend{err: &core.BackendCallError{Err: errors.New("connection refused")}},
			args:       map[string]any{"prompt": "q"},
			wantPrefix: "Error in advanced search: connection refused",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := newTestClient(t, tt.backend)

			text, isErr := callTool(t, cli, ToolAdvancedSearch, tt.args)
			assert.True(t, isErr)
			assert.True(t, strings.HasPrefix(text, tt.wantPrefix), text)
			assert.Equal(t, tt.wantCalls, tt.backend.calls)
		})
	}
}

func TestServer_ListModels(t *testing.T) {
	cli := newTestClient(t, &stubBackend{})

	text, isErr := callTool(t, cli, ToolListModels, nil)
	assert.False(t, isErr)
	assert.Contains(t, text, "Chat Models with Web Search:\n- gpt-5\n- o3\n")
	assert.Contains(t, text, "Chat Models with Simulated Web Search:\n- gpt-4o\n")
}

func TestServer_StdioStopsOnEOF(t *testing.T) {
	svc := search.NewService(testConfig(), capability.Default(), &stubBackend{})
	s := NewTransportServer(NewServer(svc), &config.ServerConfig{Transport: config.TransportStdio})
	s.in = strings.NewReader("")
	s.out = &strings.Builder{}

	require.NoError(t, s.Start(context.Background()))

	select {
	case <-s.Done():
	default:
		t.Fatal("done channel not closed")
	}
	assert.NoError(t, s.Shutdown(context.Background()))
}
