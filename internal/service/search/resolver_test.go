package search

import (
	"errors"
	"testing"

	"github.com/sandevgo/gptmcp/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		defaults stubDefaults
		req      core.SearchRequest
		want     core.Resolved
	}{
		{
			name:     "overrides win",
			defaults: testDefaults(),
			req: core.SearchRequest{
				Prompt:            "q",
				Model:             "o3",
				ReasoningEffort:   core.EffortHigh,
				Verbosity:         core.VerbosityLow,
				SearchContextSize: core.SearchContextHigh,
				EnableWebSearch:   true,
			},
			want: core.Resolved{
				Prompt: "q", Model: "o3", Effort: core.EffortHigh,
				Verbosity: core.VerbosityLow, SearchContextSize: core.SearchContextHigh,
				EnableWebSearch: true,
			},
		},
		{
			name: "environment defaults",
			defaults: stubDefaults{
				model: "gpt-4o", effort: core.EffortLow,
				verbosity: core.VerbosityHigh, size: core.SearchContextLow,
			},
			req: core.SearchRequest{Prompt: "q"},
			want: core.Resolved{
				Prompt: "q", Model: "gpt-4o", Effort: core.EffortLow,
				Verbosity: core.VerbosityHigh, SearchContextSize: core.SearchContextLow,
			},
		},
		{
			name:     "hard-coded fallbacks",
			defaults: stubDefaults{},
			req:      core.SearchRequest{Prompt: "q"},
			want: core.Resolved{
				Prompt: "q", Model: FallbackModel, Effort: FallbackEffort,
				Verbosity: FallbackVerbosity, SearchContextSize: FallbackSearchContextSize,
			},
		},
		{
			name:     "override enums are case-insensitive",
			defaults: testDefaults(),
			req:      core.SearchRequest{Prompt: "q", ReasoningEffort: " HIGH "},
			want: core.Resolved{
				Prompt: "q", Model: "gpt-5", Effort: core.EffortHigh,
				Verbosity: core.VerbosityMedium, SearchContextSize: core.SearchContextMedium,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewResolver(tt.defaults).Resolve(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_InvalidArguments(t *testing.T) {
	tests := []struct {
		name     string
		req      core.SearchRequest
		wantName string
	}{
		{"empty prompt", core.SearchRequest{Prompt: ""}, "prompt"},
		{"blank prompt", core.SearchRequest{Prompt: "  \n"}, "prompt"},
		{"bad effort", core.SearchRequest{Prompt: "q", ReasoningEffort: "extreme"}, "reasoning_effort"},
		{"bad verbosity", core.SearchRequest{Prompt: "q", Verbosity: "chatty"}, "verbosity"},
		{"bad context size", core.SearchRequest{Prompt: "q", SearchContextSize: "huge"}, "search_context_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(testDefaults()).Resolve(tt.req)

			var invalid *core.InvalidArgumentError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.wantName, invalid.Name)
		})
	}
}
