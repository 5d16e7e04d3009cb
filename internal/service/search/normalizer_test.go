package search

import (
	"errors"
	"testing"

	"github.com/sandevgo/gptmcp/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		shape core.CallShape
		raw   string
		want  string
	}{
		{
			name:  "responses output_text",
			shape: core.ShapeReasoningTool,
			raw:   `{"output_text":"Rust 1.90 is out."}`,
			want:  "Rust 1.90 is out.",
		},
		{
			name:  "responses output items",
			shape: core.ShapeReasoningTool,
			raw: `{"output":[
				{"type":"web_search_call","status":"completed"},
				{"type":"message","content":[
					{"type":"output_text","text":"Part one. "},
					{"type":"refusal","refusal":"no"},
					{"type":"output_text","text":"Part two."}
				]}
			]}`,
			want: "Part one. Part two.",
		},
		{
			name:  "responses empty",
			shape: core.ShapeReasoningTool,
			raw:   `{"output":[]}`,
			want:  NoResponseTextPlaceholder,
		},
		{
			name:  "responses absent",
			shape: core.ShapeReasoningTool,
			raw:   `{}`,
			want:  NoResponseTextPlaceholder,
		},
		{
			name:  "responses blank text",
			shape: core.ShapeReasoningTool,
			raw:   `{"output_text":"   "}`,
			want:  NoResponseTextPlaceholder,
		},
		{
			name:  "chat content",
			shape: core.ShapeClassicChat,
			raw:   `{"choices":[{"message":{"role":"assistant","content":"hi"}},{"message":{"content":"ignored"}}]}`,
			want:  "hi",
		},
		{
			name:  "chat null content",
			shape: core.ShapeClassicChat,
			raw:   `{"choices":[{"message":{"content":null}}]}`,
			want:  NoResponsePlaceholder,
		},
		{
			name:  "chat no choices",
			shape: core.ShapeClassicChat,
			raw:   `{"choices":[]}`,
			want:  NoResponsePlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.shape, []byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		shape core.CallShape
		raw   string
	}{
		{"not json", core.ShapeReasoningTool, `<html>bad gateway</html>`},
		{"not an object", core.ShapeClassicChat, `["a"]`},
		{"output not array", core.ShapeReasoningTool, `{"output":"text"}`},
		{"choices not array", core.ShapeClassicChat, `{"choices":{"0":1}}`},
		{"content not string", core.ShapeClassicChat, `{"choices":[{"message":{"content":[1,2]}}]}`},
		{"unknown shape", "TELEPATHY", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.shape, []byte(tt.raw))

			var malformed *core.MalformedResponseError
			require.True(t, errors.As(err, &malformed))
		})
	}
}

func TestNormalize_ErrorBody(t *testing.T) {
	_, err := Normalize(core.ShapeClassicChat, []byte(`{"error":{"message":"model overloaded"}}`))

	var backendErr *core.BackendCallError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, "model overloaded", err.Error())
}

func TestNormalizeText_Idempotent(t *testing.T) {
	for _, shape := range []core.CallShape{core.ShapeReasoningTool, core.ShapeClassicChat} {
		for _, text := range []string{"", "  ", "answer", NoResponsePlaceholder, NoResponseTextPlaceholder} {
			once := NormalizeText(shape, text)
			assert.Equal(t, once, NormalizeText(shape, once))
			assert.NotEmpty(t, once)
		}
	}
}
