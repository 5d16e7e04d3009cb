package search

import (
	"errors"
	"strings"

	"github.com/sandevgo/gptmcp/internal/core"
	"github.com/tidwall/gjson"
)

const (
	NoResponseTextPlaceholder = "No response text available."
	NoResponsePlaceholder     = "No response available."
)

// backendResponse is one of the two response shapes the backend can return.
type backendResponse interface {
	shape() core.CallShape
	text() string
}

// responsesBody is the Responses API result; OutputText aggregates every
// output_text part of every message item.
type responsesBody struct {
	OutputText string
}

func (responsesBody) shape() core.CallShape { return core.ShapeReasoningTool }
func (r responsesBody) text() string        { return r.OutputText }

// chatBody is the Chat Completions result; only the first choice is used.
type chatBody struct {
	Content string
}

func (chatBody) shape() core.CallShape { return core.ShapeClassicChat }
func (c chatBody) text() string        { return c.Content }

// Normalize extracts the text of a raw backend response. Missing or empty
// content yields the shape's placeholder; only structurally invalid bodies
// are errors.
func Normalize(shape core.CallShape, raw []byte) (string, error) {
	resp, err := decode(shape, raw)
	if err != nil {
		return "", err
	}
	return NormalizeText(resp.shape(), resp.text()), nil
}

// NormalizeText substitutes the shape's placeholder for blank text. Applying
// it to its own output changes nothing.
func NormalizeText(shape core.CallShape, text string) string {
	if strings.TrimSpace(text) != "" {
		return text
	}
	if shape == core.ShapeReasoningTool {
		return NoResponseTextPlaceholder
	}
	return NoResponsePlaceholder
}

func decode(shape core.CallShape, raw []byte) (backendResponse, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &core.MalformedResponseError{Shape: shape, Reason: "body is not valid JSON"}
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, &core.MalformedResponseError{Shape: shape, Reason: "body is not a JSON object"}
	}
	if msg := root.Get("error.message"); msg.Type == gjson.String && msg.Str != "" {
		return nil, &core.BackendCallError{Err: errors.New(msg.Str)}
	}

	switch shape {
	case core.ShapeReasoningTool:
		return decodeResponses(root)
	case core.ShapeClassicChat:
		return decodeChat(root)
	}
	return nil, &core.MalformedResponseError{Shape: shape, Reason: "unknown call shape"}
}

func decodeResponses(root gjson.Result) (backendResponse, error) {
	if ot := root.Get("output_text"); ot.Type == gjson.String {
		return responsesBody{OutputText: ot.Str}, nil
	}

	output := root.Get("output")
	if !isArrayOrAbsent(output) {
		return nil, &core.MalformedResponseError{Shape: core.ShapeReasoningTool, Reason: "output is not an array"}
	}

	var sb strings.Builder
	output.ForEach(func(_, item gjson.Result) bool {
		if item.Get("type").String() != "message" {
			return true
		}
		item.Get("content").ForEach(func(_, part gjson.Result) bool {
			if part.Get("type").String() == "output_text" {
				sb.WriteString(part.Get("text").String())
			}
			return true
		})
		return true
	})

	return responsesBody{OutputText: sb.String()}, nil
}

func decodeChat(root gjson.Result) (backendResponse, error) {
	choices := root.Get("choices")
	if !isArrayOrAbsent(choices) {
		return nil, &core.MalformedResponseError{Shape: core.ShapeClassicChat, Reason: "choices is not an array"}
	}

	content := choices.Get("0.message.content")
	if content.Exists() && content.Type != gjson.String && content.Type != gjson.Null {
		return nil, &core.MalformedResponseError{Shape: core.ShapeClassicChat, Reason: "message content is not a string"}
	}
	return chatBody{Content: content.String()}, nil
}

func isArrayOrAbsent(r gjson.Result) bool {
	return !r.Exists() || r.Type == gjson.Null || r.IsArray()
}
