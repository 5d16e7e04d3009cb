package search

import (
	"strings"

	"github.com/sandevgo/gptmcp/internal/capability"
	"github.com/sandevgo/gptmcp/internal/core"
)

const (
	baseSystemPrompt = "You are a helpful research assistant. Answer accurately and concisely, " +
		"say so when you are unsure, and prefer primary sources."

	simulatedSearchPrompt = "Web search is requested for this query but is not natively available " +
		"to this model. Act as if you had searched the web: draw on the most recent information " +
		"you know, state the date your knowledge is current to, cite sources by name or URL where " +
		"you can, and clearly flag anything that may have changed since."

	webSearchToolType = "web_search_preview"
)

type sampling struct {
	Temperature float64
	TopP        float64
}

// Higher effort means more deterministic sampling.
var samplingByEffort = map[core.Effort]sampling{
	core.EffortHigh:    {Temperature: 0.3, TopP: 0.9},
	core.EffortMedium:  {Temperature: 0.7, TopP: 0.95},
	core.EffortLow:     {Temperature: 0.9, TopP: 1.0},
	core.EffortMinimal: {Temperature: 0.9, TopP: 1.0},
}

// Builder turns a request into exactly one backend call plan. It performs no
// I/O and is safe for concurrent use.
type Builder struct {
	resolver *Resolver
	table    *capability.Table
	allowed  []string
}

// NewBuilder creates a Builder. An empty allowed list disables the model
// restriction.
func NewBuilder(resolver *Resolver, table *capability.Table, allowed []string) *Builder {
	return &Builder{
		resolver: resolver,
		table:    table,
		allowed:  append([]string(nil), allowed...),
	}
}

func (b *Builder) Build(req core.SearchRequest) (core.CallPlan, error) {
	res, err := b.resolver.Resolve(req)
	if err != nil {
		return core.CallPlan{}, err
	}

	model, ok := b.canonical(res.Model)
	if !ok {
		return core.CallPlan{}, &core.UnsupportedModelError{Model: res.Model, Supported: b.Allowed()}
	}
	res.Model = model

	features := b.table.Features(res.Model)

	plan := core.CallPlan{
		Model:  res.Model,
		Shape:  core.ShapeClassicChat,
		Effort: res.Effort,
	}
	if features.Has(capability.WebSearch) {
		plan.Shape = core.ShapeReasoningTool
	}
	if features.Has(capability.ReasoningEffort) &&
		plan.Effort == core.EffortMinimal &&
		!features.Has(capability.MinimalEffort) {
		plan.Effort = core.EffortLow
	}
	if features.Has(capability.Verbosity) {
		plan.Verbosity = res.Verbosity
	}

	switch plan.Shape {
	case core.ShapeReasoningTool:
		plan.Payload = b.responsesPayload(&plan, res, features)
	default:
		plan.Payload = b.chatPayload(&plan, res, features)
	}

	return plan, nil
}

func (b *Builder) responsesPayload(plan *core.CallPlan, res core.Resolved, features capability.Feature) map[string]any {
	payload := map[string]any{
		"model": plan.Model,
		"input": res.Prompt,
	}

	if res.EnableWebSearch {
		plan.SearchContextSize = res.SearchContextSize
		payload["tools"] = []map[string]any{{
			"type":                webSearchToolType,
			"search_context_size": string(res.SearchContextSize),
		}}
	}
	if features.Has(capability.ReasoningEffort) {
		payload["reasoning"] = map[string]any{"effort": string(plan.Effort)}
	}
	if plan.Verbosity != "" {
		payload["text"] = map[string]any{"verbosity": string(plan.Verbosity)}
	}
	return payload
}

func (b *Builder) chatPayload(plan *core.CallPlan, res core.Resolved, features capability.Feature) map[string]any {
	system := baseSystemPrompt
	if res.EnableWebSearch {
		system += "\n\n" + simulatedSearchPrompt
	}

	payload := map[string]any{
		"model": plan.Model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": res.Prompt},
		},
	}

	if features.Has(capability.ReasoningEffort) {
		payload["reasoning_effort"] = string(plan.Effort)
	} else if features.Has(capability.SamplingParams) {
		s := samplingByEffort[plan.Effort]
		payload["temperature"] = s.Temperature
		payload["top_p"] = s.TopP
	}
	if plan.Verbosity != "" {
		payload["verbosity"] = string(plan.Verbosity)
	}
	return payload
}

func (b *Builder) IsAllowed(model string) bool {
	_, ok := b.canonical(model)
	return ok
}

// canonical matches model against the allow-list case-insensitively and
// returns the allow-list spelling of it.
func (b *Builder) canonical(model string) (string, bool) {
	model = strings.TrimSpace(model)
	if len(b.allowed) == 0 {
		return model, true
	}
	for _, m := range b.allowed {
		if strings.EqualFold(m, model) {
			return m, true
		}
	}
	return "", false
}

// Allowed returns the curated allow-list, or nil when unrestricted.
func (b *Builder) Allowed() []string {
	if len(b.allowed) == 0 {
		return nil
	}
	return append([]string(nil), b.allowed...)
}

func (b *Builder) Table() *capability.Table {
	return b.table
}
