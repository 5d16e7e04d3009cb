package search

import (
	"strings"

	"github.com/sandevgo/gptmcp/internal/core"
)

// Fallbacks used when neither the call nor the environment provides a value.
const (
	FallbackModel             = "gpt-5"
	FallbackEffort            = core.EffortMedium
	FallbackVerbosity         = core.VerbosityMedium
	FallbackSearchContextSize = core.SearchContextMedium
)

// Resolver merges per-call overrides with environment defaults. It holds no
// mutable state.
type Resolver struct {
	defaults core.SearchDefaults
}

func NewResolver(defaults core.SearchDefaults) *Resolver {
	return &Resolver{defaults: defaults}
}

// Resolve applies override > environment default > fallback for each
// parameter. Override enums that do not parse are an InvalidArgumentError.
func (r *Resolver) Resolve(req core.SearchRequest) (core.Resolved, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return core.Resolved{}, &core.InvalidArgumentError{Name: "prompt"}
	}

	res := core.Resolved{
		Prompt:          req.Prompt,
		EnableWebSearch: req.EnableWebSearch,
	}

	res.Model = firstNonEmpty(strings.TrimSpace(req.Model), r.defaults.GetModel(), FallbackModel)

	effort, err := pick(string(req.ReasoningEffort), "reasoning_effort", core.ParseEffort, core.Efforts)
	if err != nil {
		return core.Resolved{}, err
	}
	res.Effort = firstNonEmpty(effort, r.defaults.GetReasoningEffort(), FallbackEffort)

	verbosity, err := pick(string(req.Verbosity), "verbosity", core.ParseVerbosity, core.Verbosities)
	if err != nil {
		return core.Resolved{}, err
	}
	res.Verbosity = firstNonEmpty(verbosity, r.defaults.GetVerbosity(), FallbackVerbosity)

	size, err := pick(string(req.SearchContextSize), "search_context_size", core.ParseSearchContextSize, core.SearchContextSizes)
	if err != nil {
		return core.Resolved{}, err
	}
	res.SearchContextSize = firstNonEmpty(size, r.defaults.GetSearchContextSize(), FallbackSearchContextSize)

	return res, nil
}

func pick[T ~string](raw, name string, parse func(string) (T, bool), allowed []T) (T, error) {
	var zero T
	if strings.TrimSpace(raw) == "" {
		return zero, nil
	}
	v, ok := parse(raw)
	if !ok {
		return zero, &core.InvalidArgumentError{Name: name, Value: raw, Allowed: core.Values(allowed)}
	}
	return v, nil
}

func firstNonEmpty[T ~string](values ...T) T {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	var zero T
	return zero
}
