package search

import (
	"context"
	"sync"

	"github.com/sandevgo/gptmcp/internal/core"
)

type stubDefaults struct {
	model     string
	effort    core.Effort
	verbosity core.Verbosity
	size      core.SearchContextSize
	supported []string
	discovery bool
}

func (d stubDefaults) GetModel() string                             { return d.model }
func (d stubDefaults) GetReasoningEffort() core.Effort              { return d.effort }
func (d stubDefaults) GetVerbosity() core.Verbosity                 { return d.verbosity }
func (d stubDefaults) GetSearchContextSize() core.SearchContextSize { return d.size }
func (d stubDefaults) GetSupportedModels() []string                 { return d.supported }
func (d stubDefaults) IsModelDiscovery() bool                       { return d.discovery }

func testDefaults() stubDefaults {
	return stubDefaults{
		model:     "gpt-5",
		effort:    core.EffortMedium,
		verbosity: core.VerbosityMedium,
		size:      core.SearchContextMedium,
		supported: []string{"gpt-5", "gpt-5-mini", "o3", "o1", "gpt-4o", "gpt-4o-mini"},
	}
}

type fakeBackend struct {
	mu     sync.Mutex
	plans  []core.CallPlan
	raw    []byte
	err    error
	models []core.Model
}

func (b *fakeBackend) Execute(_ context.Context, plan core.CallPlan) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.plans = append(b.plans, plan)
	return b.raw, b.err
}

func (b *fakeBackend) Models(context.Context) ([]core.Model, error) {
	return b.models, b.err
}

func (b *fakeBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.plans)
}
