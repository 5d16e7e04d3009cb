package search

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/sandevgo/gptmcp/internal/capability"
	"github.com/sandevgo/gptmcp/internal/core"
	"github.com/sandevgo/gptmcp/pkg/log"
	"golang.org/x/sync/singleflight"
)

// Model id fragments that never belong to a chat-capable model.
var nonChatFragments = []string{
	"embedding", "whisper", "tts", "dall-e", "image", "moderation",
	"transcribe", "realtime", "audio", "computer-use",
}

var chatPrefixes = []string{"gpt-", "o1", "o3", "o4", "chatgpt-"}

var completionModels = map[string]bool{"davinci-002": true, "babbage-002": true}

// discoveryTimeout bounds the shared model listing call.
const discoveryTimeout = 2 * time.Minute

// Service is the tool surface: list_models and advanced_search. All of its
// dependencies are read-only, so one Service serves any number of concurrent
// calls.
type Service struct {
	defaults  core.SearchDefaults
	builder   *Builder
	backend   core.Backend
	formatter *ResponseFormatter

	// concurrent discovery listings share one backend call
	discovery singleflight.Group
}

func NewService(defaults core.SearchDefaults, table *capability.Table, backend core.Backend) *Service {
	return &Service{
		defaults:  defaults,
		builder:   NewBuilder(NewResolver(defaults), table, defaults.GetSupportedModels()),
		backend:   backend,
		formatter: NewResponseFormatter(),
	}
}

func (s *Service) Formatter() *ResponseFormatter {
	return s.formatter
}

// AdvancedSearch runs one request through resolve, build, call and
// normalize. No backend call is made when the plan cannot be built.
func (s *Service) AdvancedSearch(ctx context.Context, req core.SearchRequest) (core.NormalizedResult, error) {
	plan, err := s.builder.Build(req)
	if err != nil {
		return core.NormalizedResult{}, err
	}

	logger := log.FromCtx(ctx).With().
		Str("model", plan.Model).
		Str("shape", string(plan.Shape)).
		Str("effort", string(plan.Effort)).
		Logger()
	logger.Info().Bool("web_search", req.EnableWebSearch).Msg("advanced search")

	raw, err := s.backend.Execute(ctx, plan)
	if err != nil {
		var backendErr *core.BackendCallError
		if !errors.As(err, &backendErr) {
			err = &core.BackendCallError{Err: err}
		}
		return core.NormalizedResult{}, err
	}

	text, err := Normalize(plan.Shape, raw)
	if err != nil {
		logger.Warn().Err(err).Msg("could not normalize backend response")
		return core.NormalizedResult{}, err
	}

	return core.NormalizedResult{
		ModelUsed:     plan.Model,
		EffortUsed:    plan.Effort,
		VerbosityUsed: plan.Verbosity,
		Text:          text,
	}, nil
}

// ListModels enumerates the curated allow-list, or the live chat-capable
// models when discovery is on or no allow-list is configured.
func (s *Service) ListModels(ctx context.Context) (string, error) {
	allowed := s.builder.Allowed()
	if s.defaults.IsModelDiscovery() || len(allowed) == 0 {
		return s.discoverModels(ctx)
	}

	var native, chat []string
	for _, m := range allowed {
		if s.builder.Table().Supports(m, capability.WebSearch) {
			native = append(native, m)
		} else {
			chat = append(chat, m)
		}
	}
	sort.Strings(native)
	sort.Strings(chat)

	f := s.formatter
	return f.Combine(
		"Available OpenAI Models (Supported by this server):\n",
		f.Section("Chat Models with Web Search", f.List(native)),
		f.Section("Chat Models with Simulated Web Search", f.List(chat)),
	), nil
}

func (s *Service) discoverModels(ctx context.Context) (string, error) {
	// The shared call is detached from the caller that started it; each
	// caller still stops waiting when its own context ends.
	ch := s.discovery.DoChan("models", func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), discoveryTimeout)
		defer cancel()
		return s.backend.Models(callCtx)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return "", res.Err
	}
	if res.Shared {
		log.FromCtx(ctx).Debug().Msg("model listing shared with a concurrent call")
	}
	models := res.Val.([]core.Model)

	chat, completion := PartitionModels(models)
	for i, id := range chat {
		if s.builder.Table().Supports(id, capability.WebSearch) {
			chat[i] = id + " (web search)"
		}
	}

	f := s.formatter
	return f.Combine(
		"Available OpenAI Models (reported by the API):\n",
		f.Section("Chat Models", f.List(chat)),
		f.Section("Instruction/Completion Models", f.List(completion)),
	), nil
}

// PartitionModels keeps chat-capable ids and splits them into chat and
// instruction-completion groups, each sorted.
func PartitionModels(models []core.Model) (chat, completion []string) {
	for _, m := range models {
		id := strings.ToLower(strings.TrimSpace(m.ID))
		switch {
		case completionModels[id] || strings.Contains(id, "instruct"):
			completion = append(completion, m.ID)
		case isChatModel(id):
			chat = append(chat, m.ID)
		}
	}
	sort.Strings(chat)
	sort.Strings(completion)
	return chat, completion
}

func isChatModel(id string) bool {
	for _, frag := range nonChatFragments {
		if strings.Contains(id, frag) {
			return false
		}
	}
	for _, p := range chatPrefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}
