package core

const (
	AppName          = "gpt-mcp"
	AppVersion       = "0.2.0"
	AppRepositoryURL = "https://github.com/sandevgo/gptmcp"
)

// Effort is the caller-facing reasoning knob.
type Effort string

const (
	EffortMinimal Effort = "minimal"
	EffortLow     Effort = "low"
	EffortMedium  Effort = "medium"
	EffortHigh    Effort = "high"
)

var Efforts = []Effort{EffortMinimal, EffortLow, EffortMedium, EffortHigh}

type Verbosity string

const (
	VerbosityLow    Verbosity = "low"
	VerbosityMedium Verbosity = "medium"
	VerbosityHigh   Verbosity = "high"
)

var Verbosities = []Verbosity{VerbosityLow, VerbosityMedium, VerbosityHigh}

type SearchContextSize string

const (
	SearchContextLow    SearchContextSize = "low"
	SearchContextMedium SearchContextSize = "medium"
	SearchContextHigh   SearchContextSize = "high"
)

var SearchContextSizes = []SearchContextSize{SearchContextLow, SearchContextMedium, SearchContextHigh}

// CallShape selects one of the two backend request/response schemas.
type CallShape string

const (
	// ShapeReasoningTool is the Responses API with a native web search tool.
	ShapeReasoningTool CallShape = "REASONING_TOOL"
	// ShapeClassicChat is the Chat Completions API.
	ShapeClassicChat CallShape = "CLASSIC_CHAT"
)

// SearchRequest is one advanced_search invocation.
type SearchRequest struct {
	Prompt            string            `json:"prompt"`
	Model             string            `json:"model,omitempty"`
	ReasoningEffort   Effort            `json:"reasoning_effort,omitempty"`
	Verbosity         Verbosity         `json:"verbosity,omitempty"`
	SearchContextSize SearchContextSize `json:"search_context_size,omitempty"`
	EnableWebSearch   bool              `json:"enable_web_search"`
}

// Resolved holds a request's parameters after defaults have been merged in.
type Resolved struct {
	Prompt            string
	Model             string
	Effort            Effort
	Verbosity         Verbosity
	SearchContextSize SearchContextSize
	EnableWebSearch   bool
}

// CallPlan is exactly one backend call. Payload only carries parameters the
// model is known to accept.
type CallPlan struct {
	Model             string
	Shape             CallShape
	Effort            Effort
	Verbosity         Verbosity         // empty when not sent
	SearchContextSize SearchContextSize // empty when no search tool is attached
	Payload           map[string]any
}

type NormalizedResult struct {
	ModelUsed     string
	EffortUsed    Effort
	VerbosityUsed Verbosity
	Text          string
}

type Model struct {
	ID      string `json:"id"`
	OwnedBy string `json:"owned_by,omitempty"`
}
