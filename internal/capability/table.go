// Package capability records which optional request parameters each backend
// model family accepts. Models do not describe themselves, so this table is the
// only place that knows; extend the rules, not the call-building code.
package capability

import "strings"

type Feature uint8

const (
	// WebSearch means the model has a native web search tool and is called
	// through the Responses API.
	WebSearch Feature = 1 << iota
	ReasoningEffort
	Verbosity
	// SamplingParams covers temperature and top_p.
	SamplingParams
	// MinimalEffort means the model accepts the "minimal" reasoning effort.
	MinimalEffort
)

var featureNames = map[Feature]string{
	WebSearch:       "web_search",
	ReasoningEffort: "reasoning_effort",
	Verbosity:       "verbosity",
	SamplingParams:  "sampling_params",
	MinimalEffort:   "minimal_effort",
}

func (f Feature) String() string {
	var names []string
	for _, bit := range []Feature{WebSearch, ReasoningEffort, Verbosity, SamplingParams, MinimalEffort} {
		if f&bit != 0 {
			names = append(names, featureNames[bit])
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

func (f Feature) Has(feature Feature) bool {
	return f&feature == feature
}

type Match uint8

const (
	Exact Match = iota
	Prefix
	Substring
)

type Rule struct {
	Match    Match
	Pattern  string
	Features Feature
}

func (r Rule) matches(model string) bool {
	switch r.Match {
	case Exact:
		return model == r.Pattern
	case Prefix:
		return strings.HasPrefix(model, r.Pattern)
	case Substring:
		return strings.Contains(model, r.Pattern)
	}
	return false
}

// Table is read-only after construction and safe for concurrent use.
type Table struct {
	rules      []Rule
	noSampling []string
	fallback   Feature
}

// New builds a table. Rules are evaluated in order and the first match wins;
// any model containing one of noSampling loses SamplingParams afterwards.
// Models matching no rule get fallback.
func New(rules []Rule, noSampling []string, fallback Feature) *Table {
	return &Table{
		rules:      append([]Rule(nil), rules...),
		noSampling: append([]string(nil), noSampling...),
		fallback:   fallback,
	}
}

var defaultRules = []Rule{
	{Match: Prefix, Pattern: "gpt-5", Features: WebSearch | ReasoningEffort | Verbosity | MinimalEffort},
	{Match: Prefix, Pattern: "o3", Features: WebSearch | ReasoningEffort},
	{Match: Prefix, Pattern: "o4", Features: WebSearch | ReasoningEffort},
	{Match: Prefix, Pattern: "o1", Features: ReasoningEffort},
	{Match: Substring, Pattern: "search-preview", Features: 0},
	{Match: Prefix, Pattern: "gpt-4o", Features: SamplingParams},
	{Match: Prefix, Pattern: "gpt-4.1", Features: SamplingParams},
	{Match: Prefix, Pattern: "gpt-4", Features: SamplingParams},
	{Match: Prefix, Pattern: "gpt-3.5", Features: SamplingParams},
	{Match: Prefix, Pattern: "chatgpt-", Features: SamplingParams},
}

var defaultNoSampling = []string{"search-preview", "o1", "o3", "o4", "gpt-5"}

// Default is the table for the OpenAI model families known at release time.
func Default() *Table {
	return New(defaultRules, defaultNoSampling, SamplingParams)
}

func (t *Table) Features(model string) Feature {
	model = normalize(model)

	features := t.fallback
	for _, r := range t.rules {
		if r.matches(model) {
			features = r.Features
			break
		}
	}

	for _, s := range t.noSampling {
		if strings.Contains(model, s) {
			features &^= SamplingParams
			break
		}
	}
	return features
}

func (t *Table) Supports(model string, feature Feature) bool {
	return t.Features(model).Has(feature)
}

func normalize(model string) string {
	model = strings.ToLower(strings.TrimSpace(model))
	// Fine-tuned ids look like "ft:gpt-4o-mini:org::id".
	model = strings.TrimPrefix(model, "ft:")
	return model
}
