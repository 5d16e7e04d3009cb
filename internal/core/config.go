package core

// SearchDefaults is the environment-derived half of the configuration
// resolver's precedence chain.
type SearchDefaults interface {
	GetModel() string
	GetReasoningEffort() Effort
	GetVerbosity() Verbosity
	GetSearchContextSize() SearchContextSize
	GetSupportedModels() []string
	IsModelDiscovery() bool
}
