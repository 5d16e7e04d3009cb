package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/gptmcp/internal/core"
)

var _ core.SearchDefaults = (*OpenAIConfig)(nil)

// OpenAIConfig is built once at startup and never mutated afterwards.
type OpenAIConfig struct {
	APIKey     string  `env:"OPENAI_API_KEY,required,notEmpty"`
	BaseURL    string  `env:"OPENAI_BASE_URL"`
	MaxRetries int     `env:"OPENAI_MAX_RETRIES" envDefault:"3"`
	Timeout    float64 `env:"OPENAI_API_TIMEOUT" envDefault:"60"`

	Model             string `env:"OPENAI_MODEL" envDefault:"gpt-5"`
	ReasoningEffort   string `env:"REASONING_EFFORT" envDefault:"medium"`
	Verbosity         string `env:"VERBOSITY" envDefault:"medium"`
	SearchContextSize string `env:"SEARCH_CONTEXT_SIZE" envDefault:"medium"`

	// Curated allow-list, enforced only while RestrictModels is set
	SupportedModels []string `env:"SUPPORTED_MODELS" envSeparator:"," envDefault:"gpt-5,gpt-5-mini,gpt-5-nano,o3,o4-mini,gpt-4.1,gpt-4o,gpt-4o-mini"`
	RestrictModels  bool     `env:"RESTRICT_MODELS" envDefault:"true"`
	ModelDiscovery  bool     `env:"MODEL_DISCOVERY" envDefault:"false"`
}

// ParseOpenAIConfig reads and validates the environment. Any failure is a
// *core.ConfigurationError.
func ParseOpenAIConfig() (*OpenAIConfig, error) {
	c := &OpenAIConfig{}
	if err := env.Parse(c); err != nil {
		return nil, &core.ConfigurationError{Err: withEnvKeys(c, err)}
	}
	if err := c.validate(); err != nil {
		return nil, &core.ConfigurationError{Err: err}
	}
	return c, nil
}

func (c *OpenAIConfig) validate() error {
	var errs []error

	if strings.TrimSpace(c.APIKey) == "" {
		errs = append(errs, errors.New("OPENAI_API_KEY is empty"))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("OPENAI_MAX_RETRIES must be >= 0, got %d", c.MaxRetries))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("OPENAI_API_TIMEOUT must be > 0, got %v", c.Timeout))
	}
	if strings.TrimSpace(c.Model) == "" {
		errs = append(errs, errors.New("OPENAI_MODEL is empty"))
	}
	if _, ok := core.ParseEffort(c.ReasoningEffort); !ok {
		errs = append(errs, fmt.Errorf("REASONING_EFFORT %q is not one of %v", c.ReasoningEffort, core.Values(core.Efforts)))
	}
	if _, ok := core.ParseVerbosity(c.Verbosity); !ok {
		errs = append(errs, fmt.Errorf("VERBOSITY %q is not one of %v", c.Verbosity, core.Values(core.Verbosities)))
	}
	if _, ok := core.ParseSearchContextSize(c.SearchContextSize); !ok {
		errs = append(errs, fmt.Errorf("SEARCH_CONTEXT_SIZE %q is not one of %v", c.SearchContextSize, core.Values(core.SearchContextSizes)))
	}

	c.SupportedModels = cleanList(c.SupportedModels)
	if c.RestrictModels && len(c.SupportedModels) == 0 {
		errs = append(errs, errors.New("RESTRICT_MODELS is set but SUPPORTED_MODELS is empty"))
	}

	return errors.Join(errs...)
}

func (c *OpenAIConfig) GetAPIKey() string {
	return c.APIKey
}

func (c *OpenAIConfig) GetBaseURL() string {
	return c.BaseURL
}

func (c *OpenAIConfig) GetMaxRetries() int {
	return c.MaxRetries
}

func (c *OpenAIConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}

func (c *OpenAIConfig) GetModel() string {
	return strings.TrimSpace(c.Model)
}

func (c *OpenAIConfig) GetReasoningEffort() core.Effort {
	e, _ := core.ParseEffort(c.ReasoningEffort)
	return e
}

func (c *OpenAIConfig) GetVerbosity() core.Verbosity {
	v, _ := core.ParseVerbosity(c.Verbosity)
	return v
}

func (c *OpenAIConfig) GetSearchContextSize() core.SearchContextSize {
	s, _ := core.ParseSearchContextSize(c.SearchContextSize)
	return s
}

// GetSupportedModels returns nil when the deployment does not restrict models.
func (c *OpenAIConfig) GetSupportedModels() []string {
	if !c.RestrictModels {
		return nil
	}
	out := make([]string, len(c.SupportedModels))
	copy(out, c.SupportedModels)
	return out
}

func (c *OpenAIConfig) IsModelDiscovery() bool {
	return c.ModelDiscovery
}

// Masked returns a copy safe to print.
func (c *OpenAIConfig) Masked() *OpenAIConfig {
	m := *c
	m.SupportedModels = append([]string(nil), c.SupportedModels...)
	m.APIKey = maskSecret(c.APIKey)
	return &m
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:3] + strings.Repeat("*", len(s)-7) + s[len(s)-4:]
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
