package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/gptmcp/internal/core"
)

// ResponseFormatter renders tool results as the plain text the calling agent
// reads.
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

// Result prefixes the text with the configuration that was actually applied,
// since defaults may differ from what was requested.
func (f *ResponseFormatter) Result(r core.NormalizedResult) string {
	var sb strings.Builder
	sb.WriteString(f.Label("Model Used", r.ModelUsed))
	sb.WriteString(f.Label("Reasoning Effort", string(r.EffortUsed)))
	if r.VerbosityUsed != "" {
		sb.WriteString(f.Label("Verbosity", string(r.VerbosityUsed)))
	}
	sb.WriteString("\n")
	sb.WriteString(r.Text)
	return sb.String()
}

// Error renders any per-request failure in-band. op names the failed
// operation for errors that are not self-describing.
func (f *ResponseFormatter) Error(op string, err error) string {
	var unsupported *core.UnsupportedModelError
	var invalid *core.InvalidArgumentError
	switch {
	case errors.As(err, &unsupported), errors.As(err, &invalid):
		return "Error: " + err.Error()
	default:
		return fmt.Sprintf("Error in %s: %s", op, err.Error())
	}
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("%s: %s\n", label, value)
}

func (f *ResponseFormatter) List(items []string) string {
	if len(items) == 0 {
		return "- (none)\n"
	}
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("- %s\n", item))
	}
	return sb.String()
}

func (f *ResponseFormatter) Section(title, content string) string {
	return fmt.Sprintf("%s:\n%s", title, content)
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}
