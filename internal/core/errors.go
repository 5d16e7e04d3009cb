package core

import (
	"fmt"
	"strings"
)

// ConfigurationError is fatal: the process must not start serving tools.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

type UnsupportedModelError struct {
	Model     string
	Supported []string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("Model '%s' is not supported. Supported models: %s",
		e.Model, strings.Join(e.Supported, ", "))
}

// InvalidArgumentError reports a per-call argument that failed validation.
type InvalidArgumentError struct {
	Name    string
	Value   string
	Allowed []string
}

func (e *InvalidArgumentError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s is required", e.Name)
	}
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid %s '%s'", e.Name, e.Value)
	}
	return fmt.Sprintf("invalid %s '%s', expected one of: %s",
		e.Name, e.Value, strings.Join(e.Allowed, ", "))
}

// BackendCallError wraps a failed outbound API call (network, rate limit,
// backend-side error).
type BackendCallError struct {
	Err error
}

func (e *BackendCallError) Error() string { return e.Err.Error() }

func (e *BackendCallError) Unwrap() error { return e.Err }

// MalformedResponseError means the backend answered with a shape we cannot
// decode.
type MalformedResponseError struct {
	Shape  CallShape
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s response: %s", e.Shape, e.Reason)
}
