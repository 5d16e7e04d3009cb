package core

import "context"

// Backend issues a single planned call and returns the raw response body.
type Backend interface {
	Execute(ctx context.Context, plan CallPlan) ([]byte, error)
	Models(ctx context.Context) ([]Model, error)
}
