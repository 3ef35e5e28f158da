package ai

import "context"

// ModelClient is the narrow contract for the hosted language model: one
// request/response call carrying a system instruction and the user text.
// The caller bears full responsibility for tolerating the output format.
type ModelClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
