// Package ai defines the boundary to a large language model. Matching never
// depends on it; only the advisor does.
package ai

import "context"

// Generator turns a system instruction and a user message into text.
type Generator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}
