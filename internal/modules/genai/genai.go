// Package genai is the boundary to the generative model service. Model
// output is untrusted: callers get raw text back and must validate it
// themselves before acting on it.
package genai

import "context"

// Request is one prompt exchange with the model.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	JSONOutput  bool
	MaxTokens   int
}

// Client generates text for a fixed instruction plus one user turn.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ClientFunc adapts a plain function to Client.
type ClientFunc func(ctx context.Context, req Request) (string, error)

func (f ClientFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
