// Package llm runs short, single-turn structured generations against hosted
// language models. Every provider returns JSON checked against the request
// schema, and failures surface as *Error with a Kind callers can act on.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured reply per request.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider sends requests to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, is passed to the provider's native structured
	// output mode and the reply is checked against it.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Response is a provider reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// Truncated is set when the provider stopped at the token limit.
	Truncated bool
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is the sum of input and output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// reply is what a provider adapter extracts from its SDK response before
// the shared checks in finish run.
type reply struct {
	content   string
	usage     Usage
	model     string
	truncated bool
}

// finish turns an adapter reply into a Response. Structured requests fail
// with KindTruncated when the reply was cut off and KindInvalidOutput when it
// does not satisfy the schema.
func finish(provider string, req Request, r reply) (*Response, error) {
	content := json.RawMessage(r.content)
	if req.Schema != nil {
		if r.truncated {
			return nil, &Error{Kind: KindTruncated, Provider: provider, Content: content}
		}
		if err := req.Schema.Check(content); err != nil {
			if e, ok := err.(*Error); ok {
				e.Provider = provider
			}
			return nil, err
		}
	}
	return &Response{
		Content:   content,
		Usage:     r.usage,
		Model:     r.model,
		Truncated: r.truncated,
	}, nil
}
