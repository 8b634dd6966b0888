package ai

import (
	"context"
)

// OutputFormat constrains the shape of a completion.
type OutputFormat int

const (
	// FormatNone requests plain free-form text.
	FormatNone OutputFormat = iota
	// FormatJSON requests a JSON document. When CompletionRequest.Schema is set
	// the backend is asked to follow that schema as well.
	FormatJSON
)

func (f OutputFormat) String() string {
	switch f {
	case FormatJSON:
		return "json"
	default:
		return "none"
	}
}

// CompletionRequest is a single stateless request against a completion service.
type CompletionRequest struct {
	Model  string       // Model identifier to use for generation
	Prompt string       // User prompt
	System string       // Optional system text
	Format OutputFormat // Optional output-format constraint
	Schema any          // Optional JSON schema, only used with FormatJSON
}

// CompletionResponse holds the raw text returned by the completion service.
type CompletionResponse struct {
	Text string
}

// GenerateOptions holds sampling configuration for completion requests.
type GenerateOptions struct {
	Temperature float64 // Sampling temperature (0.0-2.0)
	Thinking    string  // Extended thinking mode configuration
}

// ModelMetrics contains performance metrics from AI model operations.
type ModelMetrics struct {
	InputTokens    int     `json:"input_tokens"`
	OutputTokens   int     `json:"output_tokens"`
	TotalTokens    int     `json:"total_tokens"`
	DurationMs     int64   `json:"duration_ms"`
	TokenPerSecond float32 `json:"tokens_per_second"`
}

// GenerateOption is a functional option for configuring completion requests.
type GenerateOption func(*GenerateOptions)

// WithTemperature returns a GenerateOption that sets the sampling temperature.
// Higher values (e.g., 1.0) produce more random outputs, while lower values
// (e.g., 0.2) make outputs more focused and deterministic.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// WithThinking returns a GenerateOption that enables extended thinking mode.
func WithThinking(thinking string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Thinking = thinking
	}
}

// ApplyOptions folds opts over the given defaults.
func ApplyOptions(defaults GenerateOptions, opts ...GenerateOption) GenerateOptions {
	for _, o := range opts {
		o(&defaults)
	}
	return defaults
}

// CompletionClient is the only contract the metadata pipeline has with a
// completion backend. Implementations carry no per-call state and may be
// shared by every stage of a run.
type CompletionClient interface {
	Complete(
		ctx context.Context,
		req CompletionRequest,
		opts ...GenerateOption,
	) (CompletionResponse, error)

	// ModelAvailable reports whether the backend can serve the given model.
	ModelAvailable(ctx context.Context, model string) (bool, error)

	ResetMetrics()
	GetMetrics() ModelMetrics
}
