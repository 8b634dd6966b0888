package ollama

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/OFFIS-RIT/mdmeta/pkg/ai"
	"github.com/OFFIS-RIT/mdmeta/pkg/logger"

	"github.com/ollama/ollama/api"
	"github.com/pkoukk/tiktoken-go"
)

// defaultContextTokens is the context window Ollama allocates unless told otherwise.
const defaultContextTokens = 4096

// responseHeadroom is reserved for the generated answer on top of the prompt.
const responseHeadroom = 200

var (
	encOnce sync.Once
	enc     *tiktoken.Tiktoken
	encErr  error
)

// countTokens estimates the token count of text. If the tokenizer cannot be
// loaded it falls back to roughly four bytes per token.
func countTokens(text string) int {
	encOnce.Do(func() {
		enc, encErr = tiktoken.GetEncoding("o200k_base")
		if encErr != nil {
			logger.Debug("tiktoken encoding unavailable, estimating tokens", "err", encErr)
		}
	})
	if encErr != nil {
		return (len(text) + 3) / 4
	}
	return len(enc.Encode(text, nil, nil))
}

// contextSize returns the num_ctx option for a request, or 0 when the backend
// default suffices.
func contextSize(req ai.CompletionRequest) int {
	tokens := responseHeadroom + countTokens(req.System) + countTokens(req.Prompt)
	if tokens > defaultContextTokens {
		return tokens
	}
	return 0
}

func formatFor(req ai.CompletionRequest) (json.RawMessage, error) {
	if req.Format != ai.FormatJSON {
		return nil, nil
	}
	if req.Schema == nil {
		return json.RawMessage(`"json"`), nil
	}
	return ai.MarshalSchema(req.Schema)
}

// Complete sends a single generation request to Ollama's /api/generate endpoint
// and returns the full response text.
func (c *CompletionOllamaClient) Complete(
	ctx context.Context,
	req ai.CompletionRequest,
	opts ...ai.GenerateOption,
) (ai.CompletionResponse, error) {
	defaults := ai.GenerateOptions{Temperature: 0.3}
	if req.Format == ai.FormatJSON {
		defaults.Temperature = 0.1
	}
	options := ai.ApplyOptions(defaults, opts...)

	format, err := formatFor(req)
	if err != nil {
		return ai.CompletionResponse{}, ai.NewServiceError("ollama generate", req.Model, err)
	}

	stream := false
	genReq := &api.GenerateRequest{
		Model:   req.Model,
		Prompt:  req.Prompt,
		System:  req.System,
		Format:  format,
		Stream:  &stream,
		Options: map[string]any{"temperature": options.Temperature},
	}
	if options.Thinking != "" {
		genReq.Think = &api.ThinkValue{
			Value: options.Thinking,
		}
	}
	if n := contextSize(req); n > 0 {
		genReq.Options["num_ctx"] = n
	}

	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return ai.CompletionResponse{}, ai.NewServiceError("ollama generate", req.Model, err)
	}
	defer c.reqLock.Release(1)

	var text strings.Builder
	var metrics api.Metrics
	err = c.Client.Generate(ctx, genReq, func(gr api.GenerateResponse) error {
		text.WriteString(gr.Response)
		if gr.Done {
			metrics = gr.Metrics
		}
		return nil
	})
	if err != nil {
		return ai.CompletionResponse{}, ai.NewServiceError("ollama generate", req.Model, err)
	}
	c.recordMetrics(metrics)

	return ai.CompletionResponse{Text: text.String()}, nil
}

// ModelAvailable reports whether the model is installed on the Ollama server.
// Untagged names match their ":latest" variant.
func (c *CompletionOllamaClient) ModelAvailable(ctx context.Context, model string) (bool, error) {
	list, err := c.Client.List(ctx)
	if err != nil {
		return false, ai.NewServiceError("ollama list", model, err)
	}

	for _, m := range list.Models {
		for _, name := range []string{m.Name, m.Model} {
			if name == model || name == model+":latest" {
				return true, nil
			}
		}
	}
	return false, nil
}
