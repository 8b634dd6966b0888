package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/mdmeta/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
)

// Complete sends the request as a single-turn chat completion. The system
// text, when present, is sent as a system message ahead of the prompt.
//
// Example:
//
//	resp, err := client.Complete(ctx, ai.CompletionRequest{
//		Model:  "gpt-4o-mini",
//		Prompt: "What should be the title of this article?",
//	})
func (c *CompletionOpenAIClient) Complete(
	ctx context.Context,
	req ai.CompletionRequest,
	opts ...ai.GenerateOption,
) (ai.CompletionResponse, error) {
	defaults := ai.GenerateOptions{Temperature: 0.3}
	if req.Format == ai.FormatJSON {
		defaults.Temperature = 0.1
	}
	options := ai.ApplyOptions(defaults, opts...)

	msgs := []openai.ChatCompletionMessageParamUnion{}
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}
	msgs = append(msgs, openai.UserMessage(req.Prompt))

	body := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    msgs,
		Temperature: openai.Float(options.Temperature),
	}

	if req.Format == ai.FormatJSON {
		if req.Schema != nil {
			body.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
					JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
						Name:   "structured_response",
						Schema: ai.GenerateSchema(req.Schema),
						Strict: openai.Bool(true),
					},
				},
			}
		} else {
			body.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
			}
		}
	}

	if options.Thinking != "" {
		// Needed fix for gpt-5 models as they dont support temperature other than 1.0 when reasoning is enabled
		if c.chatURL == "" {
			body.Temperature = openai.Float(1.0)
		}
		body.ReasoningEffort = shared.ReasoningEffort(options.Thinking)
	}

	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return ai.CompletionResponse{}, ai.NewServiceError("openai chat completion", req.Model, err)
	}
	defer c.reqLock.Release(1)

	start := time.Now()
	response, err := c.ChatClient.Chat.Completions.New(ctx, body)
	if err != nil {
		return ai.CompletionResponse{}, ai.NewServiceError("openai chat completion", req.Model, err)
	}
	duration := time.Since(start).Milliseconds()

	c.modifyMetrics(ai.ModelMetrics{
		InputTokens:  int(response.Usage.PromptTokens),
		OutputTokens: int(response.Usage.CompletionTokens),
		TotalTokens:  int(response.Usage.TotalTokens),
		DurationMs:   duration,
	})

	if len(response.Choices) == 0 {
		return ai.CompletionResponse{}, ai.NewServiceError(
			"openai chat completion", req.Model, fmt.Errorf("no choices in response from model"),
		)
	}

	return ai.CompletionResponse{Text: response.Choices[0].Message.Content}, nil
}

// ModelAvailable reports whether the endpoint lists the model.
func (c *CompletionOpenAIClient) ModelAvailable(ctx context.Context, model string) (bool, error) {
	page, err := c.ChatClient.Models.List(ctx)
	if err != nil {
		return false, ai.NewServiceError("openai list models", model, err)
	}
	for _, m := range page.Data {
		if m.ID == model {
			return true, nil
		}
	}
	return false, nil
}
