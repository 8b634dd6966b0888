package metagen

import (
	"context"
	"fmt"

	"github.com/OFFIS-RIT/mdmeta/pkg/ai"
	"github.com/OFFIS-RIT/mdmeta/pkg/prompt"
)

const (
	formatterSystem   = "You are a REST API and can only respond in JSON. You have been given a strict structure to respond in."
	formatterExamples = "Here are examples of appropriate responses:"
	formatterData     = "Here is the data that must be formatted: "
)

// Formatter re-prompts the model to wrap an answer in a StructuredResponse.
type Formatter struct {
	client ai.CompletionClient
	model  prompt.Model
}

func NewFormatter(client ai.CompletionClient, model prompt.Model) *Formatter {
	return &Formatter{client: client, model: model}
}

// Prompt builds the user text for kind: the few-shot answers followed by the
// data to reformat.
func (f *Formatter) Prompt(content string, kind FieldKind) (string, error) {
	if !kind.valid() {
		return "", fmt.Errorf("unknown field kind %d", int(kind))
	}
	examples, err := exampleResponses(kind)
	if err != nil {
		return "", err
	}

	doc := prompt.NewDocument(f.model).Append(formatterExamples)
	for _, ex := range examples {
		doc.Append(ex)
	}
	return doc.Append(formatterData + content).Render()
}

// Format requests a JSON answer constrained to the wrapper schema of kind.
func (f *Formatter) Format(ctx context.Context, content string, kind FieldKind) (ai.CompletionResponse, error) {
	user, err := f.Prompt(content, kind)
	if err != nil {
		return ai.CompletionResponse{}, err
	}

	return f.client.Complete(ctx, ai.CompletionRequest{
		Model:  f.model.String(),
		Prompt: user,
		System: formatterSystem,
		Format: ai.FormatJSON,
		Schema: schemaFor(kind),
	})
}
