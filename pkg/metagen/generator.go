package metagen

import (
	"context"
	"fmt"

	"github.com/OFFIS-RIT/mdmeta/pkg/ai"
	"github.com/OFFIS-RIT/mdmeta/pkg/prompt"
)

const editorPersona = "You are an editor at major publishing company. The following article has just arrived at your desk."

// Generator asks the model an open question about an article and returns the
// free-form answer.
type Generator struct {
	client ai.CompletionClient
	model  prompt.Model
}

func NewGenerator(client ai.CompletionClient, model prompt.Model) *Generator {
	return &Generator{client: client, model: model}
}

// Prompt builds the system and user text for kind. The system text carries
// the article and is bounded by the model budget.
func (g *Generator) Prompt(content string, kind FieldKind) (system string, user string, err error) {
	if !kind.valid() {
		return "", "", fmt.Errorf("unknown field kind %d", int(kind))
	}

	system, err = prompt.NewDocument(g.model).
		Append(editorPersona).
		Append("###Article:").
		Append(content).
		Render()
	if err != nil {
		return "", "", err
	}

	return system, kind.Guideline() + "\n" + kind.Limitation(), nil
}

// Generate requests a plain-text answer for kind.
func (g *Generator) Generate(ctx context.Context, content string, kind FieldKind) (ai.CompletionResponse, error) {
	system, user, err := g.Prompt(content, kind)
	if err != nil {
		return ai.CompletionResponse{}, err
	}

	return g.client.Complete(ctx, ai.CompletionRequest{
		Model:  g.model.String(),
		Prompt: user,
		System: system,
		Format: ai.FormatNone,
	})
}
