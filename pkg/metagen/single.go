package metagen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/mdmeta/pkg/ai"
	"github.com/OFFIS-RIT/mdmeta/pkg/article"
	"github.com/OFFIS-RIT/mdmeta/pkg/logger"
	"github.com/OFFIS-RIT/mdmeta/pkg/prompt"
)

const (
	templateExampleLead = "Examples of good responses are:"
	templateExampleN    = 3
)

var templateInstructions = [...][]string{
	Title: {
		"Analyze the text above and generate an interesting title that captures the main purpose of the article. " +
			"The title should be short and less than a sentence in length.",
	},
	Description: {
		"Analyze the text above and generate an abstract that captures the main points of the content. " +
			"The abstract should be less than 5 sentences in length.",
	},
	Genre: {
		"You are a literary critic. Which genre best applies to the article above?",
		"Select a genre from the following list: " + strings.Join(article.GenreNames(), ", "),
	},
	Keywords: {
		"You are an expert in SEO and keyword research. " +
			"Analyze the article above and provide a list of 6 keywords that capture the main points and supporting evidence.",
	},
}

// SingleStage asks for the structured answer in one request. The article,
// the instruction and fenced JSON examples share one prompt.
type SingleStage struct {
	client ai.CompletionClient
	model  prompt.Model
	Log    *logger.Logger
}

func NewSingleStage(client ai.CompletionClient, model prompt.Model) *SingleStage {
	return &SingleStage{client: client, model: model}
}

// templateExamples returns the serialized examples embedded for kind.
func templateExamples(kind FieldKind) ([]string, error) {
	var values []any
	switch kind {
	case Title:
		for _, ex := range SelectExamples(titleTemplateExamples, templateExampleN) {
			values = append(values, ex)
		}
	case Description:
		for _, ex := range SelectExamples(summaryTemplateExamples, templateExampleN) {
			values = append(values, ex)
		}
	case Keywords:
		for _, ex := range SelectExamples(keywordTemplateExamples, templateExampleN) {
			values = append(values, splitList(ex))
		}
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		b, err := json.Marshal(StructuredResponse[any]{Response: v})
		if err != nil {
			return nil, err
		}
		out = append(out, string(b))
	}
	return out, nil
}

// Prompt renders the template for kind.
func (s *SingleStage) Prompt(content string, kind FieldKind) (string, error) {
	if !kind.valid() {
		return "", fmt.Errorf("unknown field kind %d", int(kind))
	}
	examples, err := templateExamples(kind)
	if err != nil {
		return "", err
	}

	doc := prompt.NewDocument(s.model).Append(content)
	for _, line := range templateInstructions[kind] {
		doc.Append(line)
	}
	if len(examples) > 0 {
		doc.Append(templateExampleLead)
		for _, ex := range examples {
			doc.AppendExample(ex)
		}
	}
	return doc.Render()
}

func (s *SingleStage) Produce(ctx context.Context, content string, kind FieldKind) (string, error) {
	text, err := s.Prompt(content, kind)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Complete(ctx, ai.CompletionRequest{
		Model:  s.model.String(),
		Prompt: text,
		Format: ai.FormatJSON,
		Schema: schemaFor(kind),
	})
	if err != nil {
		var svcErr *ai.ServiceError
		if errors.As(err, &svcErr) {
			return "", svcErr.WithPrompt(text)
		}
		return "", ai.NewServiceError("complete", s.model.String(), err).WithPrompt(text)
	}
	s.Log.Debug("Single-stage response", "kind", kind, "raw", resp.Text)

	return resp.Text, nil
}
