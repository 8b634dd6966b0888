package metagen

import (
	"context"

	"github.com/OFFIS-RIT/mdmeta/internal/util"
	"github.com/OFFIS-RIT/mdmeta/pkg/ai"
	"github.com/OFFIS-RIT/mdmeta/pkg/logger"
	"github.com/OFFIS-RIT/mdmeta/pkg/prompt"
)

// FieldProducer returns model output for a field that ParseField can decode.
type FieldProducer interface {
	Produce(ctx context.Context, content string, kind FieldKind) (string, error)
}

// Sanitize strips line breaks and tabs from intermediate model output.
func Sanitize(text string) string {
	return util.SanitizeInline(text)
}

// TwoStage generates a free-form answer, sanitizes it and has a second model
// call format it.
type TwoStage struct {
	Generator *Generator
	Formatter *Formatter
	Log       *logger.Logger
}

func NewTwoStage(client ai.CompletionClient, generateModel, formatModel prompt.Model) *TwoStage {
	return &TwoStage{
		Generator: NewGenerator(client, generateModel),
		Formatter: NewFormatter(client, formatModel),
	}
}

func (s *TwoStage) Produce(ctx context.Context, content string, kind FieldKind) (string, error) {
	generated, err := s.Generator.Generate(ctx, content, kind)
	if err != nil {
		return "", err
	}
	s.Log.Debug("Generator response", "kind", kind, "raw", generated.Text)

	formatted, err := s.Formatter.Format(ctx, Sanitize(generated.Text), kind)
	if err != nil {
		return "", err
	}
	s.Log.Debug("Formatter response", "kind", kind, "raw", formatted.Text)

	return formatted.Text, nil
}
