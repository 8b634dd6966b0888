// Package generate runs the metadata pipeline for one source file and writes
// the annotated article.
package generate

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/OFFIS-RIT/mdmeta/internal/storage"
	"github.com/OFFIS-RIT/mdmeta/pkg/ai"
	"github.com/OFFIS-RIT/mdmeta/pkg/article"
	"github.com/OFFIS-RIT/mdmeta/pkg/frontmatter"
	"github.com/OFFIS-RIT/mdmeta/pkg/logger"
	"github.com/OFFIS-RIT/mdmeta/pkg/metagen"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Result describes a finished run.
type Result struct {
	RunID       string
	Metadata    article.Metadata
	FrontMatter string
	FileName    string
	Location    string
	Metrics     ai.ModelMetrics
}

// Service wires a completion backend to an output sink.
type Service struct {
	client ai.CompletionClient
	sink   storage.Sink
	now    func() time.Time
}

func NewService(client ai.CompletionClient, sink storage.Sink) *Service {
	return &Service{client: client, sink: sink, now: time.Now}
}

// Run validates params, checks both models, generates the metadata and
// stores "<slug>.md". Nothing is written unless every field was produced.
func (s *Service) Run(ctx context.Context, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	params = params.normalize()

	content, err := storage.ReadSource(ctx, params.SourcePath)
	if err != nil {
		return nil, &IOError{Op: "read", Path: params.SourcePath, Err: err}
	}

	runID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create run id: %w", err)
	}
	log := logger.With("run", runID)
	start := time.Now()

	if err := s.checkModels(ctx, params); err != nil {
		return nil, err
	}

	log.Info("Generating metadata",
		"source", params.SourcePath,
		"strategy", params.Strategy,
		"generate_model", params.GenerateModel,
		"format_model", params.FormatModel,
	)
	s.client.ResetMetrics()

	pipeline := metagen.NewPipeline(
		s.producer(params, log),
		metagen.WithLogger(log),
		metagen.WithClock(s.now),
		metagen.WithJSONPolicy(jsonPolicy(params)),
	)
	meta, err := pipeline.Run(ctx, metagen.Input{Content: string(content), Author: params.Author})
	if err != nil {
		return nil, err
	}

	matter, err := frontmatter.Render(meta)
	if err != nil {
		return nil, err
	}
	doc, err := frontmatter.Compose(meta, string(content))
	if err != nil {
		return nil, err
	}

	location, err := s.sink.Put(ctx, meta.FileName(), []byte(doc))
	if err != nil {
		return nil, &IOError{Op: "write", Path: meta.FileName(), Err: err}
	}

	metrics := s.client.GetMetrics()
	logMetrics(log, metrics, time.Since(start))

	return &Result{
		RunID:       runID,
		Metadata:    meta,
		FrontMatter: matter,
		FileName:    meta.FileName(),
		Location:    location,
		Metrics:     metrics,
	}, nil
}

func (s *Service) checkModels(ctx context.Context, params Params) error {
	for _, model := range []string{params.GenerateModel.String(), params.FormatModel.String()} {
		ok, err := s.client.ModelAvailable(ctx, model)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrModelUnavailable, model)
		}
	}
	return nil
}

func (s *Service) producer(params Params, log *logger.Logger) metagen.FieldProducer {
	if params.Strategy == StrategySingleStage {
		p := metagen.NewSingleStage(s.client, params.GenerateModel)
		p.Log = log
		return p
	}
	p := metagen.NewTwoStage(s.client, params.GenerateModel, params.FormatModel)
	p.Log = log
	return p
}

func jsonPolicy(params Params) metagen.JSONPolicy {
	if params.RepairJSON {
		return metagen.RepairJSON
	}
	return metagen.StrictJSON
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

func logMetrics(log *logger.Logger, metrics ai.ModelMetrics, elapsed time.Duration) {
	log.Info(
		"AI Metrics",
		"input_tokens", metrics.InputTokens,
		"output_tokens", metrics.OutputTokens,
		"total_tokens", metrics.TotalTokens,
		"duration", formatDuration(time.Duration(metrics.DurationMs)*time.Millisecond),
	)
	log.Info("Processing time", "duration", formatDuration(elapsed))
}

// ReadArticle loads a generated article and splits it into metadata and body.
func ReadArticle(path string) (article.Metadata, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return article.Metadata{}, "", &IOError{Op: "read", Path: path, Err: err}
	}
	return frontmatter.Parse(string(data))
}
