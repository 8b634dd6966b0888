package metagen

import (
	"context"
	"time"

	"github.com/OFFIS-RIT/mdmeta/pkg/article"
	"github.com/OFFIS-RIT/mdmeta/pkg/logger"
)

// Input is the article a pipeline run works on.
type Input struct {
	Content string
	Author  string
}

// Pipeline produces every metadata field in order and assembles the result.
type Pipeline struct {
	producer FieldProducer
	policy   JSONPolicy
	now      func() time.Time
	log      *logger.Logger
}

type PipelineOption func(*Pipeline)

// WithClock sets the time source used for the creation date.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		p.now = now
	}
}

// WithJSONPolicy sets how field output is decoded. The default is StrictJSON.
func WithJSONPolicy(policy JSONPolicy) PipelineOption {
	return func(p *Pipeline) {
		p.policy = policy
	}
}

// WithLogger sets the logger for stage transitions.
func WithLogger(l *logger.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.log = l
	}
}

func NewPipeline(producer FieldProducer, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		producer: producer,
		now:      time.Now,
		log:      logger.With(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run produces Title, Description, Genre and Keywords one after another. The
// first failure stops the run and is returned as a *StageError; no partial
// metadata is returned.
func (p *Pipeline) Run(ctx context.Context, in Input) (article.Metadata, error) {
	var fields article.Fields

	for _, kind := range Kinds() {
		if err := ctx.Err(); err != nil {
			return article.Metadata{}, &StageError{Stage: kind, Err: err}
		}

		p.log.Info("Generating field", "stage", kind)
		start := time.Now()

		raw, err := p.producer.Produce(ctx, in.Content, kind)
		if err != nil {
			p.log.Error("Field generation failed", "stage", kind, "err", err)
			return article.Metadata{}, &StageError{Stage: kind, Err: err}
		}
		value, err := p.policy.Parse(raw, kind)
		if err != nil {
			p.log.Error("Field parsing failed", "stage", kind, "err", err)
			return article.Metadata{}, &StageError{Stage: kind, Err: err}
		}

		switch kind {
		case Title:
			if err := article.CheckTitle(value.Text); err != nil {
				err = &ParseError{Raw: raw, Kind: kind, Err: err}
				p.log.Error("Field parsing failed", "stage", kind, "err", err)
				return article.Metadata{}, &StageError{Stage: kind, Err: err}
			}
			fields.Title = value.Text
		case Description:
			fields.Description = value.Text
		case Genre:
			fields.Genre = p.resolveGenre(value.Text)
		case Keywords:
			fields.Keywords = value.List
		}
		p.log.Info("Field generated", "stage", kind, "duration", time.Since(start).Round(time.Millisecond))
	}

	analytics := article.ComputeAnalytics(in.Content, p.now())
	return article.NewMetadata(fields, in.Author, analytics), nil
}

func (p *Pipeline) resolveGenre(name string) article.Genre {
	g, err := article.ParseGenre(name)
	if err != nil {
		g = article.ResolveGenre(name)
		p.log.Warn("Unknown genre, using default", "genre", name, "default", g)
	}
	return g
}
