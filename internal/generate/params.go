package generate

import (
	"strings"

	"github.com/OFFIS-RIT/mdmeta/pkg/prompt"

	"github.com/go-playground/validator"
)

// Strategy selects how fields are produced.
type Strategy string

const (
	// StrategyTwoStage generates a free answer and formats it in a second call.
	StrategyTwoStage Strategy = "two-stage"
	// StrategySingleStage asks for the structured answer directly.
	StrategySingleStage Strategy = "single-stage"
)

// Params are the inputs of one generate run.
type Params struct {
	SourcePath    string       `validate:"required"`
	Output        string       // directory or s3://bucket/prefix, defaults to "."
	Author        string       `validate:"required"`
	GenerateModel prompt.Model `validate:"required,model"`
	FormatModel   prompt.Model `validate:"required,model"`
	Strategy      Strategy     `validate:"required,oneof=two-stage single-stage"`
	// RepairJSON accepts formatted output that is only valid after repair.
	RepairJSON bool
}

var validate = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("model", func(fl validator.FieldLevel) bool {
		_, err := prompt.ParseModel(fl.Field().String())
		return err == nil
	})
	return v
}()

// normalize trims the free-text fields and fills in defaults.
func (p Params) normalize() Params {
	p.SourcePath = strings.TrimSpace(p.SourcePath)
	p.Author = strings.TrimSpace(p.Author)
	p.Output = strings.TrimSpace(p.Output)
	if p.Output == "" {
		p.Output = "."
	}
	if p.Strategy == "" {
		p.Strategy = StrategyTwoStage
	}
	return p
}

// Validate reports missing or malformed parameters. A blank author is
// rejected.
func (p Params) Validate() error {
	return validate.Struct(p.normalize())
}
