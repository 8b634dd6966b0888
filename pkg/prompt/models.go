package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedModel is returned for model identifiers without a known prompt budget.
var ErrUnsupportedModel = errors.New("unsupported model")

// Model is a completion model identifier with a known maximum prompt length.
type Model string

const (
	Llama3          Model = "llama3"
	Llama32         Model = "llama3.2"
	Llama33         Model = "llama3.3"
	Qwen2           Model = "qwen2"
	Qwen25          Model = "qwen2.5"
	DeepSeekR1Small Model = "deepseek-r1:1.5b"
	DeepSeekR1      Model = "deepseek-r1:8b"
)

// DefaultGenerateModel answers the per-field questions.
const DefaultGenerateModel = DeepSeekR1

// DefaultFormatModel coerces answers into the response schema.
const DefaultFormatModel = DeepSeekR1Small

// see - https://github.com/meta-llama/llama-models/tree/main/models
// see - https://huggingface.co/Qwen/Qwen2.5-72B
// see - https://huggingface.co/deepseek-ai/DeepSeek-R1-Distill-Llama-8B
var budgets = map[Model]int{
	Llama3:          8_000,
	Llama32:         128_000,
	Llama33:         128_000,
	Qwen2:           131_000,
	Qwen25:          131_000,
	DeepSeekR1Small: 128_000,
	DeepSeekR1:      128_000,
}

var modelOrder = []Model{Llama3, Llama32, Llama33, Qwen2, Qwen25, DeepSeekR1Small, DeepSeekR1}

// Models lists every supported model in a stable order.
func Models() []Model {
	out := make([]Model, len(modelOrder))
	copy(out, modelOrder)
	return out
}

// ParseModel resolves an identifier to a supported Model. A trailing
// ":latest" tag is ignored.
func ParseModel(s string) (Model, error) {
	name := strings.TrimSuffix(strings.TrimSpace(s), ":latest")
	m := Model(name)
	if _, ok := budgets[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedModel, s)
	}
	return m, nil
}

// Budget is the maximum rendered prompt length in bytes for m, or 0 if m is unknown.
func (m Model) Budget() int {
	return budgets[m]
}

func (m Model) String() string {
	return string(m)
}

// Set implements pflag.Value so models can be bound directly to CLI flags.
func (m *Model) Set(s string) error {
	parsed, err := ParseModel(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Model) Type() string {
	return "model"
}
