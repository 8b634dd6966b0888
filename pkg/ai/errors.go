package ai

import (
	"fmt"
)

// ServiceError reports a failed call to the completion backend: a network
// fault, a malformed transport response or an error reported by the backend.
//
// Prompt is only set when the prompt that triggered the failure is useful for
// diagnosis.
type ServiceError struct {
	Op     string
	Model  string
	Prompt string
	Err    error
}

// NewServiceError wraps err as a ServiceError for the given operation and model.
func NewServiceError(op string, model string, err error) *ServiceError {
	return &ServiceError{Op: op, Model: model, Err: err}
}

// WithPrompt returns a copy of e that carries the offending prompt.
func (e *ServiceError) WithPrompt(prompt string) *ServiceError {
	c := *e
	c.Prompt = prompt
	return &c
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("%s (model %s): %v", e.Op, e.Model, e.Err)
	if e.Prompt != "" {
		msg += fmt.Sprintf(" [prompt: %d bytes]", len(e.Prompt))
	}
	return msg
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
