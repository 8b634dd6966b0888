package prompt

import (
	"fmt"
	"strings"
)

const (
	lineSeparator    = "\n"
	exampleSeparator = "\n~~~\n"
)

// TooLargeError is returned when a rendered prompt exceeds the model budget.
type TooLargeError struct {
	Model  Model
	Budget int
	Length int
}

// Overflow is the number of bytes over budget.
func (e *TooLargeError) Overflow() int {
	return e.Length - e.Budget
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf(
		"prompt too large for model %s: %d bytes exceeds budget of %d by %d",
		e.Model, e.Length, e.Budget, e.Overflow(),
	)
}

// Document is an ordered sequence of prompt segments bound to the budget of a
// single model. A Document is built for one request and then dropped.
type Document struct {
	model    Model
	budget   int
	segments []string
}

// NewDocument creates an empty Document limited to the budget of model.
func NewDocument(model Model) *Document {
	return &Document{
		model:  model,
		budget: model.Budget(),
	}
}

// Append adds a line followed by a line separator.
func (d *Document) Append(text string) *Document {
	d.segments = append(d.segments, text, lineSeparator)
	return d
}

// AppendExample adds an example fenced by the example delimiter. Consecutive
// examples share one delimiter pair and are separated by a line break.
func (d *Document) AppendExample(text string) *Document {
	if n := len(d.segments); n > 0 && d.segments[n-1] == exampleSeparator {
		d.segments = append(d.segments[:n-1], lineSeparator)
	} else {
		d.segments = append(d.segments, exampleSeparator)
	}
	d.segments = append(d.segments, text, exampleSeparator)
	return d
}

// Render concatenates the segments in push order. It never truncates: a
// prompt longer than the budget yields a *TooLargeError.
func (d *Document) Render() (string, error) {
	out := strings.Join(d.segments, "")
	if len(out) > d.budget {
		return "", &TooLargeError{Model: d.model, Budget: d.budget, Length: len(out)}
	}
	return out, nil
}
