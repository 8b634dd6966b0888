package metagen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/mdmeta/pkg/ai"
)

// FieldValue is a decoded field. Text is set for scalar kinds and List for
// list kinds.
type FieldValue struct {
	Kind FieldKind
	Text string
	List []string
}

// JSONPolicy controls how formatted model output is decoded.
type JSONPolicy int

const (
	// StrictJSON requires the output to be valid JSON as is.
	StrictJSON JSONPolicy = iota
	// RepairJSON strips code fences and repairs malformed JSON before
	// decoding.
	RepairJSON
)

func (p JSONPolicy) decode(raw string, out any) error {
	if p == RepairJSON {
		return ai.UnmarshalFlexible(raw, out)
	}
	return json.Unmarshal([]byte(raw), out)
}

// ParseField decodes formatted model output for kind. The output must be an
// object whose only key is "response", holding a string or, for list kinds,
// an array of strings.
func ParseField(raw string, kind FieldKind) (FieldValue, error) {
	return StrictJSON.Parse(raw, kind)
}

// Parse is ParseField with the decoding policy p.
func (p JSONPolicy) Parse(raw string, kind FieldKind) (FieldValue, error) {
	fail := func(err error) (FieldValue, error) {
		return FieldValue{}, &ParseError{Raw: raw, Kind: kind, Err: err}
	}
	if !kind.valid() {
		return fail(fmt.Errorf("unknown field kind %d", int(kind)))
	}

	var fields map[string]json.RawMessage
	if err := p.decode(raw, &fields); err != nil {
		return fail(err)
	}
	payload, ok := fields["response"]
	if !ok {
		return fail(errors.New(`missing "response" key`))
	}
	if len(fields) != 1 {
		return fail(fmt.Errorf("expected a single key, got %d", len(fields)))
	}

	value := FieldValue{Kind: kind}
	if kind.IsList() {
		var items []string
		if err := json.Unmarshal(payload, &items); err != nil {
			return fail(fmt.Errorf("response is not a list of strings: %w", err))
		}
		value.List = make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				value.List = append(value.List, item)
			}
		}
		return value, nil
	}

	var text string
	if err := json.Unmarshal(payload, &text); err != nil {
		return fail(fmt.Errorf("response is not a string: %w", err))
	}
	value.Text = strings.TrimSpace(text)
	if value.Text == "" && kind != Genre {
		return fail(ErrEmptyResponse)
	}
	return value, nil
}
