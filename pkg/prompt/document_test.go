package prompt

import (
	"errors"
	"strings"
	"testing"
)

func TestDocument_RenderOrderAndIdempotence(t *testing.T) {
	doc := NewDocument(Llama3).
		Append("article body").
		Append("Examples of good responses are:").
		AppendExample(`{"response":"A"}`).
		AppendExample(`{"response":"B"}`).
		Append("tail")

	want := "article body\nExamples of good responses are:\n" +
		"\n~~~\n" + `{"response":"A"}` + "\n" + `{"response":"B"}` + "\n~~~\n" +
		"tail\n"

	first, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if first != want {
		t.Fatalf("Render() = %q, want %q", first, want)
	}

	second, err := doc.Render()
	if err != nil {
		t.Fatalf("second Render() error = %v", err)
	}
	if first != second {
		t.Fatalf("Render() is not idempotent: %q != %q", first, second)
	}
}

func TestDocument_ExampleDelimitersDoNotStack(t *testing.T) {
	doc := NewDocument(Qwen2)
	for _, ex := range []string{"one", "two", "three"} {
		doc.AppendExample(ex)
	}
	out, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := strings.Count(out, "~~~"); got != 2 {
		t.Fatalf("expected one delimiter pair, found %d delimiters in %q", got, out)
	}
}

func TestDocument_SeparateExampleGroups(t *testing.T) {
	out, err := NewDocument(Qwen2).
		AppendExample("a").
		Append("between").
		AppendExample("b").
		Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := strings.Count(out, "~~~"); got != 4 {
		t.Fatalf("expected two delimiter pairs, found %d in %q", got, out)
	}
}

func TestDocument_OverBudgetFailsForEveryModel(t *testing.T) {
	for _, m := range Models() {
		t.Run(m.String(), func(t *testing.T) {
			exact := strings.Repeat("x", m.Budget()-1)
			out, err := NewDocument(m).Append(exact).Render()
			if err != nil {
				t.Fatalf("Render() at budget error = %v", err)
			}
			if len(out) != m.Budget() {
				t.Fatalf("Render() length = %d, want %d", len(out), m.Budget())
			}

			out, err = NewDocument(m).Append(exact + "yz").Render()
			if out != "" {
				t.Fatalf("Render() over budget returned text of length %d", len(out))
			}
			var tooLarge *TooLargeError
			if !errors.As(err, &tooLarge) {
				t.Fatalf("Render() error = %v, want *TooLargeError", err)
			}
			if tooLarge.Overflow() != 2 {
				t.Fatalf("Overflow() = %d, want 2", tooLarge.Overflow())
			}
			if tooLarge.Model != m {
				t.Fatalf("TooLargeError.Model = %q, want %q", tooLarge.Model, m)
			}
		})
	}
}

func TestParseModel(t *testing.T) {
	tests := []struct {
		input   string
		want    Model
		wantErr bool
	}{
		{input: "llama3", want: Llama3},
		{input: "llama3:latest", want: Llama3},
		{input: " deepseek-r1:8b ", want: DeepSeekR1},
		{input: "deepseek-r1:1.5b", want: DeepSeekR1Small},
		{input: "gpt-2", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseModel(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrUnsupportedModel) {
					t.Fatalf("ParseModel(%q) error = %v, want ErrUnsupportedModel", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseModel(%q) error = %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("ParseModel(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestModels_HaveBudgets(t *testing.T) {
	for _, m := range Models() {
		if m.Budget() < 8_000 {
			t.Fatalf("model %s has budget %d", m, m.Budget())
		}
	}
	if Model("unknown").Budget() != 0 {
		t.Fatalf("unknown models must have no budget")
	}
}
