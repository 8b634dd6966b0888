package metagen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/OFFIS-RIT/mdmeta/pkg/ai"
	"github.com/OFFIS-RIT/mdmeta/pkg/prompt"
)

func TestGenerator_Prompt(t *testing.T) {
	g := NewGenerator(&fakeClient{}, prompt.Llama3)

	system, user, err := g.Prompt("A short article about cats.", Title)
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}
	wantSystem := editorPersona + "\n###Article:\nA short article about cats.\n"
	if system != wantSystem {
		t.Fatalf("system = %q, want %q", system, wantSystem)
	}
	if user != Title.Guideline()+"\n"+Title.Limitation() {
		t.Fatalf("user = %q", user)
	}
}

func TestGenerator_PromptTooLarge(t *testing.T) {
	g := NewGenerator(&fakeClient{}, prompt.Llama3)
	content := strings.Repeat("cat ", prompt.Llama3.Budget())

	_, _, err := g.Prompt(content, Title)
	var tooLarge *prompt.TooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("Prompt() error = %v, want *prompt.TooLargeError", err)
	}
}

func TestGenerator_GenerateIsPlainText(t *testing.T) {
	client := &fakeClient{respond: func(ai.CompletionRequest) (string, error) { return "NEWS", nil }}
	g := NewGenerator(client, prompt.DeepSeekR1)

	resp, err := g.Generate(context.Background(), "text", Genre)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Text != "NEWS" {
		t.Fatalf("Generate() text = %q", resp.Text)
	}
	req := client.requests[0]
	if req.Format != ai.FormatNone || req.Schema != nil {
		t.Fatalf("generator request must not constrain output: %+v", req)
	}
	if req.Model != "deepseek-r1:8b" {
		t.Fatalf("Model = %q", req.Model)
	}
}

func TestFormatter_Prompt(t *testing.T) {
	f := NewFormatter(&fakeClient{}, prompt.DeepSeekR1Small)

	tests := []struct {
		kind    FieldKind
		example string
	}{
		{kind: Title, example: `{"response":"The Fall of the Roman Empire"}`},
		{kind: Genre, example: `{"response":"TECHNOLOGY"}`},
		{kind: Keywords, example: `{"response":["Climate Change","Economy"]}`},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			text, err := f.Prompt("Cats: A Short Article", tc.kind)
			if err != nil {
				t.Fatalf("Prompt() error = %v", err)
			}
			if !strings.HasPrefix(text, formatterExamples+"\n") {
				t.Fatalf("prompt should open with the examples lead: %q", text)
			}
			if !strings.Contains(text, tc.example+"\n") {
				t.Fatalf("prompt is missing example %s: %q", tc.example, text)
			}
			if !strings.HasSuffix(text, formatterData+"Cats: A Short Article\n") {
				t.Fatalf("prompt should end with the data to format: %q", text)
			}
		})
	}
}

func TestFormatter_FormatRequestsJSON(t *testing.T) {
	client := &fakeClient{respond: func(ai.CompletionRequest) (string, error) { return `{"response":"x"}`, nil }}
	f := NewFormatter(client, prompt.DeepSeekR1Small)

	if _, err := f.Format(context.Background(), "x", Keywords); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	req := client.requests[0]
	if req.Format != ai.FormatJSON {
		t.Fatalf("Format = %s, want json", req.Format)
	}
	if req.System != formatterSystem {
		t.Fatalf("System = %q", req.System)
	}
	if _, ok := req.Schema.(*StructuredResponse[[]string]); !ok {
		t.Fatalf("Schema = %T, want list wrapper", req.Schema)
	}
}

func TestSingleStage_Prompt(t *testing.T) {
	s := NewSingleStage(&fakeClient{}, prompt.Qwen25)

	text, err := s.Prompt("A short article about cats.", Keywords)
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}
	if !strings.HasPrefix(text, "A short article about cats.\n") {
		t.Fatalf("article must come first: %q", text)
	}
	if got := strings.Count(text, "~~~"); got != 2 {
		t.Fatalf("examples should share one delimiter pair, found %d delimiters", got)
	}
	if !strings.Contains(text, `{"response":["MachineLearning","ArtificialIntelligence","DataScience","PythonProgramming","DataAnalysis","Algorithms"]}`) {
		t.Fatalf("keyword example should be split and trimmed: %q", text)
	}

	genre, err := s.Prompt("A short article about cats.", Genre)
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}
	if strings.Contains(genre, "~~~") || !strings.Contains(genre, "LIFESTYLE") {
		t.Fatalf("genre template lists genres without examples: %q", genre)
	}
}

func TestSingleStage_ErrorCarriesPrompt(t *testing.T) {
	backendErr := errors.New("connection refused")
	client := &fakeClient{respond: func(ai.CompletionRequest) (string, error) {
		return "", ai.NewServiceError("ollama generate", "qwen2.5", backendErr)
	}}
	s := NewSingleStage(client, prompt.Qwen25)

	_, err := s.Produce(context.Background(), "A short article about cats.", Title)
	var svcErr *ai.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("Produce() error = %v, want *ai.ServiceError", err)
	}
	if !strings.HasPrefix(svcErr.Prompt, "A short article about cats.\n") {
		t.Fatalf("ServiceError.Prompt = %q", svcErr.Prompt)
	}
	if !errors.Is(err, backendErr) {
		t.Fatalf("errors.Is(err, backendErr) = false for %v", err)
	}
}
