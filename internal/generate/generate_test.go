package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/OFFIS-RIT/mdmeta/internal/storage"
	"github.com/OFFIS-RIT/mdmeta/pkg/ai"
	"github.com/OFFIS-RIT/mdmeta/pkg/article"
	"github.com/OFFIS-RIT/mdmeta/pkg/metagen"
	"github.com/OFFIS-RIT/mdmeta/pkg/prompt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const sourceText = "A short article about cats."

type fakeClient struct {
	installed map[string]bool
	calls     int
	respond   func(req ai.CompletionRequest) string
}

func (f *fakeClient) Complete(_ context.Context, req ai.CompletionRequest, _ ...ai.GenerateOption) (ai.CompletionResponse, error) {
	f.calls++
	return ai.CompletionResponse{Text: f.respond(req)}, nil
}

func (f *fakeClient) ModelAvailable(_ context.Context, model string) (bool, error) {
	return f.installed[model], nil
}

func (f *fakeClient) ResetMetrics() {}

func (f *fakeClient) GetMetrics() ai.ModelMetrics {
	return ai.ModelMetrics{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}
}

// catsModel answers every stage of the two-stage pipeline for sourceText.
func catsModel(titleJSON string) func(req ai.CompletionRequest) string {
	return func(req ai.CompletionRequest) string {
		if req.Format == ai.FormatNone {
			switch {
			case strings.HasPrefix(req.Prompt, metagen.Title.Guideline()):
				return "Cats: A Short Article\n"
			case strings.HasPrefix(req.Prompt, metagen.Description.Guideline()):
				return "An article about cats."
			case strings.HasPrefix(req.Prompt, metagen.Genre.Guideline()):
				return "LIFESTYLE"
			default:
				return "cats, pets"
			}
		}
		switch {
		case strings.HasSuffix(req.Prompt, "Cats: A Short Article\n"):
			return titleJSON
		case strings.HasSuffix(req.Prompt, "An article about cats.\n"):
			return `{"response":"An article about cats."}`
		case strings.HasSuffix(req.Prompt, "LIFESTYLE\n"):
			return `{"response":"LIFESTYLE"}`
		default:
			return `{"response":["cats","pets"]}`
		}
	}
}

func allInstalled() map[string]bool {
	return map[string]bool{
		prompt.DefaultGenerateModel.String(): true,
		prompt.DefaultFormatModel.String():   true,
	}
}

func setup(t *testing.T) (source string, outDir string) {
	t.Helper()
	dir := t.TempDir()
	source = filepath.Join(dir, "cats.txt")
	if err := os.WriteFile(source, []byte(sourceText), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return source, filepath.Join(dir, "out")
}

func defaultParams(source, out string) Params {
	return Params{
		SourcePath:    source,
		Output:        out,
		Author:        "Jane Doe",
		GenerateModel: prompt.DefaultGenerateModel,
		FormatModel:   prompt.DefaultFormatModel,
		Strategy:      StrategyTwoStage,
	}
}

func newService(client *fakeClient, out string) *Service {
	svc := NewService(client, storage.NewLocalSink(out))
	svc.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestRun_WritesArticle(t *testing.T) {
	source, out := setup(t)
	client := &fakeClient{installed: allInstalled(), respond: catsModel(`{"response":"Cats: A Short Article"}`)}

	res, err := newService(client, out).Run(context.Background(), defaultParams(source, out))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.FileName != "cats-a-short-article.md" {
		t.Fatalf("FileName = %q", res.FileName)
	}
	if res.Location != filepath.Join(out, "cats-a-short-article.md") {
		t.Fatalf("Location = %q", res.Location)
	}
	if res.RunID == "" {
		t.Fatal("RunID not set")
	}
	if !strings.HasPrefix(res.FrontMatter, "+++\n") {
		t.Fatalf("FrontMatter = %q", res.FrontMatter)
	}

	meta, body, err := ReadArticle(res.Location)
	if err != nil {
		t.Fatalf("ReadArticle() error = %v", err)
	}
	if body != sourceText {
		t.Fatalf("body = %q, want original content", body)
	}
	want := article.Metadata{
		Title:       "Cats: A Short Article",
		Description: "An article about cats.",
		Author:      "Jane Doe",
		Slug:        "cats-a-short-article",
		Analytics: article.Analytics{
			CreatedAt:     article.Date{Year: 2026, Month: time.October, Day: 18},
			LengthInWords: 5,
		},
		Interest: article.Interest{
			Keywords:        []string{"cats", "pets"},
			Genre:           article.Lifestyle,
			RelatedArticles: []string{},
		},
	}
	if diff := cmp.Diff(want, meta, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("metadata mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(res.Metadata, meta, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("written metadata differs from result (-result +file):\n%s", diff)
	}
}

func TestRun_InvalidTitleWritesNothing(t *testing.T) {
	tests := []struct {
		name      string
		titleJSON string
	}{
		{name: "prose", titleJSON: "I cannot format this."},
		{name: "unclosed object", titleJSON: `{"response":"Cats: A Short Article"`},
		{name: "no slug", titleJSON: `{"response":"???"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			source, out := setup(t)
			client := &fakeClient{installed: allInstalled(), respond: catsModel(tc.titleJSON)}

			_, err := newService(client, out).Run(context.Background(), defaultParams(source, out))
			var stageErr *metagen.StageError
			if !errors.As(err, &stageErr) || stageErr.Stage != metagen.Title {
				t.Fatalf("Run() error = %v, want failure at title", err)
			}
			if client.calls != 2 {
				t.Fatalf("completion calls = %d, want 2", client.calls)
			}
			entries, err := os.ReadDir(out)
			if err != nil && !os.IsNotExist(err) {
				t.Fatalf("read output dir: %v", err)
			}
			if len(entries) != 0 {
				t.Fatalf("expected no output, found %d entries", len(entries))
			}
		})
	}
}

func TestRun_RepairJSON(t *testing.T) {
	source, out := setup(t)
	client := &fakeClient{installed: allInstalled(), respond: catsModel(`{"response":"Cats: A Short Article"`)}

	params := defaultParams(source, out)
	params.RepairJSON = true
	res, err := newService(client, out).Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.FileName != "cats-a-short-article.md" {
		t.Fatalf("FileName = %q", res.FileName)
	}
}

func TestRun_ModelUnavailable(t *testing.T) {
	source, out := setup(t)
	client := &fakeClient{
		installed: map[string]bool{prompt.DefaultGenerateModel.String(): true},
		respond:   catsModel(`{"response":"Cats: A Short Article"}`),
	}

	_, err := newService(client, out).Run(context.Background(), defaultParams(source, out))
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("Run() error = %v, want ErrModelUnavailable", err)
	}
	if !strings.Contains(err.Error(), prompt.DefaultFormatModel.String()) {
		t.Fatalf("error should name the missing model: %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("completion calls = %d, want none", client.calls)
	}
}

func TestRun_ExistingOutput(t *testing.T) {
	source, out := setup(t)
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}
	existing := filepath.Join(out, "cats-a-short-article.md")
	if err := os.WriteFile(existing, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}
	client := &fakeClient{installed: allInstalled(), respond: catsModel(`{"response":"Cats: A Short Article"}`)}

	_, err := newService(client, out).Run(context.Background(), defaultParams(source, out))
	if !errors.Is(err, ErrOutputExists) {
		t.Fatalf("Run() error = %v, want ErrOutputExists", err)
	}
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "write" {
		t.Fatalf("Run() error = %v, want write *IOError", err)
	}
	if got, _ := os.ReadFile(existing); string(got) != "keep me" {
		t.Fatalf("existing output modified: %q", got)
	}
}

func TestRun_MissingSource(t *testing.T) {
	_, out := setup(t)
	client := &fakeClient{installed: allInstalled()}

	_, err := newService(client, out).Run(context.Background(), defaultParams(filepath.Join(out, "missing.txt"), out))
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "read" {
		t.Fatalf("Run() error = %v, want read *IOError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("errors.Is(err, os.ErrNotExist) = false for %v", err)
	}
}

func TestParams_Validate(t *testing.T) {
	valid := defaultParams("article.txt", "out")

	tests := []struct {
		name    string
		modify  func(p *Params)
		wantErr bool
	}{
		{name: "valid", modify: func(p *Params) {}},
		{name: "default strategy and output", modify: func(p *Params) { p.Strategy = ""; p.Output = "" }},
		{name: "single stage", modify: func(p *Params) { p.Strategy = StrategySingleStage }},
		{name: "blank author", modify: func(p *Params) { p.Author = "   " }, wantErr: true},
		{name: "missing source", modify: func(p *Params) { p.SourcePath = "" }, wantErr: true},
		{name: "unsupported model", modify: func(p *Params) { p.FormatModel = "gpt-2" }, wantErr: true},
		{name: "unknown strategy", modify: func(p *Params) { p.Strategy = "three-stage" }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.modify(&p)
			err := p.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(3*time.Hour + 4*time.Minute + 5*time.Second); got != "03:04:05" {
		t.Fatalf("formatDuration() = %q", got)
	}
}
