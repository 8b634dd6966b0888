package metagen

import (
	"context"
	"sync"

	"github.com/OFFIS-RIT/mdmeta/pkg/ai"
)

// fakeClient answers completion requests with a scripted function and
// records every request it sees.
type fakeClient struct {
	mu       sync.Mutex
	requests []ai.CompletionRequest
	respond  func(req ai.CompletionRequest) (string, error)
}

func (f *fakeClient) Complete(_ context.Context, req ai.CompletionRequest, _ ...ai.GenerateOption) (ai.CompletionResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	text, err := f.respond(req)
	if err != nil {
		return ai.CompletionResponse{}, err
	}
	return ai.CompletionResponse{Text: text}, nil
}

func (f *fakeClient) ModelAvailable(context.Context, string) (bool, error) {
	return true, nil
}

func (f *fakeClient) ResetMetrics() {}

func (f *fakeClient) GetMetrics() ai.ModelMetrics {
	return ai.ModelMetrics{}
}

func (f *fakeClient) count(format ai.OutputFormat) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.Format == format {
			n++
		}
	}
	return n
}
