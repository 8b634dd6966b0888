package ollama

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/OFFIS-RIT/mdmeta/pkg/ai"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"
)

// DefaultBaseURL is where a locally installed Ollama listens.
const DefaultBaseURL = "http://localhost:11434"

// CompletionOllamaClient implements ai.CompletionClient against a locally-hosted
// Ollama server.
type CompletionOllamaClient struct {
	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client

	Client *api.Client
}

// NewCompletionOllamaClientParams contains configuration options for creating a new CompletionOllamaClient.
type NewCompletionOllamaClientParams struct {
	BaseURL string
	ApiKey  string

	// MaxConcurrentRequests bounds in-flight requests. Values < 1 mean 1.
	MaxConcurrentRequests int64
	// Timeout is the per-request HTTP timeout. Zero leaves requests unbounded.
	Timeout time.Duration
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		// don't overwrite if already set
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewCompletionOllamaClient creates a new Ollama-based completion client.
// It connects to the Ollama server at the given BaseURL, or DefaultBaseURL if empty.
func NewCompletionOllamaClient(
	params NewCompletionOllamaClientParams,
) (*CompletionOllamaClient, error) {
	base := params.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{}
	if params.ApiKey != "" {
		headers["Authorization"] = "Bearer " + params.ApiKey
	}

	httpClient := &http.Client{
		Timeout: params.Timeout,
		Transport: &headerTransport{
			headers: headers,
			rt:      http.DefaultTransport,
		},
	}

	cli := api.NewClient(u, httpClient)

	maxReq := params.MaxConcurrentRequests
	if maxReq < 1 {
		maxReq = 1
	}

	return &CompletionOllamaClient{
		reqLock: semaphore.NewWeighted(maxReq),

		baseURL:    u,
		apiKey:     params.ApiKey,
		httpClient: httpClient,

		Client: cli,
	}, nil
}
