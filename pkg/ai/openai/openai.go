package openai

import (
	"net/http"
	"sync"
	"time"

	"github.com/OFFIS-RIT/mdmeta/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/sync/semaphore"
)

// CompletionOpenAIClient implements ai.CompletionClient against any
// OpenAI-compatible chat completion endpoint.
//
// A CompletionOpenAIClient should be created using NewCompletionOpenAIClient.
type CompletionOpenAIClient struct {
	chatURL string

	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewCompletionOpenAIClientParams defines the configuration parameters for
// creating a new CompletionOpenAIClient.
//
// ChatURL and ChatKey configure the chat/completion API endpoint. An empty
// ChatURL targets the official OpenAI API.
type NewCompletionOpenAIClientParams struct {
	ChatURL string
	ChatKey string

	MaxConcurrentRequests int64
	Timeout               time.Duration
}

// NewCompletionOpenAIClient creates and returns a new CompletionOpenAIClient.
//
// Example:
//
//	client := openai.NewCompletionOpenAIClient(openai.NewCompletionOpenAIClientParams{
//		ChatURL: "http://localhost:8000/v1",
//		ChatKey: os.Getenv("AI_CHAT_KEY"),
//	})
func NewCompletionOpenAIClient(
	params NewCompletionOpenAIClientParams,
) *CompletionOpenAIClient {
	maxReq := params.MaxConcurrentRequests
	if maxReq < 1 {
		maxReq = 1
	}

	return &CompletionOpenAIClient{
		chatURL: params.ChatURL,
		reqLock: semaphore.NewWeighted(maxReq),

		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey, params.Timeout),
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
	timeout time.Duration,
) *openai.Client {
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxRetries(0),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
